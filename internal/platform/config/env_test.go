package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"CRUMBTRAIL_TEST_PORT" envDefault:"123"`
}

type prefixedTestConfig struct {
	File string `env:"TEST_FILE" envDefault:"crumbs.yaml"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("CRUMBTRAIL_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvPrefixed(t *testing.T) {
	var cfg prefixedTestConfig
	t.Setenv("CRUMBTRAIL_TEST_FILE", "site.yaml")

	if err := ParseEnvPrefixed(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.File != "site.yaml" {
		t.Fatalf("File = %q, want %q", cfg.File, "site.yaml")
	}
}
