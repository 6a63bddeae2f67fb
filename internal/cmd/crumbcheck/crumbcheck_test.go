package crumbcheck

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/louisbranch/crumbtrail/internal/breadcrumb"
)

const shopYAML = `
crumbs:
  home:
    text: {t: crumbs.home}
    url: /
  category:
    text: {expr: arg.name}
    url: {expr: '"/categories/" + arg.id'}
    parent: home
  search:
    text: Search
    url: /search
    parent:
      key_expr: '"home"'
`

func writeCrumbs(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crumbs.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write crumbs: %v", err)
	}
	return path
}

func TestParseConfigRequiresFile(t *testing.T) {
	t.Setenv("CRUMBTRAIL_CRUMBS_FILE", "")
	if _, err := ParseConfig(flag.NewFlagSet("crumbcheck", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected missing file error")
	}
}

func TestParseConfigArgsNeedResolve(t *testing.T) {
	fs := flag.NewFlagSet("crumbcheck", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-file", "crumbs.yaml", "-args", "[1]"}); err == nil {
		t.Fatal("expected -args error")
	}
}

func TestParseConfigFromEnv(t *testing.T) {
	t.Setenv("CRUMBTRAIL_CRUMBS_FILE", "site.yaml")
	cfg, err := ParseConfig(flag.NewFlagSet("crumbcheck", flag.ContinueOnError), []string{"-strict=false"})
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.File != "site.yaml" || cfg.Strict {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Lang != "en-US" {
		t.Fatalf("Lang = %q, want %q", cfg.Lang, "en-US")
	}
}

func TestParseConfigRejectsUnsupportedLang(t *testing.T) {
	for _, lang := range []string{"not a tag", "ja"} {
		fs := flag.NewFlagSet("crumbcheck", flag.ContinueOnError)
		if _, err := ParseConfig(fs, []string{"-file", "crumbs.yaml", "-lang", lang}); err == nil {
			t.Fatalf("ParseConfig(-lang %q) expected error", lang)
		}
	}
}

func TestParseConfigCanonicalizesLang(t *testing.T) {
	t.Setenv("CRUMBTRAIL_LANG", "pt")
	cfg, err := ParseConfig(flag.NewFlagSet("crumbcheck", flag.ContinueOnError), []string{"-file", "crumbs.yaml"})
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Lang != "pt-BR" {
		t.Fatalf("Lang = %q, want %q", cfg.Lang, "pt-BR")
	}
}

func TestRunRejectsUnsupportedLang(t *testing.T) {
	path := writeCrumbs(t, shopYAML)
	cfg := Config{File: path, Resolve: "home", Lang: "not a tag"}
	if err := Run(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Fatal("expected unsupported language error")
	}
}

func TestRunReportsChains(t *testing.T) {
	path := writeCrumbs(t, shopYAML)
	var out bytes.Buffer

	if err := Run(context.Background(), Config{File: path, Strict: true}, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := path + ": 3 breadcrumbs\n" +
		"category -> home\n" +
		"home\n" +
		"search -> (computed)\n"
	if got := out.String(); got != want {
		t.Fatalf("report = %q, want %q", got, want)
	}
}

func TestRunResolvesWithArgs(t *testing.T) {
	path := writeCrumbs(t, shopYAML)
	var out bytes.Buffer

	cfg := Config{File: path, Resolve: "category", Args: "[{id: books, name: Books}]", Lang: "pt-BR"}
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "1. Início </>\n2. Books </categories/books>\n"
	if got := out.String(); got != want {
		t.Fatalf("trail = %q, want %q", got, want)
	}
}

func TestRunStrictRejectsCycle(t *testing.T) {
	path := writeCrumbs(t, "crumbs:\n  a:\n    text: A\n    url: /a\n    parent: b\n  b:\n    text: B\n    url: /b\n    parent: a\n")

	if err := Run(context.Background(), Config{File: path, Strict: true}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected strict validation error")
	}

	var out bytes.Buffer
	if err := Run(context.Background(), Config{File: path}, &out); err != nil {
		t.Fatalf("lenient Run: %v", err)
	}
	if got := out.String(); !bytes.Contains([]byte(got), []byte("a -> b -> a -> (cycle)\n")) {
		t.Fatalf("report = %q", got)
	}
}

func TestRunResolveUnknownKey(t *testing.T) {
	path := writeCrumbs(t, shopYAML)

	err := Run(context.Background(), Config{File: path, Resolve: "nope"}, &bytes.Buffer{})
	var unknown *breadcrumb.UnknownBreadcrumbError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownBreadcrumbError", err)
	}
}
