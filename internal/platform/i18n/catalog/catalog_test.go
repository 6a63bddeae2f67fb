package catalog

import (
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{BaseLocale, "pt-BR"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if missing := bundle.MissingKeys("pt-BR"); len(missing) != 0 {
		t.Fatalf("pt-BR is missing keys %v", missing)
	}
}

func TestDefaultRegistersMessages(t *testing.T) {
	Default()

	if got := message.NewPrinter(language.BrazilianPortuguese).Sprintf("crumbs.home"); got != "Início" {
		t.Fatalf("pt-BR crumbs.home = %q, want %q", got, "Início")
	}
	if got := message.NewPrinter(language.AmericanEnglish).Sprintf("crumbs.search", "go"); got != `Results for "go"` {
		t.Fatalf("en-US crumbs.search = %q", got)
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle := mustLoad(t, fstest.MapFS{
		"locales/en-US/web.yaml": {Data: []byte("locale: en-US\nnamespace: web\nmessages:\n  web.title: Shop\n  web.extra: Extra\n")},
		"locales/pt-BR/web.yaml": {Data: []byte("locale: pt-BR\nnamespace: web\nmessages:\n  web.title: Loja\n")},
	})

	if got, _ := bundle.Message("pt-BR", "web.title"); got != "Loja" {
		t.Fatalf("Message(pt-BR, web.title) = %q, want %q", got, "Loja")
	}
	if got, ok := bundle.Message("pt-BR", "web.extra"); !ok || got != "Extra" {
		t.Fatalf("Message(pt-BR, web.extra) = %q, %v", got, ok)
	}
	if _, ok := bundle.Message("fr-FR", "web.nope"); ok {
		t.Fatal("expected missing key")
	}
	if got := bundle.MissingKeys("pt-BR"); len(got) != 1 || got[0] != "web.extra" {
		t.Fatalf("MissingKeys(pt-BR) = %v", got)
	}
}

func TestLoadFromFSErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		want string
	}{
		{
			name: "no files",
			fsys: fstest.MapFS{},
			want: "no catalog files",
		},
		{
			name: "missing base locale",
			fsys: fstest.MapFS{
				"locales/pt-BR/web.yaml": {Data: []byte("locale: pt-BR\nnamespace: web\nmessages:\n  web.title: Loja\n")},
			},
			want: "base locale",
		},
		{
			name: "locale mismatch",
			fsys: fstest.MapFS{
				"locales/en-US/web.yaml": {Data: []byte("locale: pt-BR\nnamespace: web\nmessages:\n  web.title: Loja\n")},
			},
			want: "must match path locale",
		},
		{
			name: "key outside namespace",
			fsys: fstest.MapFS{
				"locales/en-US/web.yaml": {Data: []byte("locale: en-US\nnamespace: web\nmessages:\n  crumbs.home: Home\n")},
			},
			want: "must start with",
		},
		{
			name: "unknown field",
			fsys: fstest.MapFS{
				"locales/en-US/web.yaml": {Data: []byte("locale: en-US\nnamespace: web\nmsgs:\n  web.title: Shop\n")},
			},
			want: "parse catalog",
		},
		{
			name: "missing messages",
			fsys: fstest.MapFS{
				"locales/en-US/web.yaml": {Data: []byte("locale: en-US\nnamespace: web\n")},
			},
			want: "missing messages",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFS(tt.fsys)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func mustLoad(t *testing.T, fsys fstest.MapFS) *Bundle {
	t.Helper()
	bundle, err := LoadFromFS(fsys)
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return bundle
}
