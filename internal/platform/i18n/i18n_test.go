package i18n

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		value string
		want  language.Tag
		ok    bool
	}{
		{"en-US", language.AmericanEnglish, true},
		{"pt-BR", language.BrazilianPortuguese, true},
		{"pt", language.BrazilianPortuguese, true},
		{"", language.AmericanEnglish, false},
		{"not a tag!", language.AmericanEnglish, false},
	}
	for _, tt := range tests {
		got, ok := ParseTag(tt.value)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseTag(%q) = %v, %v; want %v, %v", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMatchTagsFallsBackToDefault(t *testing.T) {
	if got := MatchTags(nil); got != DefaultTag() {
		t.Fatalf("MatchTags(nil) = %v, want %v", got, DefaultTag())
	}
}

func TestResolveTagPrefersQueryThenCookieThenHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil)
	r.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en-US"})
	if tag, persist := ResolveTag(r); tag != language.BrazilianPortuguese || !persist {
		t.Fatalf("query: got %v, %v", tag, persist)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: LangCookieName, Value: "pt-BR"})
	r.Header.Set("Accept-Language", "en-US")
	if tag, persist := ResolveTag(r); tag != language.BrazilianPortuguese || persist {
		t.Fatalf("cookie: got %v, %v", tag, persist)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")
	if tag, _ := ResolveTag(r); tag != language.BrazilianPortuguese {
		t.Fatalf("header: got %v", tag)
	}

	if tag, _ := ResolveTag(nil); tag != DefaultTag() {
		t.Fatalf("nil request: got %v", tag)
	}
}

func TestSetLanguageCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, language.BrazilianPortuguese)

	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, LangCookieName+"=pt-BR") {
		t.Fatalf("Set-Cookie = %q", cookie)
	}
}

func TestLanguageURL(t *testing.T) {
	got := LanguageURL("/products/3", "lang=en-US&page=2", language.BrazilianPortuguese)
	if want := "/products/3?lang=pt-BR&page=2"; got != want {
		t.Fatalf("LanguageURL = %q, want %q", got, want)
	}
	if got := LanguageURL("", "", language.AmericanEnglish); got != "/?lang=en-US" {
		t.Fatalf("LanguageURL(empty) = %q", got)
	}
}

func TestPrinterUsesRegisteredCatalog(t *testing.T) {
	if got := Printer(language.BrazilianPortuguese).Sprintf("web.language"); got != "Idioma" {
		t.Fatalf("Sprintf(web.language) = %q, want %q", got, "Idioma")
	}
}
