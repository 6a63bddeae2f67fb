package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "crumbtrail_lang"
)

// ResolveTag determines the language for r: query parameter, then cookie,
// then Accept-Language. The bool reports whether the query parameter chose
// the language and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return DefaultTag(), false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := ParseTag(value); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return MatchTags(tags), false
		}
	}
	return DefaultTag(), false
}

// SetLanguageCookie persists tag on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// LanguageURL returns path with the language parameter set to tag.
func LanguageURL(path, rawQuery string, tag language.Tag) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag.String())
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
