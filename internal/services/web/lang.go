package web

import (
	"context"
	"net/http"

	"github.com/louisbranch/crumbtrail/internal/breadcrumb"
	"github.com/louisbranch/crumbtrail/internal/platform/i18n"
	"github.com/louisbranch/crumbtrail/internal/services/web/platform/httpx"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type languageContextKey struct{}

// withLanguage resolves the visitor language once per request and persists
// an explicit ?lang= choice in a cookie.
func withLanguage() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag, persist := i18n.ResolveTag(r)
			if persist {
				i18n.SetLanguageCookie(w, tag)
			}
			ctx := context.WithValue(r.Context(), languageContextKey{}, tag)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func languageFromContext(ctx context.Context) language.Tag {
	if ctx == nil {
		return i18n.DefaultTag()
	}
	if tag, ok := ctx.Value(languageContextKey{}).(language.Tag); ok {
		return tag
	}
	return i18n.DefaultTag()
}

func printerFromContext(ctx context.Context) *message.Printer {
	return i18n.Printer(languageFromContext(ctx))
}

// requestLocalizer feeds breadcrumb message rules the request language.
func requestLocalizer(r *http.Request) breadcrumb.Localizer {
	return printerFromContext(r.Context())
}
