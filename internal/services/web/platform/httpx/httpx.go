// Package httpx provides HTTP middleware helpers for the demo service.
package httpx

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	"github.com/louisbranch/crumbtrail/internal/platform/requestctx"
)

// RequestIDHeader carries the request correlation id.
const RequestIDHeader = "X-Request-ID"

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

var requestIDCounter atomic.Uint64

// Chain applies middleware in declaration order.
func Chain(handler http.Handler, middleware ...Middleware) http.Handler {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	wrapped := handler
	for idx := len(middleware) - 1; idx >= 0; idx-- {
		if middleware[idx] == nil {
			continue
		}
		wrapped = middleware[idx](wrapped)
	}
	return wrapped
}

// RequireMethod rejects requests outside the allowed method.
func RequireMethod(method string) Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
				w.Header().Set("Allow", method)
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID reuses or assigns a request id, echoes it on the response and
// stores it in the request context.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if requestID == "" {
				requestID = fmt.Sprintf("crumb-%d-%d", time.Now().UnixNano(), requestIDCounter.Add(1))
			}
			w.Header().Set(RequestIDHeader, requestID)
			ctx := requestctx.WithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RecoverPanic converts panics into HTTP 500 responses.
func RecoverPanic() Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					log.Printf(
						"panic recovered method=%s path=%s request_id=%s panic=%v stack=%s",
						r.Method,
						r.URL.Path,
						requestIDOrDash(r),
						recovered,
						strings.TrimSpace(string(debug.Stack())),
					)
					w.WriteHeader(http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Printf(
				"http request method=%s path=%s status=%d duration=%s request_id=%s",
				r.Method,
				r.URL.Path,
				rec.status,
				time.Since(start).Round(time.Microsecond),
				requestIDOrDash(r),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestIDOrDash(r *http.Request) string {
	if id := requestctx.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.Header.Get(RequestIDHeader)); id != "" {
		return id
	}
	return "-"
}

// WriteHTML writes an HTML payload with the provided status code.
func WriteHTML(w http.ResponseWriter, status int, payload string) error {
	if w == nil {
		return fmt.Errorf("response writer is required")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := io.WriteString(w, payload)
	return err
}
