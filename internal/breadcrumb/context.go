package breadcrumb

import (
	"context"
	"net/http"
)

type stateContextKey struct{}

// WithState stores a breadcrumb State in context.
func WithState(ctx context.Context, state *State) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, stateContextKey{}, state)
}

// StateFromContext returns the State stored in context, or nil.
func StateFromContext(ctx context.Context) *State {
	if ctx == nil {
		return nil
	}
	state, _ := ctx.Value(stateContextKey{}).(*State)
	return state
}

// RegistrySource returns the Registry new requests should use.
type RegistrySource interface {
	Registry() *Registry
}

type staticSource struct {
	registry *Registry
}

func (s staticSource) Registry() *Registry {
	return s.registry
}

// Static wraps a fixed Registry as a RegistrySource.
func Static(registry *Registry) RegistrySource {
	return staticSource{registry: registry}
}

// Middleware installs a fresh State on every request. The State keeps the
// Registry current at request start even if the source reloads mid-request.
func Middleware(source RegistrySource, localizer func(*http.Request) Localizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var registry *Registry
			if source != nil {
				registry = source.Registry()
			}
			var loc Localizer
			if localizer != nil {
				loc = localizer(r)
			}
			state := NewState(registry, loc)
			next.ServeHTTP(w, r.WithContext(WithState(r.Context(), state)))
		})
	}
}
