package breadcrumb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStateFromContextRoundTrip(t *testing.T) {
	state := NewState(nil, nil)
	if got := StateFromContext(WithState(context.Background(), state)); got != state {
		t.Fatalf("StateFromContext() = %p, want %p", got, state)
	}
	if got := StateFromContext(context.Background()); got != nil {
		t.Fatalf("StateFromContext() = %p, want nil", got)
	}
	if got := StateFromContext(nil); got != nil {
		t.Fatalf("StateFromContext(nil) = %p, want nil", got)
	}
}

func TestMiddlewareInstallsFreshStatePerRequest(t *testing.T) {
	registry := catalogRegistry(t)
	var seen []*State
	handler := Middleware(Static(registry), func(*http.Request) Localizer {
		return fakeLocalizer{}
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := StateFromContext(r.Context())
		if state == nil {
			t.Fatal("expected state on request context")
		}
		if key, _ := state.Selected(); key != "" {
			t.Fatalf("fresh state has selection %q", key)
		}
		_ = state.Breadcrumb("home")
		seen = append(seen, state)
	}))

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	if len(seen) != 2 || seen[0] == seen[1] {
		t.Fatalf("expected two distinct states, got %v", seen)
	}
}
