package breadcrumb

import (
	"fmt"
	"testing"

	"golang.org/x/text/message"
)

func catalogRegistry(t *testing.T, extra ...Definition) *Registry {
	t.Helper()
	defs := append([]Definition{
		{Key: "home", Text: Text("Home"), URL: Text("/")},
		{
			Key:    "category",
			Text:   MustExpr("arg.name"),
			URL:    MustExpr(`"/categories/" + string(arg.id)`),
			Parent: ParentKey("home"),
		},
	}, extra...)
	registry, err := NewRegistry(defs...)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return registry
}

func books() map[string]any {
	return map[string]any{"id": 5, "name": "Books"}
}

type fakeLocalizer map[string]string

func (f fakeLocalizer) Sprintf(key message.Reference, args ...any) string {
	s, _ := key.(string)
	if format, ok := f[s]; ok {
		return fmt.Sprintf(format, args...)
	}
	return s
}
