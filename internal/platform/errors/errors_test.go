package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

type codedError struct{ code Code }

func (e codedError) Error() string   { return string(e.code) }
func (e codedError) ErrorCode() Code { return e.code }

func TestErrorIsMatchesByCode(t *testing.T) {
	err := Wrap(CodeBreadcrumbUnknown, "breadcrumb missing", stderrors.New("lookup"))
	if !stderrors.Is(err, New(CodeBreadcrumbUnknown, "")) {
		t.Fatalf("expected errors.Is to match by code")
	}
	if stderrors.Is(err, New(CodeBreadcrumbCyclic, "")) {
		t.Fatalf("expected errors.Is to reject a different code")
	}
}

func TestErrorUnwrapReturnsCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(CodeBreadcrumbRuleFailed, "rule failed", cause)
	if !stderrors.Is(err, cause) {
		t.Fatalf("expected cause in chain")
	}
}

func TestWithMetadataKeepsMetadata(t *testing.T) {
	err := WithMetadata(CodeBreadcrumbUnknown, "missing", map[string]string{"key": "home"})
	if err.Metadata["key"] != "home" {
		t.Fatalf("Metadata[key] = %q, want %q", err.Metadata["key"], "home")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: stderrors.New("x"), want: CodeUnknown},
		{name: "domain", err: New(CodeNotFound, "missing"), want: CodeNotFound},
		{name: "wrapped coder", err: fmt.Errorf("render: %w", codedError{code: CodeBreadcrumbCyclic}), want: CodeBreadcrumbCyclic},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CodeOf(tc.err); got != tc.want {
				t.Fatalf("CodeOf() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	if got := HTTPStatus(nil); got != http.StatusOK {
		t.Fatalf("HTTPStatus(nil) = %d, want %d", got, http.StatusOK)
	}
	if got := HTTPStatus(New(CodeNotFound, "missing")); got != http.StatusNotFound {
		t.Fatalf("HTTPStatus(not found) = %d, want %d", got, http.StatusNotFound)
	}
	if got := HTTPStatus(codedError{code: CodeBreadcrumbUnknown}); got != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus(unknown breadcrumb) = %d, want %d", got, http.StatusInternalServerError)
	}
}

func TestLocalizationKey(t *testing.T) {
	if got := CodeNotFound.LocalizationKey(); got != "errors.not_found" {
		t.Fatalf("LocalizationKey = %q, want %q", got, "errors.not_found")
	}
	if got := CodeBreadcrumbCyclic.LocalizationKey(); got != "errors.internal" {
		t.Fatalf("LocalizationKey = %q, want %q", got, "errors.internal")
	}
}
