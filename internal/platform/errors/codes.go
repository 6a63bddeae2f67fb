// Package errors provides structured error codes for breadcrumb resolution
// and their mapping onto HTTP responses.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Breadcrumb selection errors
	CodeBreadcrumbInvalidUsage Code = "BREADCRUMB_INVALID_USAGE"

	// Breadcrumb resolution errors
	CodeBreadcrumbUnknown    Code = "BREADCRUMB_UNKNOWN"
	CodeBreadcrumbCyclic     Code = "BREADCRUMB_CYCLIC"
	CodeBreadcrumbRuleFailed Code = "BREADCRUMB_RULE_FAILED"

	// Breadcrumb definition errors
	CodeBreadcrumbDefinitionInvalid Code = "BREADCRUMB_DEFINITION_INVALID"

	// Page errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus returns the HTTP status a response should carry for the code.
// Breadcrumb failures are template or definition authoring bugs and map to 500.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// LocalizationKey returns the message key used for user-facing text.
func (c Code) LocalizationKey() string {
	switch c {
	case CodeNotFound:
		return "errors.not_found"
	case "":
		return "errors.unknown"
	default:
		return "errors.internal"
	}
}
