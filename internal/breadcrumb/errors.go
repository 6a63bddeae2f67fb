package breadcrumb

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/crumbtrail/internal/platform/errors"
)

// InvalidUsageError reports a selection call without a usable key, usually
// a template that meant to render the trail instead.
type InvalidUsageError struct {
	// Got is the value passed as the key.
	Got any
}

func (e *InvalidUsageError) Error() string {
	return fmt.Sprintf(
		"breadcrumb was called with %#v as the key. breadcrumb selects the current page's breadcrumb; "+
			"to render the trail call breadcrumbs (plural) instead",
		e.Got,
	)
}

// ErrorCode implements apperrors.Coder.
func (e *InvalidUsageError) ErrorCode() apperrors.Code {
	return apperrors.CodeBreadcrumbInvalidUsage
}

// UnknownBreadcrumbError reports a key absent from the Registry.
type UnknownBreadcrumbError struct {
	Key Key
	// Child is the definition whose parent rule produced Key, if any.
	Child Key
}

func (e *UnknownBreadcrumbError) Error() string {
	if e.Child != "" {
		return fmt.Sprintf("breadcrumb %q not defined (parent of %q)", e.Key, e.Child)
	}
	return fmt.Sprintf("breadcrumb %q not defined", e.Key)
}

// ErrorCode implements apperrors.Coder.
func (e *UnknownBreadcrumbError) ErrorCode() apperrors.Code {
	return apperrors.CodeBreadcrumbUnknown
}

// CyclicBreadcrumbError reports a parent chain that revisits a key.
type CyclicBreadcrumbError struct {
	// Path lists the keys walked, ending with the repeated key.
	Path []Key
}

func (e *CyclicBreadcrumbError) Error() string {
	parts := make([]string, 0, len(e.Path))
	for _, key := range e.Path {
		parts = append(parts, string(key))
	}
	return "breadcrumb parent cycle: " + strings.Join(parts, " -> ")
}

// ErrorCode implements apperrors.Coder.
func (e *CyclicBreadcrumbError) ErrorCode() apperrors.Code {
	return apperrors.CodeBreadcrumbCyclic
}

// RuleError reports a rule that failed to evaluate.
type RuleError struct {
	Key   Key
	Field string
	Err   error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("breadcrumb %q %s: %v", e.Key, e.Field, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// ErrorCode implements apperrors.Coder.
func (e *RuleError) ErrorCode() apperrors.Code {
	return apperrors.CodeBreadcrumbRuleFailed
}
