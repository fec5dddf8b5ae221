package manifest

import (
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
	ErrCodeConfigParse      = "CONFIG_PARSE"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeFileNotFound     = "FILE_NOT_FOUND"
)

// UserError is an error meant to be shown to the person who wrote the manifest.
type UserError struct {
	Code       string // Error code for categorization (e.g., "CONFIG_PARSE")
	Message    string // User-friendly error message
	Context    string // File path or manifest location
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the message followed by its location, if any.
func (e *UserError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s (at %s)", e.Message, e.Context)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted error with all details.
func (e *UserError) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, "\n  Location: %s", e.Context)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, "\n  Details: %v", e.Underlying)
	}

	return b.String()
}

// Sentinels for errors.Is comparisons.
var (
	ErrConfigNotFound   = &UserError{Code: ErrCodeConfigNotFound}
	ErrConfigParse      = &UserError{Code: ErrCodeConfigParse}
	ErrValidationFailed = &UserError{Code: ErrCodeValidationFailed}
	ErrFileNotFound     = &UserError{Code: ErrCodeFileNotFound}
)

// NewConfigNotFoundError reports a missing manifest.
func NewConfigNotFoundError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigNotFound,
		Message:    "manifest not found",
		Context:    path,
		Suggestion: "Check the path, or create a manifest with a top-level 'steps' list",
	}
}

// NewParseError reports a manifest that is not valid YAML or TOML.
func NewParseError(path string, format Format, err error) *UserError {
	return &UserError{
		Code:       ErrCodeConfigParse,
		Message:    fmt.Sprintf("invalid %s syntax", format),
		Context:    path,
		Suggestion: "Check indentation and quoting; the file must contain a top-level 'steps' list",
		Underlying: err,
	}
}

// NewSourceNotFoundError reports a file step whose source cannot be read.
func NewSourceNotFoundError(field, source string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeFileNotFound,
		Message:    fmt.Sprintf("source file %q not found", source),
		Context:    field,
		Suggestion: "Source paths are resolved relative to the manifest's directory",
		Underlying: err,
	}
}

// ErrorList accumulates validation errors so they can be reported together.
type ErrorList struct {
	errors []*UserError
}

// NewErrorList creates an empty ErrorList.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add adds an error to the list.
func (l *ErrorList) Add(err *UserError) {
	if err != nil {
		l.errors = append(l.errors, err)
	}
}

// AddValidation adds a validation error for a manifest field.
func (l *ErrorList) AddValidation(field, message, suggestion string) {
	l.Add(&UserError{
		Code:       ErrCodeValidationFailed,
		Message:    fmt.Sprintf("%s: %s", field, message),
		Context:    field,
		Suggestion: suggestion,
	})
}

// HasErrors returns true if there are any errors.
func (l *ErrorList) HasErrors() bool {
	return len(l.errors) > 0
}

// Len returns the number of errors.
func (l *ErrorList) Len() int {
	return len(l.errors)
}

// Errors returns a copy of the collected errors.
func (l *ErrorList) Errors() []*UserError {
	out := make([]*UserError, len(l.errors))
	copy(out, l.errors)
	return out
}

// Error implements the error interface.
func (l *ErrorList) Error() string {
	switch len(l.errors) {
	case 0:
		return ""
	case 1:
		return l.errors[0].Message
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred:\n", len(l.errors))
	for i, err := range l.errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Message)
	}
	return b.String()
}

// Is matches ErrValidationFailed when the list holds a validation error.
func (l *ErrorList) Is(target error) bool {
	for _, err := range l.errors {
		if err.Is(target) {
			return true
		}
	}
	return false
}

// ErrOrNil returns the list as an error, or nil when it is empty.
func (l *ErrorList) ErrOrNil() error {
	if !l.HasErrors() {
		return nil
	}
	return l
}
