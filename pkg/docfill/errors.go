package docfill

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Placeholder grammar failures. They are reported per token wrapped in a
// *PlaceholderError and never abort a whole-document traversal.
var (
	// ErrInvalidInput is returned when the token is not valid UTF-8 text.
	ErrInvalidInput = errors.New("invalid placeholder input")
	// ErrMalformedPlaceholder is returned when a token uses a bracket grammar but breaks its rules.
	ErrMalformedPlaceholder = errors.New("malformed placeholder")
	// ErrUnrecognizedGrammar is returned when a token matches neither bracket grammar.
	ErrUnrecognizedGrammar = errors.New("unrecognized placeholder grammar")
)

// errMissingRunMapping marks a match whose span has no covering runs. It is
// only ever logged, never returned.
var errMissingRunMapping = errors.New("no runs cover placeholder span")

// PlaceholderError reports which token failed to parse and why
type PlaceholderError struct {
	Token  string
	Reason string
	Err    error
}

func (e *PlaceholderError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v %q: %s", e.Err, e.Token, e.Reason)
	}
	return fmt.Sprintf("%v %q", e.Err, e.Token)
}

func (e *PlaceholderError) Unwrap() error {
	return e.Err
}

func newPlaceholderError(token string, err error, reason string) error {
	return &PlaceholderError{Token: token, Reason: reason, Err: err}
}

// DocumentError is a failure to open, read or write a document package or a
// file that accompanies it.
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	var sb strings.Builder
	sb.WriteString("docfill: ")
	sb.WriteString(e.Operation)
	if e.Path != "" {
		sb.WriteString(" " + strconv.Quote(e.Path))
	}
	if e.Cause != nil {
		sb.WriteString(": " + e.Cause.Error())
	}
	return sb.String()
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// MultiError collects the per-token failures of one pass over an inventory.
type MultiError struct {
	errors []error
}

func NewMultiError() *MultiError {
	return &MultiError{}
}

// Add records err. Nil errors are dropped.
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len returns the number of errors
func (m *MultiError) Len() int {
	return len(m.errors)
}

// Errors returns the collected errors.
func (m *MultiError) Errors() []error {
	return m.errors
}

// Err returns the multi-error or nil if empty
func (m *MultiError) Err() error {
	if len(m.errors) == 0 {
		return nil
	}
	if len(m.errors) == 1 {
		return m.errors[0]
	}
	return m
}

func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return "no errors"
	}

	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors occurred:", len(m.errors))
	for i, err := range m.errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap lets errors.Is and errors.As see every collected error.
func (m *MultiError) Unwrap() []error {
	return m.errors
}

// IsDocumentError checks if an error is a document error
func IsDocumentError(err error) bool {
	var de *DocumentError
	return errors.As(err, &de)
}

// IsPlaceholderError checks if an error is a placeholder grammar error
func IsPlaceholderError(err error) bool {
	var pe *PlaceholderError
	return errors.As(err, &pe)
}
