package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentOpen marks input that cannot be read as a document package.
	ErrDocumentOpen = errors.New("document cannot be opened")
	// ErrInvalidContainerKind is returned when blocks are requested from a node
	// that cannot contain paragraphs or tables.
	ErrInvalidContainerKind = errors.New("invalid container kind")
	// ErrMalformedTableShape is returned when a recognized table has fewer rows
	// than its template requires.
	ErrMalformedTableShape = errors.New("malformed table shape")
)

// ConvertError is the base error type with context.
type ConvertError struct {
	Phase      string // "config", "scan", "load", "convert", "template", "write"
	File       string
	Message    string
	Suggestion string
	Cause      error
}

func (e *ConvertError) Error() string {
	s := fmt.Sprintf("[%s]", e.Phase)
	if e.File != "" {
		s += fmt.Sprintf(" %s", e.File)
	}
	s += fmt.Sprintf(": %s", e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	if e.Suggestion != "" {
		s += fmt.Sprintf(" (hint: %s)", e.Suggestion)
	}
	return s
}

func (e *ConvertError) Unwrap() error {
	return e.Cause
}

// NewError creates a new ConvertError.
func NewError(phase, file, message string, cause error) *ConvertError {
	return &ConvertError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// NewErrorWithSuggestion creates a ConvertError carrying a hint for the user.
func NewErrorWithSuggestion(phase, file, message, suggestion string, cause error) *ConvertError {
	return &ConvertError{
		Phase:      phase,
		File:       file,
		Message:    message,
		Suggestion: suggestion,
		Cause:      cause,
	}
}
