package model

import (
	"errors"
	"fmt"
)

// DecodeError reports a document that could not be opened or
// rasterized. It is fatal to the extraction and propagated to the
// caller without retry. Parsing misses are not errors; they surface as
// absent fields on ExtractedData.
type DecodeError struct {
	Path    string
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode %s: %s (%v)", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("decode %s: %s", e.Path, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// NewDecodeError creates a new decode error.
func NewDecodeError(path, message string, cause error) *DecodeError {
	return &DecodeError{Path: path, Message: message, Cause: cause}
}

// IsDecodeError reports whether err wraps a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// ExtractionError reports a failure in an extraction backend (for
// example the LLM assist), with the method that failed.
type ExtractionError struct {
	Method  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed [%s]: %s (%v)", e.Method, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed [%s]: %s", e.Method, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// NewExtractionError creates a new extraction error.
func NewExtractionError(method, message string, cause error) *ExtractionError {
	return &ExtractionError{Method: method, Message: message, Cause: cause}
}
