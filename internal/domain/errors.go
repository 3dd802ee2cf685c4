package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrContentRootNotFound indicates the content root does not exist
	ErrContentRootNotFound = errors.New("content root not found")

	// ErrContentRootNotDir indicates the content root is not a directory
	ErrContentRootNotDir = errors.New("content root is not a directory")

	// ErrWriteFailed indicates writing the manifest failed
	ErrWriteFailed = errors.New("write failed")

	// ErrInvalidOrder indicates an unknown traversal order was configured
	ErrInvalidOrder = errors.New("invalid traversal order")

	// ErrInvalidPathMode indicates an unknown relative path mode was configured
	ErrInvalidPathMode = errors.New("invalid path mode")

	// ErrTemplateRender indicates a manifest template could not be rendered
	ErrTemplateRender = errors.New("template render failed")
)

// TraversalError represents a failure while enumerating the content root
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("traversal error at %s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}

// NewTraversalError creates a new TraversalError
func NewTraversalError(path string, err error) *TraversalError {
	return &TraversalError{
		Path: path,
		Err:  err,
	}
}

// WriteError represents a failure while writing the output manifest.
// It matches ErrWriteFailed with errors.Is.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error for %s (%s): %v", e.Path, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailed
}

// NewWriteError creates a new WriteError
func NewWriteError(path, op string, err error) *WriteError {
	return &WriteError{
		Path: path,
		Op:   op,
		Err:  err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// IsTraversalFailure reports whether err stems from enumerating the content root
func IsTraversalFailure(err error) bool {
	var traversal *TraversalError
	if errors.As(err, &traversal) {
		return true
	}
	return errors.Is(err, ErrContentRootNotFound) || errors.Is(err, ErrContentRootNotDir)
}
