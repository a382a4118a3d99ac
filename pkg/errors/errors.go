// Package errors provides custom error types for the tabmatch system.
// These errors let callers tell user-correctable input problems apart from
// collaborator I/O failures, background task failures and cancellations.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the tabmatch system
var (
	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrRead indicates that a dataset could not be read
	ErrRead = errors.New("read failed")

	// ErrWrite indicates that results could not be written
	ErrWrite = errors.New("write failed")

	// ErrLocked indicates the destination is open or locked by another program
	ErrLocked = errors.New("destination locked")

	// ErrTask indicates that a background comparison task failed
	ErrTask = errors.New("task failed")

	// ErrCanceled indicates that an operation was canceled by the user
	ErrCanceled = errors.New("operation canceled")

	// ErrEmptyDataset indicates a dataset without any records
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrInvalidState indicates an operation was called in the wrong lifecycle state
	ErrInvalidState = errors.New("invalid state")
)

// ValidationError represents a validation failure detected before any task starts
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
	Err     error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Unwrap returns the underlying cause, if any
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ReadError represents a failure to load a dataset
type ReadError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ReadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("read error for %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("read error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ReadError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

// NewReadError creates a new ReadError
func NewReadError(path string, err error) *ReadError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ReadError{Path: path, Message: message, Err: err}
}

// WriteError represents a failure to export results
type WriteError struct {
	Path    string
	Locked  bool
	Message string
	Err     error
}

// Error implements the error interface
func (e *WriteError) Error() string {
	if e.Locked {
		return fmt.Sprintf("write error for %s: destination is open or locked by another program", e.Path)
	}
	return fmt.Sprintf("write error for %s: %s", e.Path, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *WriteError) Is(target error) bool {
	if target == ErrWrite {
		return true
	}
	return e.Locked && target == ErrLocked
}

// NewWriteError creates a new WriteError
func NewWriteError(path string, locked bool, err error) *WriteError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &WriteError{Path: path, Locked: locked, Message: message, Err: err}
}

// TaskError represents an unhandled failure inside a background comparison loop.
// Panics recovered by the task runner are carried in Err.
type TaskError struct {
	Operation string
	Err       error
}

// Error implements the error interface
func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s failed: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TaskError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TaskError) Is(target error) bool {
	return target == ErrTask
}

// NewTaskError creates a new TaskError
func NewTaskError(operation string, err error) *TaskError {
	return &TaskError{Operation: operation, Err: err}
}

// StateError reports a lifecycle transition that is not allowed
type StateError struct {
	Operation string
	State     string
}

// Error implements the error interface
func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Operation, e.State)
}

// Is implements errors.Is support
func (e *StateError) Is(target error) bool {
	return target == ErrInvalidState
}

// NewStateError creates a new StateError
func NewStateError(operation, state string) *StateError {
	return &StateError{Operation: operation, State: state}
}

// Helper functions for error checking

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsReadError checks if an error is a dataset read error
func IsReadError(err error) bool {
	return errors.Is(err, ErrRead)
}

// IsWriteError checks if an error is a results write error
func IsWriteError(err error) bool {
	return errors.Is(err, ErrWrite)
}

// IsLocked checks if an error is caused by a locked destination
func IsLocked(err error) bool {
	return errors.Is(err, ErrLocked)
}

// IsTaskError checks if an error is a background task failure
func IsTaskError(err error) bool {
	return errors.Is(err, ErrTask)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error(), Err: err}
}

// WrapRead wraps an error as a ReadError
func WrapRead(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewReadError(path, err)
}

// WrapWrite wraps an error as a WriteError
func WrapWrite(path string, locked bool, err error) error {
	if err == nil {
		return nil
	}
	return NewWriteError(path, locked, err)
}
