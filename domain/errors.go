package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound  ErrorCode = "NOT_FOUND"
	ErrCodeInvalid   ErrorCode = "INVALID"
	ErrCodeConflict  ErrorCode = "CONFLICT"
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	ErrCodeInternal  ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrUserNotFound = NewError(ErrCodeNotFound, "user not found")
	// ErrAssigneeNotFound rejects task creation for an unregistered user id.
	ErrAssigneeNotFound = NewError(ErrCodeNotFound, "assignee not found")
	// ErrTaskNotFound covers both a missing task id and a task owned by
	// someone else; callers must not be able to tell the two apart.
	ErrTaskNotFound = NewError(ErrCodeNotFound, "task not found or not assigned to you")
	// ErrTaskAlreadyDone guards the assigned->done transition against repeats.
	ErrTaskAlreadyDone = NewError(ErrCodeConflict, "task is already done")
	// ErrNoTasks signals an empty task set to the reporting command; no sink
	// output is produced in that case.
	ErrNoTasks        = NewError(ErrCodeNotFound, "no tasks to report")
	ErrDialogNotFound = NewError(ErrCodeNotFound, "dialog not found")
	ErrAdminOnly      = NewError(ErrCodeForbidden, "command restricted to admins")
	ErrInvalidPayload = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
