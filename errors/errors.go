// Package errors holds the error kinds shared by every layer of hive-signal.
// Callers branch on kinds with Is/As, never on message text.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

var (
	ErrValidation           = fmt.Errorf("validation failed")
	ErrUnauthenticated      = fmt.Errorf("not authenticated")
	ErrNoIdentity           = fmt.Errorf("no identity on carrier")
	ErrPersistence          = fmt.Errorf("failed to save message")
	ErrGateway              = fmt.Errorf("sms dispatch failed")
	ErrGatewayNotConfigured = fmt.Errorf("gateway not configured")
	ErrInvalidCredentials   = fmt.Errorf("invalid username or password")
	ErrUserAlreadyExists    = fmt.Errorf("username has already been taken")
	ErrUserNotFound         = fmt.Errorf("user not found")
	ErrTokenGeneration      = fmt.Errorf("token generation failed")
	ErrInvalidPayload       = fmt.Errorf("invalid event payload")
)

// Violation is one rule broken by one field.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	return v.Field + " " + v.Message
}

// ValidationError lists every violated field of a rejected input.
type ValidationError struct {
	Violations []Violation
}

func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, ", ")
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Fields returns the names of the violated fields, in order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// Is and As forward to the standard library so callers need a single import.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }
