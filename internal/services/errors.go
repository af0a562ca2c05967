package services

import (
	"errors"
	"fmt"
)

// Sentinel errors handlers branch on to pick a status code.
var (
	ErrNotFound     = errors.New("not found")
	ErrEmailTaken   = errors.New("email is already registered")
	ErrBadPassword  = errors.New("invalid email or password")
	ErrForbidden    = errors.New("not allowed")
	ErrNoChanges    = errors.New("no changes to apply")
	ErrProfileStage = errors.New("profile already completed")
)

// ValidationError carries a field-level message from request validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TransitionError reports an illegal status transition.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}
