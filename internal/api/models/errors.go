package models

import (
	"errors"
	"fmt"
)

// Domain error kinds returned by the engine. Handlers map each kind to a
// specific HTTP status and user-facing message.
var (
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrConflict           = errors.New("conflict")
	ErrAlreadySigned      = errors.New("contract already signed")
	ErrVoided             = errors.New("contract is void")
	ErrAlreadyConverted   = errors.New("lead already converted")
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("record not found")
)

// InvalidTransitionError carries the rejected edge so callers can surface
// which move was illegal instead of a generic failure.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: illegal transition %s -> %s", e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

func NewInvalidTransition(entity, from, to string) error {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}
