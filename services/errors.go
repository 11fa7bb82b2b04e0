package services

import (
	"fmt"

	"NeuroScanAI/models"
)

// ValidationError is a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AuthError is a missing, invalid or expired credential.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ForbiddenError is a resolved identity acting on something it does not own.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

type TransitionError struct {
	From models.AppointmentStatus
	To   models.AppointmentStatus
	Err  error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("appointment is already %s, cannot move to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return e.Err }

func missingField(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
