// Package apperrors holds the error kinds the membership workflow and the
// session resolver report. Controllers translate them to HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input the caller can correct.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing team, user or request.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyInTeam is returned when a user already belongs to a team
	// in the target league.
	ErrAlreadyInTeam = errors.New("user already belongs to a team in this league")

	// ErrAlreadyRequested is returned when the user already has a pending
	// join request in the target league.
	ErrAlreadyRequested = errors.New("user already has a pending join request in this league")

	// ErrAuthorization marks an operation reserved for another role,
	// typically the team leader.
	ErrAuthorization = errors.New("not authorized to perform this operation")

	// ErrProfileIncomplete marks a caller who has not set their matricula.
	ErrProfileIncomplete = errors.New("profile incomplete")
)

// PersistenceError wraps a storage failure with the operation it broke.
// A persistence failure is never treated as "unauthenticated" or "absent".
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err as a PersistenceError. Returns nil when err is nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// Validation builds a correctable-input error carrying msg.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
