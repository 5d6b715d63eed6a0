package service

import (
	"errors"
	"fmt"

	"github.com/akashgouda-01/dept-changes/internal/model"
)

var (
	ErrIDRequired = errors.New("certificate id is required")
	ErrNotFound   = errors.New("certificate not found")

	// ErrFacultyNotFound is returned when a roster lookup names an unknown faculty.
	ErrFacultyNotFound = errors.New("faculty not found")

	// ErrInvalidTransition is returned when a state-machine precondition is violated.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrConflictingResult is returned when two different ML outcomes are reported
	// for the same certificate.
	ErrConflictingResult = errors.New("conflicting ml result")

	// ErrUpstreamFailure marks a verifier error or timeout. The certificate stays
	// SUBMITTED and the check can be retried.
	ErrUpstreamFailure = errors.New("ml verifier failure")

	// ErrStoreUnavailable marks a persistence failure. No partial writes are assumed.
	ErrStoreUnavailable = errors.New("certificate store unavailable")
)

// EntryError pinpoints one invalid entry in a batch upload.
type EntryError struct {
	Index  int    `json:"index"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError rejects a whole upload batch and lists the offending entries.
type ValidationError struct {
	Message string       `json:"message"`
	Entries []EntryError `json:"entries,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Entries) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%d invalid entries)", e.Message, len(e.Entries))
}

// TransitionError carries the actual current state so the caller can reconcile.
type TransitionError struct {
	Op      string
	Current model.State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: invalid transition from state %s", e.Op, e.Current)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}

func upstreamError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUpstreamFailure, err)
}
