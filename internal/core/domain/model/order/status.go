package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the delivery lifecycle state of an order.
// It implements a monotonic state machine: an order starts in progress
// and can only move forward to finished, never back.
//
// State transitions:
//
//	InProgress ──> Finished
//
// Status is a value object that validates state transitions and provides
// the wire/storage representation used by the persistence layer.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusInProgress is the initial status assigned at creation:
	// a courier is on the way and the delivery has not finished yet.
	StatusInProgress

	// StatusFinished indicates the courier completed the delivery.
	// This is the terminal status; a rating may still be attached afterwards.
	StatusFinished
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "UNKNOWN",
		StatusInProgress: "IN_PROGRESS",
		StatusFinished:   "FINISHED",
	}
}

// StatusFromString parses the storage representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the storage representation of the status
// ("IN_PROGRESS", "FINISHED"). Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the Status is one of the recognised values.
func (s Status) Validate() error {
	if s != StatusInProgress && s != StatusFinished {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Complete transitions the status to Finished.
//
// Valid transitions:
//   - InProgress -> Finished
//
// Any other current status returns ErrAlreadyFinished: the state machine
// is monotonic and a finished order can never be completed again.
func (s Status) Complete() (Status, error) {
	if s != StatusInProgress {
		return 0, ErrAlreadyFinished
	}
	return StatusFinished, nil
}
