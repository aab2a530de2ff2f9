// Package notification defines the ephemeral courier-status events fanned
// out to subscribed clients. Events exist only on the in-process delivery
// path: they are never persisted and are lost if no subscriber is listening.
package notification

import (
	"orderflow/internal/core/domain/model/kernel"
)

// Kind classifies a courier-status change.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindCreated signals that a courier search was started for the user.
	KindCreated

	// KindDeleted signals that a courier search was cancelled.
	KindDeleted

	// KindCompleted signals that the matching service found a courier.
	KindCompleted

	// KindExpired signals that the user's wait in the matching queue ran out.
	KindExpired
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:   "UNKNOWN",
		KindCreated:   "CREATED",
		KindDeleted:   "DELETED",
		KindCompleted: "COMPLETED",
		KindExpired:   "EXPIRED",
	}
}

// String returns the wire representation of the kind. Implements fmt.Stringer.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "UNKNOWN"
}

// CourierStatusEvent notifies one user about a courier-status change.
// Delivery is best-effort, at-most-once, with no replay.
type CourierStatusEvent struct {
	Kind   Kind
	UserID kernel.UUID
}
