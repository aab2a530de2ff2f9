package ports

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
)

var (
	// ErrAddedToQueue signals that the matching service had no free courier
	// and enrolled the user in its wait queue instead. This is a
	// control-flow outcome, not a fault: checkout stops without creating
	// an order and the caller retries later.
	ErrAddedToQueue = errors.New("added to queue")

	// ErrCourierServiceUnavailable is returned when the matching service
	// cannot be reached or answers with a transport-level failure. The
	// core does not retry; the request fails as upstream-unavailable.
	ErrCourierServiceUnavailable = errors.New("courier service unavailable")
)

// QueueStatus describes a user's position in the matching service's wait queue.
type QueueStatus struct {
	Status         string
	AvgWaitingTime int
}

// CourierClient is the outbound contract with the external matching
// service. All calls are synchronous and blocking; transport failures
// surface as ErrCourierServiceUnavailable with no automatic retry.
type CourierClient interface {
	// FindCourier asks for a free courier for the user. Returns the
	// assigned courier id, or ErrAddedToQueue when the service queued the
	// user instead of assigning.
	FindCourier(ctx context.Context, userID kernel.UUID) (kernel.UUID, error)

	// WaitForCourier polls the user's queue state.
	WaitForCourier(ctx context.Context, userID kernel.UUID) (QueueStatus, error)

	// UpdateCourierRating pushes a recomputed reputation score upstream.
	UpdateCourierRating(ctx context.Context, courierID kernel.UUID, rating float64) error
}
