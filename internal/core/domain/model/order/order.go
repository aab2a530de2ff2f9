package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

const (
	// MinRating and MaxRating bound the score a user may attach to a
	// finished delivery.
	MinRating = 1
	MaxRating = 5
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrAlreadyFinished is returned when completing an order that is not in progress.
	ErrAlreadyFinished = errors.New("order is already finished")

	// ErrAlreadyRated is returned when rating an order whose rating is already set.
	ErrAlreadyRated = errors.New("order is already rated")

	// ErrAddressIsRequired is returned when an order is created without a delivery address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
)

// Order is the aggregate root for a checked-out bucket bound to one courier.
//
// Order maintains these invariants:
//   - identity, user and courier ids are valid UUIDs
//   - the delivery address is never empty
//   - status moves monotonically from InProgress to Finished
//   - the rating transitions from absent to present at most once, and only
//     carries values in [MinRating, MaxRating]
//
// Fields are private; all mutation goes through Complete and Rate, which
// enforce the state machine. Orders are never deleted.
type Order struct {
	id        kernel.UUID
	userID    kernel.UUID
	courierID kernel.UUID
	rating    *int
	status    Status
	address   string
	createdAt time.Time
	updatedAt time.Time

	guard kernel.ConstructorGuard
}

// NewOrder creates an in-progress order for a user, bound to the courier
// the matching service assigned. Both timestamps are set to now.
func NewOrder(id, userID, courierID kernel.UUID, address string) (*Order, error) {
	if address == "" {
		return nil, ErrAddressIsRequired
	}

	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		courierID.Validate(),
	); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Order{
		id:        id,
		userID:    userID,
		courierID: courierID,
		status:    StatusInProgress,
		address:   address,
		createdAt: now,
		updatedAt: now,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// creation-time rules. The stored state is still validated: identifiers,
// status and rating bounds must hold for the aggregate to be usable.
func RestoreOrder(
	id, userID, courierID kernel.UUID,
	rating *int,
	status Status,
	address string,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if address == "" {
		return nil, ErrAddressIsRequired
	}

	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		courierID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if rating != nil && (*rating < MinRating || *rating > MaxRating) {
		return nil, errs.NewValueIsOutOfRangeError("rating", *rating, MinRating, MaxRating)
	}

	return &Order{
		id:        id,
		userID:    userID,
		courierID: courierID,
		rating:    rating,
		status:    status,
		address:   address,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the identifier of the user who placed the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// CourierID returns the identifier of the courier delivering the order.
func (o *Order) CourierID() kernel.UUID {
	return o.courierID
}

// Rating returns the attached rating, or nil while the order is unrated.
func (o *Order) Rating() *int {
	return o.rating
}

// Status returns the current delivery status.
func (o *Order) Status() Status {
	return o.status
}

// Address returns the delivery address.
func (o *Order) Address() string {
	return o.address
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order last changed.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Complete marks the delivery as finished.
// Returns ErrAlreadyFinished if the order is not in progress.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = time.Now().UTC()
	return nil
}

// Rate attaches a delivery rating.
// Returns ErrAlreadyRated if a rating is already present, and a range error
// for values outside [MinRating, MaxRating]. Rate does not check the
// estimation window; that is a workflow rule owned by the use case layer.
func (o *Order) Rate(rating int) error {
	if o.rating != nil {
		return ErrAlreadyRated
	}
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}

	o.rating = &rating
	o.updatedAt = time.Now().UTC()
	return nil
}
