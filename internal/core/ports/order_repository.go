// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the matching-service
// client, and the order event publisher. These interfaces enable dependency
// inversion and testability.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates
// and their immutable item lines.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// AddItems persists the order lines snapshotted from the bucket.
	// Items are immutable; there is no update or delete.
	AddItems(ctx context.Context, items []order.Item) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetItems retrieves the order lines for one order.
	GetItems(ctx context.Context, orderID kernel.UUID) ([]order.Item, error)

	// Complete transitions the order to FINISHED with a conditional update:
	// the row changes only while its status is still IN_PROGRESS.
	// Returns order.ErrAlreadyFinished when the guard matches no row, so
	// concurrent completions cannot both succeed.
	Complete(ctx context.Context, id kernel.UUID) error

	// SetRating attaches a rating with a conditional update: the row
	// changes only while its rating is still unset. Returns
	// order.ErrAlreadyRated when the guard matches no row, upholding the
	// rated-at-most-once invariant under concurrency.
	SetRating(ctx context.Context, id kernel.UUID, rating int) error

	// RecentCourierRatings returns the courier's rating values over
	// finished, rated orders, newest first, capped at limit.
	RecentCourierRatings(ctx context.Context, courierID kernel.UUID, limit int) ([]int, error)
}
