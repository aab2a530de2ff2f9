package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/bucket"
	"orderflow/internal/core/domain/model/kernel"
)

// BucketRepository defines the persistence contract for bucket rows.
// Adding never merges with an existing (user, product) pair; each call
// creates a new row.
type BucketRepository interface {
	// Add inserts a new bucket row.
	Add(ctx context.Context, item bucket.Item) error

	// GetByUser retrieves all bucket rows of one user, oldest first.
	GetByUser(ctx context.Context, userID kernel.UUID) ([]bucket.Item, error)

	// RemoveItem deletes every row of the (user, product) pair.
	RemoveItem(ctx context.Context, userID, productID kernel.UUID) error

	// Clear deletes all rows of one user. Used both by the explicit
	// clear-bucket operation and to drain the bucket after checkout.
	Clear(ctx context.Context, userID kernel.UUID) error

	// ClearOlderThan deletes rows created before the cutoff across all
	// users and reports how many rows went away. Used by the stale-bucket
	// purge job.
	ClearOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
