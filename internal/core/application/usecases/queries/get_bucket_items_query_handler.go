package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBucketItemsQueryHandler reads a user's bucket rows.
type GetBucketItemsQueryHandler struct {
	db           *gorm.DB
	policyEngine *services.PolicyEngine
}

// NewGetBucketItemsQueryHandler creates a handler for bucket views.
func NewGetBucketItemsQueryHandler(db *gorm.DB, policyEngine *services.PolicyEngine) GetBucketItemsQueryHandler {
	return GetBucketItemsQueryHandler{db: db, policyEngine: policyEngine}
}

// Handle executes the bucket view. An empty bucket returns an empty slice,
// not an error. Rows come back oldest first, in insertion order.
func (h GetBucketItemsQueryHandler) Handle(ctx context.Context, query GetBucketItemsQuery) ([]BucketItemResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	allowed := h.policyEngine.HasAccess(services.CapabilityInspectAnyBucket, query.Claims()) ||
		query.Claims().UserID().IsEqual(query.UserID())
	if !allowed {
		return nil, services.ErrForbidden
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			user_id,
			product_id,
			amount
		FROM bucket_items
		WHERE user_id = ?
		ORDER BY created_at
	`, query.UserID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]BucketItemResponse, 0)
	for rows.Next() {
		var (
			item              BucketItemResponse
			userID, productID uuid.UUID
		)

		if err = rows.Scan(&userID, &productID, &item.Amount); err != nil {
			return nil, err
		}

		if item.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
