package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
)

var ErrGetBucketItemsQueryIsNotConstructed = errors.New(
	"GetBucketItemsQuery must be created via NewGetBucketItemsQuery constructor",
)

// GetBucketItemsQuery retrieves a user's bucket rows. Readable by the
// bucket owner and roles that may inspect any bucket.
type GetBucketItemsQuery struct {
	claims auth.Claims
	userID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetBucketItemsQuery creates a bucket-view query.
func NewGetBucketItemsQuery(claims auth.Claims, userID kernel.UUID) (GetBucketItemsQuery, error) {
	if err := errors.Join(
		claims.Validate(),
		userID.Validate(),
	); err != nil {
		return GetBucketItemsQuery{}, err
	}

	return GetBucketItemsQuery{
		claims: claims,
		userID: userID,
		guard:  kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBucketItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetBucketItemsQueryIsNotConstructed)
}

// Claims returns the caller's resolved identity.
func (q GetBucketItemsQuery) Claims() auth.Claims {
	return q.claims
}

// UserID returns the bucket owner's id.
func (q GetBucketItemsQuery) UserID() kernel.UUID {
	return q.userID
}

// BucketItemResponse is one row of a user's bucket.
type BucketItemResponse struct {
	UserID    kernel.UUID
	ProductID kernel.UUID
	Amount    int
}
