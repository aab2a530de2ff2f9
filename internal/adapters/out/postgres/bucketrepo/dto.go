// Package bucketrepo provides data transfer objects and mapping functions
// for bucket persistence. Bucket rows are append-only until they are
// removed, cleared, drained by checkout, or purged as stale.
package bucketrepo

import (
	"time"

	"orderflow/internal/core/domain/model/bucket"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BucketItemDTO represents one bucket row. A surrogate key is used because
// adding the same product twice intentionally produces two rows.
type BucketItemDTO struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Amount    int
	CreatedAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "bucket_items".
func (BucketItemDTO) TableName() string {
	return "bucket_items"
}

// fromDomain converts a bucket row to its database representation.
func fromDomain(item bucket.Item) BucketItemDTO {
	return BucketItemDTO{
		UserID:    item.UserID().Bytes(),
		ProductID: item.ProductID().Bytes(),
		Amount:    item.Amount(),
	}
}

// toDomain converts a database row back to a bucket row.
func toDomain(dto BucketItemDTO) (bucket.Item, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return bucket.Item{}, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return bucket.Item{}, err
	}

	return bucket.NewItem(userID, productID, dto.Amount)
}
