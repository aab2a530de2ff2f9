package bucketrepo

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/bucket"
	"orderflow/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormBucketRepository implements ports.BucketRepository using GORM.
type GormBucketRepository struct {
	db *gorm.DB
}

// NewGormBucketRepository creates a new GORM bucket repository.
func NewGormBucketRepository(db *gorm.DB) *GormBucketRepository {
	return &GormBucketRepository{db: db}
}

// Add inserts a new bucket row. Existing rows for the same product are
// left alone; the bucket never merges amounts.
func (r *GormBucketRepository) Add(ctx context.Context, item bucket.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByUser retrieves all bucket rows of one user, oldest first.
func (r *GormBucketRepository) GetByUser(ctx context.Context, userID kernel.UUID) ([]bucket.Item, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BucketItemDTO
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "user_id = ?", userID.Bytes()).Error; err != nil {
		return nil, err
	}

	items := make([]bucket.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// RemoveItem deletes every row of the (user, product) pair. Deleting a
// product that is not in the bucket is a no-op.
func (r *GormBucketRepository) RemoveItem(ctx context.Context, userID, productID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if err := productID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID.Bytes(), productID.Bytes()).
		Delete(&BucketItemDTO{}).Error
}

// Clear deletes all rows of one user.
func (r *GormBucketRepository) Clear(ctx context.Context, userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Delete(&BucketItemDTO{}).Error
}

// ClearOlderThan deletes rows created before the cutoff across all users
// and reports how many rows went away.
func (r *GormBucketRepository) ClearOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&BucketItemDTO{})

	return result.RowsAffected, result.Error
}
