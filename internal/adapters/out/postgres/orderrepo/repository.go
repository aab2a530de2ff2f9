package orderrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AddItems bulk-inserts the order's item snapshot.
func (r *GormOrderRepository) AddItems(ctx context.Context, items []order.Item) error {
	if len(items) == 0 {
		return nil
	}

	dtos := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, itemFromDomain(item))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetItems retrieves the item snapshot of one order, in insertion order.
func (r *GormOrderRepository) GetItems(ctx context.Context, orderID kernel.UUID) ([]order.Item, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderItemDTO
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := itemToDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// Complete transitions the order to the finished status. The update is
// conditional on the row still being in progress, so of two concurrent
// completions exactly one wins; the other observes zero affected rows.
func (r *GormOrderRepository) Complete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), order.StatusInProgress.String()).
		Updates(map[string]any{
			"status":     order.StatusFinished.String(),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return order.ErrAlreadyFinished
	}

	return nil
}

// SetRating attaches a rating to the order. The update is conditional on
// the rating column still being NULL, upholding rate-at-most-once under
// concurrent requests.
func (r *GormOrderRepository) SetRating(ctx context.Context, id kernel.UUID, rating int) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND rating IS NULL", id.Bytes()).
		Updates(map[string]any{
			"rating":     rating,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return order.ErrAlreadyRated
	}

	return nil
}

// RecentCourierRatings returns the courier's rating values over finished,
// rated orders, most recently updated first, capped at limit.
func (r *GormOrderRepository) RecentCourierRatings(
	ctx context.Context,
	courierID kernel.UUID,
	limit int,
) ([]int, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	ratings := make([]int, 0, limit)
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("courier_id = ? AND status = ? AND rating IS NOT NULL",
			courierID.Bytes(), order.StatusFinished.String()).
		Order("updated_at DESC").
		Limit(limit).
		Pluck("rating", &ratings).Error
	if err != nil {
		return nil, err
	}

	return ratings, nil
}
