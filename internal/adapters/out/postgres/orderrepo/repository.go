package orderrepo

import (
	"context"
	"errors"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
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

// Add saves a new order and its line items to the database.
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

// Update saves an existing order using a conditional write. The row is
// updated only if it still carries the version the aggregate was loaded
// at; the new row gets version+1. Zero affected rows means another writer
// won the race (or the order vanished), reported as a
// ConcurrentModificationError either way.
//
// Line items are immutable after submission, so only the header row is
// written.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND restaurant_id = ? AND version = ?", dto.ID, dto.RestaurantID, dto.Version).
		Updates(map[string]any{
			"status":        dto.Status,
			"status_reason": dto.StatusReason,
			"version":       dto.Version + 1,
			"updated_at":    dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("order", aggregate.ID().String(), aggregate.Version())
	}

	// The advance assumes the surrounding transaction commits. If the
	// commit later fails the aggregate is one ahead of the row and must be
	// discarded, which every handler does on the error path.
	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID within the given restaurant. An order that
// exists under another restaurant is reported exactly like one that does
// not exist.
func (r *GormOrderRepository) Get(ctx context.Context, restaurantID, id kernel.UUID) (*order.Order, error) {
	if err := errors.Join(restaurantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items", orderedItems).
		First(&dto, "id = ? AND restaurant_id = ?", id.Bytes(), restaurantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves the restaurant's non-terminal orders, oldest
// first.
func (r *GormOrderRepository) GetAllActive(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items", orderedItems).
		Where("restaurant_id = ? AND status IN ?", restaurantID.Bytes(), activeStatuses()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetStalePending retrieves pending orders created before the cutoff,
// across all restaurants. Serves the pending timeout sweep.
func (r *GormOrderRepository) GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items", orderedItems).
		Where("status = ? AND created_at < ?", int(order.Pending), cutoff).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// orderedItems pins the line item preload to a stable order so receipts
// render lines the same way on every read. The read side sorts by the same
// column.
func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func activeStatuses() []int {
	return []int{
		int(order.Pending),
		int(order.Confirmed),
		int(order.Preparing),
		int(order.Ready),
	}
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
