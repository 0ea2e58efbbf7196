package menurepo

import (
	"context"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMenuRepository implements MenuRepository using GORM.
type GormMenuRepository struct {
	db *gorm.DB
}

// NewGormMenuRepository creates a new GORM catalog repository.
func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// GetItems retrieves the catalog items with the given ids belonging to the
// restaurant, with their modifiers. Ids not owned by the restaurant are
// silently absent from the result.
func (r *GormMenuRepository) GetItems(
	ctx context.Context,
	restaurantID kernel.UUID,
	ids []kernel.UUID,
) ([]*menu.Item, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*menu.Item{}, nil
	}

	rawIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		rawIDs = append(rawIDs, id.Bytes())
	}

	var dtos []MenuItemDTO
	err := r.db.WithContext(ctx).Preload("Modifiers").
		Where("restaurant_id = ? AND id IN ?", restaurantID.Bytes(), rawIDs).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	items := make([]*menu.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, itemErr := toDomain(dto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return items, nil
}
