// Package menurepo provides data transfer objects and mapping functions for
// the catalog read model. Catalog rows are replicated from the owning
// catalog service; this package only reads them.
package menurepo

import (
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"

	"github.com/google/uuid"
)

// MenuItemDTO represents the database structure of a catalog item.
// Maps menu domain entities to relational database tables with proper foreign key relationships.
type MenuItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Price        int64     `gorm:"not null"`
	Available    bool      `gorm:"not null"`

	Modifiers []MenuModifierDTO `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for catalog items.
// Overrides GORM's default naming convention to use "menu_items".
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// MenuModifierDTO represents a modifier legal for one catalog item.
// Links to its item via foreign key; the price delta may be negative.
type MenuModifierDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	PriceDelta int64     `gorm:"not null"`
}

// TableName specifies the database table name for item modifiers.
func (MenuModifierDTO) TableName() string {
	return "menu_item_modifiers"
}

// toDomain converts a database DTO to a catalog item.
func toDomain(dto MenuItemDTO) (*menu.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	modifiers := make([]menu.Modifier, 0, len(dto.Modifiers))
	for _, modifierDTO := range dto.Modifiers {
		modifier, modErr := modifierToDomain(modifierDTO)
		if modErr != nil {
			return nil, modErr
		}
		modifiers = append(modifiers, modifier)
	}

	return menu.NewItem(id, restaurantID, dto.Name, kernel.NewMoney(dto.Price), dto.Available, modifiers)
}

func modifierToDomain(dto MenuModifierDTO) (menu.Modifier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return menu.Modifier{}, err
	}

	return menu.NewModifier(id, dto.Name, kernel.NewMoney(dto.PriceDelta))
}
