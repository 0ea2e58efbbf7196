// Package restaurantrepo provides data transfer objects and mapping
// functions for restaurant persistence.
package restaurantrepo

import (
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

// RestaurantDTO represents the database structure for restaurant records.
type RestaurantDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	ContactEmail string    `gorm:"type:varchar(255)"`
	ContactPhone string    `gorm:"type:varchar(63)"`
}

// TableName specifies the database table name for restaurant entities.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// fromDomain converts a restaurant aggregate to its database representation.
func fromDomain(aggregate *restaurant.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		ContactEmail: aggregate.ContactEmail(),
		ContactPhone: aggregate.ContactPhone(),
	}
}

// toDomain converts a database DTO to a restaurant aggregate.
func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return restaurant.NewRestaurant(id, dto.Name, dto.ContactEmail, dto.ContactPhone)
}
