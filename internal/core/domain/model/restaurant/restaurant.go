// Package restaurant contains the tenant aggregate. A restaurant is the
// identity boundary for every other entity: orders, menu items, and events
// all carry a restaurant id and are scoped by it in every query.
package restaurant

import (
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
)

// ErrRestaurantIsNotConstructed is returned when a Restaurant instance was
// not created through the NewRestaurant factory method.
var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// Restaurant is a single tenant: one restaurant's isolated data and
// operational scope.
type Restaurant struct {
	id           kernel.UUID
	name         string
	contactEmail string
	contactPhone string

	isConstructed bool
}

// NewRestaurant creates a restaurant with validation.
func NewRestaurant(id kernel.UUID, name, contactEmail, contactPhone string) (*Restaurant, error) {
	r := &Restaurant{
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
	); err != nil {
		return nil, err
	}

	r.contactEmail = contactEmail
	r.contactPhone = contactPhone
	return r, nil
}

// Validate ensures the Restaurant instance was properly constructed.
func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

// ID returns the tenant identifier.
func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

// Name returns the restaurant name.
func (r *Restaurant) Name() string {
	return r.name
}

// ContactEmail returns the contact email, if any.
func (r *Restaurant) ContactEmail() string {
	return r.contactEmail
}

// ContactPhone returns the contact phone, if any.
func (r *Restaurant) ContactPhone() string {
	return r.contactPhone
}

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("restaurant name")
	}
	r.name = name
	return nil
}
