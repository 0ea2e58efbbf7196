// Package menu contains the catalog read model. The order core treats menu
// items and modifiers as read-only lookups owned by a separate catalog
// collaborator; it validates orders against them but never mutates them.
package menu

import (
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("menu Item must be created via NewItem constructor")

// Modifier is an option legal for a specific menu item, with a price delta
// in minor currency units. Deltas may be negative.
type Modifier struct {
	id         kernel.UUID
	name       string
	priceDelta kernel.Money
}

// NewModifier creates a catalog modifier.
func NewModifier(id kernel.UUID, name string, priceDelta kernel.Money) (Modifier, error) {
	if err := id.Validate(); err != nil {
		return Modifier{}, err
	}
	if name == "" {
		return Modifier{}, errs.NewValueIsRequiredError("modifier name")
	}
	return Modifier{id: id, name: name, priceDelta: priceDelta}, nil
}

// ID returns the modifier identifier.
func (m Modifier) ID() kernel.UUID {
	return m.id
}

// Name returns the modifier name.
func (m Modifier) Name() string {
	return m.name
}

// PriceDelta returns the price adjustment.
func (m Modifier) PriceDelta() kernel.Money {
	return m.priceDelta
}

// Item is a sellable catalog entry belonging to one restaurant. Its current
// price is the source for the price snapshot captured onto line items at
// order time.
type Item struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	name         string
	price        kernel.Money
	available    bool
	modifiers    []Modifier

	isConstructed bool
}

// NewItem creates a catalog item with validation.
func NewItem(
	id kernel.UUID,
	restaurantID kernel.UUID,
	name string,
	price kernel.Money,
	available bool,
	modifiers []Modifier,
) (*Item, error) {
	item := &Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setRestaurantID(restaurantID),
		item.setName(name),
		price.ValidateNonNegative("price"),
	); err != nil {
		return nil, err
	}

	item.price = price
	item.available = available
	item.modifiers = append([]Modifier(nil), modifiers...)
	return item, nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// RestaurantID returns the owning tenant.
func (i *Item) RestaurantID() kernel.UUID {
	return i.restaurantID
}

// Name returns the item name.
func (i *Item) Name() string {
	return i.name
}

// Price returns the current catalog price.
func (i *Item) Price() kernel.Money {
	return i.price
}

// IsAvailable reports whether the item can currently be ordered.
func (i *Item) IsAvailable() bool {
	return i.available
}

// Modifiers returns the modifiers legal for this item. The returned slice
// is a copy.
func (i *Item) Modifiers() []Modifier {
	return append([]Modifier(nil), i.modifiers...)
}

// FindModifier returns the modifier with the given id, if it is legal for
// this item.
func (i *Item) FindModifier(id kernel.UUID) (Modifier, bool) {
	for _, m := range i.modifiers {
		if m.id.IsEqual(id) {
			return m, true
		}
	}
	return Modifier{}, false
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.restaurantID = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}
