// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Every query against this table is scoped by restaurant_id; the composite
// index serves the active-orders board, which filters by restaurant and
// status.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID    uuid.UUID `gorm:"type:uuid;index:idx_orders_restaurant_status"`
	OrderNumber     string
	Channel         int
	Status          int `gorm:"index:idx_orders_restaurant_status;index:idx_orders_status_created"`
	StatusReason    string
	TableNumber     string
	CustomerName    string
	DeliveryAddress string
	Subtotal        int64
	Tax             int64
	Tip             int64
	Total           int64
	Version         int
	CreatedAt       time.Time `gorm:"index:idx_orders_status_created"`
	UpdatedAt       time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one line of an order. Name and unit price are
// snapshots taken at order time; later catalog edits never touch them.
type OrderItemDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID          uuid.UUID `gorm:"type:uuid"`
	Name                string
	UnitPrice           int64
	Quantity            int
	Modifiers           ModifiersJSON `gorm:"type:jsonb"`
	SpecialInstructions string
}

// TableName specifies the database table name for order line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// ModifierJSON is the stored form of one applied modifier snapshot.
type ModifierJSON struct {
	ModifierID uuid.UUID `json:"modifierId"`
	Name       string    `json:"name"`
	PriceDelta int64     `json:"priceDelta"`
}

// ModifiersJSON stores the applied modifiers of a line item as a jsonb
// column. Modifiers are snapshots owned by the line, never references into
// the catalog, so a document column fits better than a join table.
type ModifiersJSON []ModifierJSON

// Value implements driver.Valuer for jsonb storage.
func (m ModifiersJSON) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner for jsonb retrieval.
func (m *ModifiersJSON) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type %T for ModifiersJSON", value)
	}
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemFromDomain(aggregate.ID(), item))
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		RestaurantID:    aggregate.RestaurantID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		Channel:         int(aggregate.Channel()),
		Status:          int(aggregate.Status()),
		StatusReason:    aggregate.StatusReason(),
		TableNumber:     aggregate.Fulfillment().TableNumber(),
		CustomerName:    aggregate.Fulfillment().CustomerName(),
		DeliveryAddress: aggregate.Fulfillment().DeliveryAddress(),
		Subtotal:        aggregate.Charges().Subtotal().Amount(),
		Tax:             aggregate.Charges().Tax().Amount(),
		Tip:             aggregate.Charges().Tip().Amount(),
		Total:           aggregate.Charges().Total().Amount(),
		Version:         aggregate.Version(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		Items:           items,
	}
}

func itemFromDomain(orderID kernel.UUID, item order.LineItem) OrderItemDTO {
	modifiers := make(ModifiersJSON, 0, len(item.Modifiers()))
	for _, m := range item.Modifiers() {
		modifiers = append(modifiers, ModifierJSON{
			ModifierID: m.ModifierID().Bytes(),
			Name:       m.Name(),
			PriceDelta: m.PriceDelta().Amount(),
		})
	}

	return OrderItemDTO{
		ID:                  item.ID().Bytes(),
		OrderID:             orderID.Bytes(),
		MenuItemID:          item.MenuItemID().Bytes(),
		Name:                item.Name(),
		UnitPrice:           item.UnitPrice().Amount(),
		Quantity:            item.Quantity(),
		Modifiers:           modifiers,
		SpecialInstructions: item.SpecialInstructions(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, reason, and version
// using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	charges, err := order.NewCharges(
		kernel.NewMoney(dto.Subtotal),
		kernel.NewMoney(dto.Tax),
		kernel.NewMoney(dto.Tip),
		kernel.NewMoney(dto.Total),
	)
	if err != nil {
		return nil, err
	}

	fulfillment := order.RestoreFulfillment(dto.TableNumber, dto.CustomerName, dto.DeliveryAddress)

	return order.RestoreOrder(
		id,
		restaurantID,
		order.Channel(dto.Channel),
		dto.OrderNumber,
		fulfillment,
		items,
		charges,
		order.Status(dto.Status),
		dto.StatusReason,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func itemToDomain(dto OrderItemDTO) (order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	modifiers := make([]order.ModifierSelection, 0, len(dto.Modifiers))
	for _, m := range dto.Modifiers {
		modifierID, modErr := kernel.UUIDFromBytes(m.ModifierID[:])
		if modErr != nil {
			return order.LineItem{}, modErr
		}
		selection, modErr := order.NewModifierSelection(modifierID, m.Name, kernel.NewMoney(m.PriceDelta))
		if modErr != nil {
			return order.LineItem{}, modErr
		}
		modifiers = append(modifiers, selection)
	}

	return order.NewLineItem(
		id,
		menuItemID,
		dto.Name,
		kernel.NewMoney(dto.UnitPrice),
		dto.Quantity,
		modifiers,
		dto.SpecialInstructions,
	)
}
