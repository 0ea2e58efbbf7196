package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its line items straight from the
// database, bypassing the aggregate. The read model carries wire names for
// channel and status so HTTP handlers can serialize it without touching
// domain types.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(tenant, orderID)
//
//	response, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order: %v", err)
//	    return err
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when no order
// with the given id exists for the resolved tenant; an order owned by
// another restaurant is indistinguishable from a missing one.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			channel,
			status,
			status_reason,
			table_number,
			customer_name,
			delivery_address,
			subtotal,
			tax,
			tip,
			total,
			version,
			created_at,
			updated_at
		FROM orders
		WHERE id = ? AND restaurant_id = ?
	`, query.OrderID().Bytes(), query.Tenant().RestaurantID().Bytes()).Row()

	var response GetOrderQueryResponse
	var id uuid.UUID
	var channel, status int

	err := row.Scan(
		&id,
		&response.OrderNumber,
		&channel,
		&status,
		&response.StatusReason,
		&response.TableNumber,
		&response.CustomerName,
		&response.DeliveryAddress,
		&response.Subtotal,
		&response.Tax,
		&response.Tip,
		&response.Total,
		&response.Version,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.ID = orderID
	response.Channel = order.Channel(channel).String()
	response.Status = order.Status(status).String()

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.Items = items

	return response, nil
}

// storedModifier mirrors the jsonb layout of one applied modifier.
type storedModifier struct {
	ModifierID uuid.UUID `json:"modifierId"`
	Name       string    `json:"name"`
	PriceDelta int64     `json:"priceDelta"`
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			menu_item_id,
			name,
			unit_price,
			quantity,
			special_instructions,
			modifiers
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var item OrderItemResponse
		var id, menuItemID uuid.UUID
		var rawModifiers []byte

		err = rows.Scan(
			&id,
			&menuItemID,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
			&item.SpecialInstructions,
			&rawModifiers,
		)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = itemID

		catalogID, idErr := kernel.UUIDFromBytes(menuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		item.MenuItemID = catalogID

		modifiers, modErr := modifiersFromJSON(rawModifiers)
		if modErr != nil {
			return nil, modErr
		}
		item.Modifiers = modifiers

		item.Total = item.UnitPrice * int64(item.Quantity)
		for _, m := range item.Modifiers {
			item.Total += m.PriceDelta
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func modifiersFromJSON(raw []byte) ([]OrderItemModifierResponse, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var stored []storedModifier
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	modifiers := make([]OrderItemModifierResponse, 0, len(stored))
	for _, m := range stored {
		modifierID, err := kernel.UUIDFromBytes(m.ModifierID[:])
		if err != nil {
			return nil, err
		}
		modifiers = append(modifiers, OrderItemModifierResponse{
			ModifierID: modifierID,
			Name:       m.Name,
			PriceDelta: m.PriceDelta,
		})
	}

	return modifiers, nil
}
