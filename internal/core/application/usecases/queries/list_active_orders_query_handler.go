package queries

import (
	"context"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListActiveOrdersQueryHandler retrieves open orders from the database for
// board displays. Orders are returned oldest first so the board reads in
// arrival order.
//
// Example:
//
//	handler := NewListActiveOrdersQueryHandler(db)
//	query, _ := NewListActiveOrdersQuery(tenant, order.Preparing)
//
//	board, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list active orders: %v", err)
//	    return err
//	}
type ListActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewListActiveOrdersQueryHandler(db *gorm.DB) ListActiveOrdersQueryHandler {
	return ListActiveOrdersQueryHandler{db: db}
}

// Handle executes the query against the tenant's orders. The item count is
// aggregated in SQL so the board never loads line item rows.
func (h ListActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListActiveOrdersQuery,
) ([]ListActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := []int{int(order.Pending), int(order.Confirmed), int(order.Preparing), int(order.Ready)}
	if query.Status() != order.Unknown {
		statuses = []int{int(query.Status())}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.channel,
			o.status,
			o.table_number,
			o.total,
			COUNT(i.id),
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.restaurant_id = ? AND o.status IN ?
		GROUP BY o.id
		ORDER BY o.created_at
	`, query.Tenant().RestaurantID().Bytes(), statuses).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListActiveOrdersQueryResponse, 0)
	for rows.Next() {
		var response ListActiveOrdersQueryResponse
		var id uuid.UUID
		var channel, status int

		err = rows.Scan(
			&id,
			&response.OrderNumber,
			&channel,
			&status,
			&response.TableNumber,
			&response.Total,
			&response.ItemCount,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID
		response.Channel = order.Channel(channel).String()
		response.Status = order.Status(status).String()

		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
