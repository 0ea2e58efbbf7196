package http

import (
	"time"

	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/services"
)

// SubmitOrderRequest is the body of POST /api/v1/orders. Amounts are minor
// currency units as computed by the client; the server verifies them against
// the catalog and rejects any disagreement rather than silently recomputing.
type SubmitOrderRequest struct {
	Channel         string                   `json:"channel" validate:"required"`
	TableNumber     string                   `json:"tableNumber,omitempty"`
	CustomerName    string                   `json:"customerName,omitempty"`
	DeliveryAddress string                   `json:"deliveryAddress,omitempty"`
	Items           []SubmitOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Subtotal        int64                    `json:"subtotal" validate:"min=0"`
	Tax             int64                    `json:"tax" validate:"min=0"`
	Tip             int64                    `json:"tip" validate:"min=0"`
	Total           int64                    `json:"total" validate:"min=0"`
}

// SubmitOrderItemRequest is one requested line of a submission.
type SubmitOrderItemRequest struct {
	MenuItemID          string   `json:"menuItemId" validate:"required,uuid"`
	Quantity            int      `json:"quantity" validate:"required,min=1"`
	ModifierIDs         []string `json:"modifierIds,omitempty" validate:"omitempty,dive,uuid"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
}

// toSubmission converts the request into the domain submission. Channel and
// id parsing errors surface here; business validation happens in the
// order validator.
func (r SubmitOrderRequest) toSubmission() (services.Submission, error) {
	channel, err := order.ChannelFromString(r.Channel)
	if err != nil {
		return services.Submission{}, err
	}

	items := make([]services.SubmissionItem, 0, len(r.Items))
	for _, item := range r.Items {
		menuItemID, idErr := kernel.UUIDFromString(item.MenuItemID)
		if idErr != nil {
			return services.Submission{}, idErr
		}

		modifierIDs := make([]kernel.UUID, 0, len(item.ModifierIDs))
		for _, raw := range item.ModifierIDs {
			modifierID, modErr := kernel.UUIDFromString(raw)
			if modErr != nil {
				return services.Submission{}, modErr
			}
			modifierIDs = append(modifierIDs, modifierID)
		}

		items = append(items, services.SubmissionItem{
			MenuItemID:          menuItemID,
			Quantity:            item.Quantity,
			ModifierIDs:         modifierIDs,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	return services.Submission{
		Channel:          channel,
		TableNumber:      r.TableNumber,
		CustomerName:     r.CustomerName,
		DeliveryAddress:  r.DeliveryAddress,
		Items:            items,
		DeclaredSubtotal: kernel.NewMoney(r.Subtotal),
		DeclaredTax:      kernel.NewMoney(r.Tax),
		DeclaredTip:      kernel.NewMoney(r.Tip),
		DeclaredTotal:    kernel.NewMoney(r.Total),
	}, nil
}

// ChangeOrderStatusRequest is the body of POST /api/v1/orders/:id/status.
// ExpectedVersion is the version the client last read; a stale value gets a
// 409 so the client re-reads instead of clobbering a concurrent change.
type ChangeOrderStatusRequest struct {
	Status          string `json:"status" validate:"required"`
	ExpectedVersion int    `json:"expectedVersion" validate:"required,min=1"`
	Reason          string `json:"reason,omitempty"`
}

// OrderResponse is the full representation of an order.
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	Channel         string              `json:"channel"`
	Status          string              `json:"status"`
	StatusReason    string              `json:"statusReason,omitempty"`
	TableNumber     string              `json:"tableNumber,omitempty"`
	CustomerName    string              `json:"customerName,omitempty"`
	DeliveryAddress string              `json:"deliveryAddress,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        int64               `json:"subtotal"`
	Tax             int64               `json:"tax"`
	Tip             int64               `json:"tip"`
	Total           int64               `json:"total"`
	Version         int                 `json:"version"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// OrderItemResponse is one line of an order response.
type OrderItemResponse struct {
	ID                  string                  `json:"id"`
	MenuItemID          string                  `json:"menuItemId"`
	Name                string                  `json:"name"`
	UnitPrice           int64                   `json:"unitPrice"`
	Quantity            int                     `json:"quantity"`
	Modifiers           []OrderModifierResponse `json:"modifiers,omitempty"`
	SpecialInstructions string                  `json:"specialInstructions,omitempty"`
	Total               int64                   `json:"total"`
}

// OrderModifierResponse is one applied modifier of a line.
type OrderModifierResponse struct {
	ModifierID string `json:"modifierId"`
	Name       string `json:"name"`
	PriceDelta int64  `json:"priceDelta"`
}

// OrderSummaryResponse is one row of the active orders board.
type OrderSummaryResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Channel     string    `json:"channel"`
	Status      string    `json:"status"`
	TableNumber string    `json:"tableNumber,omitempty"`
	Total       int64     `json:"total"`
	ItemCount   int       `json:"itemCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// orderResponseFromAggregate serializes a domain order after a command.
func orderResponseFromAggregate(aggregate *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		modifiers := make([]OrderModifierResponse, 0, len(item.Modifiers()))
		for _, m := range item.Modifiers() {
			modifiers = append(modifiers, OrderModifierResponse{
				ModifierID: m.ModifierID().String(),
				Name:       m.Name(),
				PriceDelta: m.PriceDelta().Amount(),
			})
		}

		items = append(items, OrderItemResponse{
			ID:                  item.ID().String(),
			MenuItemID:          item.MenuItemID().String(),
			Name:                item.Name(),
			UnitPrice:           item.UnitPrice().Amount(),
			Quantity:            item.Quantity(),
			Modifiers:           modifiers,
			SpecialInstructions: item.SpecialInstructions(),
			Total:               item.Total().Amount(),
		})
	}

	return OrderResponse{
		ID:              aggregate.ID().String(),
		OrderNumber:     aggregate.OrderNumber(),
		Channel:         aggregate.Channel().String(),
		Status:          aggregate.Status().String(),
		StatusReason:    aggregate.StatusReason(),
		TableNumber:     aggregate.Fulfillment().TableNumber(),
		CustomerName:    aggregate.Fulfillment().CustomerName(),
		DeliveryAddress: aggregate.Fulfillment().DeliveryAddress(),
		Items:           items,
		Subtotal:        aggregate.Charges().Subtotal().Amount(),
		Tax:             aggregate.Charges().Tax().Amount(),
		Tip:             aggregate.Charges().Tip().Amount(),
		Total:           aggregate.Charges().Total().Amount(),
		Version:         aggregate.Version(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}
}

// orderResponseFromQuery serializes the read model of one order.
func orderResponseFromQuery(result queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		modifiers := make([]OrderModifierResponse, 0, len(item.Modifiers))
		for _, m := range item.Modifiers {
			modifiers = append(modifiers, OrderModifierResponse{
				ModifierID: m.ModifierID.String(),
				Name:       m.Name,
				PriceDelta: m.PriceDelta,
			})
		}

		items = append(items, OrderItemResponse{
			ID:                  item.ID.String(),
			MenuItemID:          item.MenuItemID.String(),
			Name:                item.Name,
			UnitPrice:           item.UnitPrice,
			Quantity:            item.Quantity,
			Modifiers:           modifiers,
			SpecialInstructions: item.SpecialInstructions,
			Total:               item.Total,
		})
	}

	return OrderResponse{
		ID:              result.ID.String(),
		OrderNumber:     result.OrderNumber,
		Channel:         result.Channel,
		Status:          result.Status,
		StatusReason:    result.StatusReason,
		TableNumber:     result.TableNumber,
		CustomerName:    result.CustomerName,
		DeliveryAddress: result.DeliveryAddress,
		Items:           items,
		Subtotal:        result.Subtotal,
		Tax:             result.Tax,
		Tip:             result.Tip,
		Total:           result.Total,
		Version:         result.Version,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}
}

// summariesFromQuery serializes the active orders board.
func summariesFromQuery(results []queries.ListActiveOrdersQueryResponse) []OrderSummaryResponse {
	summaries := make([]OrderSummaryResponse, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, OrderSummaryResponse{
			ID:          r.ID.String(),
			OrderNumber: r.OrderNumber,
			Channel:     r.Channel,
			Status:      r.Status,
			TableNumber: r.TableNumber,
			Total:       r.Total,
			ItemCount:   r.ItemCount,
			CreatedAt:   r.CreatedAt,
		})
	}
	return summaries
}
