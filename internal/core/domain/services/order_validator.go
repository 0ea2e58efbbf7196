package services

import (
	"fmt"

	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"
)

// Submission is the canonical intermediate representation every channel is
// normalized into before validation. POS, kiosk, voice, and delivery
// payloads all arrive here in the same shape, so the validator and the
// state machine see a single canonical form and no channel receives
// special-cased trust.
//
// Declared financial fields are claims to be verified against server-side
// computation, never authoritative input.
type Submission struct {
	Channel          order.Channel
	TableNumber      string
	CustomerName     string
	DeliveryAddress  string
	Items            []SubmissionItem
	DeclaredSubtotal kernel.Money
	DeclaredTax      kernel.Money
	DeclaredTip      kernel.Money
	DeclaredTotal    kernel.Money
}

// SubmissionItem is one requested line within a Submission.
type SubmissionItem struct {
	MenuItemID          kernel.UUID
	Quantity            int
	ModifierIDs         []kernel.UUID
	SpecialInstructions string
}

// OrderValidator is the domain service that turns a raw channel submission
// into a validated order aggregate.
//
// It runs every check in one pass and collects all field-level failures
// into a single ValidationError, so a client can correct every issue at
// once. Any failing check aborts the whole submission: no partial order is
// ever built.
//
// Business rules enforced:
//   - every line references a menu item that exists, is available, and
//     belongs to the resolved tenant
//   - quantity is a positive integer
//   - each declared modifier is legal for its parent item
//   - declared subtotal equals the catalog-computed sum of lines
//   - tax and tip are non-negative; total equals subtotal + tax + tip in
//     exact integer arithmetic (mismatch is rejected, never recomputed)
//   - per-channel required fields are present
//
// Example usage:
//
//	validator := services.NewOrderValidator()
//	o, err := validator.Validate(tenantCtx, submission, catalogItems, orderID, orderNumber)
//	var vErr *errs.ValidationError
//	if errors.As(err, &vErr) {
//	    // return all field errors to the client
//	}
type OrderValidator struct{}

// NewOrderValidator creates a new OrderValidator instance.
func NewOrderValidator() OrderValidator {
	return OrderValidator{}
}

// Validate checks the submission against the tenant's catalog and builds
// the order aggregate in Pending status.
//
// The catalog slice must already be tenant-scoped: it is the result of a
// lookup by the resolved tenant context, so an item belonging to another
// restaurant is simply absent and reported as not found. The validator
// never reveals other tenants' catalogs.
func (v OrderValidator) Validate(
	tenant actor.TenantContext,
	submission Submission,
	catalog []*menu.Item,
	orderID kernel.UUID,
	orderNumber string,
) (*order.Order, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if !tenant.Actor().Role().CanSubmitOrders() {
		return nil, errs.NewUnauthorizedError(tenant.Actor().Role().String(), "submit orders")
	}

	vErr := errs.NewValidationError()

	if err := submission.Channel.Validate(); err != nil {
		vErr.Add("channel", "must be one of pos, kiosk, voice, delivery")
	}
	if len(submission.Items) == 0 {
		vErr.Add("items", "at least one line item is required")
	}

	byID := make(map[kernel.UUID]*menu.Item, len(catalog))
	for _, item := range catalog {
		byID[item.ID()] = item
	}

	lines := make([]order.LineItem, 0, len(submission.Items))
	computedSubtotal := kernel.NewMoney(0)

	for i, req := range submission.Items {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }

		if req.Quantity <= 0 {
			vErr.Add(field("quantity"), "must be a positive integer")
		}

		catalogItem, found := byID[req.MenuItemID]
		if !found {
			vErr.Add(field("menuItemId"), "does not reference a menu item of this restaurant")
			continue
		}
		if !catalogItem.IsAvailable() {
			vErr.Add(field("menuItemId"), "menu item is currently unavailable")
			continue
		}

		selections := make([]order.ModifierSelection, 0, len(req.ModifierIDs))
		for j, modifierID := range req.ModifierIDs {
			modifier, legal := catalogItem.FindModifier(modifierID)
			if !legal {
				vErr.Add(fmt.Sprintf("items[%d].modifiers[%d]", i, j),
					"modifier is not legal for this menu item")
				continue
			}
			selection, err := order.NewModifierSelection(modifier.ID(), modifier.Name(), modifier.PriceDelta())
			if err != nil {
				vErr.Add(fmt.Sprintf("items[%d].modifiers[%d]", i, j), err.Error())
				continue
			}
			selections = append(selections, selection)
		}

		if vErr.HasErrors() {
			// Still walk the remaining lines so every violation is reported,
			// but skip building aggregates that cannot be valid.
			continue
		}

		line, err := order.NewLineItem(
			kernel.NewUUID(),
			catalogItem.ID(),
			catalogItem.Name(),
			catalogItem.Price(),
			req.Quantity,
			selections,
			req.SpecialInstructions,
		)
		if err != nil {
			vErr.Add(field("quantity"), err.Error())
			continue
		}

		lines = append(lines, line)
		computedSubtotal = computedSubtotal.Add(line.Total())
	}

	v.checkCharges(vErr, submission, computedSubtotal)
	v.checkRequiredFields(vErr, submission)

	if vErr.HasErrors() {
		return nil, vErr
	}

	fulfillment, err := order.NewFulfillment(
		submission.Channel, submission.TableNumber, submission.CustomerName, submission.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	charges, err := order.NewCharges(
		submission.DeclaredSubtotal, submission.DeclaredTax, submission.DeclaredTip, submission.DeclaredTotal)
	if err != nil {
		return nil, err
	}

	return order.NewOrder(
		orderID, tenant.RestaurantID(), submission.Channel, orderNumber,
		fulfillment, lines, charges)
}

// checkCharges verifies the client-declared financial claims against the
// server-side computation. Declared values are rejected on mismatch so
// client and server never silently diverge.
func (v OrderValidator) checkCharges(vErr *errs.ValidationError, submission Submission, computedSubtotal kernel.Money) {
	if submission.DeclaredTax.IsNegative() {
		vErr.Add("tax", "must not be negative")
	}
	if submission.DeclaredTip.IsNegative() {
		vErr.Add("tip", "must not be negative")
	}

	// Only compare the subtotal when every line resolved; otherwise the
	// line errors already explain the mismatch.
	if !vErr.HasErrors() && !submission.DeclaredSubtotal.IsEqual(computedSubtotal) {
		vErr.Add("subtotal", fmt.Sprintf(
			"declared subtotal %s does not match the computed sum %s",
			submission.DeclaredSubtotal, computedSubtotal))
	}

	expectedTotal := submission.DeclaredSubtotal.Add(submission.DeclaredTax).Add(submission.DeclaredTip)
	if !submission.DeclaredTotal.IsEqual(expectedTotal) {
		vErr.Add("total", fmt.Sprintf(
			"declared total %s does not equal subtotal + tax + tip = %s",
			submission.DeclaredTotal, expectedTotal))
	}
}

// checkRequiredFields enforces the channel's mandatory customer fields.
func (v OrderValidator) checkRequiredFields(vErr *errs.ValidationError, submission Submission) {
	channel := submission.Channel
	if channel.Validate() != nil {
		return
	}
	if channel.RequiresTableNumber() && submission.TableNumber == "" {
		vErr.Add("tableNumber", "required for dine-in orders")
	}
	if channel.RequiresCustomerName() && submission.CustomerName == "" {
		vErr.Add("customerName", "required for takeout and delivery orders")
	}
	if channel.RequiresDeliveryAddress() && submission.DeliveryAddress == "" {
		vErr.Add("deliveryAddress", "required for delivery orders")
	}
}
