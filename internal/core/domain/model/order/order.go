package order

import (
	"errors"
	"fmt"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root of the order lifecycle. It owns its line
// items, its financial breakdown, and the authoritative status state
// machine.
//
// Order maintains these invariants:
//   - Every order belongs to exactly one restaurant and is never visible
//     outside it
//   - subtotal equals the sum of line item totals, and
//     total == subtotal + tax + tip, in exact integer arithmetic
//   - Status only changes along the transition table in Status
//   - Terminal orders (completed, cancelled, failed) are immutable except
//     for audit annotation
//   - The version counter changes only at the persistence gateway; the
//     aggregate carries the version it was loaded at
type Order struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	channel      Channel
	status       Status
	orderNumber  string
	fulfillment  Fulfillment
	items        []LineItem
	charges      Charges

	// statusReason records why the order reached cancelled or failed.
	statusReason string

	// version is the optimistic concurrency counter as loaded from
	// persistence. New orders start at version 1.
	version int

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a new order in Pending status.
//
// All identifiers, the channel, the order number, the line items, and the
// charges are validated; the subtotal is additionally checked against the
// sum of line item totals so an order whose charges do not reproduce its
// items can never exist.
func NewOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	channel Channel,
	orderNumber string,
	fulfillment Fulfillment,
	items []LineItem,
	charges Charges,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setChannel(channel),
		o.setOrderNumber(orderNumber),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := o.setCharges(charges); err != nil {
		return nil, err
	}
	o.fulfillment = fulfillment

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its status,
// version, and timestamps. Used only by the persistence gateway.
func RestoreOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	channel Channel,
	orderNumber string,
	fulfillment Fulfillment,
	items []LineItem,
	charges Charges,
	status Status,
	statusReason string,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		restaurantID.Validate(),
		channel.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not a valid version", version))
	}

	return &Order{
		id:            id,
		restaurantID:  restaurantID,
		channel:       channel,
		status:        status,
		orderNumber:   orderNumber,
		fulfillment:   fulfillment,
		items:         append([]LineItem(nil), items...),
		charges:       charges,
		statusReason:  statusReason,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// RestaurantID returns the owning tenant.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Channel returns the submission channel.
func (o *Order) Channel() Channel {
	return o.channel
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Fulfillment returns the channel-dependent customer reference.
func (o *Order) Fulfillment() Fulfillment {
	return o.fulfillment
}

// Items returns the line items. The returned slice is a copy.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// Charges returns the financial breakdown.
func (o *Order) Charges() Charges {
	return o.charges
}

// StatusReason returns why the order was cancelled or failed, if it was.
func (o *Order) StatusReason() string {
	return o.statusReason
}

// Version returns the optimistic concurrency counter as loaded.
func (o *Order) Version() int {
	return o.version
}

// AdvanceVersion records that a conditional write at the current version
// succeeded. Called only by the persistence gateway after the database
// accepted the update.
func (o *Order) AdvanceVersion() {
	o.version++
}

// CreatedAt returns the creation timestamp (UTC).
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp (UTC).
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Confirm transitions Pending -> Confirmed.
//
// Payment must be authorized, or the channel must not require one (a
// dine-in POS tab opens without upfront payment). The guard is checked
// before the transition so a failed guard leaves the status untouched.
func (o *Order) Confirm(paymentAuthorized bool) error {
	if o.channel.RequiresPayment() && !paymentAuthorized {
		return errs.NewValueIsInvalidErrorWithCause("payment",
			fmt.Errorf("channel %s requires an authorized payment before confirmation", o.channel))
	}

	newStatus, err := o.status.TransitionTo(Confirmed)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// StartPreparing transitions Confirmed -> Preparing when a kitchen station
// acknowledges the order.
func (o *Order) StartPreparing() error {
	newStatus, err := o.status.TransitionTo(Preparing)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// MarkReady transitions Preparing -> Ready when the kitchen marks the order
// complete.
func (o *Order) MarkReady() error {
	newStatus, err := o.status.TransitionTo(Ready)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Complete transitions Ready -> Completed when expo or the customer
// confirms delivery. Completed is terminal.
func (o *Order) Complete() error {
	newStatus, err := o.status.TransitionTo(Completed)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Cancel transitions any non-terminal status -> Cancelled.
//
// A reason is mandatory metadata; cancelling without one fails with a
// field-level validation error on "reason" and leaves the status untouched.
func (o *Order) Cancel(reason string) error {
	if reason == "" {
		return errs.NewValidationError().Add("reason", "a reason is mandatory for cancellation")
	}

	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.statusReason = reason
	o.touch()
	return nil
}

// Fail transitions Pending -> Failed on validation or payment failure
// before confirmation. Reachable only from Pending.
func (o *Order) Fail(reason string) error {
	if reason == "" {
		return errs.NewValidationError().Add("reason", "a reason is mandatory for failure")
	}

	newStatus, err := o.status.TransitionTo(Failed)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.statusReason = reason
	o.touch()
	return nil
}

// ApplyTransition routes a requested target status to the corresponding
// guarded transition method. Manual confirmation carries no payment
// authorization, so it only succeeds for channels that require none.
func (o *Order) ApplyTransition(to Status, reason string) error {
	switch to {
	case Confirmed:
		return o.Confirm(false)
	case Preparing:
		return o.StartPreparing()
	case Ready:
		return o.MarkReady()
	case Completed:
		return o.Complete()
	case Cancelled:
		return o.Cancel(reason)
	case Failed:
		return o.Fail(reason)
	default:
		return errs.NewInvalidTransitionError(o.status.String(), to.String())
	}
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setChannel(channel Channel) error {
	if err := channel.Validate(); err != nil {
		return err
	}
	o.channel = channel
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]LineItem(nil), items...)
	return nil
}

func (o *Order) setCharges(charges Charges) error {
	declared := charges.Subtotal()
	computed := kernel.NewMoney(0)
	for _, item := range o.items {
		computed = computed.Add(item.Total())
	}
	if !declared.IsEqual(computed) {
		return errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("declared subtotal %s does not equal the sum of line items %s", declared, computed))
	}

	o.charges = charges
	return nil
}
