package order

import (
	"errors"
	"fmt"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
)

// Charges is the financial breakdown of an order in integer minor currency
// units. The declared total must equal subtotal + tax + tip exactly; a
// mismatch is rejected, never silently recomputed, so client and server can
// never diverge unnoticed.
type Charges struct {
	subtotal kernel.Money
	tax      kernel.Money
	tip      kernel.Money
	total    kernel.Money
}

// NewCharges creates a validated financial breakdown.
// Tax and tip must be non-negative and the total must reconcile exactly.
func NewCharges(subtotal, tax, tip, total kernel.Money) (Charges, error) {
	if err := errors.Join(
		subtotal.ValidateNonNegative("subtotal"),
		tax.ValidateNonNegative("tax"),
		tip.ValidateNonNegative("tip"),
	); err != nil {
		return Charges{}, err
	}

	if expected := subtotal.Add(tax).Add(tip); !total.IsEqual(expected) {
		return Charges{}, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("declared total %s does not equal subtotal %s + tax %s + tip %s",
				total, subtotal, tax, tip))
	}

	return Charges{subtotal: subtotal, tax: tax, tip: tip, total: total}, nil
}

// Subtotal returns the sum of all line item totals.
func (c Charges) Subtotal() kernel.Money {
	return c.subtotal
}

// Tax returns the tax amount.
func (c Charges) Tax() kernel.Money {
	return c.tax
}

// Tip returns the tip amount.
func (c Charges) Tip() kernel.Money {
	return c.tip
}

// Total returns the grand total.
func (c Charges) Total() kernel.Money {
	return c.total
}

// Fulfillment carries the channel-dependent customer reference fields.
// Which fields are mandatory is decided by the order's Channel.
type Fulfillment struct {
	tableNumber     string
	customerName    string
	deliveryAddress string
}

// NewFulfillment creates the customer reference for a channel, enforcing the
// channel's required fields: table number for dine-in POS, customer name for
// takeout channels, delivery address for delivery.
func NewFulfillment(channel Channel, tableNumber, customerName, deliveryAddress string) (Fulfillment, error) {
	var err error
	if channel.RequiresTableNumber() && tableNumber == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("tableNumber"))
	}
	if channel.RequiresCustomerName() && customerName == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customerName"))
	}
	if channel.RequiresDeliveryAddress() && deliveryAddress == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("deliveryAddress"))
	}
	if err != nil {
		return Fulfillment{}, err
	}

	return Fulfillment{
		tableNumber:     tableNumber,
		customerName:    customerName,
		deliveryAddress: deliveryAddress,
	}, nil
}

// RestoreFulfillment reconstructs a Fulfillment from persistence without
// re-running channel requirements.
func RestoreFulfillment(tableNumber, customerName, deliveryAddress string) Fulfillment {
	return Fulfillment{
		tableNumber:     tableNumber,
		customerName:    customerName,
		deliveryAddress: deliveryAddress,
	}
}

// TableNumber returns the dine-in table reference, if any.
func (f Fulfillment) TableNumber() string {
	return f.tableNumber
}

// CustomerName returns the customer name, if any.
func (f Fulfillment) CustomerName() string {
	return f.customerName
}

// DeliveryAddress returns the delivery address, if any.
func (f Fulfillment) DeliveryAddress() string {
	return f.deliveryAddress
}
