package order

import (
	"fmt"

	"orderhub/internal/pkg/errs"
)

// Channel identifies the origin of an order submission. Every channel is
// normalized into the same canonical order shape before validation; the
// channel only determines which customer fields are required and whether
// payment must be authorized before confirmation.
type Channel int

const (
	// UnknownChannel represents an invalid or undefined channel.
	UnknownChannel Channel = iota

	// POS is staff entry at the counter or table: dine-in with a table
	// number, tab opened without upfront payment.
	POS

	// Kiosk is customer self-service takeout; payment authorized upfront.
	Kiosk

	// Voice is a normalized payload produced by the voice-ordering
	// collaborator. It receives no special trust and passes through the
	// same validation as every other channel.
	Voice

	// Delivery is an external delivery platform submission.
	Delivery
)

func getChannelStrings() map[Channel]string {
	return map[Channel]string{
		UnknownChannel: "unknown",
		POS:            "pos",
		Kiosk:          "kiosk",
		Voice:          "voice",
		Delivery:       "delivery",
	}
}

func getValidChannelStrings() map[Channel]string {
	//nolint:exhaustive // UnknownChannel is intentionally excluded
	return map[Channel]string{
		POS:      "pos",
		Kiosk:    "kiosk",
		Voice:    "voice",
		Delivery: "delivery",
	}
}

// ChannelFromString parses a wire name ("pos", "kiosk", "voice",
// "delivery") into a Channel.
func ChannelFromString(s string) (Channel, error) {
	for channel, name := range getValidChannelStrings() {
		if name == s {
			return channel, nil
		}
	}
	return UnknownChannel, errs.NewValueIsInvalidErrorWithCause("channel",
		fmt.Errorf("%q is not a recognized order channel", s))
}

// Validate checks if the Channel value is valid.
func (c Channel) Validate() error {
	if _, ok := getValidChannelStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("channel",
			fmt.Errorf("%d is not a valid channel", c))
	}
	return nil
}

// String returns the wire name of the channel.
func (c Channel) String() string {
	if str, ok := getChannelStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// RequiresPayment reports whether the channel needs an authorized payment
// before the order may be confirmed. Dine-in POS tabs settle later and are
// exempt.
func (c Channel) RequiresPayment() bool {
	return c != POS
}

// RequiresTableNumber reports whether a table reference is mandatory
// (dine-in entry).
func (c Channel) RequiresTableNumber() bool {
	return c == POS
}

// RequiresCustomerName reports whether a customer name is mandatory
// (takeout and delivery hand-off).
func (c Channel) RequiresCustomerName() bool {
	return c == Kiosk || c == Voice || c == Delivery
}

// RequiresDeliveryAddress reports whether a delivery address is mandatory.
func (c Channel) RequiresDeliveryAddress() bool {
	return c == Delivery
}
