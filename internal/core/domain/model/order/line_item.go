package order

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
)

// maxSpecialInstructionsLen caps free-text length before persistence.
const maxSpecialInstructionsLen = 500

var (
	// ErrLineItemIsNotConstructed is returned when a LineItem was not
	// created through the NewLineItem factory.
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")
)

// ModifierSelection is a modifier chosen for a line item, with the name and
// price delta snapshotted from the catalog at order time. The delta may be
// negative ("no cheese" discounts exist), so only the referencing item's
// legality is validated here.
type ModifierSelection struct {
	modifierID kernel.UUID
	name       string
	priceDelta kernel.Money
}

// NewModifierSelection creates a modifier selection with a snapshotted name
// and price delta.
func NewModifierSelection(modifierID kernel.UUID, name string, priceDelta kernel.Money) (ModifierSelection, error) {
	if err := modifierID.Validate(); err != nil {
		return ModifierSelection{}, err
	}
	if name == "" {
		return ModifierSelection{}, errs.NewValueIsRequiredError("modifier name")
	}

	return ModifierSelection{
		modifierID: modifierID,
		name:       name,
		priceDelta: priceDelta,
	}, nil
}

// ModifierID returns the catalog modifier this selection references.
func (m ModifierSelection) ModifierID() kernel.UUID {
	return m.modifierID
}

// Name returns the modifier name as snapshotted at order time.
func (m ModifierSelection) Name() string {
	return m.name
}

// PriceDelta returns the price adjustment snapshotted at order time.
func (m ModifierSelection) PriceDelta() kernel.Money {
	return m.priceDelta
}

// LineItem is one ordered menu item within an Order. It is owned by the
// order and persists and deletes with it.
//
// The unit price and modifier deltas are snapshots captured at order time,
// independent of later menu price changes, guaranteeing reproducible
// receipts. Once the order is confirmed the snapshot is immutable.
type LineItem struct {
	id                  kernel.UUID
	menuItemID          kernel.UUID
	name                string
	unitPrice           kernel.Money
	quantity            int
	modifiers           []ModifierSelection
	specialInstructions string

	isConstructed bool
}

// NewLineItem creates a line item with validation.
//
// The name and unitPrice are snapshots taken from the catalog by the order
// validator; quantity must be a positive integer. Special instructions are
// sanitized: control characters are stripped and the text is length-capped.
func NewLineItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	quantity int,
	modifiers []ModifierSelection,
	specialInstructions string,
) (LineItem, error) {
	item := LineItem{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	item.unitPrice = unitPrice
	item.modifiers = append([]ModifierSelection(nil), modifiers...)
	item.specialInstructions = SanitizeInstructions(specialInstructions)

	return item, nil
}

// Validate ensures the LineItem was created via NewLineItem.
func (li LineItem) Validate() error {
	if !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// ID returns the line item's unique identifier.
func (li LineItem) ID() kernel.UUID {
	return li.id
}

// MenuItemID returns the referenced catalog item.
func (li LineItem) MenuItemID() kernel.UUID {
	return li.menuItemID
}

// Name returns the item name as snapshotted at order time.
func (li LineItem) Name() string {
	return li.name
}

// UnitPrice returns the per-unit price snapshot.
func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// Modifiers returns the selected modifiers. The returned slice is a copy.
func (li LineItem) Modifiers() []ModifierSelection {
	return append([]ModifierSelection(nil), li.modifiers...)
}

// SpecialInstructions returns the sanitized free-text instructions.
func (li LineItem) SpecialInstructions() string {
	return li.specialInstructions
}

// Total computes the line's contribution to the order subtotal:
// unit price × quantity, plus each selected modifier's delta applied once.
func (li LineItem) Total() kernel.Money {
	total := li.unitPrice.MultiplyBy(li.quantity)
	for _, m := range li.modifiers {
		total = total.Add(m.priceDelta)
	}
	return total
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.menuItemID = id
	return nil
}

func (li *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("line item name")
	}
	li.name = name
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}

// SanitizeInstructions strips control characters from free-text special
// instructions, trims surrounding whitespace, and caps the length. The cap
// cuts on a rune boundary so the result is always valid UTF-8.
func SanitizeInstructions(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	clean := strings.TrimSpace(b.String())
	if len(clean) > maxSpecialInstructionsLen {
		cut := maxSpecialInstructionsLen
		for cut > 0 && !utf8.RuneStart(clean[cut]) {
			cut--
		}
		clean = clean[:cut]
	}
	return clean
}
