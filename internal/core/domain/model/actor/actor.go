// Package actor models the authenticated principal behind a request: a
// staff member, a kiosk device, a voice session, or a display station.
// Identity verification itself is delegated to the external auth
// collaborator; this package only carries the verified claims and answers
// authorization questions at the state machine boundary.
package actor

import (
	"errors"
	"fmt"

	"orderhub/internal/core/domain/model/kernel"
	ordermodel "orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"
)

// Role is the coarse scope class of an actor.
type Role int

const (
	// UnknownRole represents an invalid or undefined role.
	UnknownRole Role = iota

	// Manager may submit orders and perform every transition including
	// cancellation.
	Manager

	// Staff may submit orders and perform every transition including
	// cancellation.
	Staff

	// Kitchen stations acknowledge orders and mark them ready.
	Kitchen

	// Expo confirms hand-off, completing orders.
	Expo

	// Kiosk devices submit self-service orders only.
	Kiosk

	// VoiceAgent sessions submit normalized voice orders only.
	VoiceAgent
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Manager:     "manager",
		Staff:       "staff",
		Kitchen:     "kitchen",
		Expo:        "expo",
		Kiosk:       "kiosk",
		VoiceAgent:  "voice_agent",
	}
}

// RoleFromString parses a wire name into a Role.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != UnknownRole && name == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a recognized role", s))
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if r == UnknownRole {
		return errs.NewValueIsInvalidError("role")
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidError("role")
	}
	return nil
}

// String returns the wire name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// CanSubmitOrders reports whether the role may create orders.
func (r Role) CanSubmitOrders() bool {
	switch r {
	case Manager, Staff, Kiosk, VoiceAgent:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the role's scope covers moving an order
// to the given status. Cancellation scope is limited to staff and managers.
func (r Role) CanTransitionTo(to ordermodel.Status) bool {
	switch r {
	case Manager, Staff:
		return true
	case Kitchen:
		return to == ordermodel.Preparing || to == ordermodel.Ready
	case Expo:
		return to == ordermodel.Completed
	default:
		return false
	}
}

// ErrActorIsNotConstructed is returned when an Actor was not created via
// NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the verified principal behind a request, with the set of
// restaurants it is permitted to act for.
type Actor struct {
	id         kernel.UUID
	role       Role
	tenantIDs  []kernel.UUID
	displayTag string

	isConstructed bool
}

// NewActor creates an actor from verified claims.
func NewActor(id kernel.UUID, role Role, tenantIDs []kernel.UUID, displayTag string) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	if len(tenantIDs) == 0 {
		return Actor{}, errs.NewValueIsRequiredError("tenantIDs")
	}
	for _, tid := range tenantIDs {
		if err := tid.Validate(); err != nil {
			return Actor{}, err
		}
	}

	return Actor{
		id:            id,
		role:          role,
		tenantIDs:     append([]kernel.UUID(nil), tenantIDs...),
		displayTag:    displayTag,
		isConstructed: true,
	}, nil
}

// Validate ensures the Actor was created via NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the actor identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// DisplayTag returns a human-readable tag for audit entries ("station 2").
func (a Actor) DisplayTag() string {
	return a.displayTag
}

// ResolveTenant checks the claimed restaurant against the actor's permitted
// set and returns the resolved tenant context. This is the only way a
// tenant context comes into existence: downstream code receives the
// resolved context, never the raw claimed header, so a spoofed tenant id
// cannot propagate.
//
// Returns a TenantMismatchError if the claimed id is not in the permitted
// set; the error does not reveal whether the claimed restaurant exists.
func (a Actor) ResolveTenant(claimed kernel.UUID) (TenantContext, error) {
	if err := a.Validate(); err != nil {
		return TenantContext{}, err
	}
	if err := claimed.Validate(); err != nil {
		return TenantContext{}, err
	}

	for _, tid := range a.tenantIDs {
		if tid.IsEqual(claimed) {
			return TenantContext{
				restaurantID:  claimed,
				actor:         a,
				isConstructed: true,
			}, nil
		}
	}

	return TenantContext{}, errs.NewTenantMismatchError(claimed.String())
}

// ErrTenantContextIsNotConstructed is returned when a TenantContext was not
// produced by Actor.ResolveTenant.
var ErrTenantContextIsNotConstructed = errors.New("TenantContext must be created via Actor.ResolveTenant")

// TenantContext is the resolved acting tenant for one request. It is passed
// explicitly as an argument through every call chain, never read from
// ambient or global state, which makes tenant isolation mechanically
// checkable.
type TenantContext struct {
	restaurantID kernel.UUID
	actor        Actor

	isConstructed bool
}

// Validate ensures the context was produced by ResolveTenant.
func (t TenantContext) Validate() error {
	if !t.isConstructed {
		return ErrTenantContextIsNotConstructed
	}
	return nil
}

// RestaurantID returns the resolved tenant.
func (t TenantContext) RestaurantID() kernel.UUID {
	return t.restaurantID
}

// Actor returns the acting principal.
func (t TenantContext) Actor() Actor {
	return t.actor
}
