package order

import (
	"fmt"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/pkg/errs"
)

// Role identifies the functional role of an actor interacting with an order.
// Roles arrive from the authentication collaborator as strings; the core only
// validates membership and looks up permissions, it never manages identities.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleExecutive  Role = "EXECUTIVE"
	RoleSales      Role = "SALES"
	RoleMarketing  Role = "MARKETING"
	RoleGraphic    Role = "GRAPHIC"
	RoleDigitizer  Role = "DIGITIZER"
	RoleStock      Role = "STOCK"
	RoleProduction Role = "PRODUCTION"
	RoleSewingQC   Role = "SEWING_QC"
	RoleDelivery   Role = "DELIVERY"
	RoleFinance    Role = "FINANCE"
	RolePurchasing Role = "PURCHASING"
)

func getValidRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleAdmin:      {},
		RoleSuperAdmin: {},
		RoleExecutive:  {},
		RoleSales:      {},
		RoleMarketing:  {},
		RoleGraphic:    {},
		RoleDigitizer:  {},
		RoleStock:      {},
		RoleProduction: {},
		RoleSewingQC:   {},
		RoleDelivery:   {},
		RoleFinance:    {},
		RolePurchasing: {},
	}
}

// Validate checks that the role is a member of the enumerated set.
func (r Role) Validate() error {
	if _, ok := getValidRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// String returns the wire label of the role.
func (r Role) String() string {
	return string(r)
}

// IsPrivileged reports whether the role has elevated order permissions.
// Privileged roles pass every role-authorization check on transitions.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleSuperAdmin || r == RoleExecutive
}

// BypassesClaims reports whether the role may act on department-gated edges
// without holding the claim slot, and may force-claim over another actor.
func (r Role) BypassesClaims() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// CanCreateOrders reports whether the role may open new orders.
func (r Role) CanCreateOrders() bool {
	return r == RoleSales || r == RoleMarketing || r == RoleAdmin || r == RoleSuperAdmin
}

// Department returns the claim-slot department this role works, if any.
// Roles outside the four claim departments return false.
func (r Role) Department() (Department, bool) {
	switch r {
	case RoleGraphic:
		return DepartmentGraphic, true
	case RoleStock:
		return DepartmentStock, true
	case RoleProduction:
		return DepartmentProduction, true
	case RoleSewingQC:
		return DepartmentQC, true
	default:
		return "", false
	}
}

// ErrActorIsNotConstructed is returned when an Actor was not created via NewActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("Actor must be created via NewActor")

// Actor is the identity+role pair performing a command against an order.
// Identity and role are supplied by the authentication collaborator.
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor creates a validated Actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the actor's identity.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Validate ensures the actor was created via NewActor.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return ErrActorIsNotConstructed
	}
	return a.role.Validate()
}
