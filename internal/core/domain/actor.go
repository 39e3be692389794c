package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the fixed role an actor plays in the points economy.
type Role string

const (
	RoleCustomer       Role = "customer"
	RoleMerchant       Role = "merchant"
	RoleRepresentative Role = "representative"
	RoleAdmin          Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleMerchant, RoleRepresentative, RoleAdmin:
		return true
	}
	return false
}

// OwnsWallet reports whether actors with this role hold a points wallet.
func (r Role) OwnsWallet() bool {
	return r == RoleCustomer || r == RoleMerchant
}

// ActorStatus is the soft-deactivation state set by account management.
type ActorStatus string

const (
	ActorStatusActive      ActorStatus = "ACTIVE"
	ActorStatusDeactivated ActorStatus = "DEACTIVATED"
)

// Actor mirrors an identity owned by account management. Role is immutable.
type Actor struct {
	ID          uuid.UUID   `json:"id"`
	Role        Role        `json:"role"`
	DisplayName string      `json:"display_name"`
	Status      ActorStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsActive returns true if the actor may take part in ledger entries.
func (a *Actor) IsActive() bool {
	return a.Status == ActorStatusActive
}
