package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload of an identity token. Roles are embedded at
// issuance time; the authorization gate re-resolves them from storage on
// every request, so the embedded copy is authoritative only for consumers
// that cannot call back into the platform.
type TokenClaims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email,omitempty"`
	Roles  []RoleID `json:"roles"`
	jwt.RegisteredClaims
}

// Principal is the resolved per-request identity attached to the context by
// the authorization gate: a live snapshot of the user and its role set.
type Principal struct {
	ID     string
	Email  string
	Nombre string
	Roles  RoleSet
	Estado string
}

// HasRole reports whether the principal holds the given role.
func (p *Principal) HasRole(role RoleID) bool {
	return p.Roles.Has(role)
}
