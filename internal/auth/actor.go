// Package auth holds the actor identity, the authorization guard and JWT
// minting/verification. Domain services receive the Actor as an explicit
// argument; nothing in this package reads ambient per-request state.
package auth

import "inkwell/internal/models"

// Actor is the authenticated (or anonymous) identity making a request. The
// zero value is the anonymous actor.
type Actor struct {
	ID    uint
	Email string
	Role  models.Role
}

// Anonymous reports whether the actor carries no authenticated identity.
func (a Actor) Anonymous() bool {
	return a.ID == 0
}

// IsAdmin reports whether the actor holds the ADMIN role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}
