package entities

import "github.com/google/uuid"

// Principal is the caller's authenticated identity plus its granted
// permission set, produced by the session middleware. It is passed
// explicitly into authorization checks; the core keeps no session state.
type Principal struct {
	UserID      uuid.UUID
	Permissions []Permission
}

// NewPrincipal builds a principal for a user with the permissions its
// role grants.
func NewPrincipal(userID uuid.UUID, role UserRole) *Principal {
	return &Principal{
		UserID:      userID,
		Permissions: role.Permissions(),
	}
}

// Has reports whether the principal holds the given permission.
func (p *Principal) Has(permission Permission) bool {
	for _, granted := range p.Permissions {
		if granted == permission {
			return true
		}
	}
	return false
}
