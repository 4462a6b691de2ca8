package models

// RoleID identifies one of the fixed platform roles.
type RoleID int

const (
	RoleAdmin      RoleID = 1
	RolePublicador RoleID = 2
	RoleAdoptante  RoleID = 3
	RoleRefugio    RoleID = 4
)

var roleNames = map[RoleID]string{
	RoleAdmin:      "admin",
	RolePublicador: "publicador",
	RoleAdoptante:  "adoptante",
	RoleRefugio:    "refugio",
}

// Name returns the canonical role name, or "" for an unknown id.
func (r RoleID) Name() string {
	return roleNames[r]
}

// Valid reports whether the id maps to a known role.
func (r RoleID) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// DefaultRoles are assigned to every account at registration.
func DefaultRoles() []RoleID {
	return []RoleID{RolePublicador, RoleAdoptante}
}

// RoleSet is the set of roles held by a user.
type RoleSet []RoleID

// Has reports whether the set contains the given role.
func (s RoleSet) Has(role RoleID) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}

// Names returns the role names in set order.
func (s RoleSet) Names() []string {
	names := make([]string, 0, len(s))
	for _, r := range s {
		names = append(names, r.Name())
	}
	return names
}
