package models

import (
	"time"
)

// Account states stored in users.estado.
const (
	UserStateActivo    = "activo"
	UserStateBloqueado = "bloqueado"
)

type User struct {
	ID               string
	Nombre           string
	Email            string
	PasswordHash     string
	Telefono         string
	Direccion        string
	Activo           bool
	Estado           string // "activo", "bloqueado"
	ResetToken       *string
	ResetTokenExpiry *time.Time
	Roles            RoleSet
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanAuthenticate reports whether the account may be issued a session or
// pass the authorization gate.
func (u *User) CanAuthenticate() error {
	if !u.Activo {
		return ErrAccountInactive
	}
	if u.Estado == UserStateBloqueado {
		return ErrAccountBlocked
	}
	return nil
}
