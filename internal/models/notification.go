package models

import "time"

// Notification types used by the request workflows.
const (
	NotificationAdopcion  = "adopcion"
	NotificationRolCambio = "rol_cambio"
	NotificationSistema   = "sistema"
)

// Notification is an append-only inbox entry owned exclusively by its user.
// Leida is monotonic: once read it never reverts.
type Notification struct {
	ID        string
	UserID    string
	Tipo      string
	Mensaje   string
	Enlace    *string
	Leida     bool
	CreatedAt time.Time
}
