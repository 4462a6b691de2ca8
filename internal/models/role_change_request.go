package models

import "time"

// Role-change request states.
const (
	RoleRequestPendiente = "pendiente"
	RoleRequestAprobada  = "aprobada"
	RoleRequestRechazada = "rechazada"
)

// MinMotivationLength is the minimum length of the free-text motivation a
// user must supply when requesting the refugio role.
const MinMotivationLength = 10

type RoleChangeRequest struct {
	ID            string
	UserID        string
	RequestedRole RoleID
	Motivo        string
	Estado        string
	AdminID       *string
	RespondedAt   *time.Time
	CreatedAt     time.Time
}
