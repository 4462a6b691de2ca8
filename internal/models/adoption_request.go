package models

import "time"

// Adoption request states. A request starts pendiente and moves exactly once
// to aceptada or rechazada; both are terminal.
const (
	AdoptionStatePendiente = "pendiente"
	AdoptionStateAceptada  = "aceptada"
	AdoptionStateRechazada = "rechazada"
)

type AdoptionRequest struct {
	ID          string
	PetID       string
	RequesterID string
	Comentario  string
	Estado      string
	CreatedAt   time.Time
}

// ValidAdoptionTarget reports whether estado is a legal target for an
// explicit state update.
func ValidAdoptionTarget(estado string) bool {
	return estado == AdoptionStateAceptada || estado == AdoptionStateRechazada
}
