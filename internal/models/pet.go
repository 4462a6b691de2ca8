package models

import "time"

// Pet is the minimal mascota record the adoption workflow needs: identity
// plus the owning user. Full pet management lives in another service.
type Pet struct {
	ID          string
	Nombre      string
	Especie     string
	OwnerUserID string
	CreatedAt   time.Time
}
