package handlers

import (
	"net/http"

	"github.com/samuel890456/HogarPeludo-sub001/internal/auth"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
	pkghttp "github.com/samuel890456/HogarPeludo-sub001/pkg/http"
)

// principalOrFail returns the resolved principal or writes a 401 and
// returns nil. Handlers behind the authorization gate always have one; this
// guards against misrouted registrations.
func principalOrFail(w http.ResponseWriter, r *http.Request) *models.Principal {
	principal := auth.PrincipalFromContext(r)
	if principal == nil {
		pkghttp.WriteUnauthorized(w, "No autenticado")
		return nil
	}
	return principal
}
