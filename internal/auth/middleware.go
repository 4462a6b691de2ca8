package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
	pkghttp "github.com/samuel890456/HogarPeludo-sub001/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// PrincipalContextKey is the key for storing the resolved principal in context
	PrincipalContextKey contextKey = "principal"
)

// UserResolver fetches the live user record, role set included, during
// request authorization.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Middleware is the authorization gate: it verifies the bearer token, then
// re-resolves the user and its current roles from storage rather than
// trusting the roles embedded in the claims, and rejects blocked or
// deactivated accounts before any handler runs.
func Middleware(tm *TokenManager, users UserResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				pkghttp.WriteError(w, http.StatusUnauthorized, "no_token", "No se proporcionó token de autenticación")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				pkghttp.WriteError(w, http.StatusUnauthorized, "no_token", "Formato de autorización inválido")
				return
			}

			claims, err := tm.Validate(parts[1])
			if err != nil {
				pkghttp.WriteError(w, http.StatusBadRequest, "invalid_token", "Token inválido o expirado")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					pkghttp.WriteNotFound(w, "Usuario no encontrado")
					return
				}
				pkghttp.WriteInternalError(w, "Error interno del servidor")
				return
			}

			if err := user.CanAuthenticate(); err != nil {
				pkghttp.WriteError(w, http.StatusForbidden, "account_blocked", "Tu cuenta ha sido desactivada. Contacta al administrador.")
				return
			}

			principal := &models.Principal{
				ID:     user.ID,
				Email:  user.Email,
				Nombre: user.Nombre,
				Roles:  user.Roles,
				Estado: user.Estado,
			}

			ctx := context.WithValue(r.Context(), PrincipalContextKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole enforces role-based access control. Must run after Middleware.
func RequireRole(role models.RoleID) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r)
			if principal == nil {
				pkghttp.WriteUnauthorized(w, "No autenticado")
				return
			}

			if !principal.HasRole(role) {
				pkghttp.WriteError(w, http.StatusForbidden, "insufficient_role", "No tienes permisos para realizar esta acción")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// PrincipalFromContext extracts the resolved principal from the request context
func PrincipalFromContext(r *http.Request) *models.Principal {
	principal, ok := r.Context().Value(PrincipalContextKey).(*models.Principal)
	if !ok {
		return nil
	}
	return principal
}
