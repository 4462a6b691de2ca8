package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
	"github.com/samuel890456/HogarPeludo-sub001/internal/services"
	pkghttp "github.com/samuel890456/HogarPeludo-sub001/pkg/http"
)

// AuthServiceInterface defines the identity business logic
type AuthServiceInterface interface {
	Register(ctx context.Context, nombre, email, password, telefono, direccion string) (*services.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*services.AuthResponse, error)
}

// PasswordResetServiceInterface defines the reset lifecycle
type PasswordResetServiceInterface interface {
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	service AuthServiceInterface
	reset   PasswordResetServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthServiceInterface, reset PasswordResetServiceInterface) *AuthHandler {
	return &AuthHandler{
		service: service,
		reset:   reset,
	}
}

// Request DTOs

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Nombre     string `json:"nombre" validate:"required,min=1"`
	Email      string `json:"email" validate:"required,email"`
	Contrasena string `json:"contraseña" validate:"required,min=6"`
	Telefono   string `json:"telefono"`
	Direccion  string `json:"direccion"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Contrasena string `json:"contraseña" validate:"required"`
}

// ForgotPasswordRequest represents the request body for the reset initiation
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents the request body for the reset completion
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required"`
}

// Register handles POST /api/auth/registrarse
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Cuerpo de solicitud inválido")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	resp, err := h.service.Register(r.Context(), req.Nombre, req.Email, req.Contrasena, req.Telefono, req.Direccion)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteError(w, http.StatusBadRequest, "duplicate_email", "El correo ya está registrado")
		case errors.Is(err, models.ErrValidation):
			pkghttp.WriteBadRequest(w, "Datos de registro inválidos")
		default:
			pkghttp.WriteInternalError(w, "Error interno del servidor")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/iniciar-sesion
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Cuerpo de solicitud inválido")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	resp, err := h.service.Login(r.Context(), req.Email, req.Contrasena)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnauthorized):
			// Same message for unknown email and wrong password
			pkghttp.WriteError(w, http.StatusBadRequest, "invalid_credentials", "Credenciales incorrectas")
		case errors.Is(err, models.ErrAccountBlocked), errors.Is(err, models.ErrAccountInactive):
			pkghttp.WriteError(w, http.StatusForbidden, "account_blocked", "Tu cuenta ha sido desactivada. Contacta al administrador.")
		default:
			pkghttp.WriteInternalError(w, "Error interno del servidor")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// ForgotPassword handles POST /api/auth/forgot-password. The response body
// is identical whether or not the email exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Cuerpo de solicitud inválido")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.reset.ForgotPassword(r.Context(), req.Email); err != nil {
		pkghttp.WriteInternalError(w, "Error interno del servidor")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": services.GenericResetMessage,
	})
}

// ResetPassword handles POST /api/auth/reset-password/{token}
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Cuerpo de solicitud inválido")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.reset.ResetPassword(r.Context(), token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			pkghttp.WriteError(w, http.StatusBadRequest, "password_too_short", "La contraseña debe tener al menos 6 caracteres")
		case errors.Is(err, models.ErrInvalidResetToken):
			pkghttp.WriteError(w, http.StatusBadRequest, "invalid_reset_token", "El enlace de recuperación es inválido o ha expirado")
		default:
			pkghttp.WriteInternalError(w, "Error interno del servidor")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Contraseña actualizada correctamente",
	})
}
