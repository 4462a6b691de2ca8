package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
	pkghttp "github.com/samuel890456/HogarPeludo-sub001/pkg/http"
)

// RoleRequestServiceInterface defines the role-upgrade workflow
type RoleRequestServiceInterface interface {
	Submit(ctx context.Context, userID, motivo string) (*models.RoleChangeRequest, error)
	Approve(ctx context.Context, userID, adminID string) error
	Reject(ctx context.Context, userID, adminID string) error
	ListPending(ctx context.Context) ([]*models.RoleChangeRequest, error)
}

// RoleRequestHandler handles refugio role-upgrade HTTP endpoints
type RoleRequestHandler struct {
	service RoleRequestServiceInterface
}

// NewRoleRequestHandler creates a new RoleRequestHandler
func NewRoleRequestHandler(service RoleRequestServiceInterface) *RoleRequestHandler {
	return &RoleRequestHandler{service: service}
}

// SubmitRoleRequest represents the request body for a role-upgrade request
type SubmitRoleRequest struct {
	Motivacion string `json:"motivacion" validate:"required,min=10"`
}

// RoleRequestResponse is the JSON shape of a role-change request
type RoleRequestResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	RequestedRole string     `json:"requestedRole"`
	Motivo        string     `json:"motivacion"`
	Estado        string     `json:"estado"`
	AdminID       *string    `json:"adminId,omitempty"`
	RespondedAt   *time.Time `json:"respondedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func roleRequestToResponse(req *models.RoleChangeRequest) *RoleRequestResponse {
	return &RoleRequestResponse{
		ID:            req.ID,
		UserID:        req.UserID,
		RequestedRole: req.RequestedRole.Name(),
		Motivo:        req.Motivo,
		Estado:        req.Estado,
		AdminID:       req.AdminID,
		RespondedAt:   req.RespondedAt,
		CreatedAt:     req.CreatedAt,
	}
}

// Submit handles POST /api/usuarios/{id}/solicitar-rol-refugio. A user may
// only file the request for itself.
func (h *RoleRequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	principal := principalOrFail(w, r)
	if principal == nil {
		return
	}

	userID := chi.URLParam(r, "id")
	if userID != principal.ID {
		pkghttp.WriteForbidden(w, "Solo puedes solicitar el rol para tu propia cuenta")
		return
	}

	var req SubmitRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Cuerpo de solicitud inválido")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.service.Submit(r.Context(), userID, req.Motivacion)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			pkghttp.WriteBadRequest(w, "La motivación debe tener al menos 10 caracteres")
		case errors.Is(err, models.ErrUserNotFound):
			pkghttp.WriteNotFound(w, "Usuario no encontrado")
		default:
			pkghttp.WriteInternalError(w, "Error interno del servidor")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, roleRequestToResponse(created))
}

// Approve handles PUT /api/usuarios/{userId}/aprobar-rol (admin only)
func (h *RoleRequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	principal := principalOrFail(w, r)
	if principal == nil {
		return
	}

	userID := chi.URLParam(r, "userId")

	if err := h.service.Approve(r.Context(), userID, principal.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "No hay solicitudes pendientes para este usuario")
			return
		}
		pkghttp.WriteInternalError(w, "Error interno del servidor")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Solicitud aprobada: rol refugio asignado",
	})
}

// Reject handles PUT /api/usuarios/{userId}/rechazar-rol (admin only)
func (h *RoleRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	principal := principalOrFail(w, r)
	if principal == nil {
		return
	}

	userID := chi.URLParam(r, "userId")

	if err := h.service.Reject(r.Context(), userID, principal.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "No hay solicitudes pendientes para este usuario")
			return
		}
		pkghttp.WriteInternalError(w, "Error interno del servidor")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Solicitud rechazada",
	})
}

// ListPending handles GET /api/solicitudes-rol/pendientes (admin only)
func (h *RoleRequestHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListPending(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Error interno del servidor")
		return
	}

	out := make([]*RoleRequestResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, roleRequestToResponse(req))
	}
	pkghttp.WriteJSON(w, http.StatusOK, out)
}
