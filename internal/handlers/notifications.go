package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
	pkghttp "github.com/samuel890456/HogarPeludo-sub001/pkg/http"
)

// NotificationServiceInterface defines the per-user inbox operations
type NotificationServiceInterface interface {
	GetAll(ctx context.Context, userID string) ([]*models.Notification, error)
	GetUnread(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// NotificationHandler handles notification HTTP endpoints
type NotificationHandler struct {
	service NotificationServiceInterface
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// NotificationResponse is the JSON shape of a notification
type NotificationResponse struct {
	ID        string    `json:"id"`
	Tipo      string    `json:"tipo"`
	Mensaje   string    `json:"mensaje"`
	Enlace    *string   `json:"enlace,omitempty"`
	Leida     bool      `json:"leida"`
	CreatedAt time.Time `json:"createdAt"`
}

func notificationToResponse(n *models.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Tipo:      n.Tipo,
		Mensaje:   n.Mensaje,
		Enlace:    n.Enlace,
		Leida:     n.Leida,
		CreatedAt: n.CreatedAt,
	}
}

func notificationsToResponse(notifications []*models.Notification) []*NotificationResponse {
	out := make([]*NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, notificationToResponse(n))
	}
	return out
}

// List handles GET /api/notificaciones
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := principalOrFail(w, r)
	if principal == nil {
		return
	}

	notifications, err := h.service.GetAll(r.Context(), principal.ID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Error interno del servidor")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, notificationsToResponse(notifications))
}

// ListUnread handles GET /api/notificaciones/no-leidas
func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	principal := principalOrFail(w, r)
	if principal == nil {
		return
	}

	notifications, err := h.service.GetUnread(r.Context(), principal.ID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Error interno del servidor")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, notificationsToResponse(notifications))
}

// MarkRead handles PUT /api/notificaciones/{id}/leida
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	principal := principalOrFail(w, r)
	if principal == nil {
		return
	}

	id := chi.URLParam(r, "id")

	changed, err := h.service.MarkRead(r.Context(), id, principal.ID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Notificación no encontrada")
		case errors.Is(err, models.ErrForbidden):
			pkghttp.WriteForbidden(w, "La notificación no te pertenece")
		default:
			pkghttp.WriteInternalError(w, "Error interno del servidor")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Notificación marcada como leída",
		"changed": changed,
	})
}

// MarkAllRead handles PUT /api/notificaciones/leidas
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	principal := principalOrFail(w, r)
	if principal == nil {
		return
	}

	count, err := h.service.MarkAllRead(r.Context(), principal.ID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Error interno del servidor")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Notificaciones marcadas como leídas",
		"count":   count,
	})
}

// Delete handles DELETE /api/notificaciones/{id}
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := principalOrFail(w, r)
	if principal == nil {
		return
	}

	id := chi.URLParam(r, "id")

	removed, err := h.service.Delete(r.Context(), id, principal.ID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Notificación no encontrada")
		case errors.Is(err, models.ErrForbidden):
			pkghttp.WriteForbidden(w, "La notificación no te pertenece")
		default:
			pkghttp.WriteInternalError(w, "Error interno del servidor")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Notificación eliminada",
		"removed": removed,
	})
}
