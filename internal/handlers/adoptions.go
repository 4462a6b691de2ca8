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

// AdoptionServiceInterface defines the adoption request workflow
type AdoptionServiceInterface interface {
	Create(ctx context.Context, petID, requesterID, comentario string) (*models.AdoptionRequest, error)
	UpdateState(ctx context.Context, id, newState string) error
	GetByID(ctx context.Context, id string) (*models.AdoptionRequest, error)
	ListByPet(ctx context.Context, petID string) ([]*models.AdoptionRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*models.AdoptionRequest, error)
}

// AdoptionHandler handles adoption request HTTP endpoints
type AdoptionHandler struct {
	service AdoptionServiceInterface
}

// NewAdoptionHandler creates a new AdoptionHandler
func NewAdoptionHandler(service AdoptionServiceInterface) *AdoptionHandler {
	return &AdoptionHandler{service: service}
}

// CreateAdoptionRequest represents the request body for a new adoption request
type CreateAdoptionRequest struct {
	PetID       string `json:"petId" validate:"required"`
	RequesterID string `json:"requesterId" validate:"required"`
	Comentario  string `json:"comment"`
}

// UpdateAdoptionStateRequest represents the request body for a state change
type UpdateAdoptionStateRequest struct {
	Estado string `json:"estado" validate:"required,oneof=aceptada rechazada"`
}

// AdoptionRequestResponse is the JSON shape of an adoption request
type AdoptionRequestResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"petId"`
	RequesterID string    `json:"requesterId"`
	Comentario  string    `json:"comment"`
	Estado      string    `json:"estado"`
	CreatedAt   time.Time `json:"createdAt"`
}

func adoptionToResponse(req *models.AdoptionRequest) *AdoptionRequestResponse {
	return &AdoptionRequestResponse{
		ID:          req.ID,
		PetID:       req.PetID,
		RequesterID: req.RequesterID,
		Comentario:  req.Comentario,
		Estado:      req.Estado,
		CreatedAt:   req.CreatedAt,
	}
}

// Create handles POST /api/adopciones
func (h *AdoptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAdoptionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Cuerpo de solicitud inválido")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), req.PetID, req.RequesterID, req.Comentario)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			pkghttp.WriteBadRequest(w, "petId y requesterId son obligatorios")
		case errors.Is(err, models.ErrPetNotFound):
			pkghttp.WriteNotFound(w, "Mascota no encontrada")
		case errors.Is(err, models.ErrUserNotFound):
			pkghttp.WriteNotFound(w, "Usuario no encontrado")
		default:
			pkghttp.WriteInternalError(w, "Error interno del servidor")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, adoptionToResponse(created))
}

// UpdateState handles PUT /api/solicitudes/{id}/estado
func (h *AdoptionHandler) UpdateState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateAdoptionStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Cuerpo de solicitud inválido")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.UpdateState(r.Context(), id, req.Estado); err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			pkghttp.WriteBadRequest(w, "Estado destino inválido")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Solicitud no encontrada")
		case errors.Is(err, models.ErrInvalidTransition):
			pkghttp.WriteError(w, http.StatusConflict, "invalid_transition", "La solicitud ya fue resuelta")
		default:
			pkghttp.WriteInternalError(w, "Error interno del servidor")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Estado de la solicitud actualizado",
	})
}

// Get handles GET /api/adopciones/{id}
func (h *AdoptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Solicitud no encontrada")
			return
		}
		pkghttp.WriteInternalError(w, "Error interno del servidor")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, adoptionToResponse(req))
}

// ListMine handles GET /api/adopciones (the authenticated user's requests)
func (h *AdoptionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal := principalOrFail(w, r)
	if principal == nil {
		return
	}

	requests, err := h.service.ListByRequester(r.Context(), principal.ID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Error interno del servidor")
		return
	}

	out := make([]*AdoptionRequestResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, adoptionToResponse(req))
	}
	pkghttp.WriteJSON(w, http.StatusOK, out)
}
