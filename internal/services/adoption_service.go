package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
)

// PetRepository resolves the pet referenced by an adoption request
type PetRepository interface {
	GetByID(ctx context.Context, id string) (*models.Pet, error)
}

// AdoptionRequestRepository defines storage for adoption requests
type AdoptionRequestRepository interface {
	Create(ctx context.Context, req *models.AdoptionRequest) (*models.AdoptionRequest, error)
	GetByID(ctx context.Context, id string) (*models.AdoptionRequest, error)
	UpdateStateFromPending(ctx context.Context, id, newState string) (bool, error)
	ListByPet(ctx context.Context, petID string) ([]*models.AdoptionRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*models.AdoptionRequest, error)
}

// Notifier is the in-app notification side of the workflows
type Notifier interface {
	Create(ctx context.Context, userID, tipo, mensaje string, enlace *string) (*models.Notification, error)
}

// AdoptionService governs the adoption request lifecycle
type AdoptionService struct {
	requests    AdoptionRequestRepository
	pets        PetRepository
	users       UserRepository
	notifier    Notifier
	email       EmailSender
	sendTimeout time.Duration
	logger      *slog.Logger
}

// NewAdoptionService creates a new AdoptionService
func NewAdoptionService(
	requests AdoptionRequestRepository,
	pets PetRepository,
	users UserRepository,
	notifier Notifier,
	email EmailSender,
	sendTimeout time.Duration,
	logger *slog.Logger,
) *AdoptionService {
	return &AdoptionService{
		requests:    requests,
		pets:        pets,
		users:       users,
		notifier:    notifier,
		email:       email,
		sendTimeout: sendTimeout,
		logger:      logger,
	}
}

// Create registers a new adoption request in state pendiente. The owner is
// emailed first and also receives an in-app notification; both are
// best-effort and never block the request itself.
func (s *AdoptionService) Create(ctx context.Context, petID, requesterID, comentario string) (*models.AdoptionRequest, error) {
	if petID == "" || requesterID == "" {
		return nil, models.ErrValidation
	}

	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, models.ErrPetNotFound) {
			return nil, models.ErrPetNotFound
		}
		s.logger.Error("failed to resolve pet", slog.String("pet_id", petID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	owner, err := s.users.GetByID(ctx, pet.OwnerUserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUserNotFound
		}
		s.logger.Error("failed to resolve pet owner", slog.String("pet_id", petID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUserNotFound
		}
		s.logger.Error("failed to resolve requester", slog.String("requester_id", requesterID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	if err := s.email.SendAdoptionRequestEmail(sendCtx, owner.Email, owner.Nombre, requester.Nombre, pet.Nombre, comentario); err != nil {
		s.logger.Error("failed to send adoption request email",
			slog.String("pet_id", petID),
			slog.String("owner_id", owner.ID),
			slog.Any("error", err))
	}
	cancel()

	req := &models.AdoptionRequest{
		PetID:       petID,
		RequesterID: requesterID,
		Comentario:  comentario,
	}

	created, err := s.requests.Create(ctx, req)
	if err != nil {
		s.logger.Error("failed to create adoption request", slog.String("pet_id", petID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	mensaje := fmt.Sprintf("%s quiere adoptar a %s", requester.Nombre, pet.Nombre)
	if _, err := s.notifier.Create(ctx, owner.ID, models.NotificationAdopcion, mensaje, nil); err != nil {
		s.logger.Error("failed to create adoption notification",
			slog.String("owner_id", owner.ID),
			slog.Any("error", err))
	}

	s.logger.Info("adoption request created",
		slog.String("request_id", created.ID),
		slog.String("pet_id", petID),
		slog.String("requester_id", requesterID))

	return created, nil
}

// UpdateState moves a request from pendiente to aceptada or rechazada. Any
// other target, or a request already terminal, is rejected.
func (s *AdoptionService) UpdateState(ctx context.Context, id, newState string) error {
	if !models.ValidAdoptionTarget(newState) {
		return models.ErrValidation
	}

	changed, err := s.requests.UpdateStateFromPending(ctx, id, newState)
	if err != nil {
		s.logger.Error("failed to update adoption request state", slog.String("request_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	if !changed {
		// Row missing vs already terminal
		if _, err := s.requests.GetByID(ctx, id); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return models.ErrNotFound
			}
			s.logger.Error("failed to re-read adoption request", slog.String("request_id", id), slog.Any("error", err))
			return models.ErrInternalServer
		}
		return models.ErrInvalidTransition
	}

	req, err := s.requests.GetByID(ctx, id)
	if err == nil {
		var mensaje string
		if newState == models.AdoptionStateAceptada {
			mensaje = "Tu solicitud de adopción fue aceptada"
		} else {
			mensaje = "Tu solicitud de adopción fue rechazada"
		}
		if _, nerr := s.notifier.Create(ctx, req.RequesterID, models.NotificationAdopcion, mensaje, nil); nerr != nil {
			s.logger.Error("failed to notify requester of state change",
				slog.String("request_id", id),
				slog.Any("error", nerr))
		}
	}

	s.logger.Info("adoption request state updated",
		slog.String("request_id", id),
		slog.String("estado", newState))

	return nil
}

// GetByID returns a single adoption request.
func (s *AdoptionService) GetByID(ctx context.Context, id string) (*models.AdoptionRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get adoption request", slog.String("request_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return req, nil
}

// ListByPet returns requests for a pet, newest first.
func (s *AdoptionService) ListByPet(ctx context.Context, petID string) ([]*models.AdoptionRequest, error) {
	requests, err := s.requests.ListByPet(ctx, petID)
	if err != nil {
		s.logger.Error("failed to list adoption requests", slog.String("pet_id", petID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return requests, nil
}

// ListByRequester returns a user's own requests, newest first.
func (s *AdoptionService) ListByRequester(ctx context.Context, requesterID string) ([]*models.AdoptionRequest, error) {
	requests, err := s.requests.ListByRequester(ctx, requesterID)
	if err != nil {
		s.logger.Error("failed to list adoption requests", slog.String("requester_id", requesterID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return requests, nil
}
