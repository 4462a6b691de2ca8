package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
)

// NewTestUser builds an active user for tests
func NewTestUser(id, email, nombre string) *models.User {
	now := time.Now()
	return &models.User{
		ID:           id,
		Nombre:       nombre,
		Email:        email,
		PasswordHash: "$2a$12$fakehashfortestingonly000000000000000000000000000000",
		Activo:       true,
		Estado:       models.UserStateActivo,
		Roles:        models.RoleSet{models.RolePublicador, models.RoleAdoptante},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc                          func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc                       func(ctx context.Context, email string) (*models.User, error)
	CreateFunc                           func(ctx context.Context, user *models.User, roles []models.RoleID) (*models.User, error)
	SetResetTokenFunc                    func(ctx context.Context, userID, token string, expiry time.Time) error
	GetByResetTokenFunc                  func(ctx context.Context, token string) (*models.User, error)
	UpdatePasswordAndClearResetTokenFunc func(ctx context.Context, userID, passwordHash string) error
	AddRoleTxFunc                        func(ctx context.Context, tx pgx.Tx, userID string, role models.RoleID) error
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User, roles []models.RoleID) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user, roles)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, userID, token, expiry)
	}
	return nil
}

func (m *MockUserRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	if m.GetByResetTokenFunc != nil {
		return m.GetByResetTokenFunc(ctx, token)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) UpdatePasswordAndClearResetToken(ctx context.Context, userID, passwordHash string) error {
	if m.UpdatePasswordAndClearResetTokenFunc != nil {
		return m.UpdatePasswordAndClearResetTokenFunc(ctx, userID, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) AddRoleTx(ctx context.Context, tx pgx.Tx, userID string, role models.RoleID) error {
	if m.AddRoleTxFunc != nil {
		return m.AddRoleTxFunc(ctx, tx, userID, role)
	}
	return nil
}

// MockPetRepository implements PetRepository for testing
type MockPetRepository struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.Pet, error)
}

func (m *MockPetRepository) GetByID(ctx context.Context, id string) (*models.Pet, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrPetNotFound
}

// MockAdoptionRequestRepository implements AdoptionRequestRepository for testing
type MockAdoptionRequestRepository struct {
	CreateFunc                 func(ctx context.Context, req *models.AdoptionRequest) (*models.AdoptionRequest, error)
	GetByIDFunc                func(ctx context.Context, id string) (*models.AdoptionRequest, error)
	UpdateStateFromPendingFunc func(ctx context.Context, id, newState string) (bool, error)
	ListByPetFunc              func(ctx context.Context, petID string) ([]*models.AdoptionRequest, error)
	ListByRequesterFunc        func(ctx context.Context, requesterID string) ([]*models.AdoptionRequest, error)
}

func (m *MockAdoptionRequestRepository) Create(ctx context.Context, req *models.AdoptionRequest) (*models.AdoptionRequest, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAdoptionRequestRepository) GetByID(ctx context.Context, id string) (*models.AdoptionRequest, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockAdoptionRequestRepository) UpdateStateFromPending(ctx context.Context, id, newState string) (bool, error) {
	if m.UpdateStateFromPendingFunc != nil {
		return m.UpdateStateFromPendingFunc(ctx, id, newState)
	}
	return false, nil
}

func (m *MockAdoptionRequestRepository) ListByPet(ctx context.Context, petID string) ([]*models.AdoptionRequest, error) {
	if m.ListByPetFunc != nil {
		return m.ListByPetFunc(ctx, petID)
	}
	return []*models.AdoptionRequest{}, nil
}

func (m *MockAdoptionRequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]*models.AdoptionRequest, error) {
	if m.ListByRequesterFunc != nil {
		return m.ListByRequesterFunc(ctx, requesterID)
	}
	return []*models.AdoptionRequest{}, nil
}

// MockRoleRequestRepository implements RoleRequestRepository for testing
type MockRoleRequestRepository struct {
	CreateFunc                 func(ctx context.Context, req *models.RoleChangeRequest) (*models.RoleChangeRequest, error)
	ResolveLatestPendingTxFunc func(ctx context.Context, tx pgx.Tx, userID, newState, adminID string) (*models.RoleChangeRequest, error)
	ResolveLatestPendingFunc   func(ctx context.Context, userID, newState, adminID string) (*models.RoleChangeRequest, error)
	ListPendingFunc            func(ctx context.Context) ([]*models.RoleChangeRequest, error)
}

func (m *MockRoleRequestRepository) Create(ctx context.Context, req *models.RoleChangeRequest) (*models.RoleChangeRequest, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return nil, models.ErrInternalServer
}

func (m *MockRoleRequestRepository) ResolveLatestPendingTx(ctx context.Context, tx pgx.Tx, userID, newState, adminID string) (*models.RoleChangeRequest, error) {
	if m.ResolveLatestPendingTxFunc != nil {
		return m.ResolveLatestPendingTxFunc(ctx, tx, userID, newState, adminID)
	}
	return nil, models.ErrNotFound
}

func (m *MockRoleRequestRepository) ResolveLatestPending(ctx context.Context, userID, newState, adminID string) (*models.RoleChangeRequest, error) {
	if m.ResolveLatestPendingFunc != nil {
		return m.ResolveLatestPendingFunc(ctx, userID, newState, adminID)
	}
	return nil, models.ErrNotFound
}

func (m *MockRoleRequestRepository) ListPending(ctx context.Context) ([]*models.RoleChangeRequest, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx)
	}
	return []*models.RoleChangeRequest{}, nil
}

// MockNotificationRepository implements NotificationRepository for testing
type MockNotificationRepository struct {
	CreateFunc           func(ctx context.Context, n *models.Notification) (*models.Notification, error)
	GetByIDFunc          func(ctx context.Context, id string) (*models.Notification, error)
	ListByUserFunc       func(ctx context.Context, userID string) ([]*models.Notification, error)
	ListUnreadByUserFunc func(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkReadFunc         func(ctx context.Context, id, userID string) (bool, error)
	MarkAllReadFunc      func(ctx context.Context, userID string) (int64, error)
	DeleteFunc           func(ctx context.Context, id, userID string) (bool, error)
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	n.ID = "notif-1"
	return n, nil
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []*models.Notification{}, nil
}

func (m *MockNotificationRepository) ListUnreadByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	if m.ListUnreadByUserFunc != nil {
		return m.ListUnreadByUserFunc(ctx, userID)
	}
	return []*models.Notification{}, nil
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID string) (bool, error) {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, id, userID)
	}
	return false, nil
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return false, nil
}

// MockEmailSender implements EmailSender for testing
type MockEmailSender struct {
	SendPasswordResetEmailFunc   func(ctx context.Context, email, token string) error
	SendAdoptionRequestEmailFunc func(ctx context.Context, email, ownerName, requesterName, petName, comment string) error
}

func (m *MockEmailSender) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	if m.SendPasswordResetEmailFunc != nil {
		return m.SendPasswordResetEmailFunc(ctx, email, token)
	}
	return nil
}

func (m *MockEmailSender) SendAdoptionRequestEmail(ctx context.Context, email, ownerName, requesterName, petName, comment string) error {
	if m.SendAdoptionRequestEmailFunc != nil {
		return m.SendAdoptionRequestEmailFunc(ctx, email, ownerName, requesterName, petName, comment)
	}
	return nil
}

// MockNotifier implements Notifier for testing
type MockNotifier struct {
	CreateFunc func(ctx context.Context, userID, tipo, mensaje string, enlace *string) (*models.Notification, error)
}

func (m *MockNotifier) Create(ctx context.Context, userID, tipo, mensaje string, enlace *string) (*models.Notification, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, tipo, mensaje, enlace)
	}
	return &models.Notification{ID: "notif-1", UserID: userID, Tipo: tipo, Mensaje: mensaje}, nil
}

// MockTxRunner implements TxRunner by invoking the function with a nil
// transaction; mock repositories ignore the tx argument.
type MockTxRunner struct {
	WithTransactionFunc func(ctx context.Context, fn func(pgx.Tx) error) error
}

func (m *MockTxRunner) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	if m.WithTransactionFunc != nil {
		return m.WithTransactionFunc(ctx, fn)
	}
	return fn(nil)
}
