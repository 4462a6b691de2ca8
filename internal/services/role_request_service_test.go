package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roleRequestFixture struct {
	requests *MockRoleRequestRepository
	users    *MockUserRepository
	notifier *MockNotifier
	tx       *MockTxRunner
}

func newRoleRequestFixture() *roleRequestFixture {
	user := NewTestUser("user-1", "a@x.com", "Ana")

	return &roleRequestFixture{
		requests: &MockRoleRequestRepository{},
		users: &MockUserRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
				if id == "user-1" {
					return user, nil
				}
				return nil, models.ErrNotFound
			},
		},
		notifier: &MockNotifier{},
		tx:       &MockTxRunner{},
	}
}

func (f *roleRequestFixture) service() *RoleRequestService {
	return NewRoleRequestService(f.requests, f.users, f.notifier, f.tx, slog.Default())
}

func TestRoleRequestService_Submit_Success(t *testing.T) {
	f := newRoleRequestFixture()

	var createdReq *models.RoleChangeRequest
	f.requests.CreateFunc = func(ctx context.Context, req *models.RoleChangeRequest) (*models.RoleChangeRequest, error) {
		req.ID = "rol-1"
		req.Estado = models.RoleRequestPendiente
		createdReq = req
		return req, nil
	}

	created, err := f.service().Submit(context.Background(), "user-1", "Quiero gestionar un refugio de animales")

	require.NoError(t, err)
	assert.Equal(t, "rol-1", created.ID)
	assert.Equal(t, models.RoleRequestPendiente, created.Estado)
	assert.Equal(t, models.RoleRefugio, createdReq.RequestedRole)
}

func TestRoleRequestService_Submit_ShortMotivation(t *testing.T) {
	f := newRoleRequestFixture()
	created := false
	f.requests.CreateFunc = func(ctx context.Context, req *models.RoleChangeRequest) (*models.RoleChangeRequest, error) {
		created = true
		return req, nil
	}

	_, err := f.service().Submit(context.Background(), "user-1", "corto")
	assert.ErrorIs(t, err, models.ErrValidation)

	// Whitespace padding does not rescue a short motivation
	_, err = f.service().Submit(context.Background(), "user-1", "   corto        ")
	assert.ErrorIs(t, err, models.ErrValidation)

	assert.False(t, created)
}

func TestRoleRequestService_Submit_UnknownUser(t *testing.T) {
	f := newRoleRequestFixture()

	_, err := f.service().Submit(context.Background(), "ghost", "Quiero gestionar un refugio")

	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestRoleRequestService_Approve_ResolvesAndGrantsInOneTransaction(t *testing.T) {
	f := newRoleRequestFixture()

	txStarted := false
	f.tx.WithTransactionFunc = func(ctx context.Context, fn func(pgx.Tx) error) error {
		txStarted = true
		return fn(nil)
	}

	var resolvedState, resolvedAdmin string
	f.requests.ResolveLatestPendingTxFunc = func(ctx context.Context, tx pgx.Tx, userID, newState, adminID string) (*models.RoleChangeRequest, error) {
		resolvedState = newState
		resolvedAdmin = adminID
		return &models.RoleChangeRequest{ID: "rol-1", UserID: userID, Estado: newState}, nil
	}

	var grantedRole models.RoleID
	f.users.AddRoleTxFunc = func(ctx context.Context, tx pgx.Tx, userID string, role models.RoleID) error {
		grantedRole = role
		return nil
	}

	var notifiedUser, notifiedTipo string
	f.notifier.CreateFunc = func(ctx context.Context, userID, tipo, mensaje string, enlace *string) (*models.Notification, error) {
		notifiedUser = userID
		notifiedTipo = tipo
		return &models.Notification{ID: "n-1"}, nil
	}

	err := f.service().Approve(context.Background(), "user-1", "admin-1")

	require.NoError(t, err)
	assert.True(t, txStarted)
	assert.Equal(t, models.RoleRequestAprobada, resolvedState)
	assert.Equal(t, "admin-1", resolvedAdmin)
	assert.Equal(t, models.RoleRefugio, grantedRole)
	assert.Equal(t, "user-1", notifiedUser)
	assert.Equal(t, models.NotificationRolCambio, notifiedTipo)
}

func TestRoleRequestService_Approve_NoPendingRequest(t *testing.T) {
	f := newRoleRequestFixture()

	f.requests.ResolveLatestPendingTxFunc = func(ctx context.Context, tx pgx.Tx, userID, newState, adminID string) (*models.RoleChangeRequest, error) {
		return nil, models.ErrNotFound
	}

	granted := false
	f.users.AddRoleTxFunc = func(ctx context.Context, tx pgx.Tx, userID string, role models.RoleID) error {
		granted = true
		return nil
	}

	err := f.service().Approve(context.Background(), "user-1", "admin-1")

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.False(t, granted)
}

func TestRoleRequestService_Approve_GrantFailureAbortsResolution(t *testing.T) {
	f := newRoleRequestFixture()

	f.requests.ResolveLatestPendingTxFunc = func(ctx context.Context, tx pgx.Tx, userID, newState, adminID string) (*models.RoleChangeRequest, error) {
		return &models.RoleChangeRequest{ID: "rol-1", UserID: userID}, nil
	}
	f.users.AddRoleTxFunc = func(ctx context.Context, tx pgx.Tx, userID string, role models.RoleID) error {
		return assert.AnError
	}

	notified := false
	f.notifier.CreateFunc = func(ctx context.Context, userID, tipo, mensaje string, enlace *string) (*models.Notification, error) {
		notified = true
		return nil, nil
	}

	err := f.service().Approve(context.Background(), "user-1", "admin-1")

	assert.ErrorIs(t, err, models.ErrInternalServer)
	assert.False(t, notified)
}

func TestRoleRequestService_Reject_NoRoleMutation(t *testing.T) {
	f := newRoleRequestFixture()

	var resolvedState string
	f.requests.ResolveLatestPendingFunc = func(ctx context.Context, userID, newState, adminID string) (*models.RoleChangeRequest, error) {
		resolvedState = newState
		return &models.RoleChangeRequest{ID: "rol-1", UserID: userID, Estado: newState}, nil
	}

	granted := false
	f.users.AddRoleTxFunc = func(ctx context.Context, tx pgx.Tx, userID string, role models.RoleID) error {
		granted = true
		return nil
	}

	err := f.service().Reject(context.Background(), "user-1", "admin-1")

	require.NoError(t, err)
	assert.Equal(t, models.RoleRequestRechazada, resolvedState)
	assert.False(t, granted)
}

func TestRoleRequestService_Reject_NoPendingRequest(t *testing.T) {
	f := newRoleRequestFixture()

	f.requests.ResolveLatestPendingFunc = func(ctx context.Context, userID, newState, adminID string) (*models.RoleChangeRequest, error) {
		return nil, models.ErrNotFound
	}

	err := f.service().Reject(context.Background(), "user-1", "admin-1")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRoleRequestService_ListPending(t *testing.T) {
	f := newRoleRequestFixture()
	f.requests.ListPendingFunc = func(ctx context.Context) ([]*models.RoleChangeRequest, error) {
		return []*models.RoleChangeRequest{
			{ID: "rol-2", UserID: "user-2"},
			{ID: "rol-1", UserID: "user-1"},
		}, nil
	}

	list, err := f.service().ListPending(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "rol-2", list[0].ID)
}
