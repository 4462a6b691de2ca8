package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/samuel890456/HogarPeludo-sub001/internal/auth"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
	"github.com/samuel890456/HogarPeludo-sub001/internal/services"
)

// Mock service implementations with overridable function fields.

type MockAuthService struct {
	RegisterFunc func(ctx context.Context, nombre, email, password, telefono, direccion string) (*services.AuthResponse, error)
	LoginFunc    func(ctx context.Context, email, password string) (*services.AuthResponse, error)
}

func (m *MockAuthService) Register(ctx context.Context, nombre, email, password, telefono, direccion string) (*services.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, nombre, email, password, telefono, direccion)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, nil
}

type MockPasswordResetService struct {
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, token, newPassword string) error
}

func (m *MockPasswordResetService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockPasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, newPassword)
	}
	return nil
}

type MockAdoptionService struct {
	CreateFunc          func(ctx context.Context, petID, requesterID, comentario string) (*models.AdoptionRequest, error)
	UpdateStateFunc     func(ctx context.Context, id, newState string) error
	GetByIDFunc         func(ctx context.Context, id string) (*models.AdoptionRequest, error)
	ListByPetFunc       func(ctx context.Context, petID string) ([]*models.AdoptionRequest, error)
	ListByRequesterFunc func(ctx context.Context, requesterID string) ([]*models.AdoptionRequest, error)
}

func (m *MockAdoptionService) Create(ctx context.Context, petID, requesterID, comentario string) (*models.AdoptionRequest, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, petID, requesterID, comentario)
	}
	return nil, nil
}

func (m *MockAdoptionService) UpdateState(ctx context.Context, id, newState string) error {
	if m.UpdateStateFunc != nil {
		return m.UpdateStateFunc(ctx, id, newState)
	}
	return nil
}

func (m *MockAdoptionService) GetByID(ctx context.Context, id string) (*models.AdoptionRequest, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockAdoptionService) ListByPet(ctx context.Context, petID string) ([]*models.AdoptionRequest, error) {
	if m.ListByPetFunc != nil {
		return m.ListByPetFunc(ctx, petID)
	}
	return nil, nil
}

func (m *MockAdoptionService) ListByRequester(ctx context.Context, requesterID string) ([]*models.AdoptionRequest, error) {
	if m.ListByRequesterFunc != nil {
		return m.ListByRequesterFunc(ctx, requesterID)
	}
	return nil, nil
}

type MockRoleRequestService struct {
	SubmitFunc      func(ctx context.Context, userID, motivo string) (*models.RoleChangeRequest, error)
	ApproveFunc     func(ctx context.Context, userID, adminID string) error
	RejectFunc      func(ctx context.Context, userID, adminID string) error
	ListPendingFunc func(ctx context.Context) ([]*models.RoleChangeRequest, error)
}

func (m *MockRoleRequestService) Submit(ctx context.Context, userID, motivo string) (*models.RoleChangeRequest, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, userID, motivo)
	}
	return nil, nil
}

func (m *MockRoleRequestService) Approve(ctx context.Context, userID, adminID string) error {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, userID, adminID)
	}
	return nil
}

func (m *MockRoleRequestService) Reject(ctx context.Context, userID, adminID string) error {
	if m.RejectFunc != nil {
		return m.RejectFunc(ctx, userID, adminID)
	}
	return nil
}

func (m *MockRoleRequestService) ListPending(ctx context.Context) ([]*models.RoleChangeRequest, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx)
	}
	return nil, nil
}

type MockNotificationService struct {
	GetAllFunc      func(ctx context.Context, userID string) ([]*models.Notification, error)
	GetUnreadFunc   func(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkReadFunc    func(ctx context.Context, id, userID string) (bool, error)
	MarkAllReadFunc func(ctx context.Context, userID string) (int64, error)
	DeleteFunc      func(ctx context.Context, id, userID string) (bool, error)
}

func (m *MockNotificationService) GetAll(ctx context.Context, userID string) ([]*models.Notification, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockNotificationService) GetUnread(ctx context.Context, userID string) ([]*models.Notification, error) {
	if m.GetUnreadFunc != nil {
		return m.GetUnreadFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockNotificationService) MarkRead(ctx context.Context, id, userID string) (bool, error) {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, id, userID)
	}
	return false, nil
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockNotificationService) Delete(ctx context.Context, id, userID string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return false, nil
}

// Request builders.

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func withPrincipal(req *http.Request, principal *models.Principal) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), auth.PrincipalContextKey, principal))
}

func testPrincipal(id string, roles ...models.RoleID) *models.Principal {
	if len(roles) == 0 {
		roles = models.DefaultRoles()
	}
	return &models.Principal{
		ID:     id,
		Email:  "a@x.com",
		Nombre: "Ana",
		Roles:  roles,
		Estado: models.UserStateActivo,
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("response is not valid JSON: %v (body: %s)", err, rec.Body.String())
	}
}
