package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
	"github.com/samuel890456/HogarPeludo-sub001/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	mockAuth := &MockAuthService{
		RegisterFunc: func(ctx context.Context, nombre, email, password, telefono, direccion string) (*services.AuthResponse, error) {
			return &services.AuthResponse{
				ID:     "user-1",
				Nombre: nombre,
				Email:  email,
				Token:  "signed-token",
				Roles:  models.DefaultRoles(),
			}, nil
		},
	}
	h := NewAuthHandler(mockAuth, &MockPasswordResetService{})

	req := jsonRequest(t, http.MethodPost, "/api/auth/registrarse", map[string]string{
		"nombre":     "Ana",
		"email":      "a@x.com",
		"contraseña": "secret1",
	})
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp services.AuthResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "user-1", resp.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	mockAuth := &MockAuthService{
		RegisterFunc: func(ctx context.Context, nombre, email, password, telefono, direccion string) (*services.AuthResponse, error) {
			return nil, models.ErrConflict
		},
	}
	h := NewAuthHandler(mockAuth, &MockPasswordResetService{})

	req := jsonRequest(t, http.MethodPost, "/api/auth/registrarse", map[string]string{
		"nombre":     "Ana",
		"email":      "taken@x.com",
		"contraseña": "secret1",
	})
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "duplicate_email")
	assert.Contains(t, rec.Body.String(), "El correo ya está registrado")
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	called := false
	mockAuth := &MockAuthService{
		RegisterFunc: func(ctx context.Context, nombre, email, password, telefono, direccion string) (*services.AuthResponse, error) {
			called = true
			return nil, nil
		},
	}
	h := NewAuthHandler(mockAuth, &MockPasswordResetService{})

	bodies := []map[string]string{
		{"email": "a@x.com", "contraseña": "secret1"},                      // missing nombre
		{"nombre": "Ana", "email": "not-an-email", "contraseña": "secret1"}, // bad email
		{"nombre": "Ana", "email": "a@x.com", "contraseña": "abc"},          // short password
	}

	for _, body := range bodies {
		req := jsonRequest(t, http.MethodPost, "/api/auth/registrarse", body)
		rec := httptest.NewRecorder()
		h.Register(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
	assert.False(t, called)
}

func TestAuthHandler_Register_MalformedJSON(t *testing.T) {
	h := NewAuthHandler(&MockAuthService{}, &MockPasswordResetService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/registrarse", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockAuth := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return &services.AuthResponse{ID: "user-1", Email: email, Token: "signed-token"}, nil
		},
	}
	h := NewAuthHandler(mockAuth, &MockPasswordResetService{})

	req := jsonRequest(t, http.MethodPost, "/api/auth/iniciar-sesion", map[string]string{
		"email":      "a@x.com",
		"contraseña": "secret1",
	})
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp services.AuthResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "signed-token", resp.Token)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockAuth := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return nil, models.ErrUnauthorized
		},
	}
	h := NewAuthHandler(mockAuth, &MockPasswordResetService{})

	req := jsonRequest(t, http.MethodPost, "/api/auth/iniciar-sesion", map[string]string{
		"email":      "a@x.com",
		"contraseña": "wrong",
	})
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Credenciales incorrectas")
}

func TestAuthHandler_Login_BlockedAccount(t *testing.T) {
	mockAuth := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return nil, models.ErrAccountBlocked
		},
	}
	h := NewAuthHandler(mockAuth, &MockPasswordResetService{})

	req := jsonRequest(t, http.MethodPost, "/api/auth/iniciar-sesion", map[string]string{
		"email":      "a@x.com",
		"contraseña": "secret1",
	})
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "account_blocked")
}

func TestAuthHandler_ForgotPassword_GenericMessage(t *testing.T) {
	var gotEmail string
	mockReset := &MockPasswordResetService{
		ForgotPasswordFunc: func(ctx context.Context, email string) error {
			gotEmail = email
			return nil
		},
	}
	h := NewAuthHandler(&MockAuthService{}, mockReset)

	req := jsonRequest(t, http.MethodPost, "/api/auth/forgot-password", map[string]string{
		"email": "a@x.com",
	})
	rec := httptest.NewRecorder()
	h.ForgotPassword(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", gotEmail)
	// Same body regardless of whether the account exists
	assert.Contains(t, rec.Body.String(), services.GenericResetMessage)
}

func TestAuthHandler_ResetPassword_Success(t *testing.T) {
	var gotToken, gotPassword string
	mockReset := &MockPasswordResetService{
		ResetPasswordFunc: func(ctx context.Context, token, newPassword string) error {
			gotToken = token
			gotPassword = newPassword
			return nil
		},
	}
	h := NewAuthHandler(&MockAuthService{}, mockReset)

	req := jsonRequest(t, http.MethodPost, "/api/auth/reset-password/tok-123", map[string]string{
		"newPassword": "nuevaClave1",
	})
	req = withURLParams(req, map[string]string{"token": "tok-123"})
	rec := httptest.NewRecorder()
	h.ResetPassword(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok-123", gotToken)
	assert.Equal(t, "nuevaClave1", gotPassword)
}

func TestAuthHandler_ResetPassword_InvalidToken(t *testing.T) {
	mockReset := &MockPasswordResetService{
		ResetPasswordFunc: func(ctx context.Context, token, newPassword string) error {
			return models.ErrInvalidResetToken
		},
	}
	h := NewAuthHandler(&MockAuthService{}, mockReset)

	req := jsonRequest(t, http.MethodPost, "/api/auth/reset-password/expired", map[string]string{
		"newPassword": "nuevaClave1",
	})
	req = withURLParams(req, map[string]string{"token": "expired"})
	rec := httptest.NewRecorder()
	h.ResetPassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_reset_token")
}

func TestAuthHandler_ResetPassword_TooShort(t *testing.T) {
	mockReset := &MockPasswordResetService{
		ResetPasswordFunc: func(ctx context.Context, token, newPassword string) error {
			return models.ErrValidation
		},
	}
	h := NewAuthHandler(&MockAuthService{}, mockReset)

	req := jsonRequest(t, http.MethodPost, "/api/auth/reset-password/tok-123", map[string]string{
		"newPassword": "abc",
	})
	req = withURLParams(req, map[string]string{"token": "tok-123"})
	rec := httptest.NewRecorder()
	h.ResetPassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "password_too_short")
}
