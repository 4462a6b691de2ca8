package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/samuel890456/HogarPeludo-sub001/internal/auth"
	"github.com/samuel890456/HogarPeludo-sub001/internal/handlers"
	"github.com/samuel890456/HogarPeludo-sub001/internal/middleware"
	"github.com/samuel890456/HogarPeludo-sub001/internal/routes"
	"github.com/samuel890456/HogarPeludo-sub001/internal/services"
)

// SentEmail is a captured outbound email
type SentEmail struct {
	To    string
	Kind  string // "reset" or "adoption"
	Token string // reset token, when Kind is "reset"
	Body  string
}

// CapturingEmailSender records outbound mail for assertions instead of
// talking to SES.
type CapturingEmailSender struct {
	mu    sync.Mutex
	Sent  []SentEmail
	ready chan struct{}
}

func NewCapturingEmailSender() *CapturingEmailSender {
	return &CapturingEmailSender{ready: make(chan struct{}, 16)}
}

func (c *CapturingEmailSender) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	c.mu.Lock()
	c.Sent = append(c.Sent, SentEmail{To: email, Kind: "reset", Token: token})
	c.mu.Unlock()
	c.ready <- struct{}{}
	return nil
}

func (c *CapturingEmailSender) SendAdoptionRequestEmail(ctx context.Context, email, ownerName, requesterName, petName, comment string) error {
	body := fmt.Sprintf("%s quiere adoptar a %s: %s", requesterName, petName, comment)
	c.mu.Lock()
	c.Sent = append(c.Sent, SentEmail{To: email, Kind: "adoption", Body: body})
	c.mu.Unlock()
	c.ready <- struct{}{}
	return nil
}

// Reset drops captured mail and drains pending signals.
func (c *CapturingEmailSender) Reset() {
	c.mu.Lock()
	c.Sent = nil
	c.mu.Unlock()
	for {
		select {
		case <-c.ready:
		default:
			return
		}
	}
}

// WaitForEmail blocks until an email has been captured or the timeout fires.
// Password reset mail is dispatched out of band, so tests must synchronize.
func (c *CapturingEmailSender) WaitForEmail(timeout time.Duration) (*SentEmail, error) {
	select {
	case <-c.ready:
	case <-time.After(timeout):
		return nil, fmt.Errorf("no email captured within %s", timeout)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Sent) == 0 {
		return nil, fmt.Errorf("email signal without captured message")
	}
	last := c.Sent[len(c.Sent)-1]
	return &last, nil
}

// TestServer bundles the HTTP server under test with its seams
type TestServer struct {
	Server *httptest.Server
	Email  *CapturingEmailSender
	Token  *auth.TokenManager
}

const testJWTSecret = "integration-test-secret-32-chars!!"

// SetupTestServer wires the full router against the test database, with the
// email sender replaced by a capturing fake.
func SetupTestServer(db *TestDB) *TestServer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo, petRepo, adoptionRepo, roleRequestRepo, notificationRepo := InitializeRepositories(db.DB)

	tokenManager := auth.NewTokenManager(testJWTSecret, 1*time.Hour)
	emailSender := NewCapturingEmailSender()

	notificationService := services.NewNotificationService(notificationRepo, logger)
	authService := services.NewAuthService(userRepo, tokenManager, logger)
	resetService := services.NewPasswordResetService(userRepo, emailSender, 1*time.Hour, 5*time.Second, logger)
	adoptionService := services.NewAdoptionService(adoptionRepo, petRepo, userRepo, notificationService, emailSender, 5*time.Second, logger)
	roleRequestService := services.NewRoleRequestService(roleRequestRepo, userRepo, notificationService, db.DB, logger)

	authHandler := handlers.NewAuthHandler(authService, resetService)
	adoptionHandler := handlers.NewAdoptionHandler(adoptionService)
	roleRequestHandler := handlers.NewRoleRequestHandler(roleRequestService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)

	// A generous limit so the suite never trips it from a single IP
	routes.RegisterRoutes(router, authHandler, adoptionHandler, roleRequestHandler, notificationHandler, tokenManager, userRepo,
		middleware.RateLimitConfig{RequestsPerMinute: 10000})

	return &TestServer{
		Server: httptest.NewServer(router),
		Email:  emailSender,
		Token:  tokenManager,
	}
}

// Close shuts the server down
func (ts *TestServer) Close() {
	ts.Server.Close()
}

// DoJSON issues a request with a JSON body and optional bearer token
func (ts *TestServer) DoJSON(method, path, token string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return ts.Server.Client().Do(req)
}

// DecodeJSON reads and decodes a response body
func DecodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}
