package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samuel890456/HogarPeludo-sub001/internal/auth"
	"github.com/samuel890456/HogarPeludo-sub001/internal/config"
	"github.com/samuel890456/HogarPeludo-sub001/internal/database"
	"github.com/samuel890456/HogarPeludo-sub001/internal/handlers"
	middlewareCustom "github.com/samuel890456/HogarPeludo-sub001/internal/middleware"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
	"github.com/samuel890456/HogarPeludo-sub001/internal/repositories"
	"github.com/samuel890456/HogarPeludo-sub001/internal/routes"
	"github.com/samuel890456/HogarPeludo-sub001/internal/services"
	pkgauth "github.com/samuel890456/HogarPeludo-sub001/pkg/auth"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	petRepo := repositories.NewPetRepository(db)
	adoptionRepo := repositories.NewAdoptionRequestRepository(db)
	roleRequestRepo := repositories.NewRoleRequestRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Token manager: signing secret comes from explicit configuration
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	// AWS SES email sender
	emailSender, err := services.NewAWSSESEmailSender(
		cfg.Email.AWSRegion,
		cfg.Email.FromAddress,
		cfg.Email.FrontendURL,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize email sender", slog.Any("error", err))
		os.Exit(1)
	}

	// Services
	notificationService := services.NewNotificationService(notificationRepo, logger)
	authService := services.NewAuthService(userRepo, tokenManager, logger)
	resetService := services.NewPasswordResetService(userRepo, emailSender, cfg.Auth.ResetTokenExpiry, cfg.Email.SendTimeout, logger)
	adoptionService := services.NewAdoptionService(adoptionRepo, petRepo, userRepo, notificationService, emailSender, cfg.Email.SendTimeout, logger)
	roleRequestService := services.NewRoleRequestService(roleRequestRepo, userRepo, notificationService, db, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, resetService)
	adoptionHandler := handlers.NewAdoptionHandler(adoptionService)
	roleRequestHandler := handlers.NewRoleRequestHandler(roleRequestService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Bootstrap first admin user if configured
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureAdminUser(ctx, userRepo, logger); err != nil {
		logger.Error("failed to ensure admin user", slog.Any("error", err))
	}
	cancel()

	corsConfig := middlewareCustom.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, authHandler, adoptionHandler, roleRequestHandler, notificationHandler, tokenManager, userRepo, middlewareCustom.DefaultAuthRateLimit())

	// Health check with database
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.HealthCheck(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// ensureAdminUser creates the first admin user if ADMIN_EMAIL and ADMIN_PASSWORD are set
func ensureAdminUser(ctx context.Context, userRepo *repositories.UserRepository, logger *slog.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		logger.Info("no ADMIN_EMAIL or ADMIN_PASSWORD set, skipping admin user creation")
		return nil
	}

	_, err := userRepo.GetByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info("admin user already exists")
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	hashedPassword, err := pkgauth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Nombre:       "Admin",
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Activo:       true,
		Estado:       models.UserStateActivo,
	}

	if _, err := userRepo.Create(ctx, admin, []models.RoleID{models.RoleAdmin}); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("admin user created successfully")
	return nil
}
