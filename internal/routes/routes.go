package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/samuel890456/HogarPeludo-sub001/internal/auth"
	"github.com/samuel890456/HogarPeludo-sub001/internal/handlers"
	"github.com/samuel890456/HogarPeludo-sub001/internal/middleware"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	adoptionHandler *handlers.AdoptionHandler,
	roleRequestHandler *handlers.RoleRequestHandler,
	notificationHandler *handlers.NotificationHandler,
	tokenManager *auth.TokenManager,
	userResolver auth.UserResolver,
	rateLimitConfig middleware.RateLimitConfig,
) {
	// Public routes - no authentication required
	router.Route("/api/auth", func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(rateLimitConfig))
		r.Post("/registrarse", authHandler.Register)
		r.Post("/iniciar-sesion", authHandler.Login)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password/{token}", authHandler.ResetPassword)
	})

	// Protected routes - authorization gate required
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokenManager, userResolver))

		r.Post("/api/adopciones", adoptionHandler.Create)
		r.Get("/api/adopciones", adoptionHandler.ListMine)
		r.Get("/api/adopciones/{id}", adoptionHandler.Get)
		r.Put("/api/solicitudes/{id}/estado", adoptionHandler.UpdateState)

		r.Post("/api/usuarios/{id}/solicitar-rol-refugio", roleRequestHandler.Submit)

		r.Get("/api/notificaciones", notificationHandler.List)
		r.Get("/api/notificaciones/no-leidas", notificationHandler.ListUnread)
		r.Put("/api/notificaciones/leidas", notificationHandler.MarkAllRead)
		r.Put("/api/notificaciones/{id}/leida", notificationHandler.MarkRead)
		r.Delete("/api/notificaciones/{id}", notificationHandler.Delete)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleAdmin))
			r.Put("/api/usuarios/{userId}/aprobar-rol", roleRequestHandler.Approve)
			r.Put("/api/usuarios/{userId}/rechazar-rol", roleRequestHandler.Reject)
			r.Get("/api/solicitudes-rol/pendientes", roleRequestHandler.ListPending)
		})
	})
}
