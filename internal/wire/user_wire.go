package wire

import (
	"queue-booking/internal/adaptor"
	"queue-booking/pkg/middleware"
	"queue-booking/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, tokens *token.JWTService, log *zap.Logger) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))

		// GET /api/users/me - Current user's profile
		r.Get("/api/users/me", userHandler.GetProfile)

		// POST /api/users/become-organization - One-way promotion to organization
		r.Post("/api/users/become-organization", userHandler.BecomeOrganization)
	})
}
