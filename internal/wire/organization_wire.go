package wire

import (
	"queue-booking/internal/adaptor"
	"queue-booking/pkg/middleware"
	"queue-booking/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrganization(r chi.Router, orgHandler *adaptor.OrganizationHandler, tokens *token.JWTService, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================

	// GET /api/organizations - Browse organizations, filterable by category
	r.Get("/api/organizations", orgHandler.List)

	// GET /api/organizations/{id} - Organization details
	r.Get("/api/organizations/{id}", orgHandler.GetByID)

	// GET /api/organizations/{id}/branches - Branches of an organization
	r.Get("/api/organizations/{id}/branches", orgHandler.GetBranches)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))

		// POST /api/organizations - Create organization (organization users only)
		r.Post("/api/organizations", orgHandler.Create)

		// PUT /api/organizations/{id} - Update organization (owner or admin)
		r.Put("/api/organizations/{id}", orgHandler.Update)

		// GET /api/organizations/{id}/stats - Booking statistics (owner or admin)
		r.Get("/api/organizations/{id}/stats", orgHandler.GetStats)

		// GET /api/organizations/{id}/bookings - All bookings across branches (owner or admin)
		r.Get("/api/organizations/{id}/bookings", orgHandler.GetBookings)
	})
}
