package wire

import (
	"queue-booking/internal/adaptor"
	"queue-booking/pkg/middleware"
	"queue-booking/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBranch(r chi.Router, branchHandler *adaptor.BranchHandler, tokens *token.JWTService, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================

	// GET /api/branches - Browse branches, filterable by organization
	r.Get("/api/branches", branchHandler.List)

	// GET /api/branches/{id} - Branch details
	r.Get("/api/branches/{id}", branchHandler.GetByID)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))

		// POST /api/branches - Add a branch (owner or admin)
		r.Post("/api/branches", branchHandler.Create)

		// PUT /api/branches/{id} - Update a branch (owner or admin)
		r.Put("/api/branches/{id}", branchHandler.Update)

		// DELETE /api/branches/{id} - Remove a branch and its slots (owner or admin)
		r.Delete("/api/branches/{id}", branchHandler.Delete)
	})
}
