package wire

import (
	"queue-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================

	// POST /api/register - Create a new account
	r.Post("/api/register", authHandler.Register)

	// POST /api/login - Exchange credentials for an access token
	r.Post("/api/login", authHandler.Login)

	// GET /api/verify-email - Confirm email via the mailed token
	r.Get("/api/verify-email", authHandler.VerifyEmail)

	// POST /api/forgot-password - Request a password reset email
	r.Post("/api/forgot-password", authHandler.ForgotPassword)

	// POST /api/reset-password - Set a new password with the reset token
	r.Post("/api/reset-password", authHandler.ResetPassword)
}
