package wire

import (
	"queue-booking/internal/adaptor"
	"queue-booking/pkg/middleware"
	"queue-booking/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSlot(r chi.Router, slotHandler *adaptor.SlotHandler, tokens *token.JWTService, log *zap.Logger) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))

		// POST /api/book-slot - Reserve a queue slot
		r.Post("/api/book-slot", slotHandler.Book)

		// GET /api/user/bookings - Booking history of the current user
		r.Get("/api/user/bookings", slotHandler.GetUserBookings)

		// PUT /api/slots/{id}/status - Cancel or confirm a booking
		r.Put("/api/slots/{id}/status", slotHandler.UpdateStatus)
	})
}
