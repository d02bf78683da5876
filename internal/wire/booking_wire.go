package wire

import (
	"seat-reservation/internal/adaptor"
	"seat-reservation/pkg/middleware"
	"seat-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, config *utils.Config, log *zap.Logger) {
	// All booking routes require authentication.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(config.JWT.Secret, log))

		// POST /api/bookings - Reserve seats under a payment hold
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// POST /api/bookings/confirm-payment - Confirm and issue ticket
		r.Post("/api/bookings/confirm-payment", bookingHandler.ConfirmPayment)

		// GET /api/bookings/{id} - Booking details (owner only)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// DELETE /api/bookings/{id} - Cancel with refund (owner only)
		r.Delete("/api/bookings/{id}", bookingHandler.CancelBooking)

		// GET /api/user/bookings - Caller's booking history
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})
}
