package wire

import (
	"seat-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShowtime(r chi.Router, showtimeHandler *adaptor.ShowtimeHandler) {
	// GET /api/showtimes - List showtimes (public)
	r.Get("/api/showtimes", showtimeHandler.GetShowtimes)

	// GET /api/showtimes/{id} - Showtime detail with seat map (public)
	r.Get("/api/showtimes/{id}", showtimeHandler.GetShowtimeDetail)
}
