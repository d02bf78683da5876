package wire

import (
	"seat-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// POST /api/auth/register - Create account (public)
	r.Post("/api/auth/register", authHandler.Register)

	// POST /api/auth/login - Obtain access token (public)
	r.Post("/api/auth/login", authHandler.Login)
}
