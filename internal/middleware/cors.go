package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"labo-backend/internal/config"
)

// NewCORS builds the CORS handler from the configured frontend origins.
// Credentials stay enabled because the frontend sends the JWT in a header
// alongside cookies.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
