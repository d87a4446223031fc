package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// CORS applies the allowed origin policy. An empty list falls back to the local dev origins.
func CORS(allowed []string, searchSessionHeader string) func(http.Handler) http.Handler {
	origins := allowed
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	headers := []string{"Accept", "Authorization", "Content-Type", "X-Request-Id", "X-Requested-With"}
	if searchSessionHeader != "" {
		headers = append(headers, searchSessionHeader)
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   headers,
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
