package middleware

import (
	"fmt"
	"net/http"
)

// SecurityHeaders sets the response hardening headers. embedOrigin is the
// video player origin allowed in frame-src and media-src.
func SecurityHeaders(embedOrigin string) func(http.Handler) http.Handler {
	csp := fmt.Sprintf("default-src 'self' %[1]s; script-src 'self' 'unsafe-inline' 'unsafe-eval' %[1]s; "+
		"style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; media-src 'self' %[1]s; frame-src %[1]s;", embedOrigin)
	headers := map[string]string{
		"X-DNS-Prefetch-Control":    "on",
		"Strict-Transport-Security": "max-age=63072000; includeSubDomains; preload",
		"X-Frame-Options":           "SAMEORIGIN",
		"X-Content-Type-Options":    "nosniff",
		"X-XSS-Protection":          "1; mode=block",
		"Referrer-Policy":           "strict-origin-when-cross-origin",
		"Permissions-Policy":        "autoplay=*, camera=(), microphone=(), geolocation=(), interest-cohort=()",
		"Content-Security-Policy":   csp,
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range headers {
				h.Set(k, v)
			}
			next.ServeHTTP(w, r)
		})
	}
}
