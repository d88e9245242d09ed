package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

const apiKeyEnvVar = "WEBMIND_API_KEY"

// APIKeyAuthMiddleware gates a handler behind the shared service key.
// Callers present the key either as "Authorization: Bearer <key>" or in
// the X-API-Key header; any other Authorization shape is rejected.
func APIKeyAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv(apiKeyEnvVar)
		if expected == "" {
			logger.Error("Service API key is not configured", zap.String("envVar", apiKeyEnvVar))
			http.Error(w, "Server configuration error", http.StatusInternalServerError)
			return
		}

		provided := credentialFrom(r)
		if provided == "" {
			logger.Error("API key missing from request", zap.String("path", r.URL.Path))
			http.Error(w, "API key required. Provide it as Authorization: Bearer <key> or in the X-API-Key header", http.StatusUnauthorized)
			return
		}

		if provided != expected {
			logger.Error("Invalid API key provided", zap.String("path", r.URL.Path))
			http.Error(w, "Invalid API Key", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

// credentialFrom extracts the presented key. The Authorization header
// takes precedence and must carry the Bearer scheme; bare tokens there
// are treated as absent rather than guessed at.
func credentialFrom(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, token, found := strings.Cut(auth, " ")
		if found && strings.EqualFold(scheme, "Bearer") && token != "" {
			return token
		}
		return ""
	}
	return r.Header.Get("X-API-Key")
}
