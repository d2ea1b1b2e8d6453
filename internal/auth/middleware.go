package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fdg312/food-tracker/internal/config"
	"github.com/fdg312/food-tracker/internal/logger"
	"github.com/fdg312/food-tracker/internal/userctx"
	"go.uber.org/zap"
)

// Middleware - проверка Bearer токена
type Middleware struct {
	required bool
	service  *Service
}

// NewMiddleware: tokens are mandatory only when AUTH_MODE is not none and AUTH_REQUIRED is set.
func NewMiddleware(cfg *config.Config, service *Service) *Middleware {
	return &Middleware{
		required: cfg.AuthRequired,
		service:  service,
	}
}

// Wrap attaches the token subject to the request context. A present but
// invalid token is always rejected; a missing one only when auth is required.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" {
			if m.required {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.authenticateHeader(header)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
			return
		}

		logger.L().Debug("auth token accepted",
			zap.String("sub", userID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r.WithContext(userctx.WithUserID(r.Context(), userID)))
	})
}

func (m *Middleware) authenticateHeader(authHeader string) (string, error) {
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	return m.service.VerifyJWT(strings.TrimSpace(token))
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func isPublicPath(path string) bool {
	return path == "/healthz" || strings.HasPrefix(path, "/v1/auth/")
}
