package httpserver

import (
	"net/http"
	"strings"

	"github.com/fdg312/food-tracker/internal/config"
	"github.com/fdg312/food-tracker/internal/logger"
	"go.uber.org/zap"
)

const (
	corsAllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
	corsAllowHeaders = "Authorization,Content-Type"
	corsExposeHeader = "Content-Disposition"
)

// CORSMiddleware echoes allowed origins. "*" in the list allows any origin,
// but never together with credentials.
func CORSMiddleware(cfg *config.Config, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(cfg.CORSAllowedOrigins))
	wildcard := false
	for _, o := range cfg.CORSAllowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			wildcard = true
			continue
		}
		allowed[o] = true
	}

	isAllowed := func(origin string) bool {
		return allowed[origin] || (wildcard && !cfg.CORSAllowCredentials)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		ok := isAllowed(origin)
		if ok {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Expose-Headers", corsExposeHeader)
			if cfg.CORSAllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
		}

		if r.Method == http.MethodOptions {
			if ok {
				w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
				w.Header().Set("Access-Control-Max-Age", "600")
			} else {
				logger.L().Debug("cors: preflight from disallowed origin", zap.String("origin", origin))
			}
			// браузер сам заблокирует ответ без CORS заголовков
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
