package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fdg312/food-tracker/internal/userctx"
)

type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleDevAuth handles POST /v1/auth/dev
func (h *Handlers) HandleDevAuth(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.SignInDev(r.Context())
	if err != nil {
		if errors.Is(err, ErrDevAuthDisabled) {
			writeError(w, http.StatusNotFound, "not_found", "Dev auth is disabled")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleMe handles GET /v1/me
func (h *Handlers) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userctx.GetUserID(r.Context())
	if !ok || userID == "" {
		writeJSON(w, http.StatusOK, MeResponse{UserID: userctx.DefaultUserID, Authenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, MeResponse{UserID: userID, Authenticated: true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
