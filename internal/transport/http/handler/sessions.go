package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-accounts-api/internal/application/session"
	"github.com/go-accounts-api/internal/domain"
	"github.com/go-accounts-api/internal/pkg/validate"
	"github.com/go-accounts-api/internal/transport/http/middleware"
)

// SessionHandler handles login, current-session reads and logout.
type SessionHandler struct {
	svc session.Service
}

func NewSessionHandler(svc session.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sc, err := h.svc.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// Uniform failure shape: user and both tokens null, one message.
			writeJSON(w, http.StatusUnauthorized, LoginEnvelope{
				Error: &APIError{Message: domain.ErrInvalidCredentials.Error()},
			})
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginEnvelope{
		User:         sc.User,
		AccessToken:  &sc.AccessToken,
		RefreshToken: &sc.RefreshToken,
	})
}

// GetCurrent is the guarded read that also rotates: the guard already minted
// the new pair, this just echoes it with the resolved user.
func (h *SessionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	sc, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	writeJSON(w, http.StatusOK, SessionEnvelope{
		User:         sc.User,
		AccessToken:  sc.AccessToken,
		RefreshToken: sc.RefreshToken,
	})
}

// Logout clears the caller-visible token fields. Nothing is blacklisted
// server-side; the presented pair simply expires on its own TTLs.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.SessionFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	// Blank out the rotated pair the guard placed on the response.
	w.Header().Set(middleware.AccessTokenHeader, "")
	w.Header().Set(middleware.RefreshTokenHeader, "")
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out successfully"})
}
