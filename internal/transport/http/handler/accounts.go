package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-accounts-api/internal/application/registration"
	"github.com/go-accounts-api/internal/domain"
	"github.com/go-accounts-api/internal/pkg/validate"
)

// AccountHandler handles the two-phase registration endpoints.
type AccountHandler struct {
	svc registration.Service
}

func NewAccountHandler(svc registration.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ticket, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, RegisterEnvelope{ActivationToken: ticket})
}

func (h *AccountHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req domain.ActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Activate(r.Context(), req.ActivationToken, req.ActivationCode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, UserEnvelope{User: u})
}
