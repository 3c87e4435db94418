package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/go-accounts-api/internal/application/user"
	"github.com/go-accounts-api/internal/transport/http/middleware"
)

const maxAvatarSize = 5 << 20 // 5 MiB

// UserHandler handles user lookup, listing and avatar upload.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{User: u})
}

func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	sc, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "avatar file required")
		return
	}
	defer file.Close()

	u, err := h.svc.UpdateAvatar(r.Context(), sc.User.UserID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{User: u})
}
