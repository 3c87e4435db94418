package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-accounts-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RegisterEnvelope wraps a successful registration: the signed ticket only,
// never the activation code.
type RegisterEnvelope struct {
	ActivationToken string `json:"activation_token"`
}

// UserEnvelope wraps single-user responses.
type UserEnvelope struct {
	User *domain.User `json:"user"`
}

// LoginEnvelope wraps login responses. All three value fields render as null
// on failure so the failure shape is identical regardless of cause.
type LoginEnvelope struct {
	User         *domain.User `json:"user"`
	AccessToken  *string      `json:"access_token"`
	RefreshToken *string      `json:"refresh_token"`
	Error        *APIError    `json:"error,omitempty"`
}

// SessionEnvelope wraps guarded session reads: the resolved user plus the
// rotated token pair.
type SessionEnvelope struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type APIError struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// statusFor maps domain sentinels to HTTP status codes. Anything unmapped is
// an internal failure and must not be coerced into a domain kind.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrInvalidSignature),
		errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError maps a service error to its HTTP status, hiding internal
// detail for unexpected failures.
func writeDomainError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
