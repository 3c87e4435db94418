package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-accounts-api/internal/domain"
)

// Header names the client round-trips the token pair through. The guard reads
// the presented pair from these headers and writes the rotated pair back into
// the same headers on the response.
const (
	AccessTokenHeader  = "Access-Token"
	RefreshTokenHeader = "Refresh-Token"
)

type contextKey string

const sessionKey contextKey = "session"

// Authenticator is the guard check: validate the presented pair, resolve the
// user, rotate both tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken, refreshToken string) (*domain.SessionContext, error)
}

// Guard returns middleware protecting every downstream handler. A request
// passes only when both tokens verify and the user resolves; on success the
// rotated pair plus the user ride the request context, and the response
// headers carry the new pair for the client to persist. Every failure is a
// hard reject — rotation errors never let the call through.
func Guard(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc, err := auth.Authenticate(r.Context(),
				r.Header.Get(AccessTokenHeader),
				r.Header.Get(RefreshTokenHeader),
			)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthenticated):
					writeJSONError(w, http.StatusUnauthorized, "please login to access this content")
				case errors.Is(err, domain.ErrUserNotFound):
					writeJSONError(w, http.StatusNotFound, "user not found")
				default:
					writeJSONError(w, http.StatusInternalServerError, "internal error")
				}
				return
			}

			w.Header().Set(AccessTokenHeader, sc.AccessToken)
			w.Header().Set(RefreshTokenHeader, sc.RefreshToken)

			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sc)))
		})
	}
}

// ContextWithSession attaches the guard's session context.
func ContextWithSession(ctx context.Context, sc *domain.SessionContext) context.Context {
	return context.WithValue(ctx, sessionKey, sc)
}

// SessionFromContext extracts the guard's session context from the request context.
func SessionFromContext(ctx context.Context) (*domain.SessionContext, bool) {
	sc, ok := ctx.Value(sessionKey).(*domain.SessionContext)
	return sc, ok
}
