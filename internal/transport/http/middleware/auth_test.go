package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-accounts-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthenticator returns a canned result or error.
type fakeAuthenticator struct {
	sc  *domain.SessionContext
	err error

	gotAccess  string
	gotRefresh string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, access, refresh string) (*domain.SessionContext, error) {
	f.gotAccess, f.gotRefresh = access, refresh
	if f.err != nil {
		return nil, f.err
	}
	return f.sc, nil
}

func rotatedSession() *domain.SessionContext {
	return &domain.SessionContext{
		User:         &domain.User{UserID: "user-123", Email: "ana@x.com"},
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
	}
}

func TestGuard_Success_RotatesHeadersAndContext(t *testing.T) {
	auth := &fakeAuthenticator{sc: rotatedSession()}

	var gotCtx *domain.SessionContext
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCtx, _ = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AccessTokenHeader, "old-access")
	req.Header.Set(RefreshTokenHeader, "old-refresh")
	rr := httptest.NewRecorder()

	Guard(auth)(inner).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "old-access", auth.gotAccess)
	assert.Equal(t, "old-refresh", auth.gotRefresh)

	// Rotated pair rides both the response headers and the request context.
	assert.Equal(t, "new-access", rr.Header().Get(AccessTokenHeader))
	assert.Equal(t, "new-refresh", rr.Header().Get(RefreshTokenHeader))
	require.NotNil(t, gotCtx)
	assert.Equal(t, "user-123", gotCtx.User.UserID)
	assert.Equal(t, "new-access", gotCtx.AccessToken)
}

func TestGuard_Unauthenticated(t *testing.T) {
	auth := &fakeAuthenticator{err: fmt.Errorf("access token: %w", domain.ErrUnauthenticated)}

	called := false
	inner := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	Guard(auth)(inner).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called, "guard must not let the call through")
	assert.Empty(t, rr.Header().Get(AccessTokenHeader))
}

func TestGuard_UserNotFound(t *testing.T) {
	auth := &fakeAuthenticator{err: fmt.Errorf("subject user-123: %w", domain.ErrUserNotFound)}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	Guard(auth)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGuard_InternalFailure_HardRejects(t *testing.T) {
	auth := &fakeAuthenticator{err: fmt.Errorf("sign access token: boom")}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AccessTokenHeader, "a")
	req.Header.Set(RefreshTokenHeader, "r")
	rr := httptest.NewRecorder()
	Guard(auth)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("rotation failure must reject the whole call")
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSessionFromContext_Absent(t *testing.T) {
	_, ok := SessionFromContext(context.Background())
	assert.False(t, ok)
}
