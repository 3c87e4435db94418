package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-accounts-api/internal/domain"
	"github.com/go-accounts-api/internal/pkg/password"
)

type Service interface {
	// Login checks credentials and mints a fresh access/refresh pair. Unknown
	// email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.SessionContext, error)
	// Authenticate is the guard check: it validates the presented pair,
	// resolves the user, and rotates both tokens. Any failure rejects the
	// whole check — there is no partial pass.
	Authenticate(ctx context.Context, accessToken, refreshToken string) (*domain.SessionContext, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// tokenCodec is one purpose-keyed signer/verifier. The access and refresh
// codecs are injected separately; their secrets never mix.
type tokenCodec interface {
	Sign(userID string) (string, error)
	Verify(token string) (string, error)
}

type service struct {
	users   userStore
	access  tokenCodec
	refresh tokenCodec
}

type ServiceDeps struct {
	UserRepo     userStore
	AccessCodec  tokenCodec
	RefreshCodec tokenCodec
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:   deps.UserRepo,
		access:  deps.AccessCodec,
		refresh: deps.RefreshCodec,
	}
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.SessionContext, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Burn the same bcrypt cost as a real comparison so a missing
			// account is not detectable by timing.
			password.Verify(req.Password, password.DummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return s.mintPair(u)
}

func (s *service) Authenticate(ctx context.Context, accessToken, refreshToken string) (*domain.SessionContext, error) {
	if accessToken == "" || refreshToken == "" {
		return nil, fmt.Errorf("missing token pair: %w", domain.ErrUnauthenticated)
	}

	// Only a structurally valid, signature-valid, unexpired access token
	// authorizes passage. The refresh token is never a fallback here.
	if _, err := s.access.Verify(accessToken); err != nil {
		return nil, fmt.Errorf("access token: %w", domain.ErrUnauthenticated)
	}

	subject, err := s.refresh.Verify(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", domain.ErrUnauthenticated)
	}

	u, err := s.users.Get(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("subject %s: %w", subject, domain.ErrUserNotFound)
		}
		return nil, fmt.Errorf("resolve subject: %w", err)
	}

	// Rotate on every authenticated call. The pair the caller presented is
	// superseded; it simply ages out on its own TTLs.
	return s.mintPair(u)
}

func (s *service) mintPair(u *domain.User) (*domain.SessionContext, error) {
	access, err := s.access.Sign(u.UserID)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.refresh.Sign(u.UserID)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &domain.SessionContext{User: u, AccessToken: access, RefreshToken: refresh}, nil
}
