package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-accounts-api/internal/domain"
	jwtinfra "github.com/go-accounts-api/internal/infrastructure/jwt"
	"github.com/go-accounts-api/internal/pkg/actcode"
	"github.com/go-accounts-api/internal/pkg/id"
	"github.com/go-accounts-api/internal/pkg/password"
)

const dispatchTimeout = 10 * time.Second

type Service interface {
	// Register issues a signed activation ticket for the candidate account and
	// dispatches its one-time code out-of-band. No user record is persisted.
	Register(ctx context.Context, req domain.RegisterRequest) (string, error)
	// Activate exchanges a ticket and its matching code for a persisted user.
	Activate(ctx context.Context, ticket, code string) (*domain.User, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

type mailer interface {
	Send(to, subject, templateName string, vars map[string]string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type ticketCodec interface {
	Sign(reg domain.PendingRegistration, codeDigest string) (string, error)
	Verify(token string) (*jwtinfra.TicketClaims, error)
}

type service struct {
	users     userStore
	tickets   ticketCodec
	mailer    mailer
	smsSender smsSender // nil when no SMS channel is configured
}

type ServiceDeps struct {
	UserRepo    userStore
	TicketCodec ticketCodec
	Mailer      mailer
	SMSSender   smsSender
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:     deps.UserRepo,
		tickets:   deps.TicketCodec,
		mailer:    deps.Mailer,
		smsSender: deps.SMSSender,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (string, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return "", fmt.Errorf("register %s: %w", req.Email, domain.ErrDuplicateEmail)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("register lookup: %w", err)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return "", err
	}

	code, err := actcode.New()
	if err != nil {
		return "", err
	}

	reg := domain.PendingRegistration{
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
	}
	ticket, err := s.tickets.Sign(reg, actcode.Digest(code))
	if err != nil {
		return "", fmt.Errorf("sign activation ticket: %w", err)
	}

	// The code travels only through the out-of-band channel. Dispatch is
	// fire-and-forget: a delivery failure never invalidates the ticket.
	go s.dispatchCode(reg, code)

	return ticket, nil
}

func (s *service) Activate(ctx context.Context, ticket, code string) (*domain.User, error) {
	claims, err := s.tickets.Verify(ticket)
	if err != nil {
		return nil, err
	}
	if !actcode.Matches(code, claims.CodeDigest) {
		return nil, domain.ErrInvalidCode
	}

	// Re-check: the ticket may have outlived a concurrent registration that
	// already claimed this email. Tickets are unpersisted and cannot be
	// invalidated early, so the check must happen on consumption too.
	reg := claims.Registration
	if _, err := s.users.GetByEmail(ctx, reg.Email); err == nil {
		return nil, fmt.Errorf("activate %s: %w", reg.Email, domain.ErrDuplicateEmail)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("activate lookup: %w", err)
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         reg.Name,
		Email:        reg.Email,
		PhoneNumber:  reg.PhoneNumber,
		PasswordHash: reg.PasswordHash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The store enforces uniqueness atomically; a race lost between the
	// re-check above and this write still comes back as ErrDuplicateEmail.
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) dispatchCode(reg domain.PendingRegistration, code string) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	err := s.mailer.Send(reg.Email, "Activate your account", "activation-email", map[string]string{
		"name": reg.Name,
		"code": code,
	})
	if err != nil {
		slog.Warn("activation email dispatch failed", "email", reg.Email, "err", err)
	}

	if s.smsSender != nil && reg.PhoneNumber != "" {
		if err := s.smsSender.SendSMS(ctx, reg.PhoneNumber, "Your activation code: "+code); err != nil {
			slog.Warn("activation SMS dispatch failed", "phone", reg.PhoneNumber, "err", err)
		}
	}
}
