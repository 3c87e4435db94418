package http

import (
	"context"
	"io"

	"github.com/go-accounts-api/internal/domain"
	jwtinfra "github.com/go-accounts-api/internal/infrastructure/jwt"
	"github.com/go-accounts-api/internal/infrastructure/smtp"
	"github.com/go-accounts-api/internal/infrastructure/sns"
)

// UserRepository is the minimal interface the router requires from the user store.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// ObjectStore is the minimal interface the router requires from the avatar store.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo     UserRepository
	ObjectStore  ObjectStore
	Mailer       smtp.Mailer
	SMSSender    sns.SMSSender
	TicketCodec  *jwtinfra.TicketCodec
	AccessCodec  *jwtinfra.SessionCodec
	RefreshCodec *jwtinfra.SessionCodec
}
