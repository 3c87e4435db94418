package user

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/go-accounts-api/internal/domain"
)

type Service interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	// UpdateAvatar stores the image and records its URL on the user.
	UpdateAvatar(ctx context.Context, userID, filename, contentType string, r io.Reader) (*domain.User, error)
}

type userStore interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	users   userStore
	objects objectStore
}

type ServiceDeps struct {
	UserRepo    userStore
	ObjectStore objectStore
}

func NewService(deps ServiceDeps) Service {
	return &service{users: deps.UserRepo, objects: deps.ObjectStore}
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.Get(ctx, userID)
}

func (s *service) UpdateAvatar(ctx context.Context, userID, filename, contentType string, r io.Reader) (*domain.User, error) {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return nil, fmt.Errorf("avatar must be jpg or png: %w", domain.ErrBadRequest)
	}

	current, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := "avatars/" + userID + ext
	url, err := s.objects.Upload(ctx, key, r, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	// A re-upload under a different extension leaves the previous object
	// behind; drop it so the bucket holds one avatar per user.
	if old := objectKey(current.AvatarURL); old != "" && old != key {
		if err := s.objects.Delete(ctx, old); err != nil {
			slog.Warn("stale avatar cleanup failed", "key", old, "err", err)
		}
	}

	if err := s.users.Update(ctx, userID, map[string]interface{}{"avatar_url": url}); err != nil {
		return nil, err
	}
	return s.users.Get(ctx, userID)
}

// objectKey extracts the bucket-relative key from an s3://bucket/key URL.
func objectKey(url string) string {
	const scheme = "s3://"
	if !strings.HasPrefix(url, scheme) {
		return ""
	}
	rest := url[len(scheme):]
	if i := strings.Index(rest, "/"); i >= 0 {
		return rest[i+1:]
	}
	return ""
}
