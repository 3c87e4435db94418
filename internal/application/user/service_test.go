package user

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/go-accounts-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if us, _ := args.Get(0).([]domain.User); us != nil {
		return us, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}
func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func TestUpdateAvatar_UploadsAndRecordsURL(t *testing.T) {
	us, os := &mockUserStore{}, &mockObjectStore{}
	body := strings.NewReader("png-bytes")

	us.On("Get", mock.Anything, "u1").
		Return(&domain.User{UserID: "u1"}, nil).Once()
	os.On("Upload", mock.Anything, "avatars/u1.png", body, "image/png").
		Return("s3://avatars-bucket/avatars/u1.png", nil)
	us.On("Update", mock.Anything, "u1", map[string]interface{}{
		"avatar_url": "s3://avatars-bucket/avatars/u1.png",
	}).Return(nil)
	us.On("Get", mock.Anything, "u1").
		Return(&domain.User{UserID: "u1", AvatarURL: "s3://avatars-bucket/avatars/u1.png"}, nil)

	u, err := NewService(ServiceDeps{UserRepo: us, ObjectStore: os}).
		UpdateAvatar(context.Background(), "u1", "selfie.PNG", "image/png", body)
	require.NoError(t, err)
	assert.Equal(t, "s3://avatars-bucket/avatars/u1.png", u.AvatarURL)
	os.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdateAvatar_DropsStaleObjectOnExtensionChange(t *testing.T) {
	us, os := &mockUserStore{}, &mockObjectStore{}
	body := strings.NewReader("jpg-bytes")

	us.On("Get", mock.Anything, "u1").
		Return(&domain.User{UserID: "u1", AvatarURL: "s3://avatars-bucket/avatars/u1.png"}, nil).Once()
	os.On("Upload", mock.Anything, "avatars/u1.jpg", body, "image/jpeg").
		Return("s3://avatars-bucket/avatars/u1.jpg", nil)
	os.On("Delete", mock.Anything, "avatars/u1.png").Return(nil)
	us.On("Update", mock.Anything, "u1", mock.Anything).Return(nil)
	us.On("Get", mock.Anything, "u1").
		Return(&domain.User{UserID: "u1", AvatarURL: "s3://avatars-bucket/avatars/u1.jpg"}, nil)

	_, err := NewService(ServiceDeps{UserRepo: us, ObjectStore: os}).
		UpdateAvatar(context.Background(), "u1", "selfie.jpg", "image/jpeg", body)
	require.NoError(t, err)
	os.AssertCalled(t, "Delete", mock.Anything, "avatars/u1.png")
}

func TestUpdateAvatar_RejectsUnknownExtension(t *testing.T) {
	us, os := &mockUserStore{}, &mockObjectStore{}

	_, err := NewService(ServiceDeps{UserRepo: us, ObjectStore: os}).
		UpdateAvatar(context.Background(), "u1", "payload.svg", "image/svg+xml", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	os.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateAvatar_UploadFailure(t *testing.T) {
	us, os := &mockUserStore{}, &mockObjectStore{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)
	os.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", fmt.Errorf("s3 unavailable"))

	_, err := NewService(ServiceDeps{UserRepo: us, ObjectStore: os}).
		UpdateAvatar(context.Background(), "u1", "selfie.jpg", "image/jpeg", strings.NewReader(""))
	require.Error(t, err)
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestList_PassesThrough(t *testing.T) {
	us := &mockUserStore{}
	us.On("List", mock.Anything).Return([]domain.User{{UserID: "u1"}, {UserID: "u2"}}, nil)

	users, err := NewService(ServiceDeps{UserRepo: us}).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
