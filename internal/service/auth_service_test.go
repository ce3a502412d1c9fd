package service

import (
	"context"
	"testing"
	"time"

	"veye-site/internal/dto"
	"veye-site/internal/models"
	"veye-site/pkg/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAdminStore struct {
	byID map[uuid.UUID]*models.Admin
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{byID: make(map[uuid.UUID]*models.Admin)}
}

func (s *fakeAdminStore) Create(ctx context.Context, admin *models.Admin) error {
	s.byID[admin.ID] = admin
	return nil
}

func (s *fakeAdminStore) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	for _, admin := range s.byID {
		if admin.Email == email {
			return admin, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeAdminStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	if admin, ok := s.byID[id]; ok {
		return admin, nil
	}
	return nil, pgx.ErrNoRows
}

func newAuthService() *AuthService {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(newFakeAdminStore(), jwtManager, zap.NewNop())
}

func TestAuthService_CreateAdmin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, " Ops@VeyeMedia.co ", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, "ops@veyemedia.co", admin.Email)
	assert.NotEqual(t, "correct horse battery", admin.Password)

	_, err = svc.CreateAdmin(ctx, "ops@veyemedia.co", "another long password")
	assert.ErrorIs(t, err, ErrAdminExists)

	_, err = svc.CreateAdmin(ctx, "new@veyemedia.co", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestAuthService_LoginAndRefresh(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, "ops@veyemedia.co", "correct horse battery")
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ops@veyemedia.co", Password: "wrong password!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@veyemedia.co", Password: "correct horse battery"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "OPS@veyemedia.co", Password: "correct horse battery"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "ops@veyemedia.co", resp.Admin.Email)

	_, err = svc.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	refreshed, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Admin.ID, refreshed.Admin.ID)
}
