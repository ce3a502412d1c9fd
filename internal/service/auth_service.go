package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"veye-site/internal/dto"
	"veye-site/internal/models"
	"veye-site/pkg/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminExists        = errors.New("admin already exists")
	ErrWeakPassword       = errors.New("password must be at least 12 characters")
)

const minPasswordLength = 12

// AdminStore is implemented by repository.AdminRepository.
type AdminStore interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
}

type AuthService struct {
	adminRepo  AdminStore
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(adminRepo AdminStore, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// CreateAdmin registers a back-office account. Used by the CLI only.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	existing, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing != nil {
		return nil, ErrAdminExists
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	admin := &models.Admin{
		ID:        uuid.New(),
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("Admin created", zap.String("admin_id", admin.ID.String()))
	return admin, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(admin)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	adminID, err := uuid.Parse(claims.AdminID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, ErrAdminNotFound
	}

	return s.issueTokens(admin)
}

func (s *AuthService) issueTokens(admin *models.Admin) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(admin.ID.String(), admin.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(admin.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		Admin: dto.AdminResponse{
			ID:    admin.ID.String(),
			Email: admin.Email,
		},
	}, nil
}
