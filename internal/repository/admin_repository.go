package repository

import (
	"context"

	"veye-site/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var adminColumns = []string{"id", "email", "password_hash", "created_at", "updated_at"}

type AdminRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAdminRepository(db *pgxpool.Pool, logger *zap.Logger) *AdminRepository {
	return &AdminRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	query := squirrel.Insert("admins").
		Columns(adminColumns...).
		Values(admin.ID, admin.Email, admin.Password, admin.CreatedAt, admin.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *AdminRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Admin, error) {
	query := squirrel.Select(adminColumns...).
		From("admins").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var admin models.Admin
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&admin.ID, &admin.Email, &admin.Password, &admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &admin, nil
}
