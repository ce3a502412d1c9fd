package repository

import (
	"context"
	"time"

	"veye-site/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var leadColumns = []string{
	"id", "full_name", "organization", "email", "operational_scale", "growth_barrier",
	"mandate", "source", "page", "delivery_status", "delivery_error", "created_at", "updated_at",
}

type LeadRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewLeadRepository(db *pgxpool.Pool, logger *zap.Logger) *LeadRepository {
	return &LeadRepository{
		db:     db,
		logger: logger,
	}
}

func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	query := squirrel.Insert("leads").
		Columns(leadColumns...).
		Values(
			lead.ID, lead.FullName, lead.Organization, lead.Email, lead.OperationalScale,
			lead.GrowthBarrier, lead.Mandate, lead.Source, lead.Page,
			lead.DeliveryStatus, lead.DeliveryError, lead.CreatedAt, lead.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *LeadRepository) UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status models.DeliveryStatus, deliveryErr string) error {
	query := squirrel.Update("leads").
		Set("delivery_status", status).
		Set("delivery_error", deliveryErr).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// List returns leads newest first.
func (r *LeadRepository) List(ctx context.Context, limit, offset int) ([]*models.Lead, error) {
	query := squirrel.Select(leadColumns...).
		From("leads").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		var lead models.Lead
		if err := rows.Scan(
			&lead.ID, &lead.FullName, &lead.Organization, &lead.Email, &lead.OperationalScale,
			&lead.GrowthBarrier, &lead.Mandate, &lead.Source, &lead.Page,
			&lead.DeliveryStatus, &lead.DeliveryError, &lead.CreatedAt, &lead.UpdatedAt,
		); err != nil {
			return nil, err
		}
		leads = append(leads, &lead)
	}

	return leads, rows.Err()
}
