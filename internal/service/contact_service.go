package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"veye-site/internal/dto"
	"veye-site/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidLead         = errors.New("invalid lead")
	ErrMailerNotConfigured = errors.New("mailer is not configured")
	ErrMailSend            = errors.New("email send failed")
	ErrLeadStoreDisabled   = errors.New("lead storage is disabled")
)

const (
	defaultLeadsLimit = 50
	maxLeadsLimit     = 200
)

// ValidationError lists the offending lead fields by their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid lead fields: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidLead
}

// Mailer delivers a lead to the sales inbox.
type Mailer interface {
	SendLead(ctx context.Context, lead *models.Lead) error
}

// LeadStore persists leads. Implemented by repository.LeadRepository.
type LeadStore interface {
	Create(ctx context.Context, lead *models.Lead) error
	UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status models.DeliveryStatus, deliveryErr string) error
	List(ctx context.Context, limit, offset int) ([]*models.Lead, error)
}

type ContactService struct {
	mailer Mailer
	store  LeadStore
	logger *zap.Logger
}

// NewContactService accepts a nil mailer (submissions then fail with
// ErrMailerNotConfigured) and a nil store (leads are only emailed).
func NewContactService(mailer Mailer, store LeadStore, logger *zap.Logger) *ContactService {
	return &ContactService{
		mailer: mailer,
		store:  store,
		logger: logger,
	}
}

// ValidateLead checks the required fields and the email address.
func ValidateLead(req *dto.ContactRequest) error {
	fields := make(map[string]string)

	required := []struct {
		name  string
		value string
	}{
		{"fullName", req.FullName},
		{"organization", req.Organization},
		{"email", req.Email},
		{"operationalScale", req.OperationalScale},
		{"growthBarrier", req.GrowthBarrier},
		{"mandate", req.Mandate},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			fields[f.name] = "required"
		}
	}

	if _, missing := fields["email"]; !missing {
		if addr, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil || addr.Name != "" {
			fields["email"] = "invalid"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *ContactService) Submit(ctx context.Context, req *dto.ContactRequest) (*dto.ContactResponse, error) {
	if err := ValidateLead(req); err != nil {
		return nil, err
	}
	if s.mailer == nil {
		return nil, ErrMailerNotConfigured
	}

	now := time.Now()
	lead := &models.Lead{
		ID:               uuid.New(),
		FullName:         clean(req.FullName),
		Organization:     clean(req.Organization),
		Email:            clean(req.Email),
		OperationalScale: clean(req.OperationalScale),
		GrowthBarrier:    clean(req.GrowthBarrier),
		Mandate:          clean(req.Mandate),
		Source:           clean(req.Source),
		Page:             clean(req.Page),
		DeliveryStatus:   models.DeliveryPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	stored := false
	if s.store != nil {
		if err := s.store.Create(ctx, lead); err != nil {
			s.logger.Error("Failed to store lead", zap.String("lead_id", lead.ID.String()), zap.Error(err))
		} else {
			stored = true
		}
	}

	if err := s.mailer.SendLead(ctx, lead); err != nil {
		s.logger.Error("SMTP send error", zap.String("lead_id", lead.ID.String()), zap.Error(err))
		if stored {
			s.updateStatus(ctx, lead.ID, models.DeliveryFailed, err.Error())
		}
		return nil, fmt.Errorf("%w: %v", ErrMailSend, err)
	}

	if stored {
		s.updateStatus(ctx, lead.ID, models.DeliverySent, "")
	}

	s.logger.Info("Lead submitted",
		zap.String("lead_id", lead.ID.String()),
		zap.String("organization", lead.Organization),
		zap.Bool("stored", stored),
	)

	return &dto.ContactResponse{OK: true, ID: lead.ID.String()}, nil
}

// ListLeads returns stored leads newest first.
func (s *ContactService) ListLeads(ctx context.Context, limit, offset int) (*dto.LeadListResponse, error) {
	if s.store == nil {
		return nil, ErrLeadStoreDisabled
	}
	if limit <= 0 {
		limit = defaultLeadsLimit
	}
	if limit > maxLeadsLimit {
		limit = maxLeadsLimit
	}
	if offset < 0 {
		offset = 0
	}

	leads, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	resp := &dto.LeadListResponse{
		Leads:  make([]dto.LeadResponse, 0, len(leads)),
		Limit:  limit,
		Offset: offset,
	}
	for _, lead := range leads {
		resp.Leads = append(resp.Leads, dto.LeadResponse{
			ID:               lead.ID.String(),
			FullName:         lead.FullName,
			Organization:     lead.Organization,
			Email:            lead.Email,
			OperationalScale: lead.OperationalScale,
			GrowthBarrier:    lead.GrowthBarrier,
			Mandate:          lead.Mandate,
			Source:           lead.Source,
			Page:             lead.Page,
			DeliveryStatus:   string(lead.DeliveryStatus),
			CreatedAt:        lead.CreatedAt,
		})
	}
	return resp, nil
}

func (s *ContactService) updateStatus(ctx context.Context, id uuid.UUID, status models.DeliveryStatus, deliveryErr string) {
	if err := s.store.UpdateDeliveryStatus(ctx, id, status, deliveryErr); err != nil {
		s.logger.Warn("Failed to update lead delivery status",
			zap.String("lead_id", id.String()),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}

func clean(s string) string {
	return strings.TrimSpace(sanitizeUTF8(s))
}
