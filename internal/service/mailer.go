package service

import (
	"context"
	"fmt"
	"strings"

	"veye-site/internal/models"
	"veye-site/pkg/config"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const smtpsPort = 465

// SMTPMailer sends lead notifications over authenticated SMTP. Port 587
// uses mandatory STARTTLS; port 465 uses implicit TLS.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewSMTPMailer fails when a required SMTP variable is unset.
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) (*SMTPMailer, error) {
	if missing := cfg.Missing(); missing != "" {
		return nil, fmt.Errorf("%w: missing %s", ErrMailerNotConfigured, missing)
	}
	return &SMTPMailer{cfg: cfg, logger: logger}, nil
}

func (m *SMTPMailer) SendLead(ctx context.Context, lead *models.Lead) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	if err := msg.ReplyTo(lead.Email); err != nil {
		return fmt.Errorf("invalid reply-to address: %w", err)
	}
	msg.Subject(LeadSubject(lead))
	msg.SetBodyString(mail.TypeTextPlain, LeadBody(lead))

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.User),
		mail.WithPassword(m.cfg.Password),
	}
	if m.cfg.Port == smtpsPort {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send lead email: %w", err)
	}

	m.logger.Debug("Lead email sent", zap.String("lead_id", lead.ID.String()), zap.String("host", m.cfg.Host))
	return nil
}

func LeadSubject(lead *models.Lead) string {
	return fmt.Sprintf("Start a Conversation - %s (%s)", lead.FullName, lead.Organization)
}

// LeadBody renders the plain-text notification. Missing source and page
// read as "unknown".
func LeadBody(lead *models.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Full Name: %s\n", lead.FullName)
	fmt.Fprintf(&b, "Organization: %s\n", lead.Organization)
	fmt.Fprintf(&b, "Email: %s\n", lead.Email)
	fmt.Fprintf(&b, "Operational Scale: %s\n", lead.OperationalScale)
	fmt.Fprintf(&b, "Primary Barrier: %s\n", lead.GrowthBarrier)
	fmt.Fprintf(&b, "\nStrategic Mandate:\n%s\n", lead.Mandate)
	fmt.Fprintf(&b, "\nSource: %s\n", orUnknown(lead.Source))
	fmt.Fprintf(&b, "Page: %s", orUnknown(lead.Page))
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
