package models

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "pending"
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
)

// Lead is one contact form submission.
type Lead struct {
	ID               uuid.UUID      `db:"id"`
	FullName         string         `db:"full_name"`
	Organization     string         `db:"organization"`
	Email            string         `db:"email"`
	OperationalScale string         `db:"operational_scale"`
	GrowthBarrier    string         `db:"growth_barrier"`
	Mandate          string         `db:"mandate"`
	Source           string         `db:"source"`
	Page             string         `db:"page"`
	DeliveryStatus   DeliveryStatus `db:"delivery_status"`
	DeliveryError    string         `db:"delivery_error"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}
