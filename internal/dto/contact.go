package dto

import "time"

type ContactRequest struct {
	FullName         string `json:"fullName"`
	Organization     string `json:"organization"`
	Email            string `json:"email"`
	OperationalScale string `json:"operationalScale"`
	GrowthBarrier    string `json:"growthBarrier"`
	Mandate          string `json:"mandate"`
	Source           string `json:"source,omitempty"`
	Page             string `json:"page,omitempty"`
}

type ContactResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

type LeadResponse struct {
	ID               string    `json:"id"`
	FullName         string    `json:"full_name"`
	Organization     string    `json:"organization"`
	Email            string    `json:"email"`
	OperationalScale string    `json:"operational_scale"`
	GrowthBarrier    string    `json:"growth_barrier"`
	Mandate          string    `json:"mandate"`
	Source           string    `json:"source"`
	Page             string    `json:"page"`
	DeliveryStatus   string    `json:"delivery_status"`
	CreatedAt        time.Time `json:"created_at"`
}

type LeadListResponse struct {
	Leads  []LeadResponse `json:"leads"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
