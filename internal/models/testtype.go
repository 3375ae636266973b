package models

import "time"

// TestType defines a kind of test a tenant performs. Code is unique
// within a tenant.
type TestType struct {
	ID             string    `db:"id" json:"id"`
	TenantID       string    `db:"tenant_id" json:"tenant_id"`
	Code           string    `db:"code" json:"code"`
	Name           string    `db:"name" json:"name"`
	Description    *string   `db:"description" json:"description,omitempty"`
	Category       string    `db:"category" json:"category"`
	NormalRange    *string   `db:"normal_range" json:"normal_range,omitempty"`
	Unit           *string   `db:"unit" json:"unit,omitempty"`
	Price          float64   `db:"price" json:"price"`
	DurationHours  int       `db:"duration_hours" json:"duration_hours"`
	RequiresSample bool      `db:"requires_sample" json:"requires_sample"`
	SampleType     *string   `db:"sample_type" json:"sample_type,omitempty"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// TestTypeFilter narrows test type lists.
type TestTypeFilter struct {
	Category string
	IsActive *bool
}

type TestTypeInput struct {
	TenantID       *string `json:"tenant_id"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	Category       string  `json:"category"`
	NormalRange    *string `json:"normal_range"`
	Unit           *string `json:"unit"`
	Price          float64 `json:"price"`
	DurationHours  int     `json:"duration_hours"`
	RequiresSample bool    `json:"requires_sample"`
	SampleType     *string `json:"sample_type"`
}
