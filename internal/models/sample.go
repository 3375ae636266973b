package models

import "time"

// Sample lifecycle states.
const (
	SampleStatusCollected  = "collected"
	SampleStatusReceived   = "received"
	SampleStatusProcessing = "processing"
	SampleStatusConsumed   = "consumed"
	SampleStatusDiscarded  = "discarded"
)

// Sample is a physical specimen collected for a test.
type Sample struct {
	ID          string    `db:"id" json:"id"`
	TenantID    string    `db:"tenant_id" json:"tenant_id"`
	SampleID    string    `db:"sample_id" json:"sample_id"`
	TestID      string    `db:"test_id" json:"test_id"`
	SampleType  string    `db:"sample_type" json:"sample_type"`
	Status      string    `db:"status" json:"status"`
	VolumeML    *float64  `db:"volume_ml" json:"volume_ml,omitempty"`
	CollectedBy string    `db:"collected_by" json:"collected_by"`
	CollectedAt time.Time `db:"collected_at" json:"collected_at"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SampleFilter narrows sample lists.
type SampleFilter struct {
	Status string
	TestID string
}

type CreateSampleInput struct {
	TenantID   *string  `json:"tenant_id"`
	TestID     string   `json:"test_id"`
	SampleType string   `json:"sample_type"`
	VolumeML   *float64 `json:"volume_ml"`
	Notes      *string  `json:"notes"`
}

type UpdateSampleInput struct {
	TenantID *string  `json:"tenant_id"`
	Status   string   `json:"status"`
	VolumeML *float64 `json:"volume_ml"`
	Notes    *string  `json:"notes"`
}
