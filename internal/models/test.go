package models

import "time"

// Test lifecycle states.
const (
	TestStatusPending         = "pending"
	TestStatusSampleCollected = "sample_collected"
	TestStatusInProgress      = "in_progress"
	TestStatusCompleted       = "completed"
)

// Test is a test ordered for a patient. Patient and test type
// references are resolved under the same tenant scope as the test
// itself, so a test can never point into another tenant.
type Test struct {
	ID          string     `db:"id" json:"id"`
	TenantID    string     `db:"tenant_id" json:"tenant_id"`
	TestNumber  string     `db:"test_number" json:"test_number"`
	PatientID   string     `db:"patient_id" json:"patient_id"`
	TestTypeID  string     `db:"test_type_id" json:"test_type_id"`
	Status      string     `db:"status" json:"status"`
	Priority    string     `db:"priority" json:"priority"`
	Result      *string    `db:"result" json:"result,omitempty"`
	IsAbnormal  bool       `db:"is_abnormal" json:"is_abnormal"`
	OrderedBy   string     `db:"ordered_by" json:"ordered_by"`
	OrderedAt   time.Time  `db:"ordered_at" json:"ordered_at"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// TestFilter narrows test lists.
type TestFilter struct {
	Status    string
	Priority  string
	PatientID string
}

type CreateTestInput struct {
	TenantID   *string `json:"tenant_id"`
	PatientID  string  `json:"patient_id"`
	TestTypeID string  `json:"test_type_id"`
	Priority   string  `json:"priority"`
}

type UpdateTestInput struct {
	TenantID   *string `json:"tenant_id"`
	Status     string  `json:"status"`
	Priority   string  `json:"priority"`
	Result     *string `json:"result"`
	IsAbnormal bool    `json:"is_abnormal"`
}
