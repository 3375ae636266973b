package models

import "time"

// Patient is tenant-scoped: tenant_id is set from the acting context
// at creation and immutable afterwards. PatientID is the lab's own
// identifier, unique within a tenant.
type Patient struct {
	ID             string    `db:"id" json:"id"`
	TenantID       string    `db:"tenant_id" json:"tenant_id"`
	PatientID      string    `db:"patient_id" json:"patient_id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	DateOfBirth    time.Time `db:"date_of_birth" json:"date_of_birth"`
	Gender         string    `db:"gender" json:"gender"`
	Email          *string   `db:"email" json:"email,omitempty"`
	Phone          string    `db:"phone" json:"phone"`
	BloodGroup     *string   `db:"blood_group" json:"blood_group,omitempty"`
	MedicalHistory *string   `db:"medical_history" json:"medical_history,omitempty"`
	Allergies      *string   `db:"allergies" json:"allergies,omitempty"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	Notes          *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// PatientFilter narrows patient lists. The zero value matches every
// patient in the tenant.
type PatientFilter struct {
	IsActive *bool
	Search   string
}

// PatientInput is used for both create and update. The TenantID field
// exists only so the scope layer can detect and reject callers trying
// to place a record under another tenant; it is never stored as given.
type PatientInput struct {
	TenantID       *string   `json:"tenant_id"`
	PatientID      string    `json:"patient_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	Gender         string    `json:"gender"`
	Email          *string   `json:"email"`
	Phone          string    `json:"phone"`
	BloodGroup     *string   `json:"blood_group"`
	MedicalHistory *string   `json:"medical_history"`
	Allergies      *string   `json:"allergies"`
	Notes          *string   `json:"notes"`
}
