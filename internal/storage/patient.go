package storage

import (
	"context"
	"fmt"
	"strings"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
	"labtrack-backend/internal/models"
)

const patientColumns = `id, tenant_id, patient_id, first_name, last_name, date_of_birth,
	gender, email, phone, blood_group, medical_history, allergies, is_active, notes,
	created_at, updated_at`

func validatePatientInput(input models.PatientInput) error {
	switch {
	case strings.TrimSpace(input.PatientID) == "":
		return apperr.Validationf("patient_id is required")
	case strings.TrimSpace(input.FirstName) == "":
		return apperr.Validationf("first_name is required")
	case strings.TrimSpace(input.LastName) == "":
		return apperr.Validationf("last_name is required")
	case input.DateOfBirth.IsZero():
		return apperr.Validationf("date_of_birth is required")
	case input.Gender != "male" && input.Gender != "female" && input.Gender != "other":
		return apperr.Validationf("gender must be male, female or other")
	}
	return nil
}

func (s *Storage) CreatePatient(ctx context.Context, ac access.Context, input models.PatientInput) (*models.Patient, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}
	if err := rejectTenantOverride(input.TenantID, ac); err != nil {
		return nil, err
	}
	if err := validatePatientInput(input); err != nil {
		return nil, err
	}

	var patient models.Patient
	query := `
		INSERT INTO patients (tenant_id, patient_id, first_name, last_name, date_of_birth,
			gender, email, phone, blood_group, medical_history, allergies, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + patientColumns
	err := s.db.QueryRowxContext(ctx, query,
		ac.TenantID, input.PatientID, input.FirstName, input.LastName, input.DateOfBirth,
		input.Gender, input.Email, input.Phone, input.BloodGroup,
		input.MedicalHistory, input.Allergies, input.Notes,
	).StructScan(&patient)
	if err != nil {
		return nil, writeErr(err, "patient_id")
	}
	return &patient, nil
}

func (s *Storage) GetPatient(ctx context.Context, ac access.Context, id string) (*models.Patient, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}

	var patient models.Patient
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1 AND tenant_id = $2`
	if err := s.db.GetContext(ctx, &patient, query, id, ac.TenantID); err != nil {
		return nil, rowErr(err)
	}
	return &patient, nil
}

func (s *Storage) ListPatients(ctx context.Context, ac access.Context, filter models.PatientFilter) ([]models.Patient, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}

	query := `SELECT ` + patientColumns + ` FROM patients WHERE tenant_id = $1`
	args := []any{ac.TenantID}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		query += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR patient_id ILIKE $%d)", n, n, n)
	}
	query += " ORDER BY created_at DESC"

	patients := make([]models.Patient, 0)
	if err := s.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, apperr.Internal(err)
	}
	return patients, nil
}

func (s *Storage) UpdatePatient(ctx context.Context, ac access.Context, id string, input models.PatientInput) (*models.Patient, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}
	if err := rejectTenantOverride(input.TenantID, ac); err != nil {
		return nil, err
	}
	if err := validatePatientInput(input); err != nil {
		return nil, err
	}

	var patient models.Patient
	query := `
		UPDATE patients
		SET patient_id = $1, first_name = $2, last_name = $3, date_of_birth = $4, gender = $5,
			email = $6, phone = $7, blood_group = $8, medical_history = $9, allergies = $10,
			notes = $11, updated_at = NOW()
		WHERE id = $12 AND tenant_id = $13
		RETURNING ` + patientColumns
	err := s.db.QueryRowxContext(ctx, query,
		input.PatientID, input.FirstName, input.LastName, input.DateOfBirth, input.Gender,
		input.Email, input.Phone, input.BloodGroup, input.MedicalHistory, input.Allergies,
		input.Notes, id, ac.TenantID,
	).StructScan(&patient)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Duplicatef("patient_id already exists")
		}
		return nil, rowErr(err)
	}
	return &patient, nil
}

func (s *Storage) DeletePatient(ctx context.Context, ac access.Context, id string) error {
	if err := requireScope(ac); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1 AND tenant_id = $2`, id, ac.TenantID)
	if err != nil {
		return apperr.Internal(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Internal(err)
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
