package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
	"labtrack-backend/internal/models"
)

const testColumns = `id, tenant_id, test_number, patient_id, test_type_id, status, priority,
	result, is_abnormal, ordered_by, ordered_at, completed_at, created_at, updated_at`

var testStatuses = map[string]bool{
	models.TestStatusPending:         true,
	models.TestStatusSampleCollected: true,
	models.TestStatusInProgress:      true,
	models.TestStatusCompleted:       true,
}

func normalizePriority(priority string) (string, error) {
	if priority == "" {
		return "routine", nil
	}
	if priority != "routine" && priority != "urgent" && priority != "stat" {
		return "", apperr.Validationf("priority must be routine, urgent or stat")
	}
	return priority, nil
}

// CreateTest orders a test for a patient. The patient and test type
// references are resolved under the caller's tenant; ids from another
// tenant fail validation exactly like unknown ids.
func (s *Storage) CreateTest(ctx context.Context, ac access.Context, input models.CreateTestInput) (*models.Test, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}
	if err := rejectTenantOverride(input.TenantID, ac); err != nil {
		return nil, err
	}
	priority, err := normalizePriority(input.Priority)
	if err != nil {
		return nil, err
	}
	if err := s.entityInTenant(ctx, ac, "patients", input.PatientID, "patient_id"); err != nil {
		return nil, err
	}
	if err := s.entityInTenant(ctx, ac, "test_types", input.TestTypeID, "test_type_id"); err != nil {
		return nil, err
	}

	testNumber := "T-" + strings.ToUpper(uuid.New().String()[:8])

	var test models.Test
	query := `
		INSERT INTO tests (tenant_id, test_number, patient_id, test_type_id, status, priority, ordered_by, ordered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING ` + testColumns
	err = s.db.QueryRowxContext(ctx, query,
		ac.TenantID, testNumber, input.PatientID, input.TestTypeID,
		models.TestStatusPending, priority, ac.UserID,
	).StructScan(&test)
	if err != nil {
		return nil, writeErr(err, "test number")
	}
	return &test, nil
}

func (s *Storage) GetTest(ctx context.Context, ac access.Context, id string) (*models.Test, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}

	var test models.Test
	query := `SELECT ` + testColumns + ` FROM tests WHERE id = $1 AND tenant_id = $2`
	if err := s.db.GetContext(ctx, &test, query, id, ac.TenantID); err != nil {
		return nil, rowErr(err)
	}
	return &test, nil
}

func (s *Storage) ListTests(ctx context.Context, ac access.Context, filter models.TestFilter) ([]models.Test, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}
	if filter.Status != "" && !testStatuses[filter.Status] {
		return nil, apperr.Validationf("invalid status %q", filter.Status)
	}
	if filter.Priority != "" {
		if _, err := normalizePriority(filter.Priority); err != nil {
			return nil, err
		}
	}

	query := `SELECT ` + testColumns + ` FROM tests WHERE tenant_id = $1`
	args := []any{ac.TenantID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	if filter.PatientID != "" {
		args = append(args, filter.PatientID)
		query += fmt.Sprintf(" AND patient_id = $%d", len(args))
	}
	query += " ORDER BY ordered_at DESC"

	tests := make([]models.Test, 0)
	if err := s.db.SelectContext(ctx, &tests, query, args...); err != nil {
		return nil, apperr.Internal(err)
	}
	return tests, nil
}

func (s *Storage) UpdateTest(ctx context.Context, ac access.Context, id string, input models.UpdateTestInput) (*models.Test, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}
	if err := rejectTenantOverride(input.TenantID, ac); err != nil {
		return nil, err
	}
	if !testStatuses[input.Status] {
		return nil, apperr.Validationf("invalid status %q", input.Status)
	}
	priority, err := normalizePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if input.Status == models.TestStatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	var test models.Test
	query := `
		UPDATE tests
		SET status = $1, priority = $2, result = $3, is_abnormal = $4,
			completed_at = COALESCE(completed_at, $5), updated_at = NOW()
		WHERE id = $6 AND tenant_id = $7
		RETURNING ` + testColumns
	err = s.db.QueryRowxContext(ctx, query,
		input.Status, priority, input.Result, input.IsAbnormal, completedAt,
		id, ac.TenantID,
	).StructScan(&test)
	if err != nil {
		return nil, rowErr(err)
	}
	return &test, nil
}

func (s *Storage) DeleteTest(ctx context.Context, ac access.Context, id string) error {
	if err := requireScope(ac); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM tests WHERE id = $1 AND tenant_id = $2`, id, ac.TenantID)
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

// entityInTenant verifies that a referenced row exists under the
// caller's tenant. A cross-tenant id is reported the same way as a
// nonexistent one.
func (s *Storage) entityInTenant(ctx context.Context, ac access.Context, table, id, field string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Validationf("%s is required", field)
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM ` + table + ` WHERE id = $1 AND tenant_id = $2)`
	if err := s.db.GetContext(ctx, &exists, query, id, ac.TenantID); err != nil {
		return apperr.Internal(err)
	}
	if !exists {
		return apperr.Validationf("unknown %s", field)
	}
	return nil
}
