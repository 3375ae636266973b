package storage

import (
	"context"
	"fmt"
	"strings"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
	"labtrack-backend/internal/models"
)

const testTypeColumns = `id, tenant_id, code, name, description, category, normal_range,
	unit, price, duration_hours, requires_sample, sample_type, is_active, created_at, updated_at`

func validateTestTypeInput(input models.TestTypeInput) error {
	switch {
	case strings.TrimSpace(input.Code) == "":
		return apperr.Validationf("code is required")
	case strings.TrimSpace(input.Name) == "":
		return apperr.Validationf("name is required")
	case strings.TrimSpace(input.Category) == "":
		return apperr.Validationf("category is required")
	case input.Price < 0:
		return apperr.Validationf("price must not be negative")
	case input.DurationHours < 1:
		return apperr.Validationf("duration_hours must be at least 1")
	}
	return nil
}

func (s *Storage) CreateTestType(ctx context.Context, ac access.Context, input models.TestTypeInput) (*models.TestType, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}
	if err := rejectTenantOverride(input.TenantID, ac); err != nil {
		return nil, err
	}
	if err := validateTestTypeInput(input); err != nil {
		return nil, err
	}

	var tt models.TestType
	query := `
		INSERT INTO test_types (tenant_id, code, name, description, category, normal_range,
			unit, price, duration_hours, requires_sample, sample_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + testTypeColumns
	err := s.db.QueryRowxContext(ctx, query,
		ac.TenantID, input.Code, input.Name, input.Description, input.Category,
		input.NormalRange, input.Unit, input.Price, input.DurationHours,
		input.RequiresSample, input.SampleType,
	).StructScan(&tt)
	if err != nil {
		return nil, writeErr(err, "test type code")
	}
	return &tt, nil
}

func (s *Storage) GetTestType(ctx context.Context, ac access.Context, id string) (*models.TestType, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}

	var tt models.TestType
	query := `SELECT ` + testTypeColumns + ` FROM test_types WHERE id = $1 AND tenant_id = $2`
	if err := s.db.GetContext(ctx, &tt, query, id, ac.TenantID); err != nil {
		return nil, rowErr(err)
	}
	return &tt, nil
}

func (s *Storage) ListTestTypes(ctx context.Context, ac access.Context, filter models.TestTypeFilter) ([]models.TestType, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}

	query := `SELECT ` + testTypeColumns + ` FROM test_types WHERE tenant_id = $1`
	args := []any{ac.TenantID}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		query += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	query += " ORDER BY category, name"

	types := make([]models.TestType, 0)
	if err := s.db.SelectContext(ctx, &types, query, args...); err != nil {
		return nil, apperr.Internal(err)
	}
	return types, nil
}

func (s *Storage) UpdateTestType(ctx context.Context, ac access.Context, id string, input models.TestTypeInput) (*models.TestType, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}
	if err := rejectTenantOverride(input.TenantID, ac); err != nil {
		return nil, err
	}
	if err := validateTestTypeInput(input); err != nil {
		return nil, err
	}

	var tt models.TestType
	query := `
		UPDATE test_types
		SET code = $1, name = $2, description = $3, category = $4, normal_range = $5,
			unit = $6, price = $7, duration_hours = $8, requires_sample = $9,
			sample_type = $10, updated_at = NOW()
		WHERE id = $11 AND tenant_id = $12
		RETURNING ` + testTypeColumns
	err := s.db.QueryRowxContext(ctx, query,
		input.Code, input.Name, input.Description, input.Category, input.NormalRange,
		input.Unit, input.Price, input.DurationHours, input.RequiresSample,
		input.SampleType, id, ac.TenantID,
	).StructScan(&tt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Duplicatef("test type code already exists")
		}
		return nil, rowErr(err)
	}
	return &tt, nil
}

func (s *Storage) DeleteTestType(ctx context.Context, ac access.Context, id string) error {
	if err := requireScope(ac); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM test_types WHERE id = $1 AND tenant_id = $2`, id, ac.TenantID)
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
