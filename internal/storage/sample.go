package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
	"labtrack-backend/internal/models"
)

const sampleColumns = `id, tenant_id, sample_id, test_id, sample_type, status, volume_ml,
	collected_by, collected_at, notes, created_at, updated_at`

var sampleStatuses = map[string]bool{
	models.SampleStatusCollected:  true,
	models.SampleStatusReceived:   true,
	models.SampleStatusProcessing: true,
	models.SampleStatusConsumed:   true,
	models.SampleStatusDiscarded:  true,
}

func (s *Storage) CreateSample(ctx context.Context, ac access.Context, input models.CreateSampleInput) (*models.Sample, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}
	if err := rejectTenantOverride(input.TenantID, ac); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.SampleType) == "" {
		return nil, apperr.Validationf("sample_type is required")
	}
	if err := s.entityInTenant(ctx, ac, "tests", input.TestID, "test_id"); err != nil {
		return nil, err
	}

	sampleID := "S-" + strings.ToUpper(uuid.New().String()[:8])

	var sample models.Sample
	query := `
		INSERT INTO samples (tenant_id, sample_id, test_id, sample_type, status, volume_ml, collected_by, collected_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), $8)
		RETURNING ` + sampleColumns
	err := s.db.QueryRowxContext(ctx, query,
		ac.TenantID, sampleID, input.TestID, input.SampleType,
		models.SampleStatusCollected, input.VolumeML, ac.UserID, input.Notes,
	).StructScan(&sample)
	if err != nil {
		return nil, writeErr(err, "sample id")
	}
	return &sample, nil
}

func (s *Storage) GetSample(ctx context.Context, ac access.Context, id string) (*models.Sample, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}

	var sample models.Sample
	query := `SELECT ` + sampleColumns + ` FROM samples WHERE id = $1 AND tenant_id = $2`
	if err := s.db.GetContext(ctx, &sample, query, id, ac.TenantID); err != nil {
		return nil, rowErr(err)
	}
	return &sample, nil
}

func (s *Storage) ListSamples(ctx context.Context, ac access.Context, filter models.SampleFilter) ([]models.Sample, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}
	if filter.Status != "" && !sampleStatuses[filter.Status] {
		return nil, apperr.Validationf("invalid status %q", filter.Status)
	}

	query := `SELECT ` + sampleColumns + ` FROM samples WHERE tenant_id = $1`
	args := []any{ac.TenantID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.TestID != "" {
		args = append(args, filter.TestID)
		query += fmt.Sprintf(" AND test_id = $%d", len(args))
	}
	query += " ORDER BY collected_at DESC"

	samples := make([]models.Sample, 0)
	if err := s.db.SelectContext(ctx, &samples, query, args...); err != nil {
		return nil, apperr.Internal(err)
	}
	return samples, nil
}

func (s *Storage) UpdateSample(ctx context.Context, ac access.Context, id string, input models.UpdateSampleInput) (*models.Sample, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}
	if err := rejectTenantOverride(input.TenantID, ac); err != nil {
		return nil, err
	}
	if !sampleStatuses[input.Status] {
		return nil, apperr.Validationf("invalid status %q", input.Status)
	}

	var sample models.Sample
	query := `
		UPDATE samples
		SET status = $1, volume_ml = $2, notes = $3, updated_at = NOW()
		WHERE id = $4 AND tenant_id = $5
		RETURNING ` + sampleColumns
	err := s.db.QueryRowxContext(ctx, query,
		input.Status, input.VolumeML, input.Notes, id, ac.TenantID,
	).StructScan(&sample)
	if err != nil {
		return nil, rowErr(err)
	}
	return &sample, nil
}

func (s *Storage) DeleteSample(ctx context.Context, ac access.Context, id string) error {
	if err := requireScope(ac); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM samples WHERE id = $1 AND tenant_id = $2`, id, ac.TenantID)
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
