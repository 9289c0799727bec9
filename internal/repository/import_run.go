package repository

import (
	"context"
	"fmt"
	"time"

	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImportRunRepository handles database operations for import runs
type ImportRunRepository struct {
	db *gorm.DB
}

// NewImportRunRepository creates a new import run repository
func NewImportRunRepository(db *gorm.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

// Create persists an analyzed import run
func (r *ImportRunRepository) Create(ctx context.Context, run *models.ImportRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// GetByID retrieves an import run by ID
func (r *ImportRunRepository) GetByID(ctx context.Context, id string) (*models.ImportRun, error) {
	var run models.ImportRun
	err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// List retrieves import runs with pagination, newest first. Row payloads are omitted.
func (r *ImportRunRepository) List(ctx context.Context, limit, offset int) ([]models.ImportRun, int64, error) {
	var runs []models.ImportRun
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.ImportRun{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Omit("rows", "rejected").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&runs).Error
	if err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}

// Commit upserts the run's assets and marks it committed in one transaction.
// The run row is locked so two concurrent commits cannot both apply.
func (r *ImportRunRepository) Commit(ctx context.Context, runID string, assets []*models.Asset, batchSize int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var run models.ImportRun
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&run, "id = ?", runID).Error; err != nil {
			return err
		}
		if run.Status != models.ImportStatusPending {
			return apperrors.ErrImportNotPending
		}

		if err := upsertAssets(tx, assets, batchSize); err != nil {
			return fmt.Errorf("upsert assets: %w", err)
		}

		now := time.Now()
		return tx.Model(&models.ImportRun{}).
			Where("id = ?", runID).
			Updates(map[string]interface{}{
				"status":       models.ImportStatusCommitted,
				"committed_at": now,
				"updated_at":   now,
			}).Error
	})
}

// MarkFailed records why a run could not be committed
func (r *ImportRunRepository) MarkFailed(ctx context.Context, runID string, reason string) error {
	return r.db.WithContext(ctx).
		Model(&models.ImportRun{}).
		Where("id = ? AND status = ?", runID, models.ImportStatusPending).
		Updates(map[string]interface{}{
			"status":     models.ImportStatusFailed,
			"error":      reason,
			"updated_at": time.Now(),
		}).Error
}
