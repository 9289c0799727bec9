package repository

import (
	"context"
	"fmt"
	"time"

	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"

	"gorm.io/gorm"
)

// CustodyUpdate is the new custody state of one asset within a transfer
type CustodyUpdate struct {
	AssetID          string
	ExpectedRevision int64
	Custodian        models.CustodianRef
	Status           models.AssetStatus
	Region           *models.Region
}

// MovementRepository handles database operations for movements
type MovementRepository struct {
	db *gorm.DB
}

// NewMovementRepository creates a new movement repository
func NewMovementRepository(db *gorm.DB) *MovementRepository {
	return &MovementRepository{db: db}
}

// Transfer records movements and applies custody updates in one transaction.
// Movements are inserted first as a single batch; an asset whose revision moved on
// aborts the whole transfer with ErrStaleRevision and nothing is kept.
func (r *MovementRepository) Transfer(ctx context.Context, movements []models.Movement, updates []CustodyUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(movements) > 0 {
			if err := tx.Create(&movements).Error; err != nil {
				return fmt.Errorf("insert movements: %w", err)
			}
		}

		now := time.Now()
		for _, u := range updates {
			fields := map[string]interface{}{
				"current_owner_type": u.Custodian.Kind,
				"current_owner_id":   u.Custodian.ID,
				"current_owner_name": u.Custodian.Name,
				"status":             u.Status,
				"revision":           gorm.Expr("revision + 1"),
				"updated_at":         now,
			}
			if u.Region != nil {
				fields["region"] = *u.Region
			}

			res := tx.Model(&models.Asset{}).
				Where("id = ? AND revision = ?", u.AssetID, u.ExpectedRevision).
				Updates(fields)
			if res.Error != nil {
				return fmt.Errorf("update asset %s: %w", u.AssetID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("update asset %s: %w", u.AssetID, apperrors.ErrStaleRevision)
			}
		}
		return nil
	})
}

// GetByAssetID retrieves the history of an asset, newest first
func (r *MovementRepository) GetByAssetID(ctx context.Context, assetID string) ([]models.Movement, error) {
	var movements []models.Movement
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("date DESC, created_at DESC").
		Find(&movements).Error
	return movements, err
}

// List retrieves all movements with pagination, newest first
func (r *MovementRepository) List(ctx context.Context, limit, offset int) ([]models.Movement, int64, error) {
	var movements []models.Movement
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Movement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC").
		Limit(limit).Offset(offset).
		Find(&movements).Error
	if err != nil {
		return nil, 0, err
	}

	return movements, total, nil
}
