package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetFilter narrows asset listings. Empty fields are ignored.
type AssetFilter struct {
	Search string
	Type   string
	Status string
	Region string
}

// GroupCount is one bucket of a grouped count
type GroupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// countableColumns guards CountBy against arbitrary SQL
var countableColumns = map[string]bool{
	"status":             true,
	"type":               true,
	"region":             true,
	"current_owner_type": true,
}

// importUpdateColumns are overwritten when an import row matches an existing asset.
// Custody and status only change through movements.
var importUpdateColumns = []string{
	"type",
	"brand",
	"asset_tag",
	"physical_condition",
	"value",
	"details",
	"color",
	"updated_at",
}

// AssetRepository handles database operations for assets
type AssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create creates a new asset
func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// GetByID retrieves an asset by ID
func (r *AssetRepository) GetByID(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).First(&asset, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetByIDs retrieves every asset whose ID is in ids. Missing IDs are simply absent.
func (r *AssetRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Asset, error) {
	var assets []models.Asset
	if len(ids) == 0 {
		return assets, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&assets).Error
	return assets, err
}

// GetByPrimaryID retrieves an asset by serial number or IMEI
func (r *AssetRepository) GetByPrimaryID(ctx context.Context, primaryID string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).First(&asset, "primary_id = ?", primaryID).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// List retrieves assets matching filter with pagination
func (r *AssetRepository) List(ctx context.Context, filter AssetFilter, limit, offset int) ([]models.Asset, int64, error) {
	var assets []models.Asset
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Asset{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + s + "%"
		query = query.Where(
			"brand ILIKE ? OR asset_tag ILIKE ? OR type ILIKE ? OR primary_id ILIKE ? OR physical_condition ILIKE ? OR current_owner_name ILIKE ?",
			pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&assets).Error
	if err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

// GetByCustodians retrieves assets currently held by any of the given custodians of one kind
func (r *AssetRepository) GetByCustodians(ctx context.Context, kind models.CustodianKind, ids []string) ([]models.Asset, error) {
	var assets []models.Asset
	if len(ids) == 0 {
		return assets, nil
	}
	err := r.db.WithContext(ctx).
		Where("current_owner_type = ? AND current_owner_id IN ?", kind, ids).
		Order("type, brand").
		Find(&assets).Error
	return assets, err
}

// FindExistingPrimaryIDs returns the subset of primaryIDs already present in the store
func (r *AssetRepository) FindExistingPrimaryIDs(ctx context.Context, primaryIDs []string) ([]string, error) {
	existing := make([]string, 0)
	if len(primaryIDs) == 0 {
		return existing, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("primary_id IN ?", primaryIDs).
		Pluck("primary_id", &existing).Error
	return existing, err
}

// CountBy counts assets grouped by one of status, type, region or current_owner_type
func (r *AssetRepository) CountBy(ctx context.Context, column string) ([]GroupCount, error) {
	if !countableColumns[column] {
		return nil, fmt.Errorf("cannot group assets by %q", column)
	}
	var counts []GroupCount
	err := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}

// Count returns the total number of assets
func (r *AssetRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Asset{}).Count(&total).Error
	return total, err
}

// Update writes the descriptive fields of an asset if its revision still equals
// expectedRevision, then bumps the revision. Custody fields are never written here.
func (r *AssetRepository) Update(ctx context.Context, asset *models.Asset, expectedRevision int64) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("id = ? AND revision = ?", asset.ID, expectedRevision).
		Updates(map[string]interface{}{
			"type":               asset.Type,
			"brand":              asset.Brand,
			"asset_tag":          asset.AssetTag,
			"primary_id":         asset.PrimaryID,
			"status":             asset.Status,
			"physical_condition": asset.PhysicalCondition,
			"color":              asset.Color,
			"details":            asset.Details,
			"value":              asset.Value,
			"region":             asset.Region,
			"revision":           gorm.Expr("revision + 1"),
			"updated_at":         now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, asset.ID); err != nil {
			return err
		}
		return apperrors.ErrStaleRevision
	}
	asset.Revision = expectedRevision + 1
	asset.UpdatedAt = now
	return nil
}

// Delete deletes an asset. Its movements stay behind.
func (r *AssetRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Asset{}, "id = ?", id).Error
}

// upsertAssets inserts assets, updating descriptive columns of rows whose primary_id already exists
func upsertAssets(tx *gorm.DB, assets []*models.Asset, batchSize int) error {
	if len(assets) == 0 {
		return nil
	}
	updates := clause.AssignmentColumns(importUpdateColumns)
	updates = append(updates, clause.Assignment{
		Column: clause.Column{Name: "revision"},
		Value:  gorm.Expr(`"assets"."revision" + 1`),
	})
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "primary_id"}},
		DoUpdates: updates,
	}).CreateInBatches(assets, batchSize).Error
}
