package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"asset-management-backend/internal/config"
	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"
	"asset-management-backend/internal/logger"
	"asset-management-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AssetService handles inventory maintenance. Custody is never changed here.
type AssetService struct {
	repo      repository.AssetRepositoryInterface
	movements repository.MovementRepositoryInterface
	cfg       *config.Config
	validator *validator.Validate
	notifier  Notifier
}

// Ensure AssetService implements AssetServiceInterface
var _ AssetServiceInterface = (*AssetService)(nil)

// NewAssetService creates a new asset service
func NewAssetService(
	repo repository.AssetRepositoryInterface,
	movements repository.MovementRepositoryInterface,
	cfg *config.Config,
	validator *validator.Validate,
	notifier Notifier,
) *AssetService {
	return &AssetService{
		repo:      repo,
		movements: movements,
		cfg:       cfg,
		validator: validator,
		notifier:  notifier,
	}
}

// CreateAssetRequest represents the data needed to register an asset.
// New assets always start in stock.
type CreateAssetRequest struct {
	Type              models.AssetType      `json:"type" validate:"required,max=40" swaggertype:"string" example:"NOTEBOOK"`
	Brand             string                `json:"brand" validate:"required,max=100" example:"DELL"`
	AssetTag          *string               `json:"asset_tag" validate:"omitempty,max=100" example:"GSA-0001"`
	PrimaryID         *string               `json:"primary_id" validate:"omitempty,max=120" example:"SN123"`
	PhysicalCondition models.AssetCondition `json:"physical_condition" validate:"max=40" swaggertype:"string" example:"NOVO"` // Optional: defaults to NOVO
	Color             string                `json:"color" validate:"max=60"`
	Details           string                `json:"details"`
	Value             decimal.Decimal       `json:"value" swaggertype:"string" example:"1750.25"`
	Region            models.Region         `json:"region" swaggertype:"string" example:"GO"`
}

// UpdateAssetRequest represents the descriptive fields of an asset that may change.
// Revision, when given, must match the stored revision.
type UpdateAssetRequest struct {
	Type              *models.AssetType      `json:"type" validate:"omitempty,max=40" swaggertype:"string"`
	Brand             *string                `json:"brand" validate:"omitempty,max=100"`
	AssetTag          *string                `json:"asset_tag" validate:"omitempty,max=100"`
	PrimaryID         *string                `json:"primary_id" validate:"omitempty,max=120"`
	Status            *models.AssetStatus    `json:"status" swaggertype:"string"`
	PhysicalCondition *models.AssetCondition `json:"physical_condition" validate:"omitempty,max=40" swaggertype:"string"`
	Color             *string                `json:"color" validate:"omitempty,max=60"`
	Details           *string                `json:"details"`
	Value             *decimal.Decimal       `json:"value" swaggertype:"string"`
	Region            *models.Region         `json:"region" swaggertype:"string"`
	Revision          *int64                 `json:"revision"`
}

// AssetListQuery holds the filters of an asset listing
type AssetListQuery struct {
	Search   string `form:"search"`
	Type     string `form:"type"`
	Status   string `form:"status"`
	Region   string `form:"region"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// AssetResponse represents the response data for an asset
type AssetResponse struct {
	ID                string          `json:"id"`
	Type              string          `json:"type"`
	Brand             string          `json:"brand"`
	AssetTag          *string         `json:"asset_tag"`
	PrimaryID         *string         `json:"primary_id"`
	Status            string          `json:"status"`
	PhysicalCondition string          `json:"physical_condition"`
	Color             string          `json:"color"`
	Details           string          `json:"details"`
	Value             decimal.Decimal `json:"value" swaggertype:"string"`
	CurrentOwnerType  string          `json:"current_owner_type"`
	CurrentOwnerID    string          `json:"current_owner_id"`
	CurrentOwnerName  string          `json:"current_owner_name"`
	Region            string          `json:"region"`
	Revision          int64           `json:"revision"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// AssetListResponse represents a paginated list of assets
type AssetListResponse struct {
	Assets   []AssetResponse `json:"assets"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// AssetSummaryResponse holds the dashboard figures
type AssetSummaryResponse struct {
	Total           int64                   `json:"total"`
	ByStatus        []repository.GroupCount `json:"by_status"`
	ByType          []repository.GroupCount `json:"by_type"`
	ByRegion        []repository.GroupCount `json:"by_region"`
	ByCustodianKind []repository.GroupCount `json:"by_custodian_kind"`
}

// Create registers a new asset in stock
func (s *AssetService) Create(ctx context.Context, req *CreateAssetRequest) (*AssetResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	req.Type = models.AssetType(strings.ToUpper(strings.TrimSpace(string(req.Type))))
	if !req.Type.IsValid() {
		return nil, apperrors.NewValidationError("type", fmt.Sprintf("unknown asset type %q", req.Type))
	}
	if req.Region != "" && !req.Region.IsValid() {
		return nil, apperrors.NewValidationError("region", fmt.Sprintf("unknown region %q", req.Region))
	}
	if req.Value.IsNegative() {
		return nil, apperrors.NewValidationError("value", "must not be negative")
	}

	primaryID := trimmedOrNil(req.PrimaryID)
	if primaryID != nil {
		if err := s.ensurePrimaryIDFree(ctx, *primaryID, ""); err != nil {
			return nil, err
		}
	}

	condition := req.PhysicalCondition
	if condition == "" {
		condition = models.AssetConditionNew
	}

	asset := &models.Asset{
		Type:              req.Type,
		Brand:             strings.ToUpper(strings.TrimSpace(req.Brand)),
		AssetTag:          trimmedOrNil(req.AssetTag),
		PrimaryID:         primaryID,
		Status:            models.AssetStatusInStock,
		PhysicalCondition: models.AssetCondition(strings.ToUpper(string(condition))),
		Color:             req.Color,
		Details:           req.Details,
		Value:             req.Value.Round(2),
		Region:            req.Region,
		Revision:          1,
	}
	asset.AssignTo(models.CustodianRef{
		Kind: models.CustodianStock,
		ID:   s.cfg.StockOwnerID,
		Name: s.cfg.StockOwnerName,
	})

	if err := s.repo.Create(ctx, asset); err != nil {
		return nil, apperrors.NewPersistenceError("create asset", err)
	}

	logger.WithContext(ctx).WithField("asset_id", asset.ID).Info("Asset created")
	publish(s.notifier, CollectionAssets)

	resp := toAssetResponse(asset)
	return &resp, nil
}

// GetByID retrieves an asset by ID
func (s *AssetService) GetByID(ctx context.Context, id string) (*AssetResponse, error) {
	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrAssetNotFound, "get asset")
	}

	resp := toAssetResponse(asset)
	return &resp, nil
}

// List retrieves assets matching the query, most recently changed first
func (s *AssetService) List(ctx context.Context, query *AssetListQuery) (*AssetListResponse, error) {
	page, pageSize, offset := normalizePagination(query.Page, query.PageSize)

	filter := repository.AssetFilter{
		Search: query.Search,
		Type:   query.Type,
		Status: query.Status,
		Region: query.Region,
	}
	assets, total, err := s.repo.List(ctx, filter, pageSize, offset)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list assets", err)
	}

	responses := make([]AssetResponse, len(assets))
	for i := range assets {
		responses[i] = toAssetResponse(&assets[i])
	}

	return &AssetListResponse{
		Assets:   responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update changes descriptive fields of an asset. Status may only be set to a terminal
// state (BAIXADO, PERDIDO) or back to the status implied by the current custodian.
func (s *AssetService) Update(ctx context.Context, id string, req *UpdateAssetRequest) (*AssetResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrAssetNotFound, "get asset")
	}

	expected := asset.Revision
	if req.Revision != nil {
		if *req.Revision != asset.Revision {
			return nil, apperrors.ErrStaleRevision
		}
		expected = *req.Revision
	}

	if req.Type != nil {
		t := models.AssetType(strings.ToUpper(strings.TrimSpace(string(*req.Type))))
		if !t.IsValid() {
			return nil, apperrors.NewValidationError("type", fmt.Sprintf("unknown asset type %q", *req.Type))
		}
		asset.Type = t
	}
	if req.Brand != nil {
		asset.Brand = strings.ToUpper(strings.TrimSpace(*req.Brand))
	}
	if req.AssetTag != nil {
		asset.AssetTag = trimmedOrNil(req.AssetTag)
	}
	if req.PrimaryID != nil {
		primaryID := trimmedOrNil(req.PrimaryID)
		if primaryID != nil && (asset.PrimaryID == nil || *asset.PrimaryID != *primaryID) {
			if err := s.ensurePrimaryIDFree(ctx, *primaryID, asset.ID); err != nil {
				return nil, err
			}
		}
		asset.PrimaryID = primaryID
	}
	if req.Status != nil {
		if err := checkStatusChange(asset, *req.Status); err != nil {
			return nil, err
		}
		asset.Status = *req.Status
	}
	if req.PhysicalCondition != nil {
		asset.PhysicalCondition = models.AssetCondition(strings.ToUpper(string(*req.PhysicalCondition)))
	}
	if req.Color != nil {
		asset.Color = *req.Color
	}
	if req.Details != nil {
		asset.Details = *req.Details
	}
	if req.Value != nil {
		if req.Value.IsNegative() {
			return nil, apperrors.NewValidationError("value", "must not be negative")
		}
		asset.Value = req.Value.Round(2)
	}
	if req.Region != nil {
		if !req.Region.IsValid() {
			return nil, apperrors.NewValidationError("region", fmt.Sprintf("unknown region %q", *req.Region))
		}
		asset.Region = *req.Region
	}

	if err := s.repo.Update(ctx, asset, expected); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrStaleRevision):
			return nil, err
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.NewPersistenceError("update asset", err)
	}

	publish(s.notifier, CollectionAssets)

	resp := toAssetResponse(asset)
	return &resp, nil
}

func checkStatusChange(asset *models.Asset, status models.AssetStatus) error {
	if !status.IsValid() {
		return apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	switch status {
	case asset.Status, models.AssetStatusDecommissioned, models.AssetStatusLost, EffectiveStatus(asset.CurrentOwnerType, nil):
		return nil
	}
	return apperrors.NewValidationError("status", fmt.Sprintf("status %q requires a movement", status))
}

// Delete removes an asset. Its movement history is kept.
func (s *AssetService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return lookupError(err, apperrors.ErrAssetNotFound, "get asset")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.NewPersistenceError("delete asset", err)
	}

	logger.WithContext(ctx).WithField("asset_id", id).Info("Asset deleted")
	publish(s.notifier, CollectionAssets)
	return nil
}

// History returns the movements of an existing asset, newest first
func (s *AssetService) History(ctx context.Context, id string) ([]MovementResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, apperrors.ErrAssetNotFound, "get asset")
	}

	movements, err := s.movements.GetByAssetID(ctx, id)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list asset movements", err)
	}
	return toMovementResponses(movements), nil
}

// Summary computes inventory totals grouped by status, type, region and custodian kind
func (s *AssetService) Summary(ctx context.Context) (*AssetSummaryResponse, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("count assets", err)
	}

	summary := &AssetSummaryResponse{Total: total}
	groups := []struct {
		column string
		target *[]repository.GroupCount
	}{
		{"status", &summary.ByStatus},
		{"type", &summary.ByType},
		{"region", &summary.ByRegion},
		{"current_owner_type", &summary.ByCustodianKind},
	}
	for _, g := range groups {
		counts, err := s.repo.CountBy(ctx, g.column)
		if err != nil {
			return nil, apperrors.NewPersistenceError("count assets by "+g.column, err)
		}
		*g.target = counts
	}

	return summary, nil
}

func (s *AssetService) ensurePrimaryIDFree(ctx context.Context, primaryID, selfID string) error {
	existing, err := s.repo.GetByPrimaryID(ctx, primaryID)
	if err == nil {
		if existing.ID != selfID {
			return apperrors.ErrAssetExists
		}
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return apperrors.NewPersistenceError("check primary id", err)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func toAssetResponse(a *models.Asset) AssetResponse {
	return AssetResponse{
		ID:                a.ID,
		Type:              string(a.Type),
		Brand:             a.Brand,
		AssetTag:          a.AssetTag,
		PrimaryID:         a.PrimaryID,
		Status:            string(a.Status),
		PhysicalCondition: string(a.PhysicalCondition),
		Color:             a.Color,
		Details:           a.Details,
		Value:             a.Value,
		CurrentOwnerType:  string(a.CurrentOwnerType),
		CurrentOwnerID:    a.CurrentOwnerID,
		CurrentOwnerName:  a.CurrentOwnerName,
		Region:            string(a.Region),
		Revision:          a.Revision,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}
