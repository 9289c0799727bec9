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
	"gorm.io/gorm"
)

// MovementService transfers custody of assets and records the history
type MovementService struct {
	assets    repository.AssetRepositoryInterface
	movements repository.MovementRepositoryInterface
	employees repository.EmployeeRepositoryInterface
	teams     repository.TeamRepositoryInterface
	roles     repository.RoleRepositoryInterface
	cfg       *config.Config
	validator *validator.Validate
	notifier  Notifier
}

// Ensure MovementService implements MovementServiceInterface
var _ MovementServiceInterface = (*MovementService)(nil)

// NewMovementService creates a new movement service
func NewMovementService(
	assets repository.AssetRepositoryInterface,
	movements repository.MovementRepositoryInterface,
	employees repository.EmployeeRepositoryInterface,
	teams repository.TeamRepositoryInterface,
	roles repository.RoleRepositoryInterface,
	cfg *config.Config,
	validator *validator.Validate,
	notifier Notifier,
) *MovementService {
	return &MovementService{
		assets:    assets,
		movements: movements,
		employees: employees,
		teams:     teams,
		roles:     roles,
		cfg:       cfg,
		validator: validator,
		notifier:  notifier,
	}
}

// DestinationRequest names the custodian assets are moved to.
// Label is only meaningful for MANUTENÇÃO, where it names the repair provider.
type DestinationRequest struct {
	Kind  models.CustodianKind `json:"kind" validate:"required" example:"FUNCIONÁRIO"`
	ID    string               `json:"id" validate:"max=64" example:"E004"`
	Label string               `json:"label,omitempty" validate:"max=200"`
}

// ExecuteMovementRequest represents a batch custody transfer
type ExecuteMovementRequest struct {
	AssetIDs     []string            `json:"asset_ids" validate:"required,min=1,dive,required"`
	Destination  DestinationRequest  `json:"destination"`
	Status       *models.AssetStatus `json:"status,omitempty" swaggertype:"string" example:"EM USO"` // Optional: overrides the status derived from the destination
	Reason       string              `json:"reason" validate:"required,max=200" example:"Entrega de equipamento"`
	Observations string              `json:"observations,omitempty" validate:"max=2000"`
	RegisteredBy string              `json:"registered_by" validate:"max=200"` // Optional: defaults to the X-User of the request
}

// MovementResponse represents one recorded custody change
type MovementResponse struct {
	ID            string    `json:"id"`
	AssetID       string    `json:"asset_id"`
	Date          time.Time `json:"date"`
	FromOwnerType string    `json:"from_owner_type"`
	FromOwnerID   string    `json:"from_owner_id"`
	FromOwnerName string    `json:"from_owner_name"`
	ToOwnerType   string    `json:"to_owner_type"`
	ToOwnerID     string    `json:"to_owner_id"`
	ToOwnerName   string    `json:"to_owner_name"`
	Reason        string    `json:"reason"`
	Observations  string    `json:"observations,omitempty"`
	RegisteredBy  string    `json:"registered_by"`
}

// MovementResult is the outcome of a successful transfer
type MovementResult struct {
	Movements []MovementResponse `json:"movements"`
	Assets    []AssetResponse    `json:"assets"`
}

// MovementListResponse represents a paginated list of movements
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

// Execute moves every listed asset to the destination in one atomic step.
// Each asset gets one movement whose origin is its custodian before the call.
func (s *MovementService) Execute(ctx context.Context, req *ExecuteMovementRequest) (*MovementResult, error) {
	if len(req.AssetIDs) == 0 {
		return nil, apperrors.ErrEmptyAssetList
	}

	req.Reason = strings.TrimSpace(req.Reason)
	req.RegisteredBy = strings.TrimSpace(req.RegisteredBy)
	if req.RegisteredBy == "" {
		req.RegisteredBy = logger.ActorFromContext(ctx)
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	custodian, err := models.NewCustodian(req.Destination.Kind, strings.TrimSpace(req.Destination.ID), strings.TrimSpace(req.Destination.Label))
	if err != nil {
		return nil, apperrors.NewValidationError("destination.kind", err.Error())
	}

	log := logger.WithContext(ctx).WithFields(map[string]interface{}{
		"destination_kind": req.Destination.Kind,
		"destination_id":   req.Destination.ID,
		"asset_count":      len(req.AssetIDs),
	})

	// Clients refetch after every attempt, failed or not
	defer publish(s.notifier, CollectionAssets, CollectionMovements)

	result, err := s.execute(ctx, req, custodian)
	if err != nil {
		log.WithError(err).Warn("Movement failed")
		return nil, err
	}

	log.Info("Movement executed")
	return result, nil
}

func (s *MovementService) validate(req *ExecuteMovementRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationError(err)
	}
	if req.RegisteredBy == "" {
		return apperrors.NewValidationError("registered_by", "actor is required")
	}
	if !req.Destination.Kind.IsValid() {
		return apperrors.NewValidationError("destination.kind", fmt.Sprintf("unknown custodian kind %q", req.Destination.Kind))
	}
	if req.Status != nil && !req.Status.IsValid() {
		return apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", *req.Status))
	}

	seen := make(map[string]struct{}, len(req.AssetIDs))
	for _, id := range req.AssetIDs {
		if _, dup := seen[id]; dup {
			return apperrors.NewValidationError("asset_ids", fmt.Sprintf("asset %s listed more than once", id))
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (s *MovementService) execute(ctx context.Context, req *ExecuteMovementRequest, custodian models.Custodian) (*MovementResult, error) {
	// There is a single stock; any other id is a client mistake
	if id := strings.TrimSpace(req.Destination.ID); custodian.Kind() == models.CustodianStock && id != "" && id != s.cfg.StockOwnerID {
		return nil, apperrors.NewUnresolvedCustodianError(string(models.CustodianStock), id, "unknown stock")
	}

	destination, region, err := s.resolve(ctx, custodian)
	if err != nil {
		return nil, err
	}

	found, err := s.assets.GetByIDs(ctx, req.AssetIDs)
	if err != nil {
		return nil, apperrors.NewPersistenceError("load assets", err)
	}
	byID := make(map[string]*models.Asset, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	status := EffectiveStatus(destination.Kind, req.Status)
	now := time.Now()

	assets := make([]*models.Asset, len(req.AssetIDs))
	movements := make([]models.Movement, len(req.AssetIDs))
	updates := make([]repository.CustodyUpdate, len(req.AssetIDs))
	for i, id := range req.AssetIDs {
		asset, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAssetNotFound, id)
		}
		origin := asset.Holder()

		movements[i] = models.Movement{
			AssetID:       id,
			Date:          now,
			FromOwnerType: origin.Kind,
			FromOwnerID:   origin.ID,
			FromOwnerName: origin.Name,
			ToOwnerType:   destination.Kind,
			ToOwnerID:     destination.ID,
			ToOwnerName:   destination.Name,
			Reason:        req.Reason,
			Observations:  req.Observations,
			RegisteredBy:  req.RegisteredBy,
		}
		updates[i] = repository.CustodyUpdate{
			AssetID:          id,
			ExpectedRevision: asset.Revision,
			Custodian:        destination,
			Status:           status,
			Region:           region,
		}
		assets[i] = asset
	}

	if err := s.movements.Transfer(ctx, movements, updates); err != nil {
		if errors.Is(err, apperrors.ErrStaleRevision) {
			return nil, err
		}
		return nil, apperrors.NewPersistenceError("transfer custody", err)
	}

	result := &MovementResult{
		Movements: make([]MovementResponse, len(movements)),
		Assets:    make([]AssetResponse, len(assets)),
	}
	for i, asset := range assets {
		asset.AssignTo(destination)
		asset.Status = status
		if region != nil {
			asset.Region = *region
		}
		asset.Revision++
		asset.UpdatedAt = now

		result.Movements[i] = toMovementResponse(&movements[i])
		result.Assets[i] = toAssetResponse(asset)
	}
	return result, nil
}

// resolve turns a destination into a concrete custodian reference. The returned region is
// set only when the destination moves the asset to another region.
func (s *MovementService) resolve(ctx context.Context, custodian models.Custodian) (models.CustodianRef, *models.Region, error) {
	switch c := custodian.(type) {
	case models.EmployeeCustodian:
		if c.EmployeeID == "" {
			return models.CustodianRef{}, nil, apperrors.NewUnresolvedCustodianError(string(c.Kind()), "", "employee id is required")
		}
		employee, err := s.employees.GetByID(ctx, c.EmployeeID)
		if err != nil {
			return models.CustodianRef{}, nil, s.unresolved(c, c.EmployeeID, err)
		}
		if !employee.Active {
			return models.CustodianRef{}, nil, apperrors.NewUnresolvedCustodianError(string(c.Kind()), c.EmployeeID, "employee is inactive")
		}
		region := employee.Region
		return models.CustodianRef{Kind: c.Kind(), ID: employee.ID, Name: employee.Name}, &region, nil

	case models.StockCustodian:
		return s.StockRef(), nil, nil

	case models.MaintenanceCustodian:
		ref := models.CustodianRef{Kind: c.Kind(), ID: c.ID, Name: c.Label}
		if ref.ID == "" {
			ref.ID = s.cfg.MaintenanceOwnerID
		}
		if ref.Name == "" {
			ref.Name = s.cfg.MaintenanceOwnerName
		}
		return ref, nil, nil

	case models.TeamCustodian:
		team, err := s.teams.GetByID(ctx, c.TeamID)
		if err != nil {
			return models.CustodianRef{}, nil, s.unresolved(c, c.TeamID, err)
		}
		return models.CustodianRef{Kind: c.Kind(), ID: team.ID, Name: team.Name}, nil, nil

	case models.RoleCustodian:
		role, err := s.roles.GetByID(ctx, c.RoleID)
		if err != nil {
			return models.CustodianRef{}, nil, s.unresolved(c, c.RoleID, err)
		}
		return models.CustodianRef{Kind: c.Kind(), ID: role.ID, Name: role.Code}, nil, nil
	}

	return models.CustodianRef{}, nil, apperrors.NewValidationError("destination.kind", fmt.Sprintf("unsupported custodian %T", custodian))
}

func (s *MovementService) unresolved(c models.Custodian, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewUnresolvedCustodianError(string(c.Kind()), id, "not found")
	}
	return apperrors.NewPersistenceError("resolve custodian", err)
}

// StockRef returns the configured stock custodian
func (s *MovementService) StockRef() models.CustodianRef {
	return models.CustodianRef{
		Kind: models.CustodianStock,
		ID:   s.cfg.StockOwnerID,
		Name: s.cfg.StockOwnerName,
	}
}

// EffectiveStatus returns the status an asset takes when moved to kind.
// An explicit override always wins.
func EffectiveStatus(kind models.CustodianKind, override *models.AssetStatus) models.AssetStatus {
	if override != nil {
		return *override
	}
	switch kind {
	case models.CustodianStock:
		return models.AssetStatusInStock
	case models.CustodianMaintenance:
		return models.AssetStatusInMaintenance
	default:
		return models.AssetStatusInUse
	}
}

// List retrieves movements with pagination, newest first
func (s *MovementService) List(ctx context.Context, page, pageSize int) (*MovementListResponse, error) {
	page, pageSize, offset := normalizePagination(page, pageSize)

	movements, total, err := s.movements.List(ctx, pageSize, offset)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list movements", err)
	}

	return &MovementListResponse{
		Movements: toMovementResponses(movements),
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

// ListByAsset retrieves the history of one asset, newest first. History of deleted assets stays readable.
func (s *MovementService) ListByAsset(ctx context.Context, assetID string) ([]MovementResponse, error) {
	movements, err := s.movements.GetByAssetID(ctx, assetID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list asset movements", err)
	}
	return toMovementResponses(movements), nil
}

func toMovementResponses(movements []models.Movement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = toMovementResponse(&movements[i])
	}
	return responses
}

func toMovementResponse(m *models.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		AssetID:       m.AssetID,
		Date:          m.Date,
		FromOwnerType: string(m.FromOwnerType),
		FromOwnerID:   m.FromOwnerID,
		FromOwnerName: m.FromOwnerName,
		ToOwnerType:   string(m.ToOwnerType),
		ToOwnerID:     m.ToOwnerID,
		ToOwnerName:   m.ToOwnerName,
		Reason:        m.Reason,
		Observations:  m.Observations,
		RegisteredBy:  m.RegisteredBy,
	}
}
