package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"
	"asset-management-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// RoleService handles business logic for job positions
type RoleService struct {
	repo      repository.RoleRepositoryInterface
	teams     repository.TeamRepositoryInterface
	validator *validator.Validate
	notifier  Notifier
}

// Ensure RoleService implements RoleServiceInterface
var _ RoleServiceInterface = (*RoleService)(nil)

// NewRoleService creates a new role service
func NewRoleService(repo repository.RoleRepositoryInterface, teams repository.TeamRepositoryInterface, validator *validator.Validate, notifier Notifier) *RoleService {
	return &RoleService{
		repo:      repo,
		teams:     teams,
		validator: validator,
		notifier:  notifier,
	}
}

// CreateRoleRequest represents the data needed to create a role
type CreateRoleRequest struct {
	ID          string             `json:"id" validate:"max=64" example:"R001"` // Optional: generated when empty
	Code        string             `json:"code" validate:"required,max=60" example:"VEND-GO-01"`
	Description string             `json:"description" validate:"max=200" example:"Vendedor Externo"`
	Region      models.Region      `json:"region" validate:"required" swaggertype:"string" example:"GO"`
	TeamID      *string            `json:"team_id" validate:"omitempty,max=64"`
	Status      *models.RoleStatus `json:"status" swaggertype:"string" example:"VAGA_ABERTA"` // Optional: defaults to VAGA_ABERTA
}

// UpdateRoleRequest represents the data needed to update a role
type UpdateRoleRequest struct {
	Code        *string            `json:"code" validate:"omitempty,max=60"`
	Description *string            `json:"description" validate:"omitempty,max=200"`
	Region      *models.Region     `json:"region" swaggertype:"string"`
	TeamID      *string            `json:"team_id" validate:"omitempty,max=64"`
	Status      *models.RoleStatus `json:"status" swaggertype:"string"`
}

// RoleListQuery holds the filters of a role listing
type RoleListQuery struct {
	Region   string `form:"region"`
	Status   string `form:"status"`
	TeamID   string `form:"team_id"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// RoleResponse represents the response data for a role
type RoleResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Region      string    `json:"region"`
	TeamID      *string   `json:"team_id,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoleListResponse represents a paginated list of roles
type RoleListResponse struct {
	Roles    []RoleResponse `json:"roles"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Create creates a new role, open by default
func (s *RoleService) Create(ctx context.Context, req *CreateRoleRequest) (*RoleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if !req.Region.IsValid() {
		return nil, apperrors.NewValidationError("region", fmt.Sprintf("unknown region %q", req.Region))
	}

	status := models.RoleStatusOpen
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown role status %q", *req.Status))
		}
		status = *req.Status
	}

	code := strings.TrimSpace(req.Code)
	if err := s.ensureCodeFree(ctx, code, ""); err != nil {
		return nil, err
	}

	teamID := trimmedOrNil(req.TeamID)
	if err := s.checkTeam(ctx, teamID); err != nil {
		return nil, err
	}

	role := &models.Role{
		BaseModel:   models.BaseModel{ID: strings.TrimSpace(req.ID)},
		Code:        code,
		Description: req.Description,
		Region:      req.Region,
		TeamID:      teamID,
		Status:      status,
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, apperrors.NewPersistenceError("create role", err)
	}

	publish(s.notifier, CollectionRoles)
	return toRoleResponse(role), nil
}

// GetByID retrieves a role by ID
func (s *RoleService) GetByID(ctx context.Context, id string) (*RoleResponse, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrRoleNotFound, "get role")
	}
	return toRoleResponse(role), nil
}

// List retrieves roles matching the query
func (s *RoleService) List(ctx context.Context, query *RoleListQuery) (*RoleListResponse, error) {
	page, pageSize, offset := normalizePagination(query.Page, query.PageSize)

	filter := repository.RoleFilter{
		Region: query.Region,
		Status: query.Status,
		TeamID: query.TeamID,
	}
	roles, total, err := s.repo.List(ctx, filter, pageSize, offset)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list roles", err)
	}

	responses := make([]RoleResponse, len(roles))
	for i := range roles {
		responses[i] = *toRoleResponse(&roles[i])
	}

	return &RoleListResponse{
		Roles:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update updates an existing role
func (s *RoleService) Update(ctx context.Context, id string, req *UpdateRoleRequest) (*RoleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrRoleNotFound, "get role")
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return nil, apperrors.NewValidationError("code", "must not be empty")
		}
		if code != role.Code {
			if err := s.ensureCodeFree(ctx, code, role.ID); err != nil {
				return nil, err
			}
		}
		role.Code = code
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.Region != nil {
		if !req.Region.IsValid() {
			return nil, apperrors.NewValidationError("region", fmt.Sprintf("unknown region %q", *req.Region))
		}
		role.Region = *req.Region
	}
	if req.TeamID != nil {
		teamID := trimmedOrNil(req.TeamID)
		if err := s.checkTeam(ctx, teamID); err != nil {
			return nil, err
		}
		role.TeamID = teamID
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown role status %q", *req.Status))
		}
		role.Status = *req.Status
	}

	if err := s.repo.Update(ctx, role); err != nil {
		return nil, apperrors.NewPersistenceError("update role", err)
	}

	publish(s.notifier, CollectionRoles)
	return toRoleResponse(role), nil
}

// Delete deletes a role
func (s *RoleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return lookupError(err, apperrors.ErrRoleNotFound, "get role")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.NewPersistenceError("delete role", err)
	}

	publish(s.notifier, CollectionRoles)
	return nil
}

func (s *RoleService) ensureCodeFree(ctx context.Context, code, selfID string) error {
	existing, err := s.repo.GetByCode(ctx, code)
	if err == nil {
		if existing.ID != selfID {
			return apperrors.ErrRoleExists
		}
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return apperrors.NewPersistenceError("check role code", err)
}

func (s *RoleService) checkTeam(ctx context.Context, teamID *string) error {
	if teamID == nil {
		return nil
	}
	if _, err := s.teams.GetByID(ctx, *teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewValidationError("team_id", "team not found")
		}
		return apperrors.NewPersistenceError("check team", err)
	}
	return nil
}

func toRoleResponse(r *models.Role) *RoleResponse {
	return &RoleResponse{
		ID:          r.ID,
		Code:        r.Code,
		Description: r.Description,
		Region:      string(r.Region),
		TeamID:      r.TeamID,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
