package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"
	"asset-management-backend/internal/logger"
	"asset-management-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// EmployeeService handles business logic for employees
type EmployeeService struct {
	repo      repository.EmployeeRepositoryInterface
	teams     repository.TeamRepositoryInterface
	roles     repository.RoleRepositoryInterface
	validator *validator.Validate
	notifier  Notifier
}

// Ensure EmployeeService implements EmployeeServiceInterface
var _ EmployeeServiceInterface = (*EmployeeService)(nil)

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	repo repository.EmployeeRepositoryInterface,
	teams repository.TeamRepositoryInterface,
	roles repository.RoleRepositoryInterface,
	validator *validator.Validate,
	notifier Notifier,
) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		teams:     teams,
		roles:     roles,
		validator: validator,
		notifier:  notifier,
	}
}

// CreateEmployeeRequest represents the data needed to create an employee
type CreateEmployeeRequest struct {
	ID     string        `json:"id" validate:"max=64" example:"E004"` // Optional: generated when empty
	Name   string        `json:"name" validate:"required,max=200" example:"João Paulo"`
	Role   string        `json:"role" validate:"max=120" example:"Vendedor"`
	RoleID *string       `json:"role_id" validate:"omitempty,max=64"`
	Region models.Region `json:"region" validate:"required" swaggertype:"string" example:"GO"`
	TeamID *string       `json:"team_id" validate:"omitempty,max=64"`
	Active *bool         `json:"active" example:"true" default:"true"` // Optional: defaults to true
}

// UpdateEmployeeRequest represents the data needed to update an employee.
// An empty team_id or role_id detaches the employee.
type UpdateEmployeeRequest struct {
	Name   *string        `json:"name" validate:"omitempty,max=200"`
	Role   *string        `json:"role" validate:"omitempty,max=120"`
	RoleID *string        `json:"role_id" validate:"omitempty,max=64"`
	Region *models.Region `json:"region" swaggertype:"string"`
	TeamID *string        `json:"team_id" validate:"omitempty,max=64"`
	Active *bool          `json:"active"`
}

// EmployeeListQuery holds the filters of an employee listing
type EmployeeListQuery struct {
	Region   string `form:"region"`
	TeamID   string `form:"team_id"`
	Active   *bool  `form:"active"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// EmployeeResponse represents the response data for an employee
type EmployeeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	RoleID    *string   `json:"role_id,omitempty"`
	Region    string    `json:"region"`
	TeamID    *string   `json:"team_id,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmployeeListResponse represents a paginated list of employees
type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

// Create creates a new employee
func (s *EmployeeService) Create(ctx context.Context, req *CreateEmployeeRequest) (*EmployeeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if !req.Region.IsValid() {
		return nil, apperrors.NewValidationError("region", fmt.Sprintf("unknown region %q", req.Region))
	}

	id := strings.TrimSpace(req.ID)
	if id != "" {
		if _, err := s.repo.GetByID(ctx, id); err == nil {
			return nil, apperrors.ErrEmployeeExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewPersistenceError("check employee", err)
		}
	}

	teamID := trimmedOrNil(req.TeamID)
	roleID := trimmedOrNil(req.RoleID)
	if err := s.checkReferences(ctx, teamID, roleID); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	employee := &models.Employee{
		BaseModel: models.BaseModel{ID: id},
		Name:      strings.TrimSpace(req.Name),
		Role:      req.Role,
		RoleID:    roleID,
		Region:    req.Region,
		TeamID:    teamID,
		Active:    active,
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, apperrors.NewPersistenceError("create employee", err)
	}

	logger.WithContext(ctx).WithField("employee_id", employee.ID).Info("Employee created")
	publish(s.notifier, CollectionEmployees)
	return toEmployeeResponse(employee), nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, id string) (*EmployeeResponse, error) {
	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrEmployeeNotFound, "get employee")
	}
	return toEmployeeResponse(employee), nil
}

// List retrieves employees matching the query
func (s *EmployeeService) List(ctx context.Context, query *EmployeeListQuery) (*EmployeeListResponse, error) {
	page, pageSize, offset := normalizePagination(query.Page, query.PageSize)

	filter := repository.EmployeeFilter{
		Region: query.Region,
		TeamID: query.TeamID,
		Active: query.Active,
		Search: query.Search,
	}
	employees, total, err := s.repo.List(ctx, filter, pageSize, offset)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list employees", err)
	}

	responses := make([]EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = *toEmployeeResponse(&employees[i])
	}

	return &EmployeeListResponse{
		Employees: responses,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

// Update updates an existing employee
func (s *EmployeeService) Update(ctx context.Context, id string, req *UpdateEmployeeRequest) (*EmployeeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrEmployeeNotFound, "get employee")
	}

	var teamID, roleID *string
	if req.TeamID != nil {
		teamID = trimmedOrNil(req.TeamID)
	}
	if req.RoleID != nil {
		roleID = trimmedOrNil(req.RoleID)
	}
	if err := s.checkReferences(ctx, teamID, roleID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		employee.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		employee.Role = *req.Role
	}
	if req.RoleID != nil {
		employee.RoleID = roleID
	}
	if req.Region != nil {
		if !req.Region.IsValid() {
			return nil, apperrors.NewValidationError("region", fmt.Sprintf("unknown region %q", *req.Region))
		}
		employee.Region = *req.Region
	}
	if req.TeamID != nil {
		employee.TeamID = teamID
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, apperrors.NewPersistenceError("update employee", err)
	}

	publish(s.notifier, CollectionEmployees)
	return toEmployeeResponse(employee), nil
}

// Delete deletes an employee. Assets the employee holds keep the recorded custodian name.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return lookupError(err, apperrors.ErrEmployeeNotFound, "get employee")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.NewPersistenceError("delete employee", err)
	}

	logger.WithContext(ctx).WithField("employee_id", id).Info("Employee deleted")
	publish(s.notifier, CollectionEmployees)
	return nil
}

// checkReferences verifies that the given team and role exist
func (s *EmployeeService) checkReferences(ctx context.Context, teamID, roleID *string) error {
	if teamID != nil {
		if _, err := s.teams.GetByID(ctx, *teamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewValidationError("team_id", "team not found")
			}
			return apperrors.NewPersistenceError("check team", err)
		}
	}
	if roleID != nil {
		if _, err := s.roles.GetByID(ctx, *roleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewValidationError("role_id", "role not found")
			}
			return apperrors.NewPersistenceError("check role", err)
		}
	}
	return nil
}

func toEmployeeResponse(e *models.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Role:      e.Role,
		RoleID:    e.RoleID,
		Region:    string(e.Region),
		TeamID:    e.TeamID,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
