package repository

import (
	"context"
	"strings"

	"asset-management-backend/internal/database/models"

	"gorm.io/gorm"
)

// EmployeeFilter narrows employee listings. Empty fields are ignored.
type EmployeeFilter struct {
	Region string
	TeamID string
	Active *bool
	Search string
}

// EmployeeRepository handles database operations for employees
type EmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create creates a new employee
func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetByIDs retrieves employees by ID
func (r *EmployeeRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Employee, error) {
	var employees []models.Employee
	if len(ids) == 0 {
		return employees, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&employees).Error
	return employees, err
}

// List retrieves employees matching filter with pagination
func (r *EmployeeRepository) List(ctx context.Context, filter EmployeeFilter, limit, offset int) ([]models.Employee, int64, error) {
	var employees []models.Employee
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Employee{})
	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if filter.TeamID != "" {
		query = query.Where("team_id = ?", filter.TeamID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + s + "%"
		query = query.Where("name ILIKE ? OR role ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name").Limit(limit).Offset(offset).Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// GetByTeamID retrieves all members of a team
func (r *EmployeeRepository) GetByTeamID(ctx context.Context, teamID string) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Order("name").Find(&employees).Error
	return employees, err
}

// SetTeam assigns an employee to a team, or removes it from its team when teamID is nil
func (r *EmployeeRepository) SetTeam(ctx context.Context, employeeID string, teamID *string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ?", employeeID).
		Update("team_id", teamID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Update updates an employee
func (r *EmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

// Delete deletes an employee
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Employee{}, "id = ?", id).Error
}
