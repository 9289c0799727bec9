package repository

import (
	"context"

	"asset-management-backend/internal/database/models"

	"gorm.io/gorm"
)

// RoleFilter narrows role listings. Empty fields are ignored.
type RoleFilter struct {
	Region string
	Status string
	TeamID string
}

// RoleRepository handles database operations for roles
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create creates a new role
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// GetByID retrieves a role by ID
func (r *RoleRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByCode retrieves a role by its position code
func (r *RoleRepository) GetByCode(ctx context.Context, code string) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).First(&role, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// List retrieves roles matching filter with pagination
func (r *RoleRepository) List(ctx context.Context, filter RoleFilter, limit, offset int) ([]models.Role, int64, error) {
	var roles []models.Role
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Role{})
	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TeamID != "" {
		query = query.Where("team_id = ?", filter.TeamID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("code").Limit(limit).Offset(offset).Find(&roles).Error
	if err != nil {
		return nil, 0, err
	}

	return roles, total, nil
}

// GetByTeamID retrieves the positions attached to a team
func (r *RoleRepository) GetByTeamID(ctx context.Context, teamID string) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Order("code").Find(&roles).Error
	return roles, err
}

// Update updates a role
func (r *RoleRepository) Update(ctx context.Context, role *models.Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

// Delete deletes a role
func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Role{}, "id = ?", id).Error
}
