package repository

import (
	"context"

	"asset-management-backend/internal/database/models"

	"gorm.io/gorm"
)

// TeamRepository handles database operations for teams
type TeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create creates a new team
func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetByName retrieves a team by name within a region
func (r *TeamRepository) GetByName(ctx context.Context, region models.Region, name string) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).First(&team, "region = ? AND name = ?", region, name).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// List retrieves teams with pagination, optionally restricted to a region
func (r *TeamRepository) List(ctx context.Context, region string, limit, offset int) ([]models.Team, int64, error) {
	var teams []models.Team
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Team{})
	if region != "" {
		query = query.Where("region = ?", region)
	}

	// Get total count
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated results
	err := query.Order("region, name").Limit(limit).Offset(offset).Find(&teams).Error
	if err != nil {
		return nil, 0, err
	}

	return teams, total, nil
}

// Update updates a team
func (r *TeamRepository) Update(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

// Delete deletes a team, detaching its employees and roles first
func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).Where("team_id = ?", id).Update("team_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Role{}).Where("team_id = ?", id).Update("team_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Team{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
