package repository

import (
	"context"

	"asset-management-backend/internal/database/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// AssetRepositoryInterface defines the interface for asset repository operations
type AssetRepositoryInterface interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, id string) (*models.Asset, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Asset, error)
	GetByPrimaryID(ctx context.Context, primaryID string) (*models.Asset, error)
	List(ctx context.Context, filter AssetFilter, limit, offset int) ([]models.Asset, int64, error)
	GetByCustodians(ctx context.Context, kind models.CustodianKind, ids []string) ([]models.Asset, error)
	FindExistingPrimaryIDs(ctx context.Context, primaryIDs []string) ([]string, error)
	CountBy(ctx context.Context, column string) ([]GroupCount, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, asset *models.Asset, expectedRevision int64) error
	Delete(ctx context.Context, id string) error
}

// MovementRepositoryInterface defines the interface for movement repository operations.
// Movements are append-only: there is no update or delete.
type MovementRepositoryInterface interface {
	Transfer(ctx context.Context, movements []models.Movement, updates []CustodyUpdate) error
	GetByAssetID(ctx context.Context, assetID string) ([]models.Movement, error)
	List(ctx context.Context, limit, offset int) ([]models.Movement, int64, error)
}

// EmployeeRepositoryInterface defines the interface for employee repository operations
type EmployeeRepositoryInterface interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Employee, error)
	List(ctx context.Context, filter EmployeeFilter, limit, offset int) ([]models.Employee, int64, error)
	GetByTeamID(ctx context.Context, teamID string) ([]models.Employee, error)
	SetTeam(ctx context.Context, employeeID string, teamID *string) error
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id string) error
}

// TeamRepositoryInterface defines the interface for team repository operations
type TeamRepositoryInterface interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	GetByName(ctx context.Context, region models.Region, name string) (*models.Team, error)
	List(ctx context.Context, region string, limit, offset int) ([]models.Team, int64, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id string) error
}

// RoleRepositoryInterface defines the interface for role repository operations
type RoleRepositoryInterface interface {
	Create(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, id string) (*models.Role, error)
	GetByCode(ctx context.Context, code string) (*models.Role, error)
	List(ctx context.Context, filter RoleFilter, limit, offset int) ([]models.Role, int64, error)
	GetByTeamID(ctx context.Context, teamID string) ([]models.Role, error)
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id string) error
}

// ImportRunRepositoryInterface defines the interface for import run repository operations
type ImportRunRepositoryInterface interface {
	Create(ctx context.Context, run *models.ImportRun) error
	GetByID(ctx context.Context, id string) (*models.ImportRun, error)
	List(ctx context.Context, limit, offset int) ([]models.ImportRun, int64, error)
	Commit(ctx context.Context, runID string, assets []*models.Asset, batchSize int) error
	MarkFailed(ctx context.Context, runID string, reason string) error
}
