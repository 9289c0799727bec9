package testutils

import (
	"time"

	"asset-management-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team with default values
func (f *TeamFactory) Create() *models.Team {
	return &models.Team{
		BaseModel: models.BaseModel{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:    "Equipe Teste " + uuid.NewString()[:6],
		Region:  models.RegionGO,
		Channel: models.ChannelCV,
	}
}

// WithName sets a custom name for the team
func (f *TeamFactory) WithName(name string) *models.Team {
	team := f.Create()
	team.Name = name
	return team
}

// WithRegion sets a custom region for the team
func (f *TeamFactory) WithRegion(region models.Region) *models.Team {
	team := f.Create()
	team.Region = region
	return team
}

// EmployeeFactory provides methods to create test Employee data
type EmployeeFactory struct{}

// NewEmployeeFactory creates a new EmployeeFactory
func NewEmployeeFactory() *EmployeeFactory {
	return &EmployeeFactory{}
}

// Create creates an active test Employee with default values
func (f *EmployeeFactory) Create() *models.Employee {
	return &models.Employee{
		BaseModel: models.BaseModel{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:   "Fulano de Tal",
		Role:   "Vendedor",
		Region: models.RegionGO,
		Active: true,
	}
}

// WithTeam sets the team for the employee
func (f *EmployeeFactory) WithTeam(teamID string) *models.Employee {
	employee := f.Create()
	employee.TeamID = &teamID
	return employee
}

// WithRegion sets a custom region for the employee
func (f *EmployeeFactory) WithRegion(region models.Region) *models.Employee {
	employee := f.Create()
	employee.Region = region
	return employee
}

// Inactive creates an employee who has left the company
func (f *EmployeeFactory) Inactive() *models.Employee {
	employee := f.Create()
	employee.Active = false
	return employee
}

// RoleFactory provides methods to create test Role data
type RoleFactory struct{}

// NewRoleFactory creates a new RoleFactory
func NewRoleFactory() *RoleFactory {
	return &RoleFactory{}
}

// Create creates an open test Role with default values
func (f *RoleFactory) Create() *models.Role {
	return &models.Role{
		BaseModel: models.BaseModel{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Code:        "VAGA-" + uuid.NewString()[:8],
		Description: "Vendedor Externo",
		Region:      models.RegionGO,
		Status:      models.RoleStatusOpen,
	}
}

// WithTeam sets the team for the role
func (f *RoleFactory) WithTeam(teamID string) *models.Role {
	role := f.Create()
	role.TeamID = &teamID
	return role
}

// AssetFactory provides methods to create test Asset data
type AssetFactory struct{}

// NewAssetFactory creates a new AssetFactory
func NewAssetFactory() *AssetFactory {
	return &AssetFactory{}
}

// Create creates a test Asset sitting in stock
func (f *AssetFactory) Create() *models.Asset {
	serial := "SN-" + uuid.NewString()[:12]
	tag := "GSA-" + uuid.NewString()[:6]
	return &models.Asset{
		BaseModel: models.BaseModel{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Type:              models.AssetTypeNotebook,
		Brand:             "DELL",
		AssetTag:          &tag,
		PrimaryID:         &serial,
		Status:            models.AssetStatusInStock,
		PhysicalCondition: models.AssetConditionGood,
		Color:             "Preto",
		Details:           "Latitude 5420",
		Value:             decimal.NewFromFloat(4500.00),
		CurrentOwnerType:  models.CustodianStock,
		CurrentOwnerID:    "TI_STOCK",
		CurrentOwnerName:  "Estoque TI",
		Region:            models.RegionGO,
		Revision:          1,
	}
}

// WithPrimaryID sets a custom serial number for the asset
func (f *AssetFactory) WithPrimaryID(primaryID string) *models.Asset {
	asset := f.Create()
	asset.PrimaryID = &primaryID
	return asset
}

// HeldBy creates an in-use asset held by the given custodian
func (f *AssetFactory) HeldBy(ref models.CustodianRef) *models.Asset {
	asset := f.Create()
	asset.AssignTo(ref)
	asset.Status = models.AssetStatusInUse
	return asset
}

// MovementFactory provides methods to create test Movement data
type MovementFactory struct{}

// NewMovementFactory creates a new MovementFactory
func NewMovementFactory() *MovementFactory {
	return &MovementFactory{}
}

// Create creates a stock to employee movement for the given asset
func (f *MovementFactory) Create(assetID string) *models.Movement {
	return &models.Movement{
		ID:            uuid.NewString(),
		AssetID:       assetID,
		Date:          time.Now(),
		FromOwnerType: models.CustodianStock,
		FromOwnerID:   "TI_STOCK",
		FromOwnerName: "Estoque TI",
		ToOwnerType:   models.CustodianEmployee,
		ToOwnerID:     "E001",
		ToOwnerName:   "Fulano de Tal",
		Reason:        "Entrega",
		RegisteredBy:  "tester",
	}
}

// ImportRunFactory provides methods to create test ImportRun data
type ImportRunFactory struct{}

// NewImportRunFactory creates a new ImportRunFactory
func NewImportRunFactory() *ImportRunFactory {
	return &ImportRunFactory{}
}

// Create creates a pending, empty import run
func (f *ImportRunFactory) Create() *models.ImportRun {
	return &models.ImportRun{
		BaseModel: models.BaseModel{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		FileName:  "inventario.xlsx",
		Status:    models.ImportStatusPending,
		Rows:      []byte(`[]`),
		Rejected:  []byte(`[]`),
		CreatedBy: "tester",
	}
}

// FactorySet provides access to all factories
type FactorySet struct {
	Team      *TeamFactory
	Employee  *EmployeeFactory
	Role      *RoleFactory
	Asset     *AssetFactory
	Movement  *MovementFactory
	ImportRun *ImportRunFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Team:      NewTeamFactory(),
		Employee:  NewEmployeeFactory(),
		Role:      NewRoleFactory(),
		Asset:     NewAssetFactory(),
		Movement:  NewMovementFactory(),
		ImportRun: NewImportRunFactory(),
	}
}

// CreateStaffedTeam builds a team with one member, one open position and an asset held by the team.
// Nothing is persisted.
func (fs *FactorySet) CreateStaffedTeam() (*models.Team, *models.Employee, *models.Role, *models.Asset) {
	team := fs.Team.Create()
	employee := fs.Employee.WithTeam(team.ID)
	role := fs.Role.WithTeam(team.ID)
	asset := fs.Asset.HeldBy(models.CustodianRef{
		Kind: models.CustodianTeam,
		ID:   team.ID,
		Name: team.Name,
	})
	return team, employee, role, asset
}
