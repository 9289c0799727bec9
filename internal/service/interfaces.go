package service

import (
	"context"
	"io"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// Notifier tells connected clients which collections changed so they refetch
type Notifier interface {
	Publish(collections ...string)
}

// Collections named in refresh notifications
const (
	CollectionAssets    = "assets"
	CollectionMovements = "movements"
	CollectionEmployees = "employees"
	CollectionTeams     = "teams"
	CollectionRoles     = "roles"
	CollectionImports   = "imports"
)

// MovementServiceInterface defines the interface for the movement engine
type MovementServiceInterface interface {
	Execute(ctx context.Context, req *ExecuteMovementRequest) (*MovementResult, error)
	List(ctx context.Context, page, pageSize int) (*MovementListResponse, error)
	ListByAsset(ctx context.Context, assetID string) ([]MovementResponse, error)
}

// ImportServiceInterface defines the interface for spreadsheet import reconciliation
type ImportServiceInterface interface {
	Analyze(ctx context.Context, fileName string, r io.Reader, actor string) (*ImportPlanResponse, error)
	Commit(ctx context.Context, runID string, actor string) (*ImportPlanResponse, error)
	Get(ctx context.Context, runID string) (*ImportPlanResponse, error)
	List(ctx context.Context, page, pageSize int) (*ImportRunListResponse, error)
}

// AssetServiceInterface defines the interface for asset service
type AssetServiceInterface interface {
	Create(ctx context.Context, req *CreateAssetRequest) (*AssetResponse, error)
	GetByID(ctx context.Context, id string) (*AssetResponse, error)
	List(ctx context.Context, query *AssetListQuery) (*AssetListResponse, error)
	Update(ctx context.Context, id string, req *UpdateAssetRequest) (*AssetResponse, error)
	Delete(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]MovementResponse, error)
	Summary(ctx context.Context) (*AssetSummaryResponse, error)
}

// EmployeeServiceInterface defines the interface for employee service
type EmployeeServiceInterface interface {
	Create(ctx context.Context, req *CreateEmployeeRequest) (*EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (*EmployeeResponse, error)
	List(ctx context.Context, query *EmployeeListQuery) (*EmployeeListResponse, error)
	Update(ctx context.Context, id string, req *UpdateEmployeeRequest) (*EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

// TeamServiceInterface defines the interface for team service
type TeamServiceInterface interface {
	Create(ctx context.Context, req *CreateTeamRequest) (*TeamResponse, error)
	GetByID(ctx context.Context, id string) (*TeamResponse, error)
	List(ctx context.Context, region string, page, pageSize int) (*TeamListResponse, error)
	Update(ctx context.Context, id string, req *UpdateTeamRequest) (*TeamResponse, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, teamID, employeeID string) (*EmployeeResponse, error)
	RemoveMember(ctx context.Context, teamID, employeeID string) error
	Details(ctx context.Context, id string) (*TeamDetailsResponse, error)
}

// RoleServiceInterface defines the interface for role service
type RoleServiceInterface interface {
	Create(ctx context.Context, req *CreateRoleRequest) (*RoleResponse, error)
	GetByID(ctx context.Context, id string) (*RoleResponse, error)
	List(ctx context.Context, query *RoleListQuery) (*RoleListResponse, error)
	Update(ctx context.Context, id string, req *UpdateRoleRequest) (*RoleResponse, error)
	Delete(ctx context.Context, id string) error
}
