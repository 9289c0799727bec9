package service_test

import (
	"context"
	"errors"
	"testing"

	"asset-management-backend/internal/config"
	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"
	"asset-management-backend/internal/logger"
	"asset-management-backend/internal/mocks"
	"asset-management-backend/internal/repository"
	"asset-management-backend/internal/service"
	"asset-management-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type MovementServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockAssets    *mocks.MockAssetRepositoryInterface
	mockMovements *mocks.MockMovementRepositoryInterface
	mockEmployees *mocks.MockEmployeeRepositoryInterface
	mockTeams     *mocks.MockTeamRepositoryInterface
	mockRoles     *mocks.MockRoleRepositoryInterface
	mockNotifier  *mocks.MockNotifier
	cfg           *config.Config
	service       *service.MovementService
	ctx           context.Context
}

func (suite *MovementServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockAssets = mocks.NewMockAssetRepositoryInterface(suite.ctrl)
	suite.mockMovements = mocks.NewMockMovementRepositoryInterface(suite.ctrl)
	suite.mockEmployees = mocks.NewMockEmployeeRepositoryInterface(suite.ctrl)
	suite.mockTeams = mocks.NewMockTeamRepositoryInterface(suite.ctrl)
	suite.mockRoles = mocks.NewMockRoleRepositoryInterface(suite.ctrl)
	suite.mockNotifier = mocks.NewMockNotifier(suite.ctrl)
	suite.cfg = testutils.TestConfig()
	suite.service = service.NewMovementService(
		suite.mockAssets,
		suite.mockMovements,
		suite.mockEmployees,
		suite.mockTeams,
		suite.mockRoles,
		suite.cfg,
		validator.New(),
		suite.mockNotifier,
	)
	suite.ctx = logger.ContextWithActor(context.Background(), "admin")
}

func (suite *MovementServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *MovementServiceTestSuite) stockAsset(id string) models.Asset {
	asset := models.Asset{
		BaseModel:         models.BaseModel{ID: id},
		Type:              models.AssetTypeNotebook,
		Brand:             "DELL",
		Status:            models.AssetStatusInStock,
		PhysicalCondition: models.AssetConditionNew,
		Value:             decimal.NewFromInt(4500),
		Region:            models.RegionGO,
		Revision:          1,
	}
	asset.AssignTo(models.CustodianRef{Kind: models.CustodianStock, ID: "TI_STOCK", Name: "Estoque TI"})
	return asset
}

func (suite *MovementServiceTestSuite) expectRefresh() {
	suite.mockNotifier.EXPECT().Publish(service.CollectionAssets, service.CollectionMovements)
}

func (suite *MovementServiceTestSuite) TestExecute_ToEmployee_Success() {
	employee := &models.Employee{
		BaseModel: models.BaseModel{ID: "E004"},
		Name:      "João Paulo",
		Region:    models.RegionTO,
		Active:    true,
	}
	asset := suite.stockAsset("A001")

	suite.mockEmployees.EXPECT().GetByID(gomock.Any(), "E004").Return(employee, nil)
	suite.mockAssets.EXPECT().GetByIDs(gomock.Any(), []string{"A001"}).Return([]models.Asset{asset}, nil)

	var recorded []models.Movement
	var applied []repository.CustodyUpdate
	suite.mockMovements.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, movements []models.Movement, updates []repository.CustodyUpdate) error {
			recorded = movements
			applied = updates
			return nil
		})
	suite.expectRefresh()

	result, err := suite.service.Execute(suite.ctx, &service.ExecuteMovementRequest{
		AssetIDs:    []string{"A001"},
		Destination: service.DestinationRequest{Kind: models.CustodianEmployee, ID: "E004"},
		Reason:      "Entrega",
	})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), recorded, 1)
	assert.Equal(suite.T(), models.CustodianStock, recorded[0].FromOwnerType)
	assert.Equal(suite.T(), "TI_STOCK", recorded[0].FromOwnerID)
	assert.Equal(suite.T(), "Estoque TI", recorded[0].FromOwnerName)
	assert.Equal(suite.T(), models.CustodianEmployee, recorded[0].ToOwnerType)
	assert.Equal(suite.T(), "E004", recorded[0].ToOwnerID)
	assert.Equal(suite.T(), "João Paulo", recorded[0].ToOwnerName)
	assert.Equal(suite.T(), "Entrega", recorded[0].Reason)
	assert.Equal(suite.T(), "admin", recorded[0].RegisteredBy)

	require.Len(suite.T(), applied, 1)
	assert.Equal(suite.T(), int64(1), applied[0].ExpectedRevision)
	assert.Equal(suite.T(), models.AssetStatusInUse, applied[0].Status)
	require.NotNil(suite.T(), applied[0].Region)
	assert.Equal(suite.T(), models.RegionTO, *applied[0].Region)

	require.Len(suite.T(), result.Assets, 1)
	assert.Equal(suite.T(), "EM USO", result.Assets[0].Status)
	assert.Equal(suite.T(), "E004", result.Assets[0].CurrentOwnerID)
	assert.Equal(suite.T(), "João Paulo", result.Assets[0].CurrentOwnerName)
	assert.Equal(suite.T(), "TO", result.Assets[0].Region)
	assert.Equal(suite.T(), int64(2), result.Assets[0].Revision)
	require.Len(suite.T(), result.Movements, 1)
	assert.Equal(suite.T(), result.Movements[0].Date, result.Assets[0].UpdatedAt)
}

func (suite *MovementServiceTestSuite) TestExecute_BatchSharesOneTimestamp() {
	role := &models.Role{BaseModel: models.BaseModel{ID: "R001"}, Code: "VEND-GO-01", Region: models.RegionGO}
	first, second := suite.stockAsset("A001"), suite.stockAsset("A002")

	suite.mockRoles.EXPECT().GetByID(gomock.Any(), "R001").Return(role, nil)
	suite.mockAssets.EXPECT().GetByIDs(gomock.Any(), []string{"A002", "A001"}).Return([]models.Asset{first, second}, nil)

	var recorded []models.Movement
	var applied []repository.CustodyUpdate
	suite.mockMovements.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, movements []models.Movement, updates []repository.CustodyUpdate) error {
			recorded = movements
			applied = updates
			return nil
		})
	suite.expectRefresh()

	result, err := suite.service.Execute(suite.ctx, &service.ExecuteMovementRequest{
		AssetIDs:    []string{"A002", "A001"},
		Destination: service.DestinationRequest{Kind: models.CustodianRole, ID: "R001"},
		Reason:      "Reserva para vaga",
	})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), recorded, 2)
	assert.Equal(suite.T(), "A002", recorded[0].AssetID)
	assert.Equal(suite.T(), "A001", recorded[1].AssetID)
	assert.True(suite.T(), recorded[0].Date.Equal(recorded[1].Date))
	assert.Equal(suite.T(), "VEND-GO-01", recorded[0].ToOwnerName)
	for _, u := range applied {
		assert.Nil(suite.T(), u.Region, "positions do not change the asset region")
		assert.Equal(suite.T(), models.AssetStatusInUse, u.Status)
	}
	assert.Len(suite.T(), result.Assets, 2)
}

func (suite *MovementServiceTestSuite) TestExecute_EmptyAssetList() {
	result, err := suite.service.Execute(suite.ctx, &service.ExecuteMovementRequest{
		Destination: service.DestinationRequest{Kind: models.CustodianStock},
		Reason:      "Devolução",
	})

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrEmptyAssetList)
}

func (suite *MovementServiceTestSuite) TestExecute_ValidationFailures() {
	inUse := models.AssetStatusInUse
	bogus := models.AssetStatus("QUEBRADO")

	testCases := []struct {
		name  string
		req   *service.ExecuteMovementRequest
		ctx   context.Context
		field string
	}{
		{
			name: "Missing reason",
			req: &service.ExecuteMovementRequest{
				AssetIDs:    []string{"A001"},
				Destination: service.DestinationRequest{Kind: models.CustodianStock},
				Reason:      "   ",
			},
			ctx:   suite.ctx,
			field: "Reason",
		},
		{
			name: "Missing actor",
			req: &service.ExecuteMovementRequest{
				AssetIDs:    []string{"A001"},
				Destination: service.DestinationRequest{Kind: models.CustodianStock},
				Reason:      "Devolução",
			},
			ctx:   context.Background(),
			field: "registered_by",
		},
		{
			name: "Unknown kind",
			req: &service.ExecuteMovementRequest{
				AssetIDs:    []string{"A001"},
				Destination: service.DestinationRequest{Kind: "FORNECEDOR"},
				Reason:      "Devolução",
			},
			ctx:   suite.ctx,
			field: "destination.kind",
		},
		{
			name: "Unknown status override",
			req: &service.ExecuteMovementRequest{
				AssetIDs:    []string{"A001"},
				Destination: service.DestinationRequest{Kind: models.CustodianStock},
				Status:      &bogus,
				Reason:      "Devolução",
			},
			ctx:   suite.ctx,
			field: "status",
		},
		{
			name: "Duplicate asset",
			req: &service.ExecuteMovementRequest{
				AssetIDs:    []string{"A001", "A001"},
				Destination: service.DestinationRequest{Kind: models.CustodianStock},
				Status:      &inUse,
				Reason:      "Devolução",
			},
			ctx:   suite.ctx,
			field: "asset_ids",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			result, err := suite.service.Execute(tc.ctx, tc.req)

			assert.Nil(suite.T(), result)
			var verr *apperrors.ValidationError
			require.ErrorAs(suite.T(), err, &verr)
			assert.Equal(suite.T(), tc.field, verr.Field)
		})
	}
}

func (suite *MovementServiceTestSuite) TestExecute_InactiveEmployeeIsUnresolved() {
	employee := &models.Employee{BaseModel: models.BaseModel{ID: "E007"}, Name: "Ex Colaborador", Region: models.RegionGO, Active: false}
	suite.mockEmployees.EXPECT().GetByID(gomock.Any(), "E007").Return(employee, nil)
	suite.expectRefresh()

	result, err := suite.service.Execute(suite.ctx, &service.ExecuteMovementRequest{
		AssetIDs:    []string{"A001"},
		Destination: service.DestinationRequest{Kind: models.CustodianEmployee, ID: "E007"},
		Reason:      "Entrega",
	})

	assert.Nil(suite.T(), result)
	assert.True(suite.T(), apperrors.IsUnresolvedCustodian(err))
	assert.Contains(suite.T(), err.Error(), "inactive")
}

func (suite *MovementServiceTestSuite) TestExecute_UnknownEmployeeIsUnresolved() {
	suite.mockEmployees.EXPECT().GetByID(gomock.Any(), "E999").Return(nil, gorm.ErrRecordNotFound)
	suite.expectRefresh()

	_, err := suite.service.Execute(suite.ctx, &service.ExecuteMovementRequest{
		AssetIDs:    []string{"A001"},
		Destination: service.DestinationRequest{Kind: models.CustodianEmployee, ID: "E999"},
		Reason:      "Entrega",
	})

	assert.True(suite.T(), apperrors.IsUnresolvedCustodian(err))
}

func (suite *MovementServiceTestSuite) TestExecute_UnknownStockIsUnresolved() {
	suite.expectRefresh()

	_, err := suite.service.Execute(suite.ctx, &service.ExecuteMovementRequest{
		AssetIDs:    []string{"A001"},
		Destination: service.DestinationRequest{Kind: models.CustodianStock, ID: "OTHER_STOCK"},
		Reason:      "Devolução",
	})

	assert.True(suite.T(), apperrors.IsUnresolvedCustodian(err))
}

func (suite *MovementServiceTestSuite) TestExecute_MissingAsset() {
	suite.mockTeams.EXPECT().GetByID(gomock.Any(), "T001").Return(&models.Team{BaseModel: models.BaseModel{ID: "T001"}, Name: "EQUIPE CV"}, nil)
	suite.mockAssets.EXPECT().GetByIDs(gomock.Any(), []string{"A001", "A404"}).Return([]models.Asset{suite.stockAsset("A001")}, nil)
	suite.expectRefresh()

	_, err := suite.service.Execute(suite.ctx, &service.ExecuteMovementRequest{
		AssetIDs:    []string{"A001", "A404"},
		Destination: service.DestinationRequest{Kind: models.CustodianTeam, ID: "T001"},
		Reason:      "Uso compartilhado",
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrAssetNotFound)
	assert.Contains(suite.T(), err.Error(), "A404")
}

func (suite *MovementServiceTestSuite) TestExecute_MaintenanceDefaultsAndOverride() {
	lost := models.AssetStatusLost
	suite.mockAssets.EXPECT().GetByIDs(gomock.Any(), []string{"A001"}).Return([]models.Asset{suite.stockAsset("A001")}, nil)

	var applied []repository.CustodyUpdate
	suite.mockMovements.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []models.Movement, updates []repository.CustodyUpdate) error {
			applied = updates
			return nil
		})
	suite.expectRefresh()

	_, err := suite.service.Execute(suite.ctx, &service.ExecuteMovementRequest{
		AssetIDs:    []string{"A001"},
		Destination: service.DestinationRequest{Kind: models.CustodianMaintenance},
		Status:      &lost,
		Reason:      "Extraviado no transporte",
	})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), applied, 1)
	assert.Equal(suite.T(), models.AssetStatusLost, applied[0].Status)
	assert.Equal(suite.T(), "EXT_TECH", applied[0].Custodian.ID)
	assert.Equal(suite.T(), "Assistência Técnica", applied[0].Custodian.Name)
}

func (suite *MovementServiceTestSuite) TestExecute_StaleRevision() {
	suite.mockAssets.EXPECT().GetByIDs(gomock.Any(), []string{"A001"}).Return([]models.Asset{suite.stockAsset("A001")}, nil)
	suite.mockMovements.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(apperrors.ErrStaleRevision)
	suite.expectRefresh()

	_, err := suite.service.Execute(suite.ctx, &service.ExecuteMovementRequest{
		AssetIDs:    []string{"A001"},
		Destination: service.DestinationRequest{Kind: models.CustodianMaintenance, Label: "Oficina Central"},
		Reason:      "Tela quebrada",
	})

	assert.True(suite.T(), apperrors.IsConflict(err))
}

func (suite *MovementServiceTestSuite) TestExecute_PersistenceFailure() {
	suite.mockAssets.EXPECT().GetByIDs(gomock.Any(), []string{"A001"}).Return([]models.Asset{suite.stockAsset("A001")}, nil)
	suite.mockMovements.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))
	suite.expectRefresh()

	result, err := suite.service.Execute(suite.ctx, &service.ExecuteMovementRequest{
		AssetIDs:    []string{"A001"},
		Destination: service.DestinationRequest{Kind: models.CustodianStock},
		Reason:      "Devolução",
	})

	assert.Nil(suite.T(), result)
	assert.True(suite.T(), apperrors.IsPersistence(err))
}

func (suite *MovementServiceTestSuite) TestList_ClampsPagination() {
	suite.mockMovements.EXPECT().List(gomock.Any(), 100, 0).Return([]models.Movement{}, int64(0), nil)

	resp, err := suite.service.List(suite.ctx, 0, 500)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, resp.Page)
	assert.Equal(suite.T(), 100, resp.PageSize)
	assert.Empty(suite.T(), resp.Movements)
}

func (suite *MovementServiceTestSuite) TestListByAsset() {
	suite.mockMovements.EXPECT().GetByAssetID(gomock.Any(), "A001").Return([]models.Movement{
		{ID: "M002", AssetID: "A001", ToOwnerType: models.CustodianStock},
		{ID: "M001", AssetID: "A001", ToOwnerType: models.CustodianEmployee},
	}, nil)

	history, err := suite.service.ListByAsset(suite.ctx, "A001")

	require.NoError(suite.T(), err)
	require.Len(suite.T(), history, 2)
	assert.Equal(suite.T(), "M002", history[0].ID)
	assert.Equal(suite.T(), "ESTOQUE", history[0].ToOwnerType)
}

func TestEffectiveStatus(t *testing.T) {
	decommissioned := models.AssetStatusDecommissioned

	tests := []struct {
		name     string
		kind     models.CustodianKind
		override *models.AssetStatus
		expected models.AssetStatus
	}{
		{"Employee", models.CustodianEmployee, nil, models.AssetStatusInUse},
		{"Role", models.CustodianRole, nil, models.AssetStatusInUse},
		{"Team", models.CustodianTeam, nil, models.AssetStatusInUse},
		{"Stock", models.CustodianStock, nil, models.AssetStatusInStock},
		{"Maintenance", models.CustodianMaintenance, nil, models.AssetStatusInMaintenance},
		{"Override wins", models.CustodianStock, &decommissioned, models.AssetStatusDecommissioned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.EffectiveStatus(tt.kind, tt.override))
		})
	}
}

func TestMovementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MovementServiceTestSuite))
}
