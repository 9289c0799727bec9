package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"asset-management-backend/internal/api/handlers"
	"asset-management-backend/internal/api/middleware"
	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"
	"asset-management-backend/internal/logger"
	"asset-management-backend/internal/mocks"
	"asset-management-backend/internal/service"
	"asset-management-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// MovementHandlerTestSuite defines the test suite for MovementHandler
type MovementHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockMovementServiceInterface
	handler     *handlers.MovementHandler
	httpSuite   *testutils.HTTPTestSuite
}

func (suite *MovementHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockMovementServiceInterface(suite.ctrl)
	suite.handler = handlers.NewMovementHandler(suite.mockService)

	suite.httpSuite = testutils.SetupHTTPTest()
	suite.httpSuite.Router.Use(middleware.Actor())
	v1 := suite.httpSuite.Router.Group("/api/v1")
	v1.POST("/movements", suite.handler.ExecuteMovement)
	v1.GET("/movements", suite.handler.ListMovements)
}

func (suite *MovementHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func movementBody() map[string]interface{} {
	return map[string]interface{}{
		"asset_ids":   []string{"A001", "A002"},
		"destination": map[string]interface{}{"kind": "FUNCIONÁRIO", "id": "E004"},
		"reason":      "Entrega de equipamento",
	}
}

func (suite *MovementHandlerTestSuite) TestExecuteMovement_Success() {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	suite.mockService.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *service.ExecuteMovementRequest) (*service.MovementResult, error) {
			assert.Equal(suite.T(), "admin", logger.ActorFromContext(ctx))
			assert.Equal(suite.T(), []string{"A001", "A002"}, req.AssetIDs)
			assert.Equal(suite.T(), models.CustodianEmployee, req.Destination.Kind)
			assert.Equal(suite.T(), "E004", req.Destination.ID)
			return &service.MovementResult{
				Movements: []service.MovementResponse{
					{ID: "M100", AssetID: "A001", Date: now, FromOwnerType: "ESTOQUE", ToOwnerType: "FUNCIONÁRIO", ToOwnerID: "E004"},
					{ID: "M101", AssetID: "A002", Date: now, FromOwnerType: "ESTOQUE", ToOwnerType: "FUNCIONÁRIO", ToOwnerID: "E004"},
				},
				Assets: []service.AssetResponse{
					{ID: "A001", Status: "EM USO", CurrentOwnerID: "E004"},
					{ID: "A002", Status: "EM USO", CurrentOwnerID: "E004"},
				},
			}, nil
		})

	recorder := suite.httpSuite.MakeRequestWithHeaders(http.MethodPost, "/api/v1/movements", movementBody(),
		map[string]string{middleware.ActorHeader: "admin"})

	var result service.MovementResult
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &result)
	require.Len(suite.T(), result.Movements, 2)
	assert.Equal(suite.T(), "E004", result.Assets[1].CurrentOwnerID)
}

func (suite *MovementHandlerTestSuite) TestExecuteMovement_ErrorMapping() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"Empty list", apperrors.ErrEmptyAssetList, http.StatusBadRequest},
		{"Missing asset", apperrors.ErrAssetNotFound, http.StatusNotFound},
		{"Unresolved destination", apperrors.NewUnresolvedCustodianError("FUNCIONÁRIO", "E404", "employee not found"), http.StatusUnprocessableEntity},
		{"Stale revision", apperrors.ErrStaleRevision, http.StatusConflict},
		{"Store failure", apperrors.NewPersistenceError("apply movement", assert.AnError), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockService.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/movements", movementBody())

			assert.Equal(suite.T(), tt.status, recorder.Code)
		})
	}
}

func (suite *MovementHandlerTestSuite) TestExecuteMovement_ValidationReportsField() {
	suite.mockService.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.NewValidationError("destination.kind", "unknown custodian kind \"X\""))

	recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/movements", movementBody())

	var response handlers.ErrorResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusBadRequest, &response)
	assert.Equal(suite.T(), "destination.kind", response.Field)
}

func (suite *MovementHandlerTestSuite) TestExecuteMovement_PersistenceDetailsHidden() {
	suite.mockService.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.NewPersistenceError("apply movement", assert.AnError))

	recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/movements", movementBody())

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusInternalServerError, "Internal server error")
	assert.NotContains(suite.T(), recorder.Body.String(), assert.AnError.Error())
}

func (suite *MovementHandlerTestSuite) TestExecuteMovement_InvalidJSON() {
	recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/movements", "not an object")

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
}

func (suite *MovementHandlerTestSuite) TestListMovements_Paginated() {
	suite.mockService.EXPECT().List(gomock.Any(), 2, 50).
		Return(&service.MovementListResponse{Movements: []service.MovementResponse{{ID: "M003"}}, Total: 51, Page: 2, PageSize: 50}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/movements?page=2&page_size=50", nil)

	var response service.MovementListResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	assert.Equal(suite.T(), int64(51), response.Total)
	assert.Equal(suite.T(), "M003", response.Movements[0].ID)
}

func (suite *MovementHandlerTestSuite) TestListMovements_ByAsset() {
	suite.mockService.EXPECT().ListByAsset(gomock.Any(), "A001").
		Return([]service.MovementResponse{{ID: "M002", AssetID: "A001"}, {ID: "M001", AssetID: "A001"}}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/movements?asset_id=A001", nil)

	var response service.MovementListResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	assert.Equal(suite.T(), int64(2), response.Total)
	assert.Equal(suite.T(), "M002", response.Movements[0].ID)
}

func (suite *MovementHandlerTestSuite) TestListMovements_BadPageFallsBack() {
	suite.mockService.EXPECT().List(gomock.Any(), 1, 20).Return(&service.MovementListResponse{}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/movements?page=abc&page_size=xyz", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
}

func TestMovementHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(MovementHandlerTestSuite))
}
