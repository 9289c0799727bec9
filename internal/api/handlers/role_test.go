package handlers_test

import (
	"net/http"
	"testing"

	"asset-management-backend/internal/api/handlers"
	apperrors "asset-management-backend/internal/errors"
	"asset-management-backend/internal/mocks"
	"asset-management-backend/internal/service"
	"asset-management-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// RoleHandlerTestSuite defines the test suite for RoleHandler
type RoleHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockRoleServiceInterface
	handler     *handlers.RoleHandler
	httpSuite   *testutils.HTTPTestSuite
}

func (suite *RoleHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockRoleServiceInterface(suite.ctrl)
	suite.handler = handlers.NewRoleHandler(suite.mockService)

	suite.httpSuite = testutils.SetupHTTPTest()
	roles := suite.httpSuite.Router.Group("/api/v1/roles")
	{
		roles.GET("", suite.handler.ListRoles)
		roles.POST("", suite.handler.CreateRole)
		roles.GET("/:id", suite.handler.GetRole)
		roles.PUT("/:id", suite.handler.UpdateRole)
		roles.DELETE("/:id", suite.handler.DeleteRole)
	}
}

func (suite *RoleHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *RoleHandlerTestSuite) TestCreateRole() {
	suite.Run("Success", func() {
		suite.mockService.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&service.RoleResponse{ID: "R003", Code: "VEND-GO-02", Region: "GO", Status: "VAGA_ABERTA"}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/roles", map[string]interface{}{"code": "VEND-GO-02", "region": "GO"})

		var response service.RoleResponse
		testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &response)
		assert.Equal(suite.T(), "VAGA_ABERTA", response.Status)
	})

	suite.Run("Duplicate code", func() {
		suite.mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrRoleExists)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/roles", map[string]interface{}{"code": "VEND-GO-01", "region": "GO"})

		testutils.AssertErrorResponse(suite.T(), recorder, http.StatusConflict, "role already exists")
	})
}

func (suite *RoleHandlerTestSuite) TestListRoles_BindsFilters() {
	suite.mockService.EXPECT().List(gomock.Any(), &service.RoleListQuery{Region: "GO", Status: "VAGA_ABERTA"}).
		Return(&service.RoleListResponse{Roles: []service.RoleResponse{{ID: "R001"}}, Total: 1, Page: 1, PageSize: 20}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/roles?region=GO&status=VAGA_ABERTA", nil)

	var response service.RoleListResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	require.Len(suite.T(), response.Roles, 1)
}

func (suite *RoleHandlerTestSuite) TestUpdateRole_NotFound() {
	suite.mockService.EXPECT().Update(gomock.Any(), "R404", gomock.Any()).Return(nil, apperrors.ErrRoleNotFound)

	recorder := suite.httpSuite.MakeRequest(http.MethodPut, "/api/v1/roles/R404", map[string]interface{}{"status": "ATIVA"})

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "role not found")
}

func (suite *RoleHandlerTestSuite) TestGetAndDeleteRole() {
	suite.mockService.EXPECT().GetByID(gomock.Any(), "R001").Return(&service.RoleResponse{ID: "R001", Code: "VEND-GO-01"}, nil)
	suite.mockService.EXPECT().Delete(gomock.Any(), "R001").Return(nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/roles/R001", nil)
	var response service.RoleResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	assert.Equal(suite.T(), "VEND-GO-01", response.Code)

	recorder = suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/roles/R001", nil)
	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
}

func TestRoleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RoleHandlerTestSuite))
}
