package handlers_test

import (
	"context"
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

// EmployeeHandlerTestSuite defines the test suite for EmployeeHandler
type EmployeeHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockEmployeeServiceInterface
	handler     *handlers.EmployeeHandler
	httpSuite   *testutils.HTTPTestSuite
}

func (suite *EmployeeHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockEmployeeServiceInterface(suite.ctrl)
	suite.handler = handlers.NewEmployeeHandler(suite.mockService)

	suite.httpSuite = testutils.SetupHTTPTest()
	employees := suite.httpSuite.Router.Group("/api/v1/employees")
	{
		employees.GET("", suite.handler.ListEmployees)
		employees.POST("", suite.handler.CreateEmployee)
		employees.GET("/:id", suite.handler.GetEmployee)
		employees.PUT("/:id", suite.handler.UpdateEmployee)
		employees.DELETE("/:id", suite.handler.DeleteEmployee)
	}
}

func (suite *EmployeeHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *EmployeeHandlerTestSuite) TestCreateEmployee() {
	suite.Run("Success", func() {
		suite.mockService.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *service.CreateEmployeeRequest) (*service.EmployeeResponse, error) {
				assert.Equal(suite.T(), "E004", req.ID)
				assert.Nil(suite.T(), req.Active)
				return &service.EmployeeResponse{ID: "E004", Name: "João Paulo", Region: "TO", Active: true}, nil
			})

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/employees", map[string]interface{}{
			"id":     "E004",
			"name":   "João Paulo",
			"region": "TO",
		})

		var response service.EmployeeResponse
		testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &response)
		assert.True(suite.T(), response.Active)
	})

	suite.Run("Unknown team", func() {
		suite.mockService.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewValidationError("team_id", "team T404 does not exist"))

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/employees", map[string]interface{}{"name": "Ana", "team_id": "T404"})

		var response handlers.ErrorResponse
		testutils.AssertJSONResponse(suite.T(), recorder, http.StatusBadRequest, &response)
		assert.Equal(suite.T(), "team_id", response.Field)
	})

	suite.Run("Existing id", func() {
		suite.mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrEmployeeExists)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/employees", map[string]interface{}{"id": "E001", "name": "Ana"})

		assert.Equal(suite.T(), http.StatusConflict, recorder.Code)
	})
}

func (suite *EmployeeHandlerTestSuite) TestListEmployees_ActiveFilter() {
	suite.mockService.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query *service.EmployeeListQuery) (*service.EmployeeListResponse, error) {
			require.NotNil(suite.T(), query.Active)
			assert.False(suite.T(), *query.Active)
			assert.Equal(suite.T(), "T001", query.TeamID)
			return &service.EmployeeListResponse{Employees: []service.EmployeeResponse{{ID: "E007"}}, Total: 1, Page: 1, PageSize: 20}, nil
		})

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/employees?active=false&team_id=T001", nil)

	var response service.EmployeeListResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	require.Len(suite.T(), response.Employees, 1)
	assert.Equal(suite.T(), "E007", response.Employees[0].ID)
}

func (suite *EmployeeHandlerTestSuite) TestGetEmployee_NotFound() {
	suite.mockService.EXPECT().GetByID(gomock.Any(), "E404").Return(nil, apperrors.ErrEmployeeNotFound)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/employees/E404", nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "employee not found")
}

func (suite *EmployeeHandlerTestSuite) TestUpdateEmployee() {
	suite.mockService.EXPECT().Update(gomock.Any(), "E002", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req *service.UpdateEmployeeRequest) (*service.EmployeeResponse, error) {
			require.NotNil(suite.T(), req.Active)
			return &service.EmployeeResponse{ID: "E002", Active: *req.Active}, nil
		})

	recorder := suite.httpSuite.MakeRequest(http.MethodPut, "/api/v1/employees/E002", map[string]interface{}{"active": false})

	var response service.EmployeeResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	assert.False(suite.T(), response.Active)
}

func (suite *EmployeeHandlerTestSuite) TestDeleteEmployee() {
	suite.mockService.EXPECT().Delete(gomock.Any(), "E007").Return(nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/employees/E007", nil)

	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
}

func TestEmployeeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeHandlerTestSuite))
}
