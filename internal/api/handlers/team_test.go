package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"asset-management-backend/internal/api/handlers"
	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"
	"asset-management-backend/internal/mocks"
	"asset-management-backend/internal/service"
	"asset-management-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// TeamHandlerTestSuite defines the test suite for TeamHandler
type TeamHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockTeamServiceInterface
	handler     *handlers.TeamHandler
	httpSuite   *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *TeamHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockTeamServiceInterface(suite.ctrl)
	suite.handler = handlers.NewTeamHandler(suite.mockService)

	suite.httpSuite = testutils.SetupHTTPTest()
	teams := suite.httpSuite.Router.Group("/api/v1/teams")
	{
		teams.POST("", suite.handler.CreateTeam)
		teams.GET("", suite.handler.ListTeams)
		teams.GET("/:id", suite.handler.GetTeam)
		teams.PUT("/:id", suite.handler.UpdateTeam)
		teams.DELETE("/:id", suite.handler.DeleteTeam)
		teams.GET("/:id/details", suite.handler.GetTeamDetails)
		teams.POST("/:id/members", suite.handler.AddMember)
		teams.DELETE("/:id/members/:employeeId", suite.handler.RemoveMember)
	}
}

// TearDownTest cleans up after each test
func (suite *TeamHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *TeamHandlerTestSuite) TestCreateTeam() {
	suite.Run("Success", func() {
		leader := "E001"
		suite.mockService.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *service.CreateTeamRequest) (*service.TeamResponse, error) {
				assert.Equal(suite.T(), "Vendas GO", req.Name)
				assert.Equal(suite.T(), models.RegionGO, req.Region)
				return &service.TeamResponse{ID: "T001", Name: req.Name, Region: "GO", Channel: "CV", LeaderID: &leader}, nil
			})

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/teams", map[string]interface{}{
			"name":      "Vendas GO",
			"region":    "GO",
			"channel":   "CV",
			"leader_id": "E001",
		})

		var response service.TeamResponse
		testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &response)
		assert.Equal(suite.T(), "T001", response.ID)
		assert.Equal(suite.T(), "E001", *response.LeaderID)
	})

	suite.Run("Leader not found", func() {
		suite.mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrLeaderNotFound)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/teams", map[string]interface{}{"name": "Vendas GO"})

		testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "leader not found")
	})

	suite.Run("Duplicate name", func() {
		suite.mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrTeamExists)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/teams", map[string]interface{}{"name": "Vendas GO"})

		assert.Equal(suite.T(), http.StatusConflict, recorder.Code)
	})
}

func (suite *TeamHandlerTestSuite) TestListTeams_RegionFilter() {
	suite.mockService.EXPECT().List(gomock.Any(), "TO", 1, 20).
		Return(&service.TeamListResponse{Teams: []service.TeamResponse{{ID: "T002", Region: "TO"}}, Total: 1, Page: 1, PageSize: 20}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/teams?region=TO", nil)

	var response service.TeamListResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	require.Len(suite.T(), response.Teams, 1)
	assert.Equal(suite.T(), "T002", response.Teams[0].ID)
}

func (suite *TeamHandlerTestSuite) TestUpdateTeam_ClearsLeader() {
	suite.mockService.EXPECT().Update(gomock.Any(), "T001", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req *service.UpdateTeamRequest) (*service.TeamResponse, error) {
			require.NotNil(suite.T(), req.LeaderID)
			assert.Empty(suite.T(), *req.LeaderID)
			return &service.TeamResponse{ID: "T001", Name: "Vendas GO"}, nil
		})

	recorder := suite.httpSuite.MakeRequest(http.MethodPut, "/api/v1/teams/T001", map[string]interface{}{"leader_id": ""})

	var response service.TeamResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	assert.Nil(suite.T(), response.LeaderID)
}

func (suite *TeamHandlerTestSuite) TestDeleteTeam_NotFound() {
	suite.mockService.EXPECT().Delete(gomock.Any(), "T404").Return(apperrors.ErrTeamNotFound)

	recorder := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/teams/T404", nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "team not found")
}

func (suite *TeamHandlerTestSuite) TestGetTeamDetails() {
	suite.mockService.EXPECT().Details(gomock.Any(), "T001").Return(&service.TeamDetailsResponse{
		Team: service.TeamResponse{ID: "T001", Name: "Vendas GO"},
		Leader: &service.TeamHolderResponse{
			Employee: &service.EmployeeResponse{ID: "E001", Name: "Ana Souza"},
			Assets:   []service.AssetResponse{{ID: "A003"}},
		},
		Members:    []service.TeamHolderResponse{{Employee: &service.EmployeeResponse{ID: "E002"}, Assets: []service.AssetResponse{}}},
		Roles:      []service.TeamHolderResponse{},
		TeamAssets: []service.AssetResponse{{ID: "A005"}},
	}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/teams/T001/details", nil)

	var details service.TeamDetailsResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &details)
	require.NotNil(suite.T(), details.Leader)
	assert.Equal(suite.T(), "E001", details.Leader.Employee.ID)
	assert.Equal(suite.T(), "A003", details.Leader.Assets[0].ID)
	require.Len(suite.T(), details.Members, 1)
	assert.Equal(suite.T(), "A005", details.TeamAssets[0].ID)
}

func (suite *TeamHandlerTestSuite) TestAddMember() {
	suite.Run("Success", func() {
		team := "T001"
		suite.mockService.EXPECT().AddMember(gomock.Any(), "T001", "E004").
			Return(&service.EmployeeResponse{ID: "E004", TeamID: &team}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/teams/T001/members", map[string]interface{}{"employee_id": "E004"})

		var response service.EmployeeResponse
		testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
		assert.Equal(suite.T(), "T001", *response.TeamID)
	})

	suite.Run("Missing employee id", func() {
		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/teams/T001/members", map[string]interface{}{})

		assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
	})

	suite.Run("Already a member", func() {
		suite.mockService.EXPECT().AddMember(gomock.Any(), "T001", "E002").Return(nil, apperrors.ErrTeamMemberExists)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/teams/T001/members", map[string]interface{}{"employee_id": "E002"})

		assert.Equal(suite.T(), http.StatusConflict, recorder.Code)
	})
}

func (suite *TeamHandlerTestSuite) TestRemoveMember() {
	suite.Run("Success", func() {
		suite.mockService.EXPECT().RemoveMember(gomock.Any(), "T001", "E002").Return(nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/teams/T001/members/E002", nil)

		assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
	})

	suite.Run("Not a member", func() {
		suite.mockService.EXPECT().RemoveMember(gomock.Any(), "T001", "E006").Return(apperrors.ErrMemberNotInTeam)

		recorder := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/teams/T001/members/E006", nil)

		testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "not a member")
	})
}

func TestTeamHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TeamHandlerTestSuite))
}
