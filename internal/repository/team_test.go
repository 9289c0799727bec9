//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"

	"asset-management-backend/internal/database/models"
	"asset-management-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TeamRepositoryTestSuite tests the TeamRepository
type TeamRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TeamRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *TeamRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewTeamRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *TeamRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *TeamRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *TeamRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a new team
func (suite *TeamRepositoryTestSuite) TestCreate() {
	team := suite.factories.Team.Create()
	team.ID = ""

	err := suite.repo.Create(suite.ctx, team)

	suite.NoError(err)
	suite.NotEmpty(team.ID)
	suite.NotZero(team.CreatedAt)
	suite.NotZero(team.UpdatedAt)
}

// TestGetByID tests retrieving a team by ID
func (suite *TeamRepositoryTestSuite) TestGetByID() {
	team := suite.factories.Team.WithName("EQUIPE CV - GO")
	suite.Require().NoError(suite.repo.Create(suite.ctx, team))

	retrieved, err := suite.repo.GetByID(suite.ctx, team.ID)

	suite.NoError(err)
	suite.Equal(team.Name, retrieved.Name)
	suite.Equal(models.RegionGO, retrieved.Region)
	suite.Equal(models.ChannelCV, retrieved.Channel)
}

// TestGetByIDNotFound tests retrieving a non-existent team
func (suite *TeamRepositoryTestSuite) TestGetByIDNotFound() {
	team, err := suite.repo.GetByID(suite.ctx, uuid.NewString())

	suite.Error(err)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.Nil(team)
}

// TestGetByName tests looking a team up by name within a region
func (suite *TeamRepositoryTestSuite) TestGetByName() {
	team := suite.factories.Team.WithName("EQUIPE ATACADO")
	suite.Require().NoError(suite.repo.Create(suite.ctx, team))

	found, err := suite.repo.GetByName(suite.ctx, models.RegionGO, "EQUIPE ATACADO")
	suite.NoError(err)
	suite.Equal(team.ID, found.ID)

	_, err = suite.repo.GetByName(suite.ctx, models.RegionMT, "EQUIPE ATACADO")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestListWithPagination tests listing teams with pagination and region filter
func (suite *TeamRepositoryTestSuite) TestListWithPagination() {
	for i := 0; i < 5; i++ {
		suite.Require().NoError(suite.repo.Create(suite.ctx, suite.factories.Team.Create()))
	}
	suite.Require().NoError(suite.repo.Create(suite.ctx, suite.factories.Team.WithRegion(models.RegionTO)))

	teams, total, err := suite.repo.List(suite.ctx, "", 2, 0)
	suite.NoError(err)
	suite.Len(teams, 2)
	suite.Equal(int64(6), total)

	teams, total, err = suite.repo.List(suite.ctx, string(models.RegionGO), 10, 4)
	suite.NoError(err)
	suite.Len(teams, 1)
	suite.Equal(int64(5), total)
}

// TestUpdate tests updating a team
func (suite *TeamRepositoryTestSuite) TestUpdate() {
	team := suite.factories.Team.Create()
	suite.Require().NoError(suite.repo.Create(suite.ctx, team))

	team.Channel = models.ChannelKeyAccount
	suite.NoError(suite.repo.Update(suite.ctx, team))

	retrieved, err := suite.repo.GetByID(suite.ctx, team.ID)
	suite.NoError(err)
	suite.Equal(models.ChannelKeyAccount, retrieved.Channel)
}

// TestDeleteDetachesMembersAndRoles tests that deleting a team leaves its people and positions behind
func (suite *TeamRepositoryTestSuite) TestDeleteDetachesMembersAndRoles() {
	db := suite.baseTestSuite.DB
	team, employee, role, _ := suite.factories.CreateStaffedTeam()
	suite.Require().NoError(suite.repo.Create(suite.ctx, team))
	suite.Require().NoError(NewEmployeeRepository(db).Create(suite.ctx, employee))
	suite.Require().NoError(NewRoleRepository(db).Create(suite.ctx, role))

	err := suite.repo.Delete(suite.ctx, team.ID)
	suite.NoError(err)

	_, err = suite.repo.GetByID(suite.ctx, team.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	reloadedEmployee, err := NewEmployeeRepository(db).GetByID(suite.ctx, employee.ID)
	suite.NoError(err)
	suite.Nil(reloadedEmployee.TeamID)

	reloadedRole, err := NewRoleRepository(db).GetByID(suite.ctx, role.ID)
	suite.NoError(err)
	suite.Nil(reloadedRole.TeamID)
}

// TestDeleteNotFound tests deleting a team that does not exist
func (suite *TeamRepositoryTestSuite) TestDeleteNotFound() {
	err := suite.repo.Delete(suite.ctx, uuid.NewString())
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// Run the test suite
func TestTeamRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TeamRepositoryTestSuite))
}
