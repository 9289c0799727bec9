//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"

	"asset-management-backend/internal/database/models"
	"asset-management-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// RoleRepositoryTestSuite tests the RoleRepository
type RoleRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *RoleRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

func (suite *RoleRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewRoleRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

func (suite *RoleRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

func (suite *RoleRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

func (suite *RoleRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *RoleRepositoryTestSuite) TestGetByCode() {
	role := suite.factories.Role.Create()
	role.Code = "VEND-GO-01"
	suite.Require().NoError(suite.repo.Create(suite.ctx, role))

	found, err := suite.repo.GetByCode(suite.ctx, "VEND-GO-01")
	suite.NoError(err)
	suite.Equal(role.ID, found.ID)

	_, err = suite.repo.GetByCode(suite.ctx, "VEND-GO-99")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *RoleRepositoryTestSuite) TestCodeIsUnique() {
	first := suite.factories.Role.Create()
	suite.Require().NoError(suite.repo.Create(suite.ctx, first))

	second := suite.factories.Role.Create()
	second.Code = first.Code

	suite.Error(suite.repo.Create(suite.ctx, second))
}

func (suite *RoleRepositoryTestSuite) TestListFilters() {
	open := suite.factories.Role.WithTeam("T001")
	active := suite.factories.Role.WithTeam("T001")
	active.Status = models.RoleStatusActive
	other := suite.factories.Role.Create()
	other.Region = models.RegionMT
	for _, r := range []*models.Role{open, active, other} {
		suite.Require().NoError(suite.repo.Create(suite.ctx, r))
	}

	roles, total, err := suite.repo.List(suite.ctx, RoleFilter{Region: "GO", Status: string(models.RoleStatusOpen)}, 10, 0)
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(open.ID, roles[0].ID)

	byTeam, err := suite.repo.GetByTeamID(suite.ctx, "T001")
	suite.NoError(err)
	suite.Len(byTeam, 2)
}

func (suite *RoleRepositoryTestSuite) TestUpdateAndDelete() {
	role := suite.factories.Role.Create()
	suite.Require().NoError(suite.repo.Create(suite.ctx, role))

	role.Status = models.RoleStatusFilled
	suite.Require().NoError(suite.repo.Update(suite.ctx, role))

	found, err := suite.repo.GetByID(suite.ctx, role.ID)
	suite.Require().NoError(err)
	suite.Equal(models.RoleStatusFilled, found.Status)

	suite.NoError(suite.repo.Delete(suite.ctx, role.ID))
	_, err = suite.repo.GetByID(suite.ctx, role.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestRoleRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RoleRepositoryTestSuite))
}
