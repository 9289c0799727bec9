//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"
	"time"

	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"
	"asset-management-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// MovementRepositoryTestSuite tests the MovementRepository
type MovementRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *MovementRepository
	assets        *AssetRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *MovementRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewMovementRepository(suite.baseTestSuite.DB)
	suite.assets = NewAssetRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *MovementRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *MovementRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *MovementRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *MovementRepositoryTestSuite) transferTo(asset *models.Asset, to models.CustodianRef, revision int64) (models.Movement, CustodyUpdate) {
	movement := *suite.factories.Movement.Create(asset.ID)
	movement.FromOwnerType, movement.FromOwnerID, movement.FromOwnerName = asset.CurrentOwnerType, asset.CurrentOwnerID, asset.CurrentOwnerName
	movement.ToOwnerType, movement.ToOwnerID, movement.ToOwnerName = to.Kind, to.ID, to.Name
	region := models.RegionTO
	return movement, CustodyUpdate{
		AssetID:          asset.ID,
		ExpectedRevision: revision,
		Custodian:        to,
		Status:           models.AssetStatusInUse,
		Region:           &region,
	}
}

// TestTransferAppliesCustody tests that a transfer records history and moves custody
func (suite *MovementRepositoryTestSuite) TestTransferAppliesCustody() {
	a1 := suite.factories.Asset.Create()
	a2 := suite.factories.Asset.Create()
	suite.Require().NoError(suite.assets.Create(suite.ctx, a1))
	suite.Require().NoError(suite.assets.Create(suite.ctx, a2))

	to := models.CustodianRef{Kind: models.CustodianEmployee, ID: "E004", Name: "João Paulo"}
	m1, u1 := suite.transferTo(a1, to, 1)
	m2, u2 := suite.transferTo(a2, to, 1)

	err := suite.repo.Transfer(suite.ctx, []models.Movement{m1, m2}, []CustodyUpdate{u1, u2})
	suite.NoError(err)

	for _, id := range []string{a1.ID, a2.ID} {
		asset, err := suite.assets.GetByID(suite.ctx, id)
		suite.NoError(err)
		suite.Equal(to, asset.Holder())
		suite.Equal(models.AssetStatusInUse, asset.Status)
		suite.Equal(models.RegionTO, asset.Region)
		suite.Equal(int64(2), asset.Revision)

		history, err := suite.repo.GetByAssetID(suite.ctx, id)
		suite.NoError(err)
		suite.Len(history, 1)
		suite.Equal(models.CustodianStock, history[0].FromOwnerType)
		suite.Equal("E004", history[0].ToOwnerID)
	}
}

// TestTransferStaleRevisionRollsBack tests that one stale asset undoes the whole batch
func (suite *MovementRepositoryTestSuite) TestTransferStaleRevisionRollsBack() {
	a1 := suite.factories.Asset.Create()
	a2 := suite.factories.Asset.Create()
	suite.Require().NoError(suite.assets.Create(suite.ctx, a1))
	suite.Require().NoError(suite.assets.Create(suite.ctx, a2))

	to := models.CustodianRef{Kind: models.CustodianTeam, ID: "T001", Name: "EQUIPE CV"}
	m1, u1 := suite.transferTo(a1, to, 1)
	m2, u2 := suite.transferTo(a2, to, 7)

	err := suite.repo.Transfer(suite.ctx, []models.Movement{m1, m2}, []CustodyUpdate{u1, u2})
	suite.ErrorIs(err, apperrors.ErrStaleRevision)

	first, err := suite.assets.GetByID(suite.ctx, a1.ID)
	suite.NoError(err)
	suite.Equal(models.CustodianStock, first.CurrentOwnerType)
	suite.Equal(int64(1), first.Revision)

	_, total, err := suite.repo.List(suite.ctx, 10, 0)
	suite.NoError(err)
	suite.Zero(total)
}

// TestMovementsAreImmutable tests that recorded movements reject updates and deletes
func (suite *MovementRepositoryTestSuite) TestMovementsAreImmutable() {
	db := suite.baseTestSuite.DB
	movement := suite.factories.Movement.Create("A001")
	suite.Require().NoError(db.Create(movement).Error)

	movement.Reason = "changed"
	err := db.Save(movement).Error
	suite.ErrorIs(err, apperrors.ErrMovementImmutable)

	err = db.Delete(movement).Error
	suite.ErrorIs(err, apperrors.ErrMovementImmutable)

	history, err := suite.repo.GetByAssetID(suite.ctx, "A001")
	suite.NoError(err)
	suite.Len(history, 1)
	suite.Equal("Entrega", history[0].Reason)
}

// TestListNewestFirst tests movement listing order and pagination
func (suite *MovementRepositoryTestSuite) TestListNewestFirst() {
	db := suite.baseTestSuite.DB
	old := suite.factories.Movement.Create("A001")
	old.Date = time.Now().Add(-48 * time.Hour)
	recent := suite.factories.Movement.Create("A002")
	suite.Require().NoError(db.Create(old).Error)
	suite.Require().NoError(db.Create(recent).Error)

	movements, total, err := suite.repo.List(suite.ctx, 1, 0)
	suite.NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(movements, 1)
	suite.Equal(recent.ID, movements[0].ID)
}

// Run the test suite
func TestMovementRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MovementRepositoryTestSuite))
}
