package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"
	"asset-management-backend/internal/importer"
	"asset-management-backend/internal/mocks"
	"asset-management-backend/internal/service"
	"asset-management-backend/internal/testutils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type ImportServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockAssets   *mocks.MockAssetRepositoryInterface
	mockRuns     *mocks.MockImportRunRepositoryInterface
	mockNotifier *mocks.MockNotifier
	service      *service.ImportService
	ctx          context.Context
}

func (suite *ImportServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockAssets = mocks.NewMockAssetRepositoryInterface(suite.ctrl)
	suite.mockRuns = mocks.NewMockImportRunRepositoryInterface(suite.ctrl)
	suite.mockNotifier = mocks.NewMockNotifier(suite.ctrl)
	suite.service = service.NewImportService(suite.mockAssets, suite.mockRuns, testutils.TestConfig(), suite.mockNotifier)
	suite.ctx = context.Background()
}

func (suite *ImportServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// workbook writes rows (header first) into a new spreadsheet
func (suite *ImportServiceTestSuite) workbook(rows [][]interface{}) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			suite.Require().NoError(err)
			suite.Require().NoError(f.SetCellValue(sheet, axis, value))
		}
	}

	buf, err := f.WriteToBuffer()
	suite.Require().NoError(err)
	return buf
}

func (suite *ImportServiceTestSuite) pendingRun(rows []service.PlannedRow) *models.ImportRun {
	payload, err := json.Marshal(rows)
	suite.Require().NoError(err)
	return &models.ImportRun{
		BaseModel: models.BaseModel{ID: "run-1"},
		FileName:  "inventario.xlsx",
		Status:    models.ImportStatusPending,
		NewCount:  len(rows),
		Rows:      payload,
		Rejected:  []byte("[]"),
		CreatedBy: "admin",
	}
}

func (suite *ImportServiceTestSuite) TestAnalyze_ClassifiesAndDeduplicates() {
	file := suite.workbook([][]interface{}{
		{"Serial", "Tipo", "Marca", "Valor", "Etiqueta"},
		{"SN123", "notebook", "dell", "R$ 1.000,00", "GSA-1"},
		{"SN456", "celular", "samsung", "350,00", nil},
		{nil, "monitor", "lg", "900,00", nil},
		{"SN123", "notebook", "lenovo", "R$ 1.750,25", "GSA-1"},
	})

	suite.mockAssets.EXPECT().FindExistingPrimaryIDs(gomock.Any(), []string{"SN123", "SN456"}).
		Return([]string{"SN456"}, nil)

	var saved *models.ImportRun
	suite.mockRuns.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, run *models.ImportRun) error {
			run.ID = "run-1"
			saved = run
			return nil
		})
	suite.mockNotifier.EXPECT().Publish(service.CollectionImports)

	plan, err := suite.service.Analyze(suite.ctx, "inventario.xlsx", file, "admin")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "run-1", plan.ID)
	assert.Equal(suite.T(), "PENDING", plan.Status)
	assert.Equal(suite.T(), 1, plan.NewCount)
	assert.Equal(suite.T(), 1, plan.UpdateCount)
	assert.Equal(suite.T(), 1, plan.RejectedCount)

	require.Len(suite.T(), plan.Rows, 2)
	assert.Equal(suite.T(), "SN123", plan.Rows[0].PrimaryID)
	assert.Equal(suite.T(), service.ImportActionNew, plan.Rows[0].Action)
	assert.Equal(suite.T(), "LENOVO", plan.Rows[0].Brand, "the last occurrence wins")
	assert.True(suite.T(), decimal.RequireFromString("1750.25").Equal(plan.Rows[0].Value))
	assert.Equal(suite.T(), "SN456", plan.Rows[1].PrimaryID)
	assert.Equal(suite.T(), service.ImportActionUpdate, plan.Rows[1].Action)

	require.Len(suite.T(), plan.Rejected, 1)
	assert.Equal(suite.T(), 4, plan.Rejected[0].Line)

	require.NotNil(suite.T(), saved)
	assert.Equal(suite.T(), models.ImportStatusPending, saved.Status)
	assert.Equal(suite.T(), "admin", saved.CreatedBy)
	var stored []service.PlannedRow
	require.NoError(suite.T(), json.Unmarshal(saved.Rows, &stored))
	assert.Len(suite.T(), stored, 2)
}

func (suite *ImportServiceTestSuite) TestAnalyze_NoValidRows() {
	file := suite.workbook([][]interface{}{
		{"Tipo", "Marca"},
		{"notebook", "dell"},
	})

	plan, err := suite.service.Analyze(suite.ctx, "vazio.xlsx", file, "admin")

	assert.Nil(suite.T(), plan)
	assert.ErrorIs(suite.T(), err, apperrors.ErrEmptyImport)
}

func (suite *ImportServiceTestSuite) TestAnalyze_UnreadableFile() {
	plan, err := suite.service.Analyze(suite.ctx, "notes.txt", strings.NewReader("not a spreadsheet"), "admin")

	assert.Nil(suite.T(), plan)
	assert.True(suite.T(), apperrors.IsImportBatch(err))
}

func (suite *ImportServiceTestSuite) TestAnalyze_LookupFailure() {
	file := suite.workbook([][]interface{}{
		{"Serial"},
		{"SN123"},
	})
	suite.mockAssets.EXPECT().FindExistingPrimaryIDs(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := suite.service.Analyze(suite.ctx, "inventario.xlsx", file, "admin")

	assert.True(suite.T(), apperrors.IsPersistence(err))
}

func (suite *ImportServiceTestSuite) TestCommit_Success() {
	stock := models.CustodianRef{Kind: models.CustodianStock, ID: "TI_STOCK", Name: "Estoque TI"}
	run := suite.pendingRun([]service.PlannedRow{
		{Row: importer.Row{Line: 2, PrimaryID: "SN123", Type: "NOTEBOOK", Brand: "DELL", Status: models.AssetStatusInStock, Custodian: stock}, Action: service.ImportActionUpdate},
		{Row: importer.Row{Line: 3, PrimaryID: "SN789", Type: "TABLET", Brand: "APPLE", Status: models.AssetStatusInStock, Custodian: stock}, Action: service.ImportActionNew},
	})

	suite.mockRuns.EXPECT().GetByID(gomock.Any(), "run-1").Return(run, nil)
	suite.mockRuns.EXPECT().Commit(gomock.Any(), "run-1", gomock.Any(), 500).
		DoAndReturn(func(_ context.Context, _ string, assets []*models.Asset, _ int) error {
			require.Len(suite.T(), assets, 2)
			assert.Equal(suite.T(), "SN123", *assets[0].PrimaryID)
			assert.Equal(suite.T(), models.CustodianStock, assets[1].CurrentOwnerType)
			return nil
		})
	suite.mockNotifier.EXPECT().Publish(service.CollectionAssets, service.CollectionImports)

	plan, err := suite.service.Commit(suite.ctx, "run-1", "admin")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "COMMITTED", plan.Status)
	assert.NotNil(suite.T(), plan.CommittedAt)
	assert.Len(suite.T(), plan.Rows, 2)
}

func (suite *ImportServiceTestSuite) TestCommit_NotPending() {
	run := suite.pendingRun(nil)
	run.Status = models.ImportStatusCommitted
	suite.mockRuns.EXPECT().GetByID(gomock.Any(), "run-1").Return(run, nil)

	_, err := suite.service.Commit(suite.ctx, "run-1", "admin")

	assert.ErrorIs(suite.T(), err, apperrors.ErrImportNotPending)
}

func (suite *ImportServiceTestSuite) TestCommit_NotFound() {
	suite.mockRuns.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.Commit(suite.ctx, "missing", "admin")

	assert.ErrorIs(suite.T(), err, apperrors.ErrImportRunNotFound)
}

func (suite *ImportServiceTestSuite) TestCommit_FailureMarksRunFailed() {
	run := suite.pendingRun([]service.PlannedRow{
		{Row: importer.Row{Line: 2, PrimaryID: "SN123", Type: "NOTEBOOK", Brand: "DELL"}, Action: service.ImportActionNew},
	})
	suite.mockRuns.EXPECT().GetByID(gomock.Any(), "run-1").Return(run, nil)
	suite.mockRuns.EXPECT().Commit(gomock.Any(), "run-1", gomock.Any(), 500).Return(errors.New("deadlock detected"))
	suite.mockRuns.EXPECT().MarkFailed(gomock.Any(), "run-1", "deadlock detected").Return(nil)
	suite.mockNotifier.EXPECT().Publish(service.CollectionAssets, service.CollectionImports)

	plan, err := suite.service.Commit(suite.ctx, "run-1", "admin")

	assert.Nil(suite.T(), plan)
	assert.True(suite.T(), apperrors.IsImportBatch(err))
}

func (suite *ImportServiceTestSuite) TestList_OmitsRows() {
	run := suite.pendingRun([]service.PlannedRow{{Row: importer.Row{PrimaryID: "SN1"}, Action: service.ImportActionNew}})
	suite.mockRuns.EXPECT().List(gomock.Any(), 20, 20).Return([]models.ImportRun{*run}, int64(21), nil)

	resp, err := suite.service.List(suite.ctx, 2, 0)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(21), resp.Total)
	require.Len(suite.T(), resp.Runs, 1)
	assert.Nil(suite.T(), resp.Runs[0].Rows)
}

func TestImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}
