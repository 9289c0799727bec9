package handlers_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"asset-management-backend/internal/api/handlers"
	"asset-management-backend/internal/api/middleware"
	apperrors "asset-management-backend/internal/errors"
	"asset-management-backend/internal/mocks"
	"asset-management-backend/internal/service"
	"asset-management-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// ImportHandlerTestSuite defines the test suite for ImportHandler
type ImportHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockImportServiceInterface
	handler     *handlers.ImportHandler
	httpSuite   *testutils.HTTPTestSuite
}

func (suite *ImportHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockImportServiceInterface(suite.ctrl)
	suite.handler = handlers.NewImportHandler(suite.mockService, 1)

	suite.httpSuite = testutils.SetupHTTPTest()
	suite.httpSuite.Router.Use(middleware.Actor())
	imports := suite.httpSuite.Router.Group("/api/v1/imports")
	{
		imports.POST("", suite.handler.AnalyzeImport)
		imports.GET("", suite.handler.ListImports)
		imports.GET("/:id", suite.handler.GetImport)
		imports.POST("/:id/commit", suite.handler.CommitImport)
	}
}

func (suite *ImportHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func pendingPlan() *service.ImportPlanResponse {
	return &service.ImportPlanResponse{
		ID:          "run-1",
		FileName:    "inventario.xlsx",
		Status:      "PENDING",
		NewCount:    1,
		UpdateCount: 1,
		Rejected:    []apperrors.ImportRowError{{Line: 4, Reason: "missing primary identifier"}},
		CreatedBy:   "admin",
		CreatedAt:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

func (suite *ImportHandlerTestSuite) TestAnalyzeImport_Success() {
	content := []byte("spreadsheet bytes")
	suite.mockService.EXPECT().Analyze(gomock.Any(), "inventario.xlsx", gomock.Any(), "admin").
		DoAndReturn(func(_ context.Context, _ string, r io.Reader, _ string) (*service.ImportPlanResponse, error) {
			got, err := io.ReadAll(r)
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), content, got)
			return pendingPlan(), nil
		})

	recorder := suite.httpSuite.MakeUploadRequest("/api/v1/imports", "file", "inventario.xlsx", content,
		map[string]string{middleware.ActorHeader: "admin"})

	var plan service.ImportPlanResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &plan)
	assert.Equal(suite.T(), "run-1", plan.ID)
	require.Len(suite.T(), plan.Rejected, 1)
	assert.Equal(suite.T(), 4, plan.Rejected[0].Line)
}

func (suite *ImportHandlerTestSuite) TestAnalyzeImport_MissingFile() {
	recorder := suite.httpSuite.MakeUploadRequest("/api/v1/imports", "other", "inventario.xlsx", []byte("x"), nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "file is required")
}

func (suite *ImportHandlerTestSuite) TestAnalyzeImport_WrongExtension() {
	recorder := suite.httpSuite.MakeUploadRequest("/api/v1/imports", "file", "inventario.csv", []byte("a,b"), nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, ".xlsx")
}

func (suite *ImportHandlerTestSuite) TestAnalyzeImport_TooLarge() {
	content := bytes.Repeat([]byte("x"), 2<<20)

	recorder := suite.httpSuite.MakeUploadRequest("/api/v1/imports", "file", "inventario.xlsx", content, nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusRequestEntityTooLarge, "1 MB")
}

func (suite *ImportHandlerTestSuite) TestAnalyzeImport_NoValidRows() {
	suite.mockService.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrEmptyImport)

	recorder := suite.httpSuite.MakeUploadRequest("/api/v1/imports", "file", "vazio.xlsx", []byte("x"), nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnprocessableEntity, "no valid rows")
}

func (suite *ImportHandlerTestSuite) TestCommitImport() {
	suite.Run("Success", func() {
		committed := pendingPlan()
		committed.Status = "COMMITTED"
		suite.mockService.EXPECT().Commit(gomock.Any(), "run-1", "admin").Return(committed, nil)

		recorder := suite.httpSuite.MakeRequestWithHeaders(http.MethodPost, "/api/v1/imports/run-1/commit", nil,
			map[string]string{middleware.ActorHeader: "admin"})

		var run service.ImportPlanResponse
		testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &run)
		assert.Equal(suite.T(), "COMMITTED", run.Status)
	})

	suite.Run("Already committed", func() {
		suite.mockService.EXPECT().Commit(gomock.Any(), "run-1", "").Return(nil, apperrors.ErrImportNotPending)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/imports/run-1/commit", nil)

		assert.Equal(suite.T(), http.StatusConflict, recorder.Code)
	})

	suite.Run("Batch failed", func() {
		suite.mockService.EXPECT().Commit(gomock.Any(), "run-1", "").
			Return(nil, apperrors.NewImportBatchError("commit failed", assert.AnError))

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/imports/run-1/commit", nil)

		assert.Equal(suite.T(), http.StatusUnprocessableEntity, recorder.Code)
	})
}

func (suite *ImportHandlerTestSuite) TestGetImport_NotFound() {
	suite.mockService.EXPECT().Get(gomock.Any(), "missing").Return(nil, apperrors.ErrImportRunNotFound)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/imports/missing", nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "import run not found")
}

func (suite *ImportHandlerTestSuite) TestListImports() {
	suite.mockService.EXPECT().List(gomock.Any(), 1, 20).
		Return(&service.ImportRunListResponse{Runs: []service.ImportPlanResponse{*pendingPlan()}, Total: 1, Page: 1, PageSize: 20}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/imports", nil)

	var response service.ImportRunListResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	require.Len(suite.T(), response.Runs, 1)
	assert.Equal(suite.T(), "inventario.xlsx", response.Runs[0].FileName)
}

func TestImportHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ImportHandlerTestSuite))
}
