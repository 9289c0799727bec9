package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"asset-management-backend/internal/logger"
	"asset-management-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Name of the multipart field carrying the spreadsheet
const importFileField = "file"

// ImportHandler handles HTTP requests for spreadsheet imports
type ImportHandler struct {
	importService  service.ImportServiceInterface
	maxUploadBytes int64
}

// NewImportHandler creates a new import handler. Uploads larger than maxUploadMB are refused.
func NewImportHandler(importService service.ImportServiceInterface, maxUploadMB int) *ImportHandler {
	return &ImportHandler{
		importService:  importService,
		maxUploadBytes: int64(maxUploadMB) << 20,
	}
}

// AnalyzeImport handles POST /imports
// @Summary Analyze a spreadsheet
// @Description Reads an .xlsx inventory sheet, deduplicates it by primary identifier and stores a pending import plan
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param X-User header string false "Acting user"
// @Param file formData file true "Inventory spreadsheet (.xlsx)"
// @Success 201 {object} service.ImportPlanResponse "Pending import plan"
// @Failure 400 {object} ErrorResponse "Missing file"
// @Failure 413 {object} ErrorResponse "File too large"
// @Failure 422 {object} ErrorResponse "Spreadsheet has no usable rows"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /imports [post]
func (h *ImportHandler) AnalyzeImport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	header, err := c.FormFile(importFileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("file exceeds %d MB", h.maxUploadBytes>>20)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .xlsx spreadsheets are supported"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	plan, err := h.importService.Analyze(ctx, header.Filename, file, logger.ActorFromContext(ctx))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// CommitImport handles POST /imports/:id/commit
// @Summary Commit an import plan
// @Description Upserts every planned row by primary identifier in one transaction. Custody and status are left untouched.
// @Tags imports
// @Accept json
// @Produce json
// @Param X-User header string false "Acting user"
// @Param id path string true "Import run ID"
// @Success 200 {object} service.ImportPlanResponse "Committed import run"
// @Failure 404 {object} ErrorResponse "Import run not found"
// @Failure 409 {object} ErrorResponse "Import run is not pending"
// @Failure 422 {object} ErrorResponse "Batch failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /imports/{id}/commit [post]
func (h *ImportHandler) CommitImport(c *gin.Context) {
	ctx := c.Request.Context()
	run, err := h.importService.Commit(ctx, c.Param("id"), logger.ActorFromContext(ctx))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, run)
}

// GetImport handles GET /imports/:id
// @Summary Get import run
// @Description Get an import run with its planned and rejected rows
// @Tags imports
// @Accept json
// @Produce json
// @Param id path string true "Import run ID"
// @Success 200 {object} service.ImportPlanResponse "Successfully retrieved import run"
// @Failure 404 {object} ErrorResponse "Import run not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /imports/{id} [get]
func (h *ImportHandler) GetImport(c *gin.Context) {
	run, err := h.importService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, run)
}

// ListImports handles GET /imports
// @Summary List import runs
// @Description Import runs, newest first, without their rows
// @Tags imports
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.ImportRunListResponse "Successfully retrieved import runs"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /imports [get]
func (h *ImportHandler) ListImports(c *gin.Context) {
	page, pageSize := pagination(c)
	runs, err := h.importService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, runs)
}
