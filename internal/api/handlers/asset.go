package handlers

import (
	"net/http"

	"asset-management-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AssetHandler handles HTTP requests for asset operations
type AssetHandler struct {
	assetService service.AssetServiceInterface
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService service.AssetServiceInterface) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// CreateAsset handles POST /assets
// @Summary Register a new asset
// @Description Registers an asset in stock. Custody only changes through movements.
// @Tags assets
// @Accept json
// @Produce json
// @Param asset body service.CreateAssetRequest true "Asset data"
// @Success 201 {object} service.AssetResponse "Successfully created asset"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Primary identifier already registered"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req service.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset, err := h.assetService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, asset)
}

// GetAsset handles GET /assets/:id
// @Summary Get asset by ID
// @Tags assets
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} service.AssetResponse "Successfully retrieved asset"
// @Failure 404 {object} ErrorResponse "Asset not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.assetService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// ListAssets handles GET /assets
// @Summary List assets
// @Description Search matches brand, tag, type, primary identifier, condition and custodian name
// @Tags assets
// @Accept json
// @Produce json
// @Param search query string false "Free text search"
// @Param type query string false "Asset type"
// @Param status query string false "Asset status"
// @Param region query string false "Region"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.AssetListResponse "Successfully retrieved assets"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var query service.AssetListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assets, err := h.assetService.List(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, assets)
}

// UpdateAsset handles PUT /assets/:id
// @Summary Update an asset
// @Description Updates descriptive fields. Send revision to guard against concurrent changes.
// @Tags assets
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Param asset body service.UpdateAssetRequest true "Asset fields"
// @Success 200 {object} service.AssetResponse "Successfully updated asset"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Asset not found"
// @Failure 409 {object} ErrorResponse "Stale revision or duplicate primary identifier"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req service.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset, err := h.assetService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// DeleteAsset handles DELETE /assets/:id
// @Summary Delete an asset
// @Tags assets
// @Param id path string true "Asset ID"
// @Success 204 "Asset deleted"
// @Failure 404 {object} ErrorResponse "Asset not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if err := h.assetService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAssetHistory handles GET /assets/:id/movements
// @Summary Asset movement history
// @Description Movements of one asset, newest first
// @Tags assets
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {array} service.MovementResponse "Successfully retrieved history"
// @Failure 404 {object} ErrorResponse "Asset not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assets/{id}/movements [get]
func (h *AssetHandler) GetAssetHistory(c *gin.Context) {
	history, err := h.assetService.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetAssetSummary handles GET /assets/summary
// @Summary Inventory summary
// @Description Asset totals by status, type, region and custodian kind
// @Tags assets
// @Accept json
// @Produce json
// @Success 200 {object} service.AssetSummaryResponse "Successfully retrieved summary"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assets/summary [get]
func (h *AssetHandler) GetAssetSummary(c *gin.Context) {
	summary, err := h.assetService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
