package handlers

import (
	"net/http"

	"asset-management-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// MovementHandler handles HTTP requests for the movement engine
type MovementHandler struct {
	movementService service.MovementServiceInterface
}

// NewMovementHandler creates a new movement handler
func NewMovementHandler(movementService service.MovementServiceInterface) *MovementHandler {
	return &MovementHandler{
		movementService: movementService,
	}
}

// ExecuteMovement handles POST /movements
// @Summary Move assets to a new custodian
// @Description Moves every listed asset to the destination atomically and records one movement per asset
// @Tags movements
// @Accept json
// @Produce json
// @Param X-User header string false "Acting user, used when registered_by is empty"
// @Param movement body service.ExecuteMovementRequest true "Movement data"
// @Success 201 {object} service.MovementResult "Movements recorded"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Asset not found"
// @Failure 409 {object} ErrorResponse "Asset modified concurrently"
// @Failure 422 {object} ErrorResponse "Destination could not be resolved"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /movements [post]
func (h *MovementHandler) ExecuteMovement(c *gin.Context) {
	var req service.ExecuteMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.movementService.Execute(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListMovements handles GET /movements
// @Summary List movements
// @Description Movement history, newest first. With asset_id only that asset's movements are returned.
// @Tags movements
// @Accept json
// @Produce json
// @Param asset_id query string false "Asset ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.MovementListResponse "Successfully retrieved movements"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /movements [get]
func (h *MovementHandler) ListMovements(c *gin.Context) {
	if assetID := c.Query("asset_id"); assetID != "" {
		movements, err := h.movementService.ListByAsset(c.Request.Context(), assetID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, service.MovementListResponse{
			Movements: movements,
			Total:     int64(len(movements)),
			Page:      1,
			PageSize:  len(movements),
		})
		return
	}

	page, pageSize := pagination(c)
	movements, err := h.movementService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, movements)
}
