package handlers

import (
	"net/http"

	"asset-management-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// RoleHandler handles HTTP requests for role (position) operations
type RoleHandler struct {
	roleService service.RoleServiceInterface
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService service.RoleServiceInterface) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// CreateRole handles POST /roles
// @Summary Create a new role
// @Description Creates a position. Status defaults to VAGA_ABERTA.
// @Tags roles
// @Accept json
// @Produce json
// @Param role body service.CreateRoleRequest true "Role data"
// @Success 201 {object} service.RoleResponse "Successfully created role"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Role code already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /roles [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req service.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, role)
}

// GetRole handles GET /roles/:id
// @Summary Get role by ID
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} service.RoleResponse "Successfully retrieved role"
// @Failure 404 {object} ErrorResponse "Role not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /roles/{id} [get]
func (h *RoleHandler) GetRole(c *gin.Context) {
	role, err := h.roleService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, role)
}

// ListRoles handles GET /roles
// @Summary List roles
// @Tags roles
// @Accept json
// @Produce json
// @Param region query string false "Region"
// @Param status query string false "Role status"
// @Param team_id query string false "Team ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.RoleListResponse "Successfully retrieved roles"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	var query service.RoleListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roles, err := h.roleService.List(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, roles)
}

// UpdateRole handles PUT /roles/:id
// @Summary Update a role
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param role body service.UpdateRoleRequest true "Role fields"
// @Success 200 {object} service.RoleResponse "Successfully updated role"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Role not found"
// @Failure 409 {object} ErrorResponse "Role code already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /roles/{id} [put]
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	var req service.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, role)
}

// DeleteRole handles DELETE /roles/:id
// @Summary Delete a role
// @Tags roles
// @Param id path string true "Role ID"
// @Success 204 "Role deleted"
// @Failure 404 {object} ErrorResponse "Role not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	if err := h.roleService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
