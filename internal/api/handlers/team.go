package handlers

import (
	"net/http"

	"asset-management-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles HTTP requests for team operations
type TeamHandler struct {
	teamService service.TeamServiceInterface
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService service.TeamServiceInterface) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam handles POST /teams
// @Summary Create a new team
// @Description Create a new team with the provided details
// @Tags teams
// @Accept json
// @Produce json
// @Param team body service.CreateTeamRequest true "Team data"
// @Success 201 {object} service.TeamResponse "Successfully created team"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Leader not found"
// @Failure 409 {object} ErrorResponse "Team name already used in the region"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req service.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// GetTeam handles GET /teams/:id
// @Summary Get team by ID
// @Tags teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} service.TeamResponse "Successfully retrieved team"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /teams/{id} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	team, err := h.teamService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// ListTeams handles GET /teams
// @Summary List all teams
// @Description Get all teams with optional region filtering and pagination
// @Tags teams
// @Accept json
// @Produce json
// @Param region query string false "Region"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.TeamListResponse "Successfully retrieved teams"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /teams [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	page, pageSize := pagination(c)
	teams, err := h.teamService.List(c.Request.Context(), c.Query("region"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, teams)
}

// UpdateTeam handles PUT /teams/:id
// @Summary Update a team
// @Description An empty leader_id removes the leader
// @Tags teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param team body service.UpdateTeamRequest true "Team fields"
// @Success 200 {object} service.TeamResponse "Successfully updated team"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Team or leader not found"
// @Failure 409 {object} ErrorResponse "Team name already used in the region"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /teams/{id} [put]
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	var req service.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// DeleteTeam handles DELETE /teams/:id
// @Summary Delete a team
// @Description Members and roles of the team are detached, not deleted
// @Tags teams
// @Param id path string true "Team ID"
// @Success 204 "Team deleted"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /teams/{id} [delete]
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	if err := h.teamService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTeamDetails handles GET /teams/:id/details
// @Summary Team overview
// @Description Leader, members and roles of the team with the assets each holds, plus team-held assets
// @Tags teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} service.TeamDetailsResponse "Successfully retrieved team details"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /teams/{id}/details [get]
func (h *TeamHandler) GetTeamDetails(c *gin.Context) {
	details, err := h.teamService.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// AddMember handles POST /teams/:id/members
// @Summary Add a member to a team
// @Tags teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param member body service.AddMemberRequest true "Employee to add"
// @Success 200 {object} service.EmployeeResponse "Employee joined the team"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Team or employee not found"
// @Failure 409 {object} ErrorResponse "Employee already in the team"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /teams/{id}/members [post]
func (h *TeamHandler) AddMember(c *gin.Context) {
	var req service.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee, err := h.teamService.AddMember(c.Request.Context(), c.Param("id"), req.EmployeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// RemoveMember handles DELETE /teams/:id/members/:employeeId
// @Summary Remove a member from a team
// @Description A leader who leaves the team stops leading it
// @Tags teams
// @Param id path string true "Team ID"
// @Param employeeId path string true "Employee ID"
// @Success 204 "Member removed"
// @Failure 400 {object} ErrorResponse "Employee is not a member"
// @Failure 404 {object} ErrorResponse "Team or employee not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /teams/{id}/members/{employeeId} [delete]
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	if err := h.teamService.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("employeeId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
