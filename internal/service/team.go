package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"
	"asset-management-backend/internal/logger"
	"asset-management-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// TeamService handles business logic for teams
type TeamService struct {
	repo      repository.TeamRepositoryInterface
	employees repository.EmployeeRepositoryInterface
	roles     repository.RoleRepositoryInterface
	assets    repository.AssetRepositoryInterface
	validator *validator.Validate
	notifier  Notifier
}

// Ensure TeamService implements TeamServiceInterface
var _ TeamServiceInterface = (*TeamService)(nil)

// NewTeamService creates a new team service
func NewTeamService(
	repo repository.TeamRepositoryInterface,
	employees repository.EmployeeRepositoryInterface,
	roles repository.RoleRepositoryInterface,
	assets repository.AssetRepositoryInterface,
	validator *validator.Validate,
	notifier Notifier,
) *TeamService {
	return &TeamService{
		repo:      repo,
		employees: employees,
		roles:     roles,
		assets:    assets,
		validator: validator,
		notifier:  notifier,
	}
}

// CreateTeamRequest represents the data needed to create a team
type CreateTeamRequest struct {
	ID       string         `json:"id" validate:"max=64" example:"T001"` // Optional: generated when empty
	Name     string         `json:"name" validate:"required,max=150" example:"EQUIPE CV - GOIÂNIA"`
	Region   models.Region  `json:"region" validate:"required" swaggertype:"string" example:"GO"`
	Channel  models.Channel `json:"channel" validate:"required" swaggertype:"string" example:"CV"`
	LeaderID *string        `json:"leader_id" validate:"omitempty,max=64"`
}

// UpdateTeamRequest represents the data needed to update a team. An empty leader_id clears the leader.
type UpdateTeamRequest struct {
	Name     *string         `json:"name" validate:"omitempty,max=150"`
	Region   *models.Region  `json:"region" swaggertype:"string"`
	Channel  *models.Channel `json:"channel" swaggertype:"string"`
	LeaderID *string         `json:"leader_id" validate:"omitempty,max=64"`
}

// AddMemberRequest represents an employee joining a team
type AddMemberRequest struct {
	EmployeeID string `json:"employee_id" binding:"required" example:"E004"`
}

// TeamResponse represents the response data for a team
type TeamResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	Channel   string    `json:"channel"`
	LeaderID  *string   `json:"leader_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamListResponse represents a paginated list of teams
type TeamListResponse struct {
	Teams    []TeamResponse `json:"teams"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// TeamHolderResponse is a person or position together with the assets it holds
type TeamHolderResponse struct {
	Employee *EmployeeResponse `json:"employee,omitempty"`
	Role     *RoleResponse     `json:"role,omitempty"`
	Assets   []AssetResponse   `json:"assets"`
}

// TeamDetailsResponse is the team view: leader, members, positions and everything they hold
type TeamDetailsResponse struct {
	Team       TeamResponse         `json:"team"`
	Leader     *TeamHolderResponse  `json:"leader,omitempty"`
	Members    []TeamHolderResponse `json:"members"`
	Roles      []TeamHolderResponse `json:"roles"`
	TeamAssets []AssetResponse      `json:"team_assets"`
}

// Create creates a new team. Names are unique within a region.
func (s *TeamService) Create(ctx context.Context, req *CreateTeamRequest) (*TeamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if err := validateTeamEnums(&req.Region, &req.Channel); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, req.Region, name, ""); err != nil {
		return nil, err
	}

	leaderID := trimmedOrNil(req.LeaderID)
	if err := s.checkLeader(ctx, leaderID); err != nil {
		return nil, err
	}

	team := &models.Team{
		BaseModel: models.BaseModel{ID: strings.TrimSpace(req.ID)},
		Name:      name,
		Region:    req.Region,
		Channel:   req.Channel,
		LeaderID:  leaderID,
	}
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, apperrors.NewPersistenceError("create team", err)
	}

	logger.WithContext(ctx).WithField("team_id", team.ID).Info("Team created")
	publish(s.notifier, CollectionTeams)
	return toTeamResponse(team), nil
}

// GetByID retrieves a team by ID
func (s *TeamService) GetByID(ctx context.Context, id string) (*TeamResponse, error) {
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrTeamNotFound, "get team")
	}
	return toTeamResponse(team), nil
}

// List retrieves teams with pagination, optionally in one region
func (s *TeamService) List(ctx context.Context, region string, page, pageSize int) (*TeamListResponse, error) {
	page, pageSize, offset := normalizePagination(page, pageSize)

	teams, total, err := s.repo.List(ctx, region, pageSize, offset)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list teams", err)
	}

	responses := make([]TeamResponse, len(teams))
	for i := range teams {
		responses[i] = *toTeamResponse(&teams[i])
	}

	return &TeamListResponse{
		Teams:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update updates an existing team
func (s *TeamService) Update(ctx context.Context, id string, req *UpdateTeamRequest) (*TeamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if err := validateTeamEnums(req.Region, req.Channel); err != nil {
		return nil, err
	}

	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrTeamNotFound, "get team")
	}

	name, region := team.Name, team.Region
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name", "must not be empty")
		}
	}
	if req.Region != nil {
		region = *req.Region
	}
	if name != team.Name || region != team.Region {
		if err := s.ensureNameFree(ctx, region, name, team.ID); err != nil {
			return nil, err
		}
	}
	team.Name, team.Region = name, region

	if req.Channel != nil {
		team.Channel = *req.Channel
	}
	if req.LeaderID != nil {
		leaderID := trimmedOrNil(req.LeaderID)
		if err := s.checkLeader(ctx, leaderID); err != nil {
			return nil, err
		}
		team.LeaderID = leaderID
	}

	if err := s.repo.Update(ctx, team); err != nil {
		return nil, apperrors.NewPersistenceError("update team", err)
	}

	publish(s.notifier, CollectionTeams)
	return toTeamResponse(team), nil
}

// Delete deletes a team. Members and positions stay, detached from it.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return lookupError(err, apperrors.ErrTeamNotFound, "get team")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, apperrors.ErrTeamNotFound, "delete team")
	}

	logger.WithContext(ctx).WithField("team_id", id).Info("Team deleted")
	publish(s.notifier, CollectionTeams, CollectionEmployees, CollectionRoles)
	return nil
}

// AddMember moves an employee into the team, leaving any previous team
func (s *TeamService) AddMember(ctx context.Context, teamID, employeeID string) (*EmployeeResponse, error) {
	if _, err := s.repo.GetByID(ctx, teamID); err != nil {
		return nil, lookupError(err, apperrors.ErrTeamNotFound, "get team")
	}
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrEmployeeNotFound, "get employee")
	}
	if employee.TeamID != nil && *employee.TeamID == teamID {
		return nil, apperrors.ErrTeamMemberExists
	}

	if err := s.employees.SetTeam(ctx, employee.ID, &teamID); err != nil {
		return nil, lookupError(err, apperrors.ErrEmployeeNotFound, "add team member")
	}
	employee.TeamID = &teamID

	publish(s.notifier, CollectionTeams, CollectionEmployees)
	return toEmployeeResponse(employee), nil
}

// RemoveMember detaches an employee from the team. A leaving leader also stops leading it.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, employeeID string) error {
	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return lookupError(err, apperrors.ErrTeamNotFound, "get team")
	}
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return lookupError(err, apperrors.ErrEmployeeNotFound, "get employee")
	}
	if employee.TeamID == nil || *employee.TeamID != teamID {
		return apperrors.ErrMemberNotInTeam
	}

	if err := s.employees.SetTeam(ctx, employee.ID, nil); err != nil {
		return lookupError(err, apperrors.ErrEmployeeNotFound, "remove team member")
	}

	if team.LeaderID != nil && *team.LeaderID == employee.ID {
		team.LeaderID = nil
		if err := s.repo.Update(ctx, team); err != nil {
			return apperrors.NewPersistenceError("clear team leader", err)
		}
	}

	publish(s.notifier, CollectionTeams, CollectionEmployees)
	return nil
}

// Details assembles the team view: the leader, the other members, the team's positions
// and the assets held by each of them and by the team itself
func (s *TeamService) Details(ctx context.Context, id string) (*TeamDetailsResponse, error) {
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrTeamNotFound, "get team")
	}

	members, err := s.employees.GetByTeamID(ctx, team.ID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list team members", err)
	}
	roles, err := s.roles.GetByTeamID(ctx, team.ID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list team roles", err)
	}

	var leader *models.Employee
	if team.LeaderID != nil {
		for i := range members {
			if members[i].ID == *team.LeaderID {
				leader = &members[i]
				break
			}
		}
		if leader == nil {
			found, err := s.employees.GetByID(ctx, *team.LeaderID)
			switch {
			case err == nil:
				leader = found
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return nil, apperrors.NewPersistenceError("get team leader", err)
			}
		}
	}

	employeeIDs := make([]string, 0, len(members)+1)
	for _, m := range members {
		employeeIDs = append(employeeIDs, m.ID)
	}
	if leader != nil && (leader.TeamID == nil || *leader.TeamID != team.ID) {
		employeeIDs = append(employeeIDs, leader.ID)
	}
	roleIDs := make([]string, len(roles))
	for i, r := range roles {
		roleIDs[i] = r.ID
	}

	byEmployee, err := s.heldBy(ctx, models.CustodianEmployee, employeeIDs)
	if err != nil {
		return nil, err
	}
	byRole, err := s.heldBy(ctx, models.CustodianRole, roleIDs)
	if err != nil {
		return nil, err
	}
	byTeam, err := s.heldBy(ctx, models.CustodianTeam, []string{team.ID})
	if err != nil {
		return nil, err
	}

	details := &TeamDetailsResponse{
		Team:       *toTeamResponse(team),
		Members:    make([]TeamHolderResponse, 0, len(members)),
		Roles:      make([]TeamHolderResponse, 0, len(roles)),
		TeamAssets: nonNil(byTeam[team.ID]),
	}
	if leader != nil {
		details.Leader = &TeamHolderResponse{
			Employee: toEmployeeResponse(leader),
			Assets:   nonNil(byEmployee[leader.ID]),
		}
	}
	for i := range members {
		if leader != nil && members[i].ID == leader.ID {
			continue
		}
		details.Members = append(details.Members, TeamHolderResponse{
			Employee: toEmployeeResponse(&members[i]),
			Assets:   nonNil(byEmployee[members[i].ID]),
		})
	}
	for i := range roles {
		details.Roles = append(details.Roles, TeamHolderResponse{
			Role:   toRoleResponse(&roles[i]),
			Assets: nonNil(byRole[roles[i].ID]),
		})
	}

	return details, nil
}

// heldBy loads the assets held by custodians of one kind, grouped by custodian id
func (s *TeamService) heldBy(ctx context.Context, kind models.CustodianKind, ids []string) (map[string][]AssetResponse, error) {
	grouped := make(map[string][]AssetResponse, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}
	assets, err := s.assets.GetByCustodians(ctx, kind, ids)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list held assets", err)
	}
	for i := range assets {
		holder := assets[i].CurrentOwnerID
		grouped[holder] = append(grouped[holder], toAssetResponse(&assets[i]))
	}
	return grouped, nil
}

func nonNil(assets []AssetResponse) []AssetResponse {
	if assets == nil {
		return []AssetResponse{}
	}
	return assets
}

func (s *TeamService) ensureNameFree(ctx context.Context, region models.Region, name, selfID string) error {
	existing, err := s.repo.GetByName(ctx, region, name)
	if err == nil {
		if existing.ID != selfID {
			return apperrors.ErrTeamExists
		}
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return apperrors.NewPersistenceError("check team name", err)
}

func (s *TeamService) checkLeader(ctx context.Context, leaderID *string) error {
	if leaderID == nil {
		return nil
	}
	if _, err := s.employees.GetByID(ctx, *leaderID); err != nil {
		return lookupError(err, apperrors.ErrLeaderNotFound, "check team leader")
	}
	return nil
}

func validateTeamEnums(region *models.Region, channel *models.Channel) error {
	if region != nil && !region.IsValid() {
		return apperrors.NewValidationError("region", fmt.Sprintf("unknown region %q", *region))
	}
	if channel != nil && !channel.IsValid() {
		return apperrors.NewValidationError("channel", fmt.Sprintf("unknown channel %q", *channel))
	}
	return nil
}

func toTeamResponse(t *models.Team) *TeamResponse {
	return &TeamResponse{
		ID:        t.ID,
		Name:      t.Name,
		Region:    string(t.Region),
		Channel:   string(t.Channel),
		LeaderID:  t.LeaderID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
