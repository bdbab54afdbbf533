package team

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RamirezDiego7/ligatec/internal/middleware"
	"github.com/RamirezDiego7/ligatec/internal/user"
	"github.com/RamirezDiego7/ligatec/pkg/apperrors"
	"github.com/RamirezDiego7/ligatec/pkg/responses"
	"github.com/RamirezDiego7/ligatec/pkg/validator"
)

// TeamController handles team-related HTTP requests.
type TeamController struct {
	repo     TeamRepository
	service  *TeamService
	userRepo user.UserRepository
}

// NewTeamController creates a new team controller.
func NewTeamController(repo TeamRepository, service *TeamService, userRepo user.UserRepository) *TeamController {
	return &TeamController{repo: repo, service: service, userRepo: userRepo}
}

// --- DTOs for requests/responses ---

type CreateTeamRequest struct {
	TeamName   string `json:"team_name" binding:"required,min=2,max=100"`
	LeagueID   uint   `json:"league_id" binding:"required"`
	DivisionID uint   `json:"division_id" binding:"required"`
}

type PlayerInfo struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type TeamDetailResponse struct {
	Team         Team         `json:"team"`
	Players      []PlayerInfo `json:"players"`
	JoinRequests []PlayerInfo `json:"join_requests,omitempty"` // visible to the leader only
}

type TeamListEntry struct {
	Team      Team `json:"team"`
	Requested bool `json:"requested"` // caller has a pending request for this team
	Member    bool `json:"member"`    // caller already plays for this team
}

// sendWorkflowError maps a workflow error onto the HTTP error taxonomy.
func sendWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		responses.BadRequest(c, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		responses.NotFound(c, "Resource")
	case errors.Is(err, apperrors.ErrAlreadyInTeam), errors.Is(err, apperrors.ErrAlreadyRequested):
		responses.SendError(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrAuthorization):
		responses.Forbidden(c, "Only the team leader can perform this action")
	default:
		responses.SendError(c, http.StatusInternalServerError, "Operation failed, please try again")
	}
}

// --- Team handlers ---

// CreateTeam godoc
// @Summary Create a new team
// @Description Creates a team with the authenticated user as leader and first player, and promotes the user to Leader.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team Creation Data"
// @Success 201 {object} responses.SuccessResponse{data=Team} "Team created successfully"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 409 {object} responses.ErrorResponse "Already on a team in this league"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	t, err := tc.service.CreateTeam(req.TeamName, req.LeagueID, req.DivisionID, userID)
	if err != nil {
		sendWorkflowError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", t)
}

// GetTeams godoc
// @Summary List teams in a league
// @Description Retrieves the teams of a league. When called with a valid token, each entry is annotated with the caller's membership/request state.
// @Tags Teams
// @Produce json
// @Param league_id query uint true "League ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]TeamListEntry} "List of teams"
// @Failure 400 {object} responses.ErrorResponse "Missing league_id"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /teams [get]
func (tc *TeamController) GetTeams(c *gin.Context) {
	leagueID, err := strconv.ParseUint(c.Query("league_id"), 10, 32)
	if err != nil || leagueID == 0 {
		responses.BadRequest(c, "league_id query parameter is required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	teams, total, err := tc.repo.GetTeamsByLeague(uint(leagueID), page, limit)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve teams: "+err.Error())
		return
	}

	// Annotation is best effort: an unauthenticated listing simply has
	// both flags false.
	callerID, _ := middleware.GetUserIDFromContext(c)
	entries := make([]TeamListEntry, 0, len(teams))
	for _, t := range teams {
		entry := TeamListEntry{Team: t}
		if callerID != 0 {
			if m, _ := tc.repo.GetMember(t.ID, callerID); m != nil {
				entry.Member = true
			}
			if r, _ := tc.repo.GetJoinRequest(t.ID, callerID); r != nil {
				entry.Requested = true
			}
		}
		entries = append(entries, entry)
	}
	responses.SendPaginated(c, http.StatusOK, "Teams retrieved successfully", entries, total, page, limit)
}

// GetTeamByID godoc
// @Summary Get a team with its roster
// @Description Retrieves a team and its players. The pending join requests are included only when the caller is the team's leader.
// @Tags Teams
// @Produce json
// @Param team_id path string true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=TeamDetailResponse} "Team details"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /teams/{team_id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	t, err := tc.repo.GetTeamByID(c.Param("team_id"))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	members, err := tc.repo.GetMembers(t.ID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve team members: "+err.Error())
		return
	}

	detail := TeamDetailResponse{Team: *t, Players: tc.playerInfos(memberUserIDs(members))}

	callerID, _ := middleware.GetUserIDFromContext(c)
	if callerID == t.LeaderID {
		requests, err := tc.repo.GetJoinRequests(t.ID)
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve join requests: "+err.Error())
			return
		}
		detail.JoinRequests = tc.playerInfos(requestUserIDs(requests))
	}

	responses.SendSuccess(c, http.StatusOK, "Team retrieved successfully", detail)
}

// GetMyTeam godoc
// @Summary Get the caller's team
// @Description Retrieves the team the authenticated user plays for or leads, with roster and, for leaders, pending join requests.
// @Tags Teams
// @Produce json
// @Param league_id query uint true "League ID"
// @Success 200 {object} responses.SuccessResponse{data=TeamDetailResponse} "Caller's team"
// @Failure 404 {object} responses.ErrorResponse "Not on a team in this league"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /users/me/team [get]
func (tc *TeamController) GetMyTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	leagueID, err := strconv.ParseUint(c.Query("league_id"), 10, 32)
	if err != nil || leagueID == 0 {
		responses.BadRequest(c, "league_id query parameter is required")
		return
	}

	membership, err := tc.repo.GetMembershipInLeague(userID, uint(leagueID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve membership: "+err.Error())
		return
	}
	if membership == nil {
		responses.NotFound(c, "Team membership")
		return
	}

	c.Params = append(c.Params, gin.Param{Key: "team_id", Value: membership.TeamID})
	tc.GetTeamByID(c)
}

// GetMyJoinRequests godoc
// @Summary Get the caller's pending join requests
// @Description Lists the join requests the authenticated user currently has pending.
// @Tags Join Requests
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]JoinRequest} "Pending requests"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /users/me/join-requests [get]
func (tc *TeamController) GetMyJoinRequests(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	requests, err := tc.repo.GetJoinRequestsByUser(userID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve join requests: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join requests retrieved successfully", requests)
}

// --- Join request handlers ---

// RequestToJoin godoc
// @Summary Request to join a team
// @Description Adds the authenticated user to the team's pending join requests. At most one pending request per league.
// @Tags Join Requests
// @Produce json
// @Param team_id path string true "Team ID"
// @Success 201 {object} responses.SuccessResponse "Join request sent"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 409 {object} responses.ErrorResponse "Already a member or already requested"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/join-requests [post]
func (tc *TeamController) RequestToJoin(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := tc.service.RequestToJoin(c.Param("team_id"), userID); err != nil {
		sendWorkflowError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Join request sent successfully", nil)
}

// RespondToJoinRequest godoc
// @Summary Accept or deny a join request
// @Description Lets the team leader accept (move the user into the roster) or deny (drop the request) a pending join request.
// @Tags Join Requests
// @Produce json
// @Param team_id path string true "Team ID"
// @Param user_id path uint true "Requesting user's ID"
// @Param action path string true "Action to perform: 'accept' or 'deny'"
// @Success 200 {object} responses.SuccessResponse "Join request processed"
// @Failure 400 {object} responses.ErrorResponse "Invalid action"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Caller is not the leader"
// @Failure 404 {object} responses.ErrorResponse "Team or request not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/join-requests/{user_id}/{action} [put]
func (tc *TeamController) RespondToJoinRequest(c *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	candidateID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}

	teamID := c.Param("team_id")
	switch strings.ToLower(c.Param("action")) {
	case "accept":
		err = tc.service.AcceptRequest(teamID, uint(candidateID), callerID)
	case "deny":
		err = tc.service.DenyRequest(teamID, uint(candidateID), callerID)
	default:
		responses.BadRequest(c, "Invalid action. Must be 'accept' or 'deny'.")
		return
	}
	if err != nil {
		sendWorkflowError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join request processed", nil)
}

// RemovePlayer godoc
// @Summary Remove a player from a team
// @Description Lets the team leader remove a confirmed player. The leader cannot be removed.
// @Tags Teams
// @Produce json
// @Param team_id path string true "Team ID"
// @Param user_id path uint true "Player's user ID"
// @Success 200 {object} responses.SuccessResponse "Player removed"
// @Failure 400 {object} responses.ErrorResponse "Leader cannot be removed"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Caller is not the leader"
// @Failure 404 {object} responses.ErrorResponse "Team or player not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players/{user_id} [delete]
func (tc *TeamController) RemovePlayer(c *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	playerID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}

	if err := tc.service.RemovePlayer(c.Param("team_id"), uint(playerID), callerID); err != nil {
		sendWorkflowError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player removed successfully", nil)
}

// --- Directory / admin handlers ---

// GetCaptains godoc
// @Summary List team captains
// @Description Public directory of users holding the Leader role, filterable by team name.
// @Tags Teams
// @Produce json
// @Param team query string false "Filter by team name (partial match)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]PlayerInfo} "List of captains"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /captains [get]
func (tc *TeamController) GetCaptains(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	leaders, total, err := tc.userRepo.GetLeaders(c.Query("team"), page, limit)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve captains: "+err.Error())
		return
	}

	type captainEntry struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		TeamName string `json:"team_name"`
	}
	entries := make([]captainEntry, 0, len(leaders))
	for _, l := range leaders {
		entries = append(entries, captainEntry{Name: l.Name, Email: l.Email, TeamName: l.TeamName})
	}
	responses.SendPaginated(c, http.StatusOK, "Captains retrieved successfully", entries, total, page, limit)
}

// AdminGetAllTeams godoc
// @Summary List all teams (admin)
// @Description Retrieves every team across leagues. Admin only.
// @Tags Teams
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Team} "List of teams"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /admin/teams [get]
func (tc *TeamController) AdminGetAllTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	teams, total, err := tc.repo.GetAllTeams(page, limit)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve teams: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Teams retrieved successfully", teams, total, page, limit)
}

// --- helpers ---

func memberUserIDs(members []TeamMember) []uint {
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids
}

func requestUserIDs(requests []JoinRequest) []uint {
	ids := make([]uint, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.UserID)
	}
	return ids
}

func (tc *TeamController) playerInfos(userIDs []uint) []PlayerInfo {
	infos := make([]PlayerInfo, 0, len(userIDs))
	for _, id := range userIDs {
		info := PlayerInfo{UserID: id}
		if u, err := tc.userRepo.GetByID(id); err == nil && u != nil {
			info.Name = u.Name
			info.Email = u.Email
		}
		infos = append(infos, info)
	}
	return infos
}
