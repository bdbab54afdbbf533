package match

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RamirezDiego7/ligatec/internal/team"
	"github.com/RamirezDiego7/ligatec/pkg/responses"
	"github.com/RamirezDiego7/ligatec/pkg/validator"
)

// MatchController handles match scheduling and the public calendar.
type MatchController struct {
	repo     MatchRepository
	teamRepo team.TeamRepository
}

// NewMatchController creates a new match controller.
func NewMatchController(repo MatchRepository, teamRepo team.TeamRepository) *MatchController {
	return &MatchController{repo: repo, teamRepo: teamRepo}
}

// --- DTOs for requests ---

type CreateMatchRequest struct {
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	HomeTeamID string `json:"home_team_id" binding:"required"`
	AwayTeamID string `json:"away_team_id" binding:"required"`
	Field      string `json:"field" binding:"required"`
	Week       string `json:"week" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

type UpdateMatchRequest struct {
	Date   *string `json:"date"`
	Time   *string `json:"time"`
	Field  *string `json:"field"`
	Week   *string `json:"week"`
	Status *string `json:"status"`
}

// checkTeams verifies both teams exist, differ, and play in the same
// division. Returns the league/division the match belongs to.
func (mc *MatchController) checkTeams(c *gin.Context, homeID, awayID string) (leagueID, divisionID uint, ok bool) {
	if homeID == awayID {
		responses.BadRequest(c, "A team cannot play against itself")
		return 0, 0, false
	}

	home, err := mc.teamRepo.GetTeamByID(homeID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve home team: "+err.Error())
		return 0, 0, false
	}
	if home == nil {
		responses.NotFound(c, "Home team")
		return 0, 0, false
	}

	away, err := mc.teamRepo.GetTeamByID(awayID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve away team: "+err.Error())
		return 0, 0, false
	}
	if away == nil {
		responses.NotFound(c, "Away team")
		return 0, 0, false
	}

	if home.DivisionID != away.DivisionID {
		responses.BadRequest(c, "Both teams must belong to the same division")
		return 0, 0, false
	}
	return home.LeagueID, home.DivisionID, true
}

// CreateMatch godoc
// @Summary Schedule a match
// @Description Creates a match between two teams of the same division. Admin only.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match body CreateMatchRequest true "Match Data"
// @Success 201 {object} responses.SuccessResponse{data=Match} "Match scheduled"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /admin/matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	if !ValidDate(req.Date) {
		responses.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if !ValidTime(req.Time) {
		responses.BadRequest(c, "Invalid time, expected HH:MM")
		return
	}
	status := MatchStatus(req.Status)
	if !status.Valid() {
		responses.BadRequest(c, "Invalid match status")
		return
	}

	leagueID, divisionID, ok := mc.checkTeams(c, req.HomeTeamID, req.AwayTeamID)
	if !ok {
		return
	}

	m := Match{
		Date:       req.Date,
		Time:       req.Time,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		Field:      req.Field,
		LeagueID:   leagueID,
		DivisionID: divisionID,
		Week:       req.Week,
		Status:     status,
	}
	if err := mc.repo.Create(&m); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to schedule match: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match scheduled successfully", m)
}

// UpdateMatch godoc
// @Summary Edit a match
// @Description Updates a match's date, time, field, week or status. Admin only.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match_id path string true "Match ID"
// @Param match body UpdateMatchRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Match} "Match updated"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /admin/matches/{match_id} [put]
func (mc *MatchController) UpdateMatch(c *gin.Context) {
	m, err := mc.repo.GetByID(c.Param("match_id"))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve match: "+err.Error())
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}

	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	if req.Date != nil {
		if !ValidDate(*req.Date) {
			responses.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		m.Date = *req.Date
	}
	if req.Time != nil {
		if !ValidTime(*req.Time) {
			responses.BadRequest(c, "Invalid time, expected HH:MM")
			return
		}
		m.Time = *req.Time
	}
	if req.Field != nil {
		m.Field = *req.Field
	}
	if req.Week != nil {
		m.Week = *req.Week
	}
	if req.Status != nil {
		status := MatchStatus(*req.Status)
		if !status.Valid() {
			responses.BadRequest(c, "Invalid match status")
			return
		}
		m.Status = status
	}

	if err := mc.repo.Update(m); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to update match: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match updated successfully", m)
}

// GetCalendar godoc
// @Summary Public match calendar
// @Description Lists matches ordered by date, filterable by league, division, week and status.
// @Tags Matches
// @Produce json
// @Param league_id query uint false "Filter by league"
// @Param division_id query uint false "Filter by division"
// @Param week query string false "Filter by week label"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} responses.PaginatedResponse{data=[]Match} "Matches"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /matches [get]
func (mc *MatchController) GetCalendar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filters := make(map[string]interface{})
	if leagueIDStr := c.Query("league_id"); leagueIDStr != "" {
		if leagueID, err := strconv.ParseUint(leagueIDStr, 10, 32); err == nil {
			filters["league_id"] = uint(leagueID)
		}
	}
	if divisionIDStr := c.Query("division_id"); divisionIDStr != "" {
		if divisionID, err := strconv.ParseUint(divisionIDStr, 10, 32); err == nil {
			filters["division_id"] = uint(divisionID)
		}
	}
	if week := c.Query("week"); week != "" {
		filters["week"] = week
	}
	if status := c.Query("status"); status != "" {
		if !MatchStatus(status).Valid() {
			responses.BadRequest(c, "Invalid match status filter")
			return
		}
		filters["status"] = status
	}

	matches, total, err := mc.repo.GetCalendar(filters, page, limit)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve matches: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Matches retrieved successfully", matches, total, page, limit)
}
