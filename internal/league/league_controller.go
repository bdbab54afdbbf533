package league

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RamirezDiego7/ligatec/pkg/responses"
	"github.com/RamirezDiego7/ligatec/pkg/validator"
)

// LeagueController handles league and division HTTP requests.
type LeagueController struct {
	repo LeagueRepository
}

// NewLeagueController creates a new league controller.
func NewLeagueController(repo LeagueRepository) *LeagueController {
	return &LeagueController{repo: repo}
}

// --- DTOs for requests ---

type CreateLeagueRequest struct {
	LeagueName string `json:"league_name" binding:"required,min=2,max=100"`
}

type CreateDivisionRequest struct {
	DivisionName string `json:"division_name" binding:"required,min=1,max=100"`
}

// CreateLeague godoc
// @Summary Create a new league
// @Description Creates a league. Admin only.
// @Tags Leagues
// @Accept json
// @Produce json
// @Param league body CreateLeagueRequest true "League Data"
// @Success 201 {object} responses.SuccessResponse{data=League} "League created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 409 {object} responses.ErrorResponse "League name taken"
// @Security ApiKeyAuth
// @Router /admin/leagues [post]
func (lc *LeagueController) CreateLeague(c *gin.Context) {
	var req CreateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	existing, err := lc.repo.GetLeagueByName(req.LeagueName)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check league name: "+err.Error())
		return
	}
	if existing != nil {
		responses.SendError(c, http.StatusConflict, "A league with this name already exists")
		return
	}

	l := League{LeagueName: req.LeagueName}
	if err := lc.repo.CreateLeague(&l); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create league: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "League created successfully", l)
}

// GetAllLeagues godoc
// @Summary List leagues
// @Description Retrieves all leagues.
// @Tags Leagues
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]League} "List of leagues"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /leagues [get]
func (lc *LeagueController) GetAllLeagues(c *gin.Context) {
	leagues, err := lc.repo.GetAllLeagues()
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve leagues: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Leagues retrieved successfully", leagues)
}

// CreateDivision godoc
// @Summary Create a division within a league
// @Description Creates a division under the given league. Admin only.
// @Tags Leagues
// @Accept json
// @Produce json
// @Param league_id path uint true "League ID"
// @Param division body CreateDivisionRequest true "Division Data"
// @Success 201 {object} responses.SuccessResponse{data=Division} "Division created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "League not found"
// @Security ApiKeyAuth
// @Router /admin/leagues/{league_id}/divisions [post]
func (lc *LeagueController) CreateDivision(c *gin.Context) {
	leagueID, err := strconv.ParseUint(c.Param("league_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid league ID")
		return
	}

	var req CreateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	l, err := lc.repo.GetLeagueByID(uint(leagueID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve league: "+err.Error())
		return
	}
	if l == nil {
		responses.NotFound(c, "League")
		return
	}

	d := Division{DivisionName: req.DivisionName, LeagueID: uint(leagueID)}
	if err := lc.repo.CreateDivision(&d); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create division: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Division created successfully", d)
}

// GetDivisions godoc
// @Summary List divisions of a league
// @Description Retrieves all divisions belonging to a league.
// @Tags Leagues
// @Produce json
// @Param league_id path uint true "League ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Division} "List of divisions"
// @Failure 404 {object} responses.ErrorResponse "League not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /leagues/{league_id}/divisions [get]
func (lc *LeagueController) GetDivisions(c *gin.Context) {
	leagueID, err := strconv.ParseUint(c.Param("league_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid league ID")
		return
	}

	l, err := lc.repo.GetLeagueByID(uint(leagueID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve league: "+err.Error())
		return
	}
	if l == nil {
		responses.NotFound(c, "League")
		return
	}

	divisions, err := lc.repo.GetDivisionsByLeague(uint(leagueID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve divisions: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Divisions retrieved successfully", divisions)
}
