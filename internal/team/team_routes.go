package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RamirezDiego7/ligatec/internal/league"
	mw "github.com/RamirezDiego7/ligatec/internal/middleware"
	"github.com/RamirezDiego7/ligatec/internal/session"
	"github.com/RamirezDiego7/ligatec/internal/user"
)

// TeamRoutes sets up all team-related routes.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, resolver *session.Resolver, jwtSecret string) {
	teamRepo := NewTeamRepository(db)
	userRepo := user.NewUserRepository(db)
	leagueRepo := league.NewLeagueRepository(db)
	teamService := NewTeamService(teamRepo, userRepo, leagueRepo)
	teamController := NewTeamController(teamRepo, teamService, userRepo)

	// Public routes
	router.GET("/teams", teamController.GetTeams)
	router.GET("/teams/:team_id", teamController.GetTeamByID)
	router.GET("/captains", teamController.GetCaptains)

	// Authenticated routes; all of them require a completed profile.
	authRoutes := router.Group("/")
	authRoutes.Use(mw.Auth(jwtSecret))
	authRoutes.Use(session.Resolve(resolver))
	authRoutes.Use(session.RequireCompleteProfile())
	{
		authRoutes.POST("/teams", teamController.CreateTeam)
		authRoutes.GET("/users/me/team", teamController.GetMyTeam)
		authRoutes.GET("/users/me/join-requests", teamController.GetMyJoinRequests)

		// Join requests; accept/deny and removal are leader-gated inside
		// the workflow service.
		authRoutes.POST("/teams/:team_id/join-requests", teamController.RequestToJoin)
		authRoutes.PUT("/teams/:team_id/join-requests/:user_id/:action", teamController.RespondToJoinRequest)
		authRoutes.DELETE("/teams/:team_id/players/:user_id", teamController.RemovePlayer)
	}

	// Admin console routes
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(mw.Auth(jwtSecret))
	adminRoutes.Use(session.Resolve(resolver))
	adminRoutes.Use(session.RequireAdmin())
	{
		adminRoutes.GET("/teams", teamController.AdminGetAllTeams)
	}
}
