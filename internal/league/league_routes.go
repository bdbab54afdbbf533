package league

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/RamirezDiego7/ligatec/internal/middleware"
	"github.com/RamirezDiego7/ligatec/internal/session"
)

// LeagueRoutes sets up all league and division routes.
func LeagueRoutes(router *gin.RouterGroup, db *gorm.DB, resolver *session.Resolver, jwtSecret string) {
	repo := NewLeagueRepository(db)
	controller := NewLeagueController(repo)

	// Public routes
	router.GET("/leagues", controller.GetAllLeagues)
	router.GET("/leagues/:league_id/divisions", controller.GetDivisions)

	// Admin console routes
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(mw.Auth(jwtSecret))
	adminRoutes.Use(session.Resolve(resolver))
	adminRoutes.Use(session.RequireAdmin())
	{
		adminRoutes.POST("/leagues", controller.CreateLeague)
		adminRoutes.POST("/leagues/:league_id/divisions", controller.CreateDivision)
	}
}
