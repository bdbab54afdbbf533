package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/RamirezDiego7/ligatec/internal/middleware"
	"github.com/RamirezDiego7/ligatec/internal/session"
	"github.com/RamirezDiego7/ligatec/internal/team"
)

// RegisterMatchRoutes mounts the public calendar and the admin scheduling
// endpoints.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, resolver *session.Resolver, jwtSecret string) {
	repo := NewMatchRepository(db)
	teamRepo := team.NewTeamRepository(db)
	controller := NewMatchController(repo, teamRepo)

	router.GET("/matches", controller.GetCalendar)

	admin := router.Group("/admin")
	admin.Use(mw.Auth(jwtSecret), session.Resolve(resolver), session.RequireAdmin())
	{
		admin.POST("/matches", controller.CreateMatch)
		admin.PUT("/matches/:match_id", controller.UpdateMatch)
	}
}
