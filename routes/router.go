package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/RamirezDiego7/ligatec/config"
	"github.com/RamirezDiego7/ligatec/internal/auth"
	"github.com/RamirezDiego7/ligatec/internal/league"
	"github.com/RamirezDiego7/ligatec/internal/match"
	mw "github.com/RamirezDiego7/ligatec/internal/middleware"
	"github.com/RamirezDiego7/ligatec/internal/session"
	"github.com/RamirezDiego7/ligatec/internal/team"
	"github.com/RamirezDiego7/ligatec/internal/user"
)

func SetupRoutes(appConfig *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "LigaTEC API", "docs": "/swagger/index.html"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	db := config.DB
	userRepo := user.NewUserRepository(db)
	resolver := session.NewResolver(userRepo)
	jwtSecret := appConfig.JWT.AccessTokenSecret

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig)
	league.LeagueRoutes(api, db, resolver, jwtSecret)
	team.TeamRoutes(api, db, resolver, jwtSecret)
	match.MatchRoutes(api, db, resolver, jwtSecret)

	// Admin user management; the user package cannot register its own
	// routes because session depends on it.
	userController := user.NewUserController(userRepo)
	adminUsers := api.Group("/admin")
	adminUsers.Use(mw.Auth(jwtSecret), session.Resolve(resolver), session.RequireAdmin())
	adminUsers.PUT("/users/:user_id/role", userController.AssignRole)

	return r
}
