package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RamirezDiego7/ligatec/config"
	"github.com/RamirezDiego7/ligatec/internal/middleware"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	authRepo := NewAuthRepository(db)
	authController := NewAuthController(authRepo, appConfig)

	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", authController.Register)
		authPublic.POST("/login", authController.Login)
		authPublic.POST("/refresh-token", authController.RefreshToken)
	}

	authProtected := router.Group("/auth")
	authProtected.Use(middleware.Auth(appConfig.JWT.AccessTokenSecret))
	{
		authProtected.GET("/me", authController.GetProfile)
		authProtected.PUT("/me", authController.UpdateProfile)
		authProtected.PUT("/me/matricula", authController.CompleteProfile)
		authProtected.POST("/change-password", authController.ChangePassword)
		authProtected.POST("/logout", authController.Logout)
	}
}
