package auth

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/RamirezDiego7/ligatec/config"
	"github.com/RamirezDiego7/ligatec/internal/middleware"
	"github.com/RamirezDiego7/ligatec/internal/user"
	"github.com/RamirezDiego7/ligatec/pkg/token"
	"github.com/RamirezDiego7/ligatec/pkg/utils"
	hashutil "github.com/RamirezDiego7/ligatec/utils"
)

type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{repo: repo, config: cfg}
}

func (ac *AuthController) generateAndSaveTokens(u *user.User) (string, string, error) {
	accessToken, err := token.GenerateJWT(u.ID, u.EffectiveRole(), ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString := utils.GenerateRandomToken(32)
	refreshToken := &user.RefreshToken{
		UserID:    u.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}

	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

// @Summary      Register a new user
// @Description  Create a new account with name, email and password. New accounts start as players.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "Registration details"
// @Success      201   {object} AuthResponse "User registered, returns tokens and user info"
// @Failure      400   {object} map[string]string "Validation error or invalid input"
// @Failure      409   {object} map[string]string "User with this email already exists"
// @Failure      500   {object} map[string]string "Internal server error"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	existing, err := ac.repo.GetUserByEmail(strings.ToLower(req.Email))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	hashedPassword, err := hashutil.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	newUser := &user.User{
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Password: hashedPassword,
		Role:     user.RolePlayer,
	}

	if err := ac.repo.CreateUser(newUser); err != nil {
		log.Error().Err(err).Str("email", newUser.Email).Msg("user creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User creation failed"})
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(newUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(newUser),
	})
}

// @Summary      Login user
// @Description  Authenticate with email and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200   {object} AuthResponse "Login successful, returns tokens and user info"
// @Failure      400   {object} map[string]string "Invalid input"
// @Failure      401   {object} map[string]string "Invalid credentials"
// @Failure      404   {object} map[string]string "User not found"
// @Failure      500   {object} map[string]string "Internal server error"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	foundUser, err := ac.repo.GetUserByEmail(strings.ToLower(req.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !hashutil.CheckPassword(foundUser.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(foundUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(foundUser),
	})
}

// @Summary      Refresh Access Token
// @Description  Issues a new access token from a valid refresh token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh Token Request"
// @Success      200 {object} map[string]string "Returns a new access token"
// @Failure      400 {object} map[string]string "Invalid input"
// @Failure      401 {object} map[string]string "Invalid or expired refresh token"
// @Failure      500 {object} map[string]string "Token generation failed"
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	rt, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	// The role claim is re-read from storage so a promotion to leader
	// takes effect on the next refresh.
	u, err := ac.repo.GetUserByID(rt.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	newAccessToken, err := token.GenerateJWT(u.ID, u.EffectiveRole(), ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "New access token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": newAccessToken})
}

// @Summary      Logout User
// @Description  Invalidates the user's refresh token, optionally all sessions.
// @Tags         Auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body LogoutRequest false "Logout options"
// @Success      200 {object} map[string]string "Logged out successfully"
// @Failure      400 {object} map[string]string "Invalid input"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      500 {object} map[string]string "Failed to logout"
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
		return
	}

	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if req.RefreshToken != "" {
		if err := ac.repo.InvalidateRefreshToken(req.RefreshToken); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invalidate refresh token"})
				return
			}
		}
	}

	if req.InvalidateAllSessions {
		if err := ac.repo.InvalidateAllRefreshTokensForUser(userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invalidate all sessions"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":                  "Logged out successfully",
		"all_sessions_invalidated": req.InvalidateAllSessions,
	})
}

// @Summary      Get User Profile
// @Description  Retrieves the profile of the currently authenticated user.
// @Tags         Profile
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} UserResponse "User profile data"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      404 {object} map[string]string "User not found"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
		return
	}

	currentUser, err := ac.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	c.JSON(http.StatusOK, FilterUserRecord(currentUser))
}

// @Summary      Complete Profile
// @Description  Sets the student id on the current user's profile. Required before joining or creating teams.
// @Tags         Profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        profileData body CompleteProfileRequest true "Student id"
// @Success      200 {object} UserResponse "Updated user profile"
// @Failure      400 {object} map[string]string "Invalid student id format"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /auth/me/matricula [put]
func (ac *AuthController) CompleteProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
		return
	}

	var req CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	matricula := strings.ToUpper(strings.TrimSpace(req.Matricula))
	if !user.ValidMatricula(matricula) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid matricula, expected format A01234567"})
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	u.Matricula = matricula
	if err := ac.repo.UpdateUser(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update profile"})
		return
	}
	c.JSON(http.StatusOK, FilterUserRecord(u))
}

// @Summary      Update User Profile
// @Description  Updates the profile of the currently authenticated user.
// @Tags         Profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        profileData body UpdateProfileRequest true "Profile data to update"
// @Success      200 {object} UserResponse "Updated user profile data"
// @Failure      400 {object} map[string]string "Invalid input"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      404 {object} map[string]string "User not found"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /auth/me [put]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	if req.Name != nil {
		u.Name = *req.Name
	}

	if err := ac.repo.UpdateUser(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update profile"})
		return
	}
	c.JSON(http.StatusOK, FilterUserRecord(u))
}

// @Summary      Change Password
// @Description  Allows an authenticated user to change their password.
// @Tags         Profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        passwords body ChangePasswordRequest true "Old and new password details"
// @Success      200 {object} map[string]string "Password changed successfully"
// @Failure      400 {object} map[string]string "Invalid input or password mismatch"
// @Failure      401 {object} map[string]string "Unauthorized or incorrect old password"
// @Failure      500 {object} map[string]string "Failed to change password"
// @Router       /auth/change-password [post]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	if !hashutil.CheckPassword(u.Password, req.OldPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect old password"})
		return
	}

	if req.OldPassword == req.NewPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password cannot be the same as the old password"})
		return
	}

	newHashedPassword, err := hashutil.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash new password"})
		return
	}

	u.Password = newHashedPassword
	if err := ac.repo.UpdateUser(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	if err := ac.repo.InvalidateAllRefreshTokensForUser(userID); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("failed to revoke sessions after password change")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
