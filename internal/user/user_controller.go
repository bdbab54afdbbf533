package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RamirezDiego7/ligatec/pkg/responses"
)

// UserController handles the admin user-management endpoints.
type UserController struct {
	repo UserRepository
}

// NewUserController creates a new user controller.
func NewUserController(repo UserRepository) *UserController {
	return &UserController{repo: repo}
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func validAssignableRole(role string) bool {
	switch role {
	case RolePlayer, RoleLeader, RoleAdmin:
		return true
	}
	return false
}

// AssignRole godoc
// @Summary Assign a role to a user
// @Description Sets a user's role to Player, Leader or Admin. Admin only.
// @Tags Users
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param role body AssignRoleRequest true "Role to assign"
// @Success 200 {object} responses.SuccessResponse "Role assigned"
// @Failure 400 {object} responses.ErrorResponse "Invalid role"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /admin/users/{user_id}/role [put]
func (uc *UserController) AssignRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user id")
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if !validAssignableRole(req.Role) {
		responses.BadRequest(c, "Role must be one of Player, Leader, Admin")
		return
	}

	u, err := uc.repo.GetByID(uint(userID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve user: "+err.Error())
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}

	if err := uc.repo.UpdateFields(u.ID, map[string]interface{}{"role": req.Role}); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to assign role: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Role assigned successfully", gin.H{"user_id": u.ID, "role": req.Role})
}
