package handler

import (
	appidentity "github.com/flamenca/backend/internal/application/identity"
	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles user management HTTP requests
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest is the create user request body
type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Phone       string `json:"phone"`
	Role        string `json:"role" binding:"required,oneof=admin manager employee"`
}

// UpdateUserRequest is the update user request body
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	Phone       *string `json:"phone"`
	Active      *bool   `json:"active"`
}

// AssignRoleRequest is the role assignment request body
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager employee"`
}

// Create godoc
// @Summary  Create user
// @Tags     users
// @Router   /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	info, err := h.userService.Create(c.Request.Context(), appidentity.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Role:        identity.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toUserResponse(*info))
}

// List godoc
// @Summary  List users
// @Tags     users
// @Router   /users [get]
func (h *UserHandler) List(c *gin.Context) {
	result, err := h.userService.List(c.Request.Context(), parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	users := make([]UserResponse, len(result.Items))
	for i, info := range result.Items {
		users[i] = toUserResponse(info)
	}
	h.SuccessWithMeta(c, users, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary  Get user
// @Tags     users
// @Router   /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	info, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toUserResponse(*info))
}

// Update godoc
// @Summary  Update user
// @Tags     users
// @Router   /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	info, err := h.userService.Update(c.Request.Context(), appidentity.UpdateUserInput{
		UserID:      id,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Active:      req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toUserResponse(*info))
}

// AssignRole godoc
// @Summary  Assign role to user
// @Tags     users
// @Router   /users/{id}/role [put]
func (h *UserHandler) AssignRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	info, err := h.userService.AssignRole(c.Request.Context(), appidentity.AssignRoleInput{
		UserID:  id,
		Role:    identity.Role(req.Role),
		ActorID: actorID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toUserResponse(*info))
}

// ResetPassword godoc
// @Summary  Reset a user's password
// @Tags     users
// @Router   /users/{id}/reset-password [post]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	result, err := h.userService.ResetPassword(c.Request.Context(), appidentity.ResetPasswordInput{UserID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"temp_password":     result.TempPassword,
		"notification_sent": result.NotificationSent,
	})
}

// Delete godoc
// @Summary  Delete user
// @Tags     users
// @Router   /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
