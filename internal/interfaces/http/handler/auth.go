package handler

import (
	"time"

	"github.com/flamenca/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest is the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the login response body
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// UserResponse is the user representation returned by the API
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	RoleLabel   string     `json:"role_label"`
	Status      string     `json:"status"`
	Permissions []string   `json:"permissions"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ChangePasswordRequest is the change password request body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// Login godoc
// @Summary  User login
// @Tags     auth
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresAt:   result.ExpiresAt,
		TokenType:   result.TokenType,
		User:        toUserResponse(result.User),
	})
}

// Me godoc
// @Summary  Current user profile
// @Tags     auth
// @Router   /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toUserResponse(*info))
}

// ChangePassword godoc
// @Summary  Change own password
// @Tags     auth
// @Router   /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), identity.ChangePasswordInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func toUserResponse(info identity.UserInfo) UserResponse {
	permissions := make([]string, len(info.Permissions))
	for i, p := range info.Permissions {
		permissions[i] = string(p)
	}
	return UserResponse{
		ID:          info.ID,
		Email:       info.Email,
		DisplayName: info.DisplayName,
		Phone:       info.Phone,
		Role:        info.Role.String(),
		RoleLabel:   info.RoleLabel,
		Status:      string(info.Status),
		Permissions: permissions,
		LastLoginAt: info.LastLoginAt,
		CreatedAt:   info.CreatedAt,
	}
}
