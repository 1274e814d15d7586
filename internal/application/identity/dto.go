package identity

import (
	"time"

	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	TokenType   string
	User        UserInfo
}

// UserInfo contains user information returned to clients
type UserInfo struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Phone       string
	Role        identity.Role
	RoleLabel   string
	Status      identity.UserStatus
	Permissions []identity.Permission
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// CreateUserInput contains the input for creating a user
type CreateUserInput struct {
	Email       string
	Password    string
	DisplayName string
	Phone       string
	Role        identity.Role
}

// UpdateUserInput contains the input for updating a user
type UpdateUserInput struct {
	UserID      uuid.UUID
	DisplayName *string
	Phone       *string
	Active      *bool
}

// AssignRoleInput contains the input for a role change
type AssignRoleInput struct {
	UserID uuid.UUID
	Role   identity.Role
	// ActorID is the admin performing the change
	ActorID uuid.UUID
}

// ResetPasswordInput contains the input for an admin password reset
type ResetPasswordInput struct {
	UserID uuid.UUID
}

// ResetPasswordResult reports the outcome of a password reset
type ResetPasswordResult struct {
	// TempPassword is the generated temporary password. It is returned once
	// and never stored in plain text.
	TempPassword     string
	NotificationSent bool
}
