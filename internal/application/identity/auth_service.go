package identity

import (
	"context"
	"time"

	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/flamenca/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates a user by email and password and returns a token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", input.Email))

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.IsActive() {
		s.logger.Warn("Login attempt for deactivated account", zap.String("email", input.Email))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.CheckPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Login still succeeds when the timestamp write fails
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))

	return &LoginResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        toUserInfo(user),
	}, nil
}

// GetCurrentUser returns the authenticated user's profile and permissions
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	info := toUserInfo(user)
	return &info, nil
}

// ChangePassword changes a user's password after verifying the current one
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if !user.CheckPassword(input.CurrentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}

	if err := user.ChangePassword(input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))
	return nil
}

func toUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Phone:       user.Phone,
		Role:        user.Role,
		RoleLabel:   user.Role.Label(),
		Status:      user.Status,
		Permissions: identity.PermissionsFor(user.Role),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
