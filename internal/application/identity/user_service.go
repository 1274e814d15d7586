package identity

import (
	"context"
	"crypto/rand"
	"math/big"

	appnotification "github.com/flamenca/backend/internal/application/notification"
	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// tempPasswordAlphabet excludes look-alike characters
const tempPasswordAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

// UserService manages back-office user accounts
type UserService struct {
	userRepo   identity.UserRepository
	autoNotify *appnotification.AutoNotifyService
	logger     *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	autoNotify *appnotification.AutoNotifyService,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		autoNotify: autoNotify,
		logger:     logger,
	}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserInfo, error) {
	user, err := identity.NewUser(input.Email, input.Password, input.DisplayName, input.Role)
	if err != nil {
		return nil, err
	}
	if err := user.SetPhone(input.Phone); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", user.Role.String()))

	info := toUserInfo(user)
	return &info, nil
}

// Update modifies a user's profile
func (s *UserService) Update(ctx context.Context, input UpdateUserInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
		user.Touch()
	}
	if input.Phone != nil {
		if err := user.SetPhone(*input.Phone); err != nil {
			return nil, err
		}
	}
	if input.Active != nil {
		if *input.Active {
			user.Activate()
		} else {
			user.Deactivate()
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

// AssignRole changes a user's role. Admins cannot demote themselves so the
// system always keeps at least one admin.
func (s *UserService) AssignRole(ctx context.Context, input AssignRoleInput) (*UserInfo, error) {
	if input.UserID == input.ActorID && input.Role != identity.RoleAdmin {
		return nil, shared.NewDomainError("SELF_DEMOTION", "Admins cannot remove their own admin role")
	}

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := user.AssignRole(input.Role); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Role assigned",
		zap.String("user_id", user.ID.String()),
		zap.String("role", input.Role.String()),
		zap.String("actor_id", input.ActorID.String()))

	info := toUserInfo(user)
	return &info, nil
}

// ResetPassword generates a temporary password, applies it and sends it to
// the user's phone by SMS. The temporary password is also returned to the
// calling admin in case the SMS cannot be delivered.
func (s *UserService) ResetPassword(ctx context.Context, input ResetPasswordInput) (*ResetPasswordResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate temporary password")
	}

	if err := user.ChangePassword(tempPassword); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Password reset", zap.String("user_id", user.ID.String()))

	notified := s.autoNotify.NotifyPasswordReset(ctx, appnotification.PasswordResetEvent{
		EmployeeID:    user.ID,
		EmployeeName:  user.DisplayName,
		EmployeePhone: user.Phone,
		TempPassword:  tempPassword,
	})

	return &ResetPasswordResult{
		TempPassword:     tempPassword,
		NotificationSent: notified,
	}, nil
}

// Get returns a user by ID
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

// List returns users matching the filter
func (s *UserService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[UserInfo], error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = toUserInfo(&users[i])
	}
	return shared.NewPaginated(infos, total, filter.Page, filter.PageSize), nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

// generateTempPassword builds a 12 character random password ending in "A1"
// so it satisfies the letter and number rules
func generateTempPassword() (string, error) {
	chars := make([]byte, 10)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range chars {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		chars[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(chars) + "A1", nil
}
