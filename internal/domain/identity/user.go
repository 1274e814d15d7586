package identity

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/flamenca/backend/internal/domain/shared"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents a back-office user. Every user holds exactly one role;
// the role fully determines their permission set through PermissionsFor.
type User struct {
	shared.BaseEntity
	Email        string
	PasswordHash string
	DisplayName  string
	Phone        string
	Role         Role
	Status       UserStatus
	LastLoginAt  *time.Time
}

// NewUser creates a new active user
func NewUser(email, password, displayName string, role Role) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Invalid role")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		DisplayName:  strings.TrimSpace(displayName),
		Role:         role,
		Status:       UserStatusActive,
	}, nil
}

// CheckPassword verifies the given password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword sets a new password
func (u *User) ChangePassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.Touch()
	return nil
}

// AssignRole changes the user's role
func (u *User) AssignRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Invalid role")
	}
	u.Role = role
	u.Touch()
	return nil
}

// SetPhone sets the user's phone number
func (u *User) SetPhone(phone string) error {
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	u.Phone = strings.TrimSpace(phone)
	u.Touch()
	return nil
}

// RecordLogin stores the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.Touch()
}

// IsActive reports whether the user may log in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Deactivate disables the user account
func (u *User) Deactivate() {
	u.Status = UserStatusDeactivated
	u.Touch()
}

// Activate re-enables the user account
func (u *User) Activate() {
	u.Status = UserStatusActive
	u.Touch()
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
