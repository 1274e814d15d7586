package models

import (
	"time"

	"github.com/flamenca/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity
type UserModel struct {
	BaseModel
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_users_email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	DisplayName  string     `gorm:"type:varchar(200)"`
	Phone        string     `gorm:"type:varchar(50)"`
	Role         string     `gorm:"type:varchar(20);not null"`
	Status       string     `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		DisplayName:  m.DisplayName,
		Phone:        m.Phone,
		Role:         identity.Role(m.Role),
		Status:       identity.UserStatus(m.Status),
		LastLoginAt:  m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Phone = u.Phone
	m.Role = u.Role.String()
	m.Status = string(u.Status)
	m.LastLoginAt = u.LastLoginAt
}
