package auth

import (
	"errors"
	"time"

	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/flamenca/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrInvalidRole      = errors.New("invalid role in claims")
)

// Claims represents custom JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Token represents an issued access token
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"` // Bearer
}

// JWTService handles JWT token operations
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateToken issues a signed access token for the given user
func (s *JWTService) GenerateToken(user *identity.User) (*Token, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Token{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}

// ValidateToken validates a token string and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	if !identity.Role(claims.Role).IsValid() {
		return nil, ErrInvalidRole
	}

	return claims, nil
}

// GetUserUUID extracts and parses the user ID from claims
func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetRole returns the role carried in the claims
func (c *Claims) GetRole() identity.Role {
	return identity.Role(c.Role)
}

// HasPermission checks if the token's role grants a specific permission
func (c *Claims) HasPermission(permission identity.Permission) bool {
	return identity.HasPermission(c.GetRole(), permission)
}

// GetExpiration returns the configured token expiration duration
func (s *JWTService) GetExpiration() time.Duration {
	return s.expiration
}
