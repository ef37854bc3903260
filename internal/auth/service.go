package auth

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login fails. The message never
// distinguishes a wrong user from a wrong password.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Service authenticates the operator configured via environment. There is one
// operator account; its password is stored as a bcrypt hash.
type Service struct {
	jwtSecret     string
	accessTTL     time.Duration
	adminUser     string
	adminPassHash string
}

func NewService(jwtSecret string, accessTTL time.Duration, adminUser, adminPassHash string) *Service {
	return &Service{
		jwtSecret:     jwtSecret,
		accessTTL:     accessTTL,
		adminUser:     adminUser,
		adminPassHash: adminPassHash,
	}
}

// Login verifies the operator credentials and issues an access token.
func (s *Service) Login(username, password string) (string, error) {
	if username != s.adminUser {
		// Burn a comparison anyway so both failure paths cost the same.
		_ = bcrypt.CompareHashAndPassword([]byte(s.adminPassHash), []byte(password))
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPassHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := IssueAccessToken(s.jwtSecret, username, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("auth.Service.Login: %w", err)
	}

	return token, nil
}

// Validate checks a bearer token and returns its claims.
func (s *Service) Validate(token string) (*Claims, error) {
	return ValidateToken(s.jwtSecret, token)
}
