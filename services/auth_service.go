package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL       = 24 * time.Hour
	jwtClaimRole   = "role"
	organizerLogin = "organizer"
)

// AuthService issues and verifies organizer tokens. There is a single
// organizer account whose bcrypt hash comes from configuration.
type AuthService interface {
	Login(ctx context.Context, password string) (token string, expiresAt time.Time, err error)
	ParseToken(token string) (models.UserRole, error)
}

type authService struct {
	passwordHash []byte
	jwtSecret    []byte
	now          func() time.Time
}

func NewAuthService(passwordHash, jwtSecret string) AuthService {
	return &authService{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		now:          time.Now,
	}
}

func (s *authService) Login(ctx context.Context, password string) (string, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return "", time.Time{}, err
	}

	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, fmt.Errorf("failed to compare password hash: %w", err)
	}

	now := s.now()
	expiresAt := now.Add(tokenTTL)
	claims := jwt.MapClaims{
		"sub":        organizerLogin,
		jwtClaimRole: string(models.RoleOrganizer),
		"exp":        expiresAt.Unix(),
		"iat":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *authService) ParseToken(tokenString string) (models.UserRole, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	role, ok := claims[jwtClaimRole].(string)
	if !ok {
		return "", ErrInvalidToken
	}

	switch models.UserRole(role) {
	case models.RoleOrganizer:
		return models.RoleOrganizer, nil
	default:
		return "", ErrInvalidToken
	}
}
