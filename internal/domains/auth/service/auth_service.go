package service

import (
	"context"
	"fmt"
	"strings"

	"image-resizer-backend/internal/config"
	"image-resizer-backend/internal/domains/auth"
	"image-resizer-backend/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	users      []config.UserCredential
	jwtManager *jwt.Manager
}

func NewAuthService(users []config.UserCredential, jwtManager *jwt.Manager) auth.Service {
	return &authService{
		users:      users,
		jwtManager: jwtManager,
	}
}

func (s *authService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	for _, u := range s.users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
			return nil, auth.ErrInvalidCredentials
		}

		token, err := s.jwtManager.GenerateToken(u.Email, u.Email, "user")
		if err != nil {
			return nil, fmt.Errorf("generate token: %w", err)
		}
		return &auth.LoginResponse{Email: u.Email, Token: token}, nil
	}

	return nil, auth.ErrInvalidCredentials
}
