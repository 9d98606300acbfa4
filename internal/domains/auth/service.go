package auth

import "context"

// Service authenticates configured users and issues session tokens.
// Credentials live in configuration; swapping in a real identity
// provider only replaces this implementation.
type Service interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
}
