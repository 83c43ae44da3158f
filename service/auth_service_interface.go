package service

import (
	"context"

	"outfit-studio/models"
)

// AuthServiceInterface defines the contract for the external auth backend
type AuthServiceInterface interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)
	// Verify resolves a bearer token to its user; ErrUnauthorized when the token is rejected
	Verify(ctx context.Context, token string) (*models.User, error)
}
