package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"outfit-studio/models"
)

// AuthService talks to the external token-based auth backend
// Implements AuthServiceInterface
type AuthService struct {
	baseURL string
	client  *http.Client
}

// NewAuthService creates a new AuthService
func NewAuthService(baseURL string, client *http.Client) *AuthService {
	return &AuthService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Ensure AuthService implements AuthServiceInterface
var _ AuthServiceInterface = (*AuthService)(nil)

// Login exchanges credentials for a session token
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := s.do(ctx, http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	log.Printf("✅ Login: user=%s", resp.User.ID)
	return &resp, nil
}

// Signup creates an account and returns its session token
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := s.do(ctx, http.MethodPost, "/auth/signup", "", req, &resp); err != nil {
		return nil, err
	}
	log.Printf("✅ Signup: user=%s", resp.User.ID)
	return &resp, nil
}

// Verify resolves a bearer token to its user
func (s *AuthService) Verify(ctx context.Context, token string) (*models.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrUnauthorized
	}
	var user models.User
	if err := s.do(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, ErrUnauthorized
	}
	return &user, nil
}

func (s *AuthService) do(ctx context.Context, method, path, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("❌ Auth %s %s: Request failed: %v", method, path, err)
		return &UpstreamError{Op: "auth " + path, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		log.Printf("❌ Auth %s %s: Upstream returned status %d", method, path, resp.StatusCode)
		return &UpstreamError{Op: "auth " + path, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{Op: "auth " + path, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
