package api

import (
	"context"
	"net/http"
	"strings"

	"bee-go/internal/bee"
)

// AuthService handles account creation and authentication.
type AuthService struct {
	client *Client
}

// Signup registers a new account. All four fields are required; the backend
// validates their content.
func (s *AuthService) Signup(ctx context.Context, req *bee.SignupRequest) (*bee.MessageResponse, error) {
	if err := validateSignup(req); err != nil {
		return nil, err
	}
	var resp bee.MessageResponse
	if err := s.client.do(ctx, http.MethodPost, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a bearer token. Unlike every other
// endpoint, the success body is the raw opaque token, not JSON.
func (s *AuthService) Login(ctx context.Context, req *bee.LoginRequest) (string, error) {
	if err := validateLogin(req); err != nil {
		return "", err
	}
	data, err := s.client.raw(ctx, http.MethodPost, "/auth/login", req)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", &Error{Message: "login succeeded but no token was returned"}
	}
	return token, nil
}

func validateSignup(req *bee.SignupRequest) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", req.Name},
		{"email", req.Email},
		{"username", req.Username},
		{"password", req.Password},
	}
	for _, f := range fields {
		if f.value == "" {
			return &bee.ValidationError{Field: f.name, Message: f.name + " is required"}
		}
	}
	return nil
}

func validateLogin(req *bee.LoginRequest) error {
	if req.Email == "" {
		return &bee.ValidationError{Field: "email", Message: "email is required"}
	}
	if req.Password == "" {
		return &bee.ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}
