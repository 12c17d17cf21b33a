package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"bee-go/internal/bee"
)

// UsersService handles user lookup, search, the follow graph, and profile
// edits.
type UsersService struct {
	client *Client
}

// Current resolves the user the bearer token belongs to.
func (s *UsersService) Current(ctx context.Context) (*bee.User, error) {
	var user bee.User
	if err := s.client.do(ctx, http.MethodGet, "/api/users/req", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ByID fetches a user by numeric ID.
func (s *UsersService) ByID(ctx context.Context, id int64) (*bee.User, error) {
	var user bee.User
	path := fmt.Sprintf("/api/users/id/%d", id)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ByUsername fetches a user by username.
func (s *UsersService) ByUsername(ctx context.Context, username string) (*bee.User, error) {
	if username == "" {
		return nil, &bee.ValidationError{Field: "username", Message: "username is required"}
	}
	var user bee.User
	path := "/api/users/username/" + url.PathEscape(username)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Search returns users matching the query.
func (s *UsersService) Search(ctx context.Context, query string) ([]bee.User, error) {
	if query == "" {
		return nil, &bee.ValidationError{Field: "q", Message: "search query is required"}
	}
	var users []bee.User
	path := "/api/users/search?q=" + url.QueryEscape(query)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Follow adds the given user to the caller's following set. Toggle-safe at
// the protocol level: following an already-followed user is harmless.
func (s *UsersService) Follow(ctx context.Context, id int64) (*bee.MessageResponse, error) {
	var resp bee.MessageResponse
	path := fmt.Sprintf("/api/users/follow/%d", id)
	if err := s.client.do(ctx, http.MethodPut, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Unfollow removes the given user from the caller's following set.
func (s *UsersService) Unfollow(ctx context.Context, id int64) (*bee.MessageResponse, error) {
	var resp bee.MessageResponse
	path := fmt.Sprintf("/api/users/unfollow/%d", id)
	if err := s.client.do(ctx, http.MethodPut, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update applies a partial profile edit to the given user.
func (s *UsersService) Update(ctx context.Context, id int64, update *bee.UserUpdate) (*bee.User, error) {
	var user bee.User
	path := fmt.Sprintf("/api/users/update/%d", id)
	if err := s.client.do(ctx, http.MethodPut, path, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

var _ bee.UserAPI = (*UsersService)(nil)
