package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bee-go/internal/bee"
)

// PostsService handles post creation, retrieval, and the like/save toggles.
type PostsService struct {
	client *Client
}

// Create publishes a new post. The image must already be a URL.
func (s *PostsService) Create(ctx context.Context, post *bee.NewPost) (*bee.Post, error) {
	if post.Image == "" {
		return nil, &bee.ValidationError{Field: "image", Message: "image is required"}
	}
	var created bee.Post
	if err := s.client.do(ctx, http.MethodPost, "/posts/create", post, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ByUser returns all posts by one user.
func (s *PostsService) ByUser(ctx context.Context, userID int64) ([]bee.Post, error) {
	var posts []bee.Post
	path := fmt.Sprintf("/posts/all/%d", userID)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ByUsers returns the posts of every listed user in one round trip.
// The IDs travel as a comma-separated path segment. An empty ID list
// resolves to no posts without a request.
func (s *PostsService) ByUsers(ctx context.Context, userIDs []int64) ([]bee.Post, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	parts := make([]string, len(userIDs))
	for i, id := range userIDs {
		parts[i] = strconv.FormatInt(id, 10)
	}

	var posts []bee.Post
	path := "/posts/following/" + strings.Join(parts, ",")
	if err := s.client.do(ctx, http.MethodGet, path, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ByID fetches a single post.
func (s *PostsService) ByID(ctx context.Context, id int64) (*bee.Post, error) {
	var post bee.Post
	path := fmt.Sprintf("/posts/%d", id)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Like adds the caller to the post's like set and returns the updated post.
// Idempotent at the protocol level: the like set cannot double-count.
func (s *PostsService) Like(ctx context.Context, id int64) (*bee.Post, error) {
	return s.togglePath(ctx, "like", id)
}

// Unlike removes the caller from the post's like set and returns the
// updated post.
func (s *PostsService) Unlike(ctx context.Context, id int64) (*bee.Post, error) {
	return s.togglePath(ctx, "unlike", id)
}

func (s *PostsService) togglePath(ctx context.Context, action string, id int64) (*bee.Post, error) {
	var post bee.Post
	path := fmt.Sprintf("/posts/%s/%d", action, id)
	if err := s.client.do(ctx, http.MethodPut, path, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Save adds the post to the caller's saved collection.
func (s *PostsService) Save(ctx context.Context, id int64) (*bee.MessageResponse, error) {
	var resp bee.MessageResponse
	path := fmt.Sprintf("/posts/save/%d", id)
	if err := s.client.do(ctx, http.MethodPut, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Unsave removes the post from the caller's saved collection.
func (s *PostsService) Unsave(ctx context.Context, id int64) (*bee.MessageResponse, error) {
	var resp bee.MessageResponse
	path := fmt.Sprintf("/posts/unsave/%d", id)
	if err := s.client.do(ctx, http.MethodPut, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a post the caller owns.
func (s *PostsService) Delete(ctx context.Context, id int64) (*bee.MessageResponse, error) {
	var resp bee.MessageResponse
	path := fmt.Sprintf("/posts/delete/%d", id)
	if err := s.client.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

var _ bee.PostAPI = (*PostsService)(nil)
