package api

import (
	"context"
	"fmt"
	"net/http"

	"bee-go/internal/bee"
)

// CommentsService handles comment creation, retrieval, and like toggles.
type CommentsService struct {
	client *Client
}

// Create adds a comment to the given post.
func (s *CommentsService) Create(ctx context.Context, postID int64, comment *bee.NewComment) (*bee.Comment, error) {
	if comment.Content == "" {
		return nil, &bee.ValidationError{Field: "content", Message: "content is required"}
	}
	var created bee.Comment
	path := fmt.Sprintf("/api/comments/create/%d", postID)
	if err := s.client.do(ctx, http.MethodPost, path, comment, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ByID fetches a single comment.
func (s *CommentsService) ByID(ctx context.Context, id int64) (*bee.Comment, error) {
	var comment bee.Comment
	path := fmt.Sprintf("/api/comments/%d", id)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Like adds the caller to the comment's like set and returns the updated
// comment.
func (s *CommentsService) Like(ctx context.Context, id int64) (*bee.Comment, error) {
	return s.togglePath(ctx, "like", id)
}

// Unlike removes the caller from the comment's like set and returns the
// updated comment.
func (s *CommentsService) Unlike(ctx context.Context, id int64) (*bee.Comment, error) {
	return s.togglePath(ctx, "unlike", id)
}

func (s *CommentsService) togglePath(ctx context.Context, action string, id int64) (*bee.Comment, error) {
	var comment bee.Comment
	path := fmt.Sprintf("/api/comments/%s/%d", action, id)
	if err := s.client.do(ctx, http.MethodPut, path, nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

var _ bee.CommentAPI = (*CommentsService)(nil)
