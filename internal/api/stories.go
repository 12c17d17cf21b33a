package api

import (
	"context"
	"fmt"
	"net/http"

	"bee-go/internal/bee"
)

// StoriesService handles story creation and retrieval. Story expiry is the
// backend's concern; the client never filters by age.
type StoriesService struct {
	client *Client
}

// Create publishes a new story. The image must already be a URL.
func (s *StoriesService) Create(ctx context.Context, story *bee.NewStory) (*bee.Story, error) {
	if story.Image == "" {
		return nil, &bee.ValidationError{Field: "image", Message: "image is required"}
	}
	var created bee.Story
	if err := s.client.do(ctx, http.MethodPost, "/api/story/create", story, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ByUser returns all stories by one user.
func (s *StoriesService) ByUser(ctx context.Context, userID int64) ([]bee.Story, error) {
	var stories []bee.Story
	path := fmt.Sprintf("/api/story/%d", userID)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

var _ bee.StoryAPI = (*StoriesService)(nil)
