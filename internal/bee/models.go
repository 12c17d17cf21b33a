package bee

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp wraps time.Time to accept the timestamp shapes the backend
// actually emits. Java's LocalDateTime serializes without a zone offset
// ("2006-01-02T15:04:05"), which the stdlib RFC3339 decoder rejects.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp: %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Time.Format(time.RFC3339) + `"`), nil
}

// User is a snapshot of a user record as returned by the backend.
// Relationship collections are sets keyed by ID; element order is not
// meaningful.
type User struct {
	ID         int64   `json:"id"`
	Username   string  `json:"username"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Mobile     string  `json:"mobile,omitempty"`
	Bio        string  `json:"bio,omitempty"`
	Gender     string  `json:"gender,omitempty"`
	Image      string  `json:"image,omitempty"`
	Following  []User  `json:"following"`
	Followers  []User  `json:"followers"`
	Stories    []Story `json:"stories"`
	SavedPosts []Post  `json:"savePost"`
}

// FollowingIDs returns the IDs of the users this user follows.
func (u *User) FollowingIDs() []int64 {
	ids := make([]int64, 0, len(u.Following))
	for _, f := range u.Following {
		ids = append(ids, f.ID)
	}
	return ids
}

// IsFollowing reports whether this user follows the user with the given ID.
func (u *User) IsFollowing(id int64) bool {
	for _, f := range u.Following {
		if f.ID == id {
			return true
		}
	}
	return false
}

// HasSaved reports whether this user has saved the post with the given ID.
func (u *User) HasSaved(postID int64) bool {
	for _, p := range u.SavedPosts {
		if p.ID == postID {
			return true
		}
	}
	return false
}

// Post is a snapshot of a post. Like state for a viewer is derived by
// membership in LikedBy, never stored as a separate flag.
type Post struct {
	ID        int64     `json:"id"`
	Caption   string    `json:"caption"`
	Image     string    `json:"image"`
	Location  string    `json:"location,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
	User      User      `json:"user"`
	Comments  []Comment `json:"comments"`
	LikedBy   []User    `json:"likedByUsers"`
}

// LikedByUser reports whether the user with the given ID has liked this post.
func (p *Post) LikedByUser(id int64) bool {
	for _, u := range p.LikedBy {
		if u.ID == id {
			return true
		}
	}
	return false
}

// Story is a snapshot of a story. Expiry is not enforced client-side.
type Story struct {
	ID        int64     `json:"id"`
	User      User      `json:"user"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption,omitempty"`
	Timestamp Timestamp `json:"timestamp"`
}

// Comment is a snapshot of a comment, owned by exactly one post.
type Comment struct {
	ID        int64     `json:"id"`
	User      User      `json:"user"`
	Content   string    `json:"content"`
	LikedBy   []User    `json:"likedByUsers"`
	CreatedAt Timestamp `json:"createdAt"`
}

// LikedByUser reports whether the user with the given ID has liked this comment.
func (c *Comment) LikedByUser(id int64) bool {
	for _, u := range c.LikedBy {
		if u.ID == id {
			return true
		}
	}
	return false
}

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the payload for authentication. The success response body
// is the raw bearer token, not JSON.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MessageResponse is the backend's generic acknowledgement envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserUpdate carries a partial profile edit. Nil fields are omitted from the
// request body and left untouched by the backend.
type UserUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Mobile *string `json:"mobile,omitempty"`
	Bio    *string `json:"bio,omitempty"`
	Gender *string `json:"gender,omitempty"`
	Image  *string `json:"image,omitempty"`
}

// Empty reports whether the update carries no fields.
func (u *UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Mobile == nil &&
		u.Bio == nil && u.Gender == nil && u.Image == nil
}

// NewPost is the payload for post creation. Image must already be a URL;
// local files are resolved through the media store before this is built.
type NewPost struct {
	Caption  string `json:"caption"`
	Image    string `json:"image"`
	Location string `json:"location,omitempty"`
}

// NewStory is the payload for story creation.
type NewStory struct {
	Image   string `json:"image"`
	Caption string `json:"caption,omitempty"`
}

// NewComment is the payload for comment creation.
type NewComment struct {
	Content string `json:"content"`
}

// Draft is a locally authored post held in the draft store until published.
type Draft struct {
	ID        string
	Caption   string
	Image     string
	Location  string
	CreatedAt time.Time
}

// CommandRecord is one entry in the local command journal.
type CommandRecord struct {
	ID         int64
	Command    string
	Parameters string
	Status     string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// StoryGroup holds one user's stories for display, newest activity first
// across groups, oldest story first within the group.
type StoryGroup struct {
	User    User
	Stories []Story
}

// Latest returns the timestamp of the most recent story in the group.
func (g *StoryGroup) Latest() time.Time {
	var latest time.Time
	for _, s := range g.Stories {
		if s.Timestamp.After(latest) {
			latest = s.Timestamp.Time
		}
	}
	return latest
}
