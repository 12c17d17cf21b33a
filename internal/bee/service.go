package bee

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrNoSession is returned by operations that need an authenticated user
// when no session is established.
var ErrNoSession = errors.New("not logged in")

// Session exposes the current identity to the service layer.
// Implemented by session.Store.
type Session interface {
	// CurrentUser returns a copy of the logged-in user, or nil.
	CurrentUser() *User

	// Refresh re-resolves the current user under the existing token.
	Refresh(ctx context.Context) error
}

// UserAPI is the subset of user operations the service orchestrates.
type UserAPI interface {
	Follow(ctx context.Context, id int64) (*MessageResponse, error)
	Unfollow(ctx context.Context, id int64) (*MessageResponse, error)
	Update(ctx context.Context, id int64, update *UserUpdate) (*User, error)
}

// PostAPI is the subset of post operations the service orchestrates.
type PostAPI interface {
	Create(ctx context.Context, post *NewPost) (*Post, error)
	ByUsers(ctx context.Context, userIDs []int64) ([]Post, error)
	Like(ctx context.Context, id int64) (*Post, error)
	Unlike(ctx context.Context, id int64) (*Post, error)
	Save(ctx context.Context, id int64) (*MessageResponse, error)
	Unsave(ctx context.Context, id int64) (*MessageResponse, error)
}

// StoryAPI is the subset of story operations the service orchestrates.
type StoryAPI interface {
	Create(ctx context.Context, story *NewStory) (*Story, error)
	ByUser(ctx context.Context, userID int64) ([]Story, error)
}

// CommentAPI is the subset of comment operations the service orchestrates.
type CommentAPI interface {
	Create(ctx context.Context, postID int64, comment *NewComment) (*Comment, error)
	Like(ctx context.Context, id int64) (*Comment, error)
	Unlike(ctx context.Context, id int64) (*Comment, error)
}

// Service is the orchestration layer between the commands and the backend:
// feed assembly, story grouping, the publish pipeline, and toggle handling.
// Mutating operations are serialized so a toggle never overlaps another.
type Service struct {
	session  Session
	users    UserAPI
	posts    PostAPI
	stories  StoryAPI
	comments CommentAPI
	media    MediaStore
	drafts   DraftStore
	logger   Logger
	clock    Clock
	idgen    IDGenerator

	mu sync.Mutex
}

// NewService creates a Service with the provided dependencies.
func NewService(session Session, users UserAPI, posts PostAPI, stories StoryAPI, comments CommentAPI, media MediaStore, drafts DraftStore, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		session:  session,
		users:    users,
		posts:    posts,
		stories:  stories,
		comments: comments,
		media:    media,
		drafts:   drafts,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
	}
}

// Feed returns the posts of the current user and everyone they follow,
// newest first.
func (s *Service) Feed(ctx context.Context) ([]Post, error) {
	user := s.session.CurrentUser()
	if user == nil {
		return nil, ErrNoSession
	}

	ids := append(user.FollowingIDs(), user.ID)
	posts, err := s.posts.ByUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt.Time)
	})
	return posts, nil
}

// StoryFeed returns the stories of the current user and everyone they
// follow, grouped per author. Groups are ordered by most recent story;
// stories within a group run oldest to newest.
func (s *Service) StoryFeed(ctx context.Context) ([]StoryGroup, error) {
	user := s.session.CurrentUser()
	if user == nil {
		return nil, ErrNoSession
	}

	authors := append([]User{*user}, user.Following...)
	var groups []StoryGroup
	for _, author := range authors {
		stories, err := s.stories.ByUser(ctx, author.ID)
		if err != nil {
			return nil, fmt.Errorf("fetching stories for %s: %w", author.Username, err)
		}
		if len(stories) == 0 {
			continue
		}
		sort.SliceStable(stories, func(i, j int) bool {
			return stories[i].Timestamp.Before(stories[j].Timestamp.Time)
		})
		groups = append(groups, StoryGroup{User: author, Stories: stories})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Latest().After(groups[j].Latest())
	})
	return groups, nil
}

// PublishPost resolves the image reference and creates the post.
// A local file path is uploaded through the media store first; an http(s)
// URL passes through untouched.
func (s *Service) PublishPost(ctx context.Context, caption, image, location string) (*Post, error) {
	if err := requireField("caption", caption); err != nil {
		return nil, err
	}
	resolved, err := s.resolveImage(ctx, image)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.Create(ctx, &NewPost{Caption: caption, Image: resolved, Location: location})
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post published", "id", post.ID)
	return post, nil
}

// PublishStory resolves the image reference and creates the story.
func (s *Service) PublishStory(ctx context.Context, image, caption string) (*Story, error) {
	resolved, err := s.resolveImage(ctx, image)
	if err != nil {
		return nil, err
	}

	story, err := s.stories.Create(ctx, &NewStory{Image: resolved, Caption: caption})
	if err != nil {
		return nil, fmt.Errorf("creating story: %w", err)
	}

	s.logger.Info("story published", "id", story.ID)
	return story, nil
}

// CommentOn creates a comment on the given post.
func (s *Service) CommentOn(ctx context.Context, postID int64, content string) (*Comment, error) {
	if err := requireField("content", content); err != nil {
		return nil, err
	}

	comment, err := s.comments.Create(ctx, postID, &NewComment{Content: content})
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

// UpdateProfile applies a partial profile edit and refreshes the session so
// dependent readers observe the updated record.
func (s *Service) UpdateProfile(ctx context.Context, update *UserUpdate) (*User, error) {
	user := s.session.CurrentUser()
	if user == nil {
		return nil, ErrNoSession
	}
	if update.Empty() {
		return nil, invalid("update", "no fields to update")
	}

	updated, err := s.users.Update(ctx, user.ID, update)
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	if err := s.session.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("refreshing session after update: %w", err)
	}
	return updated, nil
}

// ToggleLike flips the viewer's like on the post. The held snapshot is
// patched before the call and the patch is undone if the call fails.
// Returns the new like state.
func (s *Service) ToggleLike(ctx context.Context, post *Post) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewer := s.session.CurrentUser()
	if viewer == nil {
		return false, ErrNoSession
	}

	liked := post.LikedByUser(viewer.ID)
	before := post.LikedBy
	if liked {
		post.LikedBy = removeUser(post.LikedBy, viewer.ID)
	} else {
		post.LikedBy = append(append([]User{}, post.LikedBy...), *viewer)
	}

	var updated *Post
	var err error
	if liked {
		updated, err = s.posts.Unlike(ctx, post.ID)
	} else {
		updated, err = s.posts.Like(ctx, post.ID)
	}
	if err != nil {
		post.LikedBy = before
		s.logger.Warn("like toggle failed, rolled back", "post", post.ID, "error", err)
		return liked, err
	}

	if updated != nil && updated.ID == post.ID {
		*post = *updated
	}
	return !liked, nil
}

// ToggleSave flips the viewer's saved state for the post, patching the
// viewer snapshot optimistically and rolling back on failure.
// Returns the new saved state.
func (s *Service) ToggleSave(ctx context.Context, viewer *User, post *Post) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := viewer.HasSaved(post.ID)
	before := viewer.SavedPosts
	if saved {
		viewer.SavedPosts = removePost(viewer.SavedPosts, post.ID)
	} else {
		viewer.SavedPosts = append(append([]Post{}, viewer.SavedPosts...), *post)
	}

	var err error
	if saved {
		_, err = s.posts.Unsave(ctx, post.ID)
	} else {
		_, err = s.posts.Save(ctx, post.ID)
	}
	if err != nil {
		viewer.SavedPosts = before
		s.logger.Warn("save toggle failed, rolled back", "post", post.ID, "error", err)
		return saved, err
	}
	return !saved, nil
}

// ToggleFollow flips whether the current user follows the target, patching
// the viewer snapshot optimistically and rolling back on failure. The
// session is refreshed on success so relationship collections are
// reconciled with the backend. Returns the new follow state.
func (s *Service) ToggleFollow(ctx context.Context, viewer *User, target *User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if viewer.ID == target.ID {
		return false, invalid("user", "cannot follow yourself")
	}

	following := viewer.IsFollowing(target.ID)
	before := viewer.Following
	if following {
		viewer.Following = removeUser(viewer.Following, target.ID)
	} else {
		viewer.Following = append(append([]User{}, viewer.Following...), *target)
	}

	var err error
	if following {
		_, err = s.users.Unfollow(ctx, target.ID)
	} else {
		_, err = s.users.Follow(ctx, target.ID)
	}
	if err != nil {
		viewer.Following = before
		s.logger.Warn("follow toggle failed, rolled back", "user", target.ID, "error", err)
		return following, err
	}

	if err := s.session.Refresh(ctx); err != nil {
		return !following, fmt.Errorf("refreshing session after follow change: %w", err)
	}
	return !following, nil
}

// ToggleCommentLike flips the viewer's like on the comment, with the same
// patch-and-rollback discipline as ToggleLike. Returns the new like state.
func (s *Service) ToggleCommentLike(ctx context.Context, comment *Comment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewer := s.session.CurrentUser()
	if viewer == nil {
		return false, ErrNoSession
	}

	liked := comment.LikedByUser(viewer.ID)
	before := comment.LikedBy
	if liked {
		comment.LikedBy = removeUser(comment.LikedBy, viewer.ID)
	} else {
		comment.LikedBy = append(append([]User{}, comment.LikedBy...), *viewer)
	}

	var updated *Comment
	var err error
	if liked {
		updated, err = s.comments.Unlike(ctx, comment.ID)
	} else {
		updated, err = s.comments.Like(ctx, comment.ID)
	}
	if err != nil {
		comment.LikedBy = before
		s.logger.Warn("comment like toggle failed, rolled back", "comment", comment.ID, "error", err)
		return liked, err
	}

	if updated != nil && updated.ID == comment.ID {
		*comment = *updated
	}
	return !liked, nil
}

// SaveDraft validates and stores a local post draft.
func (s *Service) SaveDraft(caption, image, location string) (*Draft, error) {
	if err := requireField("caption", caption); err != nil {
		return nil, err
	}
	if err := requireField("image", image); err != nil {
		return nil, err
	}

	draft := &Draft{
		ID:        s.idgen.New(),
		Caption:   caption,
		Image:     image,
		Location:  location,
		CreatedAt: s.clock.Now(),
	}
	if err := s.drafts.SaveDraft(draft); err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}

	s.logger.Debug("draft saved", "id", draft.ID)
	return draft, nil
}

// ListDrafts returns all local drafts, newest first.
func (s *Service) ListDrafts() ([]*Draft, error) {
	return s.drafts.ListDrafts()
}

// DeleteDraft removes a local draft.
func (s *Service) DeleteDraft(id string) error {
	return s.drafts.DeleteDraft(id)
}

// PublishDraft publishes a stored draft and deletes it. The draft is only
// removed after the post is created, so a failed publish keeps the draft.
func (s *Service) PublishDraft(ctx context.Context, id string) (*Post, error) {
	draft, err := s.drafts.FindDraft(id)
	if err != nil {
		return nil, fmt.Errorf("loading draft: %w", err)
	}
	if draft == nil {
		return nil, fmt.Errorf("draft not found: %s", id)
	}

	post, err := s.PublishPost(ctx, draft.Caption, draft.Image, draft.Location)
	if err != nil {
		return nil, err
	}

	if err := s.drafts.DeleteDraft(id); err != nil {
		return post, fmt.Errorf("post published but draft not deleted: %w", err)
	}
	return post, nil
}

// resolveImage turns an image reference into a URL the backend can store.
// Existing local files are uploaded through the media store; http(s) URLs
// pass through.
func (s *Service) resolveImage(ctx context.Context, image string) (string, error) {
	if err := requireField("image", image); err != nil {
		return "", err
	}

	if isURL(image) {
		return image, nil
	}

	f, err := os.Open(image)
	if err != nil {
		if os.IsNotExist(err) {
			return "", invalid("image", "image must be an existing file or an http(s) URL")
		}
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return "", invalid("image", "image is a directory")
	}

	ext := filepath.Ext(image)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := s.idgen.New() + ext
	uploaded, err := s.media.Put(ctx, key, f, info.Size(), contentType)
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}

	s.logger.Info("image uploaded", "key", key, "size", info.Size())
	return uploaded, nil
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func removeUser(users []User, id int64) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

func removePost(posts []Post, id int64) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
