package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"bee-go/internal/bee"

	"github.com/go-chi/chi/v5"
)

// Backend is an in-memory stand-in for the photo-sharing API. It speaks the
// same routes and JSON shapes as the real backend, including the raw-text
// login response and set-semantics like/follow toggles.
type Backend struct {
	// Clock provides timestamps for created records. Defaults to RealClock.
	Clock bee.Clock

	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*account
	posts    map[int64]*storedPost
	stories  map[int64]*storedStory
	comments map[int64]*storedComment
	tokens   map[string]int64

	failStatus  int
	failMessage string

	router chi.Router
}

type account struct {
	id       int64
	name     string
	email    string
	username string
	password string
	mobile   string
	bio      string
	gender   string
	image    string

	following map[int64]bool
	saved     map[int64]bool
}

type storedPost struct {
	id        int64
	author    int64
	caption   string
	image     string
	location  string
	createdAt time.Time
	likes     map[int64]bool
	comments  []int64
}

type storedStory struct {
	id        int64
	author    int64
	image     string
	caption   string
	timestamp time.Time
}

type storedComment struct {
	id        int64
	author    int64
	post      int64
	content   string
	createdAt time.Time
	likes     map[int64]bool
}

// NewBackend creates an empty Backend.
func NewBackend() *Backend {
	b := &Backend{
		Clock:    bee.RealClock{},
		accounts: make(map[int64]*account),
		posts:    make(map[int64]*storedPost),
		stories:  make(map[int64]*storedStory),
		comments: make(map[int64]*storedComment),
		tokens:   make(map[string]int64),
	}
	b.router = b.newRouter()
	return b
}

// Server starts an httptest.Server for the backend, closed on test cleanup.
func (b *Backend) Server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return srv
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.router.ServeHTTP(w, r)
}

// AddUser seeds an account and returns its ID and a valid bearer token.
func (b *Backend) AddUser(name, email, username, password string) (int64, string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a := &account{
		id:        b.allocID(),
		name:      name,
		email:     email,
		username:  username,
		password:  password,
		following: make(map[int64]bool),
		saved:     make(map[int64]bool),
	}
	b.accounts[a.id] = a

	token := fmt.Sprintf("tok-%d", a.id)
	b.tokens[token] = a.id
	return a.id, token
}

// SetFollowing makes follower follow target.
func (b *Backend) SetFollowing(follower, target int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[follower].following[target] = true
}

// AddPost seeds a post and returns its ID.
func (b *Backend) AddPost(author int64, caption, image string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := &storedPost{
		id:        b.allocID(),
		author:    author,
		caption:   caption,
		image:     image,
		createdAt: b.Clock.Now(),
		likes:     make(map[int64]bool),
	}
	b.posts[p.id] = p
	return p.id
}

// AddStory seeds a story and returns its ID.
func (b *Backend) AddStory(author int64, image string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &storedStory{
		id:        b.allocID(),
		author:    author,
		image:     image,
		timestamp: b.Clock.Now(),
	}
	b.stories[s.id] = s
	return s.id
}

// AddComment seeds a comment on a post and returns its ID.
func (b *Backend) AddComment(author, postID int64, content string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := &storedComment{
		id:        b.allocID(),
		author:    author,
		post:      postID,
		content:   content,
		createdAt: b.Clock.Now(),
		likes:     make(map[int64]bool),
	}
	b.comments[c.id] = c
	if p, ok := b.posts[postID]; ok {
		p.comments = append(p.comments, c.id)
	}
	return c.id
}

// RevokeToken invalidates a previously issued token, so the next
// authenticated request with it fails with 401.
func (b *Backend) RevokeToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tokens, token)
}

// FailNext makes the next request fail with the given status and message
// before reaching any handler.
func (b *Backend) FailNext(status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failStatus = status
	b.failMessage = message
}

// PostLikes returns the number of likes on a post.
func (b *Backend) PostLikes(postID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.posts[postID].likes)
}

func (b *Backend) allocID() int64 {
	b.nextID++
	return b.nextID
}

type ctxKey int

const accountKey ctxKey = 0

func (b *Backend) newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(b.failureMiddleware)

	r.Post("/auth/signup", b.handleSignup)
	r.Post("/auth/login", b.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(b.requireAuth)

		r.Get("/api/users/req", b.handleCurrentUser)
		r.Get("/api/users/id/{id}", b.handleUserByID)
		r.Get("/api/users/username/{username}", b.handleUserByUsername)
		r.Get("/api/users/search", b.handleUserSearch)
		r.Put("/api/users/follow/{id}", b.handleFollow)
		r.Put("/api/users/unfollow/{id}", b.handleUnfollow)
		r.Put("/api/users/update/{id}", b.handleUserUpdate)

		r.Post("/posts/create", b.handlePostCreate)
		r.Get("/posts/all/{id}", b.handlePostsByUser)
		r.Get("/posts/following/{ids}", b.handlePostsByUsers)
		r.Get("/posts/{id}", b.handlePostByID)
		r.Put("/posts/like/{id}", b.handlePostLike)
		r.Put("/posts/unlike/{id}", b.handlePostUnlike)
		r.Put("/posts/save/{id}", b.handlePostSave)
		r.Put("/posts/unsave/{id}", b.handlePostUnsave)
		r.Delete("/posts/delete/{id}", b.handlePostDelete)

		r.Post("/api/story/create", b.handleStoryCreate)
		r.Get("/api/story/{id}", b.handleStoriesByUser)

		r.Post("/api/comments/create/{id}", b.handleCommentCreate)
		r.Get("/api/comments/{id}", b.handleCommentByID)
		r.Put("/api/comments/like/{id}", b.handleCommentLike)
		r.Put("/api/comments/unlike/{id}", b.handleCommentUnlike)
	})

	return r
}

func (b *Backend) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		status, message := b.failStatus, b.failMessage
		b.failStatus, b.failMessage = 0, ""
		b.mu.Unlock()

		if status != 0 {
			writeError(w, status, message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		b.mu.Lock()
		id, ok := b.tokens[token]
		b.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), accountKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func caller(r *http.Request) int64 {
	return r.Context().Value(accountKey).(int64)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func (b *Backend) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req bee.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.accounts {
		if a.email == req.Email {
			writeError(w, http.StatusBadRequest, "Email Is Already Taken")
			return
		}
		if a.username == req.Username {
			writeError(w, http.StatusBadRequest, "Username Is Already Taken")
			return
		}
	}

	a := &account{
		id:        b.allocID(),
		name:      req.Name,
		email:     req.Email,
		username:  req.Username,
		password:  req.Password,
		following: make(map[int64]bool),
		saved:     make(map[int64]bool),
	}
	b.accounts[a.id] = a
	b.tokens[fmt.Sprintf("tok-%d", a.id)] = a.id

	writeJSON(w, http.StatusOK, bee.MessageResponse{Message: "signup success"})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req bee.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.accounts {
		if a.email == req.Email && a.password == req.Password {
			token := fmt.Sprintf("tok-%d", a.id)
			b.tokens[token] = a.id
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(token))
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "invalid email or password")
}

func (b *Backend) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.userView(b.accounts[caller(r)]))
}

func (b *Backend) handleUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[id]
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, b.userView(a))
}

func (b *Backend) handleUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.accounts {
		if a.username == username {
			writeJSON(w, http.StatusOK, b.userView(a))
			return
		}
	}
	writeError(w, http.StatusNotFound, "user not found")
}

func (b *Backend) handleUserSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))

	b.mu.Lock()
	defer b.mu.Unlock()
	matches := []bee.User{}
	for _, a := range b.accounts {
		if strings.Contains(strings.ToLower(a.username), q) ||
			strings.Contains(strings.ToLower(a.name), q) {
			matches = append(matches, b.brief(a.id))
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	writeJSON(w, http.StatusOK, matches)
}

func (b *Backend) handleFollow(w http.ResponseWriter, r *http.Request) {
	b.setFollow(w, r, true)
}

func (b *Backend) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	b.setFollow(w, r, false)
}

func (b *Backend) setFollow(w http.ResponseWriter, r *http.Request, follow bool) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	target, ok := b.accounts[id]
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	viewer := b.accounts[caller(r)]
	if follow {
		viewer.following[target.id] = true
		writeJSON(w, http.StatusOK, bee.MessageResponse{Message: "You are following " + target.username})
	} else {
		delete(viewer.following, target.id)
		writeJSON(w, http.StatusOK, bee.MessageResponse{Message: "You have unfollowed " + target.username})
	}
}

func (b *Backend) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}
	if id != caller(r) {
		writeError(w, http.StatusForbidden, "you can only update your own profile")
		return
	}

	var update bee.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	a := b.accounts[id]
	if update.Name != nil {
		a.name = *update.Name
	}
	if update.Email != nil {
		a.email = *update.Email
	}
	if update.Mobile != nil {
		a.mobile = *update.Mobile
	}
	if update.Bio != nil {
		a.bio = *update.Bio
	}
	if update.Gender != nil {
		a.gender = *update.Gender
	}
	if update.Image != nil {
		a.image = *update.Image
	}
	writeJSON(w, http.StatusOK, b.userView(a))
}

func (b *Backend) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	var req bee.NewPost
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	p := &storedPost{
		id:        b.allocID(),
		author:    caller(r),
		caption:   req.Caption,
		image:     req.Image,
		location:  req.Location,
		createdAt: b.Clock.Now(),
		likes:     make(map[int64]bool),
	}
	b.posts[p.id] = p
	writeJSON(w, http.StatusOK, b.postView(p))
}

func (b *Backend) handlePostsByUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.postsByAuthors(map[int64]bool{id: true}))
}

func (b *Backend) handlePostsByUsers(w http.ResponseWriter, r *http.Request) {
	authors := make(map[int64]bool)
	for _, part := range strings.Split(chi.URLParam(r, "ids"), ",") {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "malformed id list")
			return
		}
		authors[id] = true
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.postsByAuthors(authors))
}

func (b *Backend) postsByAuthors(authors map[int64]bool) []bee.Post {
	out := []bee.Post{}
	for _, p := range b.posts {
		if authors[p.author] {
			out = append(out, b.postView(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (b *Backend) handlePostByID(w http.ResponseWriter, r *http.Request) {
	p, ok := b.lookupPost(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.postView(p))
}

func (b *Backend) handlePostLike(w http.ResponseWriter, r *http.Request) {
	p, ok := b.lookupPost(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p.likes[caller(r)] = true
	writeJSON(w, http.StatusOK, b.postView(p))
}

func (b *Backend) handlePostUnlike(w http.ResponseWriter, r *http.Request) {
	p, ok := b.lookupPost(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(p.likes, caller(r))
	writeJSON(w, http.StatusOK, b.postView(p))
}

func (b *Backend) handlePostSave(w http.ResponseWriter, r *http.Request) {
	p, ok := b.lookupPost(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[caller(r)].saved[p.id] = true
	writeJSON(w, http.StatusOK, bee.MessageResponse{Message: "Post saved"})
}

func (b *Backend) handlePostUnsave(w http.ResponseWriter, r *http.Request) {
	p, ok := b.lookupPost(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.accounts[caller(r)].saved, p.id)
	writeJSON(w, http.StatusOK, bee.MessageResponse{Message: "Post removed from saved"})
}

func (b *Backend) handlePostDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := b.lookupPost(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if p.author != caller(r) {
		writeError(w, http.StatusForbidden, "you can only delete your own posts")
		return
	}
	delete(b.posts, p.id)
	for _, cid := range p.comments {
		delete(b.comments, cid)
	}
	writeJSON(w, http.StatusOK, bee.MessageResponse{Message: "Post deleted"})
}

func (b *Backend) lookupPost(w http.ResponseWriter, r *http.Request) (*storedPost, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return nil, false
	}

	b.mu.Lock()
	p, ok := b.posts[id]
	b.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "post not found")
		return nil, false
	}
	return p, true
}

func (b *Backend) handleStoryCreate(w http.ResponseWriter, r *http.Request) {
	var req bee.NewStory
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	s := &storedStory{
		id:        b.allocID(),
		author:    caller(r),
		image:     req.Image,
		caption:   req.Caption,
		timestamp: b.Clock.Now(),
	}
	b.stories[s.id] = s
	writeJSON(w, http.StatusOK, b.storyView(s))
}

func (b *Backend) handleStoriesByUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	out := []bee.Story{}
	for _, s := range b.stories {
		if s.author == id {
			out = append(out, b.storyView(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleCommentCreate(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}

	var req bee.NewComment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.posts[postID]
	if !ok {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	c := &storedComment{
		id:        b.allocID(),
		author:    caller(r),
		post:      postID,
		content:   req.Content,
		createdAt: b.Clock.Now(),
		likes:     make(map[int64]bool),
	}
	b.comments[c.id] = c
	p.comments = append(p.comments, c.id)
	writeJSON(w, http.StatusOK, b.commentView(c))
}

func (b *Backend) handleCommentByID(w http.ResponseWriter, r *http.Request) {
	c, ok := b.lookupComment(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.commentView(c))
}

func (b *Backend) handleCommentLike(w http.ResponseWriter, r *http.Request) {
	c, ok := b.lookupComment(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	c.likes[caller(r)] = true
	writeJSON(w, http.StatusOK, b.commentView(c))
}

func (b *Backend) handleCommentUnlike(w http.ResponseWriter, r *http.Request) {
	c, ok := b.lookupComment(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(c.likes, caller(r))
	writeJSON(w, http.StatusOK, b.commentView(c))
}

func (b *Backend) lookupComment(w http.ResponseWriter, r *http.Request) (*storedComment, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return nil, false
	}

	b.mu.Lock()
	c, ok := b.comments[id]
	b.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "comment not found")
		return nil, false
	}
	return c, true
}

// brief renders a user without relationship collections, the shape the
// backend nests inside other records. Callers must hold b.mu.
func (b *Backend) brief(id int64) bee.User {
	a := b.accounts[id]
	return bee.User{
		ID:       a.id,
		Username: a.username,
		Name:     a.name,
		Email:    a.email,
		Image:    a.image,
	}
}

// userView renders a full user snapshot. Callers must hold b.mu.
func (b *Backend) userView(a *account) bee.User {
	u := bee.User{
		ID:         a.id,
		Username:   a.username,
		Name:       a.name,
		Email:      a.email,
		Mobile:     a.mobile,
		Bio:        a.bio,
		Gender:     a.gender,
		Image:      a.image,
		Following:  []bee.User{},
		Followers:  []bee.User{},
		Stories:    []bee.Story{},
		SavedPosts: []bee.Post{},
	}

	for id := range a.following {
		u.Following = append(u.Following, b.brief(id))
	}
	sort.Slice(u.Following, func(i, j int) bool { return u.Following[i].ID < u.Following[j].ID })

	for _, other := range b.accounts {
		if other.following[a.id] {
			u.Followers = append(u.Followers, b.brief(other.id))
		}
	}
	sort.Slice(u.Followers, func(i, j int) bool { return u.Followers[i].ID < u.Followers[j].ID })

	for _, s := range b.stories {
		if s.author == a.id {
			u.Stories = append(u.Stories, b.storyView(s))
		}
	}
	sort.Slice(u.Stories, func(i, j int) bool { return u.Stories[i].ID < u.Stories[j].ID })

	for id := range a.saved {
		if p, ok := b.posts[id]; ok {
			u.SavedPosts = append(u.SavedPosts, b.postView(p))
		}
	}
	sort.Slice(u.SavedPosts, func(i, j int) bool { return u.SavedPosts[i].ID < u.SavedPosts[j].ID })

	return u
}

func (b *Backend) postView(p *storedPost) bee.Post {
	post := bee.Post{
		ID:        p.id,
		Caption:   p.caption,
		Image:     p.image,
		Location:  p.location,
		CreatedAt: bee.Timestamp{Time: p.createdAt},
		User:      b.brief(p.author),
		Comments:  []bee.Comment{},
		LikedBy:   []bee.User{},
	}
	for _, cid := range p.comments {
		if c, ok := b.comments[cid]; ok {
			post.Comments = append(post.Comments, b.commentView(c))
		}
	}
	for id := range p.likes {
		post.LikedBy = append(post.LikedBy, b.brief(id))
	}
	sort.Slice(post.LikedBy, func(i, j int) bool { return post.LikedBy[i].ID < post.LikedBy[j].ID })
	return post
}

func (b *Backend) storyView(s *storedStory) bee.Story {
	return bee.Story{
		ID:        s.id,
		User:      b.brief(s.author),
		Image:     s.image,
		Caption:   s.caption,
		Timestamp: bee.Timestamp{Time: s.timestamp},
	}
}

func (b *Backend) commentView(c *storedComment) bee.Comment {
	comment := bee.Comment{
		ID:        c.id,
		User:      b.brief(c.author),
		Content:   c.content,
		CreatedAt: bee.Timestamp{Time: c.createdAt},
		LikedBy:   []bee.User{},
	}
	for id := range c.likes {
		comment.LikedBy = append(comment.LikedBy, b.brief(id))
	}
	sort.Slice(comment.LikedBy, func(i, j int) bool { return comment.LikedBy[i].ID < comment.LikedBy[j].ID })
	return comment
}
