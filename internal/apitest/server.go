// Package apitest runs an in-memory fake of the Hack-or-Snooze API for
// tests. It implements the same routes, JSON shapes, error envelope and
// JWT login tokens as the real service, and can be told to fail.
package apitest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
	"github.com/dmitrijs2005/hackorsnooze/internal/timex"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Request is one call received by the fake server.
type Request struct {
	Method    string
	Path      string
	RequestID string
}

type user struct {
	username  string
	password  string
	name      string
	createdAt time.Time
	favorites []string
}

type failure struct {
	method string
	prefix string
	status int
}

// Server is the fake API. Its zero value is not usable; call NewServer.
type Server struct {
	*httptest.Server

	secret []byte
	now    func() time.Time

	mu       sync.Mutex
	users    map[string]*user
	stories  []models.Story
	requests []Request
	failures []failure
}

// NewServer starts a fake API and closes it when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		secret: []byte("apitest-secret"),
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		users:  make(map[string]*user),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.injectFailures)

	r.Get("/stories", s.handleListStories)
	r.Post("/stories", s.handleCreateStory)
	r.Delete("/stories/{storyId}", s.handleDeleteStory)

	r.Post("/signup", s.handleSignup)
	r.Post("/login", s.handleLogin)
	r.Get("/users/{username}", s.handleGetUser)

	r.Post("/users/{username}/favorites/{storyId}", s.handleAddFavorite)
	r.Delete("/users/{username}/favorites/{storyId}", s.handleRemoveFavorite)

	return r
}

// SeedUser registers a user and returns a valid login token for it.
func (s *Server) SeedUser(username, password, name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = &user{username: username, password: password, name: name, createdAt: s.now()}
	return s.issueToken(username)
}

// SeedStory appends a story to the server-ordered list. Missing ids and
// timestamps are filled in; the stored story is returned.
func (s *Server) SeedStory(st models.Story) models.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.StoryID == "" {
		st.StoryID = uuid.NewString()
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = timex.NewTimestamp(s.now())
	}
	s.stories = append(s.stories, st)
	return st
}

// SeedFavorite marks a story as a favorite of username.
func (s *Server) SeedFavorite(username, storyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[username]; ok && !contains(u.favorites, storyID) {
		u.favorites = append(u.favorites, storyID)
	}
}

// Token issues a fresh token for username, whether or not it exists.
func (s *Server) Token(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueToken(username)
}

// FailWith makes every request answer with status until ClearFailures.
func (s *Server) FailWith(status int) {
	s.FailRoute("", "", status)
}

// FailRoute makes requests with the given method (any if empty) and path
// prefix answer with status until ClearFailures.
func (s *Server) FailRoute(method, pathPrefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, prefix: pathPrefix, status: status})
}

func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = nil
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// StoryIDs returns the server-side story ids in list order.
func (s *Server) StoryIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.stories))
	for _, st := range s.stories {
		out = append(out, st.StoryID)
	}
	return out
}

// FavoriteIDs returns the favorite story ids stored for username.
func (s *Server) FavoriteIDs(username string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return nil
	}
	return append([]string(nil), u.favorites...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: r.Header.Get(common.RequestIDHeaderName),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status := 0
		for _, f := range s.failures {
			if (f.method == "" || f.method == r.Method) && strings.HasPrefix(r.URL.Path, f.prefix) {
				status = f.status
				break
			}
		}
		s.mu.Unlock()

		if status != 0 {
			writeError(w, status, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) issueToken(username string) string {
	claims := jwt.MapClaims{"username": username, "iat": s.now().Unix()}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(fmt.Sprintf("apitest: sign token: %v", err))
	}
	return signed
}

var errBadToken = errors.New("invalid token")

// authenticate validates token and returns the user it belongs to.
// Callers hold s.mu.
func (s *Server) authenticate(token string) (*user, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errBadToken
	}
	username, _ := claims["username"].(string)
	u, ok := s.users[username]
	if !ok {
		return nil, errBadToken
	}
	return u, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	body := map[string]any{
		"error": map[string]any{
			"status":  status,
			"title":   http.StatusText(status),
			"message": message,
		},
	}
	writeJSON(w, status, body)
}
