package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
)

// ---- fake client ----

// fakeClient implements client.Client for unit tests. Every call is counted;
// each method returns its configured result.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	GetStoriesRet []models.Story
	GetStoriesErr error

	CreateStoryRet models.Story
	CreateStoryErr error
	LastDraft      models.StoryDraft
	LastToken      string

	DeleteStoryErr error

	AuthRet   *client.AuthResponse
	AuthErr   error
	LastName  string
	LastPass  []byte
	LastLogin string

	GetUserRet *client.UserProfile
	GetUserErr error

	FavoriteErr  error
	FavoriteGate chan struct{}
	favoriteHits atomic.Int32
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) GetStories(ctx context.Context) ([]models.Story, error) {
	f.record("GetStories")
	return f.GetStoriesRet, f.GetStoriesErr
}

func (f *fakeClient) CreateStory(ctx context.Context, token string, draft models.StoryDraft) (models.Story, error) {
	f.record("CreateStory")
	f.LastToken = token
	f.LastDraft = draft
	return f.CreateStoryRet, f.CreateStoryErr
}

func (f *fakeClient) DeleteStory(ctx context.Context, token string, storyID string) error {
	f.record("DeleteStory")
	f.LastToken = token
	return f.DeleteStoryErr
}

func (f *fakeClient) Signup(ctx context.Context, username string, password []byte, name string) (*client.AuthResponse, error) {
	f.record("Signup")
	f.LastLogin, f.LastPass, f.LastName = username, password, name
	return f.AuthRet, f.AuthErr
}

func (f *fakeClient) Login(ctx context.Context, username string, password []byte) (*client.AuthResponse, error) {
	f.record("Login")
	f.LastLogin, f.LastPass = username, password
	return f.AuthRet, f.AuthErr
}

func (f *fakeClient) GetUser(ctx context.Context, token string, username string) (*client.UserProfile, error) {
	f.record("GetUser")
	f.LastToken = token
	return f.GetUserRet, f.GetUserErr
}

func (f *fakeClient) AddFavorite(ctx context.Context, token string, username string, storyID string) error {
	f.record("AddFavorite")
	return f.favorite()
}

func (f *fakeClient) RemoveFavorite(ctx context.Context, token string, username string, storyID string) error {
	f.record("RemoveFavorite")
	return f.favorite()
}

func (f *fakeClient) favorite() error {
	f.favoriteHits.Add(1)
	if f.FavoriteGate != nil {
		<-f.FavoriteGate
	}
	return f.FavoriteErr
}

// ---- helpers ----

func story(id string) models.Story {
	return models.Story{StoryID: id, Title: "Story " + id, Author: "A", URL: "https://example.com/" + id, Username: "alice"}
}

func ids(stories []models.Story) []string {
	out := make([]string, 0, len(stories))
	for _, s := range stories {
		out = append(out, s.StoryID)
	}
	return out
}

func alice(favorites, own []models.Story) *models.User {
	return models.NewUser(models.UserData{Username: "alice", Name: "Alice", Favorites: favorites, OwnStories: own}, "tok")
}

type fakeTitles struct {
	title string
	err   error
	calls int
}

func (f *fakeTitles) Resolve(ctx context.Context, storyURL string) (string, error) {
	f.calls++
	return f.title, f.err
}
