package models

import (
	"sync"

	"github.com/dmitrijs2005/hackorsnooze/internal/timex"
)

// UserData is a user profile as returned by the remote service, with the
// remote "stories" field already mapped to OwnStories.
type UserData struct {
	Username   string
	Name       string
	CreatedAt  timex.Timestamp
	Favorites  []Story
	OwnStories []Story
}

// User is the authenticated identity of the session. It owns the favorites
// and own-stories collections and the login token required for every
// mutating remote call. It is safe for concurrent use.
type User struct {
	Username  string
	Name      string
	CreatedAt timex.Timestamp

	token string

	mu         sync.RWMutex
	favorites  []Story
	ownStories []Story
}

// NewUser builds a User from profile data and a login token. Duplicate
// favorites in the profile are collapsed by story id.
func NewUser(data UserData, token string) *User {
	u := &User{
		Username:   data.Username,
		Name:       data.Name,
		CreatedAt:  data.CreatedAt,
		token:      token,
		ownStories: clone(data.OwnStories),
	}
	for _, s := range data.Favorites {
		if indexOf(u.favorites, s.StoryID) < 0 {
			u.favorites = append(u.favorites, s)
		}
	}
	return u
}

// Token returns the login token.
func (u *User) Token() string {
	return u.token
}

// HasToken reports whether the user can make authenticated remote calls.
func (u *User) HasToken() bool {
	return u != nil && u.token != ""
}

// Favorites returns a copy of the favorites in the order they were added.
func (u *User) Favorites() []Story {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return clone(u.favorites)
}

// OwnStories returns a copy of the stories the user posted, newest first.
func (u *User) OwnStories() []Story {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return clone(u.ownStories)
}

// IsFavorite reports whether some favorite has the given story id.
func (u *User) IsFavorite(storyID string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return indexOf(u.favorites, storyID) >= 0
}

// IsOwnStory reports whether the user posted the story. The remote service
// is the real authority on ownership; this only drives the UI.
func (u *User) IsOwnStory(storyID string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return indexOf(u.ownStories, storyID) >= 0
}

// FindFavorite returns the favorite with the given id.
func (u *User) FindFavorite(storyID string) (Story, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if i := indexOf(u.favorites, storyID); i >= 0 {
		return u.favorites[i], true
	}
	return Story{}, false
}

// FindOwnStory returns the own story with the given id.
func (u *User) FindOwnStory(storyID string) (Story, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if i := indexOf(u.ownStories, storyID); i >= 0 {
		return u.ownStories[i], true
	}
	return Story{}, false
}

// AddFavorite appends s unless a favorite with the same id already exists.
// It reports whether s was added.
func (u *User) AddFavorite(s Story) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if indexOf(u.favorites, s.StoryID) >= 0 {
		return false
	}
	u.favorites = append(u.favorites, s)
	return true
}

// RemoveFavorite drops the favorite with the given id, if any.
func (u *User) RemoveFavorite(storyID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	var removed bool
	u.favorites, removed = without(u.favorites, storyID)
	return removed
}

// PrependOwnStory puts a freshly created story at the front of the
// user's own stories.
func (u *User) PrependOwnStory(s Story) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.ownStories = prepend(u.ownStories, s)
}

// RemoveOwnStory drops the own story with the given id, if any.
func (u *User) RemoveOwnStory(storyID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	var removed bool
	u.ownStories, removed = without(u.ownStories, storyID)
	return removed
}
