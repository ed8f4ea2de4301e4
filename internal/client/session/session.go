// Package session holds the client's application context: who is logged
// in, the loaded story list and the session state machine
//
//	Anonymous -> RestoringSession -> Authenticated | Anonymous
//
// A Session is created once per process and passed to the rendering layer.
// It is safe for concurrent use.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/services"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
)

type State int

const (
	Anonymous State = iota
	RestoringSession
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case RestoringSession:
		return "restoring"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Session struct {
	auth      services.AuthService
	stories   services.StoryService
	favorites services.FavoriteService
	store     credentials.Store
	log       logging.Logger

	mu    sync.RWMutex
	state State
	user  *models.User
	list  *models.StoryList
}

func New(
	auth services.AuthService,
	stories services.StoryService,
	favorites services.FavoriteService,
	store credentials.Store,
	log logging.Logger,
) *Session {
	return &Session{
		auth:      auth,
		stories:   stories,
		favorites: favorites,
		store:     store,
		log:       log,
		state:     Anonymous,
		list:      models.NewStoryList(nil),
	}
}

// Bootstrap restores a remembered login, if any, and loads the story list.
// Restoration never fails the bootstrap; only a story load error is
// returned.
func (s *Session) Bootstrap(ctx context.Context) error {
	s.restore(ctx)
	return s.RefreshStories(ctx)
}

func (s *Session) restore(ctx context.Context) {
	creds, ok, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "could not read stored credentials", "error", err)
		return
	}
	if !ok {
		return
	}

	s.setState(RestoringSession, nil)

	res, err := s.auth.Reauthenticate(ctx, creds)
	switch {
	case err != nil:
		s.log.Warn(ctx, "remembered session could not be restored", "username", creds.Username, "error", err)
		s.setState(Anonymous, nil)
	case res.Status == services.RestoreAuthenticated:
		s.log.Info(ctx, "session restored", "username", res.User.Username)
		s.setState(Authenticated, res.User)
	default:
		if err := s.store.Clear(ctx); err != nil {
			s.log.Warn(ctx, "could not clear stale credentials", "error", err)
		}
		s.setState(Anonymous, nil)
	}
}

func (s *Session) setState(state State, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
}

// RefreshStories reloads the global story list. On failure the current
// list is kept.
func (s *Session) RefreshStories(ctx context.Context) error {
	list, err := s.stories.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.list = list
	s.mu.Unlock()
	return nil
}

func (s *Session) Login(ctx context.Context, username string, password []byte) (*models.User, error) {
	user, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	s.authenticated(ctx, user)
	return user, nil
}

func (s *Session) Signup(ctx context.Context, username string, password []byte, name string) (*models.User, error) {
	user, err := s.auth.Signup(ctx, username, password, name)
	if err != nil {
		return nil, err
	}
	s.authenticated(ctx, user)
	return user, nil
}

func (s *Session) authenticated(ctx context.Context, user *models.User) {
	s.setState(Authenticated, user)

	creds := credentials.Credentials{Token: user.Token(), Username: user.Username}
	if err := s.store.Save(ctx, creds); err != nil {
		s.log.Error(ctx, "could not remember login", "username", user.Username, "error", err)
	}
}

// Logout forgets the user and the stored credentials. The session is
// anonymous afterwards even if clearing the store fails.
func (s *Session) Logout(ctx context.Context) error {
	s.setState(Anonymous, nil)
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// Submit posts a new story as the current user.
func (s *Session) Submit(ctx context.Context, draft models.StoryDraft) (models.Story, error) {
	user, list, err := s.requireUser()
	if err != nil {
		return models.Story{}, err
	}
	return s.stories.AddStory(ctx, list, user, draft)
}

// Delete removes one of the current user's stories. The id is sent as
// given; the remote decides whether it exists.
func (s *Session) Delete(ctx context.Context, storyID string) error {
	user, list, err := s.requireUser()
	if err != nil {
		return err
	}
	return s.stories.RemoveStory(ctx, list, user, storyID)
}

func (s *Session) Favorite(ctx context.Context, storyID string) error {
	user, list, err := s.requireUser()
	if err != nil {
		return err
	}
	story, ok := resolve(list, user, storyID)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrStoryNotFound, storyID)
	}
	return s.favorites.AddFavorite(ctx, user, story)
}

func (s *Session) Unfavorite(ctx context.Context, storyID string) error {
	user, _, err := s.requireUser()
	if err != nil {
		return err
	}
	return s.favorites.RemoveFavorite(ctx, user, storyID)
}

// ToggleFavorite flips the favorite state of storyID and reports the new
// state.
func (s *Session) ToggleFavorite(ctx context.Context, storyID string) (bool, error) {
	user, _, err := s.requireUser()
	if err != nil {
		return false, err
	}
	if user.IsFavorite(storyID) {
		if err := s.Unfavorite(ctx, storyID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.Favorite(ctx, storyID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) requireUser() (*models.User, *models.StoryList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Authenticated || !s.user.HasToken() {
		return nil, nil, common.ErrNotLoggedIn
	}
	return s.user, s.list, nil
}

func resolve(list *models.StoryList, user *models.User, storyID string) (models.Story, bool) {
	if st, ok := list.Find(storyID); ok {
		return st, true
	}
	if st, ok := user.FindFavorite(storyID); ok {
		return st, true
	}
	return user.FindOwnStory(storyID)
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser returns nil when nobody is logged in.
func (s *Session) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Stories() []models.Story {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list.Stories()
}

func (s *Session) Favorites() []models.Story {
	if u := s.CurrentUser(); u != nil {
		return u.Favorites()
	}
	return nil
}

func (s *Session) OwnStories() []models.Story {
	if u := s.CurrentUser(); u != nil {
		return u.OwnStories()
	}
	return nil
}

func (s *Session) IsFavorite(storyID string) bool {
	u := s.CurrentUser()
	return u != nil && u.IsFavorite(storyID)
}

func (s *Session) IsOwnStory(storyID string) bool {
	u := s.CurrentUser()
	return u != nil && u.IsOwnStory(storyID)
}
