package client

import (
	"context"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/timex"
)

// Client is the remote story/user service.
type Client interface {
	GetStories(ctx context.Context) ([]models.Story, error)
	CreateStory(ctx context.Context, token string, draft models.StoryDraft) (models.Story, error)
	DeleteStory(ctx context.Context, token string, storyID string) error

	Signup(ctx context.Context, username string, password []byte, name string) (*AuthResponse, error)
	Login(ctx context.Context, username string, password []byte) (*AuthResponse, error)
	GetUser(ctx context.Context, token string, username string) (*UserProfile, error)

	AddFavorite(ctx context.Context, token string, username string, storyID string) error
	RemoveFavorite(ctx context.Context, token string, username string, storyID string) error
}

// UserProfile is the "user" object returned by the remote service.
type UserProfile struct {
	Username  string          `json:"username"`
	Name      string          `json:"name"`
	CreatedAt timex.Timestamp `json:"createdAt"`
	Favorites []models.Story  `json:"favorites"`
	Stories   []models.Story  `json:"stories"`
}

// UserData maps the profile onto the model, remote "stories" becoming the
// user's own stories.
func (p UserProfile) UserData() models.UserData {
	return models.UserData{
		Username:   p.Username,
		Name:       p.Name,
		CreatedAt:  p.CreatedAt,
		Favorites:  p.Favorites,
		OwnStories: p.Stories,
	}
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	User  UserProfile `json:"user"`
	Token string      `json:"token"`
}
