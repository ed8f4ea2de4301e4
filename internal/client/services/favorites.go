package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
	"golang.org/x/sync/singleflight"
)

// FavoriteService keeps a user's favorites in step with the remote.
// Identical requests in flight at the same time share one remote call.
// Adding a story already held locally is a no-op; removal always reaches
// the remote.
type FavoriteService interface {
	AddFavorite(ctx context.Context, user *models.User, story models.Story) error
	RemoveFavorite(ctx context.Context, user *models.User, storyID string) error
}

type favoriteService struct {
	client client.Client
	log    logging.Logger
	group  singleflight.Group
}

func NewFavoriteService(c client.Client, log logging.Logger) FavoriteService {
	return &favoriteService{client: c, log: log}
}

func (f *favoriteService) AddFavorite(ctx context.Context, user *models.User, story models.Story) error {
	if !user.HasToken() {
		return common.ErrNotLoggedIn
	}
	if user.IsFavorite(story.StoryID) {
		return nil
	}

	key := "add/" + user.Username + "/" + story.StoryID
	_, err, shared := f.group.Do(key, func() (any, error) {
		return nil, f.client.AddFavorite(ctx, user.Token(), user.Username, story.StoryID)
	})
	if err != nil {
		return fmt.Errorf("add favorite %s: %w", story.StoryID, err)
	}

	user.AddFavorite(story)
	f.log.Debug(ctx, "favorite added", "story_id", story.StoryID, "shared", shared)
	return nil
}

func (f *favoriteService) RemoveFavorite(ctx context.Context, user *models.User, storyID string) error {
	if !user.HasToken() {
		return common.ErrNotLoggedIn
	}

	// The local list may be stale, so the remote is asked even for ids we
	// do not hold.
	key := "remove/" + user.Username + "/" + storyID
	_, err, shared := f.group.Do(key, func() (any, error) {
		return nil, f.client.RemoveFavorite(ctx, user.Token(), user.Username, storyID)
	})
	if err != nil {
		return fmt.Errorf("remove favorite %s: %w", storyID, err)
	}

	user.RemoveFavorite(storyID)
	f.log.Debug(ctx, "favorite removed", "story_id", storyID, "shared", shared)
	return nil
}
