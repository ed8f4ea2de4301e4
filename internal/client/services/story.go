package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
)

// StoryService loads and edits the global story list.
type StoryService interface {
	Load(ctx context.Context) (*models.StoryList, error)
	AddStory(ctx context.Context, list *models.StoryList, user *models.User, draft models.StoryDraft) (models.Story, error)
	RemoveStory(ctx context.Context, list *models.StoryList, user *models.User, storyID string) error
}

type storyService struct {
	client client.Client
	titles TitleResolver
	log    logging.Logger
}

// NewStoryService returns a StoryService. titles may be nil, in which case
// untitled drafts are rejected with common.ErrTitleRequired.
func NewStoryService(c client.Client, titles TitleResolver, log logging.Logger) StoryService {
	return &storyService{client: c, titles: titles, log: log}
}

func (s *storyService) Load(ctx context.Context) (*models.StoryList, error) {
	stories, err := s.client.GetStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stories: %w", err)
	}
	s.log.Debug(ctx, "stories loaded", "count", len(stories))
	return models.NewStoryList(stories), nil
}

// AddStory posts draft as user and prepends the created story to list and
// to the user's own stories.
func (s *storyService) AddStory(ctx context.Context, list *models.StoryList, user *models.User, draft models.StoryDraft) (models.Story, error) {
	if !user.HasToken() {
		return models.Story{}, common.ErrNotLoggedIn
	}

	draft.Title = strings.TrimSpace(draft.Title)
	draft.Author = strings.TrimSpace(draft.Author)
	draft.URL = strings.TrimSpace(draft.URL)

	if draft.Title == "" && s.titles != nil {
		title, err := s.titles.Resolve(ctx, draft.URL)
		if err != nil {
			s.log.Debug(ctx, "title lookup failed", "url", draft.URL, "error", err)
		}
		draft.Title = title
	}
	if draft.Title == "" {
		return models.Story{}, common.ErrTitleRequired
	}

	story, err := s.client.CreateStory(ctx, user.Token(), draft)
	if err != nil {
		return models.Story{}, fmt.Errorf("add story: %w", err)
	}

	list.Prepend(story)
	user.PrependOwnStory(story)
	s.log.Info(ctx, "story added", "story_id", story.StoryID, "username", user.Username)
	return story, nil
}

// RemoveStory deletes storyID remotely and then drops it from list and
// from the user's own stories and favorites.
func (s *storyService) RemoveStory(ctx context.Context, list *models.StoryList, user *models.User, storyID string) error {
	if !user.HasToken() {
		return common.ErrNotLoggedIn
	}

	if err := s.client.DeleteStory(ctx, user.Token(), storyID); err != nil {
		return fmt.Errorf("remove story %s: %w", storyID, err)
	}

	list.Remove(storyID)
	user.RemoveOwnStory(storyID)
	user.RemoveFavorite(storyID)
	s.log.Info(ctx, "story removed", "story_id", storyID, "username", user.Username)
	return nil
}
