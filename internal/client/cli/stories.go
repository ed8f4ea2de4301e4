package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
)

const (
	emptyAll       = "No stories yet."
	emptyFavorites = "No favorites added!"
	emptyOwn       = "No stories added by user yet!"
)

// ShowStories reloads the story list and prints it. On a load failure the
// previously loaded list is shown.
func (a *App) ShowStories(ctx context.Context) error {
	err := a.session.RefreshStories(ctx)
	if err != nil {
		a.log.Debug(ctx, "refresh failed", "error", err)
		fmt.Fprintln(a.out, userMessage(actionLoad, err))
	}
	renderStories(a.out, a.session.Stories(), a.session.CurrentUser(), emptyAll)
	return err
}

func (a *App) ShowFavorites(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, userMessage(actionFavorite, common.ErrNotLoggedIn))
		return common.ErrNotLoggedIn
	}
	renderStories(a.out, a.session.Favorites(), a.session.CurrentUser(), emptyFavorites)
	return nil
}

func (a *App) ShowOwnStories(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, userMessage(actionFavorite, common.ErrNotLoggedIn))
		return common.ErrNotLoggedIn
	}
	renderStories(a.out, a.session.OwnStories(), a.session.CurrentUser(), emptyOwn)
	return nil
}

// Submit prompts for a new story and posts it. Anonymous users are turned
// away before any prompt.
func (a *App) Submit(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, userMessage(actionSubmit, common.ErrNotLoggedIn))
		return common.ErrNotLoggedIn
	}

	titlePrompt := "Title"
	if a.config != nil && a.config.TitleLookup {
		titlePrompt = "Title (leave empty to use the page title)"
	}

	var draft models.StoryDraft
	var err error
	if draft.Title, err = askText(a.reader, a.out, titlePrompt, false); err != nil {
		return err
	}
	if draft.Author, err = askText(a.reader, a.out, "Author", true); err != nil {
		return err
	}
	if draft.URL, err = askText(a.reader, a.out, "URL", true); err != nil {
		return err
	}

	story, err := a.session.Submit(ctx, draft)
	if err != nil {
		a.log.Debug(ctx, "submit failed", "error", err)
		fmt.Fprintln(a.out, userMessage(actionSubmit, err))
		return err
	}

	fmt.Fprintf(a.out, "Story added: %s (%s)\n", story.Title, story.StoryID)
	return nil
}

func (a *App) Delete(ctx context.Context, storyID string) error {
	if err := a.session.Delete(ctx, storyID); err != nil {
		a.log.Debug(ctx, "delete failed", "story_id", storyID, "error", err)
		fmt.Fprintln(a.out, userMessage(actionDelete, err))
		return err
	}
	fmt.Fprintln(a.out, "Story deleted.")
	return nil
}

func (a *App) Favorite(ctx context.Context, storyID string) error {
	if err := a.session.Favorite(ctx, storyID); err != nil {
		a.log.Debug(ctx, "favorite failed", "story_id", storyID, "error", err)
		fmt.Fprintln(a.out, userMessage(actionFavorite, err))
		return err
	}
	fmt.Fprintln(a.out, starOn+" Added to favorites.")
	return nil
}

func (a *App) Unfavorite(ctx context.Context, storyID string) error {
	if err := a.session.Unfavorite(ctx, storyID); err != nil {
		a.log.Debug(ctx, "unfavorite failed", "story_id", storyID, "error", err)
		fmt.Fprintln(a.out, userMessage(actionFavorite, err))
		return err
	}
	fmt.Fprintln(a.out, starOff+" Removed from favorites.")
	return nil
}

// Star toggles the favorite state of a story.
func (a *App) Star(ctx context.Context, storyID string) error {
	on, err := a.session.ToggleFavorite(ctx, storyID)
	if err != nil {
		a.log.Debug(ctx, "star failed", "story_id", storyID, "error", err)
		fmt.Fprintln(a.out, userMessage(actionFavorite, err))
		return err
	}
	if on {
		fmt.Fprintln(a.out, starOn+" Added to favorites.")
	} else {
		fmt.Fprintln(a.out, starOff+" Removed from favorites.")
	}
	return nil
}
