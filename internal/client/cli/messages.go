package cli

import (
	"errors"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
)

type action int

const (
	actionLoad action = iota
	actionLogin
	actionSignup
	actionSubmit
	actionDelete
	actionFavorite
)

var failureMessages = map[action]string{
	actionLoad:     "Error getting stories. Please try again.",
	actionLogin:    "Login failed. Please check your credentials and try again.",
	actionSignup:   "Signup failed. Please try again.",
	actionSubmit:   "Failed to add story. Please try again.",
	actionDelete:   "Failed to delete story. Please try again.",
	actionFavorite: "Failed to update favorite. Please try again.",
}

// userMessage turns an error from the session into the line shown to the
// user. Details stay in the debug log.
func userMessage(act action, err error) string {
	switch {
	case errors.Is(err, common.ErrNotLoggedIn):
		if act == actionSubmit {
			return "You must be logged in to submit a story."
		}
		return "You must be logged in to do that."
	case errors.Is(err, common.ErrStoryNotFound):
		return "No story with that id. Type 'stories' to see the list."
	case errors.Is(err, common.ErrTitleRequired):
		return "A title is required."
	case act == actionSignup && errors.Is(err, client.ErrConflict):
		return "That username is already taken. Please choose another."
	case act == actionDelete && errors.Is(err, client.ErrForbidden):
		return "You can only delete your own stories."
	}

	msg := failureMessages[act]
	if errors.Is(err, client.ErrUnavailable) {
		msg += " (server unavailable)"
	}
	return msg
}
