package common

import "errors"

var (
	// ErrNotLoggedIn is returned when a mutating action is attempted
	// without a current user. It is raised before any network call.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrStoryNotFound means a story id could not be resolved against
	// any of the in-memory collections.
	ErrStoryNotFound = errors.New("story not found")

	// ErrTitleRequired is returned when a story is submitted without a
	// title and none could be looked up.
	ErrTitleRequired = errors.New("story title is required")
)
