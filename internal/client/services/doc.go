// Package services contains the application services of the hackorsnooze
// client. They sit between the session and the remote Client and keep the
// in-memory models consistent with what the remote accepted.
//
// Overview
//
//   - StoryService: loading the story list, posting and deleting stories.
//   - AuthService: signup, login and restoring a remembered session.
//   - FavoriteService: adding and removing favorites, remote first.
//   - TitleResolver: looking up a page title for untitled submissions.
//
// Every remote-backed operation takes a context and makes at most one
// remote call. Local collections change only after the remote call
// succeeded; on failure the error is returned wrapped and nothing changes.
package services
