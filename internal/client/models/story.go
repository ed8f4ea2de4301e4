// Package models defines the client-side data cache: stories, the current
// user with their favorites and own stories, and the global story list.
package models

import (
	"net/url"

	"github.com/dmitrijs2005/hackorsnooze/internal/timex"
)

// UnknownHostname is returned by Story.Hostname when the story URL cannot
// be parsed as an absolute URL.
const UnknownHostname = "unknown"

// Story is a single posted link. It is a value: once decoded from the
// remote service it is never modified, only copied between collections.
type Story struct {
	StoryID   string          `json:"storyId"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	URL       string          `json:"url"`
	Username  string          `json:"username"`
	CreatedAt timex.Timestamp `json:"createdAt"`
}

// StoryDraft holds the fields a user supplies when posting a story.
type StoryDraft struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// Hostname returns the host part of the story URL without a port, or
// UnknownHostname if the URL is not a well-formed absolute URL.
func (s Story) Hostname() string {
	u, err := url.Parse(s.URL)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return UnknownHostname
	}
	return u.Hostname()
}

func indexOf(stories []Story, storyID string) int {
	for i, s := range stories {
		if s.StoryID == storyID {
			return i
		}
	}
	return -1
}

func without(stories []Story, storyID string) ([]Story, bool) {
	kept := stories[:0:0]
	removed := false
	for _, s := range stories {
		if s.StoryID == storyID {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	return kept, removed
}

func prepend(stories []Story, s Story) []Story {
	out := make([]Story, 0, len(stories)+1)
	out = append(out, s)
	return append(out, stories...)
}

func clone(stories []Story) []Story {
	out := make([]Story, len(stories))
	copy(out, stories)
	return out
}
