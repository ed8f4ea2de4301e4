package models

import "sync"

// StoryList is the ordered collection of all known stories: server order
// after a load, newest first for stories created in this session.
// It is safe for concurrent use.
type StoryList struct {
	mu      sync.RWMutex
	stories []Story
}

// NewStoryList copies stories into a new list, keeping their order.
func NewStoryList(stories []Story) *StoryList {
	return &StoryList{stories: clone(stories)}
}

// Stories returns a copy of the collection in order.
func (l *StoryList) Stories() []Story {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return clone(l.stories)
}

// Len returns the number of stories.
func (l *StoryList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.stories)
}

// Find looks a story up by id.
func (l *StoryList) Find(storyID string) (Story, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := indexOf(l.stories, storyID); i >= 0 {
		return l.stories[i], true
	}
	return Story{}, false
}

// Prepend inserts s at the front of the list.
func (l *StoryList) Prepend(s Story) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stories = prepend(l.stories, s)
}

// Remove drops every entry with the given id. It reports whether anything
// was removed; a missing id is not an error.
func (l *StoryList) Remove(storyID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	var removed bool
	l.stories, removed = without(l.stories, storyID)
	return removed
}
