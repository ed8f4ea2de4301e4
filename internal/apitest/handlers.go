package apitest

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/timex"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type profileJSON struct {
	Username  string          `json:"username"`
	Name      string          `json:"name"`
	CreatedAt timex.Timestamp `json:"createdAt"`
	Favorites []models.Story  `json:"favorites"`
	Stories   []models.Story  `json:"stories"`
}

type tokenJSON struct {
	Token string `json:"token"`
}

// profile renders u the way the real API does. Callers hold s.mu.
func (s *Server) profile(u *user) profileJSON {
	p := profileJSON{
		Username:  u.username,
		Name:      u.name,
		CreatedAt: timex.NewTimestamp(u.createdAt),
		Favorites: []models.Story{},
		Stories:   []models.Story{},
	}
	for _, id := range u.favorites {
		if st, ok := s.findStory(id); ok {
			p.Favorites = append(p.Favorites, st)
		}
	}
	for _, st := range s.stories {
		if st.Username == u.username {
			p.Stories = append(p.Stories, st)
		}
	}
	return p
}

func (s *Server) findStory(id string) (models.Story, bool) {
	for _, st := range s.stories {
		if st.StoryID == id {
			return st, true
		}
	}
	return models.Story{}, false
}

func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stories := append([]models.Story{}, s.stories...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"stories": stories})
}

func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string            `json:"token"`
		Story models.StoryDraft `json:"story"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.authenticate(req.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "A valid token is required")
		return
	}
	if req.Story.Title == "" || req.Story.Author == "" || req.Story.URL == "" {
		writeError(w, http.StatusBadRequest, "title, author and url are required")
		return
	}

	st := models.Story{
		StoryID:   uuid.NewString(),
		Title:     req.Story.Title,
		Author:    req.Story.Author,
		URL:       req.Story.URL,
		Username:  u.username,
		CreatedAt: timex.NewTimestamp(s.now()),
	}
	s.stories = append([]models.Story{st}, s.stories...)

	writeJSON(w, http.StatusCreated, map[string]any{"story": st})
}

func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	var req tokenJSON
	_ = json.NewDecoder(r.Body).Decode(&req)
	storyID := chi.URLParam(r, "storyId")

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.authenticate(req.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "A valid token is required")
		return
	}
	st, ok := s.findStory(storyID)
	if !ok {
		writeError(w, http.StatusNotFound, "Could not find story with id '"+storyID+"'")
		return
	}
	if st.Username != u.username {
		writeError(w, http.StatusForbidden, "You can only delete your own stories")
		return
	}

	kept := s.stories[:0:0]
	for _, other := range s.stories {
		if other.StoryID != storyID {
			kept = append(kept, other)
		}
	}
	s.stories = kept
	for _, other := range s.users {
		favs := other.favorites[:0:0]
		for _, id := range other.favorites {
			if id != storyID {
				favs = append(favs, id)
			}
		}
		other.favorites = favs
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Story '" + storyID + "' deleted", "story": st})
}

type credentialsJSON struct {
	User struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
	} `json:"user"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	if req.User.Username == "" || req.User.Password == "" || req.User.Name == "" {
		writeError(w, http.StatusBadRequest, "username, password and name are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.User.Username]; exists {
		writeError(w, http.StatusConflict, "There is already a user with username '"+req.User.Username+"'.")
		return
	}
	u := &user{username: req.User.Username, password: req.User.Password, name: req.User.Name, createdAt: s.now()}
	s.users[u.username] = u

	writeJSON(w, http.StatusCreated, map[string]any{"user": s.profile(u), "token": s.issueToken(u.username)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[req.User.Username]
	if !ok {
		writeError(w, http.StatusNotFound, "Could not find user with username '"+req.User.Username+"'")
		return
	}
	if u.password != req.User.Password {
		writeError(w, http.StatusUnauthorized, "Invalid Password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": s.profile(u), "token": s.issueToken(u.username)})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	token := r.URL.Query().Get("token")

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.authenticate(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "A valid token is required")
		return
	}
	target, ok := s.users[username]
	if !ok {
		writeError(w, http.StatusNotFound, "Could not find user with username '"+username+"'")
		return
	}
	if target != u {
		writeError(w, http.StatusUnauthorized, "Token does not match user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": s.profile(u)})
}

// favoriteTarget resolves and authorises a favorite request. Callers hold s.mu.
func (s *Server) favoriteTarget(w http.ResponseWriter, r *http.Request) (*user, string, bool) {
	var req tokenJSON
	_ = json.NewDecoder(r.Body).Decode(&req)
	username := chi.URLParam(r, "username")
	storyID := chi.URLParam(r, "storyId")

	u, err := s.authenticate(req.Token)
	if err != nil || u.username != username {
		writeError(w, http.StatusUnauthorized, "A valid token is required")
		return nil, "", false
	}
	if _, ok := s.findStory(storyID); !ok {
		writeError(w, http.StatusNotFound, "Could not find story with id '"+storyID+"'")
		return nil, "", false
	}
	return u, storyID, true
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, storyID, ok := s.favoriteTarget(w, r)
	if !ok {
		return
	}
	if !contains(u.favorites, storyID) {
		u.favorites = append(u.favorites, storyID)
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Favorite Added!", "user": s.profile(u)})
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, storyID, ok := s.favoriteTarget(w, r)
	if !ok {
		return
	}
	favs := u.favorites[:0:0]
	for _, id := range u.favorites {
		if id != storyID {
			favs = append(favs, id)
		}
	}
	u.favorites = favs

	writeJSON(w, http.StatusOK, map[string]any{"message": "Favorite Removed!", "user": s.profile(u)})
}
