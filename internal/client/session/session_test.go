package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/hackorsnooze/internal/apitest"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/services"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

type fixture struct {
	srv   *apitest.Server
	store credentials.Store
	sess  *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := apitest.NewServer(t)

	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return newFixtureWithStore(t, srv, credentials.NewSQLiteStore(db))
}

func newFixtureWithStore(t *testing.T, srv *apitest.Server, store credentials.Store) *fixture {
	t.Helper()
	c, err := client.NewHTTPClient(srv.URL, client.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	log := logging.Discard()
	sess := New(
		services.NewAuthService(c, log),
		services.NewStoryService(c, nil, log),
		services.NewFavoriteService(c, log),
		store,
		log,
	)
	return &fixture{srv: srv, store: store, sess: sess}
}

func ids(stories []models.Story) []string {
	out := make([]string, 0, len(stories))
	for _, s := range stories {
		out = append(out, s.StoryID)
	}
	return out
}

// memStore is an in-memory credentials.Store whose calls can fail.
type memStore struct {
	creds   credentials.Credentials
	ok      bool
	loadErr error
	saveErr error
	clears  int
}

func (m *memStore) Load(ctx context.Context) (credentials.Credentials, bool, error) {
	return m.creds, m.ok, m.loadErr
}

func (m *memStore) Save(ctx context.Context, c credentials.Credentials) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.creds, m.ok = c, true
	return nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.clears++
	m.creds, m.ok = credentials.Credentials{}, false
	return nil
}

// ---- bootstrap ----

func TestBootstrap_NoCredentials(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedStory(models.Story{Title: "S", Author: "A", URL: "https://a.example", Username: "bob"})

	require.NoError(t, f.sess.Bootstrap(context.Background()))
	assert.Equal(t, Anonymous, f.sess.State())
	assert.Nil(t, f.sess.CurrentUser())
	assert.Len(t, f.sess.Stories(), 1)
	assert.Nil(t, f.sess.Favorites())
}

func TestBootstrap_RestoresRememberedLogin(t *testing.T) {
	f := newFixture(t)
	token := f.srv.SeedUser("alice", "pw", "Alice")
	require.NoError(t, f.store.Save(context.Background(), credentials.Credentials{Token: token, Username: "alice"}))

	require.NoError(t, f.sess.Bootstrap(context.Background()))
	assert.Equal(t, Authenticated, f.sess.State())
	require.NotNil(t, f.sess.CurrentUser())
	assert.Equal(t, "alice", f.sess.CurrentUser().Username)
}

func TestBootstrap_InvalidTokenClearsCredentials(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedUser("alice", "pw", "Alice")
	require.NoError(t, f.store.Save(context.Background(), credentials.Credentials{Token: "garbage", Username: "alice"}))

	require.NoError(t, f.sess.Bootstrap(context.Background()))
	assert.Equal(t, Anonymous, f.sess.State())

	_, ok, err := f.store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBootstrap_OutageKeepsCredentials(t *testing.T) {
	f := newFixture(t)
	token := f.srv.SeedUser("alice", "pw", "Alice")
	require.NoError(t, f.store.Save(context.Background(), credentials.Credentials{Token: token, Username: "alice"}))
	f.srv.FailRoute(http.MethodGet, "/users/", http.StatusServiceUnavailable)

	require.NoError(t, f.sess.Bootstrap(context.Background()))
	assert.Equal(t, Anonymous, f.sess.State())
	assert.Nil(t, f.sess.CurrentUser())

	_, ok, err := f.store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBootstrap_StoryLoadFailure(t *testing.T) {
	f := newFixture(t)
	f.srv.FailWith(http.StatusInternalServerError)

	err := f.sess.Bootstrap(context.Background())
	assert.ErrorIs(t, err, client.ErrServer)
	assert.Equal(t, Anonymous, f.sess.State())
	assert.Empty(t, f.sess.Stories())
}

func TestBootstrap_StoreReadFailure(t *testing.T) {
	srv := apitest.NewServer(t)
	store := &memStore{loadErr: errors.New("disk gone")}
	f := newFixtureWithStore(t, srv, store)

	require.NoError(t, f.sess.Bootstrap(context.Background()))
	assert.Equal(t, Anonymous, f.sess.State())
	assert.Zero(t, store.clears)
}

// ---- login / signup / logout ----

func TestLogin_PersistsCredentials(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedUser("alice", "pw", "Alice")

	u, err := f.sess.Login(context.Background(), "alice", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, Authenticated, f.sess.State())
	assert.Same(t, u, f.sess.CurrentUser())

	creds, ok, err := f.store.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", creds.Username)
	assert.Equal(t, u.Token(), creds.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedUser("alice", "pw", "Alice")

	u, err := f.sess.Login(context.Background(), "alice", []byte("nope"))
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Nil(t, u)
	assert.Equal(t, Anonymous, f.sess.State())
	assert.Nil(t, f.sess.CurrentUser())

	_, ok, err := f.store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_ReplacesUserWholesale(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedUser("alice", "pw", "Alice")
	f.srv.SeedUser("bob", "pw", "Bob")
	ctx := context.Background()

	_, err := f.sess.Login(ctx, "alice", []byte("pw"))
	require.NoError(t, err)
	bob, err := f.sess.Login(ctx, "bob", []byte("pw"))
	require.NoError(t, err)

	assert.Same(t, bob, f.sess.CurrentUser())
	creds, _, err := f.store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", creds.Username)
}

func TestLogin_SaveFailureStillLogsIn(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.SeedUser("alice", "pw", "Alice")
	f := newFixtureWithStore(t, srv, &memStore{saveErr: errors.New("read-only")})

	_, err := f.sess.Login(context.Background(), "alice", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, Authenticated, f.sess.State())
}

func TestSignupThenLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.sess.Signup(ctx, "carol", []byte("pw"), "Carol")
	require.NoError(t, err)
	assert.Equal(t, "Carol", u.Name)
	assert.Equal(t, Authenticated, f.sess.State())

	require.NoError(t, f.sess.Logout(ctx))
	assert.Equal(t, Anonymous, f.sess.State())
	assert.Nil(t, f.sess.CurrentUser())

	_, ok, err := f.store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSignup_Conflict(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedUser("alice", "pw", "Alice")

	_, err := f.sess.Signup(context.Background(), "alice", []byte("pw"), "Alice")
	assert.ErrorIs(t, err, client.ErrConflict)
	assert.Equal(t, Anonymous, f.sess.State())
}

// ---- mutations ----

func TestMutationsWhileAnonymousSendNoRequest(t *testing.T) {
	f := newFixture(t)
	st := f.srv.SeedStory(models.Story{Title: "S", Author: "A", URL: "https://a.example", Username: "bob"})
	require.NoError(t, f.sess.Bootstrap(context.Background()))
	f.srv.ResetRequests()
	ctx := context.Background()

	_, err := f.sess.Submit(ctx, models.StoryDraft{Title: "T", Author: "A", URL: "https://x.example"})
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)
	assert.ErrorIs(t, f.sess.Delete(ctx, st.StoryID), common.ErrNotLoggedIn)
	assert.ErrorIs(t, f.sess.Favorite(ctx, st.StoryID), common.ErrNotLoggedIn)
	assert.ErrorIs(t, f.sess.Unfavorite(ctx, st.StoryID), common.ErrNotLoggedIn)
	_, err = f.sess.ToggleFavorite(ctx, st.StoryID)
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)

	assert.Zero(t, f.srv.RequestCount())
}

func TestSubmitAndDelete(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedUser("alice", "pw", "Alice")
	f.srv.SeedStory(models.Story{Title: "S", Author: "A", URL: "https://a.example", Username: "bob"})
	ctx := context.Background()
	require.NoError(t, f.sess.Bootstrap(ctx))
	_, err := f.sess.Login(ctx, "alice", []byte("pw"))
	require.NoError(t, err)
	before := ids(f.sess.Stories())

	st, err := f.sess.Submit(ctx, models.StoryDraft{Title: "Mine", Author: "Alice", URL: "https://go.dev"})
	require.NoError(t, err)
	assert.Equal(t, st.StoryID, f.sess.Stories()[0].StoryID)
	assert.True(t, f.sess.IsOwnStory(st.StoryID))
	assert.Equal(t, []string{st.StoryID}, ids(f.sess.OwnStories()))

	require.NoError(t, f.sess.Delete(ctx, st.StoryID))
	assert.Equal(t, before, ids(f.sess.Stories()))
	assert.False(t, f.sess.IsOwnStory(st.StoryID))
}

func TestDeleteForeignStoryFails(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedUser("alice", "pw", "Alice")
	st := f.srv.SeedStory(models.Story{Title: "S", Author: "A", URL: "https://a.example", Username: "bob"})
	ctx := context.Background()
	require.NoError(t, f.sess.Bootstrap(ctx))
	_, err := f.sess.Login(ctx, "alice", []byte("pw"))
	require.NoError(t, err)

	err = f.sess.Delete(ctx, st.StoryID)
	assert.ErrorIs(t, err, client.ErrForbidden)
	assert.Equal(t, []string{st.StoryID}, ids(f.sess.Stories()))
}

func TestFavoriteToggle(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedUser("alice", "pw", "Alice")
	st := f.srv.SeedStory(models.Story{Title: "S", Author: "A", URL: "https://a.example", Username: "bob"})
	ctx := context.Background()
	require.NoError(t, f.sess.Bootstrap(ctx))
	_, err := f.sess.Login(ctx, "alice", []byte("pw"))
	require.NoError(t, err)

	on, err := f.sess.ToggleFavorite(ctx, st.StoryID)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, f.sess.IsFavorite(st.StoryID))
	assert.Equal(t, []string{st.StoryID}, f.srv.FavoriteIDs("alice"))

	f.srv.ResetRequests()
	require.NoError(t, f.sess.Favorite(ctx, st.StoryID))
	assert.Zero(t, f.srv.RequestCount())
	assert.Len(t, f.sess.Favorites(), 1)

	on, err = f.sess.ToggleFavorite(ctx, st.StoryID)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, f.sess.Favorites())
	assert.Empty(t, f.srv.FavoriteIDs("alice"))
}

func TestFavoriteUnknownStory(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedUser("alice", "pw", "Alice")
	ctx := context.Background()
	_, err := f.sess.Login(ctx, "alice", []byte("pw"))
	require.NoError(t, err)
	f.srv.ResetRequests()

	assert.ErrorIs(t, f.sess.Favorite(ctx, "ghost"), common.ErrStoryNotFound)
	assert.Zero(t, f.srv.RequestCount())
}

func TestFavoriteRemoteFailureLeavesState(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedUser("alice", "pw", "Alice")
	st := f.srv.SeedStory(models.Story{Title: "S", Author: "A", URL: "https://a.example", Username: "bob"})
	ctx := context.Background()
	require.NoError(t, f.sess.Bootstrap(ctx))
	_, err := f.sess.Login(ctx, "alice", []byte("pw"))
	require.NoError(t, err)

	f.srv.FailRoute(http.MethodPost, "/users/", http.StatusServiceUnavailable)
	on, err := f.sess.ToggleFavorite(ctx, st.StoryID)
	assert.ErrorIs(t, err, client.ErrUnavailable)
	assert.False(t, on)
	assert.False(t, f.sess.IsFavorite(st.StoryID))
}

func TestRefreshStoriesKeepsListOnFailure(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedStory(models.Story{Title: "S", Author: "A", URL: "https://a.example", Username: "bob"})
	ctx := context.Background()
	require.NoError(t, f.sess.RefreshStories(ctx))

	f.srv.FailWith(http.StatusBadGateway)
	assert.ErrorIs(t, f.sess.RefreshStories(ctx), client.ErrUnavailable)
	assert.Len(t, f.sess.Stories(), 1)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "anonymous", Anonymous.String())
	assert.Equal(t, "restoring", RestoringSession.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "State(9)", State(9).String())
}

func TestUnfavoriteReachesRemoteWhenLocalListIsStale(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedUser("alice", "pw", "Alice")
	st := f.srv.SeedStory(models.Story{Title: "S", Author: "A", URL: "https://a.example", Username: "bob"})
	ctx := context.Background()
	require.NoError(t, f.sess.Bootstrap(ctx))
	_, err := f.sess.Login(ctx, "alice", []byte("pw"))
	require.NoError(t, err)

	// favorited from elsewhere after this session loaded the profile
	f.srv.SeedFavorite("alice", st.StoryID)
	require.False(t, f.sess.IsFavorite(st.StoryID))

	require.NoError(t, f.sess.Unfavorite(ctx, st.StoryID))
	assert.Empty(t, f.srv.FavoriteIDs("alice"))
	assert.False(t, f.sess.IsFavorite(st.StoryID))
}
