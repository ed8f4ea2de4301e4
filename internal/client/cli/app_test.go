package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/hackorsnooze/internal/apitest"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/config"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/services"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/session"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

type testApp struct {
	*App
	srv   *apitest.Server
	store *credentials.SQLiteStore
	buf   *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	srv := apitest.NewServer(t)

	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	c, err := client.NewHTTPClient(srv.URL, client.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	log := logging.Discard()
	store := credentials.NewSQLiteStore(db)
	sess := session.New(
		services.NewAuthService(c, log),
		services.NewStoryService(c, nil, log),
		services.NewFavoriteService(c, log),
		store,
		log,
	)

	buf := &bytes.Buffer{}
	app := &App{
		config:  &config.Config{},
		session: sess,
		log:     log,
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     buf,
	}
	return &testApp{App: app, srv: srv, store: store, buf: buf}
}

// stubInputs answers text prompts from answers in order and every password
// prompt with password.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origText, origPassword := askText, askPassword
	askText = func(_ *bufio.Reader, _ io.Writer, _ string, _ bool) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	askPassword = func(_ io.Writer, _ string) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		askText = origText
		askPassword = origPassword
	})
}

func (ta *testApp) login(t *testing.T, username string) {
	t.Helper()
	stubInputs(t, "pw", username)
	require.NoError(t, ta.Login(context.Background()))
	ta.buf.Reset()
}
