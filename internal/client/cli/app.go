package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/config"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/services"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/session"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
)

type App struct {
	config  *config.Config
	session *session.Session
	log     logging.Logger
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the credential database and builds the session. Logs go to
// stderr so they never interleave with tables on stdout.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(c.LogLevel, os.Stderr)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log.With("component", "client")),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var titles services.TitleResolver
	if c.TitleLookup {
		titles = services.NewHTMLTitleResolver(&http.Client{Timeout: c.RequestTimeout})
	}

	sess := session.New(
		services.NewAuthService(apiClient, log),
		services.NewStoryService(apiClient, titles, log),
		services.NewFavoriteService(apiClient, log),
		credentials.NewSQLiteStore(db),
		log.With("component", "session"),
	)

	return &App{
		config:  c,
		session: sess,
		log:     log,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run bootstraps the session, shows the front page and serves commands until
// the user exits or stdin closes.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to Hack or Snooze (type 'help' for commands)")

	if err := a.session.Bootstrap(ctx); err != nil {
		a.log.Debug(ctx, "bootstrap failed", "error", err)
		fmt.Fprintln(a.out, userMessage(actionLoad, err))
	}
	if u := a.session.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	}
	renderStories(a.out, a.session.Stories(), a.session.CurrentUser(), emptyAll)

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.Authenticated
}

func (a *App) status() string {
	if u := a.session.CurrentUser(); u != nil {
		return u.Username
	}
	return "anonymous"
}
