// Package cli implements the interactive SkillGraph client: a REPL over the
// session manager and the slice publishers.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/skillgraph/skillgraph/internal/client/config"
	"github.com/skillgraph/skillgraph/internal/client/publish"
	"github.com/skillgraph/skillgraph/internal/client/session"
	"github.com/skillgraph/skillgraph/internal/client/store"
	"github.com/skillgraph/skillgraph/internal/client/syncx"
	"github.com/skillgraph/skillgraph/internal/logging"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	session    *session.Manager
	publishers *publish.Publishers
	reader     *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	remote := store.NewRemoteStore(c.ServerBaseURL, c.RequestTimeout)
	local := store.NewLocalStore(c.LocalStorePath)
	engine := syncx.NewEngine(remote, local, logger)

	slot := session.NewSlot(c.SessionSlotPath)
	sess := session.NewManager(engine, slot, remote, logger)
	pubs := publish.NewPublishers(engine, sess, logger)

	return &App{
		config:     c,
		logger:     logger,
		session:    sess,
		publishers: pubs,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

func (a *App) status() string {
	if id := a.session.Identity(); id != nil {
		return id.Email
	}
	return "anonymous"
}

// Run resumes a saved session when present and starts the REPL. Pending
// durable writes are drained on exit.
func (a *App) Run(ctx context.Context) {
	defer a.publishers.Close()

	if resumed, err := a.session.Resume(ctx); err != nil {
		a.logger.Warn(ctx, "session resume failed", "error", err)
	} else if resumed {
		printlnFn("Welcome back,", a.session.Identity().Name)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}
