package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/tickettrack/internal/client/config"
	"github.com/dmitrijs2005/tickettrack/internal/client/services"
	"github.com/dmitrijs2005/tickettrack/internal/client/storage"
	"github.com/dmitrijs2005/tickettrack/internal/logging"
)

type App struct {
	config  *config.Config
	db      *sql.DB
	auth    services.AuthService
	tickets services.TicketService
	reader  *bufio.Reader
	out     *os.File
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := storage.Open(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	store := storage.NewSQLiteStore(db)
	logger := logging.NewSlogLogger(slog.Default())

	return &App{
		config:  c,
		db:      db,
		auth:    services.NewAuthService(store, logger, c.AuthLatency),
		tickets: services.NewTicketService(store, logger),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores the persisted session and enters the REPL. It blocks until
// the user exits.
func (a *App) Run(ctx context.Context) error {
	defer func() { _ = a.db.Close() }()

	if err := a.auth.Restore(ctx); err != nil {
		return err
	}
	a.Root(ctx)
	return nil
}

func (a *App) isLoggedIn() bool {
	sess, loaded := a.auth.Current()
	return loaded && sess != nil
}

// owner returns the active account id, or false when nobody is logged in.
func (a *App) owner() (string, bool) {
	sess, loaded := a.auth.Current()
	if !loaded || sess == nil {
		return "", false
	}
	return sess.ID, true
}
