package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/ebalakin/cartsync/internal/client/config"
	"github.com/ebalakin/cartsync/internal/client/models"
	"github.com/ebalakin/cartsync/internal/client/services"
	"github.com/ebalakin/cartsync/internal/client/store"
	"github.com/ebalakin/cartsync/internal/client/syncer"
	"github.com/ebalakin/cartsync/internal/client/transport"
	"github.com/ebalakin/cartsync/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the client together: the local database, the HTTP transport, and
// (once a list is selected) a per-list service plus background synchronizer.
type App struct {
	config    *config.Config
	db        *sql.DB
	client    transport.Client
	logger    logging.Logger
	reader    *bufio.Reader
	userName  string
	listID    string
	listSvc   services.ListService
	syncer    *syncer.Syncer
	scheduler *syncer.Scheduler

	// listing maps the numbers printed by the last List call back to items.
	listing []models.Item
}

// NewApp initializes the local database and the server transport.
// List selection happens later, via the "use" or "newlist" commands.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	db, err := store.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := transport.NewHTTPClient(c.ServerAddr)

	return &App{
		config: c,
		db:     db,
		client: apiClient,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) hasList() bool {
	return a.listID != ""
}

// selectList binds the session to one list: it builds the list service,
// the syncer and the background scheduler for it. A previously selected
// list's scheduler is stopped first.
func (a *App) selectList(ctx context.Context, listID string) {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	a.listID = listID
	a.syncer = syncer.New(a.db, a.client, a.logger, listID)
	a.scheduler = syncer.NewScheduler(a.syncer, a.client, a.logger, &syncer.SchedulerConfig{
		SyncInterval: a.config.SyncInterval,
		PingInterval: a.config.PingInterval,
	})
	a.listSvc = services.NewListService(a.db, listID, a.scheduler)
	a.scheduler.Start(ctx)
}

// Close stops background work and releases the database and transport.
func (a *App) Close() error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.client != nil {
		_ = a.client.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
