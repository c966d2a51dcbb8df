// Package server initializes and runs the featurevote server: it opens the
// database pool, applies migrations, builds the services and serves them
// over gRPC and HTTP until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/dbx"
	"github.com/dmitrijs2005/featurevote/internal/logging"
	"github.com/dmitrijs2005/featurevote/internal/server/config"
	"github.com/dmitrijs2005/featurevote/internal/server/httpapi"
	"github.com/dmitrijs2005/featurevote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/featurevote/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/featurevote/internal/server/grpc"
)

const migrationTimeout = 30 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager

	users    *services.UserService
	features *services.FeatureService
	ledger   *services.VoteLedger
	ranking  *services.RankingService
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	store := dbx.NewSQLStore(db)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: rm,
		users:       services.NewUserService(store, rm, c),
		features:    services.NewFeatureService(store, rm),
		ledger:      services.NewVoteLedger(store, rm),
		ranking:     services.NewRankingService(store, rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.users, app.features, app.ledger, app.ranking, app.config.RequestTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server", "error", err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.users, app.features, app.ledger, app.ranking, app.config.RequestTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server", "error", err.Error())
		cancelFunc()
	}
}

func (app *App) migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, migrationTimeout)
	defer cancel()
	return app.repomanager.RunMigrations(ctx, app.db)
}

// Run blocks until ctx is cancelled, a shutdown signal arrives or one of
// the transports fails. The database pool is closed on return.
func (app *App) Run(ctx context.Context) error {
	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "closing db", "error", err.Error())
		}
	}()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.migrate(ctx); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err.Error())
		return err
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
	return nil
}
