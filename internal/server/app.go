// Package server assembles the data gateway: it opens PostgreSQL, applies
// migrations, selects the blob backend, and runs the HTTP server until a
// shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/arcaives/internal/buildinfo"
	"github.com/dmitrijs2005/arcaives/internal/logging"
	"github.com/dmitrijs2005/arcaives/internal/server/blob"
	"github.com/dmitrijs2005/arcaives/internal/server/config"
	"github.com/dmitrijs2005/arcaives/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/arcaives/internal/server/rest"
	"github.com/dmitrijs2005/arcaives/internal/server/services"
)

// Seams for tests.
var (
	openDB               = repomanager.Open
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
	newBlobStore         = blob.NewFromConfig
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat, os.Stdout)

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := newBlobStore(ctx, c, selfURL(c.HTTPAddr))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	uploads := services.NewUploadService(store, c.MaxUploadBytes, logger.With("module", "uploads"))

	handler := rest.NewRouter(rest.Deps{
		Arcaives:        services.NewArcaiveService(db, rm),
		Memos:           services.NewMemoService(db, rm),
		Contacts:        services.NewContactService(db, rm),
		Uploads:         uploads,
		Health:          rest.NewHealthHandler(rest.PingFunc(db.PingContext), uploads, buildinfo.Version),
		Logger:          logger,
		SecretKey:       []byte(c.SecretKey),
		AllowAnonWrites: c.AllowAnonWrites,
		CORSOrigins:     c.Origins(),
	})

	return &App{config: c, logger: logger, db: db, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx ends or a termination signal arrives, then closes the
// database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "version", buildinfo.Version, "blob_backend", app.config.BlobBackend)

	app.initSignalHandler(cancelFunc)

	s := rest.NewServer(app.config.HTTPAddr, app.handler, app.logger, app.config.ShutdownTimeout)
	runErr := s.Run(ctx)

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
	return runErr
}

// selfURL turns a listen address into a base URL reachable from this host.
func selfURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://127.0.0.1" + addr
	}
	return "http://" + strings.Replace(addr, "0.0.0.0", "127.0.0.1", 1)
}
