package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/arcaives/internal/client/config"
	"github.com/dmitrijs2005/arcaives/internal/client/gateway"
	"github.com/dmitrijs2005/arcaives/internal/client/repositories/session"
	"github.com/dmitrijs2005/arcaives/internal/client/services"
	"github.com/dmitrijs2005/arcaives/internal/gate"
	"github.com/dmitrijs2005/arcaives/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// openSession is a test seam for the sqlite session store.
var openSession = session.Open

type pinger interface {
	Ping(ctx context.Context) error
}

// App is one client run: the services, the gate session and the terminal.
type App struct {
	config *config.Config
	logger logging.Logger
	out    io.Writer
	reader *bufio.Reader
	db     *sql.DB
	pinger pinger

	landing *services.LandingService
	archive *services.ArchiveService
	memos   *services.MemoService
	admin   *services.AdminService

	mu      sync.Mutex
	mode    Mode
	session gate.Session
	list    []gate.Item
}

// tables groups the gateway access the services are built on.
type tables struct {
	arcaives services.ArcaiveTable
	memos    services.MemoTable
	contacts services.ContactTable
	uploader services.Uploader
	pinger   pinger
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, "text", os.Stderr)

	db, err := openSession(ctx, c.SessionDSN)
	if err != nil {
		return nil, err
	}

	gw := gateway.New(c.GatewayURL, c.APIKey, c.RequestTimeout)
	t := tables{
		arcaives: gw.Arcaives(),
		memos:    gw.Memos(),
		contacts: gw.Contacts(),
		uploader: gw,
		pinger:   gw,
	}

	a := newApp(c, logger, session.NewSQLiteRepository(db), t)
	a.db = db

	if a.session, err = a.admin.Session(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Debug(ctx, "client started", "gateway", c.GatewayURL, "secure", gate.SecureTransport(c.GatewayURL))
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, store session.Repository, t tables) *App {
	g := gate.NewAdminGate(gate.ReferenceDigest, gate.SecureTransport(c.GatewayURL))
	return &App{
		config:  c,
		logger:  logger,
		out:     os.Stdout,
		reader:  bufio.NewReader(os.Stdin),
		pinger:  t.pinger,
		landing: services.NewLandingService(t.arcaives, t.memos, t.contacts),
		archive: services.NewArchiveService(t.arcaives),
		memos:   services.NewMemoService(t.memos),
		admin:   services.NewAdminService(g, store, t.arcaives, t.memos, t.contacts, t.uploader, c.ImageBucket, logger),
	}
}

// Close releases the session store.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if !changed {
		return
	}
	if mode == ModeOffline {
		a.logger.Warn(context.Background(), "gateway unreachable, switched to offline mode")
		return
	}
	a.logger.Info(context.Background(), "switched to online mode")
}

func (a *App) isAdmin() bool {
	return a.session.Admin
}

func (a *App) getStatus() string {
	var parts []string
	if a.isAdmin() {
		parts = append(parts, "admin")
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// checkOnline pings the gateway once and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.pinger.Ping(ctx); err != nil {
		a.logger.Debug(ctx, "ping failed", "error", err)
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the gateway every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
