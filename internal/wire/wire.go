// Package wire provides dependency injection for the shipdesk application.
// It creates singleton services with lazy initialization.
package wire

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/shipdesk/internal/adapters/cli"
	"github.com/example/shipdesk/internal/adapters/httpapi"
	"github.com/example/shipdesk/internal/adapters/sqlite"
	"github.com/example/shipdesk/internal/app"
	"github.com/example/shipdesk/internal/config"
	"github.com/example/shipdesk/internal/core/schema"
	"github.com/example/shipdesk/internal/db"
	"github.com/example/shipdesk/internal/logging"
	"github.com/example/shipdesk/internal/ports/primary"
	"github.com/example/shipdesk/internal/ports/secondary"
)

// Overrides are the root command flags that take precedence over the config file.
// They must be set before the first service is requested.
type Overrides struct {
	Profile string
	APIURL  string
	Verbose bool
}

var (
	overrides Overrides

	cfg            *config.Config
	logger         *zap.Logger
	sessionStore   *sqlite.SessionStore
	activityWriter secondary.LogWriter
	client         *httpapi.Client
	logService     primary.LogService
	sessionService primary.SessionService
	initErr        error
	once           sync.Once
)

// SetOverrides records flag overrides for the next initialization.
func SetOverrides(o Overrides) {
	overrides = o
}

// Init initializes every service and reports the first failure.
func Init() error {
	once.Do(initServices)
	return initErr
}

// Config returns the effective configuration.
func Config() *config.Config {
	mustInit()
	return cfg
}

// Logger returns the process logger.
func Logger() *zap.Logger {
	mustInit()
	return logger
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	mustInit()
	return logService
}

// SessionService returns the singleton SessionService instance.
func SessionService() primary.SessionService {
	mustInit()
	return sessionService
}

// ListController returns a new controller for resource. Each call owns its own
// collection and view state.
func ListController(resource string) (primary.ListService, error) {
	mustInit()
	s, err := schema.Lookup(resource)
	if err != nil {
		return nil, err
	}

	auth := app.NewSessionAuth(sessionStore, cfg.Profile, cfg.Token, func(profile string) {
		logger.Warn("session rejected by server, cleared", zap.String("profile", profile))
	})
	return app.NewListController(s, client.Records(s), auth, app.ListControllerOptions{
		PageSize:          cfg.PageSize,
		RequestTimeout:    cfg.RequestTimeout,
		DeleteConcurrency: cfg.DeleteConcurrency,
		Locale:            cfg.Language(),
		Logger:            logger,
		Activity:          activityWriter,
	}), nil
}

// Sync flushes the logger.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func mustInit() {
	once.Do(initServices)
	if initErr != nil {
		log.Fatalf("failed to initialize shipdesk: %v", initErr)
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	initErr = buildServices()
}

func buildServices() error {
	var err error
	cfg, err = config.LoadDefault()
	if err != nil {
		return err
	}
	if overrides.Profile != "" {
		cfg.Profile = overrides.Profile
	}
	if overrides.APIURL != "" {
		cfg.APIURL = overrides.APIURL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	dir, err := config.Dir()
	if err != nil {
		return err
	}
	logger, err = logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Path:    filepath.Join(dir, logging.FileName),
		Verbose: overrides.Verbose,
	})
	if err != nil {
		return err
	}
	logger = logger.With(zap.String("profile", cfg.Profile))

	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	sessionStore = sqlite.NewSessionStore(database)
	activityRepo := sqlite.NewActivityRepository(database)
	activityWriter = sqlite.NewLogWriterAdapter(activityRepo)

	client, err = httpapi.NewClient(cfg.APIURL, httpapi.WithLogger(logger))
	if err != nil {
		return err
	}

	// Create services (primary ports implementation)
	logService = app.NewLogService(activityRepo)
	sessionService = app.NewSessionService(sessionStore, client, cfg.Profile, cfg.Token, logger)
	return nil
}

// RecordAdapter returns a new RecordAdapter for resource writing to stdout.
func RecordAdapter(resource string) (*cliadapter.RecordAdapter, error) {
	return RecordAdapterWithOutput(resource, os.Stdout)
}

// RecordAdapterWithOutput returns a new RecordAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func RecordAdapterWithOutput(resource string, out io.Writer) (*cliadapter.RecordAdapter, error) {
	controller, err := ListController(resource)
	if err != nil {
		return nil, err
	}
	return cliadapter.NewRecordAdapter(controller, out), nil
}

// LogAdapter returns a new LogAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func LogAdapter() *cliadapter.LogAdapter {
	return LogAdapterWithOutput(os.Stdout)
}

// LogAdapterWithOutput returns a new LogAdapter writing to the given output.
func LogAdapterWithOutput(out io.Writer) *cliadapter.LogAdapter {
	return cliadapter.NewLogAdapter(LogService(), out)
}
