package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"bee-go/internal/api"
	"bee-go/internal/bee"
	"bee-go/internal/config"
	"bee-go/internal/database"
	"bee-go/internal/media"
	"bee-go/internal/session"
	"bee-go/internal/token"
)

// App is the application layer between the CLI and the data layer.
// It constructs all dependencies from config, exposes them to the command
// tree, and manages the journal record and DB lifecycle on Close.
type App struct {
	cfg     *config.Config
	tokens  bee.TokenStore
	client  *api.Client
	session *session.Store
	media   bee.MediaStore
	db      *database.SQLiteStore
	service *bee.Service
	run     *CommandRun
	logFile *os.File
	logger  bee.Logger
}

// New creates a fully wired App from the given config.
// command identifies the CLI command being run (e.g. "Login", "PublishPost").
// The caller must call Close when done.
func New(ctx context.Context, cfg *config.Config, command string) (*App, error) {
	tokens, err := token.NewStoreFromConfig(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("creating token store: %w", err)
	}

	mediaStore, err := media.NewStoreFromConfig(ctx, cfg.Media)
	if err != nil {
		return nil, fmt.Errorf("creating media store: %w", err)
	}

	db, err := database.NewStoreFromConfig(cfg.Database, bee.RealClock{})
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if err := db.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date (run 'bee config init'): %w", err)
	}

	runID := time.Now().UTC().Format("20060102T150405Z")
	slogger, logFile, err := newLogger(cfg.LogDir, runID)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	client := api.New(cfg.BaseURL, time.Duration(cfg.TimeoutSec)*time.Second, tokens, logger)
	sess := session.NewStore(tokens, client.Users, logger)
	svc := bee.NewService(sess, client.Users, client.Posts, client.Stories, client.Comments,
		mediaStore, db, logger, bee.RealClock{}, bee.UUIDGenerator{})

	return &App{
		cfg:     cfg,
		tokens:  tokens,
		client:  client,
		session: sess,
		media:   mediaStore,
		db:      db,
		service: svc,
		run:     NewCommandRun(command, ""),
		logFile: logFile,
		logger:  logger,
	}, nil
}

// Session returns the session store.
func (a *App) Session() *session.Store { return a.session }

// Client returns the API client.
func (a *App) Client() *api.Client { return a.client }

// Service returns the orchestration service.
func (a *App) Service() *bee.Service { return a.service }

// Media returns the media store.
func (a *App) Media() bee.MediaStore { return a.media }

// Journal returns the command journal.
func (a *App) Journal() bee.Journal { return a.db }

// Config returns the loaded configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Record saves the command run to the journal, giving it an auto-increment
// ID. This should only be called for mutating commands.
func (a *App) Record(parameters string) error {
	if a.run.Persisted() {
		return nil // already persisted
	}
	a.run.Parameters = parameters
	rec, err := a.db.CreateCommand(a.run.Command, a.run.Parameters)
	if err != nil {
		return fmt.Errorf("recording command: %w", err)
	}
	a.run.ID = rec.ID
	return nil
}

// Fail marks the command run as failed; the status lands in the journal
// on Close.
func (a *App) Fail() {
	a.run.Status = "error"
}

// RequireUser initializes the session and returns the current user, or an
// error telling the caller to log in.
func (a *App) RequireUser(ctx context.Context) (*bee.User, error) {
	if err := a.session.Initialize(ctx); err != nil {
		return nil, err
	}
	user := a.session.CurrentUser()
	if user == nil {
		return nil, fmt.Errorf("not logged in: run 'bee login' first")
	}
	return user, nil
}

// Close finalizes the journal record and closes all resources.
func (a *App) Close() error {
	var firstErr error

	if a.run.Persisted() {
		if err := a.db.FinishCommand(a.run.ID, a.run.Status); err != nil {
			firstErr = fmt.Errorf("finishing command record: %w", err)
		}
	}

	if err := a.db.Close(); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("closing database: %w", err)
		}
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
