// Package server initializes and runs the application server. It selects
// the storage variant (PostgreSQL + S3, or SQLite + local filesystem),
// wires repositories, services and the notification dispatcher, and runs
// the HTTP server until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/smart-mailbox/backend/internal/logging"
	"github.com/smart-mailbox/backend/internal/server/config"
	"github.com/smart-mailbox/backend/internal/server/httpapi"
	"github.com/smart-mailbox/backend/internal/server/notify"
	"github.com/smart-mailbox/backend/internal/server/photos"
	"github.com/smart-mailbox/backend/internal/server/shared/db"
	"github.com/smart-mailbox/backend/internal/server/storage"
	"github.com/smart-mailbox/backend/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	ctx := context.Background()

	var m db.RepositoryManager
	var err error

	switch c.DatabaseDriver {
	case "sqlite":
		m, err = db.NewSQLiteRepositoryManager(c.DatabaseDSN)
	case "pgx":
		m, err = db.NewPostgresRepositoryManager(c.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown database driver: %q", c.DatabaseDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var blobs storage.BlobStore
	uploadsDir := ""

	switch c.StorageBackend {
	case "local":
		local, err := storage.NewLocalStore(c.LocalStorageDir, c.PublicBaseURL)
		if err != nil {
			return nil, fmt.Errorf("local storage init error: %w", err)
		}
		blobs = local
		uploadsDir = local.Dir()
	case "s3":
		blobs, err = storage.NewS3Store(ctx, storage.S3Options{
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", c.StorageBackend)
	}

	var dispatcher notify.Dispatcher
	if c.FirebaseCredentialsJSON != "" {
		dispatcher, err = notify.NewFCMDispatcher(ctx, []byte(c.FirebaseCredentialsJSON))
		if err != nil {
			return nil, fmt.Errorf("fcm init error: %w", err)
		}
	} else {
		dispatcher = notify.NewLogDispatcher(logger)
	}

	us := users.NewService(m.Conn(), m.Users)
	ps := photos.NewService(m.Photos(m.Conn()), us, blobs, dispatcher, logger)

	srv := httpapi.NewServer(c.EndpointAddr, logger, us, ps, uploadsDir)

	return &App{config: c, logger: logger, server: srv}, nil
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
