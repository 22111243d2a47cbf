// Package server initializes and runs the journal backend. It provisions the
// database, wires the inference client into the services, and starts the
// HTTP server with graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/hunterxdhanush/mindful-mentor/internal/logging"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/api"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/config"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/inference"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/provision"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/repositories/repomanager"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config) *App {
	l := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return &App{config: c, logger: logging.NewSlogLogger(l)}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	db, err := provision.EnsureReady(ctx, app.config.DatabaseDSN, app.logger)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			app.logger.Error(ctx, "error closing db", "error", err.Error())
		}
	}()

	client := inference.NewClient(inference.Config{
		BaseURL:        app.config.HFBaseURL,
		APIKey:         app.config.HFAPIKey,
		EmbeddingModel: app.config.EmbeddingModel,
		SentimentModel: app.config.SentimentModel,
		Timeout:        app.config.RequestTimeout,
	})

	rm := repomanager.NewPostgresRepositoryManager()

	userService := services.NewUserService(db, rm, app.logger)
	indexerService := services.NewIndexerService(db, rm, client, app.logger)
	journalService := services.NewJournalService(db, rm, indexerService, app.logger)
	searchService := services.NewSearchService(db, rm, client, app.logger)
	sentimentService := services.NewSentimentService(client, app.logger)

	srv := api.NewServer(app.config.EndpointAddr, app.logger,
		userService, journalService, indexerService, searchService, sentimentService)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	return nil
}
