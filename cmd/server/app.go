package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/forget/internal/config"
	"github.com/phrazzld/forget/internal/events"
	"github.com/phrazzld/forget/internal/platform/metrics"
	"github.com/phrazzld/forget/internal/platform/postgres"
	"github.com/phrazzld/forget/internal/sink"
	"github.com/phrazzld/forget/internal/store"
	"github.com/phrazzld/forget/internal/task"
)

// application holds the wired components of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	recorder   *sink.Recorder
	faultStore store.FaultStore
	emitter    *events.FaultEmitter
	dispatcher *task.Dispatcher
	metrics    *metrics.Metrics
}

// newApplication wires the fault sinks and starts the dispatcher. db may be
// nil, in which case faults are only logged and kept in memory.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		recorder: sink.NewRecorder(sink.DefaultRecorderCapacity),
		emitter:  events.NewFaultEmitter(logger),
	}

	app.emitter.Register("log", sink.NewLogSink(logger))
	app.emitter.Register("recorder", app.recorder)

	if db != nil {
		app.faultStore = postgres.NewPostgresFaultStore(db)
		app.emitter.Register("postgres", sink.NewStoreSink(app.faultStore))
		logger.Info("Persisting faults to PostgreSQL")
	}

	var err error
	app.dispatcher, err = task.New(cfg.Dispatcher.TaskConfig(), app.emitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	app.metrics = metrics.NewMetrics(app.dispatcher)

	logger.Info("Application initialized successfully", "fault_sinks", app.emitter.Len())
	return app, nil
}

// faultReader returns the store backing the faults API.
func (app *application) faultReader() store.FaultReader {
	if app.faultStore != nil {
		return app.faultStore
	}
	return app.recorder
}

// Run serves HTTP until ctx is cancelled, then shuts everything down.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup drains the dispatcher and closes the database.
func (app *application) cleanup() {
	drainCtx, cancel := context.WithTimeout(context.Background(), app.config.Dispatcher.DrainTimeout)
	defer cancel()

	if err := app.dispatcher.Shutdown(drainCtx); err != nil {
		app.logger.Error("Dispatcher did not drain in time", "error", err)
	}

	stats := app.dispatcher.Stats()
	app.logger.Info("Dispatcher stopped",
		"submitted", stats.Submitted,
		"completed", stats.Completed,
		"faulted", stats.Faulted,
		"sink_failures", stats.SinkFailures)

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
