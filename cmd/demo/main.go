// Package main replays the fire-and-forget scenarios against a local
// dispatcher and reports how many faults reached the sink.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/phrazzld/forget/internal/events"
	"github.com/phrazzld/forget/internal/platform/logger"
	"github.com/phrazzld/forget/internal/sink"
	"github.com/phrazzld/forget/internal/task"
)

func main() {
	scenarioName := flag.String("scenario", "all", "scenario to run: all, "+scenarioNames())
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	workers := flag.Int("workers", 4, "number of dispatcher workers")
	serialize := flag.Bool("serialize", false, "deliver faults through a single goroutine")
	slowDelay := flag.Duration("slow-delay", 2500*time.Millisecond, "sleep before the slow scenario fails")
	flag.Parse()

	l, err := logger.Setup(logger.LoggerConfig{Level: *logLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logger: %v\n", err)
		os.Exit(1)
	}

	selected, err := selectScenarios(*scenarioName)
	if err != nil {
		l.Error("invalid scenario", "error", err)
		os.Exit(2)
	}

	cfg := task.DefaultConfig()
	cfg.Workers = *workers
	cfg.SerializeFaults = *serialize

	failed := false
	for _, sc := range selected {
		res, err := runScenario(context.Background(), sc, cfg, *slowDelay, l)
		if err != nil {
			l.Error("scenario failed", "scenario", sc.name, "error", err)
			failed = true
			continue
		}
		l.Info("scenario finished",
			"scenario", sc.name,
			"faults_expected", sc.expectedFaults,
			"faults_captured", res.faults,
			"elapsed", res.elapsed)
		if res.faults != int64(sc.expectedFaults) {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

type result struct {
	faults  int64
	elapsed time.Duration
}

// runScenario runs sc on a fresh dispatcher, drains it and returns the
// number of faults its sinks received.
func runScenario(ctx context.Context, sc scenario, cfg task.Config, slowDelay time.Duration, l *slog.Logger) (result, error) {
	log := l.With("scenario", sc.name)

	recorder := sink.NewRecorder(0)
	emitter := events.NewFaultEmitter(log)
	emitter.Register("log", sink.NewLogSink(log))
	emitter.Register("recorder", recorder)

	d, err := task.New(cfg, emitter, log)
	if err != nil {
		return result{}, err
	}

	start := time.Now()
	runErr := sc.run(ctx, &env{dispatcher: d, logger: log, slowDelay: slowDelay})

	drainCtx, cancel := context.WithTimeout(ctx, slowDelay+10*time.Second)
	defer cancel()
	if err := d.Shutdown(drainCtx); err != nil && runErr == nil {
		runErr = err
	}

	return result{faults: recorder.Total(), elapsed: time.Since(start)}, runErr
}
