package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/forget/internal/task"
)

// env is what a scenario gets to work with.
type env struct {
	dispatcher *task.Dispatcher
	logger     *slog.Logger
	slowDelay  time.Duration
}

type scenario struct {
	name           string
	expectedFaults int
	run            func(ctx context.Context, e *env) error
}

var scenarios = []scenario{
	{name: "forget", expectedFaults: 2, run: runForget},
	{name: "fail", expectedFaults: 1, run: runFail},
	{name: "panic", expectedFaults: 1, run: runPanic},
	{name: "awaited", expectedFaults: 0, run: runAwaited},
	{name: "burst", expectedFaults: 10, run: runBurst},
	{name: "slow", expectedFaults: 1, run: runSlow},
}

func scenarioNames() string {
	names := make([]string, 0, len(scenarios))
	for _, sc := range scenarios {
		names = append(names, sc.name)
	}
	return strings.Join(names, ", ")
}

func selectScenarios(name string) ([]scenario, error) {
	if name == "all" {
		return scenarios, nil
	}
	for _, sc := range scenarios {
		if sc.name == name {
			return []scenario{sc}, nil
		}
	}
	return nil, fmt.Errorf("unknown scenario %q", name)
}

// fireAndForgetJob waits briefly and then fails.
func fireAndForgetJob(ctx context.Context) error {
	select {
	case <-time.After(10 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}
	return errors.New("fire and forget job failed")
}

// runForget starts the same job twice through awaitable handles that are
// immediately forgotten. Both failures reach the sink.
func runForget(_ context.Context, e *env) error {
	for i := 0; i < 2; i++ {
		h, err := e.dispatcher.SubmitAwaitable(fireAndForgetJob)
		if err != nil {
			return err
		}
		if err := e.dispatcher.Forget(h); err != nil {
			return err
		}
	}
	return nil
}

// runFail submits work that fails before doing anything else.
func runFail(_ context.Context, e *env) error {
	return e.dispatcher.Submit(task.ActionErr(func() error {
		return errors.New("failed before the first wait")
	}))
}

// runPanic submits work that panics.
func runPanic(_ context.Context, e *env) error {
	return e.dispatcher.Submit(task.Action(func() {
		var m map[string]int
		m["boom"]++
	}))
}

// runAwaited observes a failing job itself, so nothing reaches the sink.
func runAwaited(ctx context.Context, e *env) error {
	h, err := e.dispatcher.SubmitAwaitable(fireAndForgetJob)
	if err != nil {
		return err
	}
	workErr := h.Wait(ctx)
	if workErr == nil {
		return errors.New("awaited job unexpectedly succeeded")
	}
	e.logger.Info("awaited job failed as expected", "invocation_id", h.ID(), "error", workErr)
	return nil
}

// runBurst submits 100 items; every tenth one fails, giving "boom-0" to
// "boom-9".
func runBurst(_ context.Context, e *env) error {
	for i := 0; i < 100; i++ {
		i := i
		err := e.dispatcher.Submit(func(context.Context) error {
			if i%10 == 0 {
				return fmt.Errorf("boom-%d", i/10)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// runSlow submits work that sleeps and then fails. Submit itself must
// return immediately.
func runSlow(_ context.Context, e *env) error {
	delay := e.slowDelay
	start := time.Now()
	err := e.dispatcher.Submit(func(ctx context.Context) error {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		return errors.New("slow work failed")
	})
	e.logger.Info("slow work submitted", "submit_took", time.Since(start))
	return err
}
