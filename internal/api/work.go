package api

import (
	"context"
	"errors"
	"time"

	"github.com/phrazzld/forget/internal/platform/logger"
	"github.com/phrazzld/forget/internal/task"
)

const defaultFailureMessage = "work failed"

// Work builds the task.Work described by req.
func (req WorkRequest) Work() task.Work {
	delay := time.Duration(req.DelayMs) * time.Millisecond
	message := req.Message
	if message == "" {
		message = defaultFailureMessage
	}

	return func(ctx context.Context) error {
		log := logger.FromContext(ctx)

		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		switch {
		case req.Panic:
			log.Debug("demo work panicking", "label", req.Label)
			panic(message)
		case req.Fail:
			log.Debug("demo work failing", "label", req.Label)
			return errors.New(message)
		}

		log.Debug("demo work done", "label", req.Label)
		return nil
	}
}
