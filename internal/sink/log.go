package sink

import (
	"context"
	"log/slog"

	"github.com/phrazzld/forget/internal/redact"
	"github.com/phrazzld/forget/internal/task"
)

// LogSink writes each fault as one structured error entry. Messages and
// stacks are redacted before they are logged.
type LogSink struct {
	logger *slog.Logger
}

var _ task.FaultSink = (*LogSink)(nil)

// NewLogSink creates a LogSink writing to logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "fault_log")}
}

// OnFault logs rec. It never fails.
func (s *LogSink) OnFault(ctx context.Context, rec task.FaultRecord) error {
	s.logger.ErrorContext(ctx, "fire-and-forget work faulted",
		slog.String("invocation_id", rec.InvocationID.String()),
		slog.String("kind", string(rec.Kind)),
		slog.String("error_type", rec.ErrorType),
		slog.String("error", redact.String(rec.Message)),
		slog.Time("occurred_at", rec.OccurredAt),
		slog.String("stack", redact.Stack(rec.Stack)),
	)
	return nil
}
