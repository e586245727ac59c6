package config

import (
	"time"

	"github.com/phrazzld/forget/internal/task"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Dispatcher DispatcherConfig `mapstructure:"dispatcher" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DispatcherConfig contains the task dispatcher settings.
type DispatcherConfig struct {
	Workers         int           `mapstructure:"workers" validate:"gte=1,lte=1024"`
	QueueSize       int           `mapstructure:"queue_size" validate:"gte=1"`
	SerializeFaults bool          `mapstructure:"serialize_faults"`
	FaultBuffer     int           `mapstructure:"fault_buffer" validate:"gte=1"`
	SinkTimeout     time.Duration `mapstructure:"sink_timeout" validate:"gte=0"`
	DrainTimeout    time.Duration `mapstructure:"drain_timeout" validate:"gt=0"`
}

// DatabaseConfig contains the optional fault database settings.
// Faults are only persisted when RecordFaults is set, which requires URL.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required_if=RecordFaults true,omitempty,url"`
	RecordFaults bool   `mapstructure:"record_faults"`
}

// TaskConfig converts the dispatcher section into a task.Config.
func (c DispatcherConfig) TaskConfig() task.Config {
	return task.Config{
		Workers:         c.Workers,
		QueueSize:       c.QueueSize,
		SerializeFaults: c.SerializeFaults,
		FaultBuffer:     c.FaultBuffer,
		SinkTimeout:     c.SinkTimeout,
	}
}
