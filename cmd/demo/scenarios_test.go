package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/forget/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))

	for _, sc := range scenarios {
		for _, serialize := range []bool{false, true} {
			sc, serialize := sc, serialize
			name := sc.name
			if serialize {
				name += "/serialized"
			}
			t.Run(name, func(t *testing.T) {
				cfg := task.DefaultConfig()
				cfg.SerializeFaults = serialize

				res, err := runScenario(context.Background(), sc, cfg, 50*time.Millisecond, log)
				require.NoError(t, err)
				assert.Equal(t, int64(sc.expectedFaults), res.faults)
			})
		}
	}
}

func TestSelectScenarios(t *testing.T) {
	all, err := selectScenarios("all")
	require.NoError(t, err)
	assert.Len(t, all, len(scenarios))

	one, err := selectScenarios("burst")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "burst", one[0].name)

	_, err = selectScenarios("nope")
	assert.Error(t, err)

	assert.Contains(t, scenarioNames(), "slow")
}
