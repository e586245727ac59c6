package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/forget/internal/task"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStats task.Stats

func (f fixedStats) Stats() task.Stats { return task.Stats(f) }

func TestDispatcherCollector(t *testing.T) {
	source := fixedStats{
		Workers:         4,
		Queued:          2,
		Running:         1,
		Submitted:       110,
		Completed:       100,
		Faulted:         10,
		Rejected:        3,
		FaultsDelivered: 9,
		SinkFailures:    1,
	}
	c := NewDispatcherCollector(source)

	assert.Equal(t, 9, testutil.CollectAndCount(c))

	expected := `
# HELP forget_dispatcher_faulted_total Work items that returned an error or panicked
# TYPE forget_dispatcher_faulted_total counter
forget_dispatcher_faulted_total 10
# HELP forget_dispatcher_sink_failures_total Fault sink calls that failed or panicked
# TYPE forget_dispatcher_sink_failures_total counter
forget_dispatcher_sink_failures_total 1
# HELP forget_dispatcher_workers Number of worker goroutines
# TYPE forget_dispatcher_workers gauge
forget_dispatcher_workers 4
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"forget_dispatcher_faulted_total",
		"forget_dispatcher_sink_failures_total",
		"forget_dispatcher_workers")
	assert.NoError(t, err)
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := NewMetrics(nil)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/faults/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/faults/abc", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/faults/{id}", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestsTotal))
}

func TestHandlerExposesDispatcherMetrics(t *testing.T) {
	m := NewMetrics(fixedStats{Workers: 2, Submitted: 5})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "forget_dispatcher_workers 2")
	assert.Contains(t, body, "forget_dispatcher_submitted_total 5")
}
