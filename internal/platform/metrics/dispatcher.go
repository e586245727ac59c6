package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DispatcherCollector turns one Stats snapshot per scrape into metrics.
type DispatcherCollector struct {
	source StatsSource

	workers         *prometheus.Desc
	queued          *prometheus.Desc
	running         *prometheus.Desc
	submitted       *prometheus.Desc
	completed       *prometheus.Desc
	faulted         *prometheus.Desc
	rejected        *prometheus.Desc
	faultsDelivered *prometheus.Desc
	sinkFailures    *prometheus.Desc
}

var _ prometheus.Collector = (*DispatcherCollector)(nil)

// NewDispatcherCollector creates a collector reading from source.
func NewDispatcherCollector(source StatsSource) *DispatcherCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "dispatcher", name), help, nil, nil)
	}
	return &DispatcherCollector{
		source:          source,
		workers:         desc("workers", "Number of worker goroutines"),
		queued:          desc("queued_work", "Work items waiting for a worker"),
		running:         desc("running_work", "Work items currently running"),
		submitted:       desc("submitted_total", "Work items accepted"),
		completed:       desc("completed_total", "Work items that completed successfully"),
		faulted:         desc("faulted_total", "Work items that returned an error or panicked"),
		rejected:        desc("rejected_total", "Submissions rejected because the queue was full"),
		faultsDelivered: desc("faults_delivered_total", "Fault records accepted by the fault sink"),
		sinkFailures:    desc("sink_failures_total", "Fault sink calls that failed or panicked"),
	}
}

// Describe implements prometheus.Collector.
func (c *DispatcherCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.workers
	ch <- c.queued
	ch <- c.running
	ch <- c.submitted
	ch <- c.completed
	ch <- c.faulted
	ch <- c.rejected
	ch <- c.faultsDelivered
	ch <- c.sinkFailures
}

// Collect implements prometheus.Collector.
func (c *DispatcherCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.workers, prometheus.GaugeValue, float64(s.Workers))
	ch <- prometheus.MustNewConstMetric(c.queued, prometheus.GaugeValue, float64(s.Queued))
	ch <- prometheus.MustNewConstMetric(c.running, prometheus.GaugeValue, float64(s.Running))
	ch <- prometheus.MustNewConstMetric(c.submitted, prometheus.CounterValue, float64(s.Submitted))
	ch <- prometheus.MustNewConstMetric(c.completed, prometheus.CounterValue, float64(s.Completed))
	ch <- prometheus.MustNewConstMetric(c.faulted, prometheus.CounterValue, float64(s.Faulted))
	ch <- prometheus.MustNewConstMetric(c.rejected, prometheus.CounterValue, float64(s.Rejected))
	ch <- prometheus.MustNewConstMetric(c.faultsDelivered, prometheus.CounterValue, float64(s.FaultsDelivered))
	ch <- prometheus.MustNewConstMetric(c.sinkFailures, prometheus.CounterValue, float64(s.SinkFailures))
}
