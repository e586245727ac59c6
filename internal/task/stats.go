package task

// Stats is a point-in-time view of dispatcher activity.
type Stats struct {
	Workers         int   `json:"workers"`
	Queued          int   `json:"queued"`
	Running         int64 `json:"running"`
	Submitted       int64 `json:"submitted"`
	Completed       int64 `json:"completed"`
	Faulted         int64 `json:"faulted"`
	Rejected        int64 `json:"rejected"`
	FaultsDelivered int64 `json:"faults_delivered"`
	SinkFailures    int64 `json:"sink_failures"`
	Closed          bool  `json:"closed"`
}

// Stats returns current counters. Values are read independently and may be
// mutually inconsistent while work is in flight.
func (d *Dispatcher) Stats() Stats {
	d.mu.RLock()
	closed := d.closed
	d.mu.RUnlock()

	return Stats{
		Workers:         d.pool.workerCount,
		Queued:          d.queue.len(),
		Running:         d.running.Load(),
		Submitted:       d.submitted.Load(),
		Completed:       d.completed.Load(),
		Faulted:         d.faulted.Load(),
		Rejected:        d.rejected.Load(),
		FaultsDelivered: d.faults.delivered.Load(),
		SinkFailures:    d.faults.sinkFailures.Load(),
		Closed:          closed,
	}
}
