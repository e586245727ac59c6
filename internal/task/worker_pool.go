package task

import (
	"log/slog"
	"sync"
)

// workerPool manages the goroutines that take items off the work queue.
// Workers exit once the queue is closed and drained.
type workerPool struct {
	// queue provides the items to be processed
	queue <-chan *workItem

	// workerCount is the number of concurrent workers to start
	workerCount int

	// run executes a single item on the calling worker
	run func(workerID int, item *workItem)

	// wg tracks active worker goroutines for clean shutdown
	wg sync.WaitGroup

	logger *slog.Logger
}

func newWorkerPool(queue <-chan *workItem, workerCount int, run func(int, *workItem), logger *slog.Logger) *workerPool {
	if workerCount <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", workerCount,
			"default_count", 1)
		workerCount = 1
	}

	return &workerPool{
		queue:       queue,
		workerCount: workerCount,
		run:         run,
		logger:      logger,
	}
}

// start launches the worker goroutines
func (p *workerPool) start() {
	p.logger.Debug("starting worker pool", "worker_count", p.workerCount)
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// wait blocks until every worker has exited
func (p *workerPool) wait() {
	p.wg.Wait()
}

func (p *workerPool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debug("starting worker", "worker_id", id)
	for item := range p.queue {
		p.run(id, item)
	}
	p.logger.Debug("work queue drained, stopping worker", "worker_id", id)
}
