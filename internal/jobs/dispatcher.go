// Package jobs runs translation passes for webhook events in the background.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sevigo/bilingo/internal/core"
)

// queueSize bounds the number of events waiting for a worker.
const queueSize = 100

// dispatcher implements core.JobDispatcher and manages a pool of worker
// goroutines that run translation jobs.
type dispatcher struct {
	ctx        context.Context
	job        core.Job
	jobQueue   chan *core.TranslationEvent
	maxWorkers int
	wg         sync.WaitGroup
	mu         sync.RWMutex
	stopped    bool
	logger     *slog.Logger
}

// NewDispatcher initializes a dispatcher with a worker pool. Jobs run with
// ctx, so cancelling it aborts in-flight oracle calls. If maxWorkers is 0 or
// negative, it defaults to 1.
func NewDispatcher(ctx context.Context, job core.Job, maxWorkers int, logger *slog.Logger) core.JobDispatcher {
	if job == nil {
		panic("job cannot be nil")
	}
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	d := &dispatcher{
		ctx:        ctx,
		job:        job,
		maxWorkers: maxWorkers,
		jobQueue:   make(chan *core.TranslationEvent, queueSize),
		logger:     logger,
	}
	d.startWorkers()
	return d
}

func (d *dispatcher) startWorkers() {
	for i := range d.maxWorkers {
		d.wg.Add(1)
		go d.startWorker(i)
	}
}

// startWorker processes events from the queue until it's closed.
func (d *dispatcher) startWorker(workerID int) {
	defer d.wg.Done()
	d.logger.Info("starting translation worker", "id", workerID)

	for event := range d.jobQueue {
		d.processEvent(workerID, event)
	}

	d.logger.Info("shutting down translation worker", "id", workerID)
}

func (d *dispatcher) processEvent(workerID int, event *core.TranslationEvent) {
	d.logger.Info("worker processing job",
		"worker_id", workerID,
		"repo", event.RepoFullName,
		"entity", event.Key(),
		"action", event.Action,
	)

	if err := d.job.Run(d.ctx, event); err != nil {
		d.logger.Error("translation job failed",
			"repo", event.RepoFullName,
			"entity", event.Key(),
			"error", err,
		)
	}
}

// Dispatch queues an event for processing by a worker.
func (d *dispatcher) Dispatch(_ context.Context, event *core.TranslationEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return fmt.Errorf("dispatcher is stopped, cannot accept new translation job")
	}

	d.logger.Info("queuing translation job", "repo", event.RepoFullName, "entity", event.Key())
	select {
	case d.jobQueue <- event:
		return nil
	default:
		return fmt.Errorf("job queue is full, cannot accept new translation job")
	}
}

// Stop gracefully shuts down the dispatcher, waiting for all workers to finish.
func (d *dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.jobQueue)
	d.mu.Unlock()

	d.logger.Info("stopping dispatcher and waiting for jobs to finish")
	d.wg.Wait()
	d.logger.Info("all translation jobs have finished")
}
