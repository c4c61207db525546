package jobs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/bilingo/internal/core"
)

type countingJob struct {
	runs  atomic.Int32
	block chan struct{}
	start sync.Once
	began chan struct{}
}

func (j *countingJob) Run(context.Context, *core.TranslationEvent) error {
	if j.began != nil {
		j.start.Do(func() { close(j.began) })
	}
	if j.block != nil {
		<-j.block
	}
	j.runs.Add(1)
	return nil
}

func TestDispatcher_RunsAllQueuedJobs(t *testing.T) {
	job := &countingJob{}
	d := NewDispatcher(context.Background(), job, 3, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for i := 1; i <= 10; i++ {
		require.NoError(t, d.Dispatch(context.Background(), &core.TranslationEvent{Kind: core.KindIssue, Number: i}))
	}
	d.Stop()

	assert.Equal(t, int32(10), job.runs.Load())
	assert.Error(t, d.Dispatch(context.Background(), &core.TranslationEvent{Kind: core.KindIssue, Number: 11}))

	// A second Stop is harmless.
	d.Stop()
}

func TestDispatcher_QueueFull(t *testing.T) {
	job := &countingJob{block: make(chan struct{}), began: make(chan struct{})}
	d := NewDispatcher(context.Background(), job, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, d.Dispatch(context.Background(), &core.TranslationEvent{Number: 1}))
	<-job.began

	for i := range queueSize {
		require.NoError(t, d.Dispatch(context.Background(), &core.TranslationEvent{Number: i + 2}))
	}
	assert.Error(t, d.Dispatch(context.Background(), &core.TranslationEvent{Number: 999}))

	close(job.block)
	d.Stop()
	assert.Equal(t, int32(queueSize+1), job.runs.Load())
}

func TestKeyedMutex(t *testing.T) {
	var k keyedMutex
	var active, maxActive atomic.Int32
	var wg sync.WaitGroup

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("acme/docs#1")
			defer unlock()
			n := active.Add(1)
			if n > maxActive.Load() {
				maxActive.Store(n)
			}
			active.Add(-1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxActive.Load())
	assert.Zero(t, k.size(), "released keys must not be retained")
}

func TestKeyedMutex_ReleasesEntries(t *testing.T) {
	var k keyedMutex
	for i := range 100 {
		unlock := k.Lock(fmt.Sprintf("acme/docs#%d", i))
		unlock()
	}
	assert.Zero(t, k.size())

	first := k.Lock("acme/docs#1")
	acquired := make(chan func())
	go func() { acquired <- k.Lock("acme/docs#1") }()

	first()
	second := <-acquired
	assert.Equal(t, 1, k.size(), "a waiter keeps the entry alive")
	second()
	second()
	assert.Zero(t, k.size())
}
