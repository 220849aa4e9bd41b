package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/oshokin/spotisaver/internal/logger"
)

// ProgressFunc receives the completed count after every job, out of the run total.
type ProgressFunc func(completed, total int)

// LogFunc receives one human-readable line per notable event.
type LogFunc func(message string)

// RunRequest describes one orchestrator run.
type RunRequest struct {
	Jobs      []*TrackJob
	Workers   int
	OutputDir string
	// OnProgress and OnLog are optional. They are called from a single goroutine.
	OnProgress ProgressFunc
	OnLog      LogFunc
}

// Orchestrator runs jobs on a bounded worker pool. One instance runs one run at a time.
type Orchestrator struct {
	processor TrackProcessor
	running   atomic.Bool
}

// NewOrchestrator creates an orchestrator that processes jobs with processor.
func NewOrchestrator(processor TrackProcessor) *Orchestrator {
	return &Orchestrator{processor: processor}
}

// Run processes req.Jobs with at most req.Workers jobs in flight.
//
// Cancelling ctx stops dispatching: jobs that have not started never start, jobs that
// are running finish on a context that ignores the cancellation. Job failures are
// reported through OnLog and the summary; Run itself only fails on invalid requests
// or when another run is active.
func (o *Orchestrator) Run(ctx context.Context, req *RunRequest) (*RunSummary, error) {
	if req.Workers < MinWorkers || req.Workers > MaxWorkers {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkerCount, req.Workers)
	}

	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	defer o.running.Store(false)

	summary := &RunSummary{
		Total:     len(req.Jobs),
		StartTime: time.Now(),
	}

	if summary.Total == 0 {
		summary.Status = RunEmpty
		summary.EndTime = time.Now()

		return summary, nil
	}

	var (
		slots      = semaphore.NewWeighted(int64(req.Workers))
		results    = make(chan *JobResult, req.Workers)
		aggregated = make(chan struct{})
		workers    sync.WaitGroup
		jobCtx     = context.WithoutCancel(ctx)
		dispatched int
	)

	// Single consumer of results: the only writer of summary counters. A slot is
	// released only after its result is recorded, so a cancellation issued from
	// OnProgress is observed before the next job can be dispatched.
	go func() {
		defer close(aggregated)

		for result := range results {
			o.record(summary, result, req)
			slots.Release(1)
		}
	}()

	for _, job := range req.Jobs {
		if ctx.Err() != nil {
			break
		}

		if err := slots.Acquire(ctx, 1); err != nil {
			break
		}

		if ctx.Err() != nil {
			slots.Release(1)

			break
		}

		dispatched++

		workers.Add(1)

		go func() {
			defer workers.Done()

			results <- o.runJob(jobCtx, job, req.OutputDir)
		}()
	}

	workers.Wait()
	close(results)
	<-aggregated

	summary.EndTime = time.Now()

	if dispatched < summary.Total {
		summary.Status = RunCancelled

		logger.Warnf(ctx, "Download cancelled: %d of %d jobs were not started", summary.NotStarted(), summary.Total)
		emitLog(req.OnLog, fmt.Sprintf("Cancelled: %d job(s) not started", summary.NotStarted()))
	} else {
		summary.Status = RunCompleted
	}

	return summary, nil
}

// runJob processes one job and converts panics into failures.
func (o *Orchestrator) runJob(ctx context.Context, job *TrackJob, outputDir string) (result *JobResult) {
	started := time.Now()
	result = &JobResult{Job: job}

	defer func() {
		if recovered := recover(); recovered != nil {
			result.Outcome = OutcomeFailed
			result.Err = fmt.Errorf("%w: %v", ErrPanic, recovered)
		}

		result.Duration = time.Since(started)
	}()

	processed, err := o.processor.Process(ctx, job, outputDir)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err

		return result
	}

	result.Outcome = processed.Outcome
	result.OutputPath = processed.OutputPath
	result.Size = processed.Size

	return result
}

func (o *Orchestrator) record(summary *RunSummary, result *JobResult, req *RunRequest) {
	summary.Processed++
	summary.Results = append(summary.Results, result)

	name := result.Job.DisplayName()

	switch result.Outcome {
	case OutcomeSucceeded:
		summary.Succeeded++
		summary.Bytes += result.Size

		emitLog(req.OnLog, "Finished: "+name)
	case OutcomeSkipped:
		summary.Skipped++

		emitLog(req.OnLog, "Skipped (exists): "+filepath.Base(result.OutputPath))
	case OutcomeFailed:
		summary.Failed++

		emitLog(req.OnLog, fmt.Sprintf("ERROR: %s: %v", name, result.Err))
	}

	if req.OnProgress != nil {
		req.OnProgress(summary.Processed, summary.Total)
	}
}

func emitLog(onLog LogFunc, message string) {
	if onLog != nil {
		onLog(message)
	}
}
