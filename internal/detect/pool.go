// Package detect runs the three pattern detectors — cycles, smurfing, and
// layered shells — over a transaction graph and produces the raw ring
// candidates each one finds.
package detect

import (
	"context"
	"errors"
	"sync"

	"github.com/vanshika/muletrace/internal/domain"
)

// taskError accumulates every detector failure. Adapted from the teacher's
// bulk-ingestion worker pool: errors are gathered after all workers finish,
// and a canceled context discards every result instead.
type taskError struct {
	Errors []error
}

func (e *taskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple detector errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *taskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *taskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Job is one named detector run. Unlike the teacher's homogeneous
// index-indirected worker pool, each job here is its own closure — there
// are exactly three of them (cycle, smurfing, shell) and they do
// unrelated work, so there's nothing to index into.
type Job struct {
	Name string
	Run  func(ctx context.Context) ([]domain.RawRing, error)
}

// RunAll executes every job concurrently, one goroutine per job, waits for
// all of them, and collects all rings found. If ctx is canceled, or a job
// returns a context error, every job's rings are discarded and the context
// error is returned; any other error is collected and returned alongside
// whatever rings the other jobs managed to find.
func RunAll(ctx context.Context, jobs []Job) ([]domain.RawRing, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	type outcome struct {
		rings []domain.RawRing
		err   error
	}

	results := make([]outcome, len(jobs))
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			rings, err := job.Run(ctx)
			results[i] = outcome{rings: rings, err: err}
		}(i, job)
	}
	wg.Wait()

	// Detectors stop early on cancellation and return what they had; those
	// partial findings must not reach scoring.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		all  []domain.RawRing
		tErr taskError
	)
	for _, res := range results {
		if res.err != nil {
			if errors.Is(res.err, context.Canceled) || errors.Is(res.err, context.DeadlineExceeded) {
				return nil, res.err
			}
			tErr.append(res.err)
			continue
		}
		all = append(all, res.rings...)
	}
	return all, tErr.asError()
}
