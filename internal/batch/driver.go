// Package batch runs many independent queries concurrently and collects
// one result per query, never letting one query's failure abort the
// rest (spec.md §5/§7: "Batch execution never aborts because of one
// query's failure; the batch driver gathers all results and reports
// per-query status"). Grounded on vanderheijden86-beadwork's
// AggregateLoader.LoadAll/loadReposParallel: same errgroup.WithContext
// fan-out, same index-preallocated results slice, same "individual
// errors are captured in results, not propagated" discipline — the
// errgroup's own error return is reserved for operator-requested
// cancellation, not per-query failures.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/routee-compass/compass-core/internal/queryrecord"
)

// QueryFunc executes a single query and returns its result. It must
// never panic on a bad query; failures belong in the returned Result's
// Error field so Driver.Run can report per-query status without
// aborting the batch.
type QueryFunc func(ctx context.Context, q queryrecord.Query) queryrecord.Result

// Driver runs a batch of queries with bounded concurrency.
type Driver struct {
	// Parallelism caps the number of concurrently in-flight queries
	// (spec.md §6's configuration surface: "parallelism: integer >= 1").
	// Zero or negative is treated as 1.
	Parallelism int

	Query QueryFunc
}

// Run executes every query in queries, each through Query, with at most
// Parallelism running concurrently. The returned slice has exactly
// len(queries) entries, one per input query, in input order, regardless
// of per-query success or failure. Run's own error return is reserved
// for operator-requested cancellation via ctx — a per-query failure
// never triggers it.
func (d Driver) Run(ctx context.Context, queries []queryrecord.Query) ([]queryrecord.Result, error) {
	if d.Query == nil {
		return nil, fmt.Errorf("batch: Driver.Query is nil")
	}
	if len(queries) == 0 {
		return nil, nil
	}

	limit := d.Parallelism
	if limit < 1 {
		limit = 1
	}

	results := make([]queryrecord.Result, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, q := range queries {
		i, q := i, q

		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = queryrecord.Result{Request: q, Error: gctx.Err().Error()}
				return nil
			default:
			}

			results[i] = d.Query(gctx, q)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch: fatal error during parallel execution: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("batch: cancelled: %w", err)
	}
	return results, nil
}

// Summary aggregates Run's results into counts, for a CLI wrapper's exit
// code decision (spec.md §6: exit 2 on "partial success (some queries
// failed)").
type Summary struct {
	Total      int
	Successful int
	Failed     int
}

// Summarize counts successes and failures in results.
func Summarize(results []queryrecord.Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Error != "" {
			s.Failed++
		} else {
			s.Successful++
		}
	}
	return s
}
