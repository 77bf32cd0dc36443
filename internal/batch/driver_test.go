package batch_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routee-compass/compass-core/internal/batch"
	"github.com/routee-compass/compass-core/internal/queryrecord"
)

func TestDriverRunPreservesOrderAndCount(t *testing.T) {
	d := batch.Driver{
		Parallelism: 4,
		Query: func(ctx context.Context, q queryrecord.Query) queryrecord.Result {
			return queryrecord.Result{Request: q}
		},
	}

	queries := make([]queryrecord.Query, 10)
	for i := range queries {
		queries[i] = queryrecord.Query{ModelName: fmt.Sprintf("m%d", i)}
	}

	results, err := d.Run(context.Background(), queries)
	require.NoError(t, err)
	require.Len(t, results, 10)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("m%d", i), r.Request.ModelName)
	}
}

func TestDriverRunIsolatesPerQueryFailure(t *testing.T) {
	d := batch.Driver{
		Parallelism: 2,
		Query: func(ctx context.Context, q queryrecord.Query) queryrecord.Result {
			if q.ModelName == "bad" {
				return queryrecord.Result{Request: q, Error: "simulated failure"}
			}
			return queryrecord.Result{Request: q}
		},
	}

	queries := []queryrecord.Query{
		{ModelName: "good"},
		{ModelName: "bad"},
		{ModelName: "good"},
	}

	results, err := d.Run(context.Background(), queries)
	require.NoError(t, err, "one query's failure must not surface as Run's own error")
	require.Len(t, results, 3)
	assert.Empty(t, results[0].Error)
	assert.Equal(t, "simulated failure", results[1].Error)
	assert.Empty(t, results[2].Error)

	summary := batch.Summarize(results)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, summary.Successful)
}

func TestDriverRunRespectsParallelismCap(t *testing.T) {
	var inFlight, maxInFlight int32
	d := batch.Driver{
		Parallelism: 3,
		Query: func(ctx context.Context, q queryrecord.Query) queryrecord.Result {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				cur := atomic.LoadInt32(&maxInFlight)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInFlight, cur, n) {
					break
				}
			}
			atomic.AddInt32(&inFlight, -1)
			return queryrecord.Result{Request: q}
		},
	}

	queries := make([]queryrecord.Query, 20)
	_, err := d.Run(context.Background(), queries)
	require.NoError(t, err)
	assert.True(t, atomic.LoadInt32(&maxInFlight) <= 3)
}

func TestDriverRunEmptyBatch(t *testing.T) {
	d := batch.Driver{Query: func(ctx context.Context, q queryrecord.Query) queryrecord.Result { return queryrecord.Result{} }}
	results, err := d.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestDriverRunRejectsNilQueryFunc(t *testing.T) {
	d := batch.Driver{}
	_, err := d.Run(context.Background(), []queryrecord.Query{{}})
	assert.Error(t, err)
}
