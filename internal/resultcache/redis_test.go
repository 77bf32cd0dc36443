package resultcache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/routee-compass/compass-core/internal/graph"
	"github.com/routee-compass/compass-core/internal/queryrecord"
	"github.com/routee-compass/compass-core/internal/resultcache"
)

func TestQueryKeyIsDeterministic(t *testing.T) {
	origin := graph.VertexID(1)
	dest := graph.VertexID(9)
	q := queryrecord.Query{
		OriginVertex:      &origin,
		DestinationVertex: &dest,
		ModelName:         "bev-default",
		Weights:           map[string]float64{"trip_time": 1, "trip_energy_electric": 2},
	}

	a := resultcache.QueryKey(q)
	b := resultcache.QueryKey(q)
	assert.Equal(t, a, b)
}

func TestQueryKeyIgnoresMapOrdering(t *testing.T) {
	origin := graph.VertexID(1)
	dest := graph.VertexID(9)
	base := queryrecord.Query{OriginVertex: &origin, DestinationVertex: &dest, ModelName: "bev-default"}

	a := base
	a.Weights = map[string]float64{"trip_time": 1, "trip_distance": 2}
	b := base
	b.Weights = map[string]float64{"trip_distance": 2, "trip_time": 1}

	assert.Equal(t, resultcache.QueryKey(a), resultcache.QueryKey(b))
}

func TestQueryKeyDistinguishesDestination(t *testing.T) {
	origin := graph.VertexID(1)
	d1 := graph.VertexID(2)
	d2 := graph.VertexID(3)

	a := queryrecord.Query{OriginVertex: &origin, DestinationVertex: &d1, ModelName: "bev-default"}
	b := queryrecord.Query{OriginVertex: &origin, DestinationVertex: &d2, ModelName: "bev-default"}

	assert.NotEqual(t, resultcache.QueryKey(a), resultcache.QueryKey(b))
}

func TestQueryKeyIgnoresPassThrough(t *testing.T) {
	origin := graph.VertexID(1)
	dest := graph.VertexID(2)
	a := queryrecord.Query{OriginVertex: &origin, DestinationVertex: &dest}
	b := queryrecord.Query{OriginVertex: &origin, DestinationVertex: &dest, PassThrough: map[string]any{"request_id": "abc"}}

	assert.Equal(t, resultcache.QueryKey(a), resultcache.QueryKey(b))
}

func TestLockKeyWrapsQueryKey(t *testing.T) {
	assert.Equal(t, "lock:result:abc", resultcache.LockKey("result:abc"))
}
