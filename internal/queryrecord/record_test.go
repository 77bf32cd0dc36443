package queryrecord_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routee-compass/compass-core/internal/graph"
	"github.com/routee-compass/compass-core/internal/queryrecord"
)

func TestQueryMarshalFlattensPassThrough(t *testing.T) {
	origin := graph.VertexID(1)
	dest := graph.VertexID(2)
	q := queryrecord.Query{
		OriginVertex:      &origin,
		DestinationVertex: &dest,
		ModelName:         "bev-default",
		PassThrough:       map[string]any{"request_id": "abc-123"},
	}

	data, err := json.Marshal(q)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "abc-123", raw["request_id"])
	assert.Equal(t, "bev-default", raw["model_name"])
	assert.Equal(t, float64(1), raw["origin_vertex"])
}

func TestQueryUnmarshalRoundTrip(t *testing.T) {
	input := `{"origin_x":1.5,"origin_y":2.5,"destination_x":3.5,"destination_y":4.5,"model_name":"ice-default","weights":{"trip_time":1},"road_classes":["motorway"],"caller_tag":"batch-7"}`

	var q queryrecord.Query
	require.NoError(t, json.Unmarshal([]byte(input), &q))

	require.NotNil(t, q.OriginX)
	assert.InDelta(t, 1.5, *q.OriginX, 1e-9)
	assert.Equal(t, "ice-default", q.ModelName)
	assert.Equal(t, []string{"motorway"}, q.RoadClasses)
	assert.Equal(t, "batch-7", q.PassThrough["caller_tag"])

	out, err := json.Marshal(q)
	require.NoError(t, err)
	var roundTripped map[string]any
	require.NoError(t, json.Unmarshal(out, &roundTripped))
	assert.Equal(t, "batch-7", roundTripped["caller_tag"])
}

func TestResultMarshalsRoute(t *testing.T) {
	r := queryrecord.Result{
		Request: queryrecord.Query{ModelName: "bev-default"},
		Route:   []graph.EdgeID{0, 1, 2},
		State:   map[string]float64{"trip_distance": 1200},
		Cost: queryrecord.Cost{
			TotalCost:  42,
			PerFeature: map[string]float64{"trip_distance": 42},
		},
		SearchRuntimeMs: 3.2,
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded queryrecord.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r.Route, decoded.Route)
	assert.Equal(t, r.Cost.TotalCost, decoded.Cost.TotalCost)
}
