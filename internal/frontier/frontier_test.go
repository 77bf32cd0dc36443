package frontier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/routee-compass/compass-core/internal/frontier"
	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/traversal"
)

func TestUnrestrictedAlwaysValid(t *testing.T) {
	f := frontier.Unrestricted{}
	assert.True(t, f.ValidFrontier(state.State{}, traversal.EdgeView{}, nil))
}

func TestMaxEdgeDistanceRejectsLongEdges(t *testing.T) {
	f := frontier.MaxEdgeDistance{Meters: 200}
	assert.True(t, f.ValidFrontier(state.State{}, traversal.EdgeView{Distance: 150}, nil))
	assert.False(t, f.ValidFrontier(state.State{}, traversal.EdgeView{Distance: 250}, nil))
}

func TestRoadClassFilterAllowAndDeny(t *testing.T) {
	f := frontier.RoadClassFilter{Allow: map[string]bool{"highway": true, "arterial": true}}
	assert.True(t, f.ValidFrontier(state.State{}, traversal.EdgeView{RoadClass: "highway"}, nil))
	assert.False(t, f.ValidFrontier(state.State{}, traversal.EdgeView{RoadClass: "local"}, nil))

	deny := frontier.RoadClassFilter{Deny: map[string]bool{"restricted": true}}
	assert.False(t, deny.ValidFrontier(state.State{}, traversal.EdgeView{RoadClass: "restricted"}, nil))
	assert.True(t, deny.ValidFrontier(state.State{}, traversal.EdgeView{RoadClass: "local"}, nil))
}

func TestAllRequiresEveryModel(t *testing.T) {
	combined := frontier.All{Models: []frontier.Model{
		frontier.MaxEdgeDistance{Meters: 200},
		frontier.RoadClassFilter{Deny: map[string]bool{"restricted": true}},
	}}
	assert.True(t, combined.ValidFrontier(state.State{}, traversal.EdgeView{Distance: 100, RoadClass: "local"}, nil))
	assert.False(t, combined.ValidFrontier(state.State{}, traversal.EdgeView{Distance: 300, RoadClass: "local"}, nil))
	assert.False(t, combined.ValidFrontier(state.State{}, traversal.EdgeView{Distance: 100, RoadClass: "restricted"}, nil))
}
