package vehicle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/routee-compass/compass-core/internal/vehicle"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := vehicle.NewRegistry()
	r.Register(vehicle.NewICE("ice_default", nil))
	r.Register(vehicle.NewBEV("bev_default", nil))
	r.Register(vehicle.NewPHEV("phev_default", nil, nil, 12.0))

	a, ok := r.Get("phev_default")
	assert.True(t, ok)
	assert.Equal(t, vehicle.KindPHEV, a.Kind)
	assert.Equal(t, 12.0, a.BatteryCapacityKWh)

	_, ok = r.Get("nonexistent")
	assert.False(t, ok)

	assert.ElementsMatch(t, []string{"ice_default", "bev_default", "phev_default"}, r.Names())
}
