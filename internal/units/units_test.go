package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertDistance(t *testing.T) {
	out, err := Convert(1, Miles, Meters)
	require.NoError(t, err)
	assert.InDelta(t, 1609.344, out, 1e-6)
}

func TestConvertRoundTrip(t *testing.T) {
	out, err := Convert(100, Km, Miles)
	require.NoError(t, err)
	back, err := Convert(out, Miles, Km)
	require.NoError(t, err)
	assert.InDelta(t, 100, back, 1e-9)
}

func TestConvertSameUnit(t *testing.T) {
	out, err := Convert(42, Mph, Mph)
	require.NoError(t, err)
	assert.Equal(t, 42.0, out)
}

func TestConvertIncompatible(t *testing.T) {
	_, err := Convert(1, Minutes, Meters)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompatibleUnits)
}

func TestConvertGradePercent(t *testing.T) {
	out, err := Convert(10, Percent, Ratio)
	require.NoError(t, err)
	assert.InDelta(t, 0.10, out, 1e-9)
}

func TestConvertEnergyElectric(t *testing.T) {
	out, err := Convert(1500, WattHours, KilowattHours)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, out, 1e-9)
}
