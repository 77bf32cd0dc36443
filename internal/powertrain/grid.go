package powertrain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// EvalFunc is the offline tree-ensemble model, reduced at grid-build
// time to a pure function from (speed, grade) to an energy rate per
// unit distance in the vehicle's native energy unit. spec.md §4.9 calls
// the underlying model an opaque blob "the core treats... as a function
// from (float feature vector) to float energy rate" — EvalFunc is that
// function, already extracted from whatever format loaded it.
type EvalFunc func(speed, grade float64) float64

// Grid is a dense speed x grade lookup table built once at service-build
// time and queried with O(1) multilinear interpolation thereafter — no
// runtime inference, per spec.md §4.9.
type Grid struct {
	speedAxis           Axis
	gradeAxis           Axis
	values              *mat.Dense
	realWorldAdjustment float64
	idealRate           float64
}

// NewGrid evaluates eval at every (speed, grade) node on the two axes
// and stores the result as a dense matrix. realWorldAdjustment scales
// every interpolated lookup (spec.md §4.9's "real-world adjustment
// factor").
func NewGrid(speedAxis, gradeAxis Axis, eval EvalFunc, realWorldAdjustment float64) (*Grid, error) {
	if err := speedAxis.validate(); err != nil {
		return nil, err
	}
	if err := gradeAxis.validate(); err != nil {
		return nil, err
	}

	values := mat.NewDense(speedAxis.NumBins, gradeAxis.NumBins, nil)
	for i := 0; i < speedAxis.NumBins; i++ {
		speed := speedAxis.nodeValue(i)
		for j := 0; j < gradeAxis.NumBins; j++ {
			grade := gradeAxis.nodeValue(j)
			rate := eval(speed, grade)
			if math.IsNaN(rate) || math.IsInf(rate, 0) {
				return nil, fmt.Errorf("%w: non-finite rate at speed=%f grade=%f", ErrInvalidModel, speed, grade)
			}
			values.Set(i, j, rate)
		}
	}

	flat := make([]float64, 0, speedAxis.NumBins*gradeAxis.NumBins)
	for i := 0; i < speedAxis.NumBins; i++ {
		flat = append(flat, mat.Row(nil, i, values)...)
	}
	idealRate := floats.Min(flat) * realWorldAdjustment

	return &Grid{
		speedAxis:           speedAxis,
		gradeAxis:           gradeAxis,
		values:              values,
		realWorldAdjustment: realWorldAdjustment,
		idealRate:           idealRate,
	}, nil
}

// EnergyRate clamps (speed, grade) to the grid's domain and returns the
// multilinear-interpolated, real-world-adjusted rate per unit distance.
func (g *Grid) EnergyRate(speed, grade float64) float64 {
	sLo, sHi, sFrac := g.speedAxis.locate(speed)
	gLo, gHi, gFrac := g.gradeAxis.locate(grade)

	v00 := g.values.At(sLo, gLo)
	v01 := g.values.At(sLo, gHi)
	v10 := g.values.At(sHi, gLo)
	v11 := g.values.At(sHi, gHi)

	top := v00 + (v01-v00)*gFrac
	bottom := v10 + (v11-v10)*gFrac
	interpolated := top + (bottom-top)*sFrac

	return interpolated * g.realWorldAdjustment
}

// EdgeEnergy returns the total energy to traverse distanceMeters at
// (speed, grade): the interpolated rate times edge distance.
func (g *Grid) EdgeEnergy(speed, grade, distanceMeters float64) float64 {
	return g.EnergyRate(speed, grade) * distanceMeters
}

// IdealEnergyRate is the cheapest rate anywhere on the grid, used by the
// CostModel's admissible heuristic (spec.md §4.9).
func (g *Grid) IdealEnergyRate() float64 {
	return g.idealRate
}
