package powertrain

import "fmt"

// Axis is one bounded, evenly-spaced input dimension of a powertrain
// grid (spec.md §4.9: "bounded grid over input features... with
// per-feature (lower_bound, upper_bound, num_bins)").
type Axis struct {
	Name       string
	LowerBound float64
	UpperBound float64
	NumBins    int
}

func (a Axis) validate() error {
	if a.NumBins < 2 {
		return fmt.Errorf("%w: axis %q needs at least 2 bins, got %d", ErrInvalidAxis, a.Name, a.NumBins)
	}
	if a.UpperBound <= a.LowerBound {
		return fmt.Errorf("%w: axis %q upper_bound must exceed lower_bound", ErrInvalidAxis, a.Name)
	}
	return nil
}

func (a Axis) step() float64 {
	return (a.UpperBound - a.LowerBound) / float64(a.NumBins-1)
}

func (a Axis) nodeValue(i int) float64 {
	return a.LowerBound + float64(i)*a.step()
}

// locate clamps value into [LowerBound, UpperBound] and returns the
// bracketing node indices and the interpolation fraction between them.
func (a Axis) locate(value float64) (lo, hi int, frac float64) {
	if value <= a.LowerBound {
		return 0, 0, 0
	}
	if value >= a.UpperBound {
		last := a.NumBins - 1
		return last, last, 0
	}
	step := a.step()
	pos := (value - a.LowerBound) / step
	lo = int(pos)
	if lo >= a.NumBins-1 {
		return a.NumBins - 1, a.NumBins - 1, 0
	}
	hi = lo + 1
	frac = pos - float64(lo)
	return lo, hi, frac
}
