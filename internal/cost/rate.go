package cost

import "sort"

// Rate converts a feature's state delta into a cost contribution. The
// three stock shapes (factor, piecewise-linear, lookup) are the ones
// spec.md §4.3 names for per-feature configuration.
type Rate interface {
	// Apply returns the cost contribution for a delta given in the
	// feature's configured unit.
	Apply(delta float64) float64

	// MinRatePerUnit returns the smallest conceivable cost-per-unit-delta
	// this rate can produce. CostEstimate uses this to stay admissible:
	// it is never allowed to price a remaining unit of distance above
	// the cheapest the Rate could ever actually charge.
	MinRatePerUnit() float64
}

// FactorRate scales linearly: cost = delta * Factor.
type FactorRate struct {
	Factor float64
}

func (r FactorRate) Apply(delta float64) float64 { return delta * r.Factor }
func (r FactorRate) MinRatePerUnit() float64      { return r.Factor }

// PiecewiseLinearPoint is one knot of a piecewise-linear rate curve:
// X is a feature delta and Y the cost per unit of delta at that delta.
type PiecewiseLinearPoint struct {
	X float64
	Y float64
}

// PiecewiseLinearRate interpolates cost-per-unit as a function of the
// feature delta itself, then scales the delta by the interpolated rate.
// Points must be supplied sorted by X; NewPiecewiseLinearRate sorts
// defensively.
type PiecewiseLinearRate struct {
	points []PiecewiseLinearPoint
}

// NewPiecewiseLinearRate builds a PiecewiseLinearRate from an unordered
// point set, sorting by X.
func NewPiecewiseLinearRate(points []PiecewiseLinearPoint) PiecewiseLinearRate {
	sorted := make([]PiecewiseLinearPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })
	return PiecewiseLinearRate{points: sorted}
}

// rateAt interpolates the cost-per-unit at independent variable x,
// clamping to the curve's endpoints outside its domain.
func (r PiecewiseLinearRate) rateAt(x float64) float64 {
	if len(r.points) == 0 {
		return 0
	}
	if x <= r.points[0].X {
		return r.points[0].Y
	}
	last := r.points[len(r.points)-1]
	if x >= last.X {
		return last.Y
	}
	for i := 1; i < len(r.points); i++ {
		if x <= r.points[i].X {
			lo, hi := r.points[i-1], r.points[i]
			if hi.X == lo.X {
				return lo.Y
			}
			t := (x - lo.X) / (hi.X - lo.X)
			return lo.Y + t*(hi.Y-lo.Y)
		}
	}
	return last.Y
}

// Apply treats delta as both the independent variable and the quantity
// to scale: cost = delta * rateAt(delta). This fits rates that are a
// function of the magnitude of change itself (e.g. per-meter cost that
// varies with distance travelled in this step).
func (r PiecewiseLinearRate) Apply(delta float64) float64 {
	return delta * r.rateAt(delta)
}

// MinRatePerUnit returns the smallest Y across all knots, the cheapest
// this curve can ever price a unit of delta.
func (r PiecewiseLinearRate) MinRatePerUnit() float64 {
	if len(r.points) == 0 {
		return 0
	}
	min := r.points[0].Y
	for _, p := range r.points[1:] {
		if p.Y < min {
			min = p.Y
		}
	}
	return min
}

// LookupRate scales delta by a rate selected from a discrete table keyed
// by an external classification (e.g. turn-delay seconds keyed by turn
// class). Unlike the other two shapes it does not derive its rate from
// delta itself; callers select the Key before calling Apply. It is the
// third of spec.md §4.3's three named rate shapes, kept here for
// completeness, but its Apply signature is structurally incompatible
// with the Rate interface (it needs an external key a plain state delta
// can't supply) so it can never be installed on a FeatureConfig — see
// that type's doc comment. turndelay.TurnDelayModel realizes the same
// "classify, then look up a delay" shape directly against its own
// map[TurnClass]float64 instead of through this type.
type LookupRate struct {
	Table map[string]float64
}

// Apply scales delta by the rate stored under key, or 0 if key is absent.
func (r LookupRate) Apply(key string, delta float64) float64 {
	return delta * r.Table[key]
}

// MinRatePerUnit returns the smallest rate across the whole table.
func (r LookupRate) MinRatePerUnit() float64 {
	first := true
	var min float64
	for _, v := range r.Table {
		if first || v < min {
			min = v
			first = false
		}
	}
	return min
}
