package interp

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrTooFewPoints indicates fewer than two interpolation nodes.
	ErrTooFewPoints = errors.New("interp: at least 2 points required")
	// ErrNotIncreasing indicates a non-monotonic node grid.
	ErrNotIncreasing = errors.New("interp: x must be strictly increasing")
)

// Akima is a shape-preserving piecewise cubic using the modified Akima
// (makima) slope weights. Compared to the classic Akima rule the modified
// weights avoid overshoot near flat regions, which keeps interpolated
// magnitude spectra non-oscillatory.
type Akima struct {
	x, y  []float64
	slope []float64
}

// NewAkima builds an interpolant through (x[i], y[i]). x must be strictly
// increasing and both slices must have equal length >= 2.
func NewAkima(x, y []float64) (*Akima, error) {
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(x))
	}

	if len(x) != len(y) {
		return nil, fmt.Errorf("interp: x/y length mismatch: %d != %d", len(x), len(y))
	}

	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("%w: at index %d", ErrNotIncreasing, i)
		}
	}

	a := &Akima{
		x: append([]float64(nil), x...),
		y: append([]float64(nil), y...),
	}
	a.slope = nodeSlopes(a.x, a.y)

	return a, nil
}

// At evaluates the interpolant at q. Queries outside the node range clamp to
// the boundary values.
func (a *Akima) At(q float64) float64 {
	n := len(a.x)

	if q <= a.x[0] {
		return a.y[0]
	}

	if q >= a.x[n-1] {
		return a.y[n-1]
	}

	j := sort.SearchFloat64s(a.x, q)
	if a.x[j] == q {
		return a.y[j]
	}

	i := j - 1
	h := a.x[i+1] - a.x[i]
	t := (q - a.x[i]) / h

	t2 := t * t
	t3 := t2 * t

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*a.y[i] + h10*h*a.slope[i] + h01*a.y[i+1] + h11*h*a.slope[i+1]
}

// nodeSlopes computes per-node derivatives with the makima weighting. Segment
// slopes are extended by two virtual slopes on each side so every node sees
// four neighbors.
func nodeSlopes(x, y []float64) []float64 {
	n := len(x)

	if n == 2 {
		d := (y[1] - y[0]) / (x[1] - x[0])
		return []float64{d, d}
	}

	// ext[k] holds segment slope d[k-2]; indices -2..n run 0..n+2.
	ext := make([]float64, n+3)
	for i := 0; i < n-1; i++ {
		ext[i+2] = (y[i+1] - y[i]) / (x[i+1] - x[i])
	}

	ext[1] = 2*ext[2] - ext[3]
	ext[0] = 2*ext[1] - ext[2]
	ext[n+1] = 2*ext[n] - ext[n-1]
	ext[n+2] = 2*ext[n+1] - ext[n]

	slope := make([]float64, n)
	for i := range slope {
		dm2 := ext[i]
		dm1 := ext[i+1]
		d0 := ext[i+2]
		d1 := ext[i+3]

		w1 := math.Abs(d1-d0) + math.Abs(d1+d0)/2
		w2 := math.Abs(dm1-dm2) + math.Abs(dm1+dm2)/2

		if w1+w2 == 0 {
			slope[i] = 0
			continue
		}

		slope[i] = (w1*dm1 + w2*d0) / (w1 + w2)
	}

	return slope
}
