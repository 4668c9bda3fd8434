package interp

import "fmt"

// ResampleAkima stretches y onto m uniformly spaced points spanning the same
// index range, using the modified Akima interpolant. Endpoints are preserved
// exactly.
func ResampleAkima(y []float64, m int) ([]float64, error) {
	if m <= 0 {
		return nil, fmt.Errorf("interp: resample target length must be > 0: %d", m)
	}

	n := len(y)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, n)
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}

	a, err := NewAkima(x, y)
	if err != nil {
		return nil, err
	}

	out := make([]float64, m)
	if m == 1 {
		out[0] = y[0]
		return out, nil
	}

	step := float64(n-1) / float64(m-1)
	for k := range out {
		out[k] = a.At(float64(k) * step)
	}

	return out, nil
}

// ResampleLinearComplex stretches x onto m uniformly spaced points spanning
// the same index range, interpolating real and imaginary parts independently
// through the linear kernel.
func ResampleLinearComplex(x []complex128, m int) []complex128 {
	n := len(x)
	if n == 0 || m <= 0 {
		return nil
	}

	out := make([]complex128, m)
	if n == 1 || m == 1 {
		for k := range out {
			out[k] = x[0]
		}

		return out
	}

	step := float64(n-1) / float64(m-1)
	for k := range out {
		pos := float64(k) * step

		i := int(pos)
		if i >= n-1 {
			out[k] = x[n-1]
			continue
		}

		frac := pos - float64(i)
		re := Lerp(real(x[i]), real(x[i+1]), frac)
		im := Lerp(imag(x[i]), imag(x[i+1]), frac)
		out[k] = complex(re, im)
	}

	return out
}
