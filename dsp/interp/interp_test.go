package interp

import (
	"errors"
	"math"
	"testing"
)

func TestLerp(t *testing.T) {
	if got := Lerp(2, 4, 0.25); got != 2.5 {
		t.Fatalf("got %v want 2.5", got)
	}
}

func TestAkimaPassesThroughKnots(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}
	y := []float64{0, 1, 0.5, 2, -1, 0.25}

	a, err := NewAkima(x, y)
	if err != nil {
		t.Fatalf("NewAkima() error = %v", err)
	}

	for i := range x {
		if got := a.At(x[i]); math.Abs(got-y[i]) > 1e-12 {
			t.Fatalf("knot %d: got %v want %v", i, got, y[i])
		}
	}
}

func TestAkimaReproducesLinearRamp(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{1, 3, 5, 7, 9}

	a, err := NewAkima(x, y)
	if err != nil {
		t.Fatalf("NewAkima() error = %v", err)
	}

	for q := 0.0; q <= 4.0; q += 0.125 {
		want := 1 + 2*q
		if got := a.At(q); math.Abs(got-want) > 1e-12 {
			t.Fatalf("q=%v: got %v want %v", q, got, want)
		}
	}
}

func TestAkimaConstantStaysConstant(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{4.2, 4.2, 4.2, 4.2}

	a, err := NewAkima(x, y)
	if err != nil {
		t.Fatalf("NewAkima() error = %v", err)
	}

	for q := 0.0; q <= 3.0; q += 0.2 {
		if got := a.At(q); math.Abs(got-4.2) > 1e-12 {
			t.Fatalf("q=%v: got %v want 4.2", q, got)
		}
	}
}

func TestAkimaRejectsBadGrids(t *testing.T) {
	if _, err := NewAkima([]float64{1}, []float64{1}); !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("short grid error = %v, want ErrTooFewPoints", err)
	}

	if _, err := NewAkima([]float64{0, 0, 1}, []float64{1, 2, 3}); !errors.Is(err, ErrNotIncreasing) {
		t.Fatalf("flat grid error = %v, want ErrNotIncreasing", err)
	}
}

func TestResampleAkimaEndpoints(t *testing.T) {
	y := []float64{2, 5, 3, 8, 1}

	out, err := ResampleAkima(y, 11)
	if err != nil {
		t.Fatalf("ResampleAkima() error = %v", err)
	}

	if len(out) != 11 {
		t.Fatalf("len = %d, want 11", len(out))
	}

	if math.Abs(out[0]-2) > 1e-12 || math.Abs(out[10]-1) > 1e-12 {
		t.Fatalf("endpoints = %v, %v, want 2, 1", out[0], out[10])
	}
}

func TestResampleLinearComplex(t *testing.T) {
	x := []complex128{complex(0, 0), complex(1, -1), complex(2, -2), complex(3, -3)}

	out := ResampleLinearComplex(x, 7)
	if len(out) != 7 {
		t.Fatalf("len = %d, want 7", len(out))
	}

	// Midpoint between index 0 and 1 lands on the linear segment.
	want := complex(0.5, -0.5)
	if d := out[1] - want; math.Abs(real(d)) > 1e-12 || math.Abs(imag(d)) > 1e-12 {
		t.Fatalf("out[1] = %v, want %v", out[1], want)
	}

	if out[0] != x[0] || out[6] != x[3] {
		t.Fatalf("endpoints = %v, %v, want %v, %v", out[0], out[6], x[0], x[3])
	}
}
