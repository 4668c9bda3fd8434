package spectrum

import (
	"math"
	"testing"
)

func TestAmplitudeDBRoundTrip(t *testing.T) {
	for _, db := range []float64{-120, -30, 0, 6.0206, 40} {
		got := DBFromAmplitude(AmplitudeFromDB(db))
		if diff := got - db; diff < -1e-9 || diff > 1e-9 {
			t.Fatalf("round trip of %v dB = %v", db, got)
		}
	}

	if amp := AmplitudeFromDB(0); amp != 1 {
		t.Fatalf("0 dB amplitude = %v, want 1", amp)
	}

	if amp := AmplitudeFromDB(-20); math.Abs(amp-0.1) > 1e-12 {
		t.Fatalf("-20 dB amplitude = %v, want 0.1", amp)
	}
}

func TestToTransformOrderOdd(t *testing.T) {
	in := []float64{10, 11, 12, 13, 14}

	got := ToTransformOrder(in)
	want := []float64{12, 13, 14, 10, 11}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestCenteredOrderInvertsTransformOrder(t *testing.T) {
	for _, n := range []int{1, 3, 5, 7, 33} {
		in := make([]float64, n)
		for i := range in {
			in[i] = float64(i)
		}

		got := ToCenteredOrder(ToTransformOrder(in))
		for i := range in {
			if got[i] != in[i] {
				t.Fatalf("n=%d index %d: got %v want %v", n, i, got[i], in[i])
			}
		}
	}
}

func TestMagnitude(t *testing.T) {
	in := []complex128{complex(3, 4), complex(0, -2), complex(1, 0)}

	got := Magnitude(in)
	want := []float64{5, 2, 1}

	for i := range want {
		if diff := got[i] - want[i]; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("bin %d: got %v want %v", i, got[i], want[i])
		}
	}
}
