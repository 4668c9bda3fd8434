package resample

import (
	"errors"
	"math"
	"testing"
)

func TestNewUpsamplerRejectsBadFactor(t *testing.T) {
	for _, factor := range []int{0, -1} {
		if _, err := NewUpsampler(factor); !errors.Is(err, ErrInvalidFactor) {
			t.Fatalf("factor %d: error = %v, want ErrInvalidFactor", factor, err)
		}
	}
}

func TestFactorOnePassthrough(t *testing.T) {
	u, err := NewUpsampler(1)
	if err != nil {
		t.Fatalf("NewUpsampler() error = %v", err)
	}

	in := []complex128{complex(1, 2), complex(-3, 0.5), complex(0, 0)}

	out := u.ProcessComplex(in)
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}

	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("index %d: got %v want %v", i, out[i], in[i])
		}
	}
}

func TestUpsampleLength(t *testing.T) {
	for _, factor := range []int{2, 3, 5} {
		u, err := NewUpsampler(factor)
		if err != nil {
			t.Fatalf("NewUpsampler(%d) error = %v", factor, err)
		}

		in := make([]float64, 40)
		for i := range in {
			in[i] = math.Sin(float64(i) / 5)
		}

		out := u.Process(in)
		if len(out) != factor*len(in) {
			t.Fatalf("factor %d: len = %d, want %d", factor, len(out), factor*len(in))
		}
	}
}

func TestUpsampleDCInterior(t *testing.T) {
	u, err := NewUpsampler(4)
	if err != nil {
		t.Fatalf("NewUpsampler() error = %v", err)
	}

	in := make([]complex128, 128)
	for i := range in {
		in[i] = complex(1, 0.5)
	}

	out := u.ProcessComplex(in)

	// Skip the filter transient at both edges and check the steady state.
	for n := len(out) / 3; n < 2*len(out)/3; n++ {
		if math.Abs(real(out[n])-1) > 0.01 || math.Abs(imag(out[n])-0.5) > 0.01 {
			t.Fatalf("sample %d = %v, want about (1+0.5i)", n, out[n])
		}
	}
}

func TestPrototypeIsLinearPhase(t *testing.T) {
	cfg := defaultConfig()

	taps, err := designPrototype(3, cfg)
	if err != nil {
		t.Fatalf("designPrototype() error = %v", err)
	}

	for i := range len(taps) / 2 {
		if d := taps[i] - taps[len(taps)-1-i]; math.Abs(d) > 1e-12 {
			t.Fatalf("tap %d asymmetric by %v", i, d)
		}
	}
}
