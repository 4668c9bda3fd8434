package reactor

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/rcandell/p3388-rfigen/rfi/config"
)

// alwaysOn transitions to On at the first step and never leaves.
var alwaysOn = []float64{0, 1, 1, 1}

func testSpec() config.ReactorSpec {
	return config.ReactorSpec{
		Name:      "test",
		Type:      "rfi",
		CenterBin: 12,
		GEProbs:   alwaysOn,
		Bandwidth: config.Distribution{Kind: "normal", Mean: 1, Std: 0},
		Power:     config.Distribution{Kind: "normal", Mean: 0, Std: 0},
	}
}

func newTestReactor(t *testing.T, nbins int, spec config.ReactorSpec) *Reactor {
	t.Helper()

	r, err := New(nbins, spec, WithRand(rand.New(rand.NewSource(3))))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return r
}

func TestUnknownKindsRejected(t *testing.T) {
	spec := testSpec()
	spec.Bandwidth.Kind = "cauchy"

	if _, err := New(25, spec); !errors.Is(err, ErrUnknownBandwidthKind) {
		t.Fatalf("bandwidth error = %v, want ErrUnknownBandwidthKind", err)
	}

	spec = testSpec()
	spec.Power.Kind = "uniform"

	if _, err := New(25, spec); !errors.Is(err, ErrUnknownPowerKind) {
		t.Fatalf("power error = %v, want ErrUnknownPowerKind", err)
	}
}

func TestCenterBinUnitAmplitude(t *testing.T) {
	// mean 1, std 0 bandwidth with mean 0, std 0 power occupies exactly the
	// center bin at amplitude 1 (0 dB).
	r := newTestReactor(t, 25, testSpec())

	dst := r.Add(make([]float64, 25))
	for i, v := range dst {
		switch {
		case i == 12 && math.Abs(v-1) > 1e-12:
			t.Fatalf("center bin = %v, want 1", v)
		case i != 12 && v != 0:
			t.Fatalf("bin %d = %v, want 0", i, v)
		}
	}
}

func TestFlatUnshapedFillsAllBinsEqually(t *testing.T) {
	spec := testSpec()
	spec.Bandwidth = config.Distribution{Kind: "flat"}
	spec.Power = config.Distribution{Kind: "normal", Mean: -6, Std: 0}

	r := newTestReactor(t, 25, spec)

	dst := r.Add(make([]float64, 25))

	want := math.Sqrt(math.Pow(10, -0.6))
	for i, v := range dst {
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("bin %d = %v, want %v", i, v, want)
		}
	}
}

func TestShapedEnvelopeUnitPeakAndMonotone(t *testing.T) {
	spec := testSpec()
	spec.Bandwidth = config.Distribution{Kind: "normal", Mean: 8, Std: 0}
	spec.Shaping = config.Shaping{Enabled: true, Std: 2}

	r := newTestReactor(t, 25, spec)

	dst := r.Add(make([]float64, 25))

	// Width 2*ceil(8/2)+1 = 9 around bin 12.
	lo, hi := 8, 16

	if math.Abs(dst[12]-1) > 1e-12 {
		t.Fatalf("peak = %v, want the unshaped amplitude 1", dst[12])
	}

	for i := 12; i < hi; i++ {
		if dst[i+1] >= dst[i] {
			t.Fatalf("bins %d..%d not decreasing: %v >= %v", i, i+1, dst[i+1], dst[i])
		}
	}

	for i := 12; i > lo; i-- {
		if dst[i-1] >= dst[i] {
			t.Fatalf("bins %d..%d not decreasing: %v >= %v", i, i-1, dst[i-1], dst[i])
		}
	}

	for i, v := range dst {
		if (i < lo || i > hi) && v != 0 {
			t.Fatalf("bin %d = %v outside the occupied span", i, v)
		}
	}
}

func TestSpanClipsToBinRange(t *testing.T) {
	spec := testSpec()
	spec.CenterBin = 1
	spec.Bandwidth = config.Distribution{Kind: "normal", Mean: 10, Std: 0}

	r := newTestReactor(t, 25, spec)

	dst := r.Add(make([]float64, 25))

	// Width 11, half 5: span clips at bin 0 and runs to bin 6.
	for i, v := range dst {
		if i <= 6 && v == 0 {
			t.Fatalf("bin %d empty, expected occupied", i)
		}

		if i > 6 && v != 0 {
			t.Fatalf("bin %d = %v, expected empty", i, v)
		}
	}
}

func TestAddWhileOffContributesNothing(t *testing.T) {
	spec := testSpec()
	spec.GEProbs = []float64{1, 0, 0, 1} // never leaves Off

	r := newTestReactor(t, 25, spec)

	dst := make([]float64, 25)
	for i := range dst {
		dst[i] = 0.5
	}

	r.Add(dst)
	for i, v := range dst {
		if v != 0.5 {
			t.Fatalf("bin %d = %v, want 0.5", i, v)
		}
	}
}

func TestEnvelopeClearedAfterAdd(t *testing.T) {
	r := newTestReactor(t, 25, testSpec())
	r.Add(make([]float64, 25))

	for i, v := range r.envelope {
		if v != 0 {
			t.Fatalf("envelope bin %d = %v after Add, want 0", i, v)
		}
	}
}
