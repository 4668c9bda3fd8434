// Package reactor models intermittent interferers as Gilbert-Elliott burst
// sources with randomized spectral occupancy and power.
package reactor

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/rcandell/p3388-rfigen/rfi/config"
)

var (
	// ErrUnknownBandwidthKind indicates an unsupported bw_distr type.
	ErrUnknownBandwidthKind = errors.New("reactor: unknown bandwidth distribution type")
	// ErrUnknownPowerKind indicates an unsupported pwr_distr type.
	ErrUnknownPowerKind = errors.New("reactor: unknown power distribution type")
)

// Reactor is one interferer. When its chain is On it occupies a span of
// frequency bins around its center bin with a sampled amplitude, optionally
// tapered by a Gaussian envelope. The per-bin contribution lives only for the
// duration of one Add call.
type Reactor struct {
	name      string
	centerBin int
	bandwidth config.Distribution
	power     config.Distribution
	shaping   config.Shaping
	nbins     int

	envelope []float64
	chain    *Chain
	rng      *rand.Rand
	log      *slog.Logger
}

// Option configures a Reactor.
type Option func(*Reactor)

// WithRand sets the random source used for state stepping and envelope
// sampling. The default source is seeded from the wall clock.
func WithRand(rng *rand.Rand) Option {
	return func(r *Reactor) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithLogger sets the logger receiving construction diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(r *Reactor) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a reactor for a spectrum of nbins bins. Unknown bandwidth or
// power distribution kinds fail here, before any frame is produced.
func New(nbins int, spec config.ReactorSpec, opts ...Option) (*Reactor, error) {
	if nbins <= 0 {
		return nil, fmt.Errorf("reactor: bin count must be > 0: %d", nbins)
	}

	probs, err := NewTransitionMatrix(spec.GEProbs)
	if err != nil {
		return nil, err
	}

	switch spec.Bandwidth.Kind {
	case "normal", "flat":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBandwidthKind, spec.Bandwidth.Kind)
	}

	if spec.Power.Kind != "normal" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPowerKind, spec.Power.Kind)
	}

	r := &Reactor{
		name:      spec.Name,
		centerBin: spec.CenterBin,
		bandwidth: spec.Bandwidth,
		power:     spec.Power,
		shaping:   spec.Shaping,
		nbins:     nbins,
		envelope:  make([]float64, nbins),
		chain:     NewChain(probs),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		log:       slog.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	r.log.Debug("reactor created",
		"name", r.name, "centerbin", r.centerBin, "bins", nbins,
		"bw", r.bandwidth.Kind, "shaped", r.shaping.Enabled)

	return r, nil
}

// Name returns the (not necessarily unique) reactor name.
func (r *Reactor) Name() string {
	return r.name
}

// State returns the current burst state.
func (r *Reactor) State() State {
	return r.chain.State()
}

// Add advances the chain one tick, folds this reactor's contribution into
// dst when the chain lands On, clears the contribution, and returns dst.
// dst length must equal the bin count passed at construction.
func (r *Reactor) Add(dst []float64) []float64 {
	if r.chain.Step(r.rng) == StateOn {
		r.fill()
	}

	vecmath.AddBlockInPlace(dst, r.envelope)
	r.clear()

	return dst
}

// fill computes the per-bin contribution for one On tick.
func (r *Reactor) fill() {
	lo, hi := r.span()
	if lo > hi {
		return
	}

	amp := r.amplitude()
	for i := lo; i <= hi; i++ {
		r.envelope[i] = amp
	}

	if r.shaping.Enabled {
		r.shape(lo, hi)
	}
}

// span samples the occupied bin range, inclusive on both ends.
func (r *Reactor) span() (lo, hi int) {
	if r.bandwidth.Kind == "flat" {
		return 0, r.nbins - 1
	}

	u := r.bandwidth.Mean
	s := r.bandwidth.Std

	width := 1
	if u > 1 || s != 0 {
		// 2*ceil(x/2)+1 keeps the occupied width odd around the center bin.
		width = 2*int(math.Ceil((u+s*math.Abs(r.rng.NormFloat64()))/2)) + 1
	}

	half := (width - 1) / 2

	lo = r.centerBin - half
	if lo < 0 {
		lo = 0
	}

	hi = r.centerBin + half
	if hi > r.nbins-1 {
		hi = r.nbins - 1
	}

	return lo, hi
}

// amplitude draws the power in dB and converts it to linear amplitude.
func (r *Reactor) amplitude() float64 {
	p := r.power.Mean + r.power.Std*r.rng.NormFloat64()

	return math.Sqrt(math.Pow(10, p/10))
}

// shape tapers the occupied span with a Gaussian centered at the center bin,
// normalized so its peak over the span equals 1.
func (r *Reactor) shape(lo, hi int) {
	env := make([]float64, hi-lo+1)
	for i := range env {
		d := float64(lo+i-r.centerBin) / r.shaping.Std
		env[i] = math.Exp(-0.5 * d * d)
	}

	peak := vecmath.MaxAbs(env)
	if peak > 0 {
		vecmath.ScaleBlockInPlace(env, 1/peak)
	}

	vecmath.MulBlockInPlace(r.envelope[lo:hi+1], env)
}

func (r *Reactor) clear() {
	for i := range r.envelope {
		r.envelope[i] = 0
	}
}
