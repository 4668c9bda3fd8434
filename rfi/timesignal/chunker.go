// Package timesignal converts persisted dB magnitude frames into a complex
// time-domain waveform, one chunk per frame.
//
// Each frame is inverse-transformed with randomized phase, expanded to fill
// its time window under a configurable policy, and upsampled by polyphase
// interpolation. Chunks are emitted strictly in frame order.
package timesignal

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/cmplx"
	"math/rand"
	"strings"
	"time"

	"github.com/mjibson/go-dsp/fft"

	"github.com/rcandell/p3388-rfigen/dsp/interp"
	"github.com/rcandell/p3388-rfigen/dsp/resample"
	"github.com/rcandell/p3388-rfigen/dsp/spectrum"
	"github.com/rcandell/p3388-rfigen/rfi/config"
)

// ExpansionMethod selects how one transform-length chunk is stretched to the
// chunk duration.
type ExpansionMethod string

const (
	// ExpandRepeat tiles the chunk and appends a fractional remainder.
	ExpandRepeat ExpansionMethod = "repeat"
	// ExpandInterpolation linearly resamples the chunk onto a denser grid.
	ExpandInterpolation ExpansionMethod = "interpolation"
	// ExpandUpsample densifies the magnitude frame before the transform and
	// applies a zero-frequency-centering shift afterwards.
	ExpandUpsample ExpansionMethod = "upsample"
)

var (
	// ErrUnknownExpansionMethod indicates an unsupported ExpansionMethod value.
	ErrUnknownExpansionMethod = errors.New("timesignal: unsupported expansion method")
	// ErrRepetitionTooShort indicates a repetition factor below 1 under the
	// repeat policy.
	ErrRepetitionTooShort = errors.New("timesignal: repetition factor must be at least 1")
	// ErrOddTransformSize indicates an even transform size; the two-sided
	// spectrum needs a center bin.
	ErrOddTransformSize = errors.New("timesignal: transform size must be odd")
)

// Chunker converts dB magnitude frames into complex time-domain chunks. One
// Chunker serves a whole pass; per-frame randomness comes from its random
// source.
type Chunker struct {
	tau    float64 // chunk duration, seconds
	n      int     // transform size, equals the frame bin count
	fs     float64 // starting sample rate, Hz
	dF     float64 // frequency resolution, Hz
	dT     float64 // time resolution, seconds
	m      float64 // repetition factor tau/dT
	method ExpansionMethod
	phase  config.PhaseConfig
	up     *resample.Upsampler
	rng    *rand.Rand
	log    *slog.Logger
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithRand sets the random source used for phase draws. The default source
// is seeded from the wall clock.
func WithRand(rng *rand.Rand) Option {
	return func(c *Chunker) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithLogger sets the logger receiving configuration diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Chunker) {
		if log != nil {
			c.log = log
		}
	}
}

// NewChunker derives the per-run transform parameters from cfg. A negative
// DurationPerChunk_s falls back to the spectrogram window size; a zero
// StartingSampleRate_Hz derives as transform size over chunk duration.
// Configuration problems fail here, before any chunk is produced.
func NewChunker(cfg *config.Config, opts ...Option) (*Chunker, error) {
	sg := cfg.Spectrogram
	ifft := cfg.IFFT

	n := sg.NFreqBins
	if n <= 0 || n%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrOddTransformSize, n)
	}

	tau := ifft.DurationPerChunk
	if tau < 0 {
		tau = sg.WindowSize
	}

	if tau <= 0 {
		return nil, fmt.Errorf("timesignal: chunk duration must be > 0: %g", tau)
	}

	fs := ifft.StartingSampleRate
	if fs == 0 {
		fs = float64(n) / tau
	}

	if fs <= 0 {
		return nil, fmt.Errorf("timesignal: sample rate must be > 0: %g", fs)
	}

	dF := fs / float64(n)
	dT := 1 / dF

	c := &Chunker{
		tau:    tau,
		n:      n,
		fs:     fs,
		dF:     dF,
		dT:     dT,
		m:      tau / dT,
		method: ExpansionMethod(strings.ToLower(ifft.Expansion.Method)),
		phase:  ifft.Phase,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    slog.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	switch c.method {
	case ExpandRepeat:
		if math.Floor(c.m) < 1 {
			return nil, fmt.Errorf("%w: got %.4g", ErrRepetitionTooShort, c.m)
		}
	case ExpandInterpolation:
	case ExpandUpsample:
		if ifft.Expansion.InterpolationMethod != "makima" {
			c.log.Warn("only the modified akima interpolation is supported, switching to makima",
				"requested", ifft.Expansion.InterpolationMethod)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExpansionMethod, ifft.Expansion.Method)
	}

	up, err := resample.NewUpsampler(ifft.UpsampleRate)
	if err != nil {
		return nil, fmt.Errorf("timesignal: UpsampleRate %d: %w", ifft.UpsampleRate, err)
	}

	c.up = up

	c.log.Debug("chunker created",
		"chunk_s", c.tau, "transform_size", c.n, "sample_rate_hz", c.fs,
		"freq_resolution_hz", c.dF, "time_resolution_s", c.dT,
		"repetition", c.m, "upsample", up.Factor(), "method", string(c.method))

	return c, nil
}

// Tau returns the chunk duration in seconds.
func (c *Chunker) Tau() float64 { return c.tau }

// SampleRate returns the pre-upsampling sample rate in Hz.
func (c *Chunker) SampleRate() float64 { return c.fs }

// RepetitionFactor returns the ratio of chunk duration to time resolution.
func (c *Chunker) RepetitionFactor() float64 { return c.m }

// TransformSize returns the inverse-transform length.
func (c *Chunker) TransformSize() int { return c.n }

// UpsampleFactor returns the final polyphase upsampling factor.
func (c *Chunker) UpsampleFactor() int { return c.up.Factor() }

// ChunkSamples returns the output sample count produced per frame.
func (c *Chunker) ChunkSamples() int {
	switch c.method {
	case ExpandRepeat:
		m := int(math.Floor(c.m))
		tail := int(math.Round((c.m - float64(m)) * float64(c.n)))

		return c.up.Factor() * (m*c.n + tail)
	default:
		return c.up.Factor() * int(math.Round(c.m*float64(c.n)))
	}
}

// Transform converts one dB frame into the complex chunk for its time
// window: inverse transform with randomized phase, duration expansion, then
// polyphase upsampling.
func (c *Chunker) Transform(frameDB []float64) ([]complex128, error) {
	x, err := c.invert(frameDB)
	if err != nil {
		return nil, err
	}

	x, err = c.expand(x)
	if err != nil {
		return nil, err
	}

	return c.up.ProcessComplex(x), nil
}

// invert converts the dB frame to a complex time chunk of transform length
// (or the densified length under the upsample policy).
func (c *Chunker) invert(frameDB []float64) ([]complex128, error) {
	if len(frameDB) != c.n {
		return nil, fmt.Errorf("timesignal: frame has %d bins, want %d", len(frameDB), c.n)
	}

	mag := spectrum.AmplitudesFromDB(frameDB)

	if c.method == ExpandUpsample {
		target := int(math.Round(c.m * float64(c.n)))

		dense, err := interp.ResampleAkima(mag, target)
		if err != nil {
			return nil, fmt.Errorf("timesignal: densifying frame: %w", err)
		}

		mag = dense
	}

	ordered := spectrum.ToTransformOrder(mag)

	bins := make([]complex128, len(ordered))

	if c.phase.Enabled {
		poff := 0.0
		if c.phase.ApplyRandomPhaseOffset {
			poff = math.Pi * c.rng.Float64()
		}

		for i, v := range ordered {
			theta := c.phase.PhaseNoise*c.rng.Float64() + poff - math.Pi/2
			bins[i] = complex(v, 0) * cmplx.Exp(complex(0, theta))
		}
	} else {
		for i, v := range ordered {
			bins[i] = complex(v, 0)
		}
	}

	return fft.IFFT(bins), nil
}

// expand stretches the chunk to the chunk duration under the configured
// policy.
func (c *Chunker) expand(x []complex128) ([]complex128, error) {
	switch c.method {
	case ExpandRepeat:
		m := int(math.Floor(c.m))
		if m < 1 {
			return nil, fmt.Errorf("%w: got %.4g", ErrRepetitionTooShort, c.m)
		}

		tail := int(math.Round((c.m - float64(m)) * float64(len(x))))

		out := make([]complex128, 0, m*len(x)+tail)
		for range m {
			out = append(out, x...)
		}

		out = append(out, x[:tail]...)

		return out, nil

	case ExpandInterpolation:
		return interp.ResampleLinearComplex(x, int(math.Round(c.m*float64(len(x))))), nil

	case ExpandUpsample:
		// Expansion already happened before the transform.
		return spectrum.ToCenteredOrder(x), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownExpansionMethod, c.method)
}
