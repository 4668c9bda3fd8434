// Package spectrogram synthesizes time-ordered dB magnitude frames from a
// noise floor and a set of reactors, and encodes them as the flat
// row-oriented artifact consumed by the time-domain stage.
package spectrogram

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/rcandell/p3388-rfigen/dsp/spectrum"
	"github.com/rcandell/p3388-rfigen/rfi/reactor"
)

// ErrEvenBinCount indicates an even (or non-positive) frequency bin count.
// The spectrum is two-sided and symmetric around a center bin, which needs an
// odd length.
var ErrEvenBinCount = errors.New("spectrogram: number of frequency bins must be odd")

// Synthesizer produces one dB frame per time window. Reactor contributions
// sum onto the noise floor in linear amplitude, in fixed list order, before
// the frame converts to dB. The linear-amplitude sum matches the established
// generator arithmetic and is kept for compatibility.
type Synthesizer struct {
	nbins    int
	floorAmp float64
	window   float64
	duration float64
	reactors []*reactor.Reactor
	log      *slog.Logger
	produced int
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger sets the logger receiving per-run diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *Synthesizer) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a synthesizer. nbins must be odd and positive; windowSize and
// duration must be positive seconds. noiseFloorDB is the per-bin floor power
// in dB.
func New(nbins int, noiseFloorDB, windowSize, duration float64, reactors []*reactor.Reactor, opts ...Option) (*Synthesizer, error) {
	if nbins <= 0 || nbins%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrEvenBinCount, nbins)
	}

	if windowSize <= 0 {
		return nil, fmt.Errorf("spectrogram: window size must be > 0: %g", windowSize)
	}

	if duration <= 0 {
		return nil, fmt.Errorf("spectrogram: duration must be > 0: %g", duration)
	}

	s := &Synthesizer{
		nbins:    nbins,
		floorAmp: spectrum.AmplitudeFromDB(noiseFloorDB),
		window:   windowSize,
		duration: duration,
		reactors: reactors,
		log:      slog.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.log.Debug("spectrogram synthesizer created",
		"bins", nbins, "frames", s.Frames(), "reactors", len(reactors),
		"noise_floor_db", noiseFloorDB)

	return s, nil
}

// Bins returns the frame length.
func (s *Synthesizer) Bins() int {
	return s.nbins
}

// Frames returns the number of windows covering the configured duration.
func (s *Synthesizer) Frames() int {
	return int(math.Ceil(s.duration / s.window))
}

// Produced returns how many frames have been generated so far.
func (s *Synthesizer) Produced() int {
	return s.produced
}

// Next generates the next frame in time order into dst and returns it in dB.
// dst is reallocated when its capacity is short of the bin count.
func (s *Synthesizer) Next(dst []float64) []float64 {
	if cap(dst) < s.nbins {
		dst = make([]float64, s.nbins)
	}

	dst = dst[:s.nbins]
	for i := range dst {
		dst[i] = s.floorAmp
	}

	for _, r := range s.reactors {
		r.Add(dst)
	}

	spectrum.DBFromAmplitudesInPlace(dst)
	s.produced++

	return dst
}
