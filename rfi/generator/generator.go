// Package generator orchestrates the two batch passes of an RFI scenario:
// frame synthesis into the spectrogram artifact, and the chunk-by-chunk
// conversion of that artifact into the complex time-signal artifact.
//
// The hand-off between the passes is the persisted spectrogram file, not an
// in-memory pipeline, so memory use stays bounded regardless of run length.
package generator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/rcandell/p3388-rfigen/rfi/config"
	"github.com/rcandell/p3388-rfigen/rfi/reactor"
	"github.com/rcandell/p3388-rfigen/rfi/spectrogram"
	"github.com/rcandell/p3388-rfigen/rfi/timesignal"
)

// Generator owns the reactors of one scenario and runs its passes. Reactors
// are constructed once and keep their burst state for the whole run.
type Generator struct {
	cfg      *config.Config
	reactors []*reactor.Reactor
	rng      *rand.Rand
	log      *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes every random draw of the run reproducible. Without a seed
// the run is seeded from the wall clock, matching the established generator
// behavior.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source directly.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithLogger sets the logger shared by all components of the run.
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// New validates cfg and constructs the scenario's reactors. All
// configuration errors surface here or from the pass constructors, never
// mid-frame.
func New(cfg *config.Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		log: slog.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	for i, spec := range cfg.Reactors {
		r, err := reactor.New(cfg.Spectrogram.NFreqBins, spec,
			reactor.WithRand(g.rng), reactor.WithLogger(g.log))
		if err != nil {
			return nil, fmt.Errorf("generator: reactor %d (%s): %w", i, spec.Name, err)
		}

		g.reactors = append(g.reactors, r)
	}

	return g, nil
}

// MakeSpectrogram runs the frame-synthesis pass. The spectrogram artifact is
// truncated at the start of the pass and grows by one row per window.
func (g *Generator) MakeSpectrogram() error {
	sg := g.cfg.Spectrogram

	synth, err := spectrogram.New(sg.NFreqBins, sg.NoiseFloorPower, sg.WindowSize, sg.Duration,
		g.reactors, spectrogram.WithLogger(g.log))
	if err != nil {
		return err
	}

	g.log.Info("spectrogram pass starting",
		"bins", sg.NFreqBins, "frames", synth.Frames(),
		"reactors", len(g.reactors), "path", sg.OutputPath)

	f, err := os.Create(sg.OutputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	var frame []float64
	for range synth.Frames() {
		frame = synth.Next(frame)
		if err := spectrogram.AppendRow(w, frame); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	g.log.Info("spectrogram written", "frames", synth.Produced(), "path", sg.OutputPath)

	return nil
}

// MakeTimeSignal runs the time-domain pass: it streams the spectrogram
// artifact row by row, in production order, and appends one chunk of sample
// rows per frame to the time-signal artifact.
func (g *Generator) MakeTimeSignal() error {
	chunker, err := timesignal.NewChunker(g.cfg,
		timesignal.WithRand(g.rng), timesignal.WithLogger(g.log))
	if err != nil {
		return err
	}

	in, err := os.Open(g.cfg.Spectrogram.OutputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(g.cfg.IFFT.OutputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	g.log.Info("time-signal pass starting",
		"source", g.cfg.Spectrogram.OutputPath, "path", g.cfg.IFFT.OutputPath,
		"chunk_samples", chunker.ChunkSamples())

	w := bufio.NewWriter(out)
	rows := spectrogram.NewRowReader(in, g.cfg.Spectrogram.NFreqBins)

	var (
		frame   []float64
		chunks  int
		samples int
	)

	for {
		frame, err = rows.Next(frame)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return err
		}

		chunk, err := chunker.Transform(frame)
		if err != nil {
			return err
		}

		if err := timesignal.AppendSamples(w, chunk); err != nil {
			return err
		}

		chunks++
		samples += len(chunk)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	g.log.Info("time signal written",
		"chunks", chunks, "samples", samples, "path", g.cfg.IFFT.OutputPath)

	return nil
}

// Run executes both passes in order.
func (g *Generator) Run() error {
	if err := g.MakeSpectrogram(); err != nil {
		return err
	}

	return g.MakeTimeSignal()
}
