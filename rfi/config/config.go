// Package config loads and validates jspec configuration files describing an
// RFI generation scenario.
//
// The on-disk format is the JSON layout produced by the jspec tooling; YAML
// files with snake_case keys are accepted as well. Field names mirror the
// jspec schema, units included (seconds, Hz, dB).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrEvenBinCount indicates an even (or non-positive) frequency bin count.
	ErrEvenBinCount = errors.New("config: NFreqBins must be a positive odd number")
	// ErrProbabilityRange indicates a transition probability outside [0,1].
	ErrProbabilityRange = errors.New("config: transition probabilities must lie in [0,1]")
	// ErrMissingOutputPath indicates an empty artifact path.
	ErrMissingOutputPath = errors.New("config: output path must not be empty")
)

// Config is the root jspec document.
type Config struct {
	Spectrogram SpectrogramConfig `json:"spectrogram" yaml:"spectrogram"`
	IFFT        IFFTConfig        `json:"ifft" yaml:"ifft"`
	Reactors    ReactorList       `json:"Reactors" yaml:"reactors"`
}

// SpectrogramConfig parameterizes the frame-synthesis pass.
type SpectrogramConfig struct {
	NFreqBins       int     `json:"NFreqBins" yaml:"n_freq_bins"`
	WindowSize      float64 `json:"WindowSize_s" yaml:"window_size_s"`
	Duration        float64 `json:"Duration_s" yaml:"duration_s"`
	NoiseFloorPower float64 `json:"NoiseFloorPower_dB" yaml:"noise_floor_power_db"`
	OutputPath      string  `json:"PathToOutputSpectrogram" yaml:"path_to_output_spectrogram"`
}

// IFFTConfig parameterizes the time-domain pass.
type IFFTConfig struct {
	// DurationPerChunk is the chunk duration in seconds. Negative means
	// "use the spectrogram window size".
	DurationPerChunk   float64         `json:"DurationPerChunk_s" yaml:"duration_per_chunk_s"`
	StartingSampleRate float64         `json:"StartingSampleRate_Hz" yaml:"starting_sample_rate_hz"`
	UpsampleRate       int             `json:"UpsampleRate" yaml:"upsample_rate"`
	Phase              PhaseConfig     `json:"Phase" yaml:"phase"`
	Expansion          ExpansionConfig `json:"Expansion" yaml:"expansion"`
	OutputPath         string          `json:"PathToOutputTimeSignal" yaml:"path_to_output_time_signal"`
}

// PhaseConfig controls per-bin phase randomization before the inverse
// transform.
type PhaseConfig struct {
	Enabled                bool    `json:"Enabled" yaml:"enabled"`
	ApplyRandomPhaseOffset bool    `json:"ApplyRandomPhaseOffset" yaml:"apply_random_phase_offset"`
	PhaseNoise             float64 `json:"PhaseNoise_rads" yaml:"phase_noise_rads"`
}

// ExpansionConfig selects how a transform-length chunk is stretched to its
// time window.
type ExpansionConfig struct {
	Method              string `json:"ExpansionMethod" yaml:"expansion_method"`
	InterpolationMethod string `json:"UpsampleInterpolationMethod" yaml:"upsample_interpolation_method"`
}

// Distribution describes a sampled quantity by kind, mean and standard
// deviation.
type Distribution struct {
	Kind string  `json:"type" yaml:"type"`
	Mean float64 `json:"mean" yaml:"mean"`
	Std  float64 `json:"std" yaml:"std"`
}

// Shaping describes the optional Gaussian power taper of a reactor.
type Shaping struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	Std     float64 `json:"std" yaml:"std"`
}

// ReactorSpec describes one interferer.
type ReactorSpec struct {
	Name      string       `json:"Name" yaml:"name"`
	Type      string       `json:"type" yaml:"type"`
	CenterBin int          `json:"centerbin" yaml:"centerbin"`
	GEProbs   []float64    `json:"ge_probs" yaml:"ge_probs"`
	Bandwidth Distribution `json:"bw_distr" yaml:"bw_distr"`
	Power     Distribution `json:"pwr_distr" yaml:"pwr_distr"`
	Shaping   Shaping      `json:"pwr_shaping" yaml:"pwr_shaping"`
}

// ReactorList accepts either a single reactor object or an array of them,
// matching the jspec files in circulation.
type ReactorList []ReactorSpec

// UnmarshalJSON decodes an array or a single object into the list.
func (l *ReactorList) UnmarshalJSON(data []byte) error {
	var many []ReactorSpec
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}

	var one ReactorSpec
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("config: Reactors must be an object or an array: %w", err)
	}

	*l = ReactorList{one}

	return nil
}

// UnmarshalYAML decodes a sequence or a single mapping into the list.
func (l *ReactorList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var many []ReactorSpec
		if err := value.Decode(&many); err != nil {
			return err
		}

		*l = many

		return nil
	}

	var one ReactorSpec
	if err := value.Decode(&one); err != nil {
		return fmt.Errorf("config: reactors must be a mapping or a sequence: %w", err)
	}

	*l = ReactorList{one}

	return nil
}

// Default returns a configuration with the documented fallback values filled
// in. Callers overwrite what their scenario specifies.
func Default() *Config {
	return &Config{
		IFFT: IFFTConfig{
			DurationPerChunk: -1,
			UpsampleRate:     1,
			Expansion: ExpansionConfig{
				Method:              "repeat",
				InterpolationMethod: "makima",
			},
		},
	}
}

// Load reads a jspec file. Files ending in .yaml or .yml decode as YAML,
// everything else as JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}

	if err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the structural constraints that must hold before any frame
// is produced. Distribution and expansion kinds are validated by the
// components that implement them.
func (c *Config) Validate() error {
	sg := c.Spectrogram

	if sg.NFreqBins <= 0 || sg.NFreqBins%2 == 0 {
		return fmt.Errorf("%w: got %d", ErrEvenBinCount, sg.NFreqBins)
	}

	if sg.WindowSize <= 0 {
		return fmt.Errorf("config: WindowSize_s must be > 0: %g", sg.WindowSize)
	}

	if sg.Duration <= 0 {
		return fmt.Errorf("config: Duration_s must be > 0: %g", sg.Duration)
	}

	if sg.OutputPath == "" {
		return fmt.Errorf("%w: PathToOutputSpectrogram", ErrMissingOutputPath)
	}

	ifft := c.IFFT

	if ifft.DurationPerChunk == 0 {
		return errors.New("config: DurationPerChunk_s must be positive, or negative to reuse WindowSize_s")
	}

	if ifft.StartingSampleRate < 0 {
		return fmt.Errorf("config: StartingSampleRate_Hz must be >= 0: %g", ifft.StartingSampleRate)
	}

	if ifft.UpsampleRate < 1 {
		return fmt.Errorf("config: UpsampleRate must be >= 1: %d", ifft.UpsampleRate)
	}

	if ifft.Phase.PhaseNoise < 0 {
		return fmt.Errorf("config: PhaseNoise_rads must be >= 0: %g", ifft.Phase.PhaseNoise)
	}

	if ifft.OutputPath == "" {
		return fmt.Errorf("%w: PathToOutputTimeSignal", ErrMissingOutputPath)
	}

	for i, r := range c.Reactors {
		if err := validateReactor(i, r, sg.NFreqBins); err != nil {
			return err
		}
	}

	return nil
}

func validateReactor(i int, r ReactorSpec, nbins int) error {
	if len(r.GEProbs) != 4 {
		return fmt.Errorf("config: reactor %d (%s): ge_probs needs 4 values, got %d", i, r.Name, len(r.GEProbs))
	}

	for _, p := range r.GEProbs {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: reactor %d (%s): %g", ErrProbabilityRange, i, r.Name, p)
		}
	}

	if r.CenterBin < 0 || r.CenterBin >= nbins {
		return fmt.Errorf("config: reactor %d (%s): centerbin %d outside [0,%d]", i, r.Name, r.CenterBin, nbins-1)
	}

	if r.Shaping.Enabled && r.Shaping.Std <= 0 {
		return fmt.Errorf("config: reactor %d (%s): pwr_shaping std must be > 0 when enabled: %g", i, r.Name, r.Shaping.Std)
	}

	return nil
}
