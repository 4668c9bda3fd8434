package resample

import "errors"

// ErrInvalidFactor indicates a non-positive upsampling factor.
var ErrInvalidFactor = errors.New("resample: upsample factor must be >= 1")

type config struct {
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
}

// Option configures the upsampler.
type Option func(*config)

// WithTapsPerPhase overrides taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// WithCutoffScale overrides normalized cutoff scaling in range (0, 1].
// 1.0 equals the theoretical anti-imaging cutoff.
func WithCutoffScale(v float64) Option {
	return func(cfg *config) {
		if v > 0 && v <= 1 {
			cfg.cutoffScale = v
		}
	}
}

// WithKaiserBeta overrides the Kaiser window beta parameter.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta >= 0 {
			cfg.kaiserBeta = beta
		}
	}
}

func defaultConfig() config {
	return config{
		tapsPerPhase: 32,
		cutoffScale:  0.92,
		kaiserBeta:   7.5,
	}
}

// Upsampler expands chunks by an integer factor via polyphase FIR
// interpolation.
type Upsampler struct {
	factor int
	delay  int
	phases [][]float64
}

// NewUpsampler creates an upsampler for the given integer factor.
// A factor of 1 passes chunks through untouched.
func NewUpsampler(factor int, opts ...Option) (*Upsampler, error) {
	if factor < 1 {
		return nil, ErrInvalidFactor
	}

	u := &Upsampler{factor: factor}
	if factor == 1 {
		return u, nil
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	taps, err := designPrototype(factor, cfg)
	if err != nil {
		return nil, err
	}

	u.delay = (len(taps) - 1) / 2
	u.phases = splitPhases(taps, factor)

	return u, nil
}

// Factor returns the configured upsampling factor.
func (u *Upsampler) Factor() int {
	return u.factor
}

// Process upsamples a real chunk to factor*len(in) samples.
func (u *Upsampler) Process(in []float64) []float64 {
	if len(in) == 0 {
		return nil
	}

	if u.factor == 1 {
		out := make([]float64, len(in))
		copy(out, in)

		return out
	}

	out := make([]float64, u.factor*len(in))
	for n := range out {
		p, base := u.branch(n)

		var y float64

		for j, c := range u.phases[p] {
			k := base - j
			if k < 0 || k >= len(in) {
				continue
			}

			y += c * in[k]
		}

		out[n] = y
	}

	return out
}

// ProcessComplex upsamples a complex chunk to factor*len(in) samples. Real
// and imaginary parts run through the same linear-phase prototype.
func (u *Upsampler) ProcessComplex(in []complex128) []complex128 {
	if len(in) == 0 {
		return nil
	}

	if u.factor == 1 {
		out := make([]complex128, len(in))
		copy(out, in)

		return out
	}

	out := make([]complex128, u.factor*len(in))
	for n := range out {
		p, base := u.branch(n)

		var re, im float64

		for j, c := range u.phases[p] {
			k := base - j
			if k < 0 || k >= len(in) {
				continue
			}

			re += c * real(in[k])
			im += c * imag(in[k])
		}

		out[n] = complex(re, im)
	}

	return out
}

// branch maps output index n to the polyphase branch and newest input index
// after group-delay compensation.
func (u *Upsampler) branch(n int) (phase, base int) {
	idx := n + u.delay

	return idx % u.factor, idx / u.factor
}
