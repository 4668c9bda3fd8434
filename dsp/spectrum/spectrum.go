package spectrum

import (
	"math"
	"sync"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// AmplitudeFromDB converts a dB magnitude to linear amplitude (10^(dB/20)).
func AmplitudeFromDB(db float64) float64 {
	return math.Pow(10, db/20)
}

// DBFromAmplitude converts a linear amplitude to dB magnitude (20*log10).
func DBFromAmplitude(amp float64) float64 {
	return 20 * math.Log10(amp)
}

// AmplitudesFromDB converts a dB frame to linear amplitudes into a new slice.
func AmplitudesFromDB(db []float64) []float64 {
	if len(db) == 0 {
		return nil
	}

	out := make([]float64, len(db))
	for i, v := range db {
		out[i] = AmplitudeFromDB(v)
	}

	return out
}

// DBFromAmplitudesInPlace converts linear amplitudes to dB in place.
func DBFromAmplitudesInPlace(amp []float64) {
	for i, v := range amp {
		amp[i] = DBFromAmplitude(v)
	}
}

// ToTransformOrder reorders a symmetric two-sided vector laid out as
// negative...DC...positive into inverse-transform order: the element at index
// ceil(n/2)-1 moves to position 0, followed by the higher-index elements,
// followed by the elements preceding the midpoint.
func ToTransformOrder[T float64 | complex128](in []T) []T {
	n := len(in)
	if n == 0 {
		return nil
	}

	mid := (n + 1) / 2

	out := make([]T, 0, n)
	out = append(out, in[mid-1:]...)
	out = append(out, in[:mid-1]...)

	return out
}

// ToCenteredOrder shifts a transform-order vector so that the zero-frequency
// element sits at the center. For odd lengths it is the exact inverse of
// [ToTransformOrder].
func ToCenteredOrder[T float64 | complex128](in []T) []T {
	n := len(in)
	if n == 0 {
		return nil
	}

	mid := (n + 1) / 2

	out := make([]T, 0, n)
	out = append(out, in[mid:]...)
	out = append(out, in[:mid]...)

	return out
}

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)

	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	return buf.data[:n], buf.data[n:need], buf
}

// Magnitude returns |X[k]| for each complex bin.
//
// The square roots run through SIMD-optimized kernels when available. Scratch
// buffers are pooled internally, so in steady state this allocates only the
// output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)

	return out
}
