// Package spectrum provides spectrum-domain utilities for magnitude frames.
//
// The package intentionally does not implement the transforms itself. It
// operates on magnitude vectors and complex bins produced elsewhere and
// provides dB/linear conversions, the index reorderings used around
// two-sided spectra, and magnitude extraction.
package spectrum
