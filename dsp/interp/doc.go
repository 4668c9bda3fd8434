// Package interp provides the interpolation primitives used when magnitude
// frames and time chunks are resampled onto denser uniform grids.
//
// Available methods, from cheapest to highest quality:
//
//   - [Lerp]:  2-point linear interpolation
//   - [Akima]: shape-preserving modified Akima piecewise cubic
//
// The Resample helpers evaluate these kernels over uniform index grids so a
// vector of n samples can be stretched to m samples spanning the same range.
package interp
