// Package resample provides integer-factor upsampling using polyphase FIR
// interpolation with anti-imaging defaults.
//
// The upsampler is one-shot: each call filters a whole chunk with a
// linear-phase Kaiser-windowed sinc prototype and compensates the filter's
// group delay, so the output of a chunk of n samples is exactly factor*n
// samples aligned with the input. Real and complex chunks share the same
// prototype filter.
package resample
