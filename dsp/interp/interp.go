package interp

// Lerp computes 2-point linear interpolation between a and b at frac in [0,1].
func Lerp(a, b, frac float64) float64 {
	return a + frac*(b-a)
}
