package timesignal

import (
	"io"
	"strconv"
)

// AppendSamples encodes chunk samples as text rows of two comma-separated
// columns, real part then imaginary part, one row per sample.
func AppendSamples(w io.Writer, chunk []complex128) error {
	buf := make([]byte, 0, 32*len(chunk))

	for _, s := range chunk {
		buf = strconv.AppendFloat(buf, real(s), 'g', -1, 64)
		buf = append(buf, ',')
		buf = strconv.AppendFloat(buf, imag(s), 'g', -1, 64)
		buf = append(buf, '\n')
	}

	_, err := w.Write(buf)

	return err
}
