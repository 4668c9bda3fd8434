package spectrogram

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrShortRow indicates a persisted row whose value count does not match the
// frame length.
var ErrShortRow = errors.New("spectrogram: row length mismatch")

// AppendRow encodes one dB frame as a comma-separated text row terminated by
// a newline. The layout has no header and no quoting; one row per window.
func AppendRow(w io.Writer, frame []float64) error {
	buf := make([]byte, 0, 16*len(frame))

	for i, v := range frame {
		if i > 0 {
			buf = append(buf, ',')
		}

		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}

	buf = append(buf, '\n')

	_, err := w.Write(buf)

	return err
}

// RowReader decodes persisted frames one row at a time, in the order they
// were written.
type RowReader struct {
	r     *bufio.Reader
	nbins int
	row   int
}

// NewRowReader wraps r. Every decoded row must contain exactly nbins values.
func NewRowReader(r io.Reader, nbins int) *RowReader {
	return &RowReader{r: bufio.NewReader(r), nbins: nbins}
}

// Next decodes the next frame into dst and returns it. It returns io.EOF
// once the artifact is exhausted; a malformed or short row aborts with a
// decode error identifying row and column.
func (rr *RowReader) Next(dst []float64) ([]float64, error) {
	line, err := rr.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return nil, err
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err == io.EOF {
			return nil, io.EOF
		}

		rr.row++

		return nil, fmt.Errorf("%w: row %d has 0 values, want %d", ErrShortRow, rr.row, rr.nbins)
	}

	rr.row++

	fields := strings.Split(line, ",")
	if len(fields) != rr.nbins {
		return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrShortRow, rr.row, len(fields), rr.nbins)
	}

	if cap(dst) < rr.nbins {
		dst = make([]float64, rr.nbins)
	}

	dst = dst[:rr.nbins]
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("spectrogram: row %d column %d: %w", rr.row, i+1, err)
		}

		dst[i] = v
	}

	return dst, nil
}
