package timesignal

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
)

func TestAppendSamplesFormat(t *testing.T) {
	chunk := []complex128{
		complex(0.5, -0.25),
		complex(-1e-7, 3),
		complex(0, 0),
	}

	var buf bytes.Buffer
	if err := AppendSamples(&buf, chunk); err != nil {
		t.Fatalf("AppendSamples() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(chunk) {
		t.Fatalf("rows = %d, want %d", len(lines), len(chunk))
	}

	for i, line := range lines {
		cols := strings.Split(line, ",")
		if len(cols) != 2 {
			t.Fatalf("row %d has %d columns, want 2", i, len(cols))
		}

		re, err := strconv.ParseFloat(cols[0], 64)
		if err != nil {
			t.Fatalf("row %d real: %v", i, err)
		}

		im, err := strconv.ParseFloat(cols[1], 64)
		if err != nil {
			t.Fatalf("row %d imag: %v", i, err)
		}

		if re != real(chunk[i]) || im != imag(chunk[i]) {
			t.Fatalf("row %d = (%v,%v), want %v", i, re, im, chunk[i])
		}
	}
}
