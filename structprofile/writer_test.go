package structprofile

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestProfileWriteToFormat(t *testing.T) {
	p := Profile{
		Bulge:     []float64{0, 0.1},
		Exterior:  []float64{1, 0.1},
		Hairpin:   []float64{0, 0.1},
		Internal:  []float64{0, 0.1},
		Multiloop: []float64{0, 0.1},
		Stem:      []float64{0, 0.5},
	}
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf, "seq1", false); err != nil {
		t.Fatalf("WriteTo error = %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8 (header + 6 tracks + blank separator)", len(lines))
	}
	if lines[0] != ">seq1" {
		t.Errorf("header line = %q, want \">seq1\"", lines[0])
	}
	if !strings.HasPrefix(lines[5], "Multiloop\t") {
		t.Errorf("track 5 label = %q, want Multiloop prefix", lines[5])
	}
}

func TestProfileWriteToLegacyLabel(t *testing.T) {
	p := Profile{
		Bulge: []float64{0}, Exterior: []float64{1}, Hairpin: []float64{0},
		Internal: []float64{0}, Multiloop: []float64{0}, Stem: []float64{0},
	}
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf, "seq1", true); err != nil {
		t.Fatalf("WriteTo error = %v", err)
	}
	if !strings.Contains(buf.String(), "Multibranch\t") {
		t.Errorf("legacy label not found in output: %q", buf.String())
	}
	if strings.Contains(buf.String(), "Multiloop\t") {
		t.Errorf("legacy mode should not also emit Multiloop: %q", buf.String())
	}
}
