package structprofile

import (
	"bufio"
	"fmt"
	"io"
)

// trackLabels names the six rows in the order they're written, matching the
// emitted record format: a ">identifier" header followed by one
// "Label\tv0\tv1\t...\tvN-1" line per track, then a blank separator line.
var trackLabels = [6]string{"Bulge", "Exterior", "Hairpin", "Internal", "Multiloop", "Stem"}

const legacyMultiloopLabel = "Multibranch"

// WriteTo writes one record of p in the structural profile's text format.
// When legacyLabel is true the Multiloop row is headed "Multibranch"
// instead, matching older readers that never picked up the renamed track.
func (p Profile) WriteTo(w io.Writer, identifier string, legacyLabel bool) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64

	n, err := fmt.Fprintf(bw, ">%s\n", identifier)
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("structprofile: write header: %w", err)
	}

	tracks := [6][]float64{p.Bulge, p.Exterior, p.Hairpin, p.Internal, p.Multiloop, p.Stem}
	for idx, track := range tracks {
		label := trackLabels[idx]
		if legacyLabel && label == "Multiloop" {
			label = legacyMultiloopLabel
		}
		n, err := bw.WriteString(label)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("structprofile: write track %s: %w", label, err)
		}
		for _, v := range track {
			n, err := fmt.Fprintf(bw, "\t%v", v)
			written += int64(n)
			if err != nil {
				return written, fmt.Errorf("structprofile: write track %s: %w", label, err)
			}
		}
		n, err = bw.WriteString("\n")
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("structprofile: write track %s: %w", label, err)
		}
	}

	n, err = bw.WriteString("\n")
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("structprofile: write record separator: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("structprofile: flush: %w", err)
	}
	return written, nil
}
