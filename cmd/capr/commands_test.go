package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFasta(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "input.fasta")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunCommandProducesExpectedTracks(t *testing.T) {
	input := writeTempFasta(t, ">seq1\nGGGGAAAACCCC\n")
	outPath := filepath.Join(t.TempDir(), "out.txt")

	app := application()
	err := app.Run([]string{"capr", input, outPath, "100"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, ">seq1") {
		t.Errorf("output missing header: %q", text)
	}
	for _, label := range []string{"Bulge", "Exterior", "Hairpin", "Internal", "Multiloop", "Stem"} {
		if !strings.Contains(text, label+"\t") {
			t.Errorf("output missing track %s: %q", label, text)
		}
	}
}

func TestRunCommandLegacyLabel(t *testing.T) {
	input := writeTempFasta(t, ">seq1\nGGGGAAAACCCC\n")
	outPath := filepath.Join(t.TempDir(), "out.txt")

	app := application()
	err := app.Run([]string{"capr", "--legacy-label", input, outPath, "100"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(out), "Multibranch\t") {
		t.Errorf("expected legacy label in output: %q", string(out))
	}
}

func TestRunCommandBadBeamSize(t *testing.T) {
	input := writeTempFasta(t, ">seq1\nGGGG\n")
	outPath := filepath.Join(t.TempDir(), "out.txt")

	app := application()
	err := app.Run([]string{"capr", input, outPath, "not-a-number"})
	if err == nil {
		t.Fatal("expected an error for a non-numeric beam_size")
	}
}

func TestRunCommandUnknownEnergySet(t *testing.T) {
	input := writeTempFasta(t, ">seq1\nGGGG\n")
	outPath := filepath.Join(t.TempDir(), "out.txt")

	app := application()
	err := app.Run([]string{"capr", "--energy", "turner1975", input, outPath, "100"})
	if err == nil {
		t.Fatal("expected an error for an unknown energy parameter set")
	}
}
