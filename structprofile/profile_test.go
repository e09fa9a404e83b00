package structprofile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRunIsDeterministic(t *testing.T) {
	cfg := NewConfig()
	cfg.BeamSize = 10

	e1 := NewEngine(cfg, NewNearestNeighbourModel(Turner2004, 37.0))
	e2 := NewEngine(cfg, NewNearestNeighbourModel(Turner2004, 37.0))

	if err := e1.Run("GGGGAAAACCCC"); err != nil {
		t.Fatal(err)
	}
	if err := e2.Run("GGGGAAAACCCC"); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(e1.Profile, e2.Profile); diff != "" {
		t.Errorf("two runs over the same sequence and config diverged (-first +second):\n%s", diff)
	}
}

func TestRunEmptySequenceProducesEmptyProfile(t *testing.T) {
	e := newTestEngine()
	if err := e.Run(""); err == nil {
		t.Fatal("expected ErrTooShortSequence for an empty sequence")
	}
	want := Profile{Bulge: []float64{}, Exterior: []float64{}, Hairpin: []float64{}, Internal: []float64{}, Multiloop: []float64{}, Stem: []float64{}}
	if diff := cmp.Diff(want, e.Profile); diff != "" {
		t.Errorf("empty-sequence profile mismatch (-want +got):\n%s", diff)
	}
}
