package structprofile

import "testing"

func TestSparseTableGetAbsent(t *testing.T) {
	st := newSparseTable(3)
	if got := st.get(0, 0); got != negInf {
		t.Errorf("get on empty table = %v, want negInf", got)
	}
	if st.contains(0, 0) {
		t.Error("contains on empty table = true, want false")
	}
}

func TestSparseTableUpdateSumCreatesAndAccumulates(t *testing.T) {
	st := newSparseTable(2)
	st.updateSum(LogSumExpLegacy, 1, 0, -1.0)
	if !st.contains(1, 0) {
		t.Fatal("entry not created")
	}
	got := st.updateSum(LogSumExpLegacy, 1, 0, -1.0)
	want := logSumExp(LogSumExpLegacy, -1.0, -1.0)
	if got != want {
		t.Errorf("accumulated score = %v, want %v", got, want)
	}
}

func TestSparseTableUpdateSumIgnoresNegInf(t *testing.T) {
	st := newSparseTable(1)
	st.updateSum(LogSumExpLegacy, 0, 0, negInf)
	if st.contains(0, 0) {
		t.Error("updateSum with negInf should not create an entry")
	}
}

func TestSparseTableEntriesSnapshot(t *testing.T) {
	st := newSparseTable(1)
	st.updateSum(LogSumExpLegacy, 0, 0, -1.0)
	st.updateSum(LogSumExpLegacy, 0, 1, -2.0)
	es := st.entries(0)
	if len(es) != 2 {
		t.Fatalf("entries len = %d, want 2", len(es))
	}
}

func TestPruneColumnKeepsTopBeamSize(t *testing.T) {
	st := newSparseTable(1)
	alphaO := []float64{0, 0, 0, 0, 0}
	for i, s := range []float64{-5, -4, -3, -2, -1} {
		st.updateSum(LogSumExpLegacy, 0, i, s)
	}
	pruneColumn(st, 0, 2, alphaO)
	if len(st[0]) != 2 {
		t.Fatalf("column size after prune = %d, want 2", len(st[0]))
	}
	if !st.contains(0, 3) || !st.contains(0, 4) {
		t.Errorf("prune kept wrong entries: %v", st[0])
	}
}

func TestPruneColumnNoopWhenUnderBeam(t *testing.T) {
	st := newSparseTable(1)
	st.updateSum(LogSumExpLegacy, 0, 0, -1.0)
	pruneColumn(st, 0, 10, []float64{0})
	if len(st[0]) != 1 {
		t.Errorf("prune should be a no-op under beam size")
	}
}

func TestQuickselect(t *testing.T) {
	scores := []float64{5, 3, 1, 4, 2}
	got := quickselect(append([]float64(nil), scores...), 0, len(scores), 2)
	if got != 3 {
		t.Errorf("quickselect k=2 = %v, want 3", got)
	}
}
