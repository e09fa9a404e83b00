package structprofile

// sparseTable is a dense array of N sparse columns, each mapping a left
// endpoint i to a log-score. It backs every alpha/beta non-terminal table
// (S, SE, M, MB, M1, M2) in the engine: outer axis indexed by right endpoint
// j, inner map keyed by left endpoint i.
type sparseTable []map[int]float64

// newSparseTable allocates n empty columns.
func newSparseTable(n int) sparseTable {
	t := make(sparseTable, n)
	for j := range t {
		t[j] = make(map[int]float64)
	}
	return t
}

// clear empties every column without reallocating the backing slice.
func (t sparseTable) clear() {
	for j := range t {
		for i := range t[j] {
			delete(t[j], i)
		}
	}
}

// get returns the stored score at (j, i), or negInf if absent.
func (t sparseTable) get(j, i int) float64 {
	if v, ok := t[j][i]; ok {
		return v
	}
	return negInf
}

// contains reports whether (j, i) has a stored entry.
func (t sparseTable) contains(j, i int) bool {
	_, ok := t[j][i]
	return ok
}

// updateSum log-sums s into the entry at (j, i), creating it if absent.
// Returns the new value.
func (t sparseTable) updateSum(mode LogSumExpMode, j, i int, s float64) float64 {
	if isNegInf(s) {
		return t.get(j, i)
	}
	col := t[j]
	if cur, ok := col[i]; ok {
		s = logSumExp(mode, cur, s)
	}
	col[i] = s
	return s
}

// keys returns a snapshot of the left endpoints currently stored in column
// j. Pruning and the inside/outside passes always iterate over such a
// snapshot rather than the live map, since both may delete entries (pruning)
// or insert into a later column (the recurrences never insert into the same
// column being iterated, but the defensive copy keeps the iteration contract
// uniform and documented in one place).
func (t sparseTable) keys(j int) []int {
	col := t[j]
	ks := make([]int, 0, len(col))
	for i := range col {
		ks = append(ks, i)
	}
	return ks
}

// entries is like keys but also returns the associated score, avoiding a
// second map lookup per key in the hot recurrence loops.
type entry struct {
	i     int
	score float64
}

func (t sparseTable) entries(j int) []entry {
	col := t[j]
	es := make([]entry, 0, len(col))
	for i, s := range col {
		es = append(es, entry{i: i, score: s})
	}
	return es
}
