package structprofile

// pruneColumn retains at most beamSize entries of column j in t, ranking
// each entry (i, score) by bias(i) + score, where bias(i) is alpha_O[i-1]
// (or 0 at i=0). If beamSize is 0 or the column already has at most
// beamSize entries, it is left untouched. Ties at the threshold are evicted,
// matching the reference "drop everything <= threshold" rule.
func pruneColumn(t sparseTable, j, beamSize int, alphaO []float64) {
	col := t[j]
	if beamSize == 0 || len(col) <= beamSize {
		return
	}

	type biased struct {
		i    int
		bias float64
	}
	biasedScores := make([]biased, 0, len(col))
	for i, s := range col {
		b := s
		if i >= 1 {
			b += alphaO[i-1]
		}
		biasedScores = append(biasedScores, biased{i: i, bias: b})
	}

	scores := make([]float64, len(biasedScores))
	for idx, b := range biasedScores {
		scores[idx] = b.bias
	}
	threshold := quickselect(scores, 0, len(scores), len(scores)-beamSize)

	for _, b := range biasedScores {
		if b.bias <= threshold {
			delete(col, b.i)
		}
	}
}

// quickselect returns the k-th (1-indexed) smallest value in scores[lower:upper].
// It partitions in place, mirroring the reference beam pruner's
// Hoare-style quickselect.
func quickselect(scores []float64, lower, upper, k int) float64 {
	if upper-lower == 1 {
		return scores[lower]
	}
	split := quickselectPartition(scores, lower, upper)
	length := split - lower + 1
	if length == k {
		return scores[split]
	}
	if k < length {
		return quickselect(scores, lower, split, k)
	}
	return quickselect(scores, split+1, upper, k-length)
}

// quickselectPartition partitions scores[lower:upper) around the last
// element as pivot, returning the split point.
func quickselectPartition(scores []float64, lower, upper int) int {
	pivot := scores[upper-1]
	i, j := lower, upper-1
	for i < j {
		for scores[i] < pivot {
			i++
		}
		for scores[j] > pivot {
			j--
		}
		if scores[i] == scores[j] {
			i++
		} else if i < j {
			scores[i], scores[j] = scores[j], scores[i]
		}
	}
	return j
}
