package structprofile

// runOutside fills the six beta tables and beta_O right to left. Every
// accumulation here is the mirror of the matching alpha rule in inside.go:
// each forward edge "dest += src + weight" has a backward counterpart
// "beta_src += beta_dest + weight", and any edge that mixes two sources
// (the bifurcation rules) back-propagates into both.
//
// Unlike runInside, this pass never prunes: it only ever consults cells
// that survived the inside pass's beam, so there is nothing of its own
// left to trim, and trimming beta entries here would silently drop mass
// an earlier column still needs to read.
func (e *Engine) runOutside() {
	mode := e.Config.LogSumExpMode
	kT := e.Model.KT()
	seq := e.seq
	n := e.n

	e.betaO[n-1] = 0

	for j := n - 1; j >= 0; j-- {
		// mirror of step 8: exterior extend
		if j+1 < n {
			w := -e.Model.EnergyExternalUnpaired(seq, j+1, j+1) / kT
			e.betaO[j] = logSumExp(mode, e.betaO[j], e.betaO[j+1]+w)
		}

		// mirror of step 7: SE -> S
		for _, see := range e.alphaSE.entries(j) {
			i := see.i
			if i-1 >= 0 && j+1 < n && seq.CanPair(i-1, j+1) {
				e.betaSE.updateSum(mode, j, i, e.betaS.get(j+1, i-1))
			}
		}

		// mirror of step 5: M -> SE (multiloop closing)
		for _, me := range e.alphaM.entries(j) {
			i := me.i
			if i-1 >= 0 && j+1 < n && seq.CanPair(i-1, j+1) {
				w := -e.Model.EnergyMultiClosing(seq, i-1, j+1) / kT
				e.betaM.updateSum(mode, j, i, e.betaSE.get(j, i)+w)
			}
		}

		// mirror of step 3: MB -> M1 (identity) and MB -> M (unpaired run)
		for _, mbe := range e.alphaMB.entries(j) {
			i := mbe.i
			acc := e.betaM1.get(j, i)
			for nn := 0; nn <= MultiMaxUnpaired; nn++ {
				if i-nn < 0 {
					continue
				}
				acc = logSumExp(mode, acc, e.betaM.get(j, i-nn))
			}
			e.betaMB.updateSum(mode, j, i, acc)
		}

		// mirror of step 2: M2 -> M1 (identity) and (M2, M1) -> MB (bifurcation)
		for _, m2e := range e.alphaM2.entries(j) {
			i, s := m2e.i, m2e.score
			acc := e.betaM1.get(j, i)
			if i-1 >= 0 {
				for _, m1e := range e.alphaM1.entries(i - 1) {
					bmb := e.betaMB.get(j, m1e.i)
					acc = logSumExp(mode, acc, bmb+m1e.score)
					e.betaM1.updateSum(mode, i-1, m1e.i, bmb+s)
				}
			}
			e.betaM2.updateSum(mode, j, i, acc)
		}

		// mirror of step 1: S feeds stem extend, M2 entry, SE interior, O
		for _, se := range e.alphaS.entries(j) {
			i, s := se.i, se.score
			acc := negInf

			if i-1 >= 0 && j+1 < n && seq.CanPair(i-1, j+1) {
				w := -e.Model.EnergyLoop(seq, i-1, j+1, i, j) / kT
				acc = logSumExp(mode, acc, e.betaS.get(j+1, i-1)+w)
			}

			for nn := 0; nn <= MultiMaxUnpaired; nn++ {
				if j+nn >= n {
					continue
				}
				w := -(e.Model.EnergyMultiBif(seq, i, j) + e.Model.EnergyMultiUnpaired(seq, j+1, j+nn)) / kT
				acc = logSumExp(mode, acc, e.betaM2.get(j+nn, i)+w)
			}

			for p := i; i-p <= MaxLoop && p >= 1; p-- {
				for q := seq.NextPair(p-1, j+1); q < n && (q-j-1)+(i-p) <= MaxLoop; q = seq.NextPair(p-1, q+1) {
					if p == i && q == j+1 {
						continue
					}
					w := -e.Model.EnergyLoop(seq, p-1, q, i, j) / kT
					acc = logSumExp(mode, acc, e.betaSE.get(q-1, p)+w)
				}
			}

			w := -e.Model.EnergyExternal(seq, i, j) / kT
			if i-1 >= 0 {
				acc = logSumExp(mode, acc, e.alphaO[i-1]+w+e.betaO[j])
				e.betaO[i-1] = logSumExp(mode, e.betaO[i-1], s+w+e.betaO[j])
			} else {
				acc = logSumExp(mode, acc, w+e.betaO[j])
			}

			e.betaS.updateSum(mode, j, i, acc)
		}
	}
}
