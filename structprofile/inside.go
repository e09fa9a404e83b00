package structprofile

// runInside fills the six alpha tables and alpha_O left to right. The order
// of the eight steps within a given j is part of the contract: later steps
// consume what earlier steps of the same j wrote.
func (e *Engine) runInside() {
	mode := e.Config.LogSumExpMode
	kT := e.Model.KT()
	seq := e.seq
	n := e.n
	beam := e.Config.BeamSize

	e.alphaO[0] = 0

	for j := 0; j < n; j++ {
		// 1. S
		pruneColumn(e.alphaS, j, beam, e.alphaO)
		for _, se := range e.alphaS.entries(j) {
			i, s := se.i, se.score

			// Stem extend: S -> S
			if i-1 >= 0 && j+1 < n && seq.CanPair(i-1, j+1) {
				e.alphaS.updateSum(mode, j+1, i-1, s-e.Model.EnergyLoop(seq, i-1, j+1, i, j)/kT)
			}

			// Feeds M2
			for nn := 0; nn <= MultiMaxUnpaired; nn++ {
				if j+nn >= n {
					continue
				}
				e.alphaM2.updateSum(mode, j+nn, i, s-(e.Model.EnergyMultiBif(seq, i, j)+e.Model.EnergyMultiUnpaired(seq, j+1, j+nn))/kT)
			}

			// Feeds SE via interior loop outer
			for p := i; i-p <= MaxLoop && p >= 1; p-- {
				for q := seq.NextPair(p-1, j+1); q < n && (q-j-1)+(i-p) <= MaxLoop; q = seq.NextPair(p-1, q+1) {
					if p == i && q == j+1 {
						continue
					}
					e.alphaSE.updateSum(mode, q-1, p, s-e.Model.EnergyLoop(seq, p-1, q, i, j)/kT)
				}
			}

			// Feeds exterior
			bias := 0.0
			if i-1 >= 0 {
				bias = e.alphaO[i-1]
			}
			e.alphaO[j] = logSumExp(mode, e.alphaO[j], bias+s-e.Model.EnergyExternal(seq, i, j)/kT)
		}

		// 2. M2
		pruneColumn(e.alphaM2, j, beam, e.alphaO)
		for _, m2e := range e.alphaM2.entries(j) {
			i, s := m2e.i, m2e.score
			e.alphaM1.updateSum(mode, j, i, s)
			if i-1 >= 0 {
				for _, m1e := range e.alphaM1.entries(i - 1) {
					e.alphaMB.updateSum(mode, j, m1e.i, m1e.score+s)
				}
			}
		}

		// 3. MB
		pruneColumn(e.alphaMB, j, beam, e.alphaO)
		for _, mbe := range e.alphaMB.entries(j) {
			i, s := mbe.i, mbe.score
			e.alphaM1.updateSum(mode, j, i, s)
			for nn := 0; nn <= MultiMaxUnpaired; nn++ {
				if i-nn < 0 {
					continue
				}
				e.alphaM.updateSum(mode, j, i-nn, s)
			}
		}

		// 4. M1 (no rewrites, consumed by later j)
		pruneColumn(e.alphaM1, j, beam, e.alphaO)

		// 5. M
		pruneColumn(e.alphaM, j, beam, e.alphaO)
		for _, me := range e.alphaM.entries(j) {
			i, s := me.i, me.score
			if i-1 >= 0 && j+1 < n && seq.CanPair(i-1, j+1) {
				e.alphaSE.updateSum(mode, j, i, s-e.Model.EnergyMultiClosing(seq, i-1, j+1)/kT)
			}
		}

		// 6. Hairpin seeding into SE
		for nn := Turn; nn <= MaxLoop; nn++ {
			i := j - nn + 1
			if i >= 1 && j+1 < n && seq.CanPair(i-1, j+1) {
				hairpinScore := -e.Model.EnergyHairpin(seq, i-1, j+1) / kT
				e.alphaSE.updateSum(mode, j, i, hairpinScore)
				e.alphaSEHairpin.updateSum(mode, j, i, hairpinScore)
			}
		}

		// 7. SE
		pruneColumn(e.alphaSE, j, beam, e.alphaO)
		for _, see := range e.alphaSE.entries(j) {
			i, s := see.i, see.score
			if i-1 >= 0 && j+1 < n && seq.CanPair(i-1, j+1) {
				e.alphaS.updateSum(mode, j+1, i-1, s)
			}
		}

		// 8. Exterior extend
		if j+1 < n {
			e.alphaO[j+1] = logSumExp(mode, e.alphaO[j+1], e.alphaO[j]-e.Model.EnergyExternalUnpaired(seq, j+1, j+1)/kT)
		}
	}
}
