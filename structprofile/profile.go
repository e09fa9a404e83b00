package structprofile

import "math"

// assembleProfile reads the converged alpha/beta tables and LogZ into the
// six per-position probability tracks.
//
// Stem mass lands on the two paired endpoints directly. Hairpin mass is
// smeared across a closing pair's whole loop span, since a hairpin has no
// inner pair to exclude. Bulge/Internal mass is smeared only across the
// unpaired gap(s) either side of the enclosed inner pair — never across the
// inner pair's own span, which already earns its probability as Stem (and
// whatever it itself encloses) — so the (p, i, j, q) quadruple is
// re-enumerated here rather than read off an aggregated outer-cell score.
// Multiloop mass is smeared only across unpaired runs inside a multiloop:
// the run after a branch stem (S into M2) and the run before the first
// branch (MB into M). Exterior is read directly off alpha_O[i-1] (the
// prefix before i) and beta_O[i] (the outside weight of alpha_O[i], i.e. the
// suffix after i), not taken as a residual of the other five, so a bug in
// any of them shows up as column drift instead of being silently absorbed.
func (e *Engine) assembleProfile() {
	n := e.n
	logZ := e.LogZ
	kT := e.Model.KT()
	seq := e.seq

	stem := newZeroVec(n)
	hairpin := newZeroVec(n)
	bulge := newZeroVec(n)
	internal := newZeroVec(n)
	multi := newZeroVec(n)
	exterior := newZeroVec(n)

	for j := 0; j < n; j++ {
		for _, se := range e.alphaS.entries(j) {
			p := math.Exp(se.score + e.betaS.get(j, se.i) - logZ)
			stem[se.i] += p
			stem[j] += p

			// Re-enumerate the interior-loop outer pairs this inner pair
			// (se.i, j) can sit under, exactly as inside.go does, but now
			// weighting by the outer cell's beta to get the loop's actual
			// probability and crediting only the unpaired gap positions.
			i, s := se.i, se.score
			for pOuter := i; i-pOuter <= MaxLoop && pOuter >= 1; pOuter-- {
				for q := seq.NextPair(pOuter-1, j+1); q < n && (q-j-1)+(i-pOuter) <= MaxLoop; q = seq.NextPair(pOuter-1, q+1) {
					if pOuter == i && q == j+1 {
						continue
					}
					b := e.betaSE.get(q-1, pOuter)
					if isNegInf(b) {
						continue
					}
					loopProb := math.Exp(s+b-e.Model.EnergyLoop(seq, pOuter-1, q, i, j)/kT-logZ)
					d1, d2 := i-pOuter, q-1-j
					track := internal
					if d1 == 0 || d2 == 0 {
						track = bulge
					}
					if d1 > 0 {
						addRange(track, pOuter, i-1, loopProb)
					}
					if d2 > 0 {
						addRange(track, j+1, q-1, loopProb)
					}
				}
			}
		}

		for _, see := range e.alphaSEHairpin.entries(j) {
			b := e.betaSE.get(j, see.i)
			addRange(hairpin, see.i, j, math.Exp(see.score+b-logZ))
		}

		for _, se := range e.alphaS.entries(j) {
			for nn := 1; nn <= MultiMaxUnpaired && j+nn < n; nn++ {
				if b := e.betaM2.get(j+nn, se.i); !isNegInf(b) {
					addRange(multi, j+1, j+nn, math.Exp(se.score+b-(e.Model.EnergyMultiBif(seq, se.i, j)+e.Model.EnergyMultiUnpaired(seq, j+1, j+nn))/kT-logZ))
				}
			}
		}
		for _, mbe := range e.alphaMB.entries(j) {
			for nn := 1; nn <= MultiMaxUnpaired && mbe.i-nn >= 0; nn++ {
				if b := e.betaM.get(j, mbe.i-nn); !isNegInf(b) {
					addRange(multi, mbe.i-nn, mbe.i-1, math.Exp(mbe.score+b-e.Model.EnergyMultiUnpaired(seq, mbe.i-nn, mbe.i-1)/kT-logZ))
				}
			}
		}
	}

	prefixSum(hairpin)
	prefixSum(bulge)
	prefixSum(internal)
	prefixSum(multi)

	for i := 0; i < n; i++ {
		left := 0.0
		if i-1 >= 0 {
			left = e.alphaO[i-1]
		}
		exterior[i] = math.Exp(left + e.betaO[i] - logZ)
	}

	eps := e.Config.NormalizeWarnEps
	for i := 0; i < n; i++ {
		sum := stem[i] + hairpin[i] + bulge[i] + internal[i] + multi[i] + exterior[i]
		if math.Abs(sum-1) > eps {
			logDrift(i, sum)
		}
		if !e.Config.NormalizeProfiles || sum <= 0 {
			continue
		}
		stem[i] = clamp(stem[i]/sum, 0, 1)
		hairpin[i] = clamp(hairpin[i]/sum, 0, 1)
		bulge[i] = clamp(bulge[i]/sum, 0, 1)
		internal[i] = clamp(internal[i]/sum, 0, 1)
		multi[i] = clamp(multi[i]/sum, 0, 1)
		exterior[i] = clamp(exterior[i]/sum, 0, 1)
	}

	e.Profile = Profile{
		Bulge:     bulge,
		Exterior:  exterior,
		Hairpin:   hairpin,
		Internal:  internal,
		Multiloop: multi,
		Stem:      stem,
	}
}
