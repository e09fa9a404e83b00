package structprofile

import (
	"math"

	"github.com/foldwright/capr/energy_params"
)

// gasConstant is R in cal/(K*mol), matching the reference implementation's
// GASCONST.
const gasConstant = 1.98717

// EnergyParamsSet selects which nearest-neighbour parameter set a Model is
// built from.
type EnergyParamsSet int

const (
	// Turner2004 is the default parameter set: adds tri/tetra/hexa-loop
	// bonuses and multiloop/external mismatch tables over Turner1999.
	Turner2004 EnergyParamsSet = iota
	// Turner1999 is the older, smaller parameter set.
	Turner1999
)

// EnergyModel is the seven-query contract every inside/outside/profile rule
// consumes. The built-in implementation is backed by energy_params; an
// alternative backend only needs to satisfy this interface.
type EnergyModel interface {
	KT() float64
	EnergyHairpin(seq *EncodedSequence, i, j int) float64
	EnergyLoop(seq *EncodedSequence, i, j, p, q int) float64
	EnergyExternal(seq *EncodedSequence, i, j int) float64
	EnergyExternalUnpaired(seq *EncodedSequence, i, j int) float64
	EnergyMultiUnpaired(seq *EncodedSequence, i, j int) float64
	EnergyMultiClosing(seq *EncodedSequence, i, j int) float64
	EnergyMultiBif(seq *EncodedSequence, i, j int) float64
}

// NearestNeighbourModel is the default EnergyModel, a thin adapter over
// energy_params.EnergyParams. It never computes or special-cases a table
// value itself; every number it returns is read straight out of the
// embedded parameter set.
type NearestNeighbourModel struct {
	params                  *energy_params.EnergyParams
	kT                      float64
	hasSpecialHairpins      bool
	allowMismatchMulti      bool
	allowMismatchExternal   bool
}

// NewNearestNeighbourModel builds the default energy model for the given
// parameter set at the given temperature (Celsius).
func NewNearestNeighbourModel(set EnergyParamsSet, temperatureCelsius float64) *NearestNeighbourModel {
	var paramsSet energy_params.EnergyParamsSet
	switch set {
	case Turner1999:
		paramsSet = energy_params.Turner1999
	default:
		paramsSet = energy_params.Turner2004
	}
	params := energy_params.NewEnergyParams(paramsSet, temperatureCelsius)
	kT := (temperatureCelsius + energy_params.ZeroCelsiusInKelvin) * gasConstant / 10.0
	return &NearestNeighbourModel{
		params: params,
		kT:     kT,
		// Turner2004 is the generation that introduced loop-mismatch tables
		// for multiloops/externals and the tri/tetra/hexa-loop bonus
		// tables; Turner1999 predates all three.
		hasSpecialHairpins:    set != Turner1999,
		allowMismatchMulti:    set != Turner1999,
		allowMismatchExternal: set != Turner1999,
	}
}

// KT implements EnergyModel.
func (m *NearestNeighbourModel) KT() float64 { return m.kT }

// basePairType maps two encoded bases (0..4) to the energy_params 0-based
// pair-type convention (CG=0, GC=1, GU=2, UG=3, AU=4, UA=5), or -1 if they
// cannot pair. This is an affine reindexing of basePairTable: both are
// derived from the same canonical pairing table, offset by one because
// basePairTable additionally uses 0 to mean "cannot pair".
func basePairType(a, b int) int {
	v := basePairTable[a][b]
	if v == 0 {
		return -1
	}
	return v - 1
}

// isNonGC reports whether a pair type (0-based energy_params convention)
// takes the AU/GU terminal penalty, i.e. is anything other than CG or GC.
func isNonGC(pairType int) bool {
	return pairType >= 2
}

// EnergyHairpin implements EnergyModel. i, j is the closing pair.
func (m *NearestNeighbourModel) EnergyHairpin(seq *EncodedSequence, i, j int) float64 {
	d := j - i - 1
	pairType := basePairType(seq.Codes[i], seq.Codes[j])

	var energy int
	if d <= MaxLoop {
		energy = m.params.HairpinLoop[d]
	} else {
		energy = m.params.HairpinLoop[MaxLoop] + int(m.params.LogExtrapolationConstant*math.Log(float64(d)/float64(MaxLoop)))
	}

	if m.hasSpecialHairpins {
		switch d {
		case 3:
			if v, ok := m.params.TriLoop[seq.Letters[i:j+1]]; ok {
				return float64(v)
			}
		case 4:
			if v, ok := m.params.TetraLoop[seq.Letters[i:j+1]]; ok {
				return float64(v)
			}
		case 6:
			if v, ok := m.params.HexaLoop[seq.Letters[i:j+1]]; ok {
				return float64(v)
			}
		}
	}

	if d != 3 {
		energy += m.params.MismatchHairpinLoop[pairType][seq.Codes[i+1]][seq.Codes[j-1]]
	} else if isNonGC(pairType) {
		energy += m.params.TerminalAUPenalty
	}
	return float64(energy)
}

// EnergyLoop implements EnergyModel: (i, j) outer pair, (p, q) inner pair.
func (m *NearestNeighbourModel) EnergyLoop(seq *EncodedSequence, i, j, p, q int) float64 {
	type1 := basePairType(seq.Codes[i], seq.Codes[j])
	type2 := basePairType(seq.Codes[q], seq.Codes[p])
	d1 := p - i - 1
	d2 := j - q - 1
	d := d1 + d2
	dmin, dmax := d1, d2
	if dmin > dmax {
		dmin, dmax = dmax, dmin
	}
	si := seq.Codes[i+1]
	sj := seq.Codes[j-1]
	sp := seq.Codes[p-1]
	sq := seq.Codes[q+1]

	if dmax == 0 {
		return float64(m.params.StackingPair[type1][type2])
	}

	if dmin == 0 {
		var energy int
		if d <= MaxLoop {
			energy = m.params.Bulge[d]
		} else {
			energy = m.params.Bulge[MaxLoop] + int(m.params.LogExtrapolationConstant*math.Log(float64(d)/float64(MaxLoop)))
		}
		if dmax == 1 {
			energy += m.params.StackingPair[type1][type2]
		} else {
			if isNonGC(type1) {
				energy += m.params.TerminalAUPenalty
			}
			if isNonGC(type2) {
				energy += m.params.TerminalAUPenalty
			}
		}
		return float64(energy)
	}

	switch {
	case d1 == 1 && d2 == 1:
		return float64(m.params.Interior1x1Loop[type1][type2][si][sj])
	case d1 == 1 && d2 == 2:
		return float64(m.params.Interior2x1Loop[type2][type1][sq][si][sj])
	case d1 == 2 && d2 == 1:
		return float64(m.params.Interior2x1Loop[type1][type2][si][sq][sp])
	case d1 == 2 && d2 == 2:
		return float64(m.params.Interior2x2Loop[type1][type2][si][sp][sq][sj])
	}

	var energy int
	if d <= MaxLoop {
		energy = m.params.InteriorLoop[d]
	} else {
		energy = m.params.InteriorLoop[MaxLoop] + int(m.params.LogExtrapolationConstant*math.Log(float64(d)/float64(MaxLoop)))
	}
	asym := dmax - dmin
	ninio := asym * m.params.Ninio
	if ninio > m.params.MaxNinio {
		ninio = m.params.MaxNinio
	}
	energy += ninio

	switch {
	case dmin == 1:
		energy += m.params.Mismatch1xnInteriorLoop[type1][si][sj] + m.params.Mismatch1xnInteriorLoop[type2][sq][sp]
	case dmin == 2 && dmax == 3:
		energy += m.params.Mismatch2x3InteriorLoop[type1][si][sj] + m.params.Mismatch2x3InteriorLoop[type2][sq][sp]
	default:
		energy += m.params.MismatchInteriorLoop[type1][si][sj] + m.params.MismatchInteriorLoop[type2][sq][sp]
	}
	return float64(energy)
}

// EnergyExternal implements EnergyModel: pair (i, j) sitting in the exterior
// loop.
func (m *NearestNeighbourModel) EnergyExternal(seq *EncodedSequence, i, j int) float64 {
	pairType := basePairType(seq.Codes[i], seq.Codes[j])
	energy := 0

	hasFive := i-1 >= 0
	hasThree := j+1 < seq.Len()
	switch {
	case hasFive && hasThree && m.allowMismatchExternal:
		energy += m.params.MismatchExteriorLoop[pairType][seq.Codes[i-1]][seq.Codes[j+1]]
	case hasFive:
		energy += m.params.DanglingEndsFivePrime[pairType][seq.Codes[i-1]]
	case hasThree:
		energy += m.params.DanglingEndsThreePrime[pairType][seq.Codes[j+1]]
	}
	if isNonGC(pairType) {
		energy += m.params.TerminalAUPenalty
	}
	return float64(energy)
}

// EnergyExternalUnpaired implements EnergyModel. Zero under every shipped
// parameter set; kept as a method (not folded away) so an alternative
// backend can charge a per-base cost.
func (m *NearestNeighbourModel) EnergyExternalUnpaired(seq *EncodedSequence, i, j int) float64 {
	return 0
}

// EnergyMultiUnpaired implements EnergyModel. Zero under every shipped
// parameter set, same rationale as EnergyExternalUnpaired.
func (m *NearestNeighbourModel) EnergyMultiUnpaired(seq *EncodedSequence, i, j int) float64 {
	return 0
}

// EnergyMultiClosing implements EnergyModel: energy contributed when pair
// (i, j) closes a multiloop, viewed from inside (hence the swap).
func (m *NearestNeighbourModel) EnergyMultiClosing(seq *EncodedSequence, i, j int) float64 {
	return m.EnergyMultiBif(seq, j, i) + float64(m.params.MultiLoopClosingPenalty)
}

// EnergyMultiBif implements EnergyModel: per-branch multiloop entry energy.
func (m *NearestNeighbourModel) EnergyMultiBif(seq *EncodedSequence, i, j int) float64 {
	pairType := basePairType(seq.Codes[i], seq.Codes[j])
	energy := m.params.MultiLoopIntern[0]

	hasFive := i-1 >= 0
	hasThree := j+1 < seq.Len()
	switch {
	case hasFive && hasThree && m.allowMismatchMulti:
		energy += m.params.MismatchMultiLoop[pairType][seq.Codes[i-1]][seq.Codes[j+1]]
	case hasFive:
		energy += m.params.DanglingEndsFivePrime[pairType][seq.Codes[i-1]]
	case hasThree:
		energy += m.params.DanglingEndsThreePrime[pairType][seq.Codes[j+1]]
	}
	if isNonGC(pairType) {
		energy += m.params.TerminalAUPenalty
	}
	return float64(energy)
}

// EnsembleFreeEnergy converts a log partition function into kcal/mol, per
// G = logZ * -(T + K0) * R / 1000.
func EnsembleFreeEnergy(logZ, temperatureCelsius float64) float64 {
	return logZ * -(temperatureCelsius + energy_params.ZeroCelsiusInKelvin) * gasConstant / 1000.0
}
