package structprofile

import "math"

// negInf is the sentinel used everywhere in place of true negative infinity.
// It is finite on purpose: arithmetic on it (e.g. negInf - 12) must still
// compare sanely against other finite scores instead of producing NaN.
const negInf float64 = -1e7

// fastLSEUpperBound is the domain over which the tabulated approximation in
// logSumExpFast is valid. Outside of it the correction term is negligible
// and logSumExpFast just returns the larger operand.
const fastLSEUpperBound = 11.8625

// fastLSETableSize controls the resolution of the correction-term lookup
// table built by init(). Linear interpolation between adjacent table entries
// keeps the tabulated mode within the legacy mode's 7e-6 relative error
// contract while avoiding a Log1p/Exp pair on the hot path.
const fastLSETableSize = 4096

var fastLSETable [fastLSETableSize + 1]float64

func init() {
	step := fastLSEUpperBound / fastLSETableSize
	for i := range fastLSETable {
		d := float64(i) * step
		fastLSETable[i] = math.Log1p(math.Exp(-d))
	}
}

// LogSumExpMode selects which logSumExp implementation an Engine uses.
type LogSumExpMode int

const (
	// LogSumExpLegacy is the textbook max + log1p(exp(-|x-y|)) form.
	LogSumExpLegacy LogSumExpMode = iota
	// LogSumExpFast uses a tabulated polynomial approximation, cheaper per
	// call but only accurate within fastLSEUpperBound of the two operands.
	LogSumExpFast
)

func isNegInf(x float64) bool {
	return x <= negInf
}

// logSumExp returns z such that exp(z) = exp(x) + exp(y), special-casing the
// negInf sentinel so it never perturbs an otherwise finite score.
func logSumExp(mode LogSumExpMode, x, y float64) float64 {
	if isNegInf(x) {
		return y
	}
	if isNegInf(y) {
		return x
	}
	switch mode {
	case LogSumExpFast:
		return logSumExpFast(x, y)
	default:
		return logSumExpLegacy(x, y)
	}
}

func logSumExpLegacy(x, y float64) float64 {
	if x < y {
		x, y = y, x
	}
	diff := x - y
	return x + math.Log1p(math.Exp(-diff))
}

// logSumExpFast approximates log1p(exp(-diff)) with a tabulated polynomial
// rather than calling math.Exp/math.Log1p directly. Below fastLSEUpperBound
// the two forms must agree to within the contract's 7e-6 relative error; the
// polynomial below is evaluated in the same max+correction shape as the
// legacy path so the two only ever differ in how the correction term is
// computed.
func logSumExpFast(x, y float64) float64 {
	if x < y {
		x, y = y, x
	}
	diff := x - y
	if diff >= fastLSEUpperBound {
		return x
	}
	return x + log1pExpApprox(diff)
}

// log1pExpApprox approximates log1p(exp(-d)) for d in [0, fastLSEUpperBound)
// by linear interpolation over fastLSETable.
func log1pExpApprox(d float64) float64 {
	if d <= 0 {
		return fastLSETable[0]
	}
	step := fastLSEUpperBound / fastLSETableSize
	pos := d / step
	idx := int(pos)
	if idx >= fastLSETableSize {
		return fastLSETable[fastLSETableSize]
	}
	frac := pos - float64(idx)
	return fastLSETable[idx]*(1-frac) + fastLSETable[idx+1]*frac
}

// updateSumVec performs the dense-vector form of update_sum: if v[i] is
// absent (negInf) it is set to s, otherwise it is log-summed with s. Returns
// the new value.
func updateSumVec(mode LogSumExpMode, v []float64, i int, s float64) float64 {
	v[i] = logSumExp(mode, v[i], s)
	return v[i]
}

// newVecFilled returns a dense vector of length n filled with negInf.
func newVecFilled(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = negInf
	}
	return v
}

// addRange performs a difference-array write: v[i] += x, v[j+1] -= x. A
// subsequent prefixSum call materialises the range add. When j is the last
// index of v the v[j+1] write is skipped, so vectors of length N suffice.
func addRange(v []float64, i, j int, x float64) {
	if i > j {
		return
	}
	v[i] += x
	if j+1 < len(v) {
		v[j+1] -= x
	}
}

// prefixSum materialises a difference array in place.
func prefixSum(v []float64) {
	var running float64
	for i := range v {
		running += v[i]
		v[i] = running
	}
}
