package structprofile

import "log"

// Config holds the run-time knobs named in the configuration contract.
type Config struct {
	// BeamSize caps each sparse column to its top-BeamSize entries by
	// bias-adjusted score. 0 disables pruning entirely.
	BeamSize int
	// EnergyModelSet selects which nearest-neighbour parameter generation
	// backs the default EnergyModel.
	EnergyModelSet EnergyParamsSet
	// Temperature is the folding temperature in degrees Celsius.
	Temperature float64
	// NormalizeProfiles renormalises each column to sum to 1. Defaults true
	// in NewConfig; only ever turned off for debugging raw DP mass.
	NormalizeProfiles bool
	// NormalizeWarnEps is the drift tolerance past which a diagnostic is
	// logged before renormalising (renormalisation still happens).
	NormalizeWarnEps float64
	// LogSumExpMode selects the legacy or tabulated log-sum-exp kernel.
	LogSumExpMode LogSumExpMode
	// LegacyMultibranchLabel, when true, makes Profile.WriteTo emit
	// "Multibranch" instead of "Multiloop" as the fifth track's header.
	LegacyMultibranchLabel bool
}

// NewConfig returns a Config with the spec's defaults: Turner2004 at 37C,
// normalisation on with a 1e-3 warning epsilon, legacy log-sum-exp.
func NewConfig() Config {
	return Config{
		BeamSize:          100,
		EnergyModelSet:    Turner2004,
		Temperature:       37.0,
		NormalizeProfiles: true,
		NormalizeWarnEps:  1e-3,
		LogSumExpMode:     LogSumExpLegacy,
	}
}

// Engine owns every DP table for a single sequence and is the unit of
// concurrency: one Engine must never be shared between goroutines running
// Run concurrently, but many Engines may share one EnergyModel since the
// parameter tables it wraps are read-only.
type Engine struct {
	Config Config
	Model  EnergyModel

	seq *EncodedSequence
	n   int

	alphaS, alphaSE, alphaM, alphaMB, alphaM1, alphaM2 sparseTable
	betaS, betaSE, betaM, betaMB, betaM1, betaM2        sparseTable
	alphaO, betaO                                       []float64

	// alphaSEHairpin tracks the hairpin-only portion of alphaSE's mass.
	// alphaSE itself stays the union used to drive the S recursion and mixes
	// a closing pair's hairpin probability with its bulge/interior-loop
	// probability (both are valid structures for the same outer pair); this
	// exists so the profile assembler can read off the hairpin share alone.
	// Bulge and interior-loop mass isn't tracked this way: it's smeared only
	// over the unpaired gap positions, which requires the (p, i, j, q)
	// quadruple at assembly time, not just the outer cell's aggregate score.
	alphaSEHairpin sparseTable

	Profile Profile

	// LogZ is the log partition function, alpha_O[N-1] after Run.
	LogZ float64
}

// Profile is the six-track structural profile the assembler produces.
type Profile struct {
	Bulge, Exterior, Hairpin, Internal, Multiloop, Stem []float64
}

// NewEngine constructs an Engine with the given configuration. If model is
// nil, the default NearestNeighbourModel for cfg.EnergyModelSet and
// cfg.Temperature is built.
func NewEngine(cfg Config, model EnergyModel) *Engine {
	if model == nil {
		model = NewNearestNeighbourModel(cfg.EnergyModelSet, cfg.Temperature)
	}
	return &Engine{Config: cfg, Model: model}
}

// Run computes the structural profile for seq. It is safe to call Run
// repeatedly on the same Engine; each call rebuilds every table from
// scratch, as the concurrency model requires no state to persist between
// sequences.
func (e *Engine) Run(seq string) error {
	e.seq = EncodeSequence(seq)
	e.n = e.seq.Len()

	if e.n <= Turn {
		e.allocate()
		e.Profile = Profile{
			Bulge:     newZeroVec(e.n),
			Exterior:  newZeroVec(e.n),
			Hairpin:   newZeroVec(e.n),
			Internal:  newZeroVec(e.n),
			Multiloop: newZeroVec(e.n),
			Stem:      newZeroVec(e.n),
		}
		return ErrTooShortSequence
	}

	e.allocate()
	e.runInside()
	e.LogZ = e.alphaO[e.n-1]
	e.runOutside()
	e.assembleProfile()
	return nil
}

func newZeroVec(n int) []float64 {
	return make([]float64, n)
}

func (e *Engine) allocate() {
	n := e.n
	e.alphaS = newSparseTable(n)
	e.alphaSE = newSparseTable(n)
	e.alphaM = newSparseTable(n)
	e.alphaMB = newSparseTable(n)
	e.alphaM1 = newSparseTable(n)
	e.alphaM2 = newSparseTable(n)

	e.betaS = newSparseTable(n)
	e.betaSE = newSparseTable(n)
	e.betaM = newSparseTable(n)
	e.betaMB = newSparseTable(n)
	e.betaM1 = newSparseTable(n)
	e.betaM2 = newSparseTable(n)

	e.alphaO = newVecFilled(n)
	e.betaO = newVecFilled(n)

	e.alphaSEHairpin = newSparseTable(n)
}

// logDrift is the NumericalDrift diagnostic: never fatal, always logged,
// reported per-position so a long sequence's drift can be localised.
func logDrift(position int, sum float64) {
	log.Printf("structprofile: warn: prob_sum[%d]=%v", position, sum)
}
