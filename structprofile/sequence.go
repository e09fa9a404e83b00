package structprofile

import "strings"

// Turn is the minimum hairpin loop length: a pair (i, j) can only close a
// hairpin when j - i - 1 >= Turn.
const Turn = 3

// MaxLoop is the maximum total unpaired length admitted into a bulge or
// interior loop, and the largest hairpin loop size that gets a tabulated
// (rather than extrapolated) energy.
const MaxLoop = 30

// MultiMaxUnpaired bounds the run of unpaired bases the DP will consider
// inside a multiloop region in a single step.
const MultiMaxUnpaired = 30

// nbases is the number of distinguishable base codes, including the
// "doesn't pair" code 0.
const nbases = 5

// encodeBase maps a FASTA letter to the spec's integer code: A=1, C=2, G=3,
// U/T=4, anything else (including N) = 0 and will not pair.
func encodeBase(b byte) int {
	switch b {
	case 'A', 'a':
		return 1
	case 'C', 'c':
		return 2
	case 'G', 'g':
		return 3
	case 'U', 'u', 'T', 't':
		return 4
	default:
		return 0
	}
}

// basePairTable[a][b] is nonzero when base codes a and b are Watson-Crick or
// wobble compatible, mirroring the reference implementation's BP_pair table:
//
//	    @  A  C  G  U
//	@ { 0, 0, 0, 0, 0},
//	A { 0, 0, 0, 0, 5},
//	C { 0, 0, 0, 1, 0},
//	G { 0, 0, 2, 0, 3},
//	U { 0, 6, 0, 4, 0}
var basePairTable = [nbases][nbases]int{
	{0, 0, 0, 0, 0},
	{0, 0, 0, 0, 5},
	{0, 0, 0, 1, 0},
	{0, 0, 2, 0, 3},
	{0, 6, 0, 4, 0},
}

// canPair reports whether encoded bases a and b can form a pair.
func canPair(a, b int) bool {
	return basePairTable[a][b] > 0
}

// EncodedSequence is the sequence-encoder component: the integer-coded
// bases, the original letters (needed only to look up tri/tetra/hexa-loop
// motifs by substring), and a next-pair index used to skip intervals with no
// compatible partner.
type EncodedSequence struct {
	Letters string
	Codes   []int
	// nextPair[b][j] is the smallest index >= j at which a base compatible
	// with code b occurs, or len(Codes) if none does.
	nextPair [nbases][]int
}

// EncodeSequence builds the encoded sequence and its next-pair index for a
// raw nucleotide string.
func EncodeSequence(seq string) *EncodedSequence {
	n := len(seq)
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		codes[i] = encodeBase(seq[i])
	}
	es := &EncodedSequence{Letters: strings.ToUpper(seq), Codes: codes}
	for b := 0; b < nbases; b++ {
		next := make([]int, n+1)
		next[n] = n
		for i := n - 1; i >= 0; i-- {
			next[i] = next[i+1]
			if basePairTable[codes[i]][b] > 0 {
				next[i] = i
			}
		}
		es.nextPair[b] = next
	}
	return es
}

// Len returns the sequence length.
func (es *EncodedSequence) Len() int {
	return len(es.Codes)
}

// CanPair reports whether positions i and j (0-based, into Codes) can pair.
func (es *EncodedSequence) CanPair(i, j int) bool {
	if i < 0 || j < 0 || i >= len(es.Codes) || j >= len(es.Codes) {
		return false
	}
	return canPair(es.Codes[i], es.Codes[j])
}

// NextPair returns the smallest index >= from at which a base compatible
// with the base at partnerPos occurs, or Len() if none does.
func (es *EncodedSequence) NextPair(partnerPos, from int) int {
	b := es.Codes[partnerPos]
	next := es.nextPair[b]
	if from < 0 {
		from = 0
	}
	if from >= len(next) {
		return es.Len()
	}
	return next[from]
}
