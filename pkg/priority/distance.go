package priority

// Nucleotides are encoded as single bits. Every other symbol (gaps, N,
// IUPAC ambiguity codes) is encoded as 0 and is not informative.
const (
	nucA byte = 1 << iota
	nucC
	nucG
	nucT
)

var codes [256]byte

func init() {
	for _, v := range []struct {
		sym  byte
		code byte
	}{
		{'A', nucA}, {'C', nucC}, {'G', nucG}, {'T', nucT}, {'U', nucT},
	} {
		codes[v.sym] = v.code
		codes[v.sym+'a'-'A'] = v.code
	}
}

// encode converts a sequence to nucleotide bit codes.
func encode(seq []byte) []byte {
	res := make([]byte, len(seq))
	for i, b := range seq {
		res[i] = codes[b]
	}
	return res
}

// pDistance returns the proportion of mismatches among positions that are
// informative in both sequences. The second result is false when the
// sequences share no informative position.
func pDistance(a, b []byte) (float64, bool) {
	var informative, mismatches int
	for i := range a {
		x, y := a[i], b[i]
		if x == 0 || y == 0 {
			continue
		}
		informative++
		if x != y {
			mismatches++
		}
	}
	if informative == 0 {
		return 0, false
	}
	return float64(mismatches) / float64(informative), true
}
