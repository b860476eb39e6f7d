package conservation

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// StandardAminoAcids is the 20-letter alphabet counted by the logo
// statistics. Anything else, gap included, is not a countable residue.
const StandardAminoAcids = "ACDEFGHIKLMNPQRSTVWY"

const Gap = '-'

// PositionLogo aggregates one alignment column for sequence-logo
// rendering.
type PositionLogo struct {
	Column             int                `json:"column"`
	ResidueCounts      map[string]int     `json:"residueCounts"`
	TotalSequences     int                `json:"totalSequences"`
	InformationContent float64            `json:"informationContent"` // bits
	LetterHeights      map[string]float64 `json:"letterHeights"`
}

func isStandard(c byte) bool {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	for i := 0; i < len(StandardAminoAcids); i++ {
		if StandardAminoAcids[i] == c {
			return true
		}
	}
	return false
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// PositionLogoData computes the logo statistics for one column. The
// column string holds one character per aligned sequence.
//
// With gapsAreSymbol false, frequencies are taken over the non-gap
// residues and the information ceiling is log2(20). With it true, the
// gap is modeled as a 21st symbol: gapped sequences stay in the
// denominator, the gap fraction enters the entropy, and the ceiling is
// log2(21). The two modes are both legitimate readings of column
// conservation; callers must pick one and say so.
//
// Returns ok=false when the column holds no standard residue at all.
func PositionLogoData(column string, col int, gapsAreSymbol bool) (PositionLogo, bool) {
	counts := make(map[string]int)
	gaps := 0
	nonGap := 0
	for i := 0; i < len(column); i++ {
		c := upper(column[i])
		if c == Gap {
			gaps++
			continue
		}
		if !isStandard(c) {
			continue
		}
		counts[string(c)]++
		nonGap++
	}
	if nonGap == 0 {
		return PositionLogo{}, false
	}

	total := nonGap
	maxBits := math.Log2(float64(len(StandardAminoAcids)))
	if gapsAreSymbol {
		total = nonGap + gaps
		maxBits = math.Log2(float64(len(StandardAminoAcids)) + 1)
	}

	freqs := make([]float64, 0, len(counts)+1)
	for _, n := range counts {
		freqs = append(freqs, float64(n)/float64(total))
	}
	if gapsAreSymbol && gaps > 0 {
		freqs = append(freqs, float64(gaps)/float64(total))
	}

	// stat.Entropy works in nats; logo heights are defined in bits.
	entropy := stat.Entropy(freqs) / math.Ln2
	info := maxBits - entropy
	if info < 0 {
		info = 0
	}

	heights := make(map[string]float64, len(counts))
	for aa, n := range counts {
		heights[aa] = float64(n) / float64(total) * info
	}
	return PositionLogo{
		Column:             col,
		ResidueCounts:      counts,
		TotalSequences:     total,
		InformationContent: info,
		LetterHeights:      heights,
	}, true
}

// LogoColumns computes logo statistics for every column of an aligned
// sequence set, skipping all-gap columns.
func LogoColumns(seqs []string, gapsAreSymbol bool) []PositionLogo {
	if len(seqs) == 0 {
		return nil
	}
	cols := len(seqs[0])
	out := make([]PositionLogo, 0, cols)
	column := make([]byte, len(seqs))
	for col := 0; col < cols; col++ {
		for i, s := range seqs {
			column[i] = s[col]
		}
		if logo, ok := PositionLogoData(string(column), col, gapsAreSymbol); ok {
			out = append(out, logo)
		}
	}
	return out
}
