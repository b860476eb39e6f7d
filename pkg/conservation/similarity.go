package conservation

// similarityGroups are the residue classes that count as a match when
// they share a column with the dominant residue: acidic, aromatic,
// basic, polar, and the two hydrophobic pairs.
var similarityGroups = []string{"ED", "WYHF", "RK", "QN", "VI", "ML"}

// SimilarityGroup returns the group containing aa, or "" when aa has no
// group (it then only matches itself).
func SimilarityGroup(aa byte) string {
	aa = upper(aa)
	for _, g := range similarityGroups {
		for i := 0; i < len(g); i++ {
			if g[i] == aa {
				return g
			}
		}
	}
	return ""
}

// SimpleConservation scores one alignment column by the fraction of
// sequences carrying the most frequent residue or a similar one. The
// denominator is the full column length, gapped sequences included, so
// heavily gapped columns score low by construction.
//
// Returns ok=false for a column with no standard residue.
func SimpleConservation(column string) (matchPercentage float64, conservedAA string, ok bool) {
	counts := make(map[byte]int)
	for i := 0; i < len(column); i++ {
		c := upper(column[i])
		if isStandard(c) {
			counts[c]++
		}
	}
	if len(counts) == 0 {
		return 0, "", false
	}

	var top byte
	best := -1
	for aa, n := range counts {
		if n > best || (n == best && aa < top) {
			top, best = aa, n
		}
	}

	matching := counts[top]
	if group := SimilarityGroup(top); group != "" {
		matching = 0
		for i := 0; i < len(group); i++ {
			matching += counts[group[i]]
		}
	}

	return float64(matching) / float64(len(column)) * 100, string(top), true
}

// CrossAlignmentConservation lifts SimpleConservation one level up:
// every alignment contributes the most frequent residue of its column
// as a single vote, and the votes are scored across alignments. An
// alignment whose column is all gaps votes a gap, which keeps it in the
// denominator without matching anything.
func CrossAlignmentConservation(columns []string) (matchPercentage float64, conservedAA string, ok bool) {
	votes := make([]byte, len(columns))
	for i, col := range columns {
		_, top, colOK := SimpleConservation(col)
		if !colOK {
			votes[i] = Gap
			continue
		}
		votes[i] = top[0]
	}
	return SimpleConservation(string(votes))
}
