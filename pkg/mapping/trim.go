// Package mapping aligns residue numbering between receptors: gap-aware
// column trimming and the cross-receptor residue correspondence table.
package mapping

import (
	"strings"

	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/fasta"
)

const gap = '-'

// NonGapColumns lists the column indices where the reference sequence
// carries a residue.
func NonGapColumns(reference string) []int {
	cols := make([]int, 0, len(reference))
	for i := 0; i < len(reference); i++ {
		if reference[i] != gap {
			cols = append(cols, i)
		}
	}
	return cols
}

// TrimToReferenceColumns re-derives every sequence of the set over the
// columns where the reference is non-gap. Positions past the end of a
// short member become gaps. Output length always equals the number of
// non-gap reference positions, and reapplying the trim with the trimmed
// reference is a no-op.
func TrimToReferenceColumns(reference string, set []fasta.Sequence) []fasta.Sequence {
	cols := NonGapColumns(reference)
	out := make([]fasta.Sequence, len(set))
	var b strings.Builder
	for i, s := range set {
		b.Reset()
		b.Grow(len(cols))
		for _, c := range cols {
			if c < len(s.Sequence) {
				b.WriteByte(s.Sequence[c])
			} else {
				b.WriteByte(gap)
			}
		}
		out[i] = fasta.Sequence{Header: s.Header, Sequence: b.String()}
	}
	return out
}
