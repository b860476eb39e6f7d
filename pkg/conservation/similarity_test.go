package conservation

import (
	"math"
	"testing"
)

func TestSimpleConservationAcidicGroup(t *testing.T) {

	// 6 E, 2 D (same acidic group), 2 K: E dominates, the group match
	// count is 8, and the denominator is the full column.
	pct, aa, ok := SimpleConservation("EEEEEEDDKK")
	if !ok {
		t.Fatal("column skipped")
	}
	if aa != "E" {
		t.Errorf("conserved AA = %s, want E", aa)
	}
	if pct != 80 {
		t.Errorf("match percentage = %v, want 80", pct)
	}
}

func TestSimpleConservationGapsInDenominator(t *testing.T) {

	// Gaps never match but still count in the denominator, so a gappy
	// column scores low even when its residues agree.
	pct, _, ok := SimpleConservation("LL--------")
	if !ok {
		t.Fatal("column skipped")
	}
	if pct != 20 {
		t.Errorf("match percentage = %v, want 20", pct)
	}
}

func TestSimpleConservationUngroupedResidue(t *testing.T) {

	// G has no similarity group and only matches itself.
	pct, aa, _ := SimpleConservation("GGGA")
	if aa != "G" || pct != 75 {
		t.Errorf("got %s at %v, want G at 75", aa, pct)
	}
}

func TestSimpleConservationEmptyColumn(t *testing.T) {

	if _, _, ok := SimpleConservation("----"); ok {
		t.Error("all-gap column should report no conservation")
	}
}

func TestSimilarityGroup(t *testing.T) {

	cases := map[byte]string{
		'E': "ED", 'D': "ED",
		'W': "WYHF", 'h': "WYHF",
		'R': "RK",
		'Q': "QN",
		'V': "VI",
		'M': "ML",
		'G': "",
		'-': "",
	}
	for aa, want := range cases {
		if got := SimilarityGroup(aa); got != want {
			t.Errorf("SimilarityGroup(%c) = %q, want %q", aa, got, want)
		}
	}
}

func TestCrossAlignmentConservation(t *testing.T) {

	// Three alignments vote E, D, K: acidic E+D agree, K does not.
	columns := []string{
		"EEEE", // votes E
		"DDDK", // votes D
		"KKKE", // votes K
	}
	pct, aa, ok := CrossAlignmentConservation(columns)
	if !ok {
		t.Fatal("no votes")
	}
	if aa != "D" && aa != "E" {
		t.Errorf("conserved AA = %s, want an acidic residue", aa)
	}
	want := 2.0 / 3.0 * 100
	if math.Abs(pct-want) > 1e-9 {
		t.Errorf("match percentage = %v, want %v", pct, want)
	}
}

func TestCrossAlignmentGapVote(t *testing.T) {

	// An all-gap alignment votes a gap: in the denominator, never a match.
	pct, aa, ok := CrossAlignmentConservation([]string{"LLLL", "LLML", "----"})
	if !ok {
		t.Fatal("no votes")
	}
	if aa != "L" {
		t.Errorf("conserved AA = %s, want L", aa)
	}
	want := 2.0 / 3.0 * 100
	if math.Abs(pct-want) > 1e-9 {
		t.Errorf("match percentage = %v, want %v", pct, want)
	}
}
