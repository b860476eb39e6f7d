package mapping

import (
	"reflect"
	"testing"

	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/fasta"
)

func TestNonGapColumns(t *testing.T) {

	got := NonGapColumns("A-BC-")
	if !reflect.DeepEqual(got, []int{0, 2, 3}) {
		t.Errorf("NonGapColumns = %v, want [0 2 3]", got)
	}
}

func TestTrimToReferenceColumns(t *testing.T) {

	ref := "M--KV-A"
	set := []fasta.Sequence{
		{Header: "human", Sequence: "M--KV-A"},
		{Header: "mouse", Sequence: "MLLKVPA"},
		{Header: "frog", Sequence: "-LL-VP-"},
	}

	got := TrimToReferenceColumns(ref, set)

	want := []fasta.Sequence{
		{Header: "human", Sequence: "MKVA"},
		{Header: "mouse", Sequence: "MKVA"},
		{Header: "frog", Sequence: "--V-"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("trim = %+v, want %+v", got, want)
	}

	// Every member ends up exactly as long as the reference's residue count.
	for _, s := range got {
		if len(s.Sequence) != 4 {
			t.Errorf("%s trimmed to %d columns, want 4", s.Header, len(s.Sequence))
		}
	}
}

func TestTrimIdempotent(t *testing.T) {

	ref := "A-C-E"
	set := []fasta.Sequence{
		{Header: "r", Sequence: ref},
		{Header: "s", Sequence: "ABCDE"},
	}
	once := TrimToReferenceColumns(ref, set)
	twice := TrimToReferenceColumns(once[0].Sequence, once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second trim changed the set: %+v vs %+v", once, twice)
	}
}

func TestTrimShortMemberPadsGaps(t *testing.T) {

	got := TrimToReferenceColumns("AB-CD", []fasta.Sequence{
		{Header: "short", Sequence: "XY"},
	})
	if got[0].Sequence != "XY--" {
		t.Errorf("short member = %q, want \"XY--\"", got[0].Sequence)
	}
}
