package mapping

import (
	"reflect"
	"strings"
	"testing"

	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/conservation"
)

func TestMapResiduesCounters(t *testing.T) {

	// Reference "A-BC" is non-gap at columns 0, 2, 3; target "DE-F"
	// numbers its own residues 1,2,-,3 regardless of the reference.
	seqs := []ReceptorSequence{
		{Name: "REF", Sequence: "A-BC"},
		{Name: "TGT", Sequence: "DE-F"},
	}

	rows, err := MapResidues(seqs, nil, "REF", nil)
	if err != nil {
		t.Fatalf("MapResidues failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3 (reference gap column dropped)", len(rows))
	}

	refNums := []string{rows[0]["REF_resNum"], rows[1]["REF_resNum"], rows[2]["REF_resNum"]}
	if !reflect.DeepEqual(refNums, []string{"1", "2", "3"}) {
		t.Errorf("reference numbering = %v, want [1 2 3]", refNums)
	}

	// Column 1 was dropped, but the target's counter still advanced
	// through it: its residues come out as 1, -, 3.
	tgtNums := []string{rows[0]["TGT_resNum"], rows[1]["TGT_resNum"], rows[2]["TGT_resNum"]}
	if !reflect.DeepEqual(tgtNums, []string{"1", "-", "3"}) {
		t.Errorf("target numbering = %v, want [1 - 3]", tgtNums)
	}
	if rows[2]["TGT_AA"] != "F" {
		t.Errorf("target AA at last row = %s, want F", rows[2]["TGT_AA"])
	}
}

func TestMapResiduesMonotonicNumbering(t *testing.T) {

	seqs := []ReceptorSequence{
		{Name: "A", Sequence: "MK-VL-PA"},
		{Name: "B", Sequence: "M-RV-LPA"},
	}
	rows, err := MapResidues(seqs, nil, "A", nil)
	if err != nil {
		t.Fatalf("MapResidues failed: %v", err)
	}
	for _, name := range []string{"A", "B"} {
		last := 0
		for _, row := range rows {
			v := row[name+"_resNum"]
			if v == NoValue {
				continue
			}
			n := 0
			for i := 0; i < len(v); i++ {
				n = n*10 + int(v[i]-'0')
			}
			if n <= last {
				t.Errorf("%s numbering not increasing: %d after %d", name, n, last)
			}
			last = n
		}
	}
}

func TestMapResiduesConservationLookup(t *testing.T) {

	seqs := []ReceptorSequence{
		{Name: "ADRB2", Sequence: "MK"},
		{Name: "ADRB1", Sequence: "M-"},
	}
	cons := map[string]conservation.Table{
		"ADRB2": {
			"1": {Conservation: 97.5, ConservedAA: "M", Region: "N-term", GPCRdb: "-"},
			"2": {Conservation: 40, ConservedAA: "K", Region: "TM1", GPCRdb: "1.30x30"},
		},
	}

	rows, err := MapResidues(seqs, cons, "ADRB2", nil)
	if err != nil {
		t.Fatalf("MapResidues failed: %v", err)
	}
	if rows[0]["ADRB2_Conservation"] != "97.5" || rows[0]["ADRB2_region"] != "N-term" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1]["ADRB2_gpcrdb"] != "1.30x30" {
		t.Errorf("row 1 gpcrdb = %s", rows[1]["ADRB2_gpcrdb"])
	}
	// No table for ADRB1: sentinel, not an error.
	if rows[0]["ADRB1_Conservation"] != NoValue {
		t.Errorf("missing table should give -, got %s", rows[0]["ADRB1_Conservation"])
	}
	// ADRB1 gapped at column 1.
	if rows[1]["ADRB1_resNum"] != NoValue || rows[1]["ADRB1_AA"] != NoValue {
		t.Errorf("gap fields = %v", rows[1])
	}
}

func TestMapResiduesAllowlist(t *testing.T) {

	seqs := []ReceptorSequence{{Name: "R", Sequence: "MKVL"}}
	allow, err := ParseResidueList(" 2, 4 ")
	if err != nil {
		t.Fatalf("ParseResidueList failed: %v", err)
	}

	rows, err := MapResidues(seqs, nil, "R", allow)
	if err != nil {
		t.Fatalf("MapResidues failed: %v", err)
	}
	if len(rows) != 2 || rows[0]["R_resNum"] != "2" || rows[1]["R_resNum"] != "4" {
		t.Errorf("allowlisted rows = %v", rows)
	}
}

func TestParseResidueList(t *testing.T) {

	if allow, err := ParseResidueList(""); err != nil || allow != nil {
		t.Errorf("empty list = %v, %v", allow, err)
	}
	if _, err := ParseResidueList("1,two,3"); err == nil {
		t.Error("non-numeric residue should fail")
	}
	if _, err := ParseResidueList("0"); err == nil {
		t.Error("non-positive residue should fail")
	}
}

func TestMapResiduesUnknownReference(t *testing.T) {

	_, err := MapResidues([]ReceptorSequence{{Name: "A", Sequence: "M"}}, nil, "B", nil)
	if err == nil {
		t.Error("unknown reference should fail")
	}
}

func TestWriteTSV(t *testing.T) {

	seqs := []ReceptorSequence{
		{Name: "REF", Sequence: "A-BC"},
		{Name: "TGT", Sequence: "DE-F"},
	}
	rows, err := MapResidues(seqs, nil, "REF", nil)
	if err != nil {
		t.Fatalf("MapResidues failed: %v", err)
	}

	var b strings.Builder
	if err := WriteTSV(&b, seqs, "REF", rows); err != nil {
		t.Fatalf("WriteTSV failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("line count = %d, want header + 3 rows", len(lines))
	}

	header := strings.Split(lines[0], "\t")
	want := []string{
		"REF_resNum", "REF_AA", "REF_Conservation", "REF_Conserved_AA",
		"REF_region", "REF_gpcrdb",
		"TGT_resNum", "TGT_AA", "TGT_Conservation", "TGT_Conserved_AA",
	}
	if !reflect.DeepEqual(header, want) {
		t.Errorf("header = %v, want %v", header, want)
	}

	row1 := strings.Split(lines[2], "\t")
	if row1[0] != "2" || row1[6] != "-" {
		t.Errorf("second data row = %v", row1)
	}
}
