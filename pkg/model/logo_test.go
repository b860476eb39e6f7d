package model

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/handler/request"
)

func TestGetLogoData(t *testing.T) {

	cat, files := fixture(t)

	logos, err := GetLogoData(cat, files, nil, request.LogoRequest{Gene: "ADRB2"})
	if err != nil {
		t.Fatalf("GetLogoData failed: %v", err)
	}
	// Alignment "M-KVL"/"MAKVL"/"MAKV-": five columns, all with residues.
	if len(logos) != 5 {
		t.Fatalf("logo count = %d, want 5", len(logos))
	}
	// Column 0 is all M: information at the 20-symbol ceiling.
	if math.Abs(logos[0].InformationContent-math.Log2(20)) > 1e-9 {
		t.Errorf("column 0 information = %v", logos[0].InformationContent)
	}
	// Column 1 drops the human gap in the default mode.
	if logos[1].TotalSequences != 2 {
		t.Errorf("column 1 total = %d, want 2", logos[1].TotalSequences)
	}

	gappy, err := GetLogoData(cat, files, nil, request.LogoRequest{Gene: "ADRB2", GapsAreSymbol: true})
	if err != nil {
		t.Fatalf("GetLogoData with gaps failed: %v", err)
	}
	if gappy[1].TotalSequences != 3 {
		t.Errorf("gap-mode column 1 total = %d, want 3", gappy[1].TotalSequences)
	}
}

func TestGetLogoDataHumanFrame(t *testing.T) {

	cat, files := fixture(t)

	logos, err := GetLogoData(cat, files, nil, request.LogoRequest{Gene: "ADRB2", HumanFrame: true})
	if err != nil {
		t.Fatalf("GetLogoData failed: %v", err)
	}
	// Human "M-KVL" has four residues, so four columns remain.
	if len(logos) != 4 {
		t.Errorf("human-frame logo count = %d, want 4", len(logos))
	}
}

func TestLogoCacheMemoizes(t *testing.T) {

	cat, files := fixture(t)
	memo := NewLogoCache()
	req := request.LogoRequest{Gene: "ADRB2"}

	first, err := GetLogoData(cat, files, memo, req)
	if err != nil {
		t.Fatalf("GetLogoData failed: %v", err)
	}

	// Remove the backing file: a second call must come from the cache.
	if err := os.Remove(filepath.Join(files.Dir, "alignments/ADRB2_orthologs.fasta")); err != nil {
		t.Fatal(err)
	}
	second, err := GetLogoData(cat, files, memo, req)
	if err != nil {
		t.Fatalf("cached GetLogoData failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached result differs")
	}

	// A different mode is a different key and must miss, hitting the
	// removed file.
	if _, err := GetLogoData(cat, files, memo, request.LogoRequest{Gene: "ADRB2", GapsAreSymbol: true}); err == nil {
		t.Error("distinct mode should not share a cache entry")
	}
}
