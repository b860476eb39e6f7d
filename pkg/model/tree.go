// Model for receptor trees, alignments, and conservation data.

package model

import (
	"fmt"

	gpcrdb "github.com/CompGenomeLab/GPCRevolution-sub000/pkg/db"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/fasta"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/handler/request"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/mapping"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/newick"
)

const (
	defaultTreeWidth  = 600.0
	defaultRowSpacing = 18.0
)

// TreeResult bundles the parsed tree with one layout of it.
type TreeResult struct {
	Receptor *gpcrdb.Receptor   `json:"receptor"`
	Root     *newick.Node       `json:"root"`
	Layout   *newick.TreeLayout `json:"layout"`
}

// GetReceptorTree loads a receptor's Newick file, parses it, and lays
// it out with the requested geometry. A malformed tree file is a hard
// error; there is nothing sensible to draw from a half-parsed tree.
func GetReceptorTree(cat *gpcrdb.Catalog, files *gpcrdb.DataDir, req request.TreeRequest) (*TreeResult, error) {

	receptor, err := cat.ByGene(req.Gene)
	if err != nil {
		return nil, err
	}

	text, err := files.TreeText(receptor)
	if err != nil {
		return nil, err
	}

	root, err := newick.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("tree for %s: %w", req.Gene, err)
	}

	opts := newick.LayoutOptions{Width: req.Width, RowSpacing: req.RowSpacing}
	if opts.Width <= 0 {
		opts.Width = defaultTreeWidth
	}
	if opts.RowSpacing <= 0 {
		opts.RowSpacing = defaultRowSpacing
	}
	collapsed := make(map[string]bool, len(req.Collapsed))
	for _, id := range req.Collapsed {
		collapsed[id] = true
	}

	return &TreeResult{
		Receptor: receptor,
		Root:     root,
		Layout:   newick.Layout(root, opts, collapsed),
	}, nil
}

// GetOrthologAlignment returns a receptor's ortholog alignment as FASTA
// text, optionally re-derived over the columns where the receptor's
// human sequence is non-gap.
func GetOrthologAlignment(cat *gpcrdb.Catalog, files *gpcrdb.DataDir, req request.AlignmentRequest) (string, error) {

	aln, _, err := loadAlignment(cat, files, req.Gene)
	if err != nil {
		return "", err
	}

	seqs := aln.Seqs
	if req.TrimToHuman {
		human, ok := aln.FindByHeader(req.Gene)
		if !ok {
			return "", fmt.Errorf("sequence not found in FASTA file for %s", req.Gene)
		}
		seqs = mapping.TrimToReferenceColumns(human.Sequence, seqs)
	}
	return fasta.Format(seqs), nil
}

// loadAlignment reads and validates one receptor's ortholog alignment.
func loadAlignment(cat *gpcrdb.Catalog, files *gpcrdb.DataDir, gene string) (*fasta.Alignment, *gpcrdb.Receptor, error) {
	receptor, err := cat.ByGene(gene)
	if err != nil {
		return nil, nil, err
	}
	text, err := files.AlignmentText(receptor)
	if err != nil {
		return nil, nil, err
	}
	aln, err := alignmentFromText(text, gene)
	if err != nil {
		return nil, nil, err
	}
	return aln, receptor, nil
}

func alignmentFromText(text, label string) (*fasta.Alignment, error) {
	aln, err := fasta.NewAlignment(fasta.Parse(text))
	if err != nil {
		return nil, fmt.Errorf("alignment for %s: %w", label, err)
	}
	return aln, nil
}
