// Model for the cross-receptor residue mapping table.

package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CompGenomeLab/GPCRevolution-sub000/logger"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/conservation"
	gpcrdb "github.com/CompGenomeLab/GPCRevolution-sub000/pkg/db"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/handler/request"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/mapping"
	"go.uber.org/zap"
)

var ErrClassMismatch = errors.New("selected receptors span multiple classes")

// MappingResult is the residue correspondence table for a receptor
// selection, plus its TSV rendering for download.
type MappingResult struct {
	Receptors []string      `json:"receptors"`
	Reference string        `json:"reference"`
	Rows      []mapping.Row `json:"rows"`
	TSV       string        `json:"-"`
}

// BuildResidueMapping maps every selected receptor's residue numbering
// onto every other's through the class human-paralog alignment.
//
// Class membership is checked before any file is read; mixing classes
// is a user error, not a data problem. A receptor whose sequence or
// conservation table cannot be loaded is skipped with a warning unless
// it is the reference, which is essential to the whole table.
func BuildResidueMapping(cat *gpcrdb.Catalog, files *gpcrdb.DataDir, req request.MappingRequest) (*MappingResult, error) {

	if len(req.Genes) == 0 {
		return nil, fmt.Errorf("no receptors selected")
	}
	reference := req.Reference
	if reference == "" {
		reference = req.Genes[0]
	}

	allow, err := mapping.ParseResidueList(req.Residues)
	if err != nil {
		return nil, err
	}

	// Catalog lookups and the class check come before any file I/O.
	receptors := make([]*gpcrdb.Receptor, 0, len(req.Genes))
	class := ""
	for _, gene := range req.Genes {
		r, err := cat.ByGene(gene)
		if err != nil {
			return nil, err
		}
		if class == "" {
			class = r.Class
		} else if r.Class != class {
			return nil, fmt.Errorf("%w: %s is class %s, expected %s",
				ErrClassMismatch, r.GeneName, r.Class, class)
		}
		receptors = append(receptors, r)
	}

	text, err := files.ClassAlignmentText(class)
	if err != nil {
		return nil, err
	}
	aln, err := alignmentFromText(text, "class "+class)
	if err != nil {
		return nil, err
	}

	var seqs []mapping.ReceptorSequence
	cons := make(map[string]conservation.Table)
	for _, r := range receptors {
		seq, ok := aln.FindByHeader(r.GeneName)
		if !ok {
			if r.GeneName == reference {
				return nil, fmt.Errorf("sequence not found in FASTA file for %s", r.GeneName)
			}
			logger.Warn("Receptor missing from class alignment, skipping",
				zap.String("gene", r.GeneName), zap.String("class", class))
			continue
		}
		seqs = append(seqs, mapping.ReceptorSequence{Name: r.GeneName, Sequence: seq.Sequence})

		table, err := loadConservation(files, r)
		if err != nil {
			logger.Warn("No conservation table for receptor",
				zap.String("gene", r.GeneName), zap.Error(err))
			table = conservation.Table{}
		}
		cons[r.GeneName] = table
	}

	rows, err := mapping.MapResidues(seqs, cons, reference, allow)
	if err != nil {
		return nil, err
	}

	var tsv strings.Builder
	if err := mapping.WriteTSV(&tsv, seqs, reference, rows); err != nil {
		return nil, err
	}

	names := make([]string, len(seqs))
	for i, s := range seqs {
		names[i] = s.Name
	}
	return &MappingResult{
		Receptors: names,
		Reference: reference,
		Rows:      rows,
		TSV:       tsv.String(),
	}, nil
}

// GetConservationTable loads and parses one receptor's conservation
// file.
func GetConservationTable(cat *gpcrdb.Catalog, files *gpcrdb.DataDir, gene string) (conservation.Table, error) {
	receptor, err := cat.ByGene(gene)
	if err != nil {
		return nil, err
	}
	return loadConservation(files, receptor)
}

func loadConservation(files *gpcrdb.DataDir, r *gpcrdb.Receptor) (conservation.Table, error) {
	text, err := files.ConservationText(r)
	if err != nil {
		return nil, err
	}
	table, err := conservation.ParseTable(text)
	if err != nil {
		return nil, fmt.Errorf("conservation for %s: %w", r.GeneName, err)
	}
	return table, nil
}
