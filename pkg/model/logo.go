// Model for sequence-logo and conservation-bar statistics.

package model

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/CompGenomeLab/GPCRevolution-sub000/logger"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/conservation"
	gpcrdb "github.com/CompGenomeLab/GPCRevolution-sub000/pkg/db"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/handler/request"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/mapping"
	"go.uber.org/zap"
)

const logoCacheSize = 128

// LogoCache memoizes logo computations. The statistics are pure
// functions of the alignment text and the request parameters, so one
// entry per (gene, mode) pair is safe until the data files change.
type LogoCache struct {
	cache *lru.Cache[string, []conservation.PositionLogo]
}

func NewLogoCache() *LogoCache {
	cache, err := lru.New[string, []conservation.PositionLogo](logoCacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size
	}
	return &LogoCache{cache: cache}
}

func logoKey(req request.LogoRequest) string {
	return fmt.Sprintf("%s|gaps=%t|human=%t", req.Gene, req.GapsAreSymbol, req.HumanFrame)
}

// GetLogoData computes per-column logo statistics over a receptor's
// ortholog alignment. GapsAreSymbol selects the 21-symbol variant where
// gapped sequences stay in the denominator and the information ceiling
// is log2(21); the default 20-symbol variant drops gaps entirely.
func GetLogoData(cat *gpcrdb.Catalog, files *gpcrdb.DataDir, memo *LogoCache, req request.LogoRequest) ([]conservation.PositionLogo, error) {

	key := logoKey(req)
	if memo != nil {
		if logos, ok := memo.cache.Get(key); ok {
			return logos, nil
		}
	}

	aln, _, err := loadAlignment(cat, files, req.Gene)
	if err != nil {
		return nil, err
	}

	seqs := aln.Seqs
	if req.HumanFrame {
		human, ok := aln.FindByHeader(req.Gene)
		if !ok {
			return nil, fmt.Errorf("sequence not found in FASTA file for %s", req.Gene)
		}
		seqs = mapping.TrimToReferenceColumns(human.Sequence, seqs)
	}

	rows := make([]string, len(seqs))
	for i, s := range seqs {
		rows[i] = strings.ToUpper(s.Sequence)
	}
	logos := conservation.LogoColumns(rows, req.GapsAreSymbol)

	if memo != nil {
		memo.cache.Add(key, logos)
	}
	return logos, nil
}

// ConservationBar is one column of the match-percentage track: the
// dominant (group-expanded) residue and its share of the full
// alignment, gapped members included.
type ConservationBar struct {
	Position    int     `json:"position"` // 1-based residue number in the reference frame
	ConservedAA string  `json:"conservedAA"`
	Percent     float64 `json:"percent"`
}

// CombinedConservationBars scores conservation across several
// receptors' ortholog alignments in the reference receptor's residue
// frame. Each receptor's alignment votes its most frequent residue per
// column; votes are then scored across receptors, so a receptor gapped
// at a reference position drags the score down just like a gapped
// sequence does within one alignment.
func CombinedConservationBars(cat *gpcrdb.Catalog, files *gpcrdb.DataDir, req request.CombinedBarsRequest) ([]ConservationBar, error) {

	mres, err := BuildResidueMapping(cat, files, request.MappingRequest{
		Genes:     req.Genes,
		Reference: req.Reference,
	})
	if err != nil {
		return nil, err
	}

	// Human-frame ortholog columns per receptor, indexed by the
	// receptor's own residue number minus one.
	frames := make(map[string][]string)
	for _, gene := range mres.Receptors {
		aln, _, err := loadAlignment(cat, files, gene)
		if err != nil {
			logger.Warn("Ortholog alignment unavailable, receptor votes gap",
				zap.String("gene", gene), zap.Error(err))
			continue
		}
		human, ok := aln.FindByHeader(gene)
		if !ok {
			logger.Warn("No human sequence in ortholog alignment, receptor votes gap",
				zap.String("gene", gene))
			continue
		}
		trimmed := mapping.TrimToReferenceColumns(human.Sequence, aln.Seqs)
		cols := make([]string, len(trimmed[0].Sequence))
		var b strings.Builder
		for c := range cols {
			b.Reset()
			for _, s := range trimmed {
				b.WriteByte(s.Sequence[c])
			}
			cols[c] = strings.ToUpper(b.String())
		}
		frames[gene] = cols
	}

	bars := make([]ConservationBar, 0, len(mres.Rows))
	for _, row := range mres.Rows {
		columns := make([]string, 0, len(mres.Receptors))
		for _, gene := range mres.Receptors {
			num := row[gene+"_resNum"]
			if num == mapping.NoValue {
				columns = append(columns, string(conservation.Gap))
				continue
			}
			idx := atoiMust(num) - 1
			cols := frames[gene]
			if idx < 0 || idx >= len(cols) {
				columns = append(columns, string(conservation.Gap))
				continue
			}
			columns = append(columns, cols[idx])
		}
		pct, aa, ok := conservation.CrossAlignmentConservation(columns)
		if !ok {
			continue
		}
		bars = append(bars, ConservationBar{
			Position:    atoiMust(row[mres.Reference+"_resNum"]),
			ConservedAA: aa,
			Percent:     pct,
		})
	}
	return bars, nil
}

func atoiMust(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}
