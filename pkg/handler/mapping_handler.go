package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/CompGenomeLab/GPCRevolution-sub000/logger"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/handler/request"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/model"
	"go.uber.org/zap"
)

// GetResidueMappingHandler serves the cross-receptor residue mapping
// table as a TSV download.
func (svcctx *ServiceContext) GetResidueMappingHandler(w http.ResponseWriter, r *http.Request) {

	genes := splitList(r.URL.Query().Get("genes"))
	if len(genes) == 0 {
		http.Error(w, "genes parameter is required", http.StatusBadRequest)
		return
	}

	mapping_request := request.MappingRequest{
		Genes:     genes,
		Reference: r.URL.Query().Get("reference"),
		Residues:  r.URL.Query().Get("residues"),
	}

	logger.Info("Running residue mapping",
		zap.Strings("genes", genes),
		zap.String("reference", mapping_request.Reference),
		zap.String("residues", mapping_request.Residues),
	)

	result, err := model.BuildResidueMapping(svcctx.Catalog, svcctx.Files, mapping_request)
	if err != nil {
		logger.Error("Failed to build residue mapping", zap.Error(err))
		writeError(w, statusForError(err), err)
		return
	}

	filename := "residue_mapping_" + strings.Join(result.Receptors, "_") + ".tsv"
	w.Header().Set("Content-Type", "text/tab-separated-values")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	fmt.Fprint(w, result.TSV)
}

// GetAlignmentHandler serves a receptor's ortholog alignment as a FASTA
// download, optionally trimmed to the human sequence's columns.
func (svcctx *ServiceContext) GetAlignmentHandler(w http.ResponseWriter, r *http.Request) {

	gene := r.URL.Query().Get("gene")
	if gene == "" {
		http.Error(w, "gene parameter is required", http.StatusBadRequest)
		return
	}

	alignment_request := request.AlignmentRequest{
		Gene:        gene,
		TrimToHuman: parseBoolFallback(r.URL.Query().Get("trim"), false),
	}

	text, err := model.GetOrthologAlignment(svcctx.Catalog, svcctx.Files, alignment_request)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", gene+"_orthologs.fasta"))
	fmt.Fprint(w, text)
}
