package handler

import (
	"net/http"
	"strconv"

	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/handler/request"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/model"
)

func parseBoolFallback(v string, fallback bool) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func (svcctx *ServiceContext) GetLogoHandler(w http.ResponseWriter, r *http.Request) {

	gene := r.URL.Query().Get("gene")
	if gene == "" {
		http.Error(w, "gene parameter is required", http.StatusBadRequest)
		return
	}

	logo_request := request.LogoRequest{
		Gene: gene,
		// Gap handling is an explicit caller decision: with gaps=true
		// the gap is a 21st symbol and gapped sequences stay in the
		// denominator; the default drops gaps from the statistics.
		GapsAreSymbol: parseBoolFallback(r.URL.Query().Get("gaps"), false),
		HumanFrame:    parseBoolFallback(r.URL.Query().Get("human_frame"), false),
	}

	logos, err := model.GetLogoData(svcctx.Catalog, svcctx.Files, svcctx.Logos, logo_request)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, logos)
}

func (svcctx *ServiceContext) GetCombinedBarsHandler(w http.ResponseWriter, r *http.Request) {

	genes := splitList(r.URL.Query().Get("genes"))
	if len(genes) == 0 {
		http.Error(w, "genes parameter is required", http.StatusBadRequest)
		return
	}

	bars_request := request.CombinedBarsRequest{
		Genes:     genes,
		Reference: r.URL.Query().Get("reference"),
	}

	bars, err := model.CombinedConservationBars(svcctx.Catalog, svcctx.Files, bars_request)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, bars)
}
