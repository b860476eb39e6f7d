package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/CompGenomeLab/GPCRevolution-sub000/logger"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/handler/request"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/model"
	"go.uber.org/zap"
)

func parseFloatFallback(v string, fallback float64) float64 {
	num, err := strconv.ParseFloat(v, 64)
	if err != nil || num <= 0 {
		return fallback
	}
	return num
}

// splitList splits a comma-separated query value, dropping empties.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (svcctx *ServiceContext) GetReceptorTreeHandler(w http.ResponseWriter, r *http.Request) {

	gene := r.URL.Query().Get("gene")
	if gene == "" {
		http.Error(w, "gene parameter is required", http.StatusBadRequest)
		return
	}

	tree_request := request.TreeRequest{
		Gene:       gene,
		Width:      parseFloatFallback(r.URL.Query().Get("width"), 0),
		RowSpacing: parseFloatFallback(r.URL.Query().Get("spacing"), 0),
		Collapsed:  splitList(r.URL.Query().Get("collapsed")),
	}

	logger.Info("Running tree layout",
		zap.String("gene", gene),
		zap.String("url", r.URL.Path),
		zap.Float64("width", tree_request.Width),
		zap.Float64("spacing", tree_request.RowSpacing),
		zap.Int("collapsed", len(tree_request.Collapsed)),
	)

	result, err := model.GetReceptorTree(svcctx.Catalog, svcctx.Files, tree_request)
	if err != nil {
		logger.Error("Failed to build tree layout",
			zap.String("gene", gene),
			zap.Error(err))
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
