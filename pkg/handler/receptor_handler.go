package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	gpcrdb "github.com/CompGenomeLab/GPCRevolution-sub000/pkg/db"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/model"
)

// searchResultLimit caps receptor search responses. The catalog holds a
// few hundred receptors, so the cap only guards degenerate queries.
const searchResultLimit = 50

// Response struct for error payloads shared by the API handlers.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Status: "error", Error: err.Error()})
}

// statusForError picks the HTTP status for a model error: unknown
// receptors and missing files are the client's selection problem,
// everything else is ours.
func statusForError(err error) int {
	if errors.Is(err, gpcrdb.ErrReceptorNotFound) ||
		errors.Is(err, gpcrdb.ErrDataFileMissing) ||
		errors.Is(err, model.ErrClassMismatch) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (svcctx *ServiceContext) GetReceptorHandler(w http.ResponseWriter, r *http.Request) {

	gene := r.URL.Query().Get("gene")
	if gene == "" {
		http.Error(w, "gene parameter is required", http.StatusBadRequest)
		return
	}

	receptor, err := svcctx.Catalog.ByGene(gene)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, receptor)
}

func (svcctx *ServiceContext) ListReceptorsByClassHandler(w http.ResponseWriter, r *http.Request) {

	class := r.URL.Query().Get("class")
	if class == "" {
		http.Error(w, "class parameter is required", http.StatusBadRequest)
		return
	}

	receptors, err := svcctx.Catalog.ByClass(class)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, receptors)
}

func (svcctx *ServiceContext) SearchReceptorsHandler(w http.ResponseWriter, r *http.Request) {

	term := r.URL.Query().Get("q")
	if term == "" {
		http.Error(w, "q parameter is required", http.StatusBadRequest)
		return
	}

	receptors, err := svcctx.Catalog.Search(term, searchResultLimit)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, receptors)
}

func (svcctx *ServiceContext) GetConservationHandler(w http.ResponseWriter, r *http.Request) {

	gene := r.URL.Query().Get("gene")
	if gene == "" {
		http.Error(w, "gene parameter is required", http.StatusBadRequest)
		return
	}

	table, err := model.GetConservationTable(svcctx.Catalog, svcctx.Files, gene)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}
