package main

import (
	"database/sql"
	"net/http"
	"os"
	"path"

	"github.com/joho/godotenv"

	"github.com/CompGenomeLab/GPCRevolution-sub000/logger"
	gpcrdb "github.com/CompGenomeLab/GPCRevolution-sub000/pkg/db"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/handler"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/middle"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "modernc.org/sqlite"
)

var (
	gpcrev_data string
)

func main() {

	// Establish logger
	VERSION := "0.1.0"
	LOG_LEVEL := zapcore.InfoLevel

	if err := logger.InitLogger(LOG_LEVEL); err != nil {
		panic(err)
	}

	// Try load env
	dotenvErr := godotenv.Load()

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	gpcrev_data = os.Getenv("GPCREV_DATA")

	if gpcrev_data == "" {
		logger.Warn("No local environment (GPCREV_DATA), using default value (./data)")
		gpcrev_data = "./data"
	}

	catalog_sqlite := path.Join(gpcrev_data, "db/receptor_catalog.db")

	// Connect to db
	db, _ := sql.Open("sqlite", catalog_sqlite)

	files, err := gpcrdb.NewDataDir(gpcrev_data)
	if err != nil {
		logger.Warn("Data directory incomplete, some endpoints will fail",
			zap.String("dir", gpcrev_data), zap.Error(err))
		files = &gpcrdb.DataDir{Dir: gpcrev_data}
	}

	svcctx := &handler.ServiceContext{
		DB:      db,
		Catalog: gpcrdb.NewCatalog(db),
		Files:   files,
		Logos:   model.NewLogoCache(),
	}

	logger.Info("Start:", zap.String("Version", VERSION))
	logger.Info("Open catalog on", zap.String("DB_LOC", catalog_sqlite))

	mux := NewRouter(svcctx)

	// Apply middleware
	mlog := middle.CreateMiddlewareLogger(zapcore.DebugLevel)
	wrapped := middle.RequestIDMiddleware(mlog)(middle.LoggingMiddleware(mlog)(mux))

	logger.Info("Server starting on :8080...")
	httpErr := http.ListenAndServe("0.0.0.0:8080", wrapped)
	if httpErr != nil {
		logger.Error("Error starting server:", zap.String("error message", httpErr.Error()))
	}
}

// Move to router.go in the next iteration
func NewRouter(svcctx *handler.ServiceContext) *http.ServeMux {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// API routes
	mux.HandleFunc("GET /api/v1/health", handler.HealthCheck)
	mux.HandleFunc("GET /api/v1/receptor", svcctx.GetReceptorHandler)
	mux.HandleFunc("GET /api/v1/receptors/by-class", svcctx.ListReceptorsByClassHandler)
	mux.HandleFunc("GET /api/v1/receptors/search", svcctx.SearchReceptorsHandler)
	mux.HandleFunc("GET /api/v1/tree", svcctx.GetReceptorTreeHandler)
	mux.HandleFunc("GET /api/v1/logo", svcctx.GetLogoHandler)
	mux.HandleFunc("GET /api/v1/conservation", svcctx.GetConservationHandler)
	mux.HandleFunc("GET /api/v1/conservation/combined", svcctx.GetCombinedBarsHandler)

	// Downloadable tables and alignments
	mux.HandleFunc("GET /mapping/by-genes", svcctx.GetResidueMappingHandler)
	mux.HandleFunc("GET /alignment/by-gene", svcctx.GetAlignmentHandler)

	return mux
}
