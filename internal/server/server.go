// =============================================================================
// POS to IIF Converter - HTTP Upload Surface
// =============================================================================
//
// This module exposes the converter over HTTP for browser use: upload a POS
// export, get the IIF document back as a download. Each request is an
// independent, stateless conversion; nothing is shared across requests.
//
// ENDPOINTS:
//   GET  /health   - liveness probe
//   POST /convert  - multipart upload (field "file") -> IIF document with
//                    Content-Disposition attachment "qb_sales_import.iif"
//
// ERROR MAPPING:
//   Structural input problems (missing columns, non-numeric totals,
//   undecodable files) are the uploader's fault and return 400 with the
//   conversion error message. Bills skipped for bad dates are not errors;
//   they are simply absent from the returned document.
//
// =============================================================================

package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/retailops/pos-iif-converter/internal/config"
	"github.com/retailops/pos-iif-converter/internal/converter"
	"github.com/retailops/pos-iif-converter/internal/tableparser"
)

// downloadName is the attachment filename offered for every conversion.
const downloadName = "qb_sales_import.iif"

// Server handles conversion requests.
type Server struct {
	cfg    *config.Config
	logger converter.Logger
}

// New creates a Server with the given configuration.
func New(cfg *config.Config, logger converter.Logger) *Server {
	if logger == nil {
		logger = converter.NewLogger(false)
	}
	return &Server{cfg: cfg, logger: logger}
}

// Router builds the chi router with all routes and middleware wired up.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300, // 5 minutes
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/convert", s.handleConvert)

	return r
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleConvert accepts a multipart upload and streams back the IIF document.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadBytes); err != nil {
		http.Error(w, "upload too large or malformed", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, `missing upload field "file"`, http.StatusBadRequest)
		return
	}
	defer file.Close()

	table, err := tableparser.ParseReader(file, header.Filename)
	if err != nil {
		s.logger.Warn("rejected upload %s: %v", header.Filename, err)
		http.Error(w, fmt.Sprintf("failed to process file: %v", err), http.StatusBadRequest)
		return
	}

	doc, stats, err := converter.Convert(table, s.cfg.Ledger)
	if err != nil {
		s.logger.Warn("conversion of %s failed: %v", header.Filename, err)
		http.Error(w, fmt.Sprintf("failed to process file: %v", err), http.StatusBadRequest)
		return
	}

	s.logger.Info("converted %s: %d rows -> %d bills (%d skipped)",
		header.Filename, stats.RowsRead, stats.BillsEmitted, stats.BillsSkipped)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	w.Write([]byte(doc))
}
