package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dbfkit/dbfkit/pkg/dbf"
)

const defaultMaxBatchRecords = 1000

// Server holds the gateway state
type Server struct {
	catalog *Catalog
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new gateway server
func NewServer(catalog *Catalog, config ServerConfig, metrics *Metrics) *Server {
	if config.MaxBatchRecords <= 0 {
		config.MaxBatchRecords = defaultMaxBatchRecords
	}
	return &Server{
		catalog: catalog,
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := s.catalog.List()
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, tables)
}

func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "table")

	table, ok := s.openTable(w, r, name)
	if !ok {
		return
	}

	schema := table.Schema()
	fields := make([]FieldInfo, len(schema.Fields))
	for i, f := range schema.Fields {
		fields[i] = FieldInfo{
			Name:     f.Name,
			Type:     string(byte(f.Type)),
			Size:     f.Size,
			Decimals: f.Decimals,
		}
	}

	sendSuccess(w, SchemaResponse{
		Name:        name,
		Version:     schema.Version.String(),
		RecordCount: schema.RecordCount,
		LastUpdated: schema.LastUpdated.Format("2006-01-02"),
		Fields:      fields,
	})
}

func (s *Server) handleGetRecords(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "table")

	limit := s.config.MaxBatchRecords
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			sendError(w, fmt.Sprintf("invalid limit %q", raw), http.StatusBadRequest)
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	table, ok := s.openTable(w, r, name)
	if !ok {
		return
	}

	start := time.Now()
	records, err := table.ReadBatch(limit)
	if err != nil {
		sendError(w, err.Error(), decodeStatus(err))
		return
	}
	s.metrics.RecordDecode("read_batch", len(records), time.Since(start))

	payload := make([]RecordPayload, len(records))
	for i, rec := range records {
		payload[i] = RecordPayload{Deleted: rec.Deleted, Fields: rec.Fields}
	}
	sendSuccess(w, RecordsResponse{
		Table:   name,
		Count:   len(payload),
		Records: payload,
	})
}

// openTable opens a fresh handle for one request, applying any per-request
// decode overrides, and writes the error response itself on failure.
func (s *Server) openTable(w http.ResponseWriter, r *http.Request, name string) (*dbf.Table, bool) {
	opts, err := s.requestOptions(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	table, err := s.catalog.Open(name, opts)
	if err != nil {
		s.metrics.RecordTableOpen(false)
		if errors.Is(err, os.ErrNotExist) {
			sendError(w, fmt.Sprintf("table %q not found", name), http.StatusNotFound)
			return nil, false
		}
		sendError(w, err.Error(), decodeStatus(err))
		return nil, false
	}

	s.metrics.RecordTableOpen(true)
	return table, true
}

// requestOptions starts from the configured decode defaults and applies the
// per-request query overrides: deleted, mode and encoding.
func (s *Server) requestOptions(r *http.Request) (dbf.Options, error) {
	opts := s.config.Decode
	query := r.URL.Query()

	if raw := query.Get("deleted"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid deleted flag %q", raw)
		}
		opts.IncludeDeleted = include
	}
	if raw := query.Get("mode"); raw != "" {
		mode := dbf.ReadMode(raw)
		if mode != dbf.ModeStrict && mode != dbf.ModeLoose {
			return opts, fmt.Errorf("invalid mode %q", raw)
		}
		opts.Mode = mode
	}
	if raw := query.Get("encoding"); raw != "" {
		opts.Encoding = raw
	}

	return opts, nil
}

// decodeStatus maps decode failures onto HTTP statuses: malformed or
// dialect-ambiguous files are unprocessable, unknown character sets are the
// caller's mistake, anything else is the gateway's problem.
func decodeStatus(err error) int {
	var formatErr *dbf.FormatError
	var typeErr *dbf.TypeError
	var memoErr *dbf.MemoError
	var encErr *dbf.EncodingError

	switch {
	case errors.As(err, &formatErr), errors.As(err, &typeErr), errors.As(err, &memoErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &encErr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
