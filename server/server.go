// Package server exposes the explorer over HTTP: upload a dataset, build
// up filters, and fetch filtered previews, summaries, chart series, and
// CSV exports. Each session owns its table and an independent filter set
// snapshot; every request runs one full evaluate/aggregate pass.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/colsift/colsift/chart"
	"github.com/colsift/colsift/output"
	"github.com/colsift/colsift/query"
	"github.com/colsift/colsift/reader"
	"github.com/colsift/colsift/table"
)

// defaultPreviewLimit caps the rows returned by the preview endpoint.
const defaultPreviewLimit = 200

// maxUploadBytes caps dataset uploads.
const maxUploadBytes = 256 << 20

// session pairs a loaded table with its filter set snapshot. The filters
// field is replaced, never mutated, so reads racing a replacement still see
// a consistent snapshot.
type session struct {
	id      string
	table   *table.Table
	filters query.FilterSet
}

// Server is the HTTP session API. Sessions live in memory; nothing is
// persisted across restarts.
type Server struct {
	mu       sync.RWMutex
	sessions map[string]*session
	router   chi.Router
}

// New creates a Server with its routes mounted.
func New() *Server {
	s := &Server{sessions: make(map[string]*session)}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/sessions", s.handleCreate)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Delete("/", s.handleDelete)
		r.Get("/summary", s.handleSummary)
		r.Post("/filters", s.handleAddFilter)
		r.Delete("/filters", s.handleClearFilters)
		r.Delete("/filters/{index}", s.handleRemoveFilter)
		r.Get("/filters", s.handleListFilters)
		r.Get("/rows", s.handleRows)
		r.Get("/chart", s.handleChart)
		r.Get("/correlation", s.handleCorrelation)
		r.Get("/export", s.handleExport)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// lookup returns the session for the request, or nil after writing a 404.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) *session {
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	sess := s.sessions[id]
	s.mu.RUnlock()
	if sess == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no session %q", id))
	}
	return sess
}

// handleCreate ingests a CSV request body and opens a session for it.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	t, err := reader.ReadCSV(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sess := &session{id: uuid.NewString(), table: t}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      sess.id,
		"rows":    t.Len(),
		"columns": t.Summarize(),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows":    sess.table.Len(),
		"columns": sess.table.Summarize(),
	})
}

// filterRequest is the wire shape of a predicate. Value may be a string, a
// number, or an array of strings for in/not-in.
type filterRequest struct {
	Column string      `json:"column"`
	Op     string      `json:"op"`
	Value  interface{} `json:"value"`
}

func (s *Server) handleAddFilter(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}

	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	op, err := query.ParseOp(req.Op)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	kind, ok := sess.table.Kind(req.Column)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("unknown column %q", req.Column))
		return
	}

	pred, err := query.NewPredicate(req.Column, op, normalizeValue(req.Value), kind)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, query.ErrInvalidPredicate) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}

	s.mu.Lock()
	sess.filters = sess.filters.Append(pred)
	filters := sess.filters
	s.mu.Unlock()

	writeFilters(w, http.StatusCreated, filters)
}

func (s *Server) handleRemoveFilter(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid filter index: %w", err))
		return
	}

	s.mu.Lock()
	sess.filters = sess.filters.RemoveAt(index)
	filters := sess.filters
	s.mu.Unlock()

	writeFilters(w, http.StatusOK, filters)
}

func (s *Server) handleClearFilters(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	s.mu.Lock()
	sess.filters = sess.filters.Clear()
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFilters(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	s.mu.RLock()
	filters := sess.filters
	s.mu.RUnlock()
	writeFilters(w, http.StatusOK, filters)
}

func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}

	limit := defaultPreviewLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = n
	}

	filtered := s.evaluate(sess)
	total := filtered.Len()

	count := total
	if count > limit {
		count = limit
	}
	rows := make([]map[string]interface{}, 0, count)
	for i := 0; i < count; i++ {
		rows = append(rows, filtered.Row(i))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":   total,
		"columns": filtered.Columns(),
		"rows":    rows,
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}

	q := r.URL.Query()
	spec := chart.Spec{GroupBy: q.Get("x"), Measure: q.Get("y")}

	var err error
	if fn := q.Get("fn"); fn != "" {
		if spec.Func, err = chart.ParseFunc(fn); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if kind := q.Get("kind"); kind != "" {
		if spec.Kind, err = chart.ParseKind(kind); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	series, err := chart.Aggregate(s.evaluate(sess), spec)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, chart.ErrInsufficientFields) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	m := chart.Correlate(s.evaluate(sess))
	if m == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"columns": []string{},
			"coeffs":  [][]float64{},
		})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}

	filtered := s.evaluate(sess)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered_data.csv"`)

	columns, rows := output.TableData(filtered)
	if err := output.NewCSVFormatter(w).Format(columns, rows); err != nil {
		// Headers are gone; nothing more to do than log through the
		// middleware by panicking would be worse. Drop it.
		return
	}
}

// evaluate runs the session's current filter snapshot against its table.
func (s *Server) evaluate(sess *session) *table.Table {
	s.mu.RLock()
	filters := sess.filters
	s.mu.RUnlock()
	return query.Apply(sess.table, filters)
}

// normalizeValue converts decoded JSON values into predicate operand
// shapes: arrays become []string, everything else stays scalar.
func normalizeValue(v interface{}) interface{} {
	items, ok := v.([]interface{})
	if !ok {
		return v
	}
	set := make([]string, 0, len(items))
	for _, item := range items {
		set = append(set, fmt.Sprintf("%v", item))
	}
	return set
}

func writeFilters(w http.ResponseWriter, status int, fs query.FilterSet) {
	descriptions := make([]string, 0, fs.Len())
	for _, p := range fs.Predicates() {
		descriptions = append(descriptions, p.String())
	}
	writeJSON(w, status, map[string]interface{}{"filters": descriptions})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
