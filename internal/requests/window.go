// Package requests tracks search requests over a sliding time window and
// reports how many of the retained requests returned nothing.
package requests

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/avelichko/go-doc-search/config"
	"github.com/avelichko/go-doc-search/internal/errors"
	"github.com/avelichko/go-doc-search/model"
	"github.com/avelichko/go-doc-search/services"
)

// Record is one retained request. A request that failed validation is
// retained as empty.
type Record struct {
	ID    uuid.UUID `json:"id"`
	Query string    `json:"query"`
	Empty bool      `json:"empty"`
}

// Window forwards queries to a searcher and keeps the most recent requests,
// one tick per request. Not safe for concurrent use.
type Window struct {
	searcher services.Searcher
	capacity int
	records  []Record
	noResult int
	logger   *slog.Logger
}

// Option configures a Window.
type Option func(*Window)

// WithCapacity overrides the number of retained requests.
func WithCapacity(n int) Option {
	return func(w *Window) {
		if n > 0 {
			w.capacity = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Window) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWindow creates a window over searcher holding one day of per-minute
// requests by default.
func NewWindow(searcher services.Searcher, opts ...Option) (*Window, error) {
	if searcher == nil {
		return nil, errors.NewComponentError("searcher")
	}
	w := &Window{
		searcher: searcher,
		capacity: config.RequestWindow,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("component", "requests")
	return w, nil
}

// AddFindRequest runs the query with the default status filter and records
// the outcome.
func (w *Window) AddFindRequest(rawQuery string) ([]model.Document, error) {
	docs, err := w.searcher.FindTopDocuments(rawQuery)
	return w.record(rawQuery, docs, err)
}

// AddFindRequestWithStatus runs the query with a status filter and records
// the outcome.
func (w *Window) AddFindRequestWithStatus(rawQuery string, status model.DocumentStatus) ([]model.Document, error) {
	docs, err := w.searcher.FindTopDocumentsWithStatus(rawQuery, status)
	return w.record(rawQuery, docs, err)
}

// AddFindRequestWithPredicate runs the query with a predicate filter and
// records the outcome.
func (w *Window) AddFindRequestWithPredicate(rawQuery string, predicate model.DocumentPredicate) ([]model.Document, error) {
	docs, err := w.searcher.FindTopDocumentsWithPredicate(rawQuery, predicate)
	return w.record(rawQuery, docs, err)
}

// NoResultCount returns how many retained requests produced no documents.
func (w *Window) NoResultCount() int {
	return w.noResult
}

// Size returns the number of retained requests.
func (w *Window) Size() int {
	return len(w.records)
}

// record appends the request and evicts the oldest one once the window is
// full. A rejected query counts as an empty request.
func (w *Window) record(rawQuery string, docs []model.Document, err error) ([]model.Document, error) {
	rec := Record{
		ID:    uuid.New(),
		Query: rawQuery,
		Empty: err != nil || len(docs) == 0,
	}
	if err != nil {
		w.logger.Debug("request rejected", "request_id", rec.ID, "error", err)
	}

	if len(w.records) == w.capacity {
		evicted := w.records[0]
		copy(w.records, w.records[1:])
		w.records = w.records[:len(w.records)-1]
		if evicted.Empty {
			w.noResult--
		}
	}
	w.records = append(w.records, rec)
	if rec.Empty {
		w.noResult++
	}
	return docs, err
}
