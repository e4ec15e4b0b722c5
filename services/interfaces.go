package services

import (
	"iter"

	"github.com/avelichko/go-doc-search/index"
	"github.com/avelichko/go-doc-search/model"
)

// Policy selects how an otherwise identical operation executes. Sequential
// and parallel runs of the same operation return identical results.
type Policy int

const (
	// Sequenced runs the operation on the calling goroutine.
	Sequenced Policy = iota
	// Parallel fans finds and removals out over the engine's worker pool.
	// A parallel match uses the order-preserving query form and runs on the
	// calling goroutine; it does not use the pool.
	Parallel
)

// String returns the policy name.
func (p Policy) String() string {
	if p == Parallel {
		return "parallel"
	}
	return "sequenced"
}

// MatchResult reports which plus-terms of a query occur in one document.
// Words is sorted ascending and empty when a minus-term matched.
type MatchResult struct {
	Words  []string             `json:"words"`
	Status model.DocumentStatus `json:"status"`
}

// Indexer defines the mutating operations of the engine. Callers must not
// invoke a mutator concurrently with any other engine operation.
type Indexer interface {
	AddDocument(id model.DocID, text string, status model.DocumentStatus, ratings []int) error
	RemoveDocument(id model.DocID) error
	RemoveDocumentWith(policy Policy, id model.DocID) error
}

// Searcher defines the ranked query operations. All variants validate the
// raw query before touching any state; a nil predicate means the default
// status filter (StatusActual).
type Searcher interface {
	FindTopDocuments(rawQuery string) ([]model.Document, error)
	FindTopDocumentsWithStatus(rawQuery string, status model.DocumentStatus) ([]model.Document, error)
	FindTopDocumentsWithPredicate(rawQuery string, predicate model.DocumentPredicate) ([]model.Document, error)
	FindTopDocumentsWith(policy Policy, rawQuery string, predicate model.DocumentPredicate) ([]model.Document, error)
}

// Matcher reports query/document term matches.
type Matcher interface {
	MatchDocument(rawQuery string, id model.DocID) (MatchResult, error)
	MatchDocumentWith(policy Policy, rawQuery string, id model.DocID) (MatchResult, error)
}

// Introspector exposes the read-only corpus views used by the deduplication
// and statistics collaborators.
type Introspector interface {
	DocumentCount() int
	IterDocIDs() iter.Seq[model.DocID]
	GetWordFrequencies(id model.DocID) index.Frequencies
}

// DocumentSearcher is the full public surface of the engine.
type DocumentSearcher interface {
	Indexer
	Searcher
	Matcher
	Introspector
}
