package index

import (
	"sort"
	"sync"

	"github.com/avelichko/go-doc-search/model"
)

// ForwardIndex maps a document to its term frequencies. It mirrors the
// inverted index and serves word-frequency lookups, matching, and
// O(doc-size) removal.
type ForwardIndex struct {
	Mu   sync.RWMutex
	Rows map[model.DocID]Frequencies
}

// NewForwardIndex creates an empty forward index.
func NewForwardIndex() *ForwardIndex {
	return &ForwardIndex{Rows: make(map[model.DocID]Frequencies)}
}

// Add records one occurrence weight of term in doc.
func (fi *ForwardIndex) Add(doc model.DocID, term string, tf float64) {
	row, ok := fi.Rows[doc]
	if !ok {
		row = make(Frequencies)
		fi.Rows[doc] = row
	}
	row[term] += tf
}

// Row returns the forward row for doc, or nil when the document is unknown.
func (fi *ForwardIndex) Row(doc model.DocID) Frequencies {
	return fi.Rows[doc]
}

// Delete drops the whole forward row for doc.
func (fi *ForwardIndex) Delete(doc model.DocID) {
	delete(fi.Rows, doc)
}

// Contains reports whether term occurs in the row.
func (f Frequencies) Contains(term string) bool {
	_, ok := f[term]
	return ok
}

// SortedTerms returns the row's terms in ascending order.
func (f Frequencies) SortedTerms() []string {
	terms := make([]string, 0, len(f))
	for term := range f {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
