package index

import (
	"sort"
	"sync"

	"github.com/avelichko/go-doc-search/model"
)

// InvertedIndex maps a term to the documents containing it. Mutations are
// externally synchronized with all other engine operations; the mutex only
// guards concurrent read paths against the parallel removal scrub.
type InvertedIndex struct {
	Mu    sync.RWMutex
	Index map[string]Postings
}

// NewInvertedIndex creates an empty inverted index.
func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{Index: make(map[string]Postings)}
}

// Add records one occurrence weight of term in doc.
func (ii *InvertedIndex) Add(term string, doc model.DocID, tf float64) {
	postings, ok := ii.Index[term]
	if !ok {
		postings = make(Postings)
		ii.Index[term] = postings
	}
	postings[doc] += tf
}

// Postings returns the posting list for term, or nil when the term is not
// indexed.
func (ii *InvertedIndex) Postings(term string) Postings {
	return ii.Index[term]
}

// DocumentFrequency returns the number of documents containing term.
func (ii *InvertedIndex) DocumentFrequency(term string) int {
	return len(ii.Index[term])
}

// Terms returns every indexed term in ascending order.
func (ii *InvertedIndex) Terms() []string {
	terms := make([]string, 0, len(ii.Index))
	for term := range ii.Index {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// SortedDocs returns the posting list's document IDs in ascending order.
func (p Postings) SortedDocs() []model.DocID {
	docs := make([]model.DocID, 0, len(p))
	for id := range p {
		docs = append(docs, id)
	}
	sort.Ints(docs)
	return docs
}
