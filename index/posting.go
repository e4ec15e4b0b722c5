package index

import "github.com/avelichko/go-doc-search/model"

// Postings is the posting list for one term: every document containing the
// term mapped to the term's frequency in that document. TF is the number of
// occurrences divided by the document's non-stop-word token count.
type Postings map[model.DocID]float64

// Frequencies is the forward row for one document: every term in the
// document mapped to its TF. A forward row and the posting lists it mirrors
// always agree (same documents, same frequencies).
type Frequencies map[string]float64
