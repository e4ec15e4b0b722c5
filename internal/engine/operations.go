package engine

import (
	"iter"

	"github.com/avelichko/go-doc-search/index"
	"github.com/avelichko/go-doc-search/model"
	"github.com/avelichko/go-doc-search/services"
)

// AddDocument indexes one document. Mutators must not run concurrently with
// any other engine operation.
func (e *Engine) AddDocument(id model.DocID, text string, status model.DocumentStatus, ratings []int) error {
	if err := e.indexer.AddDocument(id, text, status, ratings); err != nil {
		e.logger.Warn("add document rejected", "doc_id", id, "error", err)
		return err
	}
	e.logger.Debug("document added", "doc_id", id, "status", status.String())
	return nil
}

// RemoveDocument removes one document sequentially.
func (e *Engine) RemoveDocument(id model.DocID) error {
	return e.RemoveDocumentWith(services.Sequenced, id)
}

// RemoveDocumentWith removes one document under the given policy.
func (e *Engine) RemoveDocumentWith(policy services.Policy, id model.DocID) error {
	if err := e.indexer.RemoveDocumentWith(policy == services.Parallel, id); err != nil {
		e.logger.Warn("remove document rejected", "doc_id", id, "error", err)
		return err
	}
	e.logger.Debug("document removed", "doc_id", id, "policy", policy.String())
	return nil
}

// FindTopDocuments runs the query keeping only actual documents.
func (e *Engine) FindTopDocuments(rawQuery string) ([]model.Document, error) {
	return e.searcher.FindTopDocuments(rawQuery)
}

// FindTopDocumentsWithStatus runs the query keeping only documents with the
// given status.
func (e *Engine) FindTopDocumentsWithStatus(rawQuery string, status model.DocumentStatus) ([]model.Document, error) {
	return e.searcher.FindTopDocumentsWithStatus(rawQuery, status)
}

// FindTopDocumentsWithPredicate runs the query keeping only documents the
// predicate accepts.
func (e *Engine) FindTopDocumentsWithPredicate(rawQuery string, predicate model.DocumentPredicate) ([]model.Document, error) {
	return e.searcher.FindTopDocumentsWithPredicate(rawQuery, predicate)
}

// FindTopDocumentsWith runs the query under the given policy. A nil
// predicate keeps only actual documents.
func (e *Engine) FindTopDocumentsWith(policy services.Policy, rawQuery string, predicate model.DocumentPredicate) ([]model.Document, error) {
	return e.searcher.FindTopDocumentsWith(policy == services.Parallel, rawQuery, predicate)
}

// MatchDocument reports which plus-words of the query occur in the document.
func (e *Engine) MatchDocument(rawQuery string, id model.DocID) (services.MatchResult, error) {
	return e.searcher.MatchDocument(rawQuery, id)
}

// MatchDocumentWith reports the match under the given policy.
func (e *Engine) MatchDocumentWith(policy services.Policy, rawQuery string, id model.DocID) (services.MatchResult, error) {
	return e.searcher.MatchDocumentWith(policy == services.Parallel, rawQuery, id)
}

// DocumentCount returns the number of live documents.
func (e *Engine) DocumentCount() int {
	return e.documentStore.Count()
}

// TermCount returns the number of distinct terms ever indexed. Terms of
// removed documents stay counted because their interned storage is retained.
func (e *Engine) TermCount() int {
	return e.documentStore.TermCount()
}

// IterDocIDs yields the live document IDs in ascending order.
func (e *Engine) IterDocIDs() iter.Seq[model.DocID] {
	return e.documentStore.IterIDs()
}

// GetWordFrequencies returns the document's term frequencies. Unknown IDs
// yield an empty map. The returned map is a read-only view and must not be
// modified.
func (e *Engine) GetWordFrequencies(id model.DocID) index.Frequencies {
	if row := e.forwardIndex.Row(id); row != nil {
		return row
	}
	return index.Frequencies{}
}

var _ services.DocumentSearcher = (*Engine)(nil)
