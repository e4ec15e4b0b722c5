package store

import (
	"iter"
	"sync"

	"github.com/RoaringBitmap/roaring/roaring64"

	"github.com/avelichko/go-doc-search/model"
)

// DocumentStore holds the per-document metadata, the set of live document
// IDs, and the interned term storage shared by both indexes. All methods are
// safe for concurrent use.
type DocumentStore struct {
	mu   sync.RWMutex
	meta map[model.DocID]model.DocumentData
	ids  *roaring64.Bitmap

	// terms keeps one canonical copy of every distinct term ever indexed.
	// Index structures key off these canonical strings, so equal terms in
	// different documents share storage. The pool grows monotonically and is
	// only released with the engine itself.
	terms map[string]string
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		meta:  make(map[model.DocID]model.DocumentData),
		ids:   roaring64.New(),
		terms: make(map[string]string),
	}
}

// Intern returns the canonical copy of word, registering it on first use.
func (ds *DocumentStore) Intern(word string) string {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if canonical, ok := ds.terms[word]; ok {
		return canonical
	}
	ds.terms[word] = word
	return word
}

// TermCount returns the number of distinct interned terms.
func (ds *DocumentStore) TermCount() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return len(ds.terms)
}

// Put records metadata for a new document and adds its ID to the set.
func (ds *DocumentStore) Put(id model.DocID, data model.DocumentData) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.meta[id] = data
	ds.ids.Add(uint64(id))
}

// Delete removes the document's metadata and ID.
func (ds *DocumentStore) Delete(id model.DocID) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.meta, id)
	ds.ids.Remove(uint64(id))
}

// Has reports whether the document ID is present.
func (ds *DocumentStore) Has(id model.DocID) bool {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.ids.Contains(uint64(id))
}

// Data returns the metadata for id.
func (ds *DocumentStore) Data(id model.DocID) (model.DocumentData, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	data, ok := ds.meta[id]
	return data, ok
}

// Count returns the number of live documents.
func (ds *DocumentStore) Count() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return int(ds.ids.GetCardinality())
}

// IterIDs yields the live document IDs in ascending order. The yielded set is
// a snapshot, so the caller may mutate the store while iterating.
func (ds *DocumentStore) IterIDs() iter.Seq[model.DocID] {
	ds.mu.RLock()
	snapshot := ds.ids.Clone()
	ds.mu.RUnlock()
	return func(yield func(model.DocID) bool) {
		it := snapshot.Iterator()
		for it.HasNext() {
			if !yield(model.DocID(it.Next())) {
				return
			}
		}
	}
}

// IDs returns the live document IDs as an ascending slice.
func (ds *DocumentStore) IDs() []model.DocID {
	out := make([]model.DocID, 0, ds.Count())
	for id := range ds.IterIDs() {
		out = append(out, id)
	}
	return out
}
