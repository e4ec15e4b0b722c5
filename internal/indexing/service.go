package indexing

import (
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/avelichko/go-doc-search/index"
	"github.com/avelichko/go-doc-search/internal/errors"
	"github.com/avelichko/go-doc-search/internal/tokenizer"
	"github.com/avelichko/go-doc-search/model"
	"github.com/avelichko/go-doc-search/store"
)

// Service performs document ingestion and removal, keeping the inverted and
// forward indexes mirrored.
type Service struct {
	invertedIndex *index.InvertedIndex
	forwardIndex  *index.ForwardIndex
	documentStore *store.DocumentStore
	isStop        func(string) bool
	pool          *ants.Pool
}

// NewService creates a new indexing service. The pool may be nil, in which
// case parallel removal degrades to the sequential scrub.
func NewService(
	invertedIndex *index.InvertedIndex,
	forwardIndex *index.ForwardIndex,
	documentStore *store.DocumentStore,
	isStop func(string) bool,
	pool *ants.Pool,
) (*Service, error) {
	if invertedIndex == nil {
		return nil, errors.NewComponentError("inverted index")
	}
	if forwardIndex == nil {
		return nil, errors.NewComponentError("forward index")
	}
	if documentStore == nil {
		return nil, errors.NewComponentError("document store")
	}
	if isStop == nil {
		isStop = func(string) bool { return false }
	}
	return &Service{
		invertedIndex: invertedIndex,
		forwardIndex:  forwardIndex,
		documentStore: documentStore,
		isStop:        isStop,
		pool:          pool,
	}, nil
}

// AddDocument tokenizes text and records the document in both indexes. The
// document is rejected before any state changes when the ID is negative or
// already present, or when a token carries control characters.
func (s *Service) AddDocument(id model.DocID, text string, status model.DocumentStatus, ratings []int) error {
	if id < 0 {
		return errors.NewInvalidIDError(id)
	}
	if s.documentStore.Has(id) {
		return errors.NewDuplicateIDError(id)
	}

	tokens := tokenizer.Tokenize(text)
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !tokenizer.IsValidWord(token) {
			return errors.NewInvalidCharError(token)
		}
		if !s.isStop(token) {
			kept = append(kept, token)
		}
	}

	if len(kept) > 0 {
		tf := 1.0 / float64(len(kept))
		s.invertedIndex.Mu.Lock()
		s.forwardIndex.Mu.Lock()
		for _, word := range kept {
			canonical := s.documentStore.Intern(word)
			s.invertedIndex.Add(canonical, id, tf)
			s.forwardIndex.Add(id, canonical, tf)
		}
		s.forwardIndex.Mu.Unlock()
		s.invertedIndex.Mu.Unlock()
	}

	s.documentStore.Put(id, model.DocumentData{
		Rating: averageRating(ratings),
		Status: status,
	})
	return nil
}

// RemoveDocument removes the document sequentially.
func (s *Service) RemoveDocument(id model.DocID) error {
	return s.RemoveDocumentWith(false, id)
}

// RemoveDocumentWith removes the document, scrubbing its posting lists on
// the worker pool when parallel is set. Both modes leave identical state.
func (s *Service) RemoveDocumentWith(parallel bool, id model.DocID) error {
	if id < 0 {
		return errors.NewInvalidIDError(id)
	}
	if !s.documentStore.Has(id) {
		return errors.NewDocumentNotFoundError(id)
	}

	s.invertedIndex.Mu.Lock()
	defer s.invertedIndex.Mu.Unlock()
	s.forwardIndex.Mu.Lock()
	defer s.forwardIndex.Mu.Unlock()

	row := s.forwardIndex.Row(id)
	if parallel && s.pool != nil && len(row) > 1 {
		s.scrubParallel(id, row)
	} else {
		for term := range row {
			s.scrubTerm(id, term)
		}
	}

	// Sweep terms whose posting lists went empty. Workers only touch the
	// inner posting maps, so the outer map is scanned here on one goroutine.
	for term := range row {
		if len(s.invertedIndex.Index[term]) == 0 {
			delete(s.invertedIndex.Index, term)
		}
	}

	s.forwardIndex.Delete(id)
	s.documentStore.Delete(id)
	return nil
}

// scrubParallel deletes the document from each term's posting list on the
// pool. Every worker owns a distinct posting map, so no two goroutines write
// the same map.
func (s *Service) scrubParallel(id model.DocID, row index.Frequencies) {
	var wg sync.WaitGroup
	for term := range row {
		postings := s.invertedIndex.Index[term]
		wg.Add(1)
		task := func() {
			defer wg.Done()
			delete(postings, id)
		}
		if err := s.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()
}

func (s *Service) scrubTerm(id model.DocID, term string) {
	delete(s.invertedIndex.Index[term], id)
}

// averageRating computes the integer mean of ratings, truncating toward
// zero. An empty slice yields 0.
func averageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}
