package search

import (
	"sort"

	"github.com/panjf2000/ants/v2"

	"github.com/avelichko/go-doc-search/config"
	"github.com/avelichko/go-doc-search/index"
	"github.com/avelichko/go-doc-search/internal/cmap"
	"github.com/avelichko/go-doc-search/internal/errors"
	"github.com/avelichko/go-doc-search/internal/query"
	"github.com/avelichko/go-doc-search/model"
	"github.com/avelichko/go-doc-search/store"
)

// Service answers ranked queries over the inverted index. Sequential and
// parallel execution of the same query return identical results.
type Service struct {
	invertedIndex *index.InvertedIndex
	forwardIndex  *index.ForwardIndex
	documentStore *store.DocumentStore
	parser        *query.Parser
	pool          *ants.Pool
	shardCount    int
}

// NewService creates a new search service. The pool may be nil, in which
// case parallel queries degrade to the sequential path.
func NewService(
	invertedIndex *index.InvertedIndex,
	forwardIndex *index.ForwardIndex,
	documentStore *store.DocumentStore,
	parser *query.Parser,
	pool *ants.Pool,
	shardCount int,
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
	if parser == nil {
		return nil, errors.NewComponentError("query parser")
	}
	if shardCount <= 0 {
		shardCount = config.DefaultShardCount
	}
	return &Service{
		invertedIndex: invertedIndex,
		forwardIndex:  forwardIndex,
		documentStore: documentStore,
		parser:        parser,
		pool:          pool,
		shardCount:    shardCount,
	}, nil
}

// FindTopDocuments runs the query with the default status filter.
func (s *Service) FindTopDocuments(rawQuery string) ([]model.Document, error) {
	return s.FindTopDocumentsWith(false, rawQuery, nil)
}

// FindTopDocumentsWithStatus runs the query keeping only documents with the
// given status.
func (s *Service) FindTopDocumentsWithStatus(rawQuery string, status model.DocumentStatus) ([]model.Document, error) {
	return s.FindTopDocumentsWith(false, rawQuery, model.StatusIs(status))
}

// FindTopDocumentsWithPredicate runs the query keeping only documents the
// predicate accepts.
func (s *Service) FindTopDocumentsWithPredicate(rawQuery string, predicate model.DocumentPredicate) ([]model.Document, error) {
	return s.FindTopDocumentsWith(false, rawQuery, predicate)
}

// FindTopDocumentsWith runs the query under the given execution mode. A nil
// predicate keeps only actual documents.
func (s *Service) FindTopDocumentsWith(parallel bool, rawQuery string, predicate model.DocumentPredicate) ([]model.Document, error) {
	q, err := s.parser.Parse(rawQuery)
	if err != nil {
		return nil, err
	}
	if predicate == nil {
		predicate = model.StatusIs(model.StatusActual)
	}

	var relevances map[model.DocID]float64
	if parallel && s.pool != nil {
		relevances = s.findAllParallel(q, predicate)
	} else {
		relevances = s.findAllSequential(q, predicate)
	}

	return s.rank(relevances), nil
}

// findAllSequential accumulates TF-IDF relevance into a plain map.
func (s *Service) findAllSequential(q query.Query, predicate model.DocumentPredicate) map[model.DocID]float64 {
	s.invertedIndex.Mu.RLock()
	defer s.invertedIndex.Mu.RUnlock()

	relevances := make(map[model.DocID]float64)
	for word := range q.Plus {
		postings := s.invertedIndex.Postings(word)
		if len(postings) == 0 {
			continue
		}
		idf := s.inverseDocumentFrequency(len(postings))
		for id, tf := range postings {
			if s.accepts(predicate, id) {
				relevances[id] += tf * idf
			}
		}
	}
	for word := range q.Minus {
		for id := range s.invertedIndex.Postings(word) {
			delete(relevances, id)
		}
	}
	return relevances
}

// findAllParallel accumulates relevance into a sharded map, fanning each
// plus-word out to the pool, then scrubs minus-words the same way.
func (s *Service) findAllParallel(q query.Query, predicate model.DocumentPredicate) map[model.DocID]float64 {
	s.invertedIndex.Mu.RLock()
	defer s.invertedIndex.Mu.RUnlock()

	accumulator := cmap.New[model.DocID, float64](s.shardCount)

	group := newTaskGroup(s.pool)
	for word := range q.Plus {
		postings := s.invertedIndex.Postings(word)
		if len(postings) == 0 {
			continue
		}
		idf := s.inverseDocumentFrequency(len(postings))
		group.run(func() {
			for id, tf := range postings {
				if s.accepts(predicate, id) {
					access := accumulator.Access(id)
					*access.Ref += tf * idf
					access.Release()
				}
			}
		})
	}
	group.wait()

	scrub := newTaskGroup(s.pool)
	for word := range q.Minus {
		postings := s.invertedIndex.Postings(word)
		if len(postings) == 0 {
			continue
		}
		scrub.run(func() {
			for id := range postings {
				accumulator.Erase(id)
			}
		})
	}
	scrub.wait()

	return accumulator.BuildOrdinaryMap()
}

func (s *Service) accepts(predicate model.DocumentPredicate, id model.DocID) bool {
	data, ok := s.documentStore.Data(id)
	if !ok {
		return false
	}
	return predicate(id, data.Status, data.Rating)
}

// rank materializes the accumulated relevances in ascending ID order, sorts
// them stably by relevance with the rating tie-break, and truncates to the
// result cap.
func (s *Service) rank(relevances map[model.DocID]float64) []model.Document {
	ids := make([]model.DocID, 0, len(relevances))
	for id := range relevances {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	matched := make([]model.Document, 0, len(ids))
	for _, id := range ids {
		data, _ := s.documentStore.Data(id)
		matched = append(matched, model.Document{
			ID:        id,
			Relevance: relevances[id],
			Rating:    data.Rating,
		})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		left, right := matched[i], matched[j]
		if diff := left.Relevance - right.Relevance; diff < config.RelevanceEpsilon && diff > -config.RelevanceEpsilon {
			return left.Rating > right.Rating
		}
		return left.Relevance > right.Relevance
	})

	if len(matched) > config.MaxResultDocumentCount {
		matched = matched[:config.MaxResultDocumentCount]
	}
	return matched
}

// inverseDocumentFrequency is ln(liveDocs / documentFrequency).
func (s *Service) inverseDocumentFrequency(documentFrequency int) float64 {
	return logRatio(s.documentStore.Count(), documentFrequency)
}
