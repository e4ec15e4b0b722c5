package search

import (
	"sort"

	"github.com/avelichko/go-doc-search/internal/errors"
	"github.com/avelichko/go-doc-search/model"
	"github.com/avelichko/go-doc-search/services"
)

// MatchDocument reports which plus-words of the query occur in the document.
func (s *Service) MatchDocument(rawQuery string, id model.DocID) (services.MatchResult, error) {
	return s.MatchDocumentWith(false, rawQuery, id)
}

// MatchDocumentWith reports the match under the given execution mode. The
// parallel variant works on the duplicate-preserving word lists and dedupes
// after the fact; both variants return identical results. Neither variant
// uses the worker pool.
func (s *Service) MatchDocumentWith(parallel bool, rawQuery string, id model.DocID) (services.MatchResult, error) {
	if parallel {
		return s.matchVec(rawQuery, id)
	}
	return s.matchSet(rawQuery, id)
}

func (s *Service) matchSet(rawQuery string, id model.DocID) (services.MatchResult, error) {
	q, err := s.parser.Parse(rawQuery)
	if err != nil {
		return services.MatchResult{}, err
	}
	if id < 0 {
		return services.MatchResult{}, errors.NewInvalidIDError(id)
	}
	data, ok := s.documentStore.Data(id)
	if !ok {
		return services.MatchResult{}, errors.NewDocumentNotFoundError(id)
	}

	s.forwardIndex.Mu.RLock()
	defer s.forwardIndex.Mu.RUnlock()
	row := s.forwardIndex.Row(id)

	result := services.MatchResult{Words: []string{}, Status: data.Status}
	for word := range q.Minus {
		if row.Contains(word) {
			return result, nil
		}
	}
	for word := range q.Plus {
		if row.Contains(word) {
			result.Words = append(result.Words, word)
		}
	}
	sort.Strings(result.Words)
	return result, nil
}

func (s *Service) matchVec(rawQuery string, id model.DocID) (services.MatchResult, error) {
	q, err := s.parser.ParseVec(rawQuery)
	if err != nil {
		return services.MatchResult{}, err
	}
	if id < 0 {
		return services.MatchResult{}, errors.NewInvalidIDError(id)
	}
	data, ok := s.documentStore.Data(id)
	if !ok {
		return services.MatchResult{}, errors.NewDocumentNotFoundError(id)
	}

	s.forwardIndex.Mu.RLock()
	defer s.forwardIndex.Mu.RUnlock()
	row := s.forwardIndex.Row(id)

	result := services.MatchResult{Words: []string{}, Status: data.Status}
	for _, word := range q.Minus {
		if row.Contains(word) {
			return result, nil
		}
	}
	for _, word := range q.Plus {
		if row.Contains(word) {
			result.Words = append(result.Words, word)
		}
	}
	sort.Strings(result.Words)
	result.Words = dedupeSorted(result.Words)
	return result, nil
}

// dedupeSorted removes adjacent duplicates from a sorted slice in place.
func dedupeSorted(words []string) []string {
	if len(words) < 2 {
		return words
	}
	out := words[:1]
	for _, word := range words[1:] {
		if word != out[len(out)-1] {
			out = append(out, word)
		}
	}
	return out
}
