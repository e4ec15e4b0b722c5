// Package query implements the search query grammar: whitespace-separated
// words, an optional leading '-' marking an exclusion, and stop-word
// elision. Malformed tokens are rejected before any engine state is touched.
package query

import (
	"sort"
	"strings"

	"github.com/avelichko/go-doc-search/internal/errors"
	"github.com/avelichko/go-doc-search/internal/tokenizer"
)

// Query holds the parsed form of a raw query string. Plus and Minus are
// sets: duplicate terms within one query are coalesced.
type Query struct {
	Plus  map[string]struct{}
	Minus map[string]struct{}
}

// QueryVec is the vector form used by parallel operations. Order is
// preserved and duplicates are allowed; deduplication happens downstream.
type QueryVec struct {
	Plus  []string
	Minus []string
}

// Word is a single classified query token.
type Word struct {
	Data    string
	IsMinus bool
	IsStop  bool
}

// Parser classifies query tokens against a stop-word set.
type Parser struct {
	isStop func(word string) bool
}

// NewParser creates a parser using the given stop-word test. A nil test
// means no stop words.
func NewParser(isStop func(word string) bool) *Parser {
	if isStop == nil {
		isStop = func(string) bool { return false }
	}
	return &Parser{isStop: isStop}
}

// ParseWord classifies a single token, stripping a leading minus.
func (p *Parser) ParseWord(text string) (Word, error) {
	if text == "" {
		return Word{}, errors.NewEmptyWordError()
	}
	if !tokenizer.IsValidWord(text) {
		return Word{}, errors.NewInvalidCharError(text)
	}
	isMinus := false
	if text[0] == '-' {
		isMinus = true
		text = text[1:]
		if text == "" {
			return Word{}, errors.NewEmptyMinusWordError()
		}
		if strings.HasPrefix(text, "-") {
			return Word{}, errors.NewDoubleMinusError("-" + text)
		}
	}
	return Word{Data: text, IsMinus: isMinus, IsStop: p.isStop(text)}, nil
}

// Parse splits the raw query and classifies every token into the plus or
// minus set. Stop words are discarded. The first malformed token aborts the
// parse.
func (p *Parser) Parse(raw string) (Query, error) {
	q := Query{
		Plus:  make(map[string]struct{}),
		Minus: make(map[string]struct{}),
	}
	for _, token := range tokenizer.Tokenize(raw) {
		word, err := p.ParseWord(token)
		if err != nil {
			return Query{}, err
		}
		if word.IsStop {
			continue
		}
		if word.IsMinus {
			q.Minus[word.Data] = struct{}{}
		} else {
			q.Plus[word.Data] = struct{}{}
		}
	}
	return q, nil
}

// ParseVec is the order-preserving variant backing the parallel execution
// paths. Duplicate terms are kept.
func (p *Parser) ParseVec(raw string) (QueryVec, error) {
	var q QueryVec
	for _, token := range tokenizer.Tokenize(raw) {
		word, err := p.ParseWord(token)
		if err != nil {
			return QueryVec{}, err
		}
		if word.IsStop {
			continue
		}
		if word.IsMinus {
			q.Minus = append(q.Minus, word.Data)
		} else {
			q.Plus = append(q.Plus, word.Data)
		}
	}
	return q, nil
}

// SortedPlus returns the plus set as an ascending slice. Handy for callers
// that need deterministic iteration.
func (q Query) SortedPlus() []string {
	return sortedKeys(q.Plus)
}

// SortedMinus returns the minus set as an ascending slice.
func (q Query) SortedMinus() []string {
	return sortedKeys(q.Minus)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
