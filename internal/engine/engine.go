package engine

import (
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"

	"github.com/avelichko/go-doc-search/config"
	"github.com/avelichko/go-doc-search/index"
	"github.com/avelichko/go-doc-search/internal/errors"
	"github.com/avelichko/go-doc-search/internal/indexing"
	"github.com/avelichko/go-doc-search/internal/query"
	"github.com/avelichko/go-doc-search/internal/search"
	"github.com/avelichko/go-doc-search/internal/tokenizer"
	"github.com/avelichko/go-doc-search/store"
)

// Engine wires the store, the two indexes, and the indexing and search
// services behind one facade. It owns the worker pool used by parallel
// finds and removals and must be closed when no longer needed.
type Engine struct {
	documentStore *store.DocumentStore
	invertedIndex *index.InvertedIndex
	forwardIndex  *index.ForwardIndex
	stopWords     map[string]struct{}

	indexer  *indexing.Service
	searcher *search.Service

	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures an Engine at construction time.
type Option func(*options)

type options struct {
	shardCount int
	workers    int
	logger     *slog.Logger
}

// WithShardCount sets the shard count of the parallel relevance accumulator.
func WithShardCount(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.shardCount = n
		}
	}
}

// WithWorkers sets the size of the worker pool. Zero or negative disables
// the pool and every parallel operation runs sequentially.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the structured logger. The engine logs under the
// component attribute "engine".
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates an engine with the given stop words. Stop words carrying
// control characters are rejected.
func New(stopWords []string, opts ...Option) (*Engine, error) {
	o := options{
		shardCount: config.DefaultShardCount,
		workers:    runtime.NumCPU(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	stop := make(map[string]struct{}, len(stopWords))
	for _, word := range stopWords {
		if !tokenizer.IsValidWord(word) {
			return nil, errors.NewInvalidCharError(word)
		}
		if word != "" {
			stop[word] = struct{}{}
		}
	}

	var pool *ants.Pool
	if o.workers > 0 {
		p, err := ants.NewPool(o.workers)
		if err != nil {
			return nil, err
		}
		pool = p
	}

	documentStore := store.NewDocumentStore()
	invertedIndex := index.NewInvertedIndex()
	forwardIndex := index.NewForwardIndex()
	isStop := func(word string) bool {
		_, ok := stop[word]
		return ok
	}
	parser := query.NewParser(isStop)

	indexer, err := indexing.NewService(invertedIndex, forwardIndex, documentStore, isStop, pool)
	if err != nil {
		releasePool(pool)
		return nil, err
	}
	searcher, err := search.NewService(invertedIndex, forwardIndex, documentStore, parser, pool, o.shardCount)
	if err != nil {
		releasePool(pool)
		return nil, err
	}

	return &Engine{
		documentStore: documentStore,
		invertedIndex: invertedIndex,
		forwardIndex:  forwardIndex,
		stopWords:     stop,
		indexer:       indexer,
		searcher:      searcher,
		pool:          pool,
		logger:        o.logger.With("component", "engine"),
	}, nil
}

// NewFromText creates an engine whose stop words are the space-separated
// tokens of text.
func NewFromText(stopWordsText string, opts ...Option) (*Engine, error) {
	return New(tokenizer.Tokenize(stopWordsText), opts...)
}

// IsStopWord reports whether word is configured as a stop word.
func (e *Engine) IsStopWord(word string) bool {
	_, ok := e.stopWords[word]
	return ok
}

// Close releases the worker pool. The engine must not be used afterwards.
func (e *Engine) Close() {
	releasePool(e.pool)
	e.pool = nil
}

func releasePool(pool *ants.Pool) {
	if pool != nil {
		pool.Release()
	}
}
