package indexing

import (
	"math"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/go-doc-search/index"
	"github.com/avelichko/go-doc-search/internal/errors"
	"github.com/avelichko/go-doc-search/model"
	"github.com/avelichko/go-doc-search/store"
)

type fixture struct {
	inverted *index.InvertedIndex
	forward  *index.ForwardIndex
	docs     *store.DocumentStore
	service  *Service
}

func newFixture(t *testing.T, stopWords ...string) *fixture {
	t.Helper()
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[w] = struct{}{}
	}
	f := &fixture{
		inverted: index.NewInvertedIndex(),
		forward:  index.NewForwardIndex(),
		docs:     store.NewDocumentStore(),
	}
	service, err := NewService(f.inverted, f.forward, f.docs, func(word string) bool {
		_, ok := stop[word]
		return ok
	}, nil)
	require.NoError(t, err)
	f.service = service
	return f
}

func TestNewService(t *testing.T) {
	t.Run("nil inverted index", func(t *testing.T) {
		_, err := NewService(nil, index.NewForwardIndex(), store.NewDocumentStore(), nil, nil)
		assert.ErrorIs(t, err, errors.ErrNilComponent)
	})
	t.Run("nil forward index", func(t *testing.T) {
		_, err := NewService(index.NewInvertedIndex(), nil, store.NewDocumentStore(), nil, nil)
		assert.ErrorIs(t, err, errors.ErrNilComponent)
	})
	t.Run("nil document store", func(t *testing.T) {
		_, err := NewService(index.NewInvertedIndex(), index.NewForwardIndex(), nil, nil, nil)
		assert.ErrorIs(t, err, errors.ErrNilComponent)
	})
}

func TestAddDocument(t *testing.T) {
	t.Run("indexes term frequencies", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.service.AddDocument(1, "cat in the cat city", model.StatusActual, []int{1, 2, 3}))

		assert.Equal(t, index.Frequencies{"cat": 0.4, "in": 0.2, "the": 0.2, "city": 0.2}, f.forward.Row(1))
		assert.Equal(t, index.Postings{1: 0.4}, f.inverted.Postings("cat"))

		data, ok := f.docs.Data(1)
		require.True(t, ok)
		assert.Equal(t, 2, data.Rating)
		assert.Equal(t, model.StatusActual, data.Status)
	})

	t.Run("stop words never indexed", func(t *testing.T) {
		f := newFixture(t, "in", "the")
		require.NoError(t, f.service.AddDocument(1, "cat in the city", model.StatusActual, nil))

		assert.Equal(t, index.Frequencies{"cat": 0.5, "city": 0.5}, f.forward.Row(1))
		assert.Nil(t, f.inverted.Postings("in"))
		assert.Nil(t, f.inverted.Postings("the"))
	})

	t.Run("all stop words still registers the document", func(t *testing.T) {
		f := newFixture(t, "in", "the")
		require.NoError(t, f.service.AddDocument(1, "in the", model.StatusActual, nil))

		assert.True(t, f.docs.Has(1))
		assert.Nil(t, f.forward.Row(1))
		assert.Empty(t, f.inverted.Index)
	})

	t.Run("negative id", func(t *testing.T) {
		f := newFixture(t)
		err := f.service.AddDocument(-1, "cat", model.StatusActual, nil)
		assert.ErrorIs(t, err, errors.ErrInvalidID)
	})

	t.Run("duplicate id", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.service.AddDocument(1, "cat", model.StatusActual, nil))
		err := f.service.AddDocument(1, "dog", model.StatusActual, nil)
		assert.ErrorIs(t, err, errors.ErrDuplicateID)
	})

	t.Run("control character rejects without mutation", func(t *testing.T) {
		f := newFixture(t)
		err := f.service.AddDocument(3, "big dog star\x12ling", model.StatusActual, []int{1, 3, 2})
		assert.ErrorIs(t, err, errors.ErrInvalidChar)
		assert.False(t, f.docs.Has(3))
		assert.Nil(t, f.inverted.Postings("big"))
	})

	t.Run("leading minus is a plain character in documents", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.service.AddDocument(1, "-cat --dog", model.StatusActual, nil))
		assert.Equal(t, index.Frequencies{"-cat": 0.5, "--dog": 0.5}, f.forward.Row(1))
	})
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    int
	}{
		{name: "empty", ratings: nil, want: 0},
		{name: "simple mean", ratings: []int{1, 2, 3}, want: 2},
		{name: "truncates toward zero", ratings: []int{1, 2}, want: 1},
		{name: "negative truncates toward zero", ratings: []int{-1, -2}, want: -1},
		{name: "large positive", ratings: []int{math.MaxInt32 - 50, 20, 20, 10}, want: math.MaxInt32 / 4},
		{name: "large negative", ratings: []int{math.MinInt32 + 5, -2, -3}, want: math.MinInt32 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, averageRating(tt.ratings))
		})
	}
}

func TestRemoveDocument(t *testing.T) {
	t.Run("clears every trace of the document", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.service.AddDocument(1, "cat city", model.StatusActual, nil))
		require.NoError(t, f.service.AddDocument(2, "cat dog", model.StatusActual, nil))

		require.NoError(t, f.service.RemoveDocument(1))

		assert.False(t, f.docs.Has(1))
		assert.Nil(t, f.forward.Row(1))
		assert.Equal(t, index.Postings{2: 0.5}, f.inverted.Postings("cat"))
		assert.Nil(t, f.inverted.Postings("city"), "emptied posting list must be swept")
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.service.RemoveDocument(9), errors.ErrDocumentNotFound)
	})

	t.Run("negative id", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.service.RemoveDocument(-2), errors.ErrInvalidID)
	})

	t.Run("double removal fails", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.service.AddDocument(1, "cat", model.StatusActual, nil))
		require.NoError(t, f.service.RemoveDocument(1))
		assert.ErrorIs(t, f.service.RemoveDocument(1), errors.ErrDocumentNotFound)
	})
}

func TestRemoveDocumentParallelEquivalence(t *testing.T) {
	pool, err := ants.NewPool(4)
	require.NoError(t, err)
	defer pool.Release()

	corpus := []struct {
		id   model.DocID
		text string
	}{
		{1, "funny pet and nasty rat"},
		{2, "funny pet with curly hair"},
		{3, "nasty rat with curly hair"},
		{4, "pet rat pet rat pet rat"},
	}

	build := func(t *testing.T, pool *ants.Pool) (*Service, *index.InvertedIndex, *index.ForwardIndex, *store.DocumentStore) {
		inverted := index.NewInvertedIndex()
		forward := index.NewForwardIndex()
		docs := store.NewDocumentStore()
		service, err := NewService(inverted, forward, docs, nil, pool)
		require.NoError(t, err)
		for _, doc := range corpus {
			require.NoError(t, service.AddDocument(doc.id, doc.text, model.StatusActual, nil))
		}
		return service, inverted, forward, docs
	}

	seqService, seqInverted, seqForward, seqDocs := build(t, nil)
	parService, parInverted, parForward, parDocs := build(t, pool)

	require.NoError(t, seqService.RemoveDocumentWith(false, 2))
	require.NoError(t, parService.RemoveDocumentWith(true, 2))

	assert.Equal(t, seqInverted.Index, parInverted.Index)
	assert.Equal(t, seqForward.Rows, parForward.Rows)
	assert.Equal(t, seqDocs.IDs(), parDocs.IDs())
}
