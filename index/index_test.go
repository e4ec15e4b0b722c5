package index

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelichko/go-doc-search/model"
)

func TestInvertedIndexAdd(t *testing.T) {
	ii := NewInvertedIndex()

	ii.Add("cat", 1, 0.5)
	ii.Add("cat", 2, 0.25)
	ii.Add("cat", 1, 0.5)
	ii.Add("dog", 2, 0.25)

	assert.Equal(t, Postings{1: 1.0, 2: 0.25}, ii.Postings("cat"))
	assert.Equal(t, 2, ii.DocumentFrequency("cat"))
	assert.Equal(t, 1, ii.DocumentFrequency("dog"))
	assert.Equal(t, 0, ii.DocumentFrequency("rat"))
	assert.Nil(t, ii.Postings("rat"))
	assert.Equal(t, []string{"cat", "dog"}, ii.Terms())
}

func TestPostingsSortedDocs(t *testing.T) {
	p := Postings{42: 0.1, 7: 0.2, 100: 0.3}
	assert.Equal(t, []model.DocID{7, 42, 100}, p.SortedDocs())
}

func TestForwardIndexRow(t *testing.T) {
	fi := NewForwardIndex()

	fi.Add(1, "cat", 0.5)
	fi.Add(1, "city", 0.5)
	fi.Add(2, "dog", 1.0)

	row := fi.Row(1)
	assert.Equal(t, Frequencies{"cat": 0.5, "city": 0.5}, row)
	assert.True(t, row.Contains("cat"))
	assert.False(t, row.Contains("dog"))
	assert.Equal(t, []string{"cat", "city"}, row.SortedTerms())

	assert.Nil(t, fi.Row(99))
	assert.False(t, fi.Row(99).Contains("cat"))

	fi.Delete(1)
	assert.Nil(t, fi.Row(1))
}

func TestIndexesMirror(t *testing.T) {
	ii := NewInvertedIndex()
	fi := NewForwardIndex()

	docs := map[model.DocID]map[string]float64{
		1: {"funny": 0.2, "pet": 0.2, "nasty": 0.2, "rat": 0.4},
		2: {"funny": 0.25, "pet": 0.25, "curly": 0.25, "hair": 0.25},
	}
	for id, terms := range docs {
		for term, tf := range terms {
			ii.Add(term, id, tf)
			fi.Add(id, term, tf)
		}
	}

	for term, postings := range ii.Index {
		for id, tf := range postings {
			assert.Equal(t, tf, fi.Row(id)[term], "term %q doc %d", term, id)
		}
	}
	for id, row := range fi.Rows {
		for term, tf := range row {
			assert.Equal(t, tf, ii.Postings(term)[id], "doc %d term %q", id, term)
		}
	}
}
