package dedup

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/go-doc-search/internal/engine"
	"github.com/avelichko/go-doc-search/model"
)

func newDuplicateCorpus(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.NewFromText("and with")
	require.NoError(t, err)
	t.Cleanup(eng.Close)

	corpus := []struct {
		id   model.DocID
		text string
	}{
		{1, "funny pet and nasty rat"},
		{2, "funny pet with curly hair"},
		// Byte-identical to document 2.
		{3, "funny pet with curly hair"},
		// Same term set as document 2, different stop words in between.
		{4, "funny pet and curly hair"},
		// Same term set as document 1, different frequencies.
		{5, "funny funny pet and nasty nasty rat"},
		{6, "funny pet and not very nasty rat"},
		// Same term set as document 6 in a different order.
		{7, "very nasty rat and not very funny pet"},
		{8, "pet with rat and rat and rat"},
		{9, "nasty rat with curly hair"},
	}
	for _, doc := range corpus {
		require.NoError(t, eng.AddDocument(doc.id, doc.text, model.StatusActual, []int{1, 2}))
	}
	return eng
}

func TestRemoveDuplicates(t *testing.T) {
	eng := newDuplicateCorpus(t)
	require.Equal(t, 9, eng.DocumentCount())

	var out bytes.Buffer
	require.NoError(t, RemoveDuplicates(eng, &out))

	assert.Equal(t,
		"Found duplicate document id 3\n"+
			"Found duplicate document id 4\n"+
			"Found duplicate document id 5\n"+
			"Found duplicate document id 7\n",
		out.String())
	assert.Equal(t, 5, eng.DocumentCount())

	var ids []model.DocID
	for id := range eng.IterDocIDs() {
		ids = append(ids, id)
	}
	assert.Equal(t, []model.DocID{1, 2, 6, 8, 9}, ids)
}

func TestRemoveDuplicatesIsIdempotent(t *testing.T) {
	eng := newDuplicateCorpus(t)

	require.NoError(t, RemoveDuplicates(eng, nil))
	require.Equal(t, 5, eng.DocumentCount())

	var out bytes.Buffer
	require.NoError(t, RemoveDuplicates(eng, &out))
	assert.Empty(t, out.String())
	assert.Equal(t, 5, eng.DocumentCount())
}

func TestRemoveDuplicatesEmptyCorpus(t *testing.T) {
	eng, err := engine.NewFromText("")
	require.NoError(t, err)
	defer eng.Close()

	var out bytes.Buffer
	require.NoError(t, RemoveDuplicates(eng, &out))
	assert.Empty(t, out.String())
}
