// Package dedup removes documents whose term sets duplicate an earlier
// document's.
package dedup

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/RoaringBitmap/roaring/roaring64"
	"golang.org/x/sync/errgroup"

	"github.com/avelichko/go-doc-search/services"
)

// RemoveDuplicates scans the live documents in ascending ID order and
// removes every document whose set of terms, frequencies ignored, was
// already seen on a lower ID. Each removal is reported on w as
// "Found duplicate document id <id>".
func RemoveDuplicates(searcher services.DocumentSearcher, w io.Writer) error {
	ids := make([]int, 0, searcher.DocumentCount())
	for id := range searcher.IterDocIDs() {
		ids = append(ids, id)
	}

	// Term keys are computed concurrently; the first-wins comparison below
	// stays sequential because it depends on ascending ID order.
	keys := make([]string, len(ids))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, id := range ids {
		g.Go(func() error {
			keys[i] = termKey(searcher.GetWordFrequencies(id).SortedTerms())
			return nil
		})
	}
	g.Wait()

	seen := make(map[string]struct{}, len(ids))
	victims := roaring64.New()
	for i, id := range ids {
		if _, ok := seen[keys[i]]; ok {
			victims.Add(uint64(id))
			continue
		}
		seen[keys[i]] = struct{}{}
	}

	it := victims.Iterator()
	for it.HasNext() {
		id := int(it.Next())
		if w != nil {
			fmt.Fprintf(w, "Found duplicate document id %d\n", id)
		}
		if err := searcher.RemoveDocument(id); err != nil {
			return err
		}
	}
	return nil
}

// termKey folds a sorted term list into one comparison key. Terms never
// contain spaces, so the separator cannot collide.
func termKey(terms []string) string {
	return strings.Join(terms, " ")
}
