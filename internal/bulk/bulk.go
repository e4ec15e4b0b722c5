// Package bulk runs batches of queries concurrently.
package bulk

import (
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/avelichko/go-doc-search/model"
	"github.com/avelichko/go-doc-search/services"
)

// ProcessQueries runs every query concurrently and returns one result slice
// per query, in query order. A query the searcher rejects contributes an
// empty slice.
func ProcessQueries(searcher services.Searcher, queries []string) [][]model.Document {
	results := make([][]model.Document, len(queries))
	var g errgroup.Group
	for i, rawQuery := range queries {
		g.Go(func() error {
			docs, err := searcher.FindTopDocuments(rawQuery)
			if err != nil {
				slog.Debug("bulk query rejected", "component", "bulk", "query", rawQuery, "error", err)
				docs = []model.Document{}
			}
			results[i] = docs
			return nil
		})
	}
	g.Wait()
	return results
}

// ProcessQueriesStrict runs every query concurrently and fails on the first
// rejected query.
func ProcessQueriesStrict(searcher services.Searcher, queries []string) ([][]model.Document, error) {
	results := make([][]model.Document, len(queries))
	var g errgroup.Group
	for i, rawQuery := range queries {
		g.Go(func() error {
			docs, err := searcher.FindTopDocuments(rawQuery)
			if err != nil {
				return err
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ProcessQueriesJoined flattens the per-query results into one slice,
// keeping query order.
func ProcessQueriesJoined(searcher services.Searcher, queries []string) []model.Document {
	perQuery := ProcessQueries(searcher, queries)
	total := 0
	for _, docs := range perQuery {
		total += len(docs)
	}
	joined := make([]model.Document, 0, total)
	for _, docs := range perQuery {
		joined = append(joined, docs...)
	}
	return joined
}
