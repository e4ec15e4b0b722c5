package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/avelichko/go-doc-search/config"
	"github.com/avelichko/go-doc-search/internal/bulk"
	"github.com/avelichko/go-doc-search/internal/dedup"
	"github.com/avelichko/go-doc-search/internal/engine"
	"github.com/avelichko/go-doc-search/internal/paginate"
	"github.com/avelichko/go-doc-search/model"
	"github.com/avelichko/go-doc-search/services"
)

func main() {
	app := &cli.App{
		Name:  "docsearch",
		Usage: "In-memory TF-IDF document search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML settings file (stop words, shards, workers)",
			},
			&cli.StringFlag{
				Name:     "corpus",
				Aliases:  []string{"f"},
				Usage:    "Path to the corpus file, one document per line",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Usage:   "Run search and match under the parallel execution policy",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run a ranked query against the corpus",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "status",
						Usage: "Keep only documents with this status (actual, irrelevant, banned, removed)",
						Value: "actual",
					},
					&cli.IntFlag{
						Name:  "page-size",
						Usage: "Print results in pages of this size",
						Value: config.MaxResultDocumentCount,
					},
				},
			},
			{
				Name:      "match",
				Usage:     "Report which query words a document contains",
				ArgsUsage: "<query> <doc-id>",
				Action:    matchCommand,
			},
			{
				Name:      "batch",
				Usage:     "Run every query from a file concurrently",
				ArgsUsage: "<queries-file>",
				Action:    batchCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "joined",
						Usage: "Flatten the per-query results into one list",
					},
				},
			},
			{
				Name:   "dedup",
				Usage:  "Report and remove documents with duplicate term sets",
				Action: dedupCommand,
			},
			{
				Name:   "stats",
				Usage:  "Print corpus statistics",
				Action: statsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// buildEngine loads the settings and the corpus named by the global flags.
func buildEngine(c *cli.Context) (*engine.Engine, error) {
	settings := config.DefaultSettings()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	eng, err := engine.New(settings.StopWords,
		engine.WithShardCount(settings.ShardCount),
		engine.WithWorkers(settings.Workers),
		engine.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	if err := loadCorpus(eng, c.String("corpus")); err != nil {
		eng.Close()
		return nil, err
	}
	return eng, nil
}

func policyFlag(c *cli.Context) services.Policy {
	if c.Bool("parallel") {
		return services.Parallel
	}
	return services.Sequenced
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one query argument")
	}
	status, err := model.ParseStatus(c.String("status"))
	if err != nil {
		return err
	}

	eng, err := buildEngine(c)
	if err != nil {
		return err
	}
	defer eng.Close()

	docs, err := eng.FindTopDocumentsWith(policyFlag(c), c.Args().Get(0), model.StatusIs(status))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	pageNumber := 0
	for page := range paginate.Iter(docs, c.Int("page-size")) {
		pageNumber++
		fmt.Printf("page %d\n", pageNumber)
		for _, doc := range page {
			printDocument(doc)
		}
	}
	if pageNumber == 0 {
		fmt.Println("no documents found")
	}
	return nil
}

func matchCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected a query and a document id")
	}
	id, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid document id %q", c.Args().Get(1))
	}

	eng, err := buildEngine(c)
	if err != nil {
		return err
	}
	defer eng.Close()

	result, err := eng.MatchDocumentWith(policyFlag(c), c.Args().Get(0), id)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}
	fmt.Printf("doc %d (%s): %s\n", id, result.Status, strings.Join(result.Words, " "))
	return nil
}

func batchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected a queries file argument")
	}
	queries, err := readLines(c.Args().Get(0))
	if err != nil {
		return err
	}

	eng, err := buildEngine(c)
	if err != nil {
		return err
	}
	defer eng.Close()

	if c.Bool("joined") {
		for _, doc := range bulk.ProcessQueriesJoined(eng, queries) {
			printDocument(doc)
		}
		return nil
	}
	for i, docs := range bulk.ProcessQueries(eng, queries) {
		fmt.Printf("query %q: %d documents\n", queries[i], len(docs))
		for _, doc := range docs {
			printDocument(doc)
		}
	}
	return nil
}

func dedupCommand(c *cli.Context) error {
	eng, err := buildEngine(c)
	if err != nil {
		return err
	}
	defer eng.Close()

	before := eng.DocumentCount()
	if err := dedup.RemoveDuplicates(eng, os.Stdout); err != nil {
		return fmt.Errorf("deduplication failed: %w", err)
	}
	fmt.Printf("documents: %d before, %d after\n", before, eng.DocumentCount())
	return nil
}

func statsCommand(c *cli.Context) error {
	eng, err := buildEngine(c)
	if err != nil {
		return err
	}
	defer eng.Close()

	fmt.Printf("documents: %d\n", eng.DocumentCount())
	fmt.Printf("distinct terms: %d\n", eng.TermCount())
	return nil
}

func printDocument(doc model.Document) {
	fmt.Printf("  id %d, relevance %.6f, rating %d\n", doc.ID, doc.Relevance, doc.Rating)
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.String("log-level"))
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
