package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/avelichko/go-doc-search/internal/engine"
	"github.com/avelichko/go-doc-search/model"
)

// loadCorpus indexes every line of the corpus file. A plain line is a
// document body whose ID is the line's position. A line with tab separators
// is "id<TAB>status<TAB>ratings<TAB>text" with ratings comma-separated and
// possibly empty.
func loadCorpus(eng *engine.Engine, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNo++
		if line == "" {
			continue
		}

		id := lineNo - 1
		status := model.StatusActual
		var ratings []int
		text := line

		if strings.Contains(line, "\t") {
			fields := strings.SplitN(line, "\t", 4)
			if len(fields) != 4 {
				return fmt.Errorf("corpus line %d: expected 4 tab-separated fields, got %d", lineNo, len(fields))
			}
			id, err = strconv.Atoi(fields[0])
			if err != nil {
				return fmt.Errorf("corpus line %d: invalid document id %q", lineNo, fields[0])
			}
			status, err = model.ParseStatus(fields[1])
			if err != nil {
				return fmt.Errorf("corpus line %d: %w", lineNo, err)
			}
			ratings, err = parseRatings(fields[2])
			if err != nil {
				return fmt.Errorf("corpus line %d: %w", lineNo, err)
			}
			text = fields[3]
		}

		if err := eng.AddDocument(id, text, status, ratings); err != nil {
			return fmt.Errorf("corpus line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	return nil
}

func parseRatings(field string) ([]int, error) {
	if field == "" {
		return nil, nil
	}
	parts := strings.Split(field, ",")
	ratings := make([]int, 0, len(parts))
	for _, part := range parts {
		rating, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid rating %q", part)
		}
		ratings = append(ratings, rating)
	}
	return ratings, nil
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}
