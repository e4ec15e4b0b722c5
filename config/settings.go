// Package config provides configuration structures for the document search
// engine: ranking constants, sharding and worker-pool sizing, and the
// settings consumed by the command-line front-end.
package config

import (
	"fmt"
	"runtime"
)

const (
	// MaxResultDocumentCount is the number of top-ranked documents returned
	// by a find operation.
	MaxResultDocumentCount = 5

	// RelevanceEpsilon is the band within which two relevance values are
	// considered equal and ordering falls back to the document rating.
	RelevanceEpsilon = 1e-6

	// RequestWindow is the capacity of the recent-request statistics window.
	RequestWindow = 1440

	// DefaultShardCount is the number of buckets the concurrent relevance
	// accumulator is split into under the parallel policy.
	DefaultShardCount = 101
)

// Settings contains the tunable options for one engine instance.
type Settings struct {
	StopWords  []string `json:"stop_words" yaml:"stop_words"`   // Terms excluded from indexing and querying
	ShardCount int      `json:"shard_count" yaml:"shard_count"` // Buckets in the concurrent accumulator
	Workers    int      `json:"workers" yaml:"workers"`         // Goroutines in the parallel execution pool
}

// DefaultSettings returns settings suitable for most corpora: a prime shard
// count and one worker per CPU.
func DefaultSettings() Settings {
	return Settings{
		ShardCount: DefaultShardCount,
		Workers:    runtime.NumCPU(),
	}
}

// Validate checks the settings for values the engine cannot run with.
func (s *Settings) Validate() error {
	if s.ShardCount < 1 {
		return fmt.Errorf("shard count must be at least 1, got %d", s.ShardCount)
	}
	if s.Workers < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", s.Workers)
	}
	return nil
}
