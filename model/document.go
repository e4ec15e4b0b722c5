package model

import "fmt"

// DocID identifies a document within the engine. IDs are supplied by the
// caller and must be non-negative.
type DocID = int

// DocumentStatus describes the lifecycle state a document was ingested with.
// The status is immutable after ingestion.
type DocumentStatus int

const (
	StatusActual DocumentStatus = iota
	StatusIrrelevant
	StatusBanned
	StatusRemoved
)

// String returns the lowercase name of the status.
func (s DocumentStatus) String() string {
	switch s {
	case StatusActual:
		return "actual"
	case StatusIrrelevant:
		return "irrelevant"
	case StatusBanned:
		return "banned"
	case StatusRemoved:
		return "removed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseStatus converts a lowercase status name into a DocumentStatus.
func ParseStatus(name string) (DocumentStatus, error) {
	switch name {
	case "actual", "":
		return StatusActual, nil
	case "irrelevant":
		return StatusIrrelevant, nil
	case "banned":
		return StatusBanned, nil
	case "removed":
		return StatusRemoved, nil
	default:
		return StatusActual, fmt.Errorf("unknown document status %q", name)
	}
}

// Document is a single ranked search hit.
type Document struct {
	ID        DocID   `json:"id"`
	Relevance float64 `json:"relevance"`
	Rating    int     `json:"rating"`
}

// DocumentData holds the per-document metadata recorded at ingestion time.
type DocumentData struct {
	Rating int            `json:"rating"`
	Status DocumentStatus `json:"status"`
}

// DocumentPredicate filters candidate documents during ranking. It must be
// pure and safe to call from multiple goroutines under the parallel policy.
type DocumentPredicate func(id DocID, status DocumentStatus, rating int) bool

// StatusIs returns a predicate accepting only documents with the given status.
func StatusIs(status DocumentStatus) DocumentPredicate {
	return func(_ DocID, s DocumentStatus, _ int) bool {
		return s == status
	}
}
