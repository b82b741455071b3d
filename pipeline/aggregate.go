package pipeline

import (
	"slices"

	"github.com/ardnew/aq/ason"
)

// Aggregate reduces the loaded documents to a single root document.
// One document is returned as is. Two or more are wrapped, in order,
// in a tuple.
func Aggregate(docs []*ason.Value) (*ason.Value, error) {
	switch len(docs) {
	case 0:
		return nil, ErrNoDocuments
	case 1:
		return docs[0], nil
	default:
		return ason.Tuple(slices.Clone(docs)...), nil
	}
}
