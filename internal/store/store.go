package store

import (
	"context"
	"errors"
)

// Document is a schema-less content document: a mapping from string keys to
// JSON-compatible values (nil, bool, int64, float64, string, []interface{},
// nested map[string]interface{}).
type Document = map[string]interface{}

// ErrNotFound is returned when a collection has no document for the given id.
// Absence is a distinct result, not a store failure: an existing document may
// legitimately be empty.
var ErrNotFound = errors.New("document not found")

// Store is the single access path to the document database. Both access modes
// (privileged server credential and restricted client credential) implement
// this interface identically; callers never know which one served a request.
type Store interface {
	// Get returns the document with the given id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)
	// List returns all documents in the collection keyed by id.
	List(ctx context.Context, collection string) (map[string]Document, error)
	// Set writes the document. With merge=true only the supplied top-level
	// fields are written and unspecified existing fields are preserved
	// (shallow merge: a supplied nested object replaces the stored one
	// wholesale). With merge=false the document is replaced entirely.
	Set(ctx context.Context, collection, id string, doc Document, merge bool) error
	// Delete removes the document; deleting an absent id is not an error.
	Delete(ctx context.Context, collection, id string) error
}
