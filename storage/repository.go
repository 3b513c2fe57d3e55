// Package storage provides the persistence abstraction for portfolio
// content records.
//
// Records are opaque JSON documents keyed by (collection, id). The schema of
// each document belongs to the content layer; backends only move bytes. This
// keeps the memory, BBolt, and PostgreSQL backends interchangeable behind a
// fixed query interface.
package storage

import "errors"

// ErrNotFound is returned when no record exists for a (collection, id) pair.
var ErrNotFound = errors.New("record not found")

// Repository defines the fixed query interface for content records.
type Repository interface {
	// Put stores doc under (collection, id), replacing any existing record.
	Put(collection, id string, doc []byte) error
	// Get returns the document stored under (collection, id), or ErrNotFound.
	Get(collection, id string) ([]byte, error)
	// List returns all documents in a collection keyed by id. An unknown
	// collection yields an empty map, not an error.
	List(collection string) (map[string][]byte, error)
	// Delete removes the record under (collection, id), or returns
	// ErrNotFound if none exists.
	Delete(collection, id string) error
}
