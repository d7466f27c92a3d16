// Package mirror copies plural collections to a remote document store.
//
// The local backend stays authoritative. Writes reach the remote side
// asynchronously and their failures are only logged; reads fall back to the
// remote side only for keys that are absent locally.
package mirror

import "context"

// Document is one JSON object of a collection
type Document map[string]any

// DocumentStore is a remote store of documents grouped in named collections
type DocumentStore interface {
	// AddDocument stores data under a new generated id and returns that id
	AddDocument(ctx context.Context, collection string, data Document) (string, error)
	// SetDocument creates or replaces the document with the given id
	SetDocument(ctx context.Context, collection, id string, data Document) error
	// GetCollection returns every document of collection in insertion order
	GetCollection(ctx context.Context, collection string) ([]Document, error)
	// UpdateDocument merges patch into an existing document; nil values remove fields
	UpdateDocument(ctx context.Context, collection, id string, patch Document) error
	// DeleteDocument removes a document; removing an absent one is not an error
	DeleteDocument(ctx context.Context, collection, id string) error
}
