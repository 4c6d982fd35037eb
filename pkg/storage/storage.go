package storage

import (
	"context"
	"errors"
)

var ErrInvalidKey = errors.New("collection id and document id cannot be empty")

// Fields is the content of a single document: a flat map of field name to value.
type Fields map[string]any

// Storage is a two-level document store: collection -> document -> fields.
type Storage interface {
	// AddDocument replaces the whole content of the document with fields, creating it if needed.
	AddDocument(ctx context.Context, collectionId, documentId string, fields Fields) error
	// GetCollection returns every document of the collection. An unknown collection yields an empty slice.
	GetCollection(ctx context.Context, collectionId string) ([]Fields, error)
	// DeleteDocument removes a single document. Removing a missing document is not an error.
	DeleteDocument(ctx context.Context, collectionId, documentId string) error
	// ClearCollection removes every document of the collection.
	ClearCollection(ctx context.Context, collectionId string) error
}

// Copy returns a shallow copy of the fields.
func (f Fields) Copy() Fields {
	if f == nil {
		return nil
	}
	c := make(Fields, len(f))
	for k, v := range f {
		c[k] = v
	}
	return c
}

func validateKeys(collectionId, documentId string) error {
	if collectionId == "" || documentId == "" {
		return ErrInvalidKey
	}
	return nil
}
