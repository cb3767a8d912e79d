// Package store defines the document store contract used by the services.
// A store exposes named collections of JSON-like documents that can be
// queried and mutated by filter.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names.
const (
	Users       = "usuarios"
	Recipes     = "recetas"
	Ingredients = "ingredientes"
)

// IDField is the document field holding the store identifier.
const IDField = "_id"

// Common store errors.
var (
	ErrNoDocuments       = errors.New("no documents in result")
	ErrImmutableField    = errors.New("field _id is immutable")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Document is a single stored record. Numbers decode as float64.
type Document map[string]any

// ID returns the store identifier of the document, or "" when absent.
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Collection is a named set of documents.
type Collection interface {
	// Find returns every document matching filter in insertion order.
	Find(ctx context.Context, filter Filter) ([]Document, error)
	// FindOne returns the first matching document or ErrNoDocuments.
	FindOne(ctx context.Context, filter Filter) (Document, error)
	// InsertOne stores doc under a freshly generated identifier and returns it.
	InsertOne(ctx context.Context, doc Document) (string, error)
	// UpdateOne merges set into the first matching document.
	// It returns the number of matched documents (0 or 1).
	UpdateOne(ctx context.Context, filter Filter, set Document) (int64, error)
	// DeleteOne removes the first matching document and returns the deleted count.
	DeleteOne(ctx context.Context, filter Filter) (int64, error)
	// DeleteMany removes every matching document and returns the deleted count.
	DeleteMany(ctx context.Context, filter Filter) (int64, error)
}

// Store hands out collections over a single shared connection.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close() error
}

// KnownCollection reports whether name is one of the collections of the system.
func KnownCollection(name string) bool {
	switch name {
	case Users, Recipes, Ingredients:
		return true
	}
	return false
}

// Encode converts v into a Document through its JSON representation.
func Encode(v any) (Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return doc, nil
}

// Decode fills out from doc through its JSON representation.
func Decode(doc Document, out any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// DecodeAll decodes every document into a freshly allocated slice of T.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := Decode(doc, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
