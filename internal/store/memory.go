package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Store. Documents are kept in insertion order and
// copied on every read and write, so callers never share maps with the store.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store with the system collections.
func NewMemory() *Memory {
	m := &Memory{collections: make(map[string]*memoryCollection)}
	for _, name := range []string{Users, Recipes, Ingredients} {
		m.collections[name] = &memoryCollection{name: name, store: m}
	}
	return m
}

// Collection returns the named collection. Unknown names yield a collection
// whose operations fail with ErrUnknownCollection.
func (m *Memory) Collection(name string) Collection {
	if c, ok := m.collections[name]; ok {
		return c
	}
	return unknownCollection{name: name}
}

// Ping always succeeds.
func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

type memoryCollection struct {
	name  string
	store *Memory
	docs  []Document
}

func (c *memoryCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	out := make([]Document, 0)
	for _, doc := range c.docs {
		if filter.Match(doc) {
			out = append(out, clone(doc))
		}
	}
	return out, nil
}

func (c *memoryCollection) FindOne(ctx context.Context, filter Filter) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	for _, doc := range c.docs {
		if filter.Match(doc) {
			return clone(doc), nil
		}
	}
	return nil, ErrNoDocuments
}

func (c *memoryCollection) InsertOne(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	stored, err := normalizeDocument(doc)
	if err != nil {
		return "", err
	}
	id := NewID()
	stored[IDField] = id

	c.store.mu.Lock()
	c.docs = append(c.docs, stored)
	c.store.mu.Unlock()

	return id, nil
}

func (c *memoryCollection) UpdateOne(ctx context.Context, filter Filter, set Document) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if _, ok := set[IDField]; ok {
		return 0, ErrImmutableField
	}
	patch, err := normalizeDocument(set)
	if err != nil {
		return 0, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, doc := range c.docs {
		if filter.Match(doc) {
			for k, v := range patch {
				doc[k] = v
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (c *memoryCollection) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for i, doc := range c.docs {
		if filter.Match(doc) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (c *memoryCollection) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	kept := c.docs[:0]
	var deleted int64
	for _, doc := range c.docs {
		if filter.Match(doc) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	c.docs = kept
	return deleted, nil
}

// normalizeDocument round-trips doc through JSON so stored values have the
// same shapes a persistent store would return.
func normalizeDocument(doc Document) (Document, error) {
	if doc == nil {
		return Document{}, nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var out Document
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	if out == nil {
		out = Document{}
	}
	return out, nil
}

// clone copies the top level of doc. Nested values are never mutated in place.
func clone(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

type unknownCollection struct {
	name string
}

func (u unknownCollection) err() error {
	return fmt.Errorf("%w: %s", ErrUnknownCollection, u.name)
}

func (u unknownCollection) Find(context.Context, Filter) ([]Document, error) {
	return nil, u.err()
}

func (u unknownCollection) FindOne(context.Context, Filter) (Document, error) {
	return nil, u.err()
}

func (u unknownCollection) InsertOne(context.Context, Document) (string, error) {
	return "", u.err()
}

func (u unknownCollection) UpdateOne(context.Context, Filter, Document) (int64, error) {
	return 0, u.err()
}

func (u unknownCollection) DeleteOne(context.Context, Filter) (int64, error) {
	return 0, u.err()
}

func (u unknownCollection) DeleteMany(context.Context, Filter) (int64, error) {
	return 0, u.err()
}
