package testutil

import (
	"context"
	"sync"

	"github.com/recetario/recetario/internal/store"
)

// Collection operations that FailingStore can fail.
const (
	OpFind       = "Find"
	OpFindOne    = "FindOne"
	OpInsertOne  = "InsertOne"
	OpUpdateOne  = "UpdateOne"
	OpDeleteOne  = "DeleteOne"
	OpDeleteMany = "DeleteMany"
)

// FailingStore wraps a Store and makes chosen collection operations return
// an error. Failures can be set after services have taken their collections.
type FailingStore struct {
	store.Store

	mu       sync.RWMutex
	failures map[string]error
}

// NewFailingStore wraps inner with no failures configured.
func NewFailingStore(inner store.Store) *FailingStore {
	return &FailingStore{Store: inner, failures: make(map[string]error)}
}

// FailOn makes op on collection return err from now on.
func (f *FailingStore) FailOn(collection, op string, err error) {
	f.mu.Lock()
	f.failures[collection+"."+op] = err
	f.mu.Unlock()
}

func (f *FailingStore) failure(collection, op string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.failures[collection+"."+op]
}

// Collection returns the wrapped collection.
func (f *FailingStore) Collection(name string) store.Collection {
	return &failingCollection{inner: f.Store.Collection(name), name: name, parent: f}
}

type failingCollection struct {
	inner  store.Collection
	name   string
	parent *FailingStore
}

func (c *failingCollection) Find(ctx context.Context, filter store.Filter) ([]store.Document, error) {
	if err := c.parent.failure(c.name, OpFind); err != nil {
		return nil, err
	}
	return c.inner.Find(ctx, filter)
}

func (c *failingCollection) FindOne(ctx context.Context, filter store.Filter) (store.Document, error) {
	if err := c.parent.failure(c.name, OpFindOne); err != nil {
		return nil, err
	}
	return c.inner.FindOne(ctx, filter)
}

func (c *failingCollection) InsertOne(ctx context.Context, doc store.Document) (string, error) {
	if err := c.parent.failure(c.name, OpInsertOne); err != nil {
		return "", err
	}
	return c.inner.InsertOne(ctx, doc)
}

func (c *failingCollection) UpdateOne(ctx context.Context, filter store.Filter, set store.Document) (int64, error) {
	if err := c.parent.failure(c.name, OpUpdateOne); err != nil {
		return 0, err
	}
	return c.inner.UpdateOne(ctx, filter, set)
}

func (c *failingCollection) DeleteOne(ctx context.Context, filter store.Filter) (int64, error) {
	if err := c.parent.failure(c.name, OpDeleteOne); err != nil {
		return 0, err
	}
	return c.inner.DeleteOne(ctx, filter)
}

func (c *failingCollection) DeleteMany(ctx context.Context, filter store.Filter) (int64, error) {
	if err := c.parent.failure(c.name, OpDeleteMany); err != nil {
		return 0, err
	}
	return c.inner.DeleteMany(ctx, filter)
}
