// Package repository provides the PostgreSQL-backed document store.
// Every collection is a table holding JSONB documents keyed by store identifier.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/recetario/recetario/internal/store"
)

// Options tunes the connection pool.
type Options struct {
	MaxConns int32
	MinConns int32
}

// Repository implements store.Store on top of a pgx connection pool.
type Repository struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Repository)(nil)

// New creates a new Repository with a connection pool and applies migrations.
func New(ctx context.Context, databaseURL string, opts Options) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		config.MinConns = opts.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, databaseURL); err != nil {
		pool.Close()
		return nil, err
	}

	return &Repository{pool: pool}, nil
}

// Collection returns the named collection.
func (r *Repository) Collection(name string) store.Collection {
	return &Collection{
		pool:  r.pool,
		name:  name,
		table: pgx.Identifier{name}.Sanitize(),
	}
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}
