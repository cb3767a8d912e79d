package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/recetario/recetario/internal/store"
)

// Collection is a JSONB-backed document collection.
type Collection struct {
	pool  *pgxpool.Pool
	name  string
	table string
}

var _ store.Collection = (*Collection)(nil)

// Find returns every matching document in insertion order.
func (c *Collection) Find(ctx context.Context, filter store.Filter) ([]store.Document, error) {
	if err := c.check(); err != nil {
		return nil, err
	}

	where, args := buildWhere(filter, nil)
	query := `SELECT id, doc FROM ` + c.table + ` WHERE ` + where + ` ORDER BY seq`

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", c.name, err)
	}
	defer rows.Close()

	docs := make([]store.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", c.name, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", c.name, err)
	}

	return docs, nil
}

// FindOne returns the first matching document.
func (c *Collection) FindOne(ctx context.Context, filter store.Filter) (store.Document, error) {
	if err := c.check(); err != nil {
		return nil, err
	}

	where, args := buildWhere(filter, nil)
	query := `SELECT id, doc FROM ` + c.table + ` WHERE ` + where + ` ORDER BY seq LIMIT 1`

	doc, err := scanDocument(c.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to find one %s: %w", c.name, err)
	}

	return doc, nil
}

// InsertOne stores doc under a new identifier.
func (c *Collection) InsertOne(ctx context.Context, doc store.Document) (string, error) {
	if err := c.check(); err != nil {
		return "", err
	}

	body, err := marshalBody(doc)
	if err != nil {
		return "", err
	}

	id := store.NewID()
	query := `INSERT INTO ` + c.table + ` (id, doc) VALUES ($1, $2::jsonb)`

	if _, err := c.pool.Exec(ctx, query, id, body); err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", c.name, err)
	}

	return id, nil
}

// UpdateOne merges set into the first matching document.
func (c *Collection) UpdateOne(ctx context.Context, filter store.Filter, set store.Document) (int64, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	if _, ok := set[store.IDField]; ok {
		return 0, store.ErrImmutableField
	}

	body, err := marshalBody(set)
	if err != nil {
		return 0, err
	}

	where, args := buildWhere(filter, []any{body})
	query := `UPDATE ` + c.table + ` SET doc = doc || $1::jsonb
		WHERE id = (SELECT id FROM ` + c.table + ` WHERE ` + where + ` ORDER BY seq LIMIT 1)`

	tag, err := c.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", c.name, err)
	}

	return tag.RowsAffected(), nil
}

// DeleteOne removes the first matching document.
func (c *Collection) DeleteOne(ctx context.Context, filter store.Filter) (int64, error) {
	if err := c.check(); err != nil {
		return 0, err
	}

	where, args := buildWhere(filter, nil)
	query := `DELETE FROM ` + c.table + `
		WHERE id = (SELECT id FROM ` + c.table + ` WHERE ` + where + ` ORDER BY seq LIMIT 1)`

	tag, err := c.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", c.name, err)
	}

	return tag.RowsAffected(), nil
}

// DeleteMany removes every matching document.
func (c *Collection) DeleteMany(ctx context.Context, filter store.Filter) (int64, error) {
	if err := c.check(); err != nil {
		return 0, err
	}

	where, args := buildWhere(filter, nil)
	query := `DELETE FROM ` + c.table + ` WHERE ` + where

	tag, err := c.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete many from %s: %w", c.name, err)
	}

	return tag.RowsAffected(), nil
}

func (c *Collection) check() error {
	if !store.KnownCollection(c.name) {
		return fmt.Errorf("%w: %s", store.ErrUnknownCollection, c.name)
	}
	return nil
}

// buildWhere renders filter as a SQL boolean expression. Placeholders are
// numbered after the arguments already present in args.
func buildWhere(filter store.Filter, args []any) (string, []any) {
	if len(filter) == 0 {
		return "TRUE", args
	}

	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	clauses := make([]string, 0, len(filter))
	for _, cond := range filter {
		clauses = append(clauses, renderCond(cond, next))
	}

	return strings.Join(clauses, " AND "), args
}

func renderCond(cond store.Cond, next func(any) string) string {
	isID := cond.Field == store.IDField

	switch cond.Op {
	case store.OpEq:
		if isID {
			id, ok := cond.Value.(string)
			if !ok {
				return "FALSE"
			}
			return "id = " + next(id)
		}
		return "doc -> " + next(cond.Field) + "::text = " + next(jsonText(cond.Value)) + "::jsonb"

	case store.OpIn:
		if isID {
			ids := make([]string, 0, len(cond.Values))
			for _, v := range cond.Values {
				if id, ok := v.(string); ok {
					ids = append(ids, id)
				}
			}
			return "id = ANY(" + next(ids) + "::text[])"
		}
		values := make([]string, 0, len(cond.Values))
		for _, v := range cond.Values {
			values = append(values, jsonText(v))
		}
		return "doc -> " + next(cond.Field) + "::text = ANY(" + next(values) + "::jsonb[])"

	case store.OpContainsFold:
		sub, _ := cond.Value.(string)
		if isID {
			return "strpos(lower(id), lower(" + next(sub) + "::text)) > 0"
		}
		return "strpos(lower(doc ->> " + next(cond.Field) + "::text), lower(" + next(sub) + "::text)) > 0"
	}

	return "FALSE"
}

func jsonText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func marshalBody(doc store.Document) (string, error) {
	body := make(store.Document, len(doc))
	for k, v := range doc {
		if k == store.IDField {
			continue
		}
		body[k] = v
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}
	return string(b), nil
}

func scanDocument(row pgx.Row) (store.Document, error) {
	var (
		id  string
		raw []byte
	)
	if err := row.Scan(&id, &raw); err != nil {
		return nil, err
	}

	doc := store.Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	doc[store.IDField] = id

	return doc, nil
}
