package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads and writes score documents of one collection.
type Repository struct {
	pool       *pgxpool.Pool
	collection string
}

// NewRepository creates a new repository bound to collection.
func NewRepository(pool *pgxpool.Pool, collection string) *Repository {
	return &Repository{pool: pool, collection: collection}
}

// Collection returns the collection the repository is bound to.
func (r *Repository) Collection() string {
	return r.collection
}

// LoadDocuments returns every document of the collection in insertion order.
func (r *Repository) LoadDocuments(ctx context.Context) ([]map[string]any, error) {
	rows, err := r.pool.Query(ctx, "SELECT body FROM documents WHERE collection = $1 ORDER BY id", r.collection)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []map[string]any
	for rows.Next() {
		var doc map[string]any
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// InsertDocuments appends documents to the collection.
// Returns the number of rows inserted.
func (r *Repository) InsertDocuments(ctx context.Context, docs []map[string]any) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, doc := range docs {
		batch.Queue("INSERT INTO documents (collection, body) VALUES ($1, $2)", r.collection, doc)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	count := 0
	for range docs {
		if _, err := br.Exec(); err != nil {
			return count, fmt.Errorf("inserting document: %w", err)
		}
		count++
	}

	return count, nil
}

// CountDocuments returns the number of documents in the collection.
func (r *Repository) CountDocuments(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM documents WHERE collection = $1", r.collection).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}

// GetCollections returns every collection name present in the table.
func (r *Repository) GetCollections(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, "SELECT DISTINCT collection FROM documents ORDER BY collection")
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
