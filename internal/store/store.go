// Package store opens the document store that holds the score collection and
// loads it into a dataset.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mauv0809/sdg-dashboard/internal/dataset"
	"github.com/mauv0809/sdg-dashboard/internal/db"
	"github.com/mauv0809/sdg-dashboard/internal/document"
	"github.com/mauv0809/sdg-dashboard/internal/mongo"
	"github.com/rs/zerolog/log"
)

// ErrUnsupportedScheme is returned for store URLs that are neither MongoDB nor Postgres.
var ErrUnsupportedScheme = errors.New("store: unsupported url scheme")

// Source is a document collection.
type Source interface {
	// Name identifies the collection in logs and status output.
	Name() string
	LoadDocuments(ctx context.Context) ([]map[string]any, error)
	InsertDocuments(ctx context.Context, docs []map[string]any) (int, error)
	CountDocuments(ctx context.Context) (int, error)
	Close(ctx context.Context) error
}

// Catalog is implemented by sources that can list the collections stored
// next to theirs.
type Catalog interface {
	GetCollections(ctx context.Context) ([]string, error)
}

// Options selects the store and collection.
type Options struct {
	URL        string
	Database   string // MongoDB database name; unused for Postgres
	Collection string
	Migrate    bool // apply Postgres migrations before connecting
}

// Kind names the backend a store URL points at.
func Kind(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing store url: %w", err)
	}
	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		return "mongo", nil
	case "postgres", "postgresql":
		return "postgres", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
}

// Open connects to the store named by opts.URL.
func Open(ctx context.Context, opts Options) (Source, error) {
	kind, err := Kind(opts.URL)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "mongo":
		coll, err := mongo.Connect(ctx, opts.URL, opts.Database, opts.Collection)
		if err != nil {
			return nil, err
		}
		return coll, nil
	default:
		if opts.Migrate {
			if err := db.RunMigrations(opts.URL); err != nil {
				return nil, fmt.Errorf("running migrations: %w", err)
			}
		}
		pool, err := db.Connect(ctx, opts.URL)
		if err != nil {
			return nil, err
		}
		return &postgresSource{pool: pool, Repository: db.NewRepository(pool, opts.Collection)}, nil
	}
}

type postgresSource struct {
	*db.Repository
	pool *pgxpool.Pool
}

func (p *postgresSource) Name() string {
	return "documents/" + p.Collection()
}

func (p *postgresSource) Close(context.Context) error {
	p.pool.Close()
	return nil
}

// LoadResult describes one load of the collection.
type LoadResult struct {
	Dataset   *dataset.Dataset
	Documents int
	Skipped   int
	Elapsed   time.Duration
}

// Load reads the whole collection and builds a dataset from it. Documents
// that cannot be decoded are skipped and counted.
func Load(ctx context.Context, src Source) (LoadResult, error) {
	start := time.Now()

	docs, err := src.LoadDocuments(ctx)
	if err != nil {
		return LoadResult{}, fmt.Errorf("loading %s: %w", src.Name(), err)
	}

	obs, skipped := document.DecodeAll(docs)
	res := LoadResult{
		Dataset:   dataset.New(obs),
		Documents: len(docs),
		Skipped:   skipped,
		Elapsed:   time.Since(start),
	}

	ev := log.Info()
	if skipped > 0 {
		ev = log.Warn()
	}
	ev.Str("source", src.Name()).
		Int("documents", res.Documents).
		Int("skipped", skipped).
		Int("companies", len(res.Dataset.Companies())).
		Dur("elapsed", res.Elapsed).
		Msg("dataset loaded")

	return res, nil
}
