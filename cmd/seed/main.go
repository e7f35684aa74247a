// Command seed loads score documents from a JSON file into the configured
// document store. The file holds either a JSON array or one document per
// line; MongoDB extended JSON ($date, $numberDouble, ...) is accepted.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mauv0809/sdg-dashboard/internal/config"
	"github.com/mauv0809/sdg-dashboard/internal/logging"
	"github.com/mauv0809/sdg-dashboard/internal/store"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	file := flag.String("file", "", "JSON or JSON lines file to import (required)")
	collection := flag.String("collection", "", "target collection (defaults to COLLECTION)")
	batch := flag.Int("batch", 500, "documents per insert")
	flag.Parse()

	cfg, err := config.Load()
	logging.Setup(cfg.LogLevel, "console")
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.EnvFile == "" {
		log.Debug().Msg("No .env file found, using environment variables")
	}
	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *collection != "" {
		cfg.Collection = *collection
	}

	kind, err := store.Kind(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid store url")
	}

	docs, err := readFile(*file, kind == "mongo")
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("could not read documents")
	}
	log.Info().Int("documents", len(docs)).Str("file", *file).Msg("read documents")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	defer cancel()

	src, err := store.Open(ctx, store.Options{
		URL:        cfg.DatabaseURL,
		Database:   cfg.DatabaseName,
		Collection: cfg.Collection,
		Migrate:    cfg.Migrate,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to the document store")
	}
	defer src.Close(context.Background())

	inserted, err := insert(ctx, src, docs, *batch)
	if err != nil {
		log.Fatal().Err(err).Int("inserted", inserted).Msg("import failed")
	}

	total, err := src.CountDocuments(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("counting documents")
	}
	log.Info().
		Str("source", src.Name()).
		Int("inserted", inserted).
		Int("total", total).
		Msg("import complete")
}

func insert(ctx context.Context, src store.Source, docs []map[string]any, size int) (int, error) {
	if size <= 0 {
		size = len(docs)
	}
	inserted := 0
	for start := 0; start < len(docs); start += size {
		end := min(start+size, len(docs))
		n, err := src.InsertDocuments(ctx, docs[start:end])
		inserted += n
		if err != nil {
			return inserted, fmt.Errorf("inserting documents %d-%d: %w", start, end, err)
		}
		log.Debug().Int("inserted", inserted).Msg("batch stored")
	}
	return inserted, nil
}

func readFile(path string, ext bool) ([]map[string]any, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	return parseDocuments(data, ext)
}

// parseDocuments splits data into raw documents and decodes each one. With
// ext set, values are decoded as extended JSON into BSON types.
func parseDocuments(data []byte, ext bool) ([]map[string]any, error) {
	var raws []json.RawMessage

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("parsing JSON array: %w", err)
		}
	} else {
		r := bufio.NewReader(bytes.NewReader(trimmed))
		line := 0
		for {
			b, err := r.ReadBytes('\n')
			line++
			if b = bytes.TrimSpace(b); len(b) > 0 {
				raws = append(raws, json.RawMessage(b))
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("reading line %d: %w", line, err)
			}
		}
	}

	docs := make([]map[string]any, 0, len(raws))
	for i, raw := range raws {
		doc, err := decodeDocument(raw, ext)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func decodeDocument(raw []byte, ext bool) (map[string]any, error) {
	if ext {
		var m bson.M
		if err := bson.UnmarshalExtJSON(raw, false, &m); err != nil {
			return nil, err
		}
		return m, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
