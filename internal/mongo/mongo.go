// Package mongo reads score documents from a MongoDB collection.
package mongo

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection wraps the one collection the dashboard reads.
type Collection struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect opens a client, pings the primary and binds database.collection.
func Connect(ctx context.Context, uri, database, collection string) (*Collection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}
	return &Collection{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Name returns the qualified collection name.
func (c *Collection) Name() string {
	return c.coll.Database().Name() + "." + c.coll.Name()
}

// LoadDocuments returns every document of the collection in natural order.
func (c *Collection) LoadDocuments(ctx context.Context) ([]map[string]any, error) {
	cursor, err := c.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []map[string]any
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding document: %w", err)
		}
		docs = append(docs, plain(raw))
	}

	return docs, cursor.Err()
}

// InsertDocuments appends documents to the collection.
func (c *Collection) InsertDocuments(ctx context.Context, docs []map[string]any) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	batch := make([]interface{}, len(docs))
	for i, doc := range docs {
		batch[i] = doc
	}
	res, err := c.coll.InsertMany(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("inserting documents: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// CountDocuments returns the number of documents in the collection.
func (c *Collection) CountDocuments(ctx context.Context) (int, error) {
	n, err := c.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return int(n), nil
}

// GetCollections lists the collections of the database.
func (c *Collection) GetCollections(ctx context.Context) ([]string, error) {
	names, err := c.coll.Database().ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Close disconnects the client.
func (c *Collection) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// plain converts BSON-specific values to the plain Go values the document
// decoder understands.
func plain(m bson.M) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	case bson.M:
		return plain(t)
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	}
	return v
}
