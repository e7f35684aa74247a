package main

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/sdg-dashboard/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const extDoc = `{"Company_Name":"Apple Inc.","Ticker":"AAPL","Timestamp":{"$date":"2024-03-05T14:30:00Z"},"STS_Mean":{"$numberDouble":"0.25"},"SDG_1":{"$numberDouble":"NaN"}}`

func TestParseDocuments_Array(t *testing.T) {
	docs, err := parseDocuments([]byte("\n [ "+extDoc+", "+extDoc+" ]\n"), false)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	obs, err := document.Decode(docs[0])
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), obs.Timestamp)
	require.NotNil(t, obs.STS)
	assert.Equal(t, "0.25", obs.STS.String())
	assert.Nil(t, obs.SDG[0])
}

func TestParseDocuments_Lines(t *testing.T) {
	data := extDoc + "\n\n" + extDoc + "\n" + extDoc
	docs, err := parseDocuments([]byte(data), true)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	doc := docs[2]
	assert.Equal(t, "Apple Inc.", doc["Company_Name"])
	assert.Equal(t, 0.25, doc["STS_Mean"])
	require.IsType(t, primitive.DateTime(0), doc["Timestamp"])
	assert.Equal(t, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), doc["Timestamp"].(primitive.DateTime).Time().UTC())
}

func TestParseDocuments_Invalid(t *testing.T) {
	_, err := parseDocuments([]byte(extDoc+"\n{not json}"), false)
	assert.ErrorContains(t, err, "document 2")
}

type countingSource struct {
	batches []int
}

func (c *countingSource) Name() string { return "counting" }

func (c *countingSource) LoadDocuments(context.Context) ([]map[string]any, error) { return nil, nil }

func (c *countingSource) InsertDocuments(_ context.Context, docs []map[string]any) (int, error) {
	c.batches = append(c.batches, len(docs))
	return len(docs), nil
}

func (c *countingSource) CountDocuments(context.Context) (int, error) { return 0, nil }

func (c *countingSource) Close(context.Context) error { return nil }

func TestInsert_Batches(t *testing.T) {
	docs := make([]map[string]any, 7)
	src := &countingSource{}

	n, err := insert(context.Background(), src, docs, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, []int{3, 3, 1}, src.batches)
}
