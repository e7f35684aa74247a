package mongo

import (
	"testing"
	"time"

	"github.com/mauv0809/sdg-dashboard/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlain_ConvertsBSONValues(t *testing.T) {
	ts := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	id := primitive.NewObjectID()
	dec, err := primitive.ParseDecimal128("0.125")
	require.NoError(t, err)

	doc := plain(bson.M{
		"_id":          id,
		"Company_Name": "Apple Inc.",
		"Timestamp":    primitive.NewDateTimeFromTime(ts),
		"STS_Mean":     dec,
		"SDG_1":        int32(3),
		"nested":       bson.M{"at": primitive.NewDateTimeFromTime(ts)},
		"list":         bson.A{primitive.NewDateTimeFromTime(ts)},
	})

	assert.Equal(t, id.Hex(), doc["_id"])
	assert.Equal(t, ts, doc["Timestamp"])
	assert.Equal(t, "0.125", doc["STS_Mean"])
	assert.Equal(t, ts, doc["nested"].(map[string]any)["at"])
	assert.Equal(t, ts, doc["list"].([]any)[0])

	obs, err := document.Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, ts, obs.Timestamp)
	assert.Equal(t, "0.125", obs.STS.String())
	assert.Equal(t, "3", obs.SDG[0].String())
}
