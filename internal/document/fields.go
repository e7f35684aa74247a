package document

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timeFormats are tried in order for string timestamps.
var timeFormats = []string{
	time.RFC3339Nano,
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05.000000",
}

// unwrapExtended resolves Mongo extended JSON wrappers such as
// {"$numberDouble": "1.5"} to their inner value.
func unwrapExtended(v any) any {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return v
	}
	for _, k := range []string{"$numberDouble", "$numberInt", "$numberLong", "$numberDecimal", "$date", "$oid"} {
		if inner, ok := m[k]; ok {
			return unwrapExtended(inner)
		}
	}
	return v
}

// getString safely extracts a string from a document field.
func getString(doc map[string]any, key string) string {
	v, ok := doc[key]
	if !ok || v == nil {
		return ""
	}
	v = unwrapExtended(v)
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if math.IsNaN(s) {
			return ""
		}
	}
	return fmt.Sprintf("%v", v)
}

// getDecimal safely extracts a decimal from a document field.
// Missing, NaN and unparseable values yield nil.
func getDecimal(doc map[string]any, key string) *decimal.Decimal {
	v, ok := doc[key]
	if !ok || v == nil {
		return nil
	}
	switch n := unwrapExtended(v).(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		d := decimal.NewFromFloat(n)
		return &d
	case float32:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		d := decimal.NewFromFloat32(n)
		return &d
	case int:
		d := decimal.NewFromInt(int64(n))
		return &d
	case int32:
		d := decimal.NewFromInt32(n)
		return &d
	case int64:
		d := decimal.NewFromInt(n)
		return &d
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return nil
		}
		return &d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return nil
		}
		return &d
	}
	return nil
}

// getTime safely extracts a timestamp from a document field.
// Numbers are read as epoch milliseconds, the BSON date representation.
func getTime(doc map[string]any, key string) *time.Time {
	v, ok := doc[key]
	if !ok || v == nil {
		return nil
	}
	switch t := unwrapExtended(v).(type) {
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return &t
	case string:
		return parseTime(t)
	case float64:
		if math.IsNaN(t) {
			return nil
		}
		ts := time.UnixMilli(int64(t)).UTC()
		return &ts
	case int64:
		ts := time.UnixMilli(t).UTC()
		return &ts
	case int:
		ts := time.UnixMilli(int64(t)).UTC()
		return &ts
	case json.Number:
		ms, err := t.Int64()
		if err != nil {
			return nil
		}
		ts := time.UnixMilli(ms).UTC()
		return &ts
	}
	return nil
}

func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, format := range timeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return &t
		}
	}
	// $numberLong inside $date arrives as a string
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		t := time.UnixMilli(ms).UTC()
		return &t
	}
	return nil
}
