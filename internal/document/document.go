// Package document maps loosely typed store documents onto observations.
package document

import (
	"errors"
	"fmt"

	"github.com/mauv0809/sdg-dashboard/internal/models"
)

// Source field names as written by the scoring pipeline.
const (
	FieldCompany   = "Company_Name"
	FieldSector    = "GICS Sector"
	FieldTicker    = "Ticker"
	FieldTimestamp = "Timestamp"
	FieldSTS       = "STS_Mean"
	FieldLTS       = "LTS_Mean"
	FieldSDGMean   = "SDG_Mean"
)

// ErrMissingField is returned when a document lacks a company name or a usable timestamp.
var ErrMissingField = errors.New("document: missing required field")

// Decode converts a raw document into an observation.
func Decode(doc map[string]any) (models.Observation, error) {
	obs := models.Observation{
		Company: getString(doc, FieldCompany),
		Sector:  getString(doc, FieldSector),
		Ticker:  getString(doc, FieldTicker),
		STS:     getDecimal(doc, FieldSTS),
		LTS:     getDecimal(doc, FieldLTS),
		SDGMean: getDecimal(doc, FieldSDGMean),
	}
	if obs.Company == "" {
		return models.Observation{}, fmt.Errorf("%w: %s", ErrMissingField, FieldCompany)
	}

	ts := getTime(doc, FieldTimestamp)
	if ts == nil {
		return models.Observation{}, fmt.Errorf("%w: %s", ErrMissingField, FieldTimestamp)
	}
	obs.Timestamp = models.TruncateDay(ts.UTC())

	for i := range obs.SDG {
		obs.SDG[i] = getDecimal(doc, models.SDGLabel(i))
	}

	return obs, nil
}

// DecodeAll decodes every document, skipping the ones that cannot be decoded.
// It returns the decoded observations in input order and the number skipped.
func DecodeAll(docs []map[string]any) ([]models.Observation, int) {
	out := make([]models.Observation, 0, len(docs))
	skipped := 0
	for _, doc := range docs {
		obs, err := Decode(doc)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, obs)
	}
	return out, skipped
}
