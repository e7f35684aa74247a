package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SDGCount is the number of sustainability goal sub-scores carried by every observation.
const SDGCount = 17

// DateLayout is the day format used in query parameters, pickers and labels.
const DateLayout = "2006-01-02"

// Observation is one scored snapshot of a company on a given day.
// Nil scores were missing (or NaN) in the source document.
type Observation struct {
	Company   string                     `json:"company"`
	Sector    string                     `json:"sector"`
	Ticker    string                     `json:"ticker"`
	Timestamp time.Time                  `json:"timestamp"` // UTC midnight of the observed day
	STS       *decimal.Decimal           `json:"sts"`       // short-term sentiment
	LTS       *decimal.Decimal           `json:"lts"`       // long-term sentiment
	SDGMean   *decimal.Decimal           `json:"sdg_mean"`
	SDG       [SDGCount]*decimal.Decimal `json:"sdg"`
}

// Day returns the observation date formatted as YYYY-MM-DD.
func (o Observation) Day() string {
	return o.Timestamp.Format(DateLayout)
}

// SDGLabel returns the column label of the i-th (zero based) sub-score, e.g. SDG_1.
func SDGLabel(i int) string {
	return fmt.Sprintf("SDG_%d", i+1)
}

// SDGLabels returns SDG_1 .. SDG_17.
func SDGLabels() []string {
	labels := make([]string, SDGCount)
	for i := range labels {
		labels[i] = SDGLabel(i)
	}
	return labels
}

// TruncateDay drops the time of day, keeping the calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date into UTC midnight.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
