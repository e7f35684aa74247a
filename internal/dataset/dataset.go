// Package dataset holds the scored observations resident in memory and the
// filters and aggregates the dashboard pages are computed from.
package dataset

import (
	"sort"
	"time"

	"github.com/mauv0809/sdg-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// Dataset is an immutable, timestamp-ordered table of observations.
type Dataset struct {
	rows      []models.Observation
	companies []string
	known     map[string]struct{}
}

// Point is one day of a forward-filled daily series.
type Point struct {
	models.Observation
	Day    time.Time `json:"day"`
	Filled bool      `json:"filled"` // carried forward from an earlier day
}

// New builds a dataset. The input order is the load order: it decides the
// company listing and which record wins when a company has several on one day.
func New(obs []models.Observation) *Dataset {
	rows := make([]models.Observation, len(obs))
	copy(rows, obs)

	d := &Dataset{known: make(map[string]struct{})}
	for _, o := range rows {
		if _, ok := d.known[o.Company]; !ok {
			d.known[o.Company] = struct{}{}
			d.companies = append(d.companies, o.Company)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
	d.rows = rows
	return d
}

// Len returns the number of observations.
func (d *Dataset) Len() int { return len(d.rows) }

// Companies returns the company names in order of first appearance.
func (d *Dataset) Companies() []string {
	out := make([]string, len(d.companies))
	copy(out, d.companies)
	return out
}

// HasCompany reports whether any observation belongs to company.
func (d *Dataset) HasCompany(company string) bool {
	_, ok := d.known[company]
	return ok
}

// DefaultCompany is the first company loaded, or "" for an empty dataset.
func (d *Dataset) DefaultCompany() string {
	if len(d.companies) == 0 {
		return ""
	}
	return d.companies[0]
}

// Bounds returns the first and last observed day.
func (d *Dataset) Bounds() (first, last time.Time, ok bool) {
	if len(d.rows) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return d.rows[0].Timestamp, d.rows[len(d.rows)-1].Timestamp, true
}

// DefaultRange is the year leading up to the latest observation.
func (d *Dataset) DefaultRange() (start, end time.Time) {
	_, last, ok := d.Bounds()
	if !ok {
		return time.Time{}, time.Time{}
	}
	return last.AddDate(-1, 0, 0), last
}

// Lookup returns the authoritative observation of company on day.
func (d *Dataset) Lookup(company string, day time.Time) (models.Observation, bool) {
	day = models.TruncateDay(day)
	i := sort.Search(len(d.rows), func(i int) bool {
		return !d.rows[i].Timestamp.Before(day)
	})
	for ; i < len(d.rows) && d.rows[i].Timestamp.Equal(day); i++ {
		if d.rows[i].Company == company {
			return d.rows[i], true
		}
	}
	return models.Observation{}, false
}

// Company returns every observation of company in day order.
func (d *Dataset) Company(company string) []models.Observation {
	var out []models.Observation
	for _, o := range d.rows {
		if o.Company == company {
			out = append(out, o)
		}
	}
	return out
}

// Range returns the observations with start <= day <= end. An empty company
// matches every company.
func (d *Dataset) Range(company string, start, end time.Time) []models.Observation {
	start, end = models.TruncateDay(start), models.TruncateDay(end)
	if end.Before(start) {
		return nil
	}
	i := sort.Search(len(d.rows), func(i int) bool {
		return !d.rows[i].Timestamp.Before(start)
	})

	var out []models.Observation
	for ; i < len(d.rows) && !d.rows[i].Timestamp.After(end); i++ {
		if company == "" || d.rows[i].Company == company {
			out = append(out, d.rows[i])
		}
	}
	return out
}

// Daily returns one point per calendar day from the first to the last
// matching observation in [start, end]. Days without an observation repeat
// the previous day.
func (d *Dataset) Daily(company string, start, end time.Time) []Point {
	return forwardFill(d.Range(company, start, end))
}

func forwardFill(rows []models.Observation) []Point {
	if len(rows) == 0 {
		return nil
	}
	first, last := rows[0].Timestamp, rows[len(rows)-1].Timestamp

	points := make([]Point, 0, int(last.Sub(first).Hours()/24)+1)
	i := 0
	var prev models.Observation
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if i < len(rows) && rows[i].Timestamp.Equal(day) {
			prev = rows[i]
			points = append(points, Point{Observation: prev, Day: day})
			for i < len(rows) && rows[i].Timestamp.Equal(day) {
				i++
			}
			continue
		}
		points = append(points, Point{Observation: prev, Day: day, Filled: true})
	}
	return points
}

// MeanSTS averages the short-term scores of rows, skipping missing values.
// ok is false when there is nothing to average.
func MeanSTS(rows []models.Observation) (decimal.Decimal, bool) {
	return mean(rows, func(o models.Observation) *decimal.Decimal { return o.STS })
}

// MeanLTS averages the long-term scores of rows, skipping missing values.
func MeanLTS(rows []models.Observation) (decimal.Decimal, bool) {
	return mean(rows, func(o models.Observation) *decimal.Decimal { return o.LTS })
}

func mean(rows []models.Observation, pick func(models.Observation) *decimal.Decimal) (decimal.Decimal, bool) {
	values := make([]decimal.Decimal, 0, len(rows))
	for _, o := range rows {
		if v := pick(o); v != nil {
			values = append(values, *v)
		}
	}
	if len(values) == 0 {
		return decimal.Zero, false
	}
	return decimal.Avg(values[0], values[1:]...), true
}
