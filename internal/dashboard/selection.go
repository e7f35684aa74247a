package dashboard

import (
	"time"

	"github.com/mauv0809/sdg-dashboard/internal/dataset"
	"github.com/mauv0809/sdg-dashboard/internal/models"
)

// SelectCompany returns name when the dataset knows it, else the default company.
func SelectCompany(ds *dataset.Dataset, name string) string {
	if name != "" && ds.HasCompany(name) {
		return name
	}
	return ds.DefaultCompany()
}

// SelectDay parses a YYYY-MM-DD date. An empty value selects the latest day.
func SelectDay(ds *dataset.Dataset, value string) (time.Time, error) {
	if value == "" {
		_, last, _ := ds.Bounds()
		return last, nil
	}
	return models.ParseDay(value)
}

// SelectRange parses a date range. Empty bounds fall back to the default
// range of the last year of data.
func SelectRange(ds *dataset.Dataset, start, end string) (time.Time, time.Time, error) {
	from, to := ds.DefaultRange()
	if start != "" {
		t, err := models.ParseDay(start)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if end != "" {
		t, err := models.ParseDay(end)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t
	}
	return from, to, nil
}
