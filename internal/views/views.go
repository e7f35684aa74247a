// Package views renders the dashboard pages as templ components.
package views

//go:generate templ generate

import (
	"fmt"
	"net/url"

	"github.com/a-h/templ"
	"github.com/mauv0809/sdg-dashboard/internal/charts"
	"github.com/mauv0809/sdg-dashboard/internal/dashboard"
)

// Picker holds the options shared by the page controls.
type Picker struct {
	Companies []string
	MinDate   string
	MaxDate   string
}

// StatsPage is the data of the stats page.
type StatsPage struct {
	Picker
	dashboard.StatsView
}

// Active marks the stats link in the navigation bar.
func (StatsPage) Active() string { return "/" }

// TimeSeriesPage is the data of the time-series page.
type TimeSeriesPage struct {
	Picker
	dashboard.TimeSeriesView
}

// Active marks the time-series link in the navigation bar.
func (TimeSeriesPage) Active() string { return "/timeseries" }

const emptyFigure = `{"data":[],"layout":{}}`

// plot draws fig into the element with the given id once plotly has loaded.
func plot(id string, fig charts.Figure) templ.Component {
	js, err := fig.JSON()
	if err != nil {
		js = emptyFigure
	}
	return templ.Raw(fmt.Sprintf(
		`<script>(function(){ var fig = %s; Plotly.newPlot(%q, fig.data, fig.layout, {responsive: true}); })();</script>`,
		js, id,
	))
}

func sdgExportURL(v dashboard.StatsView) templ.SafeURL {
	q := url.Values{}
	q.Set("company", v.Company)
	q.Set("date", v.Date)
	return templ.SafeURL("/charts/sdg.png?" + q.Encode())
}

func lineExportURL(series charts.Series, v dashboard.TimeSeriesView) templ.SafeURL {
	q := url.Values{}
	q.Set("series", string(series))
	q.Set("company", v.Company)
	q.Set("start", v.Start)
	q.Set("end", v.End)
	return templ.SafeURL("/charts/timeseries.png?" + q.Encode())
}
