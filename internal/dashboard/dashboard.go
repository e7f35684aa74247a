// Package dashboard computes what the dashboard pages show for a selection:
// the selected row, the aggregates and the chart figures.
package dashboard

import (
	"time"

	"github.com/mauv0809/sdg-dashboard/internal/charts"
	"github.com/mauv0809/sdg-dashboard/internal/dataset"
	"github.com/mauv0809/sdg-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// Placeholder texts shown when the selection matches nothing.
const (
	NoDataForDate = "No data available for the selected date"
	NoData        = "No data available"
)

// CompanyInfo is the header block of the stats page.
type CompanyInfo struct {
	Name   string `json:"name"`
	Sector string `json:"sector"`
	Ticker string `json:"ticker"`
	Date   string `json:"date"`
}

// StatsView is the stats page for one company on one day.
type StatsView struct {
	Company  string        `json:"company"`
	Date     string        `json:"date"`
	Found    bool          `json:"found"`
	Message  string        `json:"message,omitempty"`
	Info     *CompanyInfo  `json:"info,omitempty"`
	STS      string        `json:"sts,omitempty"`
	LTS      string        `json:"lts,omitempty"`
	STSGauge charts.Figure `json:"sts_gauge"`
	LTSGauge charts.Figure `json:"lts_gauge"`
	SDGBar   charts.Figure `json:"sdg_bar"`
}

// TimeSeriesView is the time-series page for one company over a date range.
type TimeSeriesView struct {
	Company   string        `json:"company"`
	Start     string        `json:"start"`
	End       string        `json:"end"`
	Days      int           `json:"days"`
	Filled    int           `json:"filled"`
	STSSeries charts.Figure `json:"sts_series"`
	SDGSeries charts.Figure `json:"sdg_series"`
}

// Stats builds the stats page. The gauges show the company's mean scores
// over its whole history; the values and bar chart show the selected day.
func Stats(ds *dataset.Dataset, company string, day time.Time) StatsView {
	v := StatsView{
		Company:  company,
		Date:     day.Format(models.DateLayout),
		STSGauge: charts.Empty(),
		LTSGauge: charts.Empty(),
		SDGBar:   charts.Empty(),
	}

	o, ok := ds.Lookup(company, day)
	if !ok {
		v.Message = NoDataForDate
		return v
	}

	v.Found = true
	v.Info = &CompanyInfo{
		Name:   company,
		Sector: o.Sector,
		Ticker: o.Ticker,
		Date:   o.Day(),
	}
	v.STS = FormatScore(o.STS)
	v.LTS = FormatScore(o.LTS)
	v.SDGBar = charts.NewSDGBar(o)

	history := ds.Company(company)
	if m, ok := dataset.MeanSTS(history); ok {
		v.STSGauge = charts.NewGauge("Overall STS Score", m)
	}
	if m, ok := dataset.MeanLTS(history); ok {
		v.LTSGauge = charts.NewGauge("Overall LTS Score", m)
	}
	return v
}

// TimeSeries builds the forward-filled STS and SDG mean lines.
func TimeSeries(ds *dataset.Dataset, company string, start, end time.Time) TimeSeriesView {
	points := ds.Daily(company, start, end)

	v := TimeSeriesView{
		Company:   company,
		Start:     start.Format(models.DateLayout),
		End:       end.Format(models.DateLayout),
		Days:      len(points),
		STSSeries: charts.NewLine(points, charts.SeriesSTS),
		SDGSeries: charts.NewLine(points, charts.SeriesSDG),
	}
	for _, p := range points {
		if p.Filled {
			v.Filled++
		}
	}
	return v
}

// FormatScore renders a score with four decimals.
func FormatScore(d *decimal.Decimal) string {
	if d == nil {
		return "n/a"
	}
	return d.StringFixed(4)
}
