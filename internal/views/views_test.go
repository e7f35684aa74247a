package views

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mauv0809/sdg-dashboard/internal/charts"
	"github.com/mauv0809/sdg-dashboard/internal/dashboard"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func picker() Picker {
	return Picker{
		Companies: []string{"Apple Inc.", "AT&T"},
		MinDate:   "2023-01-01",
		MaxDate:   "2024-01-31",
	}
}

func TestStats_Found(t *testing.T) {
	page := StatsPage{
		Picker: picker(),
		StatsView: dashboard.StatsView{
			Company:  "AT&T",
			Date:     "2024-01-31",
			Found:    true,
			Info:     &dashboard.CompanyInfo{Name: "AT&T", Sector: "Communication Services", Ticker: "T", Date: "2024-01-31"},
			STS:      "0.1234",
			LTS:      "-0.5000",
			STSGauge: charts.NewGauge("Overall STS Score", decimal.NewFromFloat(0.5)),
			LTSGauge: charts.Empty(),
			SDGBar:   charts.Empty(),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Stats(page).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, "<title>Company Visualization Dashboard</title>")
	assert.Contains(t, html, "Company SDG Statistics")
	assert.Contains(t, html, "<h2>AT&amp;T</h2>")
	assert.Contains(t, html, "Sector: Communication Services")
	assert.Contains(t, html, `<p class="score-value">0.1234</p>`)
	assert.Contains(t, html, `min="2023-01-01"`)
	assert.Contains(t, html, `"gauge+number"`)
	assert.Contains(t, html, "Plotly.newPlot")
	assert.Contains(t, html, `href="/" class="active"`)
	assert.Contains(t, html, "company=AT%26T")
}

func TestStats_NoData(t *testing.T) {
	page := StatsPage{
		Picker: picker(),
		StatsView: dashboard.StatsView{
			Company:  "Apple Inc.",
			Date:     "2023-06-01",
			Message:  dashboard.NoDataForDate,
			STSGauge: charts.Empty(),
			LTSGauge: charts.Empty(),
			SDGBar:   charts.Empty(),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Stats(page).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, "No data available for the selected date")
	assert.Contains(t, html, "<h3>No data available</h3>")
	assert.NotContains(t, html, "score-value")
	assert.NotContains(t, html, "Download SDG chart")
}

func TestTimeSeries(t *testing.T) {
	page := TimeSeriesPage{
		Picker: picker(),
		TimeSeriesView: dashboard.TimeSeriesView{
			Company:   "Apple Inc.",
			Start:     "2023-01-31",
			End:       "2024-01-31",
			STSSeries: charts.NewLine(nil, charts.SeriesSTS),
			SDGSeries: charts.NewLine(nil, charts.SeriesSDG),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, TimeSeries(page).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, "Time-Series Analysis")
	assert.Contains(t, html, "Short-term Score (STS) Over Time")
	assert.Contains(t, html, "Overall SDG Sentiment Over Time")
	assert.Contains(t, html, `value="2023-01-31"`)
	assert.Contains(t, html, `href="/timeseries" class="active"`)
	assert.Contains(t, html, "SDG Mean Value")
}

func TestPlot_EmbedsFigure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, plot("sdg-graph", charts.Empty()).Render(context.Background(), &buf))

	assert.Equal(t,
		`<script>(function(){ var fig = {"data":[],"layout":{"paper_bgcolor":"black","plot_bgcolor":"black","font":{"color":"white"}}}; Plotly.newPlot("sdg-graph", fig.data, fig.layout, {responsive: true}); })();</script>`,
		buf.String())
}

func TestExportURLs(t *testing.T) {
	assert.Equal(t, "/charts/sdg.png?company=AT%26T&date=2024-01-31",
		string(sdgExportURL(dashboard.StatsView{Company: "AT&T", Date: "2024-01-31"})))
	assert.Equal(t, "/charts/timeseries.png?company=Apple+Inc.&end=2024-01-31&series=sdg&start=2023-01-31",
		string(lineExportURL(charts.SeriesSDG, dashboard.TimeSeriesView{Company: "Apple Inc.", Start: "2023-01-31", End: "2024-01-31"})))
}

// cssRule returns the declarations of the first rule whose selector is sel.
func cssRule(t *testing.T, css, sel string) string {
	t.Helper()
	i := strings.Index(css, "\n"+sel+" {")
	require.GreaterOrEqual(t, i, 0, "rule %s not found", sel)
	body := css[i+len(sel)+3:]
	return body[:strings.Index(body, "}")]
}

func TestStylesheet_NavBar(t *testing.T) {
	b, err := os.ReadFile(filepath.Join("..", "..", "assets", "style.css"))
	require.NoError(t, err)
	css := "\n" + string(b)

	nav := cssRule(t, css, ".top-nav")
	assert.Contains(t, nav, "background-color: black;")
	assert.Contains(t, nav, "justify-content: center;")
	assert.Contains(t, nav, "padding: 10px;")

	link := cssRule(t, css, ".top-nav a")
	assert.Contains(t, link, "color: white;")
	assert.Contains(t, link, "padding: 40px;")
	assert.NotContains(t, css, ".top-nav a.active")

	assert.Contains(t, cssRule(t, css, "body"), "background-color: black;")
}
