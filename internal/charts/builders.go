package charts

import (
	"fmt"

	"github.com/mauv0809/sdg-dashboard/internal/dataset"
	"github.com/mauv0809/sdg-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// Gauge range and colours of the sentiment indicators.
const (
	GaugeMin = -3.0
	GaugeMax = 3.0

	negativeStep = "rgba(255, 0, 0, 0.3)"
	positiveStep = "rgba(0, 255, 0, 0.3)"
)

// Series selects the score plotted by a time-series chart.
type Series string

const (
	SeriesSTS Series = "sts"
	SeriesLTS Series = "lts"
	SeriesSDG Series = "sdg"
)

// ParseSeries maps a query value onto a series.
func ParseSeries(s string) (Series, error) {
	switch Series(s) {
	case SeriesSTS, SeriesLTS, SeriesSDG:
		return Series(s), nil
	case "":
		return SeriesSTS, nil
	}
	return "", fmt.Errorf("unknown series %q", s)
}

// Column is the source column name of the series.
func (s Series) Column() string {
	switch s {
	case SeriesLTS:
		return "LTS_Mean"
	case SeriesSDG:
		return "SDG_Mean"
	default:
		return "STS_Mean"
	}
}

// Color is the line colour of the series.
func (s Series) Color() string {
	switch s {
	case SeriesLTS:
		return "green"
	case SeriesSDG:
		return "orange"
	default:
		return "blue"
	}
}

// AxisTitle is the y-axis title of the series.
func (s Series) AxisTitle() string {
	switch s {
	case SeriesLTS:
		return "LTS Mean Value"
	case SeriesSDG:
		return "SDG Mean Value"
	default:
		return "STS Mean Value"
	}
}

// Value picks the series value of an observation.
func (s Series) Value(o models.Observation) *decimal.Decimal {
	switch s {
	case SeriesLTS:
		return o.LTS
	case SeriesSDG:
		return o.SDGMean
	default:
		return o.STS
	}
}

// ThresholdColor is red for negative sentiment, green otherwise.
func ThresholdColor(v float64) string {
	if v < 0 {
		return "red"
	}
	return "green"
}

// BarColor is green for positive sub-scores, red otherwise (missing included).
func BarColor(v *float64) string {
	if v != nil && *v > 0 {
		return "green"
	}
	return "red"
}

// NewGauge draws value on a [-3, 3] gauge whose only marker is a threshold line.
func NewGauge(name string, value decimal.Decimal) Figure {
	v := value.InexactFloat64()
	layout := darkLayout()
	layout.Title = title(name)

	return Figure{
		Data: []Trace{{
			Type:  "indicator",
			Mode:  "gauge+number",
			Name:  name,
			Value: &v,
			Gauge: &Gauge{
				Axis: Axis{Range: [2]float64{GaugeMin, GaugeMax}},
				Bar:  Bar{Color: "rgba(0,0,0,0)", Thickness: 0.2},
				Threshold: Threshold{
					Line:      Line{Color: ThresholdColor(v), Width: 6},
					Thickness: 1,
					Value:     v,
				},
				Steps: []Step{
					{Range: [2]float64{GaugeMin, 0}, Color: negativeStep},
					{Range: [2]float64{0, GaugeMax}, Color: positiveStep},
				},
			},
		}},
		Layout: layout,
	}
}

// NewSDGBar draws the 17 sub-scores of one observation.
func NewSDGBar(o models.Observation) Figure {
	y := make([]*float64, models.SDGCount)
	colors := make([]string, models.SDGCount)
	for i, v := range o.SDG {
		y[i] = floatPtr(v)
		colors[i] = BarColor(y[i])
	}

	layout := darkLayout()
	layout.Title = title("Specific SDG Values")
	layout.XAxis = &AxisSpec{Title: Title{Text: "SDG"}}
	layout.YAxis = &AxisSpec{Title: Title{Text: "Value"}}

	return Figure{
		Data: []Trace{{
			Type:   "bar",
			Name:   "Specific SDG Values",
			X:      models.SDGLabels(),
			Y:      y,
			Marker: &Marker{Color: colors},
		}},
		Layout: layout,
	}
}

// NewLine draws a series over a daily series. An empty series keeps the
// layout and draws nothing.
func NewLine(points []dataset.Point, s Series) Figure {
	layout := darkLayout()
	layout.XAxis = &AxisSpec{Title: Title{Text: "Date"}}
	layout.YAxis = &AxisSpec{Title: Title{Text: s.AxisTitle()}}

	if len(points) == 0 {
		return Figure{Data: []Trace{}, Layout: layout}
	}

	x := make([]string, len(points))
	y := make([]*float64, len(points))
	for i, p := range points {
		x[i] = p.Day.Format(models.DateLayout)
		y[i] = floatPtr(s.Value(p.Observation))
	}

	return Figure{
		Data: []Trace{{
			Type: "scatter",
			Mode: "lines",
			Name: s.Column(),
			X:    x,
			Y:    y,
			Line: &Line{Color: s.Color()},
		}},
		Layout: layout,
	}
}
