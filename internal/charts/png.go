package charts

import (
	"errors"
	"io"
	"time"

	"github.com/mauv0809/sdg-dashboard/internal/dataset"
	"github.com/mauv0809/sdg-dashboard/internal/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotEnoughData is returned when a series has too few values to draw.
var ErrNotEnoughData = errors.New("charts: not enough data to render")

const (
	pngWidth  = 1024
	pngHeight = 480
)

var (
	colorBlack = drawing.ColorFromHex("000000")
	colorWhite = drawing.ColorFromHex("ffffff")
	colorRed   = drawing.ColorFromHex("ff0000")
	colorGreen = drawing.ColorFromHex("008000")

	lineColors = map[string]drawing.Color{
		"blue":   drawing.ColorFromHex("0000ff"),
		"green":  colorGreen,
		"orange": drawing.ColorFromHex("ffa500"),
	}
)

func axisStyle() chart.Style {
	return chart.Style{FontColor: colorWhite, StrokeColor: colorWhite}
}

// RenderLinePNG writes the series as a PNG line chart. Days with a missing
// value are left out.
func RenderLinePNG(w io.Writer, points []dataset.Point, s Series) error {
	xs := make([]time.Time, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		v := s.Value(p.Observation)
		if v == nil {
			continue
		}
		xs = append(xs, p.Day)
		ys = append(ys, v.InexactFloat64())
	}
	if len(xs) < 2 {
		return ErrNotEnoughData
	}

	lo, hi := ys[0], ys[0]
	for _, y := range ys[1:] {
		lo, hi = min(lo, y), max(hi, y)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	ch := chart.Chart{
		Title:      s.Column(),
		TitleStyle: chart.Style{FontColor: colorWhite},
		Width:      pngWidth,
		Height:     pngHeight,
		Background: chart.Style{FillColor: colorBlack, Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		Canvas:     chart.Style{FillColor: colorBlack},
		XAxis: chart.XAxis{
			Name:           "Date",
			NameStyle:      axisStyle(),
			Style:          axisStyle(),
			ValueFormatter: chart.TimeValueFormatterWithFormat(models.DateLayout),
		},
		YAxis: chart.YAxis{
			Name:      s.AxisTitle(),
			NameStyle: axisStyle(),
			Style:     axisStyle(),
			Range:     &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: []chart.Series{chart.TimeSeries{
			Name:    s.Column(),
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: lineColors[s.Color()], StrokeWidth: 2},
		}},
	}
	return ch.Render(chart.PNG, w)
}

// RenderSDGBarPNG writes the sub-scores of one observation as a PNG bar chart.
func RenderSDGBarPNG(w io.Writer, o models.Observation) error {
	bars := make([]chart.Value, 0, models.SDGCount)
	for i, v := range o.SDG {
		if v == nil {
			continue
		}
		f := v.InexactFloat64()
		color := colorRed
		if BarColor(&f) == "green" {
			color = colorGreen
		}
		bars = append(bars, chart.Value{
			Label: models.SDGLabel(i),
			Value: f,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}
	if len(bars) < 2 {
		return ErrNotEnoughData
	}

	bc := chart.BarChart{
		Title:        "Specific SDG Values",
		TitleStyle:   chart.Style{FontColor: colorWhite},
		Width:        pngWidth,
		Height:       pngHeight,
		BarWidth:     40,
		Background:   chart.Style{FillColor: colorBlack, Padding: chart.Box{Top: 40}},
		Canvas:       chart.Style{FillColor: colorBlack},
		XAxis:        axisStyle(),
		YAxis:        chart.YAxis{Style: axisStyle(), Range: barRange(bars)},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}
	return bc.Render(chart.PNG, w)
}

// barRange spans every bar and the zero base line. A flat chart gets a
// [-1, 1] range around zero since go-chart rejects an empty range.
func barRange(bars []chart.Value) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, b := range bars {
		lo, hi = min(lo, b.Value), max(hi, b.Value)
	}
	if lo == hi {
		lo, hi = -1, 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}
