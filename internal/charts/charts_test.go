package charts

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/mauv0809/sdg-dashboard/internal/dataset"
	"github.com/mauv0809/sdg-dashboard/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"
)

func dec(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestNewGauge(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		wantColor string
	}{
		{"negative is red", -0.75, "red"},
		{"zero is green", 0, "green"},
		{"positive is green", 1.5, "green"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig := NewGauge("Overall STS Score", decimal.NewFromFloat(tt.value))
			require.Len(t, fig.Data, 1)

			tr := fig.Data[0]
			assert.Equal(t, "indicator", tr.Type)
			assert.Equal(t, "gauge+number", tr.Mode)
			require.NotNil(t, tr.Value)
			assert.Equal(t, tt.value, *tr.Value)
			assert.Equal(t, [2]float64{-3, 3}, tr.Gauge.Axis.Range)
			assert.Equal(t, tt.wantColor, tr.Gauge.Threshold.Line.Color)
			assert.Equal(t, 6, tr.Gauge.Threshold.Line.Width)
			assert.Equal(t, tt.value, tr.Gauge.Threshold.Value)
			assert.Equal(t, "rgba(0,0,0,0)", tr.Gauge.Bar.Color)
			require.Len(t, tr.Gauge.Steps, 2)
			assert.Equal(t, "Overall STS Score", fig.Layout.Title.Text)
			assert.Equal(t, "black", fig.Layout.PaperBGColor)
		})
	}
}

func TestNewSDGBar(t *testing.T) {
	var o models.Observation
	for i := range o.SDG {
		o.SDG[i] = dec(float64(i) - 8)
	}
	o.SDG[3] = nil

	fig := NewSDGBar(o)
	require.Len(t, fig.Data, 1)
	tr := fig.Data[0]

	assert.Equal(t, "bar", tr.Type)
	assert.Equal(t, "SDG_1", tr.X[0])
	assert.Equal(t, "SDG_17", tr.X[16])
	require.Len(t, tr.Marker.Color, 17)
	assert.Equal(t, "red", tr.Marker.Color[0])
	assert.Equal(t, "red", tr.Marker.Color[3], "missing value")
	assert.Equal(t, "red", tr.Marker.Color[8], "zero value")
	assert.Equal(t, "green", tr.Marker.Color[9])
	assert.Nil(t, tr.Y[3])
}

func TestNewLine(t *testing.T) {
	d0 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	points := []dataset.Point{
		{Day: d0, Observation: models.Observation{STS: dec(0.5), SDGMean: dec(-1)}},
		{Day: d0.AddDate(0, 0, 1), Filled: true, Observation: models.Observation{STS: dec(0.5), SDGMean: dec(-1)}},
	}

	sts := NewLine(points, SeriesSTS)
	require.Len(t, sts.Data, 1)
	assert.Equal(t, "scatter", sts.Data[0].Type)
	assert.Equal(t, "lines", sts.Data[0].Mode)
	assert.Equal(t, "blue", sts.Data[0].Line.Color)
	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, sts.Data[0].X)
	assert.Equal(t, "STS Mean Value", sts.Layout.YAxis.Title.Text)

	sdg := NewLine(points, SeriesSDG)
	assert.Equal(t, "orange", sdg.Data[0].Line.Color)
	assert.Equal(t, "SDG_Mean", sdg.Data[0].Name)

	empty := NewLine(nil, SeriesSTS)
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "Date", empty.Layout.XAxis.Title.Text)
}

func TestFigureJSON_NullsAndEmptyData(t *testing.T) {
	js, err := Empty().JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.Equal(t, []any{}, decoded["data"])

	var o models.Observation
	js, err = NewSDGBar(o).JSON()
	require.NoError(t, err)
	assert.Contains(t, string(js), `"y":[null,null`)
}

func TestParseSeries(t *testing.T) {
	s, err := ParseSeries("")
	require.NoError(t, err)
	assert.Equal(t, SeriesSTS, s)

	s, err = ParseSeries("sdg")
	require.NoError(t, err)
	assert.Equal(t, SeriesSDG, s)

	_, err = ParseSeries("volume")
	assert.Error(t, err)
}

func TestRenderLinePNG(t *testing.T) {
	d0 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var points []dataset.Point
	for i := 0; i < 10; i++ {
		points = append(points, dataset.Point{
			Day:         d0.AddDate(0, 0, i),
			Observation: models.Observation{STS: dec(float64(i%4) - 1.5)},
		})
	}

	var buf bytes.Buffer
	require.NoError(t, RenderLinePNG(&buf, points, SeriesSTS))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.ErrorIs(t, RenderLinePNG(&buf, points[:1], SeriesSTS), ErrNotEnoughData)
}

func TestRenderSDGBarPNG(t *testing.T) {
	var o models.Observation
	for i := range o.SDG {
		o.SDG[i] = dec(float64(i) - 8)
	}

	var buf bytes.Buffer
	require.NoError(t, RenderSDGBarPNG(&buf, o))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.ErrorIs(t, RenderSDGBarPNG(&buf, models.Observation{}), ErrNotEnoughData)
}

func TestRenderSDGBarPNG_FlatValues(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		lo, hi float64
	}{
		{"all zero", 0, -1, 1},
		{"all equal positive", 1, 0, 1},
		{"all equal negative", -2.5, -2.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o models.Observation
			for i := range o.SDG {
				o.SDG[i] = dec(tt.value)
			}

			var buf bytes.Buffer
			require.NoError(t, RenderSDGBarPNG(&buf, o))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

			bars := []chart.Value{{Value: tt.value}, {Value: tt.value}}
			r := barRange(bars)
			assert.Equal(t, tt.lo, r.Min)
			assert.Equal(t, tt.hi, r.Max)
		})
	}
}
