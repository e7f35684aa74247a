// Package charts builds the plotly figures rendered by the
// dashboard pages, plus PNG exports of the same data.
package charts

import (
	"encoding/json"
	"html/template"

	"github.com/shopspring/decimal"
)

// Figure is a plotly figure: a list of traces and a layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace covers the indicator, bar and scatter traces the dashboard draws.
type Trace struct {
	Type   string     `json:"type"`
	Mode   string     `json:"mode,omitempty"`
	Name   string     `json:"name,omitempty"`
	Value  *float64   `json:"value,omitempty"`
	Gauge  *Gauge     `json:"gauge,omitempty"`
	X      []string   `json:"x,omitempty"`
	Y      []*float64 `json:"y,omitempty"`
	Marker *Marker    `json:"marker,omitempty"`
	Line   *Line      `json:"line,omitempty"`
}

type Gauge struct {
	Axis      Axis      `json:"axis"`
	Bar       Bar       `json:"bar"`
	Threshold Threshold `json:"threshold"`
	Steps     []Step    `json:"steps"`
}

type Axis struct {
	Range [2]float64 `json:"range"`
}

type Bar struct {
	Color     string  `json:"color"`
	Thickness float64 `json:"thickness"`
}

type Threshold struct {
	Line      Line    `json:"line"`
	Thickness float64 `json:"thickness"`
	Value     float64 `json:"value"`
}

type Step struct {
	Range [2]float64 `json:"range"`
	Color string     `json:"color"`
}

type Marker struct {
	Color []string `json:"color"`
}

type Line struct {
	Color string `json:"color"`
	Width int    `json:"width,omitempty"`
}

type Layout struct {
	Title        *Title    `json:"title,omitempty"`
	XAxis        *AxisSpec `json:"xaxis,omitempty"`
	YAxis        *AxisSpec `json:"yaxis,omitempty"`
	PaperBGColor string    `json:"paper_bgcolor"`
	PlotBGColor  string    `json:"plot_bgcolor"`
	Font         Font      `json:"font"`
}

type Title struct {
	Text string `json:"text"`
}

type AxisSpec struct {
	Title Title `json:"title"`
}

type Font struct {
	Color string `json:"color"`
}

// JSON returns the figure encoded for embedding in a page script.
func (f Figure) JSON() (template.JS, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// IsEmpty reports whether the figure has no traces.
func (f Figure) IsEmpty() bool {
	return len(f.Data) == 0
}

func darkLayout() Layout {
	return Layout{
		PaperBGColor: "black",
		PlotBGColor:  "black",
		Font:         Font{Color: "white"},
	}
}

func title(s string) *Title {
	if s == "" {
		return nil
	}
	return &Title{Text: s}
}

func floatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

// Empty is a figure with the dashboard layout and no data.
func Empty() Figure {
	return Figure{Data: []Trace{}, Layout: darkLayout()}
}
