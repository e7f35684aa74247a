package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mauv0809/sdg-dashboard/internal/charts"
	"github.com/mauv0809/sdg-dashboard/internal/dashboard"
	"github.com/mauv0809/sdg-dashboard/internal/dataset"
	"github.com/mauv0809/sdg-dashboard/internal/models"
)

// CompaniesResponse lists the selectable companies and the date bounds.
type CompaniesResponse struct {
	Companies    []string `json:"companies"`
	Default      string   `json:"default"`
	MinDate      string   `json:"min_date,omitempty"`
	MaxDate      string   `json:"max_date,omitempty"`
	DefaultStart string   `json:"default_start,omitempty"`
	DefaultEnd   string   `json:"default_end,omitempty"`
}

// Companies handles GET /api/companies
func (h *Handler) Companies(c echo.Context) error {
	ds := h.data.Get()
	resp := CompaniesResponse{
		Companies: ds.Companies(),
		Default:   ds.DefaultCompany(),
	}
	if first, last, ok := ds.Bounds(); ok {
		start, end := ds.DefaultRange()
		resp.MinDate = first.Format(models.DateLayout)
		resp.MaxDate = last.Format(models.DateLayout)
		resp.DefaultStart = start.Format(models.DateLayout)
		resp.DefaultEnd = end.Format(models.DateLayout)
	}
	return c.JSON(http.StatusOK, resp)
}

// Dashboard handles GET /api/dashboard
// Query params:
// - company: company name (optional, defaults to the first company)
// - date: YYYY-MM-DD (optional, defaults to the latest date)
func (h *Handler) Dashboard(c echo.Context) error {
	ds := h.data.Get()
	company, err := strictCompany(ds, c.QueryParam("company"))
	if err != nil {
		return apiError(c, http.StatusNotFound, err.Error())
	}
	day, err := dashboard.SelectDay(ds, c.QueryParam("date"))
	if err != nil {
		return apiError(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, dashboard.Stats(ds, company, day))
}

// TimeSeriesJSON handles GET /api/timeseries
// Query params:
// - company: company name (optional, defaults to the first company)
// - start, end: YYYY-MM-DD (optional, default to the last year of data)
func (h *Handler) TimeSeriesJSON(c echo.Context) error {
	ds := h.data.Get()
	company, err := strictCompany(ds, c.QueryParam("company"))
	if err != nil {
		return apiError(c, http.StatusNotFound, err.Error())
	}
	start, end, err := dashboard.SelectRange(ds, c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return apiError(c, http.StatusBadRequest, err.Error())
	}
	if end.Before(start) {
		return apiError(c, http.StatusBadRequest, "end date is before start date")
	}
	return c.JSON(http.StatusOK, dashboard.TimeSeries(ds, company, start, end))
}

// SDGChartPNG handles GET /charts/sdg.png?company=&date=
func (h *Handler) SDGChartPNG(c echo.Context) error {
	ds := h.data.Get()
	company, err := strictCompany(ds, c.QueryParam("company"))
	if err != nil {
		return apiError(c, http.StatusNotFound, err.Error())
	}
	day, err := dashboard.SelectDay(ds, c.QueryParam("date"))
	if err != nil {
		return apiError(c, http.StatusBadRequest, err.Error())
	}
	o, ok := ds.Lookup(company, day)
	if !ok {
		return apiError(c, http.StatusNotFound, dashboard.NoDataForDate)
	}

	var buf bytes.Buffer
	if err := charts.RenderSDGBarPNG(&buf, o); err != nil {
		return pngError(c, err)
	}
	return pngBlob(c, buf.Bytes(), fmt.Sprintf("sdg_%s_%s.png", o.Ticker, o.Day()))
}

// TimeSeriesChartPNG handles GET /charts/timeseries.png?series=sts|lts|sdg&company=&start=&end=
func (h *Handler) TimeSeriesChartPNG(c echo.Context) error {
	ds := h.data.Get()
	series, err := charts.ParseSeries(c.QueryParam("series"))
	if err != nil {
		return apiError(c, http.StatusBadRequest, err.Error())
	}
	company, err := strictCompany(ds, c.QueryParam("company"))
	if err != nil {
		return apiError(c, http.StatusNotFound, err.Error())
	}
	start, end, err := dashboard.SelectRange(ds, c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return apiError(c, http.StatusBadRequest, err.Error())
	}
	if end.Before(start) {
		return apiError(c, http.StatusBadRequest, "end date is before start date")
	}

	var buf bytes.Buffer
	if err := charts.RenderLinePNG(&buf, ds.Daily(company, start, end), series); err != nil {
		return pngError(c, err)
	}
	return pngBlob(c, buf.Bytes(), fmt.Sprintf("%s_%s_%s.png", series, start.Format(models.DateLayout), end.Format(models.DateLayout)))
}

// NotFound answers unknown API and export paths.
func (h *Handler) NotFound(c echo.Context) error {
	return apiError(c, http.StatusNotFound, fmt.Sprintf("no such endpoint %s", c.Request().URL.Path))
}

func strictCompany(ds *dataset.Dataset, name string) (string, error) {
	if name == "" {
		return ds.DefaultCompany(), nil
	}
	if !ds.HasCompany(name) {
		return "", fmt.Errorf("unknown company %q", name)
	}
	return name, nil
}

func pngBlob(c echo.Context, b []byte, filename string) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Blob(http.StatusOK, "image/png", b)
}

func pngError(c echo.Context, err error) error {
	if errors.Is(err, charts.ErrNotEnoughData) {
		return apiError(c, http.StatusNotFound, NoChartData)
	}
	return fmt.Errorf("rendering chart: %w", err)
}

// NoChartData is returned when an export has nothing to draw.
const NoChartData = "not enough data to draw the chart"
