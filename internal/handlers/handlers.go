package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mauv0809/sdg-dashboard/internal/dashboard"
	"github.com/mauv0809/sdg-dashboard/internal/dataset"
	"github.com/mauv0809/sdg-dashboard/internal/models"
	"github.com/mauv0809/sdg-dashboard/internal/views"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	data *dataset.Holder
}

func New(data *dataset.Holder) *Handler {
	return &Handler{data: data}
}

// Health returns application health status
// @Summary Health check
// @Description Returns the health status and the size of the loaded dataset
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"records":   h.data.Get().Len(),
		"loaded_at": h.data.LoadedAt().UTC().Format(time.RFC3339),
	})
}

// Index renders the stats page for ?company=&date=. Unknown companies and
// malformed dates fall back to the defaults.
func (h *Handler) Index(c echo.Context) error {
	ds := h.data.Get()
	company := dashboard.SelectCompany(ds, c.QueryParam("company"))

	day, err := dashboard.SelectDay(ds, c.QueryParam("date"))
	if err != nil {
		log.Debug().Err(err).Msg("falling back to latest date")
		day, _ = dashboard.SelectDay(ds, "")
	}

	return Render(c, http.StatusOK, views.Stats(views.StatsPage{
		Picker:    picker(ds),
		StatsView: dashboard.Stats(ds, company, day),
	}))
}

// TimeSeries renders the time-series page for ?company=&start=&end=.
func (h *Handler) TimeSeries(c echo.Context) error {
	ds := h.data.Get()
	company := dashboard.SelectCompany(ds, c.QueryParam("company"))

	start, end, err := dashboard.SelectRange(ds, c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		log.Debug().Err(err).Msg("falling back to default range")
		start, end = ds.DefaultRange()
	}

	return Render(c, http.StatusOK, views.TimeSeries(views.TimeSeriesPage{
		Picker:         picker(ds),
		TimeSeriesView: dashboard.TimeSeries(ds, company, start, end),
	}))
}

func picker(ds *dataset.Dataset) views.Picker {
	p := views.Picker{Companies: ds.Companies()}
	if first, last, ok := ds.Bounds(); ok {
		p.MinDate = first.Format(models.DateLayout)
		p.MaxDate = last.Format(models.DateLayout)
	}
	return p
}
