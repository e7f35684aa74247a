package handlers

import "github.com/labstack/echo/v4"

// Register mounts the dashboard pages, the JSON API and the chart exports.
// Unknown page paths render the stats page; unknown API and export paths
// are JSON 404s.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/", h.Index)
	e.GET("/timeseries", h.TimeSeries)

	api := e.Group("/api")
	api.GET("/companies", h.Companies)
	api.GET("/dashboard", h.Dashboard)
	api.GET("/timeseries", h.TimeSeriesJSON)
	api.Any("/*", h.NotFound)

	png := e.Group("/charts")
	png.GET("/sdg.png", h.SDGChartPNG)
	png.GET("/timeseries.png", h.TimeSeriesChartPNG)
	png.Any("/*", h.NotFound)

	e.GET("/*", h.Index)
}

// Register mounts the dataset maintenance endpoints under g.
func (a *AdminHandler) Register(g *echo.Group) {
	g.GET("/dataset/status", a.Status)
	g.POST("/dataset/reload", a.Reload)
}
