package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mauv0809/sdg-dashboard/internal/dataset"
	"github.com/mauv0809/sdg-dashboard/internal/models"
	"github.com/mauv0809/sdg-dashboard/internal/store"
	"github.com/rs/zerolog/log"
)

// AdminHandler handles dataset maintenance endpoints.
type AdminHandler struct {
	src  store.Source
	data *dataset.Holder
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(src store.Source, data *dataset.Holder) *AdminHandler {
	return &AdminHandler{
		src:  src,
		data: data,
	}
}

// ReloadResponse is the JSON response of the reload endpoint.
type ReloadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
	Skipped int    `json:"skipped,omitempty"`
	Elapsed string `json:"elapsed,omitempty"`
}

// Reload handles POST /admin/dataset/reload
// Re-reads the whole collection and swaps it in once fully decoded.
func (h *AdminHandler) Reload(c echo.Context) error {
	ctx := c.Request().Context()
	log.Info().Str("source", h.src.Name()).Msg("reloading dataset")

	res, err := store.Load(ctx, h.src)
	if err != nil {
		log.Error().Err(err).Msg("dataset reload failed")
		return c.JSON(http.StatusInternalServerError, ReloadResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to reload dataset: %v", err),
		})
	}

	old := h.data.Swap(res.Dataset)
	previous := 0
	if old != nil {
		previous = old.Len()
	}
	log.Info().
		Int("records", res.Dataset.Len()).
		Int("previous", previous).
		Dur("elapsed", res.Elapsed).
		Msg("dataset swapped")

	return c.JSON(http.StatusOK, ReloadResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully loaded %d records", res.Dataset.Len()),
		Count:   res.Dataset.Len(),
		Skipped: res.Skipped,
		Elapsed: res.Elapsed.String(),
	})
}

// Status handles GET /admin/dataset/status
// Compares the served dataset with the current size of the collection.
func (h *AdminHandler) Status(c echo.Context) error {
	ctx := c.Request().Context()
	ds := h.data.Get()

	resp := map[string]interface{}{
		"source":    h.src.Name(),
		"records":   ds.Len(),
		"companies": len(ds.Companies()),
		"loaded_at": h.data.LoadedAt().UTC().Format(time.RFC3339),
	}
	if first, last, ok := ds.Bounds(); ok {
		resp["first_date"] = first.Format(models.DateLayout)
		resp["last_date"] = last.Format(models.DateLayout)
	}

	if cat, ok := h.src.(store.Catalog); ok {
		names, err := cat.GetCollections(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("listing collections")
		} else {
			resp["collections"] = names
		}
	}

	count, err := h.src.CountDocuments(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("counting documents")
		resp["store_error"] = err.Error()
	} else {
		resp["documents"] = count
	}

	return c.JSON(http.StatusOK, resp)
}
