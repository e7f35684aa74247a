package handlers

import (
	"bytes"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as the HTML response.
func Render(c echo.Context, statusCode int, t templ.Component) error {
	var buf bytes.Buffer
	if err := t.Render(c.Request().Context(), &buf); err != nil {
		return err
	}
	return c.HTMLBlob(statusCode, buf.Bytes())
}

// APIError is the JSON body of a failed API request.
type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func apiError(c echo.Context, status int, msg string) error {
	return c.JSON(status, APIError{Success: false, Message: msg})
}
