package pubfront

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus renders cmp into memory and only then writes the response,
// so a failing component still reaches the error handler uncommitted.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	var buf bytes.Buffer
	if err := cmp.Render(c.Request().Context(), &buf); err != nil {
		return err
	}
	return c.HTMLBlob(code, buf.Bytes())
}

// renderPage renders the result of a page assembly function, mapping
// ErrNotFound to the 404 page.
func (a *App) renderPage(c echo.Context, cmp templ.Component, err error) error {
	if errors.Is(err, ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.NotFoundPage())
	}
	if err != nil {
		return err
	}
	return Render(c, cmp)
}
