package server

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/labstack/echo/v4"
)

func renderTemplate(c echo.Context, tmpl *template.Template, data interface{}) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.Error("Template execution failed", "path", c.Request().URL.Path, "error", err)
		return c.String(500, "Failed to render page")
	}
	return c.HTMLBlob(200, buf.Bytes())
}

func (s *Server) handleIndex(c echo.Context) error {
	data := map[string]any{
		"WSHost": c.Request().Host,
	}
	return renderTemplate(c, s.indexTemplate, data)
}

func (s *Server) handleTraffic(c echo.Context) error {
	return c.JSON(200, s.store.All())
}
