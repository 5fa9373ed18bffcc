package analytics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the visit beacon and the summary endpoint.
type Handler struct {
	store *Store
}

// NewHandler creates a Handler backed by the given store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RecordVisit handles the public beacon. It never returns an error body;
// a broken beacon must not surface to visitors.
func (h *Handler) RecordVisit(c echo.Context) error {
	path := c.FormValue("path")
	if path == "" || len(path) > 512 {
		return c.NoContent(http.StatusNoContent)
	}
	visit := Visit{
		IPHash:    h.store.HashIP(c.RealIP()),
		Path:      path,
		Referrer:  c.FormValue("referrer"),
		UserAgent: c.Request().UserAgent(),
	}
	if err := h.store.RecordVisit(visit); err != nil {
		c.Logger().Errorf("record visit: %v", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Summary returns aggregate stats for the last N days (default 30).
// The caller is responsible for admin gating.
func (h *Handler) Summary(c echo.Context) error {
	days := 30
	if v := c.QueryParam("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	res, err := h.store.Summary(time.Now().UTC().AddDate(0, 0, -days))
	if err != nil {
		return err
	}
	if res.TopPaths == nil {
		res.TopPaths = []PathCount{}
	}
	return c.JSON(http.StatusOK, res)
}
