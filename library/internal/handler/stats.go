package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) LibraryStats(c echo.Context) error {
	stats, err := h.librarySvc.LibraryStats(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) BorrowStats(c echo.Context) error {
	stats, err := h.librarySvc.BorrowStats(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) AuthorStats(c echo.Context) error {
	stats, err := h.librarySvc.AuthorStats(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
