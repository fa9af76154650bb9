package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-records/library/internal/model"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func (h *Handler) ListBooks(c echo.Context) error {
	page, err := pageParams(c, defaultLimit, maxLimit)
	if err != nil {
		return err
	}
	availableOnly, err := optionalBool(c, "available_only")
	if err != nil {
		return err
	}
	filter := model.BookFilter{
		Title:         c.QueryParam("title"),
		Author:        c.QueryParam("author"),
		AvailableOnly: availableOnly != nil && *availableOnly,
		Page:          page,
	}
	if v := c.QueryParam("genre"); v != "" {
		genre := model.Genre(v)
		filter.Genre = &genre
	}
	if v := c.QueryParam("status"); v != "" {
		status := model.BookStatus(v)
		filter.Status = &status
	}

	books, err := h.librarySvc.ListBooks(c.Request().Context(), filter)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	book, err := h.librarySvc.GetBook(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	book, err := h.librarySvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.UpdateBookRequest
	if err = bindValid(c, &req); err != nil {
		return err
	}
	book, err := h.librarySvc.UpdateBook(c.Request().Context(), id, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err = h.librarySvc.DeleteBook(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	return message(c, "Book deleted successfully")
}
