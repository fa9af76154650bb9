package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-records/library/internal/model"
)

func (h *Handler) ListAuthors(c echo.Context) error {
	page, err := pageParams(c, defaultLimit, maxLimit)
	if err != nil {
		return err
	}
	authors, err := h.librarySvc.ListAuthors(c.Request().Context(), model.AuthorFilter{
		Name:        c.QueryParam("name"),
		Nationality: c.QueryParam("nationality"),
		Page:        page,
	})
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, authors)
}

func (h *Handler) SearchAuthors(c echo.Context) error {
	page, err := pageParams(c, defaultLimit, maxLimit)
	if err != nil {
		return err
	}
	authors, err := h.librarySvc.SearchAuthors(c.Request().Context(), c.QueryParam("q"), page)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, authors)
}

func (h *Handler) GetAuthor(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	author, err := h.librarySvc.GetAuthor(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, author)
}

func (h *Handler) ListAuthorBooks(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	books, err := h.librarySvc.ListAuthorBooks(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) CreateAuthor(c echo.Context) error {
	var req model.CreateAuthorRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	author, err := h.librarySvc.CreateAuthor(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, author)
}

func (h *Handler) UpdateAuthor(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.UpdateAuthorRequest
	if err = bindValid(c, &req); err != nil {
		return err
	}
	author, err := h.librarySvc.UpdateAuthor(c.Request().Context(), id, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, author)
}

func (h *Handler) DeleteAuthor(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err = h.librarySvc.DeleteAuthor(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	return message(c, "Author deleted successfully")
}
