package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-records/library/internal/model"
	"github.com/Astemirdum/library-records/library/internal/service"
)

const (
	defaultOverdueLimit = 50
	maxOverdueLimit     = 200
)

func (h *Handler) CreateBorrow(c echo.Context) error {
	var req model.CreateBorrowRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	rec, err := h.librarySvc.Borrow(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) GetBorrow(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	rec, err := h.librarySvc.GetBorrow(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) ListBorrows(c echo.Context) error {
	var (
		filter model.BorrowFilter
		err    error
	)
	if filter.Page, err = pageParams(c, defaultLimit, maxLimit); err != nil {
		return err
	}
	if filter.UserID, err = optionalInt(c, "user_id"); err != nil {
		return err
	}
	if filter.BookID, err = optionalInt(c, "book_id"); err != nil {
		return err
	}
	if filter.IsReturned, err = optionalBool(c, "is_returned"); err != nil {
		return err
	}
	if filter.IsOverdue, err = optionalBool(c, "is_overdue"); err != nil {
		return err
	}

	recs, err := h.librarySvc.ListBorrows(c.Request().Context(), filter)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *Handler) ListOverdue(c echo.Context) error {
	page, err := pageParams(c, defaultOverdueLimit, maxOverdueLimit)
	if err != nil {
		return err
	}
	recs, err := h.librarySvc.ListOverdue(c.Request().Context(), page)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *Handler) ListDueSoon(c echo.Context) error {
	page, err := pageParams(c, defaultOverdueLimit, maxOverdueLimit)
	if err != nil {
		return err
	}
	days := service.DefaultDueSoonDays
	if v := c.QueryParam("days"); v != "" {
		if days, err = strconv.Atoi(v); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "days is invalid")
		}
	}
	recs, err := h.librarySvc.ListDueSoon(c.Request().Context(), days, page)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *Handler) ReturnBorrow(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	rec, err := h.librarySvc.ReturnBorrow(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) ExtendBorrow(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	days, err := strconv.Atoi(c.QueryParam("extend_days"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "extend_days is required")
	}
	rec, err := h.librarySvc.ExtendBorrow(c.Request().Context(), id, days)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) UpdateBorrow(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.UpdateBorrowRequest
	if err = bindValid(c, &req); err != nil {
		return err
	}
	rec, err := h.librarySvc.UpdateBorrow(c.Request().Context(), id, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) DeleteBorrow(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err = h.librarySvc.DeleteBorrow(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	return message(c, "Borrow record deleted successfully")
}
