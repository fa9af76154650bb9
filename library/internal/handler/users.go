package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-records/library/internal/model"
)

func (h *Handler) ListUsers(c echo.Context) error {
	page, err := pageParams(c, defaultLimit, maxLimit)
	if err != nil {
		return err
	}
	isActive, err := optionalBool(c, "is_active")
	if err != nil {
		return err
	}
	filter := model.UserFilter{IsActive: isActive, Page: page}
	if v := c.QueryParam("role"); v != "" {
		role := model.Role(v)
		filter.Role = &role
	}

	users, err := h.librarySvc.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) SearchUsers(c echo.Context) error {
	page, err := pageParams(c, defaultLimit, maxLimit)
	if err != nil {
		return err
	}
	users, err := h.librarySvc.SearchUsers(c.Request().Context(), c.QueryParam("q"), page)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	user, err := h.librarySvc.GetUser(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) CreateUser(c echo.Context) error {
	var req model.CreateUserRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.UpdateUserRequest
	if err = bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.UpdateUser(c.Request().Context(), id, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) ActivateUser(c echo.Context) error {
	return h.setActive(c, true, "User activated successfully")
}

func (h *Handler) DeactivateUser(c echo.Context) error {
	return h.setActive(c, false, "User deactivated successfully")
}

func (h *Handler) setActive(c echo.Context, active bool, msg string) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if _, err = h.librarySvc.SetUserActive(c.Request().Context(), id, active); err != nil {
		return h.httpError(err)
	}
	return message(c, msg)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err = h.librarySvc.DeleteUser(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	return message(c, "User deleted successfully")
}
