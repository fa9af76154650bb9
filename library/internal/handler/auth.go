package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-records/library/internal/model"
)

func (h *Handler) Register(c echo.Context) error {
	var req model.CreateUserRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.Register(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login takes form fields and answers with the user. No token is issued.
func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.Login(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) CheckEmail(c echo.Context) error {
	var req model.CheckEmailRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	resp, err := h.librarySvc.CheckEmail(c.Request().Context(), req.Email)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}
