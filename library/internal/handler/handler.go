package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-records/library/internal/errs"
	"github.com/Astemirdum/library-records/library/internal/model"
	md "github.com/Astemirdum/library-records/pkg/middleware"
	"github.com/Astemirdum/library-records/pkg/validate"
	_ "github.com/Astemirdum/library-records/swagger"
)

type Handler struct {
	librarySvc LibraryService
	log        *zap.Logger
}

func New(librarySvc LibraryService, log *zap.Logger) *Handler {
	return &Handler{
		librarySvc: librarySvc,
		log:        log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)
	api.GET("/health", h.Health)
	api.GET("/stats", h.LibraryStats)

	books := api.Group("/books")
	books.GET("", h.ListBooks)
	books.POST("", h.CreateBook)
	books.GET("/:id", h.GetBook)
	books.PUT("/:id", h.UpdateBook)
	books.PATCH("/:id", h.UpdateBook)
	books.DELETE("/:id", h.DeleteBook)

	authors := api.Group("/authors")
	authors.GET("", h.ListAuthors)
	authors.POST("", h.CreateAuthor)
	authors.GET("/search", h.SearchAuthors)
	authors.GET("/stats", h.AuthorStats)
	authors.GET("/:id", h.GetAuthor)
	authors.GET("/:id/books", h.ListAuthorBooks)
	authors.PUT("/:id", h.UpdateAuthor)
	authors.PATCH("/:id", h.UpdateAuthor)
	authors.DELETE("/:id", h.DeleteAuthor)

	users := api.Group("/users")
	users.GET("", h.ListUsers)
	users.POST("", h.CreateUser)
	users.GET("/search", h.SearchUsers)
	users.GET("/:id", h.GetUser)
	users.PUT("/:id", h.UpdateUser)
	users.PATCH("/:id", h.UpdateUser)
	users.PATCH("/:id/activate", h.ActivateUser)
	users.PATCH("/:id/deactivate", h.DeactivateUser)
	users.DELETE("/:id", h.DeleteUser)

	auth := api.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/check-email", h.CheckEmail)

	borrows := api.Group("/borrow-records")
	borrows.GET("", h.ListBorrows)
	borrows.POST("", h.CreateBorrow)
	borrows.GET("/overdue", h.ListOverdue)
	borrows.GET("/due-soon", h.ListDueSoon)
	borrows.GET("/stats", h.BorrowStats)
	borrows.GET("/:id", h.GetBorrow)
	borrows.PATCH("/:id", h.UpdateBorrow)
	borrows.PATCH("/:id/return", h.ReturnBorrow)
	borrows.PATCH("/:id/extend", h.ExtendBorrow)
	borrows.DELETE("/:id", h.DeleteBorrow)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps domain errors to status codes. Only not found and unauthorized get their own code.
func (h *Handler) httpError(err error) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrLimitExceeded),
		errors.Is(err, errs.ErrBlocked),
		errors.Is(err, errs.ErrInvalidState):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.log.Error("internal", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is invalid")
	}
	return id, nil
}

// pageParams reads limit/offset. limit defaults to def and must stay within [1, maxLimit].
func pageParams(c echo.Context, def, maxLimit int) (model.Page, error) {
	page := model.Page{Limit: def}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > maxLimit {
			return model.Page{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxLimit))
		}
		page.Limit = limit
	}
	if v := c.QueryParam("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return model.Page{}, echo.NewHTTPError(http.StatusBadRequest, "offset is invalid")
		}
		page.Offset = offset
	}
	return page, nil
}

func optionalInt(c echo.Context, name string) (*int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return &n, nil
}

func optionalBool(c echo.Context, name string) (*bool, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return &b, nil
}

func message(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, model.Message{Message: msg})
}
