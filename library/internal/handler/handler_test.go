package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-records/library/internal/errs"
	"github.com/Astemirdum/library-records/library/internal/handler"
	service_mocks "github.com/Astemirdum/library-records/library/internal/handler/mocks"
	"github.com/Astemirdum/library-records/library/internal/model"
	"github.com/Astemirdum/library-records/pkg/validate"
)

type response struct {
	expectedCode int
	expectedBody string
}

func serve(t *testing.T, method, target, contentType, body string, register func(e *echo.Echo, h *handler.Handler), mock func(r *service_mocks.MockLibraryService)) *httptest.ResponseRecorder {
	t.Helper()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockLibraryService(c)
	h := handler.New(svc, zap.NewExample().Named("test"))

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	register(e, h)

	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set(echo.HeaderContentType, contentType)
	w := httptest.NewRecorder()

	mock(svc)
	e.ServeHTTP(w, r)
	return w
}

func TestHandler_CreateBorrow(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockLibraryService)

	due := model.Date{Time: time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)}
	view := model.BorrowRecordView{
		BorrowRecord: model.BorrowRecord{
			ID:           10,
			UserID:       1,
			BookID:       2,
			BorrowedDate: time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC),
			DueDate:      due.Time,
		},
	}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"user_id":1,"book_id":2,"due_date":"2024-03-25"}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					Borrow(gomock.Any(), model.CreateBorrowRequest{UserID: 1, BookID: 2, DueDate: &due}).
					Return(view, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":10,"user_id":1,"book_id":2,"borrowed_date":"2024-03-11T12:00:00Z","due_date":"2024-03-25T00:00:00Z","returned_date":null,"fine_amount":null,"notes":null,"is_overdue":false,"days_overdue":0}`,
			},
		},
		{
			name:         "err. user_id required",
			body:         `{"book_id":2}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'CreateBorrowRequest.UserID' Error:Field validation for 'UserID' failed on the 'required' tag"}`,
			},
		},
		{
			name: "err. limit reached",
			body: `{"user_id":1,"book_id":2}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					Borrow(gomock.Any(), model.CreateBorrowRequest{UserID: 1, BookID: 2}).
					Return(model.BorrowRecordView{}, errs.New(errs.ErrLimitExceeded, "user has reached maximum active borrows limit (%d)", 5))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"user has reached maximum active borrows limit (5)"}`,
			},
		},
		{
			name: "err. user not found",
			body: `{"user_id":1,"book_id":2}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					Borrow(gomock.Any(), model.CreateBorrowRequest{UserID: 1, BookID: 2}).
					Return(model.BorrowRecordView{}, errs.New(errs.ErrNotFound, "user not found"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"user not found"}`,
			},
		},
		{
			name: "err. internal",
			body: `{"user_id":1,"book_id":2}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					Borrow(gomock.Any(), gomock.Any()).
					Return(model.BorrowRecordView{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, http.MethodPost, "/borrow-records", echo.MIMEApplicationJSON, tt.body,
				func(e *echo.Echo, h *handler.Handler) { e.POST("/borrow-records", h.CreateBorrow) },
				tt.mockBehavior)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ExtendBorrow(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockLibraryService)

	var tests = []struct {
		name         string
		target       string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:         "err. extend_days missing",
			target:       "/borrow-records/7/extend",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"extend_days is required"}`,
			},
		},
		{
			name:   "err. out of range",
			target: "/borrow-records/7/extend?extend_days=31",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().ExtendBorrow(gomock.Any(), 7, 31).
					Return(model.BorrowRecordView{}, errs.New(errs.ErrValidation, "extend_days must be between 1 and 30"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"extend_days must be between 1 and 30"}`,
			},
		},
		{
			name:   "err. returned",
			target: "/borrow-records/7/extend?extend_days=3",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().ExtendBorrow(gomock.Any(), 7, 3).
					Return(model.BorrowRecordView{}, errs.New(errs.ErrConflict, "cannot extend a returned record"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"cannot extend a returned record"}`,
			},
		},
		{
			name:         "err. bad id",
			target:       "/borrow-records/abc/extend?extend_days=3",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"id is invalid"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, http.MethodPatch, tt.target, echo.MIMEApplicationJSON, "",
				func(e *echo.Echo, h *handler.Handler) { e.PATCH("/borrow-records/:id/extend", h.ExtendBorrow) },
				tt.mockBehavior)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ListBorrows(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockLibraryService)

	userID := 1
	overdue := true

	var tests = []struct {
		name         string
		target       string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:   "ok. filters",
			target: "/borrow-records?user_id=1&is_overdue=true",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					ListBorrows(gomock.Any(), model.BorrowFilter{UserID: &userID, IsOverdue: &overdue, Page: model.Page{Limit: 20}}).
					Return([]model.BorrowRecordView{}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[]`,
			},
		},
		{
			name:         "err. limit",
			target:       "/borrow-records?limit=101",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"limit must be between 1 and 100"}`,
			},
		},
		{
			name:         "err. is_returned",
			target:       "/borrow-records?is_returned=maybe",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"is_returned is invalid"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, http.MethodGet, tt.target, echo.MIMEApplicationJSON, "",
				func(e *echo.Echo, h *handler.Handler) { e.GET("/borrow-records", h.ListBorrows) },
				tt.mockBehavior)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ListOverdue_Limits(t *testing.T) {
	t.Parallel()
	w := serve(t, http.MethodGet, "/borrow-records/overdue?limit=200&offset=5", echo.MIMEApplicationJSON, "",
		func(e *echo.Echo, h *handler.Handler) { e.GET("/borrow-records/overdue", h.ListOverdue) },
		func(r *service_mocks.MockLibraryService) {
			r.EXPECT().ListOverdue(gomock.Any(), model.Page{Limit: 200, Offset: 5}).Return([]model.BorrowRecordView{}, nil)
		})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `[]`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockLibraryService)

	form := url.Values{"email": {"alice@example.com"}, "password": {"secret123"}}.Encode()

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: form,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					Login(gomock.Any(), model.LoginRequest{Email: "alice@example.com", Password: "secret123"}).
					Return(model.User{ID: 1, Name: "Alice Reader", Email: "alice@example.com", Role: model.RoleMember, IsActive: true, HashedPassword: "$2a$04$hash"}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"name":"Alice Reader","email":"alice@example.com","role":"member","is_active":true,"created_at":"0001-01-01T00:00:00Z","updated_at":"0001-01-01T00:00:00Z"}`,
			},
		},
		{
			name: "err. wrong password",
			body: form,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					Login(gomock.Any(), gomock.Any()).
					Return(model.User{}, errs.New(errs.ErrUnauthorized, "incorrect email or password"))
			},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"incorrect email or password"}`,
			},
		},
		{
			name:         "err. email required",
			body:         url.Values{"password": {"secret123"}}.Encode(),
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, http.MethodPost, "/auth/login", echo.MIMEApplicationForm, tt.body,
				func(e *echo.Echo, h *handler.Handler) { e.POST("/auth/login", h.Login) },
				tt.mockBehavior)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_CreateUser_WeakPassword(t *testing.T) {
	t.Parallel()
	w := serve(t, http.MethodPost, "/users", echo.MIMEApplicationJSON,
		`{"name":"Alice Reader","email":"alice@example.com","password":"onlyletters"}`,
		func(e *echo.Echo, h *handler.Handler) { e.POST("/users", h.CreateUser) },
		func(r *service_mocks.MockLibraryService) {})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `{"message":"Key: 'CreateUserRequest.Password' Error:Field validation for 'Password' failed on the 'password' tag"}`,
		strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_DeleteUser(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockLibraryService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().DeleteUser(gomock.Any(), 1).Return(nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"message":"User deleted successfully"}`,
			},
		},
		{
			name: "err. active borrows",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().DeleteUser(gomock.Any(), 1).
					Return(errs.New(errs.ErrConflict, "cannot delete user with active borrow records"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"cannot delete user with active borrow records"}`,
			},
		},
		{
			name: "err. not found",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().DeleteUser(gomock.Any(), 1).Return(errs.New(errs.ErrNotFound, "user not found"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"user not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, http.MethodDelete, "/users/1", echo.MIMEApplicationJSON, "",
				func(e *echo.Echo, h *handler.Handler) { e.DELETE("/users/:id", h.DeleteUser) },
				tt.mockBehavior)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Router(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	svc := service_mocks.NewMockLibraryService(c)
	svc.EXPECT().ListDueSoon(gomock.Any(), 3, model.Page{Limit: 50}).Return([]model.BorrowRecordView{}, nil)

	e := handler.New(svc, zap.NewNop()).NewRouter()

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage/health", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())

	w = httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/borrow-records/due-soon/", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `[]`, strings.Trim(w.Body.String(), "\n"))
}
