package handler

import (
	"context"

	"github.com/Astemirdum/library-records/library/internal/model"
	"github.com/Astemirdum/library-records/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error

	ListAuthors(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error)
	SearchAuthors(ctx context.Context, query string, page model.Page) ([]model.Author, error)
	GetAuthor(ctx context.Context, id int) (model.Author, error)
	ListAuthorBooks(ctx context.Context, id int) ([]model.Book, error)
	CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (model.Author, error)
	UpdateAuthor(ctx context.Context, id int, req model.UpdateAuthorRequest) (model.Author, error)
	DeleteAuthor(ctx context.Context, id int) error

	ListUsers(ctx context.Context, filter model.UserFilter) ([]model.User, error)
	SearchUsers(ctx context.Context, query string, page model.Page) ([]model.User, error)
	GetUser(ctx context.Context, id int) (model.User, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) (model.User, error)
	SetUserActive(ctx context.Context, id int, active bool) (model.User, error)
	DeleteUser(ctx context.Context, id int) error

	Register(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (model.User, error)
	CheckEmail(ctx context.Context, email string) (model.CheckEmailResponse, error)

	Borrow(ctx context.Context, req model.CreateBorrowRequest) (model.BorrowRecordView, error)
	GetBorrow(ctx context.Context, id int) (model.BorrowRecordView, error)
	ListBorrows(ctx context.Context, filter model.BorrowFilter) ([]model.BorrowRecordView, error)
	ListOverdue(ctx context.Context, page model.Page) ([]model.BorrowRecordView, error)
	ListDueSoon(ctx context.Context, days int, page model.Page) ([]model.BorrowRecordView, error)
	ReturnBorrow(ctx context.Context, id int) (model.BorrowRecordView, error)
	ExtendBorrow(ctx context.Context, id, days int) (model.BorrowRecordView, error)
	UpdateBorrow(ctx context.Context, id int, req model.UpdateBorrowRequest) (model.BorrowRecordView, error)
	DeleteBorrow(ctx context.Context, id int) error

	LibraryStats(ctx context.Context) (model.LibraryStats, error)
	BorrowStats(ctx context.Context) (model.BorrowStats, error)
	AuthorStats(ctx context.Context) (model.AuthorStats, error)
}

var _ LibraryService = (*service.Service)(nil)
