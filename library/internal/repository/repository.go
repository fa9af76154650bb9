package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-records/library/internal/errs"
	"github.com/Astemirdum/library-records/library/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	// InTx runs fn against a repository bound to a single transaction.
	// Nested calls reuse the outer transaction.
	InTx(ctx context.Context, fn func(repo Repository) error) error

	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	GetBookForUpdate(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	UpdateBook(ctx context.Context, book model.Book) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error
	ApplyTransition(ctx context.Context, t model.StatusTransition) error
	LinkAuthors(ctx context.Context, bookID int, authorIDs []int) error
	UnlinkAuthors(ctx context.Context, bookID int) error
	ListBookAuthors(ctx context.Context, bookIDs []int) (map[int][]model.Author, error)
	CountActiveBorrowsForBook(ctx context.Context, bookID int) (int, error)

	ListAuthors(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error)
	GetAuthor(ctx context.Context, id int) (model.Author, error)
	CreateAuthor(ctx context.Context, author model.Author) (model.Author, error)
	UpdateAuthor(ctx context.Context, author model.Author) (model.Author, error)
	DeleteAuthor(ctx context.Context, id int) error
	ExistingAuthorIDs(ctx context.Context, ids []int) ([]int, error)
	CountAuthorBooks(ctx context.Context, authorID int) (int, error)
	ListAuthorBooks(ctx context.Context, authorID int) ([]model.Book, error)

	ListUsers(ctx context.Context, filter model.UserFilter) ([]model.User, error)
	GetUser(ctx context.Context, id int) (model.User, error)
	GetUserForUpdate(ctx context.Context, id int) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	UpdateUser(ctx context.Context, user model.User) (model.User, error)
	DeleteUser(ctx context.Context, id int) error

	ListBorrows(ctx context.Context, filter model.BorrowFilter) ([]model.BorrowRecord, error)
	ListOverdue(ctx context.Context, today time.Time, page model.Page) ([]model.BorrowRecord, error)
	ListDueSoon(ctx context.Context, today time.Time, days int, page model.Page) ([]model.BorrowRecord, error)
	GetBorrow(ctx context.Context, id int) (model.BorrowRecord, error)
	GetBorrowForUpdate(ctx context.Context, id int) (model.BorrowRecord, error)
	CreateBorrow(ctx context.Context, rec model.BorrowRecord) (model.BorrowRecord, error)
	UpdateBorrow(ctx context.Context, rec model.BorrowRecord) (model.BorrowRecord, error)
	DeleteBorrow(ctx context.Context, id int) error
	Standing(ctx context.Context, userID int, today time.Time) (model.Standing, error)

	BookCounts(ctx context.Context) (model.BookCounts, error)
	CountAuthors(ctx context.Context) (int, error)
	CountUsers(ctx context.Context) (int, error)
	BorrowCounts(ctx context.Context, today time.Time) (model.BorrowCounts, error)
	TotalFines(ctx context.Context) (float64, error)
	AverageBorrowDays(ctx context.Context) (float64, error)
	MostBorrowedBooks(ctx context.Context, limit uint) ([]model.BookBorrowCount, error)
	AuthorsByNationality(ctx context.Context) ([]model.NationalityCount, error)
	MostProlificAuthors(ctx context.Context, limit uint) ([]model.AuthorBookCount, error)
}

// querier is implemented by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	pool *pgxpool.Pool
	db   querier
	log  *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	if db == nil {
		return nil, errors.New("nil pool")
	}
	return &repository{
		pool: db,
		db:   db,
		log:  log.Named("repo"),
	}, nil
}

const (
	booksTableName       = `books`
	authorsTableName     = `authors`
	bookAuthorsTableName = `book_author_links`
	usersTableName       = `users`
	borrowsTableName     = `borrow_records`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) InTx(ctx context.Context, fn func(repo Repository) error) error {
	if r.pool == nil {
		return fn(r)
	}
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&repository{db: tx, log: r.log})
	})
}

func getOne[T any](ctx context.Context, db querier, log *zap.Logger, what string, b sq.Sqlizer) (T, error) {
	var zero T
	query, args, err := b.ToSql()
	if err != nil {
		return zero, err
	}
	log.Debug(what, zap.String("q", query), zap.Any("args", args))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return zero, errors.Wrap(err, what)
	}
	defer rows.Close()

	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, errs.New(errs.ErrNotFound, "%s not found", what)
		}
		return zero, errors.Wrap(err, what)
	}
	return item, nil
}

func getMany[T any](ctx context.Context, db querier, log *zap.Logger, what string, b sq.Sqlizer) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	log.Debug(what, zap.String("q", query), zap.Any("args", args))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, what)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, errors.Wrap(err, what)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func exec(ctx context.Context, db querier, log *zap.Logger, what string, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	log.Debug(what, zap.String("q", query), zap.Any("args", args))

	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, what)
	}
	return tag.RowsAffected(), nil
}

func count(ctx context.Context, db querier, what string, b sq.Sqlizer) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err = db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, errors.Wrap(err, what)
	}
	return n, nil
}

func paginate(b sq.SelectBuilder, page model.Page) sq.SelectBuilder {
	if page.Limit > 0 {
		b = b.Limit(uint64(page.Limit))
	}
	if page.Offset > 0 {
		b = b.Offset(uint64(page.Offset))
	}
	return b
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
