package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-records/library/internal/errs"
	"github.com/Astemirdum/library-records/library/internal/model"
)

var bookColumns = []string{
	"b.id", "b.title", "b.pages", "b.language", "b.description",
	"b.genre", "b.status", "b.created_at", "b.updated_at",
}

func (r *repository) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	q := qb.Select(bookColumns...).
		From(booksTableName + " b").
		OrderBy("b.id")

	if filter.Title != "" {
		q = q.Where(sq.ILike{"b.title": "%" + filter.Title + "%"})
	}
	if filter.Author != "" {
		// nested builders keep "?" placeholders, the outer builder numbers them
		sub := sq.Select("1").
			From(bookAuthorsTableName + " ba").
			Join(authorsTableName + " a on a.id = ba.author_id").
			Where("ba.book_id = b.id").
			Where(sq.ILike{"a.name": "%" + filter.Author + "%"})
		q = q.Where(sq.Expr("exists (?)", sub))
	}
	if filter.Genre != nil {
		q = q.Where(sq.Eq{"b.genre": *filter.Genre})
	}
	switch {
	case filter.AvailableOnly:
		q = q.Where(sq.Eq{"b.status": model.BookAvailable})
	case filter.Status != nil:
		q = q.Where(sq.Eq{"b.status": *filter.Status})
	}

	return getMany[model.Book](ctx, r.db, r.log, "books", paginate(q, filter.Page))
}

func (r *repository) GetBook(ctx context.Context, id int) (model.Book, error) {
	q := qb.Select(bookColumns...).
		From(booksTableName + " b").
		Where(sq.Eq{"b.id": id})
	return getOne[model.Book](ctx, r.db, r.log, "book", q)
}

func (r *repository) GetBookForUpdate(ctx context.Context, id int) (model.Book, error) {
	q := qb.Select(bookColumns...).
		From(booksTableName + " b").
		Where(sq.Eq{"b.id": id}).
		Suffix("for update")
	return getOne[model.Book](ctx, r.db, r.log, "book", q)
}

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	q := qb.Insert(booksTableName).
		Columns("title", "pages", "language", "description", "genre", "status").
		Values(book.Title, book.Pages, book.Language, book.Description, book.Genre, book.Status).
		Suffix("returning id, title, pages, language, description, genre, status, created_at, updated_at")
	return getOne[model.Book](ctx, r.db, r.log, "book", q)
}

func (r *repository) UpdateBook(ctx context.Context, book model.Book) (model.Book, error) {
	q := qb.Update(booksTableName).
		SetMap(map[string]any{
			"title":       book.Title,
			"pages":       book.Pages,
			"language":    book.Language,
			"description": book.Description,
			"genre":       book.Genre,
			"status":      book.Status,
			"updated_at":  sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": book.ID}).
		Suffix("returning id, title, pages, language, description, genre, status, created_at, updated_at")
	return getOne[model.Book](ctx, r.db, r.log, "book", q)
}

func (r *repository) DeleteBook(ctx context.Context, id int) error {
	n, err := exec(ctx, r.db, r.log, "delete book",
		qb.Delete(booksTableName).Where(sq.Eq{"id": id}))
	if err != nil {
		if isForeignKeyViolation(err) {
			return errs.New(errs.ErrConflict, "cannot delete book with borrow history")
		}
		return err
	}
	if n == 0 {
		return errs.New(errs.ErrNotFound, "book not found")
	}
	return nil
}

// ApplyTransition writes a book status. With From set the write is a compare-and-swap and
// fails with ErrConflict when another transaction moved the book first.
func (r *repository) ApplyTransition(ctx context.Context, t model.StatusTransition) error {
	n, err := exec(ctx, r.db, r.log, "book status", transitionQuery(t))
	if err != nil {
		return err
	}
	if n == 0 {
		if t.From != "" {
			r.log.Warn("book status changed concurrently",
				zap.Int("book_id", t.BookID), zap.String("from", string(t.From)))
			return errs.New(errs.ErrConflict, "book is not available, current status changed")
		}
		return errs.New(errs.ErrNotFound, "book not found")
	}
	return nil
}

func transitionQuery(t model.StatusTransition) sq.UpdateBuilder {
	q := qb.Update(booksTableName).
		Set("status", t.To).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": t.BookID})
	if t.From != "" {
		q = q.Where(sq.Eq{"status": t.From})
	}
	return q
}

func (r *repository) LinkAuthors(ctx context.Context, bookID int, authorIDs []int) error {
	if len(authorIDs) == 0 {
		return nil
	}
	q := qb.Insert(bookAuthorsTableName).Columns("book_id", "author_id")
	for _, id := range authorIDs {
		q = q.Values(bookID, id)
	}
	_, err := exec(ctx, r.db, r.log, "link authors", q.Suffix("on conflict do nothing"))
	if isForeignKeyViolation(err) {
		return errs.New(errs.ErrNotFound, "author not found")
	}
	return err
}

func (r *repository) UnlinkAuthors(ctx context.Context, bookID int) error {
	_, err := exec(ctx, r.db, r.log, "unlink authors",
		qb.Delete(bookAuthorsTableName).Where(sq.Eq{"book_id": bookID}))
	return err
}

func (r *repository) ListBookAuthors(ctx context.Context, bookIDs []int) (map[int][]model.Author, error) {
	out := make(map[int][]model.Author, len(bookIDs))
	if len(bookIDs) == 0 {
		return out, nil
	}
	query, args, err := qb.Select("ba.book_id", "a.id", "a.name", "a.nationality", "a.biography", "a.created_at", "a.updated_at").
		From(bookAuthorsTableName + " ba").
		Join(fmt.Sprintf("%s a on a.id = ba.author_id", authorsTableName)).
		Where(sq.Eq{"ba.book_id": bookIDs}).
		OrderBy("ba.book_id", "a.name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "book authors")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookID int
			a      model.Author
		)
		if err = rows.Scan(&bookID, &a.ID, &a.Name, &a.Nationality, &a.Biography, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "scan book author")
		}
		out[bookID] = append(out[bookID], a)
	}
	return out, rows.Err()
}

func (r *repository) CountActiveBorrowsForBook(ctx context.Context, bookID int) (int, error) {
	return count(ctx, r.db, "active borrows for book",
		qb.Select("count(*)").
			From(borrowsTableName).
			Where(sq.Eq{"book_id": bookID, "returned_date": nil}))
}
