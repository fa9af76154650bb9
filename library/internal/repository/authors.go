package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/Astemirdum/library-records/library/internal/errs"
	"github.com/Astemirdum/library-records/library/internal/model"
)

const authorReturning = "returning id, name, nationality, biography, created_at, updated_at"

func (r *repository) ListAuthors(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error) {
	q := qb.Select("id", "name", "nationality", "biography", "created_at", "updated_at").
		From(authorsTableName).
		OrderBy("name", "id")

	if filter.Name != "" {
		q = q.Where(sq.ILike{"name": "%" + filter.Name + "%"})
	}
	if filter.Nationality != "" {
		q = q.Where(sq.ILike{"nationality": "%" + filter.Nationality + "%"})
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where(sq.Or{
			sq.ILike{"name": like},
			sq.ILike{"nationality": like},
			sq.ILike{"biography": like},
		})
	}

	return getMany[model.Author](ctx, r.db, r.log, "authors", paginate(q, filter.Page))
}

func (r *repository) GetAuthor(ctx context.Context, id int) (model.Author, error) {
	q := qb.Select("id", "name", "nationality", "biography", "created_at", "updated_at").
		From(authorsTableName).
		Where(sq.Eq{"id": id})
	return getOne[model.Author](ctx, r.db, r.log, "author", q)
}

func (r *repository) CreateAuthor(ctx context.Context, author model.Author) (model.Author, error) {
	q := qb.Insert(authorsTableName).
		Columns("name", "nationality", "biography").
		Values(author.Name, author.Nationality, author.Biography).
		Suffix(authorReturning)
	return getOne[model.Author](ctx, r.db, r.log, "author", q)
}

func (r *repository) UpdateAuthor(ctx context.Context, author model.Author) (model.Author, error) {
	q := qb.Update(authorsTableName).
		Set("name", author.Name).
		Set("nationality", author.Nationality).
		Set("biography", author.Biography).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": author.ID}).
		Suffix(authorReturning)
	return getOne[model.Author](ctx, r.db, r.log, "author", q)
}

func (r *repository) DeleteAuthor(ctx context.Context, id int) error {
	n, err := exec(ctx, r.db, r.log, "delete author",
		qb.Delete(authorsTableName).Where(sq.Eq{"id": id}))
	if err != nil {
		if isForeignKeyViolation(err) {
			return errs.New(errs.ErrConflict, "cannot delete author with associated books")
		}
		return err
	}
	if n == 0 {
		return errs.New(errs.ErrNotFound, "author not found")
	}
	return nil
}

func (r *repository) ExistingAuthorIDs(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return []int{}, nil
	}
	query, args, err := qb.Select("id").
		From(authorsTableName).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "existing authors")
	}
	defer rows.Close()

	found := make([]int, 0, len(ids))
	for rows.Next() {
		var id int
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		found = append(found, id)
	}
	return found, rows.Err()
}

func (r *repository) CountAuthorBooks(ctx context.Context, authorID int) (int, error) {
	return count(ctx, r.db, "author books",
		qb.Select("count(*)").
			From(bookAuthorsTableName).
			Where(sq.Eq{"author_id": authorID}))
}

func (r *repository) ListAuthorBooks(ctx context.Context, authorID int) ([]model.Book, error) {
	q := qb.Select(bookColumns...).
		From(booksTableName + " b").
		Join(bookAuthorsTableName + " ba on ba.book_id = b.id").
		Where(sq.Eq{"ba.author_id": authorID}).
		OrderBy("b.title", "b.id")
	return getMany[model.Book](ctx, r.db, r.log, "author books", q)
}
