package repository

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-records/library/internal/model"
)

// Reporting queries are built with goqu: grouped aggregates with computed ordering read
// better there than in squirrel.
var gq = goqu.Dialect("postgres")

func (r *repository) toSQL(what string, ds *goqu.SelectDataset) (string, []any, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return "", nil, errors.Wrapf(err, "build %s", what)
	}
	r.log.Debug(what, zap.String("q", query), zap.Any("args", args))
	return query, args, nil
}

func collect[T any](ctx context.Context, r *repository, what string, ds *goqu.SelectDataset) ([]T, error) {
	query, args, err := r.toSQL(what, ds)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
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

func scalar[T any](ctx context.Context, r *repository, what string, ds *goqu.SelectDataset) (T, error) {
	var v T
	query, args, err := r.toSQL(what, ds)
	if err != nil {
		return v, err
	}
	if err = r.db.QueryRow(ctx, query, args...).Scan(&v); err != nil {
		return v, errors.Wrap(err, what)
	}
	return v, nil
}

func (r *repository) BookCounts(ctx context.Context) (model.BookCounts, error) {
	ds := gq.From(booksTableName).Select(
		goqu.COUNT(goqu.Star()).As("total"),
		goqu.L("count(*) filter (where status = ?)", string(model.BookAvailable)).As("available"),
		goqu.L("count(*) filter (where status = ?)", string(model.BookBorrowed)).As("borrowed"),
	)
	items, err := collect[model.BookCounts](ctx, r, "book counts", ds)
	if err != nil || len(items) == 0 {
		return model.BookCounts{}, err
	}
	return items[0], nil
}

func (r *repository) CountAuthors(ctx context.Context) (int, error) {
	return scalar[int](ctx, r, "count authors", gq.From(authorsTableName).Select(goqu.COUNT(goqu.Star())))
}

func (r *repository) CountUsers(ctx context.Context) (int, error) {
	return scalar[int](ctx, r, "count users", gq.From(usersTableName).Select(goqu.COUNT(goqu.Star())))
}

func (r *repository) BorrowCounts(ctx context.Context, today time.Time) (model.BorrowCounts, error) {
	ds := gq.From(borrowsTableName).Select(
		goqu.COUNT(goqu.Star()).As("total"),
		goqu.L("count(*) filter (where returned_date is null)").As("active"),
		goqu.L("count(*) filter (where returned_date is null and due_date < ?)", today).As("overdue"),
	)
	items, err := collect[model.BorrowCounts](ctx, r, "borrow counts", ds)
	if err != nil || len(items) == 0 {
		return model.BorrowCounts{}, err
	}
	return items[0], nil
}

func (r *repository) TotalFines(ctx context.Context) (float64, error) {
	ds := gq.From(borrowsTableName).
		Select(goqu.L("coalesce(sum(fine_amount), 0)::float8")).
		Where(goqu.C("fine_amount").IsNotNull())
	return scalar[float64](ctx, r, "total fines", ds)
}

// AverageBorrowDays is the mean of returned_date - borrowed_date over returned records, in fractional days.
func (r *repository) AverageBorrowDays(ctx context.Context) (float64, error) {
	ds := gq.From(borrowsTableName).
		Select(goqu.L("coalesce(avg(extract(epoch from returned_date - borrowed_date) / 86400), 0)::float8")).
		Where(goqu.C("returned_date").IsNotNull())
	return scalar[float64](ctx, r, "average borrow days", ds)
}

func (r *repository) MostBorrowedBooks(ctx context.Context, limit uint) ([]model.BookBorrowCount, error) {
	ds := gq.From(goqu.T(borrowsTableName).As("br")).
		Join(goqu.T(booksTableName).As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("br.book_id")))).
		Select(
			goqu.I("b.id").As("book_id"),
			goqu.I("b.title").As("title"),
			goqu.COUNT(goqu.I("br.id")).As("borrow_count"),
		).
		GroupBy(goqu.I("b.id"), goqu.I("b.title")).
		Order(goqu.I("borrow_count").Desc(), goqu.I("b.id").Asc()).
		Limit(limit)
	return collect[model.BookBorrowCount](ctx, r, "most borrowed books", ds)
}

func (r *repository) AuthorsByNationality(ctx context.Context) ([]model.NationalityCount, error) {
	ds := gq.From(authorsTableName).
		Select(
			goqu.C("nationality"),
			goqu.COUNT(goqu.Star()).As("count"),
		).
		Where(goqu.C("nationality").IsNotNull()).
		GroupBy(goqu.C("nationality")).
		Order(goqu.I("count").Desc(), goqu.C("nationality").Asc())
	return collect[model.NationalityCount](ctx, r, "authors by nationality", ds)
}

func (r *repository) MostProlificAuthors(ctx context.Context, limit uint) ([]model.AuthorBookCount, error) {
	ds := gq.From(goqu.T(authorsTableName).As("a")).
		Join(goqu.T(bookAuthorsTableName).As("ba"), goqu.On(goqu.I("ba.author_id").Eq(goqu.I("a.id")))).
		Select(
			goqu.I("a.id").As("author_id"),
			goqu.I("a.name").As("author"),
			goqu.COUNT(goqu.I("ba.book_id")).As("book_count"),
		).
		GroupBy(goqu.I("a.id"), goqu.I("a.name")).
		Order(goqu.I("book_count").Desc(), goqu.I("a.id").Asc()).
		Limit(limit)
	return collect[model.AuthorBookCount](ctx, r, "most prolific authors", ds)
}
