package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Astemirdum/library-records/library/internal/errs"
	"github.com/Astemirdum/library-records/library/internal/model"
)

var borrowColumns = []string{
	"id", "user_id", "book_id", "borrowed_date", "due_date", "returned_date", "fine_amount", "notes",
}

const borrowReturning = "returning id, user_id, book_id, borrowed_date, due_date, returned_date, fine_amount, notes"

func overdue(today time.Time) sq.Sqlizer {
	return sq.And{
		sq.Eq{"returned_date": nil},
		sq.Lt{"due_date": today},
	}
}

func (r *repository) ListBorrows(ctx context.Context, filter model.BorrowFilter) ([]model.BorrowRecord, error) {
	return getMany[model.BorrowRecord](ctx, r.db, r.log, "borrow records", listBorrowsQuery(filter))
}

func listBorrowsQuery(filter model.BorrowFilter) sq.SelectBuilder {
	q := qb.Select(borrowColumns...).
		From(borrowsTableName).
		OrderBy("borrowed_date desc", "id desc")

	if filter.UserID != nil {
		q = q.Where(sq.Eq{"user_id": *filter.UserID})
	}
	if filter.BookID != nil {
		q = q.Where(sq.Eq{"book_id": *filter.BookID})
	}
	if filter.IsReturned != nil {
		if *filter.IsReturned {
			q = q.Where(sq.NotEq{"returned_date": nil})
		} else {
			q = q.Where(sq.Eq{"returned_date": nil})
		}
	}
	if filter.IsOverdue != nil {
		if *filter.IsOverdue {
			q = q.Where(overdue(filter.Today))
		} else {
			q = q.Where(sq.Or{
				sq.NotEq{"returned_date": nil},
				sq.GtOrEq{"due_date": filter.Today},
			})
		}
	}

	return paginate(q, filter.Page)
}

func (r *repository) ListOverdue(ctx context.Context, today time.Time, page model.Page) ([]model.BorrowRecord, error) {
	return getMany[model.BorrowRecord](ctx, r.db, r.log, "overdue records", overdueQuery(today, page))
}

func overdueQuery(today time.Time, page model.Page) sq.SelectBuilder {
	q := qb.Select(borrowColumns...).
		From(borrowsTableName).
		Where(overdue(today)).
		OrderBy("due_date", "id")
	return paginate(q, page)
}

// ListDueSoon returns active records due between today and today+days inclusive.
func (r *repository) ListDueSoon(ctx context.Context, today time.Time, days int, page model.Page) ([]model.BorrowRecord, error) {
	q := qb.Select(borrowColumns...).
		From(borrowsTableName).
		Where(sq.Eq{"returned_date": nil}).
		Where(sq.GtOrEq{"due_date": today}).
		Where(sq.LtOrEq{"due_date": today.AddDate(0, 0, days)}).
		OrderBy("due_date", "id")
	return getMany[model.BorrowRecord](ctx, r.db, r.log, "due soon records", paginate(q, page))
}

func (r *repository) GetBorrow(ctx context.Context, id int) (model.BorrowRecord, error) {
	q := qb.Select(borrowColumns...).
		From(borrowsTableName).
		Where(sq.Eq{"id": id})
	return getOne[model.BorrowRecord](ctx, r.db, r.log, "borrow record", q)
}

func (r *repository) GetBorrowForUpdate(ctx context.Context, id int) (model.BorrowRecord, error) {
	q := qb.Select(borrowColumns...).
		From(borrowsTableName).
		Where(sq.Eq{"id": id}).
		Suffix("for update")
	return getOne[model.BorrowRecord](ctx, r.db, r.log, "borrow record", q)
}

func (r *repository) CreateBorrow(ctx context.Context, rec model.BorrowRecord) (model.BorrowRecord, error) {
	q := qb.Insert(borrowsTableName).
		Columns("user_id", "book_id", "borrowed_date", "due_date", "notes").
		Values(rec.UserID, rec.BookID, rec.BorrowedDate, rec.DueDate, rec.Notes).
		Suffix(borrowReturning)
	return getOne[model.BorrowRecord](ctx, r.db, r.log, "borrow record", q)
}

func (r *repository) UpdateBorrow(ctx context.Context, rec model.BorrowRecord) (model.BorrowRecord, error) {
	q := qb.Update(borrowsTableName).
		Set("due_date", rec.DueDate).
		Set("returned_date", rec.ReturnedDate).
		Set("fine_amount", rec.FineAmount).
		Set("notes", rec.Notes).
		Where(sq.Eq{"id": rec.ID}).
		Suffix(borrowReturning)
	return getOne[model.BorrowRecord](ctx, r.db, r.log, "borrow record", q)
}

func (r *repository) DeleteBorrow(ctx context.Context, id int) error {
	n, err := exec(ctx, r.db, r.log, "delete borrow record",
		qb.Delete(borrowsTableName).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.New(errs.ErrNotFound, "borrow record not found")
	}
	return nil
}

func (r *repository) Standing(ctx context.Context, userID int, today time.Time) (model.Standing, error) {
	return getOne[model.Standing](ctx, r.db, r.log, "standing", standingQuery(userID, today))
}

// standingQuery counts the user's active records and how many of them are past due.
func standingQuery(userID int, today time.Time) sq.SelectBuilder {
	return qb.Select("count(*) as active").
		Column(sq.Expr("count(*) filter (where due_date < ?) as overdue", today)).
		From(borrowsTableName).
		Where(sq.Eq{"user_id": userID, "returned_date": nil})
}
