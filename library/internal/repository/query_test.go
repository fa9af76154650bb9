package repository

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/library-records/library/internal/model"
)

const borrowSelect = "SELECT id, user_id, book_id, borrowed_date, due_date, returned_date, fine_amount, notes FROM borrow_records"

var today = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

func requireSQL(t *testing.T, b sq.Sqlizer, wantSQL string, wantArgs ...any) {
	t.Helper()
	query, args, err := b.ToSql()
	require.NoError(t, err)
	require.Equal(t, wantSQL, query)
	if len(wantArgs) == 0 {
		require.Empty(t, args)
		return
	}
	require.Equal(t, wantArgs, args)
}

func TestTransitionQuery(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		in       model.StatusTransition
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "compare and swap",
			in:       model.StatusTransition{BookID: 2, From: model.BookAvailable, To: model.BookBorrowed},
			wantSQL:  "UPDATE books SET status = $1, updated_at = now() WHERE id = $2 AND status = $3",
			wantArgs: []any{model.BookBorrowed, 2, model.BookAvailable},
		},
		{
			name:     "forced",
			in:       model.StatusTransition{BookID: 2, To: model.BookAvailable},
			wantSQL:  "UPDATE books SET status = $1, updated_at = now() WHERE id = $2",
			wantArgs: []any{model.BookAvailable, 2},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			requireSQL(t, transitionQuery(tt.in), tt.wantSQL, tt.wantArgs...)
		})
	}
}

func TestStandingQuery(t *testing.T) {
	t.Parallel()
	requireSQL(t, standingQuery(1, today),
		"SELECT count(*) as active, count(*) filter (where due_date < $1) as overdue "+
			"FROM borrow_records WHERE returned_date IS NULL AND user_id = $2",
		today, 1)
}

func TestOverdueQuery(t *testing.T) {
	t.Parallel()
	requireSQL(t, overdueQuery(today, model.Page{Limit: 50, Offset: 10}),
		borrowSelect+" WHERE (returned_date IS NULL AND due_date < $1) ORDER BY due_date, id LIMIT 50 OFFSET 10",
		today)
}

func TestListBorrowsQuery(t *testing.T) {
	t.Parallel()
	userID, yes, no := 1, true, false
	tests := []struct {
		name     string
		filter   model.BorrowFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "no filters",
			filter:  model.BorrowFilter{Today: today, Page: model.Page{Limit: 20}},
			wantSQL: borrowSelect + " ORDER BY borrowed_date desc, id desc LIMIT 20",
		},
		{
			name:     "overdue of user",
			filter:   model.BorrowFilter{UserID: &userID, IsOverdue: &yes, Today: today, Page: model.Page{Limit: 20}},
			wantSQL:  borrowSelect + " WHERE user_id = $1 AND (returned_date IS NULL AND due_date < $2) ORDER BY borrowed_date desc, id desc LIMIT 20",
			wantArgs: []any{1, today},
		},
		{
			name:     "not overdue",
			filter:   model.BorrowFilter{IsOverdue: &no, Today: today},
			wantSQL:  borrowSelect + " WHERE (returned_date IS NOT NULL OR due_date >= $1) ORDER BY borrowed_date desc, id desc",
			wantArgs: []any{today},
		},
		{
			name:    "returned",
			filter:  model.BorrowFilter{IsReturned: &yes, Today: today},
			wantSQL: borrowSelect + " WHERE returned_date IS NOT NULL ORDER BY borrowed_date desc, id desc",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			requireSQL(t, listBorrowsQuery(tt.filter), tt.wantSQL, tt.wantArgs...)
		})
	}
}
