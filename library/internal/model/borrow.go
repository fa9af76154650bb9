package model

import "time"

// BorrowRecord is ACTIVE while ReturnedDate is nil and RETURNED afterwards.
// DueDate holds a calendar day at UTC midnight.
type BorrowRecord struct {
	ID           int        `json:"id" db:"id"`
	UserID       int        `json:"user_id" db:"user_id"`
	BookID       int        `json:"book_id" db:"book_id"`
	BorrowedDate time.Time  `json:"borrowed_date" db:"borrowed_date"`
	DueDate      time.Time  `json:"due_date" db:"due_date"`
	ReturnedDate *time.Time `json:"returned_date" db:"returned_date"`
	FineAmount   *float64   `json:"fine_amount" db:"fine_amount"`
	Notes        *string    `json:"notes" db:"notes"`
}

func (r BorrowRecord) IsActive() bool {
	return r.ReturnedDate == nil
}

// IsOverdue is evaluated against today, so a returned record is never overdue.
func (r BorrowRecord) IsOverdue(today time.Time) bool {
	return r.IsActive() && Day(r.DueDate).Before(Day(today))
}

func (r BorrowRecord) DaysOverdue(today time.Time) int {
	if !r.IsOverdue(today) {
		return 0
	}
	return DaysBetween(r.DueDate, today)
}

type BorrowRecordView struct {
	BorrowRecord
	IsOverdue   bool `json:"is_overdue"`
	DaysOverdue int  `json:"days_overdue"`
}

func NewBorrowRecordView(r BorrowRecord, today time.Time) BorrowRecordView {
	return BorrowRecordView{
		BorrowRecord: r,
		IsOverdue:    r.IsOverdue(today),
		DaysOverdue:  r.DaysOverdue(today),
	}
}

// Standing is a user's current borrowing load.
type Standing struct {
	Active  int `db:"active"`
	Overdue int `db:"overdue"`
}

type CreateBorrowRequest struct {
	UserID  int     `json:"user_id" validate:"required,gt=0"`
	BookID  int     `json:"book_id" validate:"required,gt=0"`
	DueDate *Date   `json:"due_date"`
	Notes   *string `json:"notes" validate:"omitempty,max=500"`
}

// UpdateBorrowRequest patches fields directly, outside of the return/extend workflow.
type UpdateBorrowRequest struct {
	DueDate      *Date      `json:"due_date"`
	ReturnedDate *time.Time `json:"returned_date"`
	FineAmount   *float64   `json:"fine_amount" validate:"omitempty,gte=0"`
	Notes        *string    `json:"notes" validate:"omitempty,max=500"`
}

type BorrowFilter struct {
	UserID     *int
	BookID     *int
	IsReturned *bool
	IsOverdue  *bool
	Today      time.Time
	Page
}
