// Package lending holds the borrow record lifecycle as pure functions.
//
// Every command takes entity snapshots and returns the record to persist together with
// the book status write that has to be committed in the same transaction. Nothing here
// touches storage, so the rules are testable without a database.
package lending

import (
	"fmt"
	"math"
	"time"

	"github.com/Astemirdum/library-records/library/internal/errs"
	"github.com/Astemirdum/library-records/library/internal/model"
)

type Policy struct {
	MaxActiveBorrows int     `envconfig:"LENDING_MAX_ACTIVE_BORROWS" default:"5"`
	LoanPeriodDays   int     `envconfig:"LENDING_LOAN_PERIOD_DAYS" default:"14"`
	FinePerDay       float64 `envconfig:"LENDING_FINE_PER_DAY" default:"0.50"`
	MaxFine          float64 `envconfig:"LENDING_MAX_FINE" default:"25.00"`
	MinExtendDays    int     `envconfig:"LENDING_MIN_EXTEND_DAYS" default:"1"`
	MaxExtendDays    int     `envconfig:"LENDING_MAX_EXTEND_DAYS" default:"30"`
}

func DefaultPolicy() Policy {
	return Policy{
		MaxActiveBorrows: 5,
		LoanPeriodDays:   14,
		FinePerDay:       0.50,
		MaxFine:          25.00,
		MinExtendDays:    1,
		MaxExtendDays:    30,
	}
}

// Plan is the outcome of a command: the record state to store and an optional book status write.
type Plan struct {
	Record     model.BorrowRecord
	Transition *model.StatusTransition
}

type BorrowInput struct {
	// User and Book are nil when they do not exist.
	User     *model.User
	Book     *model.Book
	Standing model.Standing
	DueDate  *time.Time
	Notes    *string
	Now      time.Time
}

// Borrow checks eligibility in a fixed order and the first failing rule is reported.
func (p Policy) Borrow(in BorrowInput) (Plan, error) {
	switch {
	case in.User == nil:
		return Plan{}, errs.New(errs.ErrNotFound, "user not found")
	case !in.User.IsActive:
		return Plan{}, errs.New(errs.ErrInvalidState, "user is not active")
	case in.Book == nil:
		return Plan{}, errs.New(errs.ErrNotFound, "book not found")
	case in.Book.Status != model.BookAvailable:
		return Plan{}, errs.New(errs.ErrConflict, "book is not available, current status: %s", in.Book.Status)
	case in.Standing.Active >= p.MaxActiveBorrows:
		return Plan{}, errs.New(errs.ErrLimitExceeded, "user has reached maximum active borrows limit (%d)", p.MaxActiveBorrows)
	case in.Standing.Overdue > 0:
		return Plan{}, errs.New(errs.ErrBlocked, "user has overdue books, cannot borrow new books until returned")
	}

	borrowed := in.Now.UTC()
	due := model.Day(borrowed).AddDate(0, 0, p.LoanPeriodDays)
	if in.DueDate != nil {
		due = model.Day(*in.DueDate)
	}
	if !due.After(model.Day(borrowed)) {
		return Plan{}, errs.New(errs.ErrValidation, "due date must be after borrowed date")
	}

	return Plan{
		Record: model.BorrowRecord{
			UserID:       in.User.ID,
			BookID:       in.Book.ID,
			BorrowedDate: borrowed,
			DueDate:      due,
			Notes:        in.Notes,
		},
		Transition: &model.StatusTransition{
			BookID: in.Book.ID,
			From:   model.BookAvailable,
			To:     model.BookBorrowed,
		},
	}, nil
}

// Return closes an active record. The fine is charged only if the record is overdue at this moment.
func (p Policy) Return(rec model.BorrowRecord, now time.Time) (Plan, error) {
	if !rec.IsActive() {
		return Plan{}, errs.New(errs.ErrConflict, "book already returned")
	}
	returned := now.UTC()
	if returned.Before(rec.BorrowedDate) {
		return Plan{}, errs.New(errs.ErrValidation, "returned date must not be before borrowed date")
	}

	if days := rec.DaysOverdue(returned); days > 0 {
		fine := p.Fine(days)
		rec.FineAmount = &fine
	}
	rec.ReturnedDate = &returned

	return Plan{
		Record: rec,
		// forced so a book an administrator moved out of "borrowed" is still released
		Transition: &model.StatusTransition{BookID: rec.BookID, To: model.BookAvailable},
	}, nil
}

// Fine is min(days * FinePerDay, MaxFine) rounded to cents.
func (p Policy) Fine(daysOverdue int) float64 {
	if daysOverdue <= 0 {
		return 0
	}
	fine := math.Min(float64(daysOverdue)*p.FinePerDay, p.MaxFine)
	return math.Round(fine*100) / 100
}

func (p Policy) CheckExtendDays(days int) error {
	if days < p.MinExtendDays || days > p.MaxExtendDays {
		return errs.New(errs.ErrValidation, "extend_days must be between %d and %d", p.MinExtendDays, p.MaxExtendDays)
	}
	return nil
}

// Extend moves the due date of an active record and appends an audit note. Fines are left alone.
func (p Policy) Extend(rec model.BorrowRecord, days int, now time.Time) (Plan, error) {
	if err := p.CheckExtendDays(days); err != nil {
		return Plan{}, err
	}
	if !rec.IsActive() {
		return Plan{}, errs.New(errs.ErrConflict, "cannot extend a returned record")
	}

	rec.DueDate = model.Day(rec.DueDate).AddDate(0, 0, days)
	note := fmt.Sprintf("Extended by %d days on %s", days, model.Day(now).Format(time.DateOnly))
	if rec.Notes != nil && *rec.Notes != "" {
		note = *rec.Notes + "\n" + note
	}
	rec.Notes = &note

	return Plan{Record: rec}, nil
}

// Delete releases the book of a record that is still open.
func (p Policy) Delete(rec model.BorrowRecord) Plan {
	plan := Plan{Record: rec}
	if rec.IsActive() {
		plan.Transition = &model.StatusTransition{BookID: rec.BookID, To: model.BookAvailable}
	}
	return plan
}

// Update applies a correction patch. It bypasses Return and Extend: no fine is computed and
// the book status is never touched, only the structural date and amount rules are enforced.
func (p Policy) Update(rec model.BorrowRecord, req model.UpdateBorrowRequest) (Plan, error) {
	if req.DueDate != nil {
		rec.DueDate = model.Day(req.DueDate.Time)
	}
	if req.ReturnedDate != nil {
		returned := req.ReturnedDate.UTC()
		rec.ReturnedDate = &returned
	}
	if req.FineAmount != nil {
		fine := math.Round(*req.FineAmount*100) / 100
		rec.FineAmount = &fine
	}
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	if err := Validate(rec); err != nil {
		return Plan{}, err
	}
	return Plan{Record: rec}, nil
}

// Validate checks the structural invariants of a record.
func Validate(rec model.BorrowRecord) error {
	if !model.Day(rec.DueDate).After(model.Day(rec.BorrowedDate)) {
		return errs.New(errs.ErrValidation, "due date must be after borrowed date")
	}
	if rec.ReturnedDate != nil && rec.ReturnedDate.Before(rec.BorrowedDate) {
		return errs.New(errs.ErrValidation, "returned date must not be before borrowed date")
	}
	if rec.FineAmount != nil && *rec.FineAmount < 0 {
		return errs.New(errs.ErrValidation, "fine amount must be non-negative")
	}
	return nil
}
