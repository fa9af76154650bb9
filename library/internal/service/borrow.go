package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-records/library/internal/errs"
	"github.com/Astemirdum/library-records/library/internal/lending"
	"github.com/Astemirdum/library-records/library/internal/model"
	"github.com/Astemirdum/library-records/library/internal/repository"
	"github.com/Astemirdum/library-records/pkg/kafka"
)

const (
	MinDueSoonDays     = 1
	MaxDueSoonDays     = 7
	DefaultDueSoonDays = 3
)

func (s *Service) GetBorrow(ctx context.Context, id int) (model.BorrowRecordView, error) {
	rec, err := s.repo.GetBorrow(ctx, id)
	if err != nil {
		return model.BorrowRecordView{}, err
	}
	return model.NewBorrowRecordView(rec, s.today()), nil
}

func (s *Service) ListBorrows(ctx context.Context, filter model.BorrowFilter) ([]model.BorrowRecordView, error) {
	filter.Today = s.today()
	recs, err := s.repo.ListBorrows(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.views(recs), nil
}

func (s *Service) ListOverdue(ctx context.Context, page model.Page) ([]model.BorrowRecordView, error) {
	recs, err := s.repo.ListOverdue(ctx, s.today(), page)
	if err != nil {
		return nil, err
	}
	return s.views(recs), nil
}

func (s *Service) ListDueSoon(ctx context.Context, days int, page model.Page) ([]model.BorrowRecordView, error) {
	if days < MinDueSoonDays || days > MaxDueSoonDays {
		return nil, errs.New(errs.ErrValidation, "days must be between %d and %d", MinDueSoonDays, MaxDueSoonDays)
	}
	recs, err := s.repo.ListDueSoon(ctx, s.today(), days, page)
	if err != nil {
		return nil, err
	}
	return s.views(recs), nil
}

// Borrow creates an active record and marks the book borrowed in one transaction.
// The user row is locked first so concurrent borrows of one user see each other's records.
func (s *Service) Borrow(ctx context.Context, req model.CreateBorrowRequest) (model.BorrowRecordView, error) {
	now := s.now()
	var plan lending.Plan
	err := s.repo.InTx(ctx, func(repo repository.Repository) error {
		user, err := optional(repo.GetUserForUpdate(ctx, req.UserID))
		if err != nil {
			return err
		}
		book, err := optional(repo.GetBookForUpdate(ctx, req.BookID))
		if err != nil {
			return err
		}
		in := lending.BorrowInput{User: user, Book: book, Notes: req.Notes, Now: now}
		if req.DueDate != nil {
			in.DueDate = &req.DueDate.Time
		}
		if user != nil {
			if in.Standing, err = repo.Standing(ctx, user.ID, model.Day(now)); err != nil {
				return err
			}
		}

		if plan, err = s.policy.Borrow(in); err != nil {
			return err
		}
		if err = repo.ApplyTransition(ctx, *plan.Transition); err != nil {
			return err
		}
		plan.Record, err = repo.CreateBorrow(ctx, plan.Record)
		return err
	})
	if err != nil {
		return model.BorrowRecordView{}, err
	}

	s.publish(ctx, kafka.EventBorrowed, plan.Record, now)
	return model.NewBorrowRecordView(plan.Record, now), nil
}

func (s *Service) ReturnBorrow(ctx context.Context, id int) (model.BorrowRecordView, error) {
	now := s.now()
	rec, err := s.mutate(ctx, id, func(rec model.BorrowRecord) (lending.Plan, error) {
		return s.policy.Return(rec, now)
	})
	if err != nil {
		return model.BorrowRecordView{}, err
	}
	s.publish(ctx, kafka.EventReturned, rec, now)
	return model.NewBorrowRecordView(rec, now), nil
}

// ExtendBorrow rejects an out-of-range days value before the record is looked up.
func (s *Service) ExtendBorrow(ctx context.Context, id, days int) (model.BorrowRecordView, error) {
	if err := s.policy.CheckExtendDays(days); err != nil {
		return model.BorrowRecordView{}, err
	}
	now := s.now()
	rec, err := s.mutate(ctx, id, func(rec model.BorrowRecord) (lending.Plan, error) {
		return s.policy.Extend(rec, days, now)
	})
	if err != nil {
		return model.BorrowRecordView{}, err
	}
	s.publish(ctx, kafka.EventExtended, rec, now)
	return model.NewBorrowRecordView(rec, now), nil
}

// UpdateBorrow is the administrative correction path. It does not compute fines or touch the book.
func (s *Service) UpdateBorrow(ctx context.Context, id int, req model.UpdateBorrowRequest) (model.BorrowRecordView, error) {
	rec, err := s.mutate(ctx, id, func(rec model.BorrowRecord) (lending.Plan, error) {
		s.log.Warn("borrow record patched outside return/extend", zap.Int("record_id", id))
		return s.policy.Update(rec, req)
	})
	if err != nil {
		return model.BorrowRecordView{}, err
	}
	return model.NewBorrowRecordView(rec, s.now()), nil
}

func (s *Service) DeleteBorrow(ctx context.Context, id int) error {
	now := s.now()
	var rec model.BorrowRecord
	err := s.repo.InTx(ctx, func(repo repository.Repository) (err error) {
		if rec, err = repo.GetBorrowForUpdate(ctx, id); err != nil {
			return err
		}
		plan := s.policy.Delete(rec)
		if err = repo.DeleteBorrow(ctx, id); err != nil {
			return err
		}
		if plan.Transition != nil {
			return repo.ApplyTransition(ctx, *plan.Transition)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(ctx, kafka.EventDeleted, rec, now)
	return nil
}

// mutate locks a record, runs cmd on it and persists the plan.
func (s *Service) mutate(ctx context.Context, id int, cmd func(rec model.BorrowRecord) (lending.Plan, error)) (model.BorrowRecord, error) {
	var saved model.BorrowRecord
	err := s.repo.InTx(ctx, func(repo repository.Repository) error {
		rec, err := repo.GetBorrowForUpdate(ctx, id)
		if err != nil {
			return err
		}
		plan, err := cmd(rec)
		if err != nil {
			return err
		}
		if saved, err = repo.UpdateBorrow(ctx, plan.Record); err != nil {
			return err
		}
		if plan.Transition != nil {
			return repo.ApplyTransition(ctx, *plan.Transition)
		}
		return nil
	})
	return saved, err
}

func (s *Service) publish(ctx context.Context, typ kafka.EventType, rec model.BorrowRecord, now time.Time) {
	event := kafka.BorrowEvent{
		EventID:    uuid.NewString(),
		EventType:  typ,
		RecordID:   rec.ID,
		UserID:     rec.UserID,
		BookID:     rec.BookID,
		DueDate:    rec.DueDate.Format(time.DateOnly),
		FineAmount: rec.FineAmount,
		Timestamp:  now.UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish borrow event",
			zap.String("event_type", string(typ)),
			zap.Int("record_id", rec.ID),
			zap.Error(err))
	}
}

func (s *Service) views(recs []model.BorrowRecord) []model.BorrowRecordView {
	today := s.today()
	out := make([]model.BorrowRecordView, 0, len(recs))
	for _, r := range recs {
		out = append(out, model.NewBorrowRecordView(r, today))
	}
	return out
}

// optional turns ErrNotFound into a nil entity.
func optional[T any](v T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
