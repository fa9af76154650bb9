package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-records/library/internal/errs"
	"github.com/Astemirdum/library-records/library/internal/model"
	"github.com/Astemirdum/library-records/library/internal/repository"
	repo_mocks "github.com/Astemirdum/library-records/library/internal/repository/mocks"
	"github.com/Astemirdum/library-records/library/internal/service"
	"github.com/Astemirdum/library-records/pkg/hasher"
	"github.com/Astemirdum/library-records/pkg/kafka"
)

var now = time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return model.Day(now).AddDate(0, 0, offset)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.BorrowEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e kafka.BorrowEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func newService(t *testing.T) (*service.Service, *repo_mocks.MockRepository, *recordingPublisher) {
	t.Helper()
	c := gomock.NewController(t)
	repo := repo_mocks.NewMockRepository(c)
	repo.EXPECT().InTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(repository.Repository) error) error {
			return fn(repo)
		}).AnyTimes()
	pub := &recordingPublisher{}
	svc := service.NewService(repo, zap.NewNop(),
		service.WithClock(func() time.Time { return now }),
		service.WithPublisher(pub),
		service.WithHasher(hasher.NewBcrypt(4)),
	)
	return svc, repo, pub
}

func activeUser() model.User {
	return model.User{ID: 1, Name: "Alice Reader", Email: "alice@example.com", Role: model.RoleMember, IsActive: true}
}

func availableBook() model.Book {
	return model.Book{ID: 2, Title: "Dune", Status: model.BookAvailable}
}

func TestService_Borrow(t *testing.T) {
	t.Parallel()
	svc, repo, pub := newService(t)
	ctx := context.Background()

	repo.EXPECT().GetUserForUpdate(ctx, 1).Return(activeUser(), nil)
	repo.EXPECT().GetBookForUpdate(ctx, 2).Return(availableBook(), nil)
	repo.EXPECT().Standing(ctx, 1, day(0)).Return(model.Standing{Active: 4}, nil)
	repo.EXPECT().ApplyTransition(ctx, model.StatusTransition{BookID: 2, From: model.BookAvailable, To: model.BookBorrowed}).Return(nil)
	repo.EXPECT().CreateBorrow(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, rec model.BorrowRecord) (model.BorrowRecord, error) {
			require.Equal(t, day(14), rec.DueDate)
			require.Equal(t, now, rec.BorrowedDate)
			rec.ID = 10
			return rec, nil
		})

	view, err := svc.Borrow(ctx, model.CreateBorrowRequest{UserID: 1, BookID: 2})
	require.NoError(t, err)
	require.Equal(t, 10, view.ID)
	require.False(t, view.IsOverdue)
	require.Equal(t, 0, view.DaysOverdue)

	require.Len(t, pub.events, 1)
	require.Equal(t, kafka.EventBorrowed, pub.events[0].EventType)
	require.Equal(t, 10, pub.events[0].RecordID)
	require.Equal(t, "2024-03-25", pub.events[0].DueDate)
	require.NotEmpty(t, pub.events[0].EventID)
}

func TestService_Borrow_Rejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	type mockBehavior func(r *repo_mocks.MockRepository)

	tests := []struct {
		name         string
		mockBehavior mockBehavior
		wantErr      error
	}{
		{
			name: "user not found",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserForUpdate(ctx, 1).Return(model.User{}, errs.New(errs.ErrNotFound, "user not found"))
				r.EXPECT().GetBookForUpdate(ctx, 2).Return(availableBook(), nil)
			},
			wantErr: errs.ErrNotFound,
		},
		{
			name: "book not found",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserForUpdate(ctx, 1).Return(activeUser(), nil)
				r.EXPECT().GetBookForUpdate(ctx, 2).Return(model.Book{}, errs.New(errs.ErrNotFound, "book not found"))
				r.EXPECT().Standing(ctx, 1, day(0)).Return(model.Standing{}, nil)
			},
			wantErr: errs.ErrNotFound,
		},
		{
			name: "limit reached",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserForUpdate(ctx, 1).Return(activeUser(), nil)
				r.EXPECT().GetBookForUpdate(ctx, 2).Return(availableBook(), nil)
				r.EXPECT().Standing(ctx, 1, day(0)).Return(model.Standing{Active: 5}, nil)
			},
			wantErr: errs.ErrLimitExceeded,
		},
		{
			name: "overdue record",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserForUpdate(ctx, 1).Return(activeUser(), nil)
				r.EXPECT().GetBookForUpdate(ctx, 2).Return(availableBook(), nil)
				r.EXPECT().Standing(ctx, 1, day(0)).Return(model.Standing{Active: 1, Overdue: 1}, nil)
			},
			wantErr: errs.ErrBlocked,
		},
		{
			name: "lost concurrent race",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserForUpdate(ctx, 1).Return(activeUser(), nil)
				r.EXPECT().GetBookForUpdate(ctx, 2).Return(availableBook(), nil)
				r.EXPECT().Standing(ctx, 1, day(0)).Return(model.Standing{}, nil)
				r.EXPECT().ApplyTransition(ctx, gomock.Any()).Return(errs.New(errs.ErrConflict, "book is not available"))
			},
			wantErr: errs.ErrConflict,
		},
		{
			name: "storage failure",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserForUpdate(ctx, 1).Return(model.User{}, errors.New("connection reset"))
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, pub := newService(t)
			tt.mockBehavior(repo)

			_, err := svc.Borrow(ctx, model.CreateBorrowRequest{UserID: 1, BookID: 2})
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			require.Empty(t, pub.events)
		})
	}
}

func TestService_ReturnBorrow_Overdue(t *testing.T) {
	t.Parallel()
	svc, repo, pub := newService(t)
	ctx := context.Background()

	rec := model.BorrowRecord{ID: 7, UserID: 1, BookID: 2, BorrowedDate: day(-24), DueDate: day(-10)}
	repo.EXPECT().GetBorrowForUpdate(ctx, 7).Return(rec, nil)
	repo.EXPECT().UpdateBorrow(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, r model.BorrowRecord) (model.BorrowRecord, error) {
			return r, nil
		})
	repo.EXPECT().ApplyTransition(ctx, model.StatusTransition{BookID: 2, To: model.BookAvailable}).Return(nil)

	view, err := svc.ReturnBorrow(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, view.FineAmount)
	require.Equal(t, 5.0, *view.FineAmount)
	require.Equal(t, now, *view.ReturnedDate)
	require.False(t, view.IsOverdue)

	require.Len(t, pub.events, 1)
	require.Equal(t, kafka.EventReturned, pub.events[0].EventType)
	require.Equal(t, 5.0, *pub.events[0].FineAmount)
}

func TestService_ReturnBorrow_AlreadyReturned(t *testing.T) {
	t.Parallel()
	svc, repo, pub := newService(t)
	ctx := context.Background()

	returned := day(-1)
	repo.EXPECT().GetBorrowForUpdate(ctx, 7).
		Return(model.BorrowRecord{ID: 7, BookID: 2, BorrowedDate: day(-5), DueDate: day(5), ReturnedDate: &returned}, nil)

	_, err := svc.ReturnBorrow(ctx, 7)
	require.ErrorIs(t, err, errs.ErrConflict)
	require.EqualError(t, err, "book already returned")
	require.Empty(t, pub.events)
}

func TestService_ExtendBorrow(t *testing.T) {
	t.Parallel()
	svc, repo, pub := newService(t)
	ctx := context.Background()

	repo.EXPECT().GetBorrowForUpdate(ctx, 7).
		Return(model.BorrowRecord{ID: 7, BookID: 2, BorrowedDate: day(-5), DueDate: day(2)}, nil)
	repo.EXPECT().UpdateBorrow(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, r model.BorrowRecord) (model.BorrowRecord, error) {
			return r, nil
		})

	view, err := svc.ExtendBorrow(ctx, 7, 5)
	require.NoError(t, err)
	require.Equal(t, day(7), view.DueDate)
	require.Nil(t, view.FineAmount)
	require.Equal(t, "Extended by 5 days on 2024-03-11", *view.Notes)
	require.Equal(t, kafka.EventExtended, pub.events[0].EventType)
}

func TestService_ExtendBorrow_DaysOutOfRange(t *testing.T) {
	t.Parallel()
	svc, _, pub := newService(t)
	ctx := context.Background()

	// no repository expectations: the days check must run before the record lookup
	for _, days := range []int{0, -1, 31} {
		_, err := svc.ExtendBorrow(ctx, 99, days)
		require.ErrorIs(t, err, errs.ErrValidation, days)
		require.NotErrorIs(t, err, errs.ErrNotFound, days)
	}
	require.Empty(t, pub.events)
}

func TestService_DeleteBorrow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("active record releases the book", func(t *testing.T) {
		t.Parallel()
		svc, repo, pub := newService(t)
		repo.EXPECT().GetBorrowForUpdate(ctx, 7).
			Return(model.BorrowRecord{ID: 7, BookID: 2, BorrowedDate: day(-5), DueDate: day(2)}, nil)
		repo.EXPECT().DeleteBorrow(ctx, 7).Return(nil)
		repo.EXPECT().ApplyTransition(ctx, model.StatusTransition{BookID: 2, To: model.BookAvailable}).Return(nil)

		require.NoError(t, svc.DeleteBorrow(ctx, 7))
		require.Equal(t, kafka.EventDeleted, pub.events[0].EventType)
	})

	t.Run("returned record leaves the book alone", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		returned := day(-1)
		repo.EXPECT().GetBorrowForUpdate(ctx, 7).
			Return(model.BorrowRecord{ID: 7, BookID: 2, BorrowedDate: day(-5), DueDate: day(2), ReturnedDate: &returned}, nil)
		repo.EXPECT().DeleteBorrow(ctx, 7).Return(nil)

		require.NoError(t, svc.DeleteBorrow(ctx, 7))
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		svc, repo, pub := newService(t)
		repo.EXPECT().GetBorrowForUpdate(ctx, 7).
			Return(model.BorrowRecord{}, errs.New(errs.ErrNotFound, "borrow record not found"))

		require.ErrorIs(t, svc.DeleteBorrow(ctx, 7), errs.ErrNotFound)
		require.Empty(t, pub.events)
	})
}

func TestService_PublishFailureIsNotFatal(t *testing.T) {
	t.Parallel()
	svc, repo, pub := newService(t)
	pub.err = errors.New("kafka: client has run out of available brokers")
	ctx := context.Background()

	repo.EXPECT().GetBorrowForUpdate(ctx, 7).
		Return(model.BorrowRecord{ID: 7, BookID: 2, BorrowedDate: day(-5), DueDate: day(2)}, nil)
	repo.EXPECT().UpdateBorrow(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, r model.BorrowRecord) (model.BorrowRecord, error) {
			return r, nil
		})
	repo.EXPECT().ApplyTransition(ctx, gomock.Any()).Return(nil)

	_, err := svc.ReturnBorrow(ctx, 7)
	require.NoError(t, err)
	require.Len(t, pub.events, 1)
}

func TestService_ListDueSoon_Bounds(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	_, err := svc.ListDueSoon(ctx, 0, model.Page{Limit: 20})
	require.ErrorIs(t, err, errs.ErrValidation)
	_, err = svc.ListDueSoon(ctx, 8, model.Page{Limit: 20})
	require.ErrorIs(t, err, errs.ErrValidation)

	repo.EXPECT().ListDueSoon(ctx, day(0), 3, model.Page{Limit: 20}).
		Return([]model.BorrowRecord{{ID: 1, BorrowedDate: day(-10), DueDate: day(2)}}, nil)
	views, err := svc.ListDueSoon(ctx, 3, model.Page{Limit: 20})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.False(t, views[0].IsOverdue)
}

func TestService_ListBorrows_Overdue(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()
	overdue := true

	repo.EXPECT().ListBorrows(ctx, model.BorrowFilter{IsOverdue: &overdue, Today: day(0), Page: model.Page{Limit: 20}}).
		Return([]model.BorrowRecord{{ID: 3, BorrowedDate: day(-30), DueDate: day(-4)}}, nil)

	views, err := svc.ListBorrows(ctx, model.BorrowFilter{IsOverdue: &overdue, Page: model.Page{Limit: 20}})
	require.NoError(t, err)
	require.True(t, views[0].IsOverdue)
	require.Equal(t, 4, views[0].DaysOverdue)
}

func TestService_DeleteUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("blocked by active borrows", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().GetUserForUpdate(ctx, 1).Return(activeUser(), nil)
		repo.EXPECT().Standing(ctx, 1, day(0)).Return(model.Standing{Active: 1}, nil)

		err := svc.DeleteUser(ctx, 1)
		require.ErrorIs(t, err, errs.ErrConflict)
		require.EqualError(t, err, "cannot delete user with active borrow records")
	})

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().GetUserForUpdate(ctx, 1).Return(activeUser(), nil)
		repo.EXPECT().Standing(ctx, 1, day(0)).Return(model.Standing{}, nil)
		repo.EXPECT().DeleteUser(ctx, 1).Return(nil)

		require.NoError(t, svc.DeleteUser(ctx, 1))
	})
}

func TestService_DeleteAuthor_Linked(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	repo.EXPECT().GetAuthor(ctx, 3).Return(model.Author{ID: 3, Name: "Frank Herbert"}, nil)
	repo.EXPECT().CountAuthorBooks(ctx, 3).Return(2, nil)

	err := svc.DeleteAuthor(ctx, 3)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestService_DeleteBook_ActiveBorrow(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	repo.EXPECT().GetBookForUpdate(ctx, 2).Return(model.Book{ID: 2, Status: model.BookBorrowed}, nil)
	repo.EXPECT().CountActiveBorrowsForBook(ctx, 2).Return(1, nil)

	require.ErrorIs(t, svc.DeleteBook(ctx, 2), errs.ErrConflict)
}

func TestService_CreateBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unknown author", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().ExistingAuthorIDs(ctx, []int{1, 4}).Return([]int{1}, nil)

		_, err := svc.CreateBook(ctx, model.CreateBookRequest{Title: "Dune", AuthorIDs: []int{4, 1, 4}})
		require.ErrorIs(t, err, errs.ErrNotFound)
		require.EqualError(t, err, "authors not found: [4]")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		author := model.Author{ID: 1, Name: "Frank Herbert"}
		repo.EXPECT().ExistingAuthorIDs(ctx, []int{1}).Return([]int{1}, nil)
		repo.EXPECT().CreateBook(ctx, model.Book{Title: "Dune", Language: model.DefaultLanguage, Status: model.BookAvailable}).
			Return(model.Book{ID: 2, Title: "Dune", Language: model.DefaultLanguage, Status: model.BookAvailable}, nil)
		repo.EXPECT().LinkAuthors(ctx, 2, []int{1}).Return(nil)
		repo.EXPECT().GetBook(ctx, 2).Return(model.Book{ID: 2, Title: "Dune", Language: model.DefaultLanguage, Status: model.BookAvailable}, nil)
		repo.EXPECT().ListBookAuthors(ctx, []int{2}).Return(map[int][]model.Author{2: {author}}, nil)

		book, err := svc.CreateBook(ctx, model.CreateBookRequest{Title: "Dune", AuthorIDs: []int{1}})
		require.NoError(t, err)
		require.Equal(t, []model.Author{author}, book.Authors)
		require.Equal(t, model.BookAvailable, book.Status)
	})
}

func TestService_Auth(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := hasher.NewBcrypt(4)
	hash, err := h.Hash("secret123")
	require.NoError(t, err)

	user := activeUser()
	user.HashedPassword = hash
	inactive := user
	inactive.IsActive = false

	tests := []struct {
		name    string
		stored  model.User
		lookup  error
		pass    string
		wantErr error
	}{
		{name: "ok", stored: user, pass: "secret123"},
		{name: "wrong password", stored: user, pass: "secret124", wantErr: errs.ErrUnauthorized},
		{name: "inactive", stored: inactive, pass: "secret123", wantErr: errs.ErrUnauthorized},
		{name: "unknown email", lookup: errs.New(errs.ErrNotFound, "user not found"), pass: "secret123", wantErr: errs.ErrUnauthorized},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, _ := newService(t)
			repo.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(tt.stored, tt.lookup)

			got, err := svc.Login(ctx, model.LoginRequest{Email: " alice@example.com ", Password: tt.pass})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.EqualError(t, err, "incorrect email or password")
				return
			}
			require.NoError(t, err)
			require.Equal(t, user.ID, got.ID)
		})
	}
}

func TestService_CreateUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("email taken", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().EmailExists(ctx, "alice@example.com").Return(true, nil)

		_, err := svc.Register(ctx, model.CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123"})
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("hashes password and defaults role", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().EmailExists(ctx, "alice@example.com").Return(false, nil)
		repo.EXPECT().CreateUser(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u model.User) (model.User, error) {
				require.Equal(t, model.RoleMember, u.Role)
				require.True(t, u.IsActive)
				require.NotEqual(t, "secret123", u.HashedPassword)
				require.True(t, hasher.NewBcrypt(4).Verify("secret123", u.HashedPassword))
				u.ID = 1
				return u, nil
			})

		u, err := svc.CreateUser(ctx, model.CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123"})
		require.NoError(t, err)
		require.Equal(t, 1, u.ID)
	})
}

func TestService_CheckEmail(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	repo.EXPECT().EmailExists(ctx, "bob@example.com").Return(false, nil)
	resp, err := svc.CheckEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.Equal(t, model.CheckEmailResponse{Email: "bob@example.com", Available: true, Message: "Email available"}, resp)
}

func TestService_BorrowStats(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	top := []model.BookBorrowCount{{BookID: 2, Title: "Dune", BorrowCount: 3}}
	repo.EXPECT().BorrowCounts(gomock.Any(), day(0)).Return(model.BorrowCounts{Total: 10, Active: 4, Overdue: 1}, nil)
	repo.EXPECT().TotalFines(gomock.Any()).Return(12.5, nil)
	repo.EXPECT().AverageBorrowDays(gomock.Any()).Return(9.4567, nil)
	repo.EXPECT().MostBorrowedBooks(gomock.Any(), uint(10)).Return(top, nil)

	stats, err := svc.BorrowStats(ctx)
	require.NoError(t, err)
	require.Equal(t, model.BorrowStats{
		TotalBorrows:              10,
		ActiveBorrows:             4,
		ReturnedBorrows:           6,
		OverdueBorrows:            1,
		TotalFinesCollected:       12.5,
		AverageBorrowDurationDays: 9.5,
		MostBorrowedBooks:         top,
	}, stats)
}

func TestService_LibraryStats_Error(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	repo.EXPECT().BookCounts(gomock.Any()).Return(model.BookCounts{}, errors.New("timeout"))
	repo.EXPECT().CountAuthors(gomock.Any()).Return(1, nil).AnyTimes()
	repo.EXPECT().CountUsers(gomock.Any()).Return(1, nil).AnyTimes()
	repo.EXPECT().BorrowCounts(gomock.Any(), gomock.Any()).Return(model.BorrowCounts{}, nil).AnyTimes()
	repo.EXPECT().TotalFines(gomock.Any()).Return(0.0, nil).AnyTimes()

	_, err := svc.LibraryStats(ctx)
	require.EqualError(t, err, "timeout")
}

func TestService_AuthorStats(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()

	byNationality := []model.NationalityCount{{Nationality: "British", Count: 3}, {Nationality: "American", Count: 1}}
	prolific := []model.AuthorBookCount{{AuthorID: 4, Author: "Terry Pratchett", BookCount: 41}}
	repo.EXPECT().CountAuthors(gomock.Any()).Return(5, nil)
	repo.EXPECT().AuthorsByNationality(gomock.Any()).Return(byNationality, nil)
	repo.EXPECT().MostProlificAuthors(gomock.Any(), uint(10)).Return(prolific, nil)

	stats, err := svc.AuthorStats(ctx)
	require.NoError(t, err)
	require.Equal(t, model.AuthorStats{TotalAuthors: 5, ByNationality: byNationality, MostProlific: prolific}, stats)
}

func TestService_SearchAuthors(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)
	ctx := context.Background()
	page := model.Page{Limit: 20}

	_, err := svc.SearchAuthors(ctx, "a", page)
	require.ErrorIs(t, err, errs.ErrValidation)

	found := []model.Author{{ID: 4, Name: "Terry Pratchett"}}
	repo.EXPECT().ListAuthors(ctx, model.AuthorFilter{Query: "pratch", Page: page}).Return(found, nil)
	authors, err := svc.SearchAuthors(ctx, "pratch", page)
	require.NoError(t, err)
	require.Equal(t, found, authors)
}
