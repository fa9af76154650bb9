package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/Astemirdum/library-records/library/internal/errs"
	"github.com/Astemirdum/library-records/library/internal/model"
	"github.com/Astemirdum/library-records/library/internal/repository"
)

func (s *Service) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	books, err := s.repo.ListBooks(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err = attachAuthors(ctx, s.repo, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *Service) GetBook(ctx context.Context, id int) (model.Book, error) {
	book, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return model.Book{}, err
	}
	books := []model.Book{book}
	if err = attachAuthors(ctx, s.repo, books); err != nil {
		return model.Book{}, err
	}
	return books[0], nil
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	book := model.Book{
		Title:       req.Title,
		Pages:       req.Pages,
		Language:    req.Language,
		Description: req.Description,
		Genre:       req.Genre,
		Status:      req.Status,
	}
	if book.Language == "" {
		book.Language = model.DefaultLanguage
	}
	if book.Status == "" {
		book.Status = model.BookAvailable
	}
	authorIDs := uniqueIDs(req.AuthorIDs)

	err := s.repo.InTx(ctx, func(repo repository.Repository) error {
		if err := checkAuthors(ctx, repo, authorIDs); err != nil {
			return err
		}
		created, err := repo.CreateBook(ctx, book)
		if err != nil {
			return err
		}
		if err = repo.LinkAuthors(ctx, created.ID, authorIDs); err != nil {
			return err
		}
		book = created
		return nil
	})
	if err != nil {
		return model.Book{}, err
	}
	return s.GetBook(ctx, book.ID)
}

func (s *Service) UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error) {
	err := s.repo.InTx(ctx, func(repo repository.Repository) error {
		book, err := repo.GetBookForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.Title != nil {
			book.Title = *req.Title
		}
		if req.Pages != nil {
			book.Pages = *req.Pages
		}
		if req.Language != nil {
			book.Language = *req.Language
		}
		if req.Description != nil {
			book.Description = req.Description
		}
		if req.Genre != nil {
			book.Genre = req.Genre
		}
		if req.Status != nil && *req.Status != book.Status {
			s.log.Warn("book status override",
				zap.Int("book_id", id),
				zap.String("from", string(book.Status)),
				zap.String("to", string(*req.Status)))
			book.Status = *req.Status
		}
		if _, err = repo.UpdateBook(ctx, book); err != nil {
			return err
		}

		if req.AuthorIDs == nil {
			return nil
		}
		authorIDs := uniqueIDs(*req.AuthorIDs)
		if err = checkAuthors(ctx, repo, authorIDs); err != nil {
			return err
		}
		if err = repo.UnlinkAuthors(ctx, id); err != nil {
			return err
		}
		return repo.LinkAuthors(ctx, id, authorIDs)
	})
	if err != nil {
		return model.Book{}, err
	}
	return s.GetBook(ctx, id)
}

// DeleteBook refuses while the book is lent out; returned history is kept by the storage constraint.
func (s *Service) DeleteBook(ctx context.Context, id int) error {
	return s.repo.InTx(ctx, func(repo repository.Repository) error {
		if _, err := repo.GetBookForUpdate(ctx, id); err != nil {
			return err
		}
		active, err := repo.CountActiveBorrowsForBook(ctx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return errs.New(errs.ErrConflict, "cannot delete book with active borrows")
		}
		if err = repo.UnlinkAuthors(ctx, id); err != nil {
			return err
		}
		return repo.DeleteBook(ctx, id)
	})
}

func attachAuthors(ctx context.Context, repo repository.Repository, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}
	ids := make([]int, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	authors, err := repo.ListBookAuthors(ctx, ids)
	if err != nil {
		return err
	}
	for i := range books {
		books[i].Authors = authors[books[i].ID]
		if books[i].Authors == nil {
			books[i].Authors = []model.Author{}
		}
	}
	return nil
}

func checkAuthors(ctx context.Context, repo repository.Repository, ids []int) error {
	found, err := repo.ExistingAuthorIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}
	known := make(map[int]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	missing := make([]int, 0, len(ids)-len(found))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return errs.New(errs.ErrNotFound, "authors not found: %v", missing)
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
