package service

import (
	"context"

	"github.com/Astemirdum/library-records/library/internal/errs"
	"github.com/Astemirdum/library-records/library/internal/model"
	"github.com/Astemirdum/library-records/library/internal/repository"
)

func (s *Service) ListAuthors(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error) {
	return s.repo.ListAuthors(ctx, filter)
}

func (s *Service) SearchAuthors(ctx context.Context, query string, page model.Page) ([]model.Author, error) {
	if len([]rune(query)) < 2 {
		return nil, errs.New(errs.ErrValidation, "search query must be at least 2 characters")
	}
	return s.repo.ListAuthors(ctx, model.AuthorFilter{Query: query, Page: page})
}

func (s *Service) GetAuthor(ctx context.Context, id int) (model.Author, error) {
	author, err := s.repo.GetAuthor(ctx, id)
	if err != nil {
		return model.Author{}, err
	}
	if author.Books, err = s.repo.ListAuthorBooks(ctx, id); err != nil {
		return model.Author{}, err
	}
	return author, nil
}

func (s *Service) ListAuthorBooks(ctx context.Context, id int) ([]model.Book, error) {
	if _, err := s.repo.GetAuthor(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListAuthorBooks(ctx, id)
}

func (s *Service) CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (model.Author, error) {
	return s.repo.CreateAuthor(ctx, model.Author{
		Name:        req.Name,
		Nationality: req.Nationality,
		Biography:   req.Biography,
	})
}

func (s *Service) UpdateAuthor(ctx context.Context, id int, req model.UpdateAuthorRequest) (model.Author, error) {
	var updated model.Author
	err := s.repo.InTx(ctx, func(repo repository.Repository) error {
		author, err := repo.GetAuthor(ctx, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			author.Name = *req.Name
		}
		if req.Nationality != nil {
			author.Nationality = req.Nationality
		}
		if req.Biography != nil {
			author.Biography = req.Biography
		}
		updated, err = repo.UpdateAuthor(ctx, author)
		return err
	})
	return updated, err
}

func (s *Service) DeleteAuthor(ctx context.Context, id int) error {
	return s.repo.InTx(ctx, func(repo repository.Repository) error {
		if _, err := repo.GetAuthor(ctx, id); err != nil {
			return err
		}
		n, err := repo.CountAuthorBooks(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return errs.New(errs.ErrConflict, "cannot delete author with associated books")
		}
		return repo.DeleteAuthor(ctx, id)
	})
}
