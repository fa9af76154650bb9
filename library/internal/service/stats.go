package service

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/library-records/library/internal/model"
)

const topN = 10

func (s *Service) LibraryStats(ctx context.Context) (model.LibraryStats, error) {
	var (
		stats   model.LibraryStats
		books   model.BookCounts
		borrows model.BorrowCounts
	)
	today := s.today()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		books, err = s.repo.BookCounts(gCtx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalAuthors, err = s.repo.CountAuthors(gCtx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.repo.CountUsers(gCtx)
		return err
	})
	g.Go(func() (err error) {
		borrows, err = s.repo.BorrowCounts(gCtx, today)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalFines, err = s.repo.TotalFines(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.LibraryStats{}, err
	}

	stats.TotalBooks = books.Total
	stats.BooksAvailable = books.Available
	stats.BooksBorrowed = books.Borrowed
	stats.OverdueBooks = borrows.Overdue
	return stats, nil
}

func (s *Service) BorrowStats(ctx context.Context) (model.BorrowStats, error) {
	var (
		stats  model.BorrowStats
		counts model.BorrowCounts
	)
	today := s.today()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = s.repo.BorrowCounts(gCtx, today)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalFinesCollected, err = s.repo.TotalFines(gCtx)
		return err
	})
	g.Go(func() (err error) {
		stats.AverageBorrowDurationDays, err = s.repo.AverageBorrowDays(gCtx)
		return err
	})
	g.Go(func() (err error) {
		stats.MostBorrowedBooks, err = s.repo.MostBorrowedBooks(gCtx, topN)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.BorrowStats{}, err
	}

	stats.TotalBorrows = counts.Total
	stats.ActiveBorrows = counts.Active
	stats.ReturnedBorrows = counts.Total - counts.Active
	stats.OverdueBorrows = counts.Overdue
	stats.AverageBorrowDurationDays = math.Round(stats.AverageBorrowDurationDays*10) / 10
	return stats, nil
}

func (s *Service) AuthorStats(ctx context.Context) (model.AuthorStats, error) {
	var stats model.AuthorStats

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalAuthors, err = s.repo.CountAuthors(gCtx)
		return err
	})
	g.Go(func() (err error) {
		stats.ByNationality, err = s.repo.AuthorsByNationality(gCtx)
		return err
	})
	g.Go(func() (err error) {
		stats.MostProlific, err = s.repo.MostProlificAuthors(gCtx, topN)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.AuthorStats{}, err
	}
	return stats, nil
}
