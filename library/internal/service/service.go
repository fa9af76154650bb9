package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/library-records/library/internal/lending"
	"github.com/Astemirdum/library-records/library/internal/model"
	"github.com/Astemirdum/library-records/library/internal/repository"
	"github.com/Astemirdum/library-records/pkg/hasher"
	"github.com/Astemirdum/library-records/pkg/kafka"
)

type Service struct {
	log       *zap.Logger
	repo      repository.Repository
	hasher    hasher.Hasher
	policy    lending.Policy
	publisher kafka.Publisher
	now       func() time.Time
}

type Option func(s *Service)

func WithPolicy(p lending.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

func WithHasher(h hasher.Hasher) Option {
	return func(s *Service) {
		s.hasher = h
	}
}

func WithPublisher(p kafka.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo repository.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:       log.Named("service"),
		repo:      repo,
		hasher:    hasher.NewBcrypt(0),
		policy:    lending.DefaultPolicy(),
		publisher: kafka.NewNopPublisher(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// today is the current UTC calendar day.
func (s *Service) today() time.Time {
	return model.Day(s.now())
}
