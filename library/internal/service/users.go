package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-records/library/internal/errs"
	"github.com/Astemirdum/library-records/library/internal/model"
	"github.com/Astemirdum/library-records/library/internal/repository"
)

func (s *Service) ListUsers(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	return s.repo.ListUsers(ctx, filter)
}

func (s *Service) SearchUsers(ctx context.Context, query string, page model.Page) ([]model.User, error) {
	if len([]rune(query)) < 2 {
		return nil, errs.New(errs.ErrValidation, "search query must be at least 2 characters")
	}
	return s.repo.ListUsers(ctx, model.UserFilter{Query: query, Page: page})
}

func (s *Service) GetUser(ctx context.Context, id int) (model.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	email := strings.TrimSpace(req.Email)
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return model.User{}, err
	}
	if exists {
		return model.User{}, errs.New(errs.ErrConflict, "email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hash password")
	}
	user := model.User{
		Name:           req.Name,
		Email:          email,
		Role:           req.Role,
		IsActive:       true,
		HashedPassword: hash,
	}
	if user.Role == "" {
		user.Role = model.RoleMember
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	return s.repo.CreateUser(ctx, user)
}

func (s *Service) UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) (model.User, error) {
	var updated model.User
	err := s.repo.InTx(ctx, func(repo repository.Repository) error {
		user, err := repo.GetUserForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Role != nil {
			user.Role = *req.Role
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
		updated, err = repo.UpdateUser(ctx, user)
		return err
	})
	return updated, err
}

func (s *Service) SetUserActive(ctx context.Context, id int, active bool) (model.User, error) {
	return s.UpdateUser(ctx, id, model.UpdateUserRequest{IsActive: &active})
}

func (s *Service) DeleteUser(ctx context.Context, id int) error {
	return s.repo.InTx(ctx, func(repo repository.Repository) error {
		if _, err := repo.GetUserForUpdate(ctx, id); err != nil {
			return err
		}
		standing, err := repo.Standing(ctx, id, s.today())
		if err != nil {
			return err
		}
		if standing.Active > 0 {
			return errs.New(errs.ErrConflict, "cannot delete user with active borrow records")
		}
		return repo.DeleteUser(ctx, id)
	})
}

func (s *Service) Register(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	return s.CreateUser(ctx, req)
}

// Login verifies the password hash. Unknown email, wrong password and inactive user are indistinguishable.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.User, error) {
	unauthorized := errs.New(errs.ErrUnauthorized, "incorrect email or password")

	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.User{}, unauthorized
		}
		return model.User{}, err
	}
	if !s.hasher.Verify(req.Password, user.HashedPassword) || !user.IsActive {
		s.log.Info("login rejected", zap.Int("user_id", user.ID))
		return model.User{}, unauthorized
	}
	return user, nil
}

func (s *Service) CheckEmail(ctx context.Context, email string) (model.CheckEmailResponse, error) {
	email = strings.TrimSpace(email)
	taken, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return model.CheckEmailResponse{}, err
	}
	resp := model.CheckEmailResponse{Email: email, Available: !taken, Message: "Email available"}
	if taken {
		resp.Message = "Email already registered"
	}
	return resp, nil
}
