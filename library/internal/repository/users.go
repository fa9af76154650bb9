package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Astemirdum/library-records/library/internal/errs"
	"github.com/Astemirdum/library-records/library/internal/model"
)

var userColumns = []string{"id", "name", "email", "role", "is_active", "hashed_password", "created_at", "updated_at"}

const userReturning = "returning id, name, email, role, is_active, hashed_password, created_at, updated_at"

func (r *repository) ListUsers(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	q := qb.Select(userColumns...).
		From(usersTableName).
		OrderBy("id")

	if filter.Role != nil {
		q = q.Where(sq.Eq{"role": *filter.Role})
	}
	if filter.IsActive != nil {
		q = q.Where(sq.Eq{"is_active": *filter.IsActive})
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where(sq.Or{
			sq.ILike{"name": like},
			sq.ILike{"email": like},
		})
	}

	return getMany[model.User](ctx, r.db, r.log, "users", paginate(q, filter.Page))
}

func (r *repository) GetUser(ctx context.Context, id int) (model.User, error) {
	q := qb.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"id": id})
	return getOne[model.User](ctx, r.db, r.log, "user", q)
}

// GetUserForUpdate locks the user row, serialising concurrent borrows of one user.
func (r *repository) GetUserForUpdate(ctx context.Context, id int) (model.User, error) {
	q := qb.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"id": id}).
		Suffix("for update")
	return getOne[model.User](ctx, r.db, r.log, "user", q)
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	q := qb.Select(userColumns...).
		From(usersTableName).
		Where("lower(email) = lower(?)", email)
	return getOne[model.User](ctx, r.db, r.log, "user", q)
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := count(ctx, r.db, "email exists",
		qb.Select("count(*)").
			From(usersTableName).
			Where("lower(email) = lower(?)", email))
	return n > 0, err
}

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	q := qb.Insert(usersTableName).
		Columns("name", "email", "role", "is_active", "hashed_password").
		Values(user.Name, user.Email, user.Role, user.IsActive, user.HashedPassword).
		Suffix(userReturning)
	created, err := getOne[model.User](ctx, r.db, r.log, "user", q)
	if err != nil && isUniqueViolation(err) {
		return model.User{}, errs.New(errs.ErrConflict, "email already registered")
	}
	return created, err
}

func (r *repository) UpdateUser(ctx context.Context, user model.User) (model.User, error) {
	q := qb.Update(usersTableName).
		Set("name", user.Name).
		Set("role", user.Role).
		Set("is_active", user.IsActive).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": user.ID}).
		Suffix(userReturning)
	return getOne[model.User](ctx, r.db, r.log, "user", q)
}

func (r *repository) DeleteUser(ctx context.Context, id int) error {
	n, err := exec(ctx, r.db, r.log, "delete user",
		qb.Delete(usersTableName).Where(sq.Eq{"id": id}))
	if err != nil {
		if isForeignKeyViolation(err) {
			return errs.New(errs.ErrConflict, "cannot delete user with borrow history")
		}
		return err
	}
	if n == 0 {
		return errs.New(errs.ErrNotFound, "user not found")
	}
	return nil
}
