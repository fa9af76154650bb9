package model

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLibrarian Role = "librarian"
	RoleMember    Role = "member"
)

type User struct {
	ID             int       `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Role           Role      `json:"role" db:"role"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	HashedPassword string    `json:"-" db:"hashed_password"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=4,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Role     Role   `json:"role" validate:"omitempty,oneof=admin librarian member"`
	IsActive *bool  `json:"is_active"`
	Password string `json:"password" validate:"required,min=8,max=72,password"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=4,max=100"`
	Role     *Role   `json:"role" validate:"omitempty,oneof=admin librarian member"`
	IsActive *bool   `json:"is_active"`
}

type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type CheckEmailRequest struct {
	Email string `form:"email" validate:"required,email"`
}

type CheckEmailResponse struct {
	Email     string `json:"email"`
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

type UserFilter struct {
	Role     *Role
	IsActive *bool
	Query    string
	Page
}
