package model

import "time"

type Author struct {
	ID          int        `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Nationality *string    `json:"nationality" db:"nationality"`
	Biography   *string    `json:"biography" db:"biography"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at" db:"updated_at"`
	Books       []Book     `json:"books,omitempty" db:"-"`
}

type CreateAuthorRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Nationality *string `json:"nationality" validate:"omitempty,max=50"`
	Biography   *string `json:"biography" validate:"omitempty,max=1000"`
}

type UpdateAuthorRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Nationality *string `json:"nationality" validate:"omitempty,max=50"`
	Biography   *string `json:"biography" validate:"omitempty,max=1000"`
}

// AuthorFilter lists authors by name/nationality. Query matches name, nationality or biography.
type AuthorFilter struct {
	Name        string
	Nationality string
	Query       string
	Page
}
