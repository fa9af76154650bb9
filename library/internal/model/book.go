package model

import "time"

type BookStatus string

const (
	BookAvailable   BookStatus = "available"
	BookBorrowed    BookStatus = "borrowed"
	BookReserved    BookStatus = "reserved"
	BookMaintenance BookStatus = "maintenance"
	BookLost        BookStatus = "lost"
)

type Genre string

const (
	GenreFiction        Genre = "fiction"
	GenreNonFiction     Genre = "non_fiction"
	GenreMystery        Genre = "mystery"
	GenreRomance        Genre = "romance"
	GenreScienceFiction Genre = "science_fiction"
	GenreFantasy        Genre = "fantasy"
	GenreBiography      Genre = "biography"
	GenreHistory        Genre = "history"
	GenreScience        Genre = "science"
	GenreTechnology     Genre = "technology"
	GenreChildren       Genre = "children"
	GenreYoungAdult     Genre = "young_adult"
)

const DefaultLanguage = "English"

type Book struct {
	ID          int        `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Pages       int        `json:"pages" db:"pages"`
	Language    string     `json:"language" db:"language"`
	Description *string    `json:"description" db:"description"`
	Genre       *Genre     `json:"genre" db:"genre"`
	Status      BookStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	Authors     []Author   `json:"authors,omitempty" db:"-"`
}

// StatusTransition is a book status write produced by the lending engine.
// An empty From forces the status regardless of its current value.
type StatusTransition struct {
	BookID int
	From   BookStatus
	To     BookStatus
}

type CreateBookRequest struct {
	Title       string     `json:"title" validate:"required,min=2,max=200"`
	Pages       int        `json:"pages" validate:"gte=0,lte=10000"`
	Language    string     `json:"language" validate:"max=50"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Genre       *Genre     `json:"genre" validate:"omitempty,oneof=fiction non_fiction mystery romance science_fiction fantasy biography history science technology children young_adult"`
	Status      BookStatus `json:"status" validate:"omitempty,oneof=available reserved maintenance lost"`
	AuthorIDs   []int      `json:"author_ids" validate:"required,min=1,dive,gt=0"`
}

// UpdateBookRequest is a partial update. Status is the administrative override.
type UpdateBookRequest struct {
	Title       *string     `json:"title" validate:"omitempty,min=2,max=200"`
	Pages       *int        `json:"pages" validate:"omitempty,gte=0,lte=10000"`
	Language    *string     `json:"language" validate:"omitempty,max=50"`
	Description *string     `json:"description" validate:"omitempty,max=1000"`
	Genre       *Genre      `json:"genre" validate:"omitempty,oneof=fiction non_fiction mystery romance science_fiction fantasy biography history science technology children young_adult"`
	Status      *BookStatus `json:"status" validate:"omitempty,oneof=available borrowed reserved maintenance lost"`
	AuthorIDs   *[]int      `json:"author_ids" validate:"omitempty,min=1,dive,gt=0"`
}

type BookFilter struct {
	Title         string
	Author        string
	Genre         *Genre
	Status        *BookStatus
	AvailableOnly bool
	Page
}

type BookSummary struct {
	ID     int        `json:"id" db:"id"`
	Title  string     `json:"title" db:"title"`
	Genre  *Genre     `json:"genre" db:"genre"`
	Status BookStatus `json:"status" db:"status"`
}
