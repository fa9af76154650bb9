package model

type LibraryStats struct {
	TotalBooks     int     `json:"total_books"`
	TotalAuthors   int     `json:"total_authors"`
	TotalUsers     int     `json:"total_users"`
	BooksBorrowed  int     `json:"books_borrowed"`
	BooksAvailable int     `json:"books_available"`
	OverdueBooks   int     `json:"overdue_books"`
	TotalFines     float64 `json:"total_fines"`
}

type BorrowStats struct {
	TotalBorrows              int               `json:"total_borrows"`
	ActiveBorrows             int               `json:"active_borrows"`
	ReturnedBorrows           int               `json:"returned_borrows"`
	OverdueBorrows            int               `json:"overdue_borrows"`
	TotalFinesCollected       float64           `json:"total_fines_collected"`
	AverageBorrowDurationDays float64           `json:"average_borrow_duration_days"`
	MostBorrowedBooks         []BookBorrowCount `json:"most_borrowed_books"`
}

type AuthorStats struct {
	TotalAuthors  int                `json:"total_authors"`
	ByNationality []NationalityCount `json:"by_nationality"`
	MostProlific  []AuthorBookCount  `json:"most_prolific"`
}

type BookCounts struct {
	Total     int `db:"total"`
	Available int `db:"available"`
	Borrowed  int `db:"borrowed"`
}

type BorrowCounts struct {
	Total   int `db:"total"`
	Active  int `db:"active"`
	Overdue int `db:"overdue"`
}

type BookBorrowCount struct {
	BookID      int    `json:"book_id" db:"book_id"`
	Title       string `json:"title" db:"title"`
	BorrowCount int    `json:"borrow_count" db:"borrow_count"`
}

type AuthorBookCount struct {
	AuthorID  int    `json:"author_id" db:"author_id"`
	Author    string `json:"author" db:"author"`
	BookCount int    `json:"book_count" db:"book_count"`
}

type NationalityCount struct {
	Nationality string `json:"nationality" db:"nationality"`
	Count       int    `json:"count" db:"count"`
}
