package domain

import "time"

// Todo represents a single task record.
type Todo struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *Todo) IsCompleted() bool {
	return t != nil && t.Completed
}

// SortField enumerates the columns a todo listing can be ordered by.
type SortField string

const (
	SortByDeadline  SortField = "deadline"
	SortByCreatedAt SortField = "created_at"
	SortByTitle     SortField = "title"
)

func (f SortField) IsValid() bool {
	return f == SortByDeadline || f == SortByCreatedAt || f == SortByTitle
}

// SortOrder is the listing direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

func (o SortOrder) IsValid() bool {
	return o == OrderAsc || o == OrderDesc
}
