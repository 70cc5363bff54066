package models

import "time"

// * Commit as stored. Diff stats stay nil until some source reports them.
type Commit struct {
	ID           int64      `json:"id"`
	RepositoryID int64      `json:"repository_id"`
	SHA          string     `json:"sha"`
	AuthorName   string     `json:"author_name"`
	AuthorEmail  string     `json:"author_email"`
	Message      string     `json:"message"`
	LinesAdded   *int       `json:"lines_added"`
	LinesDeleted *int       `json:"lines_deleted"`
	FilesChanged *int       `json:"files_changed"`
	Complexity   *float64   `json:"complexity"`
	CommittedAt  *time.Time `json:"committed_at"`
	IngestedAt   time.Time  `json:"ingested_at"`
}

// * CommitFields carries the optional values of an upsert. Nil means "keep what is stored".
type CommitFields struct {
	Message      *string
	AuthorName   *string
	AuthorEmail  *string
	LinesAdded   *int
	LinesDeleted *int
	FilesChanged *int
	Complexity   *float64
	CommittedAt  *time.Time
}
