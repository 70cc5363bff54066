package models

import "time"

// * Types produced by the ingestion adapter, normalized away from any one VCS API.

type Signature struct {
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Date  *time.Time `json:"date,omitempty"`
}

type DiffStats struct {
	LinesAdded   int `json:"lines_added"`
	LinesDeleted int `json:"lines_deleted"`
	FilesChanged int `json:"files_changed"`
}

type CommitRecord struct {
	SHA       string     `json:"sha"`
	Message   string     `json:"message"`
	Author    Signature  `json:"author"`
	Committer Signature  `json:"committer"`
	DiffStats *DiffStats `json:"diff_stats,omitempty"`
}

// * Fields converts a record into upsert fields; absent diff stats stay nil.
func (r CommitRecord) Fields() CommitFields {
	f := CommitFields{
		Message:     &r.Message,
		AuthorName:  &r.Author.Name,
		AuthorEmail: &r.Author.Email,
		CommittedAt: r.Author.Date,
	}
	if f.CommittedAt == nil {
		f.CommittedAt = r.Committer.Date
	}
	if r.DiffStats != nil {
		added, deleted, files := r.DiffStats.LinesAdded, r.DiffStats.LinesDeleted, r.DiffStats.FilesChanged
		f.LinesAdded = &added
		f.LinesDeleted = &deleted
		f.FilesChanged = &files
	}
	return f
}

type RepositoryInfo struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	Name          string `json:"name"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
}
