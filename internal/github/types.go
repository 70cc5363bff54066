package github

import (
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
)

type Options struct {
	// * MaxWait bounds how long a request may block on a spent rate limit
	MaxWait time.Duration
	// * DetailConcurrency bounds parallel per-commit detail requests
	DetailConcurrency int
	Timeout           time.Duration
}

func toRepositoryInfo(r *github.Repository) *models.RepositoryInfo {
	return &models.RepositoryInfo{
		ID:            r.GetID(),
		FullName:      r.GetFullName(),
		Name:          r.GetName(),
		Private:       r.GetPrivate(),
		DefaultBranch: r.GetDefaultBranch(),
	}
}

func toSignature(a *github.CommitAuthor) models.Signature {
	sig := models.Signature{Name: a.GetName(), Email: a.GetEmail()}
	if a != nil && a.Date != nil {
		date := a.Date.Time.UTC()
		sig.Date = &date
	}
	return sig
}

// * toRecord maps a listed commit. detail may be nil when stats are unavailable.
func toRecord(c, detail *github.RepositoryCommit) models.CommitRecord {
	record := models.CommitRecord{
		SHA:       c.GetSHA(),
		Message:   c.GetCommit().GetMessage(),
		Author:    toSignature(c.GetCommit().GetAuthor()),
		Committer: toSignature(c.GetCommit().GetCommitter()),
	}

	if detail != nil && detail.Stats != nil {
		record.DiffStats = &models.DiffStats{
			LinesAdded:   detail.GetStats().GetAdditions(),
			LinesDeleted: detail.GetStats().GetDeletions(),
			FilesChanged: len(detail.Files),
		}
	}
	return record
}
