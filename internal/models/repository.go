package models

import "time"

type Repository struct {
	ID            int64      `json:"id"`
	OwnerID       int64      `json:"owner_id"`
	FullName      string     `json:"full_name"`
	Name          string     `json:"name"`
	GithubRepoID  *int64     `json:"github_repo_id,omitempty"`
	IsPrivate     bool       `json:"is_private"`
	WebhookActive bool       `json:"webhook_active"`
	CreatedAt     time.Time  `json:"created_at"`
	LastSyncedAt  *time.Time `json:"last_synced_at,omitempty"`
}
