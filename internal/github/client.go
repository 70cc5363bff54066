package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/logger"
)

const (
	defaultTimeout           = 30 * time.Second
	defaultDetailConcurrency = 5
)

// * Client is the GitHub implementation of the commit source used by repository sync.
type Client struct {
	gh                *github.Client
	detailConcurrency int
}

func NewClient(token string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.DetailConcurrency <= 0 {
		opts.DetailConcurrency = defaultDetailConcurrency
	}

	rl := NewRateLimiter(opts.MaxWait)
	transport := rl.Middleware(http.DefaultTransport)

	if token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   transport,
		}
	}

	httpClient := &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
	}

	return &Client{
		gh:                github.NewClient(httpClient),
		detailConcurrency: opts.DetailConcurrency,
	}
}

func (c *Client) GetRepository(ctx context.Context, owner, name string) (*models.RepositoryInfo, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, upstreamError(err, fmt.Sprintf("repository %s/%s", owner, name)).WithOperation("get repository")
	}
	return toRepositoryInfo(repo), nil
}

// * FetchCommitPage lists one page of commits and then fetches each commit's
// * detail for its diff stats. Results keep the listing order.
func (c *Client) FetchCommitPage(ctx context.Context, owner, name string, page, perPage int, branch string) ([]models.CommitRecord, error) {
	opts := &github.CommitsListOptions{
		SHA: branch,
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}

	logger.Debug("Fetching commits page %d of %s/%s", page, owner, name)

	commits, _, err := c.gh.Repositories.ListCommits(ctx, owner, name, opts)
	if err != nil {
		return nil, upstreamError(err, fmt.Sprintf("commits of %s/%s (page %d)", owner, name, page)).WithOperation("list commits")
	}

	details := make([]*github.RepositoryCommit, len(commits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.detailConcurrency)

	for i, commit := range commits {
		g.Go(func() error {
			detail, _, err := c.gh.Repositories.GetCommit(gctx, owner, name, commit.GetSHA(), nil)
			if err != nil {
				return upstreamError(err, fmt.Sprintf("commit %s of %s/%s", commit.GetSHA(), owner, name)).WithOperation("get commit")
			}
			details[i] = detail
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]models.CommitRecord, 0, len(commits))
	for i, commit := range commits {
		records = append(records, toRecord(commit, details[i]))
	}

	logger.Debug("Fetched %d commits from %s/%s", len(records), owner, name)
	return records, nil
}

// * upstreamError maps go-github failures to rate_limited, not_found or transient.
func upstreamError(err error, subject string) *errors.ApplicationError {
	var appErr *errors.ApplicationError
	if errors.As(err, &appErr) {
		return appErr
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return errors.Upstream(
			errors.UpstreamRateLimited,
			"GitHub rate limit exceeded",
			fmt.Sprintf("GitHub refused the request for %s until the rate limit resets", subject),
			err,
		)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound {
		return errors.Upstream(
			errors.UpstreamNotFound,
			"Not found on GitHub",
			fmt.Sprintf("The %s does not exist or you don't have access to it", subject),
			err,
		)
	}

	return errors.Upstream(
		errors.UpstreamTransient,
		"GitHub API request failed",
		fmt.Sprintf("Could not retrieve %s from GitHub API", subject),
		err,
	)
}
