package github

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/go-github/v66/github"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/oauth2"

	"github.com/ItsTraderbaby/books-os/internal/logger"
	"github.com/ItsTraderbaby/books-os/internal/model"
)

// readmeCacheSize bounds the in-process readme cache; readme bodies
// dominate fetch time on repeated syncs
const readmeCacheSize = 256

// GitHubClient defines the interface for GitHub API operations
// This interface enables mocking in tests while maintaining production functionality
//
//nolint:revive // GitHubClient is intentional - distinguishes interface from concrete Client struct
type GitHubClient interface {
	FetchRepositories(ctx context.Context, opts FetchOptions) ([]model.Repository, error)
	FetchReadmes(ctx context.Context, repos []model.Repository) []model.Repository
	TestConnection(ctx context.Context) error
	GetCurrentUsername(ctx context.Context) (string, error)
}

// FetchOptions controls one repository listing
type FetchOptions struct {
	Username        string // empty means the authenticated user
	MaxRepositories int
	IncludePrivate  bool
}

// Client wraps the GitHub API client and implements GitHubClient interface
type Client struct {
	client  *github.Client
	readmes *lru.Cache[string, string]
}

// New creates a new GitHub client with timeout. An empty token yields
// an unauthenticated client limited to public data.
func New(token string, timeout time.Duration) (*Client, error) {
	httpClient := &http.Client{
		Timeout: timeout,
	}

	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		base := oauth2.NewClient(context.Background(), src)
		base.Timeout = timeout
		httpClient = base
	}

	readmes, err := lru.New[string, string](readmeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create readme cache: %w", err)
	}

	return &Client{
		client:  github.NewClient(httpClient),
		readmes: readmes,
	}, nil
}

// FetchRepositories lists repositories page by page until the listing
// is exhausted or MaxRepositories is reached
func (c *Client) FetchRepositories(ctx context.Context, opts FetchOptions) ([]model.Repository, error) {
	max := opts.MaxRepositories
	if max <= 0 {
		max = 200
	}

	var repos []model.Repository
	page := 1
	for {
		batch, nextPage, err := c.listPage(ctx, opts, page)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories (page %d): %w", page, err)
		}

		for _, r := range batch {
			if r.GetPrivate() && !opts.IncludePrivate {
				continue
			}
			repos = append(repos, convertRepository(r))
			if len(repos) >= max {
				logger.Debug("Repository limit %d reached", max)
				return repos, nil
			}
		}

		if nextPage == 0 {
			break
		}
		page = nextPage
	}

	logger.Debug("Fetched %d repositories", len(repos))
	return repos, nil
}

func (c *Client) listPage(ctx context.Context, opts FetchOptions, page int) ([]*github.Repository, int, error) {
	listOpts := github.ListOptions{PerPage: 100, Page: page}

	if opts.Username != "" {
		batch, resp, err := c.client.Repositories.ListByUser(ctx, opts.Username, &github.RepositoryListByUserOptions{
			Sort:        "updated",
			ListOptions: listOpts,
		})
		if err != nil {
			return nil, 0, err
		}
		return batch, resp.NextPage, nil
	}

	visibility := "public"
	if opts.IncludePrivate {
		visibility = "all"
	}
	batch, resp, err := c.client.Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
		Visibility:  visibility,
		Sort:        "updated",
		ListOptions: listOpts,
	})
	if err != nil {
		return nil, 0, err
	}
	return batch, resp.NextPage, nil
}

// FetchReadmes fills in readme bodies for a batch of repositories
// using parallel requests. Individual failures leave the readme empty
// rather than failing the whole batch.
func (c *Client) FetchReadmes(ctx context.Context, repos []model.Repository) []model.Repository {
	const maxConcurrent = 10

	logger.Debug("Fetching readmes for %d repositories with max %d concurrent requests", len(repos), maxConcurrent)
	startTime := time.Now()

	out := make([]model.Repository, len(repos))
	copy(out, repos)

	semaphore := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	var fetched int32

	for i := range out {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			readme, err := c.FetchReadme(ctx, out[idx].Owner, out[idx].Name)
			if err != nil {
				logger.Debug("Warning: failed to fetch readme for %s: %v", out[idx].FullName, err)
				return
			}
			out[idx].Readme = readme
			atomic.AddInt32(&fetched, 1)
		}(i)
	}
	wg.Wait()

	logger.Debug("Fetched %d readmes in %v", atomic.LoadInt32(&fetched), time.Since(startTime))
	return out
}

// FetchReadme returns the decoded readme body for one repository,
// consulting the in-process cache first
func (c *Client) FetchReadme(ctx context.Context, owner, name string) (string, error) {
	key := owner + "/" + name
	if body, ok := c.readmes.Get(key); ok {
		return body, nil
	}

	content, _, err := c.client.Repositories.GetReadme(ctx, owner, name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch readme: %w", err)
	}

	body, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode readme: %w", err)
	}

	c.readmes.Add(key, body)
	return body, nil
}

// TestConnection tests the connection to GitHub by fetching the
// current user
func (c *Client) TestConnection(ctx context.Context) error {
	_, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to connect to GitHub: %w", err)
	}
	return nil
}

// GetCurrentUsername fetches the login of the authenticated user
func (c *Client) GetCurrentUsername(ctx context.Context) (string, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to fetch current user: %w", err)
	}
	return user.GetLogin(), nil
}

func convertRepository(r *github.Repository) model.Repository {
	return model.Repository{
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Topics:      r.Topics,
		Owner:       r.GetOwner().GetLogin(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Watchers:    r.GetWatchersCount(),
		OpenIssues:  r.GetOpenIssuesCount(),
		License:     r.GetLicense().GetName(),
		Private:     r.GetPrivate(),
		HTMLURL:     r.GetHTMLURL(),
		CreatedAt:   r.GetCreatedAt().Time,
		UpdatedAt:   r.GetUpdatedAt().Time,
	}
}
