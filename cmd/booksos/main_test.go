package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ItsTraderbaby/books-os/internal/cache"
	"github.com/ItsTraderbaby/books-os/internal/config"
	"github.com/ItsTraderbaby/books-os/internal/github"
	"github.com/ItsTraderbaby/books-os/internal/model"
	"github.com/ItsTraderbaby/books-os/internal/search"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		GitHub: config.GitHubConfig{
			Username: "octocat",
			Timeout:  30,
		},
		Cache: config.CacheConfig{Dir: t.TempDir()},
		Sync: config.SyncConfig{
			MaxRepositories: 200,
			IncludeReadme:   true,
		},
	}
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{
			name:     "short token fully hidden",
			token:    "abc123",
			expected: "********",
		},
		{
			name:     "empty token",
			token:    "",
			expected: "********",
		},
		{
			name:     "long token shows edges",
			token:    "ghp_1234567890abcdef",
			expected: "ghp_****cdef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskToken(tt.token)
			if result != tt.expected {
				t.Errorf("maskToken(%q) = %q, want %q", tt.token, result, tt.expected)
			}
		})
	}
}

func TestFiltersFromFlags(t *testing.T) {
	origSort, origMin := sortKey, minStars
	origCats, origAuthors, origLangs, origVis := catNames, authors, langs, vis
	defer func() {
		sortKey, minStars = origSort, origMin
		catNames, authors, langs, vis = origCats, origAuthors, origLangs, origVis
	}()

	sortKey = "popularity"
	minStars = 10
	catNames = []string{"ai_ml", "NOT_A_SHELF"}
	authors = []string{"octocat"}
	langs = []string{"Go"}
	vis = "public"

	f := filtersFromFlags()

	if f.SortBy != search.SortPopularity {
		t.Errorf("SortBy = %q, want %q", f.SortBy, search.SortPopularity)
	}
	if f.MinStars == nil || *f.MinStars != 10 {
		t.Errorf("MinStars = %v, want 10", f.MinStars)
	}
	if len(f.Categories) != 2 {
		t.Fatalf("Categories = %v, want 2 entries", f.Categories)
	}
	if f.Categories[0] != model.CategoryAIML {
		t.Errorf("category 0 = %q, want %q (case folded)", f.Categories[0], model.CategoryAIML)
	}
	if f.Categories[1] != model.CategoryMiscellaneous {
		t.Errorf("category 1 = %q, want %q (unknown falls back)", f.Categories[1], model.CategoryMiscellaneous)
	}
	if f.Visibility != search.VisibilityPublic {
		t.Errorf("Visibility = %q, want %q", f.Visibility, search.VisibilityPublic)
	}
}

func TestFiltersFromFlagsZeroMinStars(t *testing.T) {
	origMin := minStars
	defer func() { minStars = origMin }()

	minStars = 0
	if f := filtersFromFlags(); f.MinStars != nil {
		t.Errorf("MinStars = %v, want nil when flag unset", f.MinStars)
	}
}

func TestPerformSyncWithClient_Success(t *testing.T) {
	cfg := testConfig(t)

	mock := &mockGitHubClient{
		fetchRepositoriesFunc: func(opts github.FetchOptions) ([]model.Repository, error) {
			if opts.Username != "octocat" {
				t.Errorf("FetchOptions.Username = %q, want %q", opts.Username, "octocat")
			}
			return []model.Repository{
				{
					Name:      "my-flutter-app",
					FullName:  "octocat/my-flutter-app",
					Language:  "Dart",
					Topics:    []string{"flutter", "mobile"},
					Owner:     "octocat",
					Stars:     12,
					UpdatedAt: time.Now(),
				},
				{
					Name:     "space-game",
					FullName: "octocat/space-game",
					Owner:    "octocat",
				},
			}, nil
		},
	}

	if err := performSyncWithClient(cfg, mock); err != nil {
		t.Fatalf("performSyncWithClient failed: %v", err)
	}

	books, err := cache.New(cfg.Cache.Dir).ReadBooks()
	if err != nil {
		t.Fatalf("ReadBooks failed: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("cached %d books, want 2", len(books))
	}
	// Rule engine refines the category during sync
	if books[0].Category != model.CategoryMobileApps {
		t.Errorf("category = %q, want %q", books[0].Category, model.CategoryMobileApps)
	}
	if books[0].Title != "My Flutter App" {
		t.Errorf("title = %q, want %q", books[0].Title, "My Flutter App")
	}

	// Username and sync time are recorded alongside the catalog
	name, err := cache.New(cfg.Cache.Dir).LoadUsername()
	if err != nil || name != "octocat" {
		t.Errorf("LoadUsername() = %q, %v, want octocat", name, err)
	}
	when, err := cache.New(cfg.Cache.Dir).LoadLastSyncTime()
	if err != nil || when.IsZero() {
		t.Errorf("LoadLastSyncTime() = %v, %v, want recent time", when, err)
	}
}

func TestPerformSyncWithClient_ExcludedRepos(t *testing.T) {
	cfg := testConfig(t)
	cfg.ExcludedRepos = []string{"octocat/archived-*"}

	mock := &mockGitHubClient{
		fetchRepositoriesFunc: func(github.FetchOptions) ([]model.Repository, error) {
			return []model.Repository{
				{Name: "keeper", FullName: "octocat/keeper", Owner: "octocat"},
				{Name: "archived-site", FullName: "octocat/archived-site", Owner: "octocat"},
			}, nil
		},
	}

	if err := performSyncWithClient(cfg, mock); err != nil {
		t.Fatalf("performSyncWithClient failed: %v", err)
	}

	books, err := cache.New(cfg.Cache.Dir).ReadBooks()
	if err != nil {
		t.Fatalf("ReadBooks failed: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("cached %d books, want 1 (excluded repo dropped)", len(books))
	}
	if books[0].ID != "octocat/keeper" {
		t.Errorf("kept book = %q, want %q", books[0].ID, "octocat/keeper")
	}
}

func TestPerformSyncWithClient_ConnectionFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.GitHub.Token = "ghp_sometoken"

	mock := &mockGitHubClient{
		testConnectionFunc: func() error {
			return errors.New("401 unauthorized")
		},
	}

	err := performSyncWithClient(cfg, mock)
	if err == nil {
		t.Fatal("performSyncWithClient should fail when connection test fails")
	}
	if !strings.Contains(err.Error(), "connection test failed") {
		t.Errorf("error = %v, want connection test failure", err)
	}
}

func TestPerformSyncWithClient_FetchFailure(t *testing.T) {
	cfg := testConfig(t)

	mock := &mockGitHubClient{
		fetchRepositoriesFunc: func(github.FetchOptions) ([]model.Repository, error) {
			return nil, errors.New("rate limited")
		},
	}

	err := performSyncWithClient(cfg, mock)
	if err == nil {
		t.Fatal("performSyncWithClient should fail when fetch fails")
	}
	if !strings.Contains(err.Error(), "fetch error") {
		t.Errorf("error = %v, want fetch error", err)
	}
}

func TestPerformSyncWithClient_NoRepositories(t *testing.T) {
	cfg := testConfig(t)

	mock := &mockGitHubClient{}

	// Empty result is not an error, just a warning
	if err := performSyncWithClient(cfg, mock); err != nil {
		t.Fatalf("performSyncWithClient on empty listing = %v, want nil", err)
	}

	if cache.New(cfg.Cache.Dir).Exists() {
		t.Error("no catalog should be written when nothing was fetched")
	}
}

func TestPerformSyncWithClient_UsernameFromAPI(t *testing.T) {
	cfg := testConfig(t)
	cfg.GitHub.Username = ""
	cfg.GitHub.Token = "ghp_sometoken"

	mock := &mockGitHubClient{
		fetchRepositoriesFunc: func(github.FetchOptions) ([]model.Repository, error) {
			return []model.Repository{
				{Name: "notes", FullName: "hubot/notes", Owner: "hubot"},
			}, nil
		},
		getUsernameFunc: func() (string, error) {
			return "hubot", nil
		},
	}

	if err := performSyncWithClient(cfg, mock); err != nil {
		t.Fatalf("performSyncWithClient failed: %v", err)
	}

	name, err := cache.New(cfg.Cache.Dir).LoadUsername()
	if err != nil || name != "hubot" {
		t.Errorf("LoadUsername() = %q, %v, want hubot from the API", name, err)
	}
}
