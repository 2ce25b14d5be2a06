package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ItsTraderbaby/books-os/internal/cache"
	"github.com/ItsTraderbaby/books-os/internal/category"
	"github.com/ItsTraderbaby/books-os/internal/config"
	"github.com/ItsTraderbaby/books-os/internal/github"
	"github.com/ItsTraderbaby/books-os/internal/history"
	"github.com/ItsTraderbaby/books-os/internal/logger"
	"github.com/ItsTraderbaby/books-os/internal/model"
	"github.com/ItsTraderbaby/books-os/internal/search"
	"github.com/ItsTraderbaby/books-os/internal/section"
	"github.com/ItsTraderbaby/books-os/internal/transform"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var (
	verbose  bool // Flag to enable verbose logging
	doSync   bool // Flag to perform sync instead of search
	jsonOut  bool // Flag to print results as JSON
	sortKey  string
	limit    int
	offset   int
	minStars int
	catNames []string
	authors  []string
	langs    []string
	vis      string
)

var rootCmd = &cobra.Command{
	Use:   "booksos [flags] [query...]",
	Short: "Books-OS - Search and organize your repositories as a library",
	Long: `booksos turns your GitHub repositories into a searchable library of
books, categorized into shelves and ranked by relevance.

Getting Started:
  1. Create config: ~/.config/booksos/config.yaml (or run 'booksos config')
  2. Run: booksos --sync (to fetch repositories)
  3. Run: booksos <query> (search the catalog)

Examples:
  booksos react              # Search for "react"
  booksos react dashboard    # Multi-word search
  booksos --sync             # Synchronize the catalog
  booksos --sort popularity  # Order results by stars
  booksos --category AI_ML   # Narrow to one shelf category
  booksos suggest rea        # Query suggestions for a partial input

Configuration:
  Set your GitHub username and token in ~/.config/booksos/config.yaml
  or via environment:
    BOOKSOS_GITHUB_USERNAME=your-username
    BOOKSOS_GITHUB_TOKEN=your-token-here`,
	RunE: runSearch,
	// Accept any number of arguments as search query
	Args:                       cobra.ArbitraryArgs,
	SuggestionsMinimumDistance: 2,
}

// runSearch handles the default search behavior
func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if doSync {
		return performSync(cfg)
	}

	engine, hist, err := loadEngine(cfg)
	if err != nil {
		return err
	}

	query := strings.TrimSpace(strings.Join(args, " "))

	result := engine.Search(search.Query{
		Text:    query,
		Filters: filtersFromFlags(),
		Limit:   limit,
		Offset:  offset,
	})

	// Persist the updated recent-search list
	if query != "" {
		hist.Replace(engine.RecentSearches())
		if err := hist.Save(); err != nil {
			logger.Debug("Failed to save history: %v", err)
		}
	}

	if jsonOut {
		return printJSON(result)
	}
	printResult(result, query)
	return nil
}

// filtersFromFlags converts the root command's flag values into a
// filter set
func filtersFromFlags() search.Filters {
	f := search.Filters{
		Authors:    authors,
		Languages:  langs,
		SortBy:     search.SortKey(sortKey),
		Visibility: search.Visibility(vis),
	}
	for _, name := range catNames {
		f.Categories = append(f.Categories, model.ParseCategory(strings.ToUpper(name)))
	}
	if minStars > 0 {
		f.MinStars = &minStars
	}
	return f
}

// loadEngine builds a search engine from the cached catalog and seeds
// its history from disk
func loadEngine(cfg *config.Config) (*search.Engine, *history.History, error) {
	cacheManager := cache.New(cfg.Cache.Dir)
	books, err := cacheManager.ReadBooks()
	if err != nil {
		return nil, nil, err
	}

	engine := search.NewEngine(nil)
	engine.Ranking().SetWeights(cfg.Ranking.Overrides())
	engine.SetBooks(books)

	historyPath := filepath.Join(cfg.Cache.Dir, "history.gob")
	hist := history.New(historyPath)
	if err := hist.Load(); err != nil {
		logger.Debug("Failed to load history: %v", err)
	}
	engine.SetRecentSearches(hist.Texts())

	return engine, hist, nil
}

// performSync fetches repositories, categorizes them and writes the
// catalog cache
func performSync(cfg *config.Config) error {
	logger.Info("Connecting to GitHub (timeout: %ds)...", cfg.GitHub.Timeout)
	client, err := github.New(cfg.GitHub.Token, cfg.GitHub.GetTimeout())
	if err != nil {
		logger.Error("Failed to create GitHub client")
		return fmt.Errorf("GitHub client error: %w", err)
	}

	return performSyncWithClient(cfg, client)
}

// performSyncWithClient performs sync with an injected client
// (testable version)
func performSyncWithClient(cfg *config.Config, client github.GitHubClient) error {
	ctx := context.Background()

	if cfg.GitHub.Token != "" {
		logger.Debug("Testing GitHub connection...")
		if err := client.TestConnection(ctx); err != nil {
			logger.Error("Connection test failed")
			logger.Info("Please check:")
			logger.Info("  - Personal Access Token is valid")
			logger.Info("  - Network connection is available")
			return fmt.Errorf("connection test failed: %w", err)
		}
		logger.Success("Connected successfully")
	}

	logger.Info("Fetching repositories...")
	start := time.Now()

	repos, err := client.FetchRepositories(ctx, github.FetchOptions{
		Username:        cfg.GitHub.Username,
		MaxRepositories: cfg.Sync.MaxRepositories,
		IncludePrivate:  cfg.Sync.IncludePrivate,
	})
	if err != nil {
		logger.Error("Failed to fetch repositories")
		return fmt.Errorf("fetch error: %w", err)
	}
	logger.Success("Fetched %d repositories in %v", len(repos), time.Since(start))

	if len(repos) == 0 {
		logger.Warn("No repositories found. Check the configured username and token permissions.")
		return nil
	}

	// Drop excluded repositories before any further work
	kept := repos[:0]
	for _, r := range repos {
		if cfg.IsExcluded(r.FullName) {
			logger.Debug("Excluding %s", r.FullName)
			continue
		}
		kept = append(kept, r)
	}
	repos = kept

	if cfg.Sync.IncludeReadme {
		repos = client.FetchReadmes(ctx, repos)
	}

	// Build books: transform first, then let the rule engine refine the
	// category with its confidence scoring
	categorizer := category.NewService()
	mapping := section.NewMapping()

	books := transform.FromRepositories(repos)
	for i := range books {
		match := categorizer.Categorize(repos[i])
		books[i].Category = match.Category
		logger.Debug("%s -> %s (%.2f) section %s [%s]",
			repos[i].Name, match.Category, match.Confidence,
			mapping.SectionIDForCategory(match.Category),
			strings.Join(match.MatchedRules, ", "))
	}

	cacheManager := cache.New(cfg.Cache.Dir)
	if err := cacheManager.WriteBooks(books); err != nil {
		logger.Error("Failed to write catalog cache")
		return fmt.Errorf("cache error: %w", err)
	}
	logger.Success("Catalog written: %d books", len(books))

	if err := cacheManager.SaveLastSyncTime(time.Now()); err != nil {
		logger.Warn("Failed to save sync timestamp: %v", err)
	}

	if cfg.GitHub.Username != "" {
		if err := cacheManager.SaveUsername(cfg.GitHub.Username); err != nil {
			logger.Debug("Failed to save username: %v", err)
		}
	} else if username, err := client.GetCurrentUsername(ctx); err == nil {
		if err := cacheManager.SaveUsername(username); err != nil {
			logger.Debug("Failed to save username: %v", err)
		}
	}

	logger.Info("\nRun 'booksos <query>' to search the catalog")
	return nil
}

// printResult renders a search result for the terminal
func printResult(result search.Result, query string) {
	if result.TotalCount == 0 {
		if query == "" {
			printMuted("Catalog is empty. Run 'booksos --sync' first.")
		} else {
			printMuted(fmt.Sprintf("No books found for %q", query))
		}
		return
	}

	for _, b := range result.Books {
		printBook(b)
	}

	fmt.Println()
	printMuted(fmt.Sprintf("%d of %d books (%v)",
		len(result.Books), result.TotalCount, result.SearchTime.Round(time.Microsecond)))

	if len(result.Suggestions) > 0 {
		printMuted("Related: " + strings.Join(result.Suggestions, ", "))
	}
}

func printJSON(result search.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&doSync, "sync", "s", false, "synchronize the catalog cache")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVar(&sortKey, "sort", "relevance", "sort order: relevance, date, popularity, alphabetical")
	rootCmd.PersistentFlags().IntVar(&limit, "limit", 0, "maximum results per page (default 50)")
	rootCmd.PersistentFlags().IntVar(&offset, "offset", 0, "results to skip before the first page entry")
	rootCmd.PersistentFlags().IntVar(&minStars, "min-stars", 0, "only books with at least this many stars")
	rootCmd.PersistentFlags().StringSliceVar(&catNames, "category", nil, "filter by category (repeatable)")
	rootCmd.PersistentFlags().StringSliceVar(&authors, "author", nil, "filter by author (repeatable)")
	rootCmd.PersistentFlags().StringSliceVar(&langs, "language", nil, "filter by language (repeatable)")
	rootCmd.PersistentFlags().StringVar(&vis, "visibility", "", "filter by visibility: public or private")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
		logger.Debug("Verbose mode enabled")
	}
}

func main() {
	rootCmd.Flags().SetInterspersed(true)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
