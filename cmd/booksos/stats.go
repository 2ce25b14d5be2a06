package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ItsTraderbaby/books-os/internal/cache"
	"github.com/ItsTraderbaby/books-os/internal/config"
	"github.com/ItsTraderbaby/books-os/internal/section"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog and shelf statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	engine, _, err := loadEngine(cfg)
	if err != nil {
		return err
	}

	stats := engine.Stats()
	books := engine.Books()
	mapping := section.NewMapping()

	printTitle("Catalog Statistics")
	fmt.Printf("Books:          %d\n", stats.TotalBooks)
	fmt.Printf("Indexed tokens: %d\n", stats.IndexedTokens)
	fmt.Printf("Recent queries: %d\n", stats.RecentSearches)

	cacheManager := cache.New(cfg.Cache.Dir)
	if lastSync, err := cacheManager.LoadLastSyncTime(); err == nil && !lastSync.IsZero() {
		fmt.Printf("Last sync:      %s (%v ago)\n",
			lastSync.Format(time.RFC3339), time.Since(lastSync).Round(time.Minute))
	}

	fmt.Println("\nBooks per shelf:")
	bySection := mapping.CountBySection(books)
	for _, s := range mapping.Sections() {
		if n := bySection[s.ID]; n > 0 {
			printBullet(fmt.Sprintf("%s: %d", s.Name, n))
		}
	}

	return nil
}
