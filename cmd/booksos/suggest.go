package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ItsTraderbaby/books-os/internal/config"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <partial>",
	Short: "Show query suggestions for a partial input",
	Long: `Match a partial query against titles, authors, topics and languages
across the whole catalog. Up to five suggestions are printed.

Examples:
  booksos suggest rea
  booksos suggest py`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	engine, _, err := loadEngine(cfg)
	if err != nil {
		return err
	}

	partial := strings.Join(args, " ")
	suggestions := engine.Suggestions(partial)
	if len(suggestions) == 0 {
		printMuted(fmt.Sprintf("No suggestions for %q", partial))
		return nil
	}

	for _, s := range suggestions {
		printBullet(s)
	}
	return nil
}
