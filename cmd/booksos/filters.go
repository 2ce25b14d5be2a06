package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ItsTraderbaby/books-os/internal/config"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the filter values present in the catalog",
	Long: `Derive the distinct categories, authors, languages and years across
the whole catalog. Useful for building filter expressions:

  booksos --category AI_ML --language Python --min-stars 10 <query>`,
	RunE: runFilters,
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}

func runFilters(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	engine, _, err := loadEngine(cfg)
	if err != nil {
		return err
	}

	opts := engine.AvailableFilters()

	printTitle("Available Filters")

	fmt.Println("Categories:")
	for _, c := range opts.Categories {
		printBullet(string(c))
	}

	fmt.Println("\nAuthors:")
	for _, a := range opts.Authors {
		printBullet(a)
	}

	fmt.Println("\nLanguages:")
	for _, l := range opts.Languages {
		printBullet(l)
	}

	fmt.Println("\nYears:")
	for _, y := range opts.Years {
		printBullet(strconv.Itoa(y))
	}

	return nil
}
