package main

import (
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find [query...]",
	Short: "Search the catalog (alias for direct search)",
	Long: `Search cached books by relevance.
Supports multi-word queries; with no query the whole catalog is listed
in general relevance order.

This command is an alias for the direct search: 'booksos <query>'
You can use either 'booksos find react' or just 'booksos react'

Examples:
  booksos find react
  booksos find machine learning
  booksos find dashboard --sort popularity`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(findCmd)
}
