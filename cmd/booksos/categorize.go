package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ItsTraderbaby/books-os/internal/category"
	"github.com/ItsTraderbaby/books-os/internal/config"
	"github.com/ItsTraderbaby/books-os/internal/github"
	"github.com/ItsTraderbaby/books-os/internal/model"
	"github.com/ItsTraderbaby/books-os/internal/section"
)

var (
	catDescription string
	catLanguage    string
	catTopics      []string
	catFiles       []string
	catRemote      bool
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize <name|owner/name>",
	Short: "Categorize a repository and show the matched signals",
	Long: `Run the rule engine against a repository and print the assigned
category, its confidence, the matched rule fragments and the shelf
section the category maps to.

By default the record is built from the given name and flags. With
--remote an owner/name argument is fetched from GitHub first.

Examples:
  booksos categorize my-flutter-app --language Dart --topic flutter --topic mobile
  booksos categorize --remote charmbracelet/lipgloss`,
	Args: cobra.ExactArgs(1),
	RunE: runCategorize,
}

func init() {
	categorizeCmd.Flags().StringVar(&catDescription, "description", "", "repository description")
	categorizeCmd.Flags().StringVar(&catLanguage, "language", "", "primary language")
	categorizeCmd.Flags().StringSliceVar(&catTopics, "topic", nil, "repository topic (repeatable)")
	categorizeCmd.Flags().StringSliceVar(&catFiles, "file", nil, "repository filename (repeatable)")
	categorizeCmd.Flags().BoolVar(&catRemote, "remote", false, "fetch the repository from GitHub first")
	rootCmd.AddCommand(categorizeCmd)
}

func runCategorize(cmd *cobra.Command, args []string) error {
	repo := model.Repository{
		Name:        args[0],
		Description: catDescription,
		Language:    catLanguage,
		Topics:      catTopics,
		Files:       catFiles,
	}

	if catRemote {
		fetched, err := fetchRemoteRepository(args[0])
		if err != nil {
			return err
		}
		repo = fetched
	}

	service := category.NewService()
	mapping := section.NewMapping()

	match := service.Categorize(repo)

	printTitle("Categorization")
	fmt.Printf("Repository: %s\n", repo.Name)
	fmt.Printf("Category:   %s\n", match.Category)
	fmt.Printf("Confidence: %.2f\n", match.Confidence)
	fmt.Printf("Section:    %s\n", mapping.SectionIDForCategory(match.Category))

	if len(match.MatchedRules) > 0 {
		fmt.Println("\nMatched signals:")
		for _, m := range match.MatchedRules {
			printBullet(m)
		}
	}

	return nil
}

func fetchRemoteRepository(fullName string) (model.Repository, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 {
		return model.Repository{}, fmt.Errorf("--remote requires an owner/name argument, got %q", fullName)
	}

	cfg, err := config.Load()
	if err != nil {
		return model.Repository{}, fmt.Errorf("configuration error: %w", err)
	}

	client, err := github.New(cfg.GitHub.Token, cfg.GitHub.GetTimeout())
	if err != nil {
		return model.Repository{}, fmt.Errorf("GitHub client error: %w", err)
	}

	ctx := context.Background()
	repos, err := client.FetchRepositories(ctx, github.FetchOptions{
		Username:        parts[0],
		MaxRepositories: cfg.Sync.MaxRepositories,
		IncludePrivate:  cfg.Sync.IncludePrivate,
	})
	if err != nil {
		return model.Repository{}, fmt.Errorf("fetch error: %w", err)
	}

	for _, r := range repos {
		if strings.EqualFold(r.Name, parts[1]) {
			if readme, err := client.FetchReadme(ctx, r.Owner, r.Name); err == nil {
				r.Readme = readme
			}
			return r, nil
		}
	}
	return model.Repository{}, fmt.Errorf("repository %s not found", fullName)
}
