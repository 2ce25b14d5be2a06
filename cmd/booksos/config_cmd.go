package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ItsTraderbaby/books-os/internal/config"
	"github.com/ItsTraderbaby/books-os/internal/github"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure GitHub connection settings",
	Long: `Interactive configuration wizard to set up the GitHub username and
access token. Creates or updates the configuration file at
~/.config/booksos/config.yaml`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	printTitle("Books-OS Configuration Wizard")

	// Load existing config if available
	existingCfg, err := config.Load()
	if err != nil {
		existingCfg = &config.Config{}
	}

	// Get GitHub username
	fmt.Printf("GitHub username")
	if existingCfg.GitHub.Username != "" {
		fmt.Printf(" [%s]", existingCfg.GitHub.Username)
	}
	fmt.Print(": ")

	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		username = existingCfg.GitHub.Username
	}

	// Get GitHub token (optional for public repositories)
	fmt.Printf("Personal Access Token (optional)")
	if existingCfg.GitHub.Token != "" {
		fmt.Printf(" [%s]", maskToken(existingCfg.GitHub.Token))
	}
	fmt.Print(": ")

	token, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		token = existingCfg.GitHub.Token
	}

	if username == "" && token == "" {
		return fmt.Errorf("a GitHub username or token is required")
	}

	// Get timeout (optional)
	fmt.Printf("API timeout in seconds")
	if existingCfg.GitHub.Timeout > 0 {
		fmt.Printf(" [%d]", existingCfg.GitHub.Timeout)
	} else {
		fmt.Printf(" [30]")
	}
	fmt.Print(": ")

	timeoutStr, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	timeoutStr = strings.TrimSpace(timeoutStr)

	timeout := 30
	if timeoutStr != "" {
		if _, err := fmt.Sscanf(timeoutStr, "%d", &timeout); err != nil {
			printWarning(fmt.Sprintf("invalid timeout '%s', using default %d seconds", timeoutStr, 30))
			timeout = 30
		}
	} else if existingCfg.GitHub.Timeout > 0 {
		timeout = existingCfg.GitHub.Timeout
	}

	cfg := &config.Config{
		GitHub: config.GitHubConfig{
			Username: username,
			Token:    token,
			Timeout:  timeout,
		},
		Cache:   existingCfg.Cache,
		Sync:    existingCfg.Sync,
		Ranking: existingCfg.Ranking,
	}

	// A token can be verified against the API; a bare username cannot
	if token != "" {
		fmt.Println("\nTesting connection to GitHub...")

		client, err := github.New(cfg.GitHub.Token, cfg.GitHub.GetTimeout())
		if err != nil {
			return fmt.Errorf("failed to create GitHub client: %w", err)
		}
		if err := client.TestConnection(context.Background()); err != nil {
			return fmt.Errorf("connection test failed: %w", err)
		}
		printSuccess("Connection successful!")
	}

	// Save configuration
	configDir := filepath.Join(os.Getenv("HOME"), ".config", "booksos")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printSuccess(fmt.Sprintf("Configuration saved to %s", configPath))
	fmt.Println("\nYou can now run 'booksos --sync' to fetch repositories.")

	return nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "****" + token[len(token)-4:]
}
