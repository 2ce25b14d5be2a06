package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ItsTraderbaby/books-os/internal/rank"
)

// ErrConfigNotFound is returned when no configuration is found
var ErrConfigNotFound = errors.New("configuration not found")

// Config holds the application configuration
type Config struct {
	GitHub        GitHubConfig  `mapstructure:"github" yaml:"github"`
	Cache         CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Sync          SyncConfig    `mapstructure:"sync" yaml:"sync"`
	Ranking       RankingConfig `mapstructure:"ranking" yaml:"ranking"`
	ExcludedRepos []string      `mapstructure:"excluded_repos" yaml:"excluded_repos,omitempty"`
}

// GitHubConfig holds GitHub-specific settings
type GitHubConfig struct {
	Username string `mapstructure:"username" yaml:"username"`
	Token    string `mapstructure:"token" yaml:"token"`
	Timeout  int    `mapstructure:"timeout" yaml:"timeout"` // timeout in seconds
}

// CacheConfig holds cache-specific settings
type CacheConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir,omitempty"`
}

// SyncConfig controls how repositories are fetched into the catalog
type SyncConfig struct {
	MaxRepositories int  `mapstructure:"max_repositories" yaml:"max_repositories"`
	IncludeReadme   bool `mapstructure:"include_readme" yaml:"include_readme"`
	IncludePrivate  bool `mapstructure:"include_private" yaml:"include_private"`
}

// RankingConfig overrides individual relevance weights. Unset fields
// keep the built-in defaults.
type RankingConfig struct {
	Title        *float64 `mapstructure:"title" yaml:"title,omitempty"`
	Subtitle     *float64 `mapstructure:"subtitle" yaml:"subtitle,omitempty"`
	Description  *float64 `mapstructure:"description" yaml:"description,omitempty"`
	Author       *float64 `mapstructure:"author" yaml:"author,omitempty"`
	Tags         *float64 `mapstructure:"tags" yaml:"tags,omitempty"`
	Topics       *float64 `mapstructure:"topics" yaml:"topics,omitempty"`
	Readme       *float64 `mapstructure:"readme" yaml:"readme,omitempty"`
	Language     *float64 `mapstructure:"language" yaml:"language,omitempty"`
	Recency      *float64 `mapstructure:"recency" yaml:"recency,omitempty"`
	Popularity   *float64 `mapstructure:"popularity" yaml:"popularity,omitempty"`
	Completeness *float64 `mapstructure:"completeness" yaml:"completeness,omitempty"`
}

// Overrides converts the config section into ranking weight overrides.
func (r RankingConfig) Overrides() rank.WeightOverrides {
	return rank.WeightOverrides{
		Title:        r.Title,
		Subtitle:     r.Subtitle,
		Description:  r.Description,
		Author:       r.Author,
		Tags:         r.Tags,
		Topics:       r.Topics,
		Readme:       r.Readme,
		Language:     r.Language,
		Recency:      r.Recency,
		Popularity:   r.Popularity,
		Completeness: r.Completeness,
	}
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	configDir := filepath.Join(os.Getenv("HOME"), ".config", "booksos")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".") // Also check current directory

	viper.SetEnvPrefix("BOOKSOS")
	viper.AutomaticEnv()

	// Set defaults
	cacheDir := filepath.Join(os.Getenv("HOME"), ".cache", "booksos")
	viper.SetDefault("cache.dir", cacheDir)
	viper.SetDefault("github.timeout", 30)
	viper.SetDefault("sync.max_repositories", 200)
	viper.SetDefault("sync.include_readme", true)
	viper.SetDefault("sync.include_private", false)

	// Try to read config file (it's okay if it doesn't exist)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Cache.Dir != "" {
		cfg.Cache.Dir = expandPath(cfg.Cache.Dir)
	}

	// A username or a token is needed to list anything
	if cfg.GitHub.Username == "" && cfg.GitHub.Token == "" {
		return nil, ErrConfigNotFound
	}

	if cfg.GitHub.Timeout <= 0 {
		cfg.GitHub.Timeout = 30
	}
	if cfg.Sync.MaxRepositories <= 0 {
		cfg.Sync.MaxRepositories = 200
	}

	return &cfg, nil
}

// GetTimeout returns the GitHub API timeout as time.Duration
func (c *GitHubConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// expandPath expands ~ to home directory in paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home := os.Getenv("HOME")
		if len(path) == 1 {
			return home
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// EnsureConfigDir ensures the config directory exists
func EnsureConfigDir() error {
	configDir := filepath.Join(os.Getenv("HOME"), ".config", "booksos")
	return os.MkdirAll(configDir, 0755)
}

// ExampleConfigPath returns the path where the example config should be created
func ExampleConfigPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "booksos", "config.yaml.example")
}

// IsExcluded checks if a repository full name matches any excluded pattern
func (c *Config) IsExcluded(fullName string) bool {
	for _, pattern := range c.ExcludedRepos {
		// Support prefix matching for patterns ending with /*
		// e.g., "archived/*" matches "archived/old-site"
		if len(pattern) > 2 && pattern[len(pattern)-2:] == "/*" {
			prefix := pattern[:len(pattern)-2] + "/"
			if len(fullName) >= len(prefix) && fullName[:len(prefix)] == prefix {
				return true
			}
		} else {
			matched, err := filepath.Match(pattern, fullName)
			if err == nil && matched {
				return true
			}
		}
	}
	return false
}

// AddExclusion adds a new exclusion pattern if it doesn't already exist
func (c *Config) AddExclusion(pattern string) error {
	for _, existing := range c.ExcludedRepos {
		if existing == pattern {
			return nil
		}
	}
	c.ExcludedRepos = append(c.ExcludedRepos, pattern)
	return c.Save()
}

// RemoveExclusion removes an exclusion pattern
func (c *Config) RemoveExclusion(pattern string) error {
	newExcluded := make([]string, 0, len(c.ExcludedRepos))
	for _, p := range c.ExcludedRepos {
		if p != pattern {
			newExcluded = append(newExcluded, p)
		}
	}
	c.ExcludedRepos = newExcluded
	return c.Save()
}

// Save saves the current configuration to file
func (c *Config) Save() error {
	configDir := filepath.Join(os.Getenv("HOME"), ".config", "booksos")
	configPath := filepath.Join(configDir, "config.yaml")

	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("github.username", c.GitHub.Username)
	viper.Set("github.token", c.GitHub.Token)
	viper.Set("github.timeout", c.GitHub.Timeout)
	viper.Set("cache.dir", c.Cache.Dir)
	viper.Set("sync.max_repositories", c.Sync.MaxRepositories)
	viper.Set("sync.include_readme", c.Sync.IncludeReadme)
	viper.Set("sync.include_private", c.Sync.IncludePrivate)
	viper.Set("excluded_repos", c.ExcludedRepos)

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateExampleConfig creates an example configuration file
func CreateExampleConfig() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	exampleConfig := `# Books-OS Configuration File
# Place this file at ~/.config/booksos/config.yaml

github:
  # GitHub username whose repositories populate the catalog (required
  # unless a token is set, in which case the authenticated user is used)
  username: "your-github-username"

  # Personal Access Token (optional for public repositories)
  # Create one at: https://github.com/settings/tokens
  # Required scope for private repositories: repo
  token: ""

  # API timeout in seconds (optional, defaults to 30)
  timeout: 30

cache:
  # Cache directory (optional, defaults to ~/.cache/booksos)
  dir: "~/.cache/booksos"

sync:
  # Stop after this many repositories (optional, defaults to 200)
  max_repositories: 200

  # Fetch readme bodies for search indexing (optional, defaults to true)
  include_readme: true

  # Include private repositories, requires a token (defaults to false)
  include_private: false

# Relevance weight overrides (optional, defaults shown)
# ranking:
#   title: 10
#   subtitle: 8
#   description: 5
#   author: 4
#   tags: 5
#   topics: 5
#   readme: 2
#   language: 3
#   recency: 3
#   popularity: 2
#   completeness: 1

# Excluded repositories (supports wildcards on owner/name)
excluded_repos:
  # - "archived/*"
  # - "your-github-username/old-experiment"

# Environment variables can also be used:
# BOOKSOS_GITHUB_USERNAME=your-github-username
# BOOKSOS_GITHUB_TOKEN=your-token-here
`

	examplePath := ExampleConfigPath()
	return os.WriteFile(examplePath, []byte(exampleConfig), 0644)
}
