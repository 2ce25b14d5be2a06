package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ItsTraderbaby/books-os/internal/model"
)

const booksFileName = "books.yaml"

// Cache manages the local book catalog cache
type Cache struct {
	dir string
}

// New creates a new Cache instance
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// EnsureDir ensures the cache directory exists
func (c *Cache) EnsureDir() error {
	return os.MkdirAll(c.dir, 0755)
}

// BooksPath returns the full path to the catalog cache file
func (c *Cache) BooksPath() string {
	return filepath.Join(c.dir, booksFileName)
}

// WriteBooks writes the catalog to the cache. The file is written to a
// temp path first and renamed so readers never see a partial catalog.
func (c *Cache) WriteBooks(books []model.Book) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := yaml.Marshal(books)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	tmpPath := c.BooksPath() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmpPath, c.BooksPath()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}

// ReadBooks reads the catalog from cache
func (c *Cache) ReadBooks() ([]model.Book, error) {
	data, err := os.ReadFile(c.BooksPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog cache not found, run 'booksos sync' first")
		}
		return nil, fmt.Errorf("failed to open cache file: %w", err)
	}

	var books []model.Book
	if err := yaml.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return books, nil
}

// Stats returns the number of cached books
func (c *Cache) Stats() (int, error) {
	books, err := c.ReadBooks()
	if err != nil {
		return 0, err
	}
	return len(books), nil
}

// Exists checks if the cache file exists
func (c *Cache) Exists() bool {
	_, err := os.Stat(c.BooksPath())
	return err == nil
}

// SaveLastSyncTime saves the last successful sync timestamp
func (c *Cache) SaveLastSyncTime(t time.Time) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	timestampPath := filepath.Join(c.dir, ".last_sync_time")
	data := []byte(t.Format(time.RFC3339))

	if err := os.WriteFile(timestampPath, data, 0644); err != nil {
		return fmt.Errorf("failed to save sync timestamp: %w", err)
	}

	return nil
}

// LoadLastSyncTime loads the last successful sync timestamp
// Returns zero time if file doesn't exist (first sync)
func (c *Cache) LoadLastSyncTime() (time.Time, error) {
	timestampPath := filepath.Join(c.dir, ".last_sync_time")

	data, err := os.ReadFile(timestampPath)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to read sync timestamp: %w", err)
	}

	t, err := time.Parse(time.RFC3339, string(data))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse sync timestamp: %w", err)
	}

	return t, nil
}

// SaveUsername saves the GitHub username the catalog was synced for
func (c *Cache) SaveUsername(username string) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	usernamePath := filepath.Join(c.dir, ".username")
	if err := os.WriteFile(usernamePath, []byte(username), 0644); err != nil {
		return fmt.Errorf("failed to save username: %w", err)
	}

	return nil
}

// LoadUsername loads the cached GitHub username
// Returns empty string if file doesn't exist
func (c *Cache) LoadUsername() (string, error) {
	usernamePath := filepath.Join(c.dir, ".username")

	data, err := os.ReadFile(usernamePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read username: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}
