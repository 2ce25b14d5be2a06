package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ItsTraderbaby/books-os/internal/model"
)

func testBooks() []model.Book {
	return []model.Book{
		{
			ID:       "octocat/react-dashboard",
			Title:    "React Dashboard",
			Author:   "octocat",
			Category: model.CategoryWebApps,
			Tags:     []string{"react", "typescript"},
			Meta: model.GitHubMeta{
				Language:  "TypeScript",
				Stars:     42,
				License:   "MIT",
				CreatedAt: time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			ID:       "octocat/game-engine",
			Title:    "Game Engine",
			Author:   "octocat",
			Category: model.CategoryGames,
		},
	}
}

func TestWriteAndReadBooks(t *testing.T) {
	c := New(t.TempDir())

	books := testBooks()
	if err := c.WriteBooks(books); err != nil {
		t.Fatalf("WriteBooks failed: %v", err)
	}

	loaded, err := c.ReadBooks()
	if err != nil {
		t.Fatalf("ReadBooks failed: %v", err)
	}

	if len(loaded) != len(books) {
		t.Fatalf("len(loaded) = %d, want %d", len(loaded), len(books))
	}
	if loaded[0].ID != books[0].ID {
		t.Errorf("ID = %q, want %q", loaded[0].ID, books[0].ID)
	}
	if loaded[0].Category != model.CategoryWebApps {
		t.Errorf("Category = %q, want %q", loaded[0].Category, model.CategoryWebApps)
	}
	if loaded[0].Meta.Stars != 42 {
		t.Errorf("Stars = %d, want 42", loaded[0].Meta.Stars)
	}
	if !loaded[0].Meta.CreatedAt.Equal(books[0].Meta.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", loaded[0].Meta.CreatedAt, books[0].Meta.CreatedAt)
	}
}

func TestWriteBooksCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c := New(dir)

	if err := c.WriteBooks(testBooks()); err != nil {
		t.Fatalf("WriteBooks failed: %v", err)
	}

	if _, err := os.Stat(c.BooksPath()); err != nil {
		t.Errorf("cache file missing after write: %v", err)
	}
}

func TestWriteBooksLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)

	if err := c.WriteBooks(testBooks()); err != nil {
		t.Fatalf("WriteBooks failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file %q left behind", e.Name())
		}
	}
}

func TestReadBooksMissing(t *testing.T) {
	c := New(t.TempDir())

	_, err := c.ReadBooks()
	if err == nil {
		t.Fatal("ReadBooks on empty cache dir should fail")
	}
	if !strings.Contains(err.Error(), "booksos sync") {
		t.Errorf("error = %q, want a hint to run sync", err)
	}
}

func TestReadBooksCorrupted(t *testing.T) {
	c := New(t.TempDir())
	if err := c.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if err := os.WriteFile(c.BooksPath(), []byte("[unclosed, sequence"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := c.ReadBooks(); err == nil {
		t.Error("ReadBooks on corrupted file should fail")
	}
}

func TestStats(t *testing.T) {
	c := New(t.TempDir())

	if err := c.WriteBooks(testBooks()); err != nil {
		t.Fatalf("WriteBooks failed: %v", err)
	}

	count, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Stats() = %d, want 2", count)
	}
}

func TestExists(t *testing.T) {
	c := New(t.TempDir())

	if c.Exists() {
		t.Error("Exists() = true before any write")
	}

	if err := c.WriteBooks(testBooks()); err != nil {
		t.Fatalf("WriteBooks failed: %v", err)
	}

	if !c.Exists() {
		t.Error("Exists() = false after write")
	}
}

func TestSyncTimeRoundTrip(t *testing.T) {
	c := New(t.TempDir())

	// Missing file means first sync
	loaded, err := c.LoadLastSyncTime()
	if err != nil {
		t.Fatalf("LoadLastSyncTime failed: %v", err)
	}
	if !loaded.IsZero() {
		t.Errorf("LoadLastSyncTime before save = %v, want zero time", loaded)
	}

	saved := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	if err := c.SaveLastSyncTime(saved); err != nil {
		t.Fatalf("SaveLastSyncTime failed: %v", err)
	}

	loaded, err = c.LoadLastSyncTime()
	if err != nil {
		t.Fatalf("LoadLastSyncTime failed: %v", err)
	}
	if !loaded.Equal(saved) {
		t.Errorf("LoadLastSyncTime() = %v, want %v", loaded, saved)
	}
}

func TestLoadLastSyncTimeCorrupted(t *testing.T) {
	c := New(t.TempDir())
	if err := c.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	path := filepath.Join(c.dir, ".last_sync_time")
	if err := os.WriteFile(path, []byte("not a timestamp"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := c.LoadLastSyncTime(); err == nil {
		t.Error("LoadLastSyncTime on corrupted file should fail")
	}
}

func TestUsernameRoundTrip(t *testing.T) {
	c := New(t.TempDir())

	// Missing file yields empty username
	name, err := c.LoadUsername()
	if err != nil {
		t.Fatalf("LoadUsername failed: %v", err)
	}
	if name != "" {
		t.Errorf("LoadUsername before save = %q, want empty", name)
	}

	if err := c.SaveUsername("octocat"); err != nil {
		t.Fatalf("SaveUsername failed: %v", err)
	}

	name, err = c.LoadUsername()
	if err != nil {
		t.Fatalf("LoadUsername failed: %v", err)
	}
	if name != "octocat" {
		t.Errorf("LoadUsername() = %q, want %q", name, "octocat")
	}
}
