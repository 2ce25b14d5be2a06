// Package history persists the recent-search list between runs
package history

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// maxEntries bounds the stored history, most recent first
const maxEntries = 10

// Entry is one recorded search
type Entry struct {
	Text     string
	LastUsed time.Time
}

// History manages the persisted recent-search list
type History struct {
	entries  []Entry
	mu       sync.RWMutex
	filePath string
	dirty    bool
}

// New creates a new History instance with the given file path
func New(filePath string) *History {
	return &History{filePath: filePath}
}

// Load reads the history from disk. A missing file is not an error.
func (h *History) Load() error {
	cleanPath := filepath.Clean(h.filePath)
	file, err := os.Open(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	if err := gob.NewDecoder(file).Decode(&entries); err != nil {
		return fmt.Errorf("failed to decode history: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	h.entries = entries
	h.dirty = false
	return nil
}

// Record puts a search at the front of the list, dropping any earlier
// occurrence of the same text. Empty searches are ignored.
func (h *History) Record(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	kept := make([]Entry, 0, len(h.entries)+1)
	kept = append(kept, Entry{Text: text, LastUsed: time.Now()})
	for _, e := range h.entries {
		if e.Text != text {
			kept = append(kept, e)
		}
	}
	if len(kept) > maxEntries {
		kept = kept[:maxEntries]
	}
	h.entries = kept
	h.dirty = true
}

// Texts returns the recorded searches, most recent first.
func (h *History) Texts() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Text
	}
	return out
}

// Replace overwrites the list with the given searches, most recent
// first, keeping their prior timestamps where known.
func (h *History) Replace(texts []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	known := make(map[string]time.Time, len(h.entries))
	for _, e := range h.entries {
		known[e.Text] = e.LastUsed
	}

	entries := make([]Entry, 0, len(texts))
	for _, t := range texts {
		if len(entries) >= maxEntries {
			break
		}
		used, ok := known[t]
		if !ok {
			used = time.Now()
		}
		entries = append(entries, Entry{Text: t, LastUsed: used})
	}
	h.entries = entries
	h.dirty = true
}

// Clear removes all history
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	h.dirty = true
}

// Stats returns the number of stored searches
func (h *History) Stats() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Save writes the history to disk via a temp file and atomic rename.
// A clean history is not rewritten.
func (h *History) Save() error {
	h.mu.RLock()
	if !h.dirty {
		h.mu.RUnlock()
		return nil
	}
	h.mu.RUnlock()

	cleanPath := filepath.Clean(h.filePath)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0750); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tempPath := cleanPath + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	h.mu.RLock()
	err = gob.NewEncoder(file).Encode(h.entries)
	h.mu.RUnlock()

	if err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to encode history: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, cleanPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	h.mu.Lock()
	h.dirty = false
	h.mu.Unlock()

	return nil
}
