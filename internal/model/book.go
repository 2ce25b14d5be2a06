package model

import (
	"strings"
	"time"
)

// Book is a cataloged project presented as a library item. Most fields
// beyond ID and Title are optional and default to their zero values.
type Book struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Subtitle    string     `yaml:"subtitle,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Author      string     `yaml:"author"`
	Category    Category   `yaml:"category"`
	Tags        []string   `yaml:"tags,omitempty"`
	Meta        GitHubMeta `yaml:"meta,omitempty"`
}

// GitHubMeta carries the repository-derived metadata bundle attached to
// a book. Zero timestamps mean "unknown" and contribute nothing to
// recency or year facets.
type GitHubMeta struct {
	Language   string    `yaml:"language,omitempty"`
	Topics     []string  `yaml:"topics,omitempty"`
	Stars      int       `yaml:"stars,omitempty"`
	Forks      int       `yaml:"forks,omitempty"`
	Watchers   int       `yaml:"watchers,omitempty"`
	OpenIssues int       `yaml:"open_issues,omitempty"`
	License    string    `yaml:"license,omitempty"`
	Private    bool      `yaml:"private,omitempty"`
	HTMLURL    string    `yaml:"html_url,omitempty"`
	CreatedAt  time.Time `yaml:"created_at,omitempty"`
	UpdatedAt  time.Time `yaml:"updated_at,omitempty"`
	Readme     string    `yaml:"readme,omitempty"`
}

// SearchableText returns the lowercased concatenation of every text
// field that participates in indexing.
func (b Book) SearchableText() string {
	parts := []string{
		b.Title,
		b.Subtitle,
		b.Description,
		b.Author,
		strings.Join(b.Tags, " "),
		strings.Join(b.Meta.Topics, " "),
		b.Meta.Language,
		b.Meta.Readme,
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// HasReadme reports whether the book carries a non-empty readme body.
func (b Book) HasReadme() bool {
	return strings.TrimSpace(b.Meta.Readme) != ""
}
