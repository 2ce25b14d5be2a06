package search

import (
	"time"

	"github.com/ItsTraderbaby/books-os/internal/model"
)

// SortKey selects the result ordering. Unknown values are accepted and
// leave the relevance order untouched.
type SortKey string

const (
	SortRelevance    SortKey = "relevance"
	SortDate         SortKey = "date"
	SortPopularity   SortKey = "popularity"
	SortAlphabetical SortKey = "alphabetical"
)

// Visibility narrows results to public or private books. The empty
// string matches both.
type Visibility string

const (
	VisibilityAny     Visibility = ""
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Filters is the conjunctive filter set applied to a search: a book
// must satisfy every active filter. Zero values deactivate a filter.
type Filters struct {
	Categories []model.Category
	Authors    []string
	Languages  []string
	DateFrom   time.Time
	DateTo     time.Time
	Visibility Visibility
	SortBy     SortKey
	HasReadme  *bool
	MinStars   *int
}

// Query is one search request. Limit defaults to 50 when non-positive;
// Offset defaults to 0.
type Query struct {
	Text    string
	Filters Filters
	Limit   int
	Offset  int
}

// Facets counts the filtered (pre-pagination) result set along four
// independent dimensions.
type Facets struct {
	Categories map[model.Category]int
	Authors    map[string]int
	Languages  map[string]int
	Years      map[int]int
}

// Result is the outcome of one search. TotalCount is the filtered
// match count before pagination.
type Result struct {
	Books       []model.Book
	TotalCount  int
	Facets      Facets
	Suggestions []string
	SearchTime  time.Duration
}

// FilterOptions lists the distinct filter values present across the
// whole collection, for populating option lists.
type FilterOptions struct {
	Categories []model.Category
	Authors    []string
	Languages  []string
	Years      []int
}

// Stats summarizes the engine's current state.
type Stats struct {
	TotalBooks     int
	IndexedTokens  int
	RecentSearches int
}
