// Package search provides the in-memory catalog search engine:
// an inverted index over book text, multi-factor relevance ranking,
// conjunctive filtering, faceting, pagination, suggestions and a
// bounded search history.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/ItsTraderbaby/books-os/internal/model"
	"github.com/ItsTraderbaby/books-os/internal/rank"
)

const (
	maxHistorySize = 10
	defaultLimit   = 50
	maxSuggestions = 5
)

// Engine owns a book collection and its inverted index. The index is
// rebuilt from scratch on every mutation, so it always exactly
// reflects the current collection. Not safe for concurrent use; each
// caller gets its own instance.
type Engine struct {
	books   []model.Book
	index   map[string]map[string]struct{}
	ranking *rank.Ranking
	history []string
}

// NewEngine returns an empty Engine. A nil ranking gets the default
// weights.
func NewEngine(ranking *rank.Ranking) *Engine {
	if ranking == nil {
		ranking = rank.NewRanking()
	}
	return &Engine{
		index:   make(map[string]map[string]struct{}),
		ranking: ranking,
	}
}

// Ranking exposes the engine's ranking instance for weight tuning.
func (e *Engine) Ranking() *rank.Ranking {
	return e.ranking
}

// SetBooks replaces the whole collection and rebuilds the index.
func (e *Engine) SetBooks(books []model.Book) {
	e.books = make([]model.Book, len(books))
	copy(e.books, books)
	e.rebuildIndex()
}

// AddBooks appends to the collection and rebuilds the index.
func (e *Engine) AddBooks(books []model.Book) {
	e.books = append(e.books, books...)
	e.rebuildIndex()
}

// RemoveBooks drops the given ids from the collection and rebuilds
// the index. Unknown ids are ignored.
func (e *Engine) RemoveBooks(ids []string) {
	excluded := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		excluded[id] = struct{}{}
	}
	kept := e.books[:0]
	for _, b := range e.books {
		if _, ok := excluded[b.ID]; !ok {
			kept = append(kept, b)
		}
	}
	e.books = kept
	e.rebuildIndex()
}

// Books returns a copy of the current collection.
func (e *Engine) Books() []model.Book {
	out := make([]model.Book, len(e.books))
	copy(out, e.books)
	return out
}

func (e *Engine) rebuildIndex() {
	e.index = make(map[string]map[string]struct{})
	for _, b := range e.books {
		for _, token := range tokenize(b.SearchableText()) {
			ids, ok := e.index[token]
			if !ok {
				ids = make(map[string]struct{})
				e.index[token] = ids
			}
			ids[b.ID] = struct{}{}
		}
	}
}

// tokenize lowercases text, replaces punctuation with whitespace and
// keeps tokens longer than two characters.
func tokenize(text string) []string {
	var sb strings.Builder
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(' ')
		}
	}
	var tokens []string
	for _, t := range strings.Fields(sb.String()) {
		if len(t) > 2 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Search runs one query through ranking, filtering, faceting, sorting
// and pagination. It never fails; malformed filter values just narrow
// or widen the result set per the conjunctive semantics.
func (e *Engine) Search(q Query) Result {
	start := time.Now()

	text := strings.TrimSpace(q.Text)
	if text != "" {
		e.recordSearch(text)
	}

	var results []model.Book
	if text != "" {
		results = e.ranking.Rank(e.books, text)
	} else {
		results = make([]model.Book, len(e.books))
		copy(results, e.books)
	}

	results = applyFilters(results, q.Filters)
	facets := computeFacets(results)
	results = e.sortResults(results, text, q.Filters.SortBy)
	totalCount := len(results)

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(results) {
		offset = len(results)
	}
	end := offset + limit
	if end > len(results) {
		end = len(results)
	}
	page := make([]model.Book, end-offset)
	copy(page, results[offset:end])

	return Result{
		Books:       page,
		TotalCount:  totalCount,
		Facets:      facets,
		Suggestions: e.Suggestions(text),
		SearchTime:  time.Since(start),
	}
}

func applyFilters(books []model.Book, f Filters) []model.Book {
	out := books[:0:0]
	for _, b := range books {
		if matchesFilters(b, f) {
			out = append(out, b)
		}
	}
	return out
}

func matchesFilters(b model.Book, f Filters) bool {
	if len(f.Categories) > 0 && !containsCategory(f.Categories, b.Category) {
		return false
	}
	if len(f.Authors) > 0 && !containsString(f.Authors, b.Author) {
		return false
	}
	if len(f.Languages) > 0 && !containsString(f.Languages, b.Meta.Language) {
		return false
	}
	// Date range only applies to books that carry a creation date;
	// undated books pass through.
	if !b.Meta.CreatedAt.IsZero() {
		if !f.DateFrom.IsZero() && b.Meta.CreatedAt.Before(f.DateFrom) {
			return false
		}
		if !f.DateTo.IsZero() && b.Meta.CreatedAt.After(f.DateTo) {
			return false
		}
	}
	switch f.Visibility {
	case VisibilityPublic:
		if b.Meta.Private {
			return false
		}
	case VisibilityPrivate:
		if !b.Meta.Private {
			return false
		}
	}
	if f.HasReadme != nil && b.HasReadme() != *f.HasReadme {
		return false
	}
	if f.MinStars != nil && b.Meta.Stars < *f.MinStars {
		return false
	}
	return true
}

func containsCategory(list []model.Category, c model.Category) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func computeFacets(books []model.Book) Facets {
	f := Facets{
		Categories: make(map[model.Category]int),
		Authors:    make(map[string]int),
		Languages:  make(map[string]int),
		Years:      make(map[int]int),
	}
	for _, b := range books {
		f.Categories[b.Category]++
		f.Authors[b.Author]++
		if b.Meta.Language != "" {
			f.Languages[b.Meta.Language]++
		}
		if !b.Meta.CreatedAt.IsZero() {
			f.Years[b.Meta.CreatedAt.Year()]++
		}
	}
	return f
}

// sortResults applies the requested sort. Unknown keys fall into the
// relevance arm: a no-op when a text query already ranked the list,
// a general-relevance sort otherwise.
func (e *Engine) sortResults(books []model.Book, text string, key SortKey) []model.Book {
	switch key {
	case SortDate:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Meta.UpdatedAt.After(books[j].Meta.UpdatedAt)
		})
	case SortPopularity:
		sort.SliceStable(books, func(i, j int) bool {
			if books[i].Meta.Stars != books[j].Meta.Stars {
				return books[i].Meta.Stars > books[j].Meta.Stars
			}
			return books[i].Meta.Forks > books[j].Meta.Forks
		})
	case SortAlphabetical:
		sort.SliceStable(books, func(i, j int) bool {
			return strings.ToLower(books[i].Title) < strings.ToLower(books[j].Title)
		})
	default:
		if text == "" {
			return e.ranking.RankGeneral(books)
		}
	}
	return books
}

// Suggestions matches the partial query against titles, authors,
// topics and languages across the whole collection. Exact matches of
// the query itself are excluded; at most five are returned, sorted.
func (e *Engine) Suggestions(partial string) []string {
	lower := strings.ToLower(strings.TrimSpace(partial))
	if lower == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(candidate string) {
		if len(out) >= maxSuggestions || candidate == "" {
			return
		}
		cl := strings.ToLower(candidate)
		if cl == lower || !strings.Contains(cl, lower) {
			return
		}
		if _, ok := seen[cl]; ok {
			return
		}
		seen[cl] = struct{}{}
		out = append(out, candidate)
	}

	for _, b := range e.books {
		add(b.Title)
		add(b.Author)
		for _, t := range b.Meta.Topics {
			add(t)
		}
		add(b.Meta.Language)
	}

	sort.Strings(out)
	return out
}

// AvailableFilters derives the distinct filter values present across
// the entire unfiltered collection. Categories, authors and languages
// sort ascending, years descending.
func (e *Engine) AvailableFilters() FilterOptions {
	var opts FilterOptions
	seenCat := make(map[model.Category]struct{})
	seenAuthor := make(map[string]struct{})
	seenLang := make(map[string]struct{})
	seenYear := make(map[int]struct{})

	for _, b := range e.books {
		if _, ok := seenCat[b.Category]; !ok {
			seenCat[b.Category] = struct{}{}
			opts.Categories = append(opts.Categories, b.Category)
		}
		if b.Author != "" {
			if _, ok := seenAuthor[b.Author]; !ok {
				seenAuthor[b.Author] = struct{}{}
				opts.Authors = append(opts.Authors, b.Author)
			}
		}
		if b.Meta.Language != "" {
			if _, ok := seenLang[b.Meta.Language]; !ok {
				seenLang[b.Meta.Language] = struct{}{}
				opts.Languages = append(opts.Languages, b.Meta.Language)
			}
		}
		if !b.Meta.CreatedAt.IsZero() {
			year := b.Meta.CreatedAt.Year()
			if _, ok := seenYear[year]; !ok {
				seenYear[year] = struct{}{}
				opts.Years = append(opts.Years, year)
			}
		}
	}

	sort.Slice(opts.Categories, func(i, j int) bool {
		return opts.Categories[i] < opts.Categories[j]
	})
	sort.Strings(opts.Authors)
	sort.Strings(opts.Languages)
	sort.Sort(sort.Reverse(sort.IntSlice(opts.Years)))
	return opts
}

func (e *Engine) recordSearch(text string) {
	kept := e.history[:0]
	for _, h := range e.history {
		if h != text {
			kept = append(kept, h)
		}
	}
	e.history = append([]string{text}, kept...)
	if len(e.history) > maxHistorySize {
		e.history = e.history[:maxHistorySize]
	}
}

// RecentSearches returns a copy of the bounded history,
// most recent first.
func (e *Engine) RecentSearches() []string {
	out := make([]string, len(e.history))
	copy(out, e.history)
	return out
}

// SetRecentSearches seeds the history, trimming to the bound. Used to
// restore a persisted history between runs.
func (e *Engine) SetRecentSearches(searches []string) {
	if len(searches) > maxHistorySize {
		searches = searches[:maxHistorySize]
	}
	e.history = make([]string, len(searches))
	copy(e.history, searches)
}

// ClearHistory empties the search history.
func (e *Engine) ClearHistory() {
	e.history = nil
}

// Stats reports collection and index sizes.
func (e *Engine) Stats() Stats {
	return Stats{
		TotalBooks:     len(e.books),
		IndexedTokens:  len(e.index),
		RecentSearches: len(e.history),
	}
}

// BooksByCategory returns all books in one category, collection order.
func (e *Engine) BooksByCategory(c model.Category) []model.Book {
	var out []model.Book
	for _, b := range e.books {
		if b.Category == c {
			out = append(out, b)
		}
	}
	return out
}

// BooksByIDs resolves ids to books, preserving the requested order and
// skipping unknown ids.
func (e *Engine) BooksByIDs(ids []string) []model.Book {
	byID := make(map[string]model.Book, len(e.books))
	for _, b := range e.books {
		byID[b.ID] = b
	}
	var out []model.Book
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			out = append(out, b)
		}
	}
	return out
}
