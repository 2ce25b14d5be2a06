// Package rank scores books against a text query using a weighted
// multi-factor model and orders result lists by that score.
package rank

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ItsTraderbaby/books-os/internal/model"
)

// Weights holds the multiplier applied to each relevance factor.
type Weights struct {
	Title        float64
	Subtitle     float64
	Description  float64
	Author       float64
	Tags         float64
	Topics       float64
	Readme       float64
	Language     float64
	Recency      float64
	Popularity   float64
	Completeness float64
}

// DefaultWeights returns the factor multipliers used unless a caller
// overrides them.
func DefaultWeights() Weights {
	return Weights{
		Title:        10,
		Subtitle:     8,
		Description:  5,
		Author:       4,
		Tags:         5,
		Topics:       5,
		Readme:       2,
		Language:     3,
		Recency:      3,
		Popularity:   2,
		Completeness: 1,
	}
}

// WeightOverrides selects individual weights to replace. Nil fields
// keep their current value.
type WeightOverrides struct {
	Title        *float64
	Subtitle     *float64
	Description  *float64
	Author       *float64
	Tags         *float64
	Topics       *float64
	Readme       *float64
	Language     *float64
	Recency      *float64
	Popularity   *float64
	Completeness *float64
}

// Ranking computes relevance scores for books. A zero-value Ranking is
// not usable; construct one with NewRanking.
type Ranking struct {
	weights Weights
}

// NewRanking returns a Ranking with the default weights.
func NewRanking() *Ranking {
	return &Ranking{weights: DefaultWeights()}
}

// SetWeights applies a partial override: only non-nil fields change.
func (r *Ranking) SetWeights(o WeightOverrides) {
	apply := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&r.weights.Title, o.Title)
	apply(&r.weights.Subtitle, o.Subtitle)
	apply(&r.weights.Description, o.Description)
	apply(&r.weights.Author, o.Author)
	apply(&r.weights.Tags, o.Tags)
	apply(&r.weights.Topics, o.Topics)
	apply(&r.weights.Readme, o.Readme)
	apply(&r.weights.Language, o.Language)
	apply(&r.weights.Recency, o.Recency)
	apply(&r.weights.Popularity, o.Popularity)
	apply(&r.weights.Completeness, o.Completeness)
}

// Weights returns the currently configured weights.
func (r *Ranking) Weights() Weights {
	return r.weights
}

// Score computes the full weighted relevance of one book for a query.
// An empty query leaves only the query-independent factors.
func (r *Ranking) Score(book model.Book, query string) float64 {
	words := tokenizeQuery(query)
	w := r.weights

	score := scoreField(book.Title, words) * w.Title
	score += scoreField(book.Subtitle, words) * w.Subtitle
	score += scoreField(book.Description, words) * w.Description
	score += scoreField(book.Author, words) * w.Author
	score += scoreArray(book.Tags, words) * w.Tags
	score += scoreArray(book.Meta.Topics, words) * w.Topics
	score += scoreField(book.Meta.Readme, words) * w.Readme
	score += scoreField(book.Meta.Language, words) * w.Language
	score += recencyScore(book.Meta.UpdatedAt) * w.Recency
	score += popularityScore(book.Meta) * w.Popularity
	score += completenessScore(book) * w.Completeness

	return score
}

// GeneralScore is the query-independent relevance used when no text
// query is present: recency, popularity and completeness only.
func (r *Ranking) GeneralScore(book model.Book) float64 {
	w := r.weights
	return recencyScore(book.Meta.UpdatedAt)*w.Recency +
		popularityScore(book.Meta)*w.Popularity +
		completenessScore(book)*w.Completeness
}

// Rank orders books by descending relevance for the query. Books that
// score exactly 0 are dropped. An empty query falls back to general
// relevance ordering and keeps every book.
func (r *Ranking) Rank(books []model.Book, query string) []model.Book {
	if strings.TrimSpace(query) == "" {
		return r.RankGeneral(books)
	}

	type scored struct {
		book  model.Book
		score float64
	}
	ranked := make([]scored, 0, len(books))
	for _, b := range books {
		s := r.Score(b, query)
		if s > 0 {
			ranked = append(ranked, scored{book: b, score: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]model.Book, len(ranked))
	for i, s := range ranked {
		out[i] = s.book
	}
	return out
}

// RankGeneral orders books by general relevance without dropping any.
func (r *Ranking) RankGeneral(books []model.Book) []model.Book {
	out := make([]model.Book, len(books))
	copy(out, books)
	sort.SliceStable(out, func(i, j int) bool {
		return r.GeneralScore(out[i]) > r.GeneralScore(out[j])
	})
	return out
}

// tokenizeQuery lowercases the query, strips punctuation and keeps
// words longer than one character.
func tokenizeQuery(query string) []string {
	var sb strings.Builder
	for _, r := range strings.ToLower(query) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(' ')
		}
	}
	var words []string
	for _, w := range strings.Fields(sb.String()) {
		if len(w) > 1 {
			words = append(words, w)
		}
	}
	return words
}

// scoreField awards 1 point per query word found as a substring of the
// field, 2 points instead when it matches on word boundaries, plus 1
// bonus point when the field starts with the word.
func scoreField(field string, words []string) float64 {
	if field == "" || len(words) == 0 {
		return 0
	}
	lower := strings.ToLower(field)
	var score float64
	for _, w := range words {
		if !strings.Contains(lower, w) {
			continue
		}
		if containsWholeWord(lower, w) {
			score += 2
		} else {
			score += 1
		}
		if strings.HasPrefix(lower, w) {
			score += 1
		}
	}
	return score
}

// scoreArray awards 1 point per array item containing the query word,
// 3 points instead for an exact case-insensitive match.
func scoreArray(items []string, words []string) float64 {
	if len(items) == 0 || len(words) == 0 {
		return 0
	}
	var score float64
	for _, w := range words {
		for _, item := range items {
			lower := strings.ToLower(item)
			if lower == w {
				score += 3
			} else if strings.Contains(lower, w) {
				score += 1
			}
		}
	}
	return score
}

// containsWholeWord reports whether word occurs in s delimited by
// non-word characters on both sides.
func containsWholeWord(s, word string) bool {
	for start := 0; ; {
		idx := strings.Index(s[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(word)
		if (idx == 0 || !isWordChar(s[idx-1])) && (end == len(s) || !isWordChar(s[end])) {
			return true
		}
		start = idx + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func recencyScore(updated time.Time) float64 {
	if updated.IsZero() {
		return 0
	}
	days := time.Since(updated).Hours() / 24
	switch {
	case days <= 1:
		return 1.0
	case days <= 7:
		return 0.8
	case days <= 30:
		return 0.6
	case days <= 90:
		return 0.4
	case days <= 365:
		return 0.2
	default:
		return 0.1
	}
}

// popularityScore folds stars, forks and watchers into one number and
// normalizes it on a log scale that saturates around 10k.
func popularityScore(meta model.GitHubMeta) float64 {
	raw := float64(meta.Stars*2 + meta.Forks*3 + meta.Watchers)
	if raw == 0 {
		return 0
	}
	return math.Min(1, math.Log10(raw+1)/4)
}

// completenessScore is the fraction of six metadata presence checks
// that the book satisfies.
func completenessScore(book model.Book) float64 {
	checks := []bool{
		book.Description != "",
		book.HasReadme(),
		len(book.Tags) > 0,
		len(book.Meta.Topics) > 0,
		book.Meta.License != "",
		book.Meta.Language != "",
	}
	var met int
	for _, ok := range checks {
		if ok {
			met++
		}
	}
	return float64(met) / float64(len(checks))
}
