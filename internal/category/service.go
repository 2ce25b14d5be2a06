// Package category assigns repositories to taxonomy categories by
// scoring them against a weighted rule catalog.
package category

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ItsTraderbaby/books-os/internal/model"
)

// Confidence below this floor falls back to the miscellaneous bucket.
const minConfidence = 0.3

const fallbackConfidence = 0.5

// FallbackMarker is the sentinel matched-rule entry reported when no
// rule reached the confidence floor.
const FallbackMarker = "default-fallback"

// Match is the outcome of categorizing one repository. MatchedRules
// lists the rule fragments that fired, for audit only.
type Match struct {
	Category     model.Category
	Confidence   float64
	MatchedRules []string
}

// Service scores repositories against a rule catalog. Rules are fixed
// at construction and replaced only wholesale via SetRules.
type Service struct {
	rules []Rule
}

// NewService returns a Service with the built-in rule catalog.
func NewService() *Service {
	return &Service{rules: DefaultRules()}
}

// SetRules replaces the whole rule catalog.
func (s *Service) SetRules(rules []Rule) {
	s.rules = make([]Rule, len(rules))
	copy(s.rules, rules)
}

// Rules returns a copy of the current catalog.
func (s *Service) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Categories returns the distinct target categories of the catalog,
// in rule order.
func (s *Service) Categories() []model.Category {
	var out []model.Category
	seen := make(map[model.Category]struct{})
	for _, r := range s.rules {
		if _, ok := seen[r.Category]; !ok {
			seen[r.Category] = struct{}{}
			out = append(out, r.Category)
		}
	}
	return out
}

// Categorize assigns exactly one category with a confidence in [0,1].
// When no rule matches, or the best match stays below the confidence
// floor, the repository lands in the miscellaneous bucket with a
// fixed confidence of 0.5.
func (s *Service) Categorize(repo model.Repository) Match {
	type candidate struct {
		rule       Rule
		confidence float64
	}

	var candidates []candidate
	for _, rule := range s.rules {
		if c := scoreRule(rule, repo); c > 0 {
			candidates = append(candidates, candidate{rule: rule, confidence: c})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].confidence > candidates[j].confidence
	})

	if len(candidates) == 0 || candidates[0].confidence < minConfidence {
		return Match{
			Category:     model.CategoryMiscellaneous,
			Confidence:   fallbackConfidence,
			MatchedRules: []string{FallbackMarker},
		}
	}

	best := candidates[0]
	return Match{
		Category:     best.rule.Category,
		Confidence:   best.confidence,
		MatchedRules: matchedFragments(best.rule, repo),
	}
}

// scoreRule computes a rule's 0..1 confidence. Each populated pattern
// type contributes a weighted fraction; the total normalizes by the
// sum of the maxima that actually applied.
func scoreRule(rule Rule, repo model.Repository) float64 {
	haystack := strings.ToLower(repo.Name + " " + repo.Description + " " + repo.Readme)
	language := strings.ToLower(repo.Language)

	var score, maxScore float64

	if len(rule.Keywords) > 0 {
		maxScore += 0.4
		var matched int
		for _, k := range rule.Keywords {
			if strings.Contains(haystack, strings.ToLower(k)) {
				matched++
			}
		}
		score += float64(matched) / float64(len(rule.Keywords)) * 0.4
	}

	if len(rule.LanguagePatterns) > 0 && language != "" {
		maxScore += 0.3
		for _, p := range rule.LanguagePatterns {
			if strings.Contains(language, strings.ToLower(p)) {
				score += 0.3
				break
			}
		}
	}

	if len(rule.TopicPatterns) > 0 && len(repo.Topics) > 0 {
		maxScore += 0.2
		var matched int
		for _, p := range rule.TopicPatterns {
			if topicMatches(repo.Topics, p) {
				matched++
			}
		}
		score += float64(matched) / float64(len(rule.TopicPatterns)) * 0.2
	}

	if len(rule.FilePatterns) > 0 && len(repo.Files) > 0 {
		maxScore += 0.1
		var matched int
		for _, p := range rule.FilePatterns {
			if fileMatches(repo.Files, p) {
				matched++
			}
		}
		score += float64(matched) / float64(len(rule.FilePatterns)) * 0.1
	}

	if maxScore == 0 {
		return 0
	}
	return score / maxScore * rule.Confidence
}

func topicMatches(topics []string, pattern string) bool {
	p := strings.ToLower(pattern)
	for _, t := range topics {
		if strings.Contains(strings.ToLower(t), p) {
			return true
		}
	}
	return false
}

// fileMatches treats patterns containing '*' as globs where '*' spans
// any sequence; plain patterns match as substrings of a filename.
// Matching is case-sensitive and unanchored, so "*.gradle" also hits
// "build.gradle.kts".
func fileMatches(files []string, pattern string) bool {
	if strings.Contains(pattern, "*") {
		re, err := regexp.Compile(strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, ".*"))
		if err != nil {
			return false
		}
		for _, f := range files {
			if re.MatchString(f) {
				return true
			}
		}
		return false
	}
	for _, f := range files {
		if strings.Contains(f, pattern) {
			return true
		}
	}
	return false
}

// matchedFragments reports which keyword, language and topic signals
// of the winning rule fired. Keywords are checked against name and
// description only, so the audit list stays readable for repos with
// long readmes.
func matchedFragments(rule Rule, repo model.Repository) []string {
	var out []string
	haystack := strings.ToLower(repo.Name + " " + repo.Description)

	for _, k := range rule.Keywords {
		if strings.Contains(haystack, strings.ToLower(k)) {
			out = append(out, "keyword:"+k)
		}
	}

	if repo.Language != "" {
		language := strings.ToLower(repo.Language)
		for _, p := range rule.LanguagePatterns {
			if strings.Contains(language, strings.ToLower(p)) {
				out = append(out, "language:"+repo.Language)
				break
			}
		}
	}

	for _, p := range rule.TopicPatterns {
		if topicMatches(repo.Topics, p) {
			out = append(out, "topic:"+p)
		}
	}

	return out
}
