// Package transform converts raw repository records into catalog
// books. It carries its own quick keyword categorizer, separate from
// the rule engine, so display conversion stays dependency-free and
// existing call sites keep their behavior.
package transform

import (
	"strings"

	"github.com/ItsTraderbaby/books-os/internal/markdown"
	"github.com/ItsTraderbaby/books-os/internal/model"
)

// FromRepository builds a display book from one repository record.
// The readme body is flattened to plain text before it enters the
// search index.
func FromRepository(repo model.Repository) model.Book {
	id := repo.FullName
	if id == "" {
		id = repo.Name
	}

	return model.Book{
		ID:          id,
		Title:       titleFromName(repo.Name),
		Subtitle:    repo.Description,
		Description: repo.Description,
		Author:      repo.Owner,
		Category:    GuessCategory(repo),
		Tags:        append([]string(nil), repo.Topics...),
		Meta: model.GitHubMeta{
			Language:   repo.Language,
			Topics:     append([]string(nil), repo.Topics...),
			Stars:      repo.Stars,
			Forks:      repo.Forks,
			Watchers:   repo.Watchers,
			OpenIssues: repo.OpenIssues,
			License:    repo.License,
			Private:    repo.Private,
			HTMLURL:    repo.HTMLURL,
			CreatedAt:  repo.CreatedAt,
			UpdatedAt:  repo.UpdatedAt,
			Readme:     markdown.PlainText(repo.Readme),
		},
	}
}

// FromRepositories converts a batch, preserving order.
func FromRepositories(repos []model.Repository) []model.Book {
	books := make([]model.Book, len(repos))
	for i, r := range repos {
		books[i] = FromRepository(r)
	}
	return books
}

// GuessCategory is the quick linear keyword matcher used at transform
// time. It has no confidence scoring and intentionally stays separate
// from the rule engine; the two can disagree on edge cases. Branch
// order matters: specific signals come first, the broad web branch
// last so its common language signals do not shadow everything else.
func GuessCategory(repo model.Repository) model.Category {
	name := strings.ToLower(repo.Name)
	language := strings.ToLower(repo.Language)
	topics := make([]string, len(repo.Topics))
	for i, t := range repo.Topics {
		topics[i] = strings.ToLower(t)
	}

	parts := append([]string{name, strings.ToLower(repo.Description)}, topics...)
	text := strings.Join(parts, " ")

	switch {
	case containsAny(text, "game", "gaming", "unity", "unreal", "godot", "pygame", "phaser", "canvas", "webgl", "three.js") ||
		hasTopic(topics, "game", "gaming"):
		return model.CategoryGames
	case containsAny(text, "ai", "artificial-intelligence", "machine-learning", "ml", "deep-learning", "neural", "tensorflow", "pytorch", "scikit", "pandas", "numpy") ||
		language == "jupyter notebook" || hasTopic(topics, "machine-learning", "artificial-intelligence"):
		return model.CategoryAIML
	case containsAny(text, "android", "ios", "mobile", "react-native", "flutter", "swift", "kotlin", "xamarin") ||
		language == "swift" || language == "kotlin" || hasTopic(topics, "android", "ios"):
		return model.CategoryMobileApps
	case containsAny(text, "social", "chat", "messaging", "communication", "forum", "community", "discord", "slack", "twitter", "facebook"):
		return model.CategorySocialMedia
	case containsAny(text, "productivity", "tool", "utility", "automation", "workflow", "cli", "command-line", "script", "helper"):
		return model.CategoryProductivity
	case containsAny(text, "design", "ui", "ux", "interface", "component", "design-system", "figma", "sketch", "prototype") ||
		hasTopic(topics, "design", "ui", "ux"):
		return model.CategoryUIDesign
	case containsAny(text, "graphics", "visual", "art", "image", "photo", "video", "animation", "svg", "canvas", "webgl"):
		return model.CategoryGraphics
	case containsAny(text, "tutorial", "guide", "documentation", "docs", "learning", "course", "example", "demo", "sample") ||
		hasTopic(topics, "tutorial", "documentation"):
		return model.CategoryTutorials
	case containsAny(text, "api", "reference", "specification", "manual", "handbook") ||
		strings.Contains(name, "docs") || strings.Contains(name, "documentation"):
		return model.CategoryDocumentation
	case containsAny(text, "business", "strategy", "marketing", "sales", "finance", "startup", "entrepreneur"):
		return model.CategoryBusiness
	case containsAny(text, "research", "analysis", "study", "paper", "academic", "science", "data-analysis") ||
		hasTopic(topics, "research", "academic"):
		return model.CategoryResearch
	case containsAny(text, "education", "educational", "school", "university", "course", "curriculum"):
		return model.CategoryEducational
	case containsAny(text, "web", "website", "webapp", "react", "vue", "angular", "next", "nuxt", "svelte") ||
		language == "javascript" || language == "typescript" || language == "html" || language == "css":
		return model.CategoryWebApps
	default:
		return model.CategoryMiscellaneous
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasTopic(topics []string, wanted ...string) bool {
	for _, t := range topics {
		for _, w := range wanted {
			if t == w {
				return true
			}
		}
	}
	return false
}

// titleFromName turns a repository slug into a display title:
// separators become spaces and each word is capitalized.
func titleFromName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
