package category

import (
	"testing"

	"github.com/ItsTraderbaby/books-os/internal/model"
)

func TestCategorizeFlutterApp(t *testing.T) {
	s := NewService()
	repo := model.Repository{
		Name:     "my-flutter-app",
		Language: "Dart",
		Topics:   []string{"flutter", "mobile"},
	}

	match := s.Categorize(repo)

	if match.Category != model.CategoryMobileApps {
		t.Errorf("Category = %q, want %q", match.Category, model.CategoryMobileApps)
	}
	if match.Confidence < 0.6 {
		t.Errorf("Confidence = %v, want >= 0.6 (language, topic and keyword signals align)", match.Confidence)
	}
	if match.Confidence > 1 {
		t.Errorf("Confidence = %v, want <= 1", match.Confidence)
	}

	wantFragments := []string{"keyword:flutter", "language:Dart", "topic:flutter", "topic:mobile"}
	for _, want := range wantFragments {
		if !containsFragment(match.MatchedRules, want) {
			t.Errorf("MatchedRules = %v, missing %q", match.MatchedRules, want)
		}
	}
}

func containsFragment(fragments []string, want string) bool {
	for _, f := range fragments {
		if f == want {
			return true
		}
	}
	return false
}

func TestCategorizeNoSignals(t *testing.T) {
	s := NewService()
	repo := model.Repository{Name: "random-thing"}

	match := s.Categorize(repo)

	if match.Category != model.CategoryMiscellaneous {
		t.Errorf("Category = %q, want %q", match.Category, model.CategoryMiscellaneous)
	}
	if match.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want exactly 0.5", match.Confidence)
	}
	if len(match.MatchedRules) != 1 || match.MatchedRules[0] != FallbackMarker {
		t.Errorf("MatchedRules = %v, want [%q]", match.MatchedRules, FallbackMarker)
	}
}

func TestCategorizeWeakMatchFallsBack(t *testing.T) {
	s := NewService()
	// "tool" fires one Utilities keyword but nothing else, landing
	// well below the confidence floor.
	repo := model.Repository{Name: "tool"}

	match := s.Categorize(repo)

	if match.Category != model.CategoryMiscellaneous {
		t.Errorf("Category = %q, want %q", match.Category, model.CategoryMiscellaneous)
	}
	if match.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want exactly 0.5", match.Confidence)
	}
}

func TestCategorizeMachineLearning(t *testing.T) {
	s := NewService()
	repo := model.Repository{
		Name:        "awesome-ml",
		Description: "deep-learning experiments with neural networks",
		Language:    "Python",
		Topics:      []string{"machine-learning", "ai"},
	}

	match := s.Categorize(repo)

	if match.Category != model.CategoryAIML {
		t.Errorf("Category = %q, want %q", match.Category, model.CategoryAIML)
	}
	if match.Confidence < 0.6 {
		t.Errorf("Confidence = %v, want >= 0.6", match.Confidence)
	}
}

func TestCategorizeWithFileSignals(t *testing.T) {
	s := NewService()
	repo := model.Repository{
		Name:     "space-shooter game",
		Language: "C#",
		Topics:   []string{"game"},
		Files:    []string{"Assets/Main.unity", "README.md"},
	}

	match := s.Categorize(repo)

	if match.Category != model.CategoryGames {
		t.Errorf("Category = %q, want %q", match.Category, model.CategoryGames)
	}
	if match.Confidence < minConfidence {
		t.Errorf("Confidence = %v, want >= %v", match.Confidence, minConfidence)
	}
}

func TestCategorizeConfidenceBounds(t *testing.T) {
	s := NewService()
	repos := []model.Repository{
		{},
		{Name: "random-thing"},
		{Name: "my-flutter-app", Language: "Dart", Topics: []string{"flutter", "mobile"}},
		{Name: "docs", Description: "project documentation wiki", Topics: []string{"docs"}},
		{Name: "shop", Description: "ecommerce saas crm invoice business", Topics: []string{"ecommerce", "business", "finance"}},
		{Name: "game unity arcade puzzle godot", Language: "GDScript", Topics: []string{"game", "gaming", "gamedev", "unity", "godot"}},
	}

	for _, repo := range repos {
		match := s.Categorize(repo)
		if match.Confidence < 0 || match.Confidence > 1 {
			t.Errorf("Categorize(%q).Confidence = %v, want within [0, 1]", repo.Name, match.Confidence)
		}
		if !match.Category.Valid() {
			t.Errorf("Categorize(%q).Category = %q, not a taxonomy value", repo.Name, match.Category)
		}
	}
}

func TestFileMatches(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		pattern  string
		expected bool
	}{
		{
			name:     "glob extension match",
			files:    []string{"app/build.gradle"},
			pattern:  "*.gradle",
			expected: true,
		},
		{
			name:     "glob no match",
			files:    []string{"main.go"},
			pattern:  "*.unity",
			expected: false,
		},
		{
			name:     "plain pattern substring",
			files:    []string{"pubspec.yaml"},
			pattern:  "pubspec.yaml",
			expected: true,
		},
		{
			name:     "plain pattern inside path",
			files:    []string{"site/mkdocs.yml"},
			pattern:  "mkdocs.yml",
			expected: true,
		},
		{
			name:     "glob is unanchored",
			files:    []string{"build.gradle.kts"},
			pattern:  "*.gradle",
			expected: true,
		},
		{
			name:     "glob with mixed case prefix",
			files:    []string{"MyApp.xcodeproj"},
			pattern:  "*.xcodeproj",
			expected: true,
		},
		{
			name:     "matching is case sensitive",
			files:    []string{"BUILD.GRADLE"},
			pattern:  "*.gradle",
			expected: false,
		},
		{
			name:     "empty file list",
			files:    nil,
			pattern:  "*.gradle",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fileMatches(tt.files, tt.pattern)
			if result != tt.expected {
				t.Errorf("fileMatches(%v, %q) = %v, want %v", tt.files, tt.pattern, result, tt.expected)
			}
		})
	}
}

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		name     string
		topics   []string
		pattern  string
		expected bool
	}{
		{
			name:     "exact topic",
			topics:   []string{"flutter", "mobile"},
			pattern:  "flutter",
			expected: true,
		},
		{
			name:     "substring of topic",
			topics:   []string{"machine-learning"},
			pattern:  "learning",
			expected: true,
		},
		{
			name:     "case insensitive",
			topics:   []string{"Flutter"},
			pattern:  "flutter",
			expected: true,
		},
		{
			name:     "absent",
			topics:   []string{"vue"},
			pattern:  "react",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := topicMatches(tt.topics, tt.pattern)
			if result != tt.expected {
				t.Errorf("topicMatches(%v, %q) = %v, want %v", tt.topics, tt.pattern, result, tt.expected)
			}
		})
	}
}

func TestSetRules(t *testing.T) {
	s := NewService()
	s.SetRules([]Rule{{
		Category:   model.CategoryGraphics,
		Keywords:   []string{"voxel"},
		Confidence: 0.9,
	}})

	if got := len(s.Rules()); got != 1 {
		t.Fatalf("len(Rules()) = %d, want 1", got)
	}

	match := s.Categorize(model.Repository{Name: "voxel-renderer"})
	if match.Category != model.CategoryGraphics {
		t.Errorf("Category = %q, want %q after rule replacement", match.Category, model.CategoryGraphics)
	}
}

func TestCategories(t *testing.T) {
	s := NewService()
	cats := s.Categories()

	if len(cats) != 14 {
		t.Fatalf("len(Categories()) = %d, want 14", len(cats))
	}
	if cats[0] != model.CategoryGames {
		t.Errorf("first category = %q, want %q", cats[0], model.CategoryGames)
	}

	seen := make(map[model.Category]bool)
	for _, c := range cats {
		if seen[c] {
			t.Errorf("duplicate category %q", c)
		}
		seen[c] = true
	}
}

func TestDefaultRulesConfidenceRange(t *testing.T) {
	for _, rule := range DefaultRules() {
		if rule.Confidence < 0.6 || rule.Confidence > 0.95 {
			t.Errorf("rule %q confidence = %v, want within [0.6, 0.95]", rule.Category, rule.Confidence)
		}
		if len(rule.Keywords) == 0 {
			t.Errorf("rule %q has no keywords", rule.Category)
		}
	}
}
