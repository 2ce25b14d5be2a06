package category

import "github.com/ItsTraderbaby/books-os/internal/model"

// Rule scores a repository against one taxonomy category. Pattern
// lists may be empty; an empty list simply removes that signal from
// the rule's scoring denominator. Confidence reflects how distinctive
// the rule's signals are and multiplies the normalized match score.
type Rule struct {
	Category         model.Category
	Keywords         []string
	FilePatterns     []string
	LanguagePatterns []string
	TopicPatterns    []string
	Confidence       float64
}

// DefaultRules returns the built-in rule catalog, ordered. Rules with
// highly distinctive file or language signals carry the highest
// confidence; generic keyword-driven rules the lowest.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category:         model.CategoryGames,
			Keywords:         []string{"game", "unity", "godot", "arcade", "puzzle"},
			FilePatterns:     []string{"*.unity", "*.uproject", "*.gd"},
			LanguagePatterns: []string{"c#", "c++", "gdscript", "lua"},
			TopicPatterns:    []string{"game", "gaming", "gamedev", "unity", "godot"},
			Confidence:       0.9,
		},
		{
			Category:         model.CategoryWebApps,
			Keywords:         []string{"web", "frontend", "backend", "fullstack", "website"},
			FilePatterns:     []string{"package.json", "index.html", "*.tsx"},
			LanguagePatterns: []string{"javascript", "typescript", "php", "ruby"},
			TopicPatterns:    []string{"web", "react", "vue", "angular", "nextjs"},
			Confidence:       0.85,
		},
		{
			Category:         model.CategoryMobileApps,
			Keywords:         []string{"mobile", "app", "flutter", "react-native"},
			FilePatterns:     []string{"*.xcodeproj", "pubspec.yaml", "*.gradle"},
			LanguagePatterns: []string{"swift", "kotlin", "dart", "objective-c"},
			TopicPatterns:    []string{"mobile", "flutter", "android", "ios"},
			Confidence:       0.95,
		},
		{
			Category:         model.CategoryAIML,
			Keywords:         []string{"machine-learning", "neural", "deep-learning", "llm"},
			FilePatterns:     []string{"*.ipynb", "train.py", "model.py"},
			LanguagePatterns: []string{"python", "jupyter"},
			TopicPatterns:    []string{"machine-learning", "ai", "ml", "deep-learning", "neural-network"},
			Confidence:       0.95,
		},
		{
			Category:      model.CategorySocialMedia,
			Keywords:      []string{"social", "chat", "messaging", "feed"},
			TopicPatterns: []string{"social", "chat", "messenger", "community"},
			Confidence:    0.8,
		},
		{
			Category:      model.CategoryProductivity,
			Keywords:      []string{"todo", "productivity", "task", "notes", "calendar"},
			TopicPatterns: []string{"productivity", "todo", "notes"},
			Confidence:    0.65,
		},
		{
			Category:         model.CategoryUIDesign,
			Keywords:         []string{"design-system", "component-library", "ui-kit", "storybook"},
			LanguagePatterns: []string{"css", "scss"},
			TopicPatterns:    []string{"ui", "design", "components", "design-system"},
			Confidence:       0.8,
		},
		{
			Category:         model.CategoryGraphics,
			Keywords:         []string{"graphics", "render", "shader", "3d"},
			FilePatterns:     []string{"*.glsl", "*.shader", "*.obj"},
			LanguagePatterns: []string{"glsl", "c++", "rust"},
			TopicPatterns:    []string{"graphics", "rendering", "shaders", "webgl", "opengl"},
			Confidence:       0.85,
		},
		{
			Category:      model.CategoryTutorials,
			Keywords:      []string{"tutorial", "course", "guide", "learn"},
			TopicPatterns: []string{"tutorial", "learning", "course"},
			Confidence:    0.75,
		},
		{
			Category:      model.CategoryDocumentation,
			Keywords:      []string{"docs", "documentation", "wiki", "handbook"},
			FilePatterns:  []string{"mkdocs.yml", "docusaurus.config.js"},
			TopicPatterns: []string{"documentation", "docs", "wiki"},
			Confidence:    0.7,
		},
		{
			Category:      model.CategoryBusiness,
			Keywords:      []string{"business", "ecommerce", "invoice", "crm", "saas"},
			TopicPatterns: []string{"business", "ecommerce", "finance"},
			Confidence:    0.7,
		},
		{
			Category:         model.CategoryResearch,
			Keywords:         []string{"research", "paper", "experiment", "analysis"},
			LanguagePatterns: []string{"python", "matlab", "julia"},
			TopicPatterns:    []string{"research", "science", "paper"},
			Confidence:       0.8,
		},
		{
			Category:      model.CategoryEducational,
			Keywords:      []string{"education", "school", "quiz", "exercise"},
			TopicPatterns: []string{"education", "teaching", "students"},
			Confidence:    0.7,
		},
		{
			Category:         model.CategoryUtilities,
			Keywords:         []string{"cli", "tool", "utility", "script", "plugin"},
			LanguagePatterns: []string{"go", "shell", "rust"},
			TopicPatterns:    []string{"cli", "tooling", "utility"},
			Confidence:       0.6,
		},
	}
}
