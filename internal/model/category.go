package model

// Category is one of the fixed taxonomy values assigned to every book.
// Unknown values normalize to CategoryMiscellaneous rather than failing.
type Category string

const (
	CategoryGames         Category = "GAMES"
	CategoryWebApps       Category = "WEB_APPS"
	CategoryMobileApps    Category = "MOBILE_APPS"
	CategorySocialMedia   Category = "SOCIAL_MEDIA"
	CategoryProductivity  Category = "PRODUCTIVITY"
	CategoryAIML          Category = "AI_ML"
	CategoryUIDesign      Category = "UI_DESIGN"
	CategoryGraphics      Category = "GRAPHICS"
	CategoryTutorials     Category = "TUTORIALS"
	CategoryDocumentation Category = "DOCUMENTATION"
	CategoryBusiness      Category = "BUSINESS"
	CategoryResearch      Category = "RESEARCH"
	CategoryUtilities     Category = "UTILITIES"
	CategoryEducational   Category = "EDUCATIONAL"
	CategorySelfHelp      Category = "SELF_HELP"
	CategoryMiscellaneous Category = "MISCELLANEOUS"
)

// AllCategories returns every taxonomy value in stable display order.
func AllCategories() []Category {
	return []Category{
		CategoryGames,
		CategoryWebApps,
		CategoryMobileApps,
		CategorySocialMedia,
		CategoryProductivity,
		CategoryAIML,
		CategoryUIDesign,
		CategoryGraphics,
		CategoryTutorials,
		CategoryDocumentation,
		CategoryBusiness,
		CategoryResearch,
		CategoryUtilities,
		CategoryEducational,
		CategorySelfHelp,
		CategoryMiscellaneous,
	}
}

// Valid reports whether c is one of the fixed taxonomy values.
func (c Category) Valid() bool {
	switch c {
	case CategoryGames, CategoryWebApps, CategoryMobileApps, CategorySocialMedia,
		CategoryProductivity, CategoryAIML, CategoryUIDesign, CategoryGraphics,
		CategoryTutorials, CategoryDocumentation, CategoryBusiness, CategoryResearch,
		CategoryUtilities, CategoryEducational, CategorySelfHelp, CategoryMiscellaneous:
		return true
	}
	return false
}

// ParseCategory normalizes a raw string to a taxonomy value,
// falling back to CategoryMiscellaneous for anything unknown.
func ParseCategory(s string) Category {
	c := Category(s)
	if c.Valid() {
		return c
	}
	return CategoryMiscellaneous
}
