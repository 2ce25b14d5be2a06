// Package section maps taxonomy categories to the organizational
// shelf buckets the presentation layer displays, and back.
package section

import (
	"fmt"

	"github.com/ItsTraderbaby/books-os/internal/model"
)

// Section is a display bucket with a stable id. The catalog is static
// and seeded; the search core never creates sections.
type Section struct {
	ID       string
	Name     string
	Order    int
	Category model.Category
}

// DefaultSections returns the seeded section catalog, one bucket per
// taxonomy category, in display order.
func DefaultSections() []Section {
	return []Section{
		{ID: "sec-games", Name: "Games", Order: 1, Category: model.CategoryGames},
		{ID: "sec-web-apps", Name: "Web Applications", Order: 2, Category: model.CategoryWebApps},
		{ID: "sec-mobile-apps", Name: "Mobile Applications", Order: 3, Category: model.CategoryMobileApps},
		{ID: "sec-social-media", Name: "Social Media", Order: 4, Category: model.CategorySocialMedia},
		{ID: "sec-productivity", Name: "Productivity", Order: 5, Category: model.CategoryProductivity},
		{ID: "sec-ai-ml", Name: "AI & Machine Learning", Order: 6, Category: model.CategoryAIML},
		{ID: "sec-ui-design", Name: "UI Design", Order: 7, Category: model.CategoryUIDesign},
		{ID: "sec-graphics", Name: "Graphics", Order: 8, Category: model.CategoryGraphics},
		{ID: "sec-tutorials", Name: "Tutorials", Order: 9, Category: model.CategoryTutorials},
		{ID: "sec-documentation", Name: "Documentation", Order: 10, Category: model.CategoryDocumentation},
		{ID: "sec-business", Name: "Business", Order: 11, Category: model.CategoryBusiness},
		{ID: "sec-research", Name: "Research", Order: 12, Category: model.CategoryResearch},
		{ID: "sec-utilities", Name: "Utilities", Order: 13, Category: model.CategoryUtilities},
		{ID: "sec-educational", Name: "Educational", Order: 14, Category: model.CategoryEducational},
		{ID: "sec-self-help", Name: "Self Help", Order: 15, Category: model.CategorySelfHelp},
		{ID: "sec-miscellaneous", Name: "Miscellaneous", Order: 16, Category: model.CategoryMiscellaneous},
	}
}

// MappingEntry is one category to section association.
type MappingEntry struct {
	Category  model.Category
	SectionID string
}

// Mapping is the bidirectional category/section dictionary. Both
// directions stay consistent through Remap.
type Mapping struct {
	sections     []Section
	catToSection map[model.Category]string
	sectionToCat map[string]model.Category
}

// NewMapping seeds the dictionary from the default section catalog.
func NewMapping() *Mapping {
	m := &Mapping{
		sections:     DefaultSections(),
		catToSection: make(map[model.Category]string),
		sectionToCat: make(map[string]model.Category),
	}
	for _, s := range m.sections {
		m.catToSection[s.Category] = s.ID
		m.sectionToCat[s.ID] = s.Category
	}
	return m
}

// Sections returns the static section catalog.
func (m *Mapping) Sections() []Section {
	out := make([]Section, len(m.sections))
	copy(out, m.sections)
	return out
}

// SectionIDForCategory resolves a category to its section id. Unknown
// categories resolve through the miscellaneous bucket.
func (m *Mapping) SectionIDForCategory(c model.Category) string {
	if id, ok := m.catToSection[c]; ok {
		return id
	}
	return m.catToSection[model.CategoryMiscellaneous]
}

// CategoryForSection resolves a section id back to its category,
// defaulting unknown ids to the miscellaneous category.
func (m *Mapping) CategoryForSection(sectionID string) model.Category {
	if c, ok := m.sectionToCat[sectionID]; ok {
		return c
	}
	return model.CategoryMiscellaneous
}

// AllMappings returns every association in stable category order.
func (m *Mapping) AllMappings() []MappingEntry {
	out := make([]MappingEntry, 0, len(m.catToSection))
	for _, c := range model.AllCategories() {
		if id, ok := m.catToSection[c]; ok {
			out = append(out, MappingEntry{Category: c, SectionID: id})
		}
	}
	return out
}

// Remap points a category at a different section, updating both
// directions together. The stale reverse entry is dropped so lookups
// never disagree.
func (m *Mapping) Remap(c model.Category, sectionID string) {
	if old, ok := m.catToSection[c]; ok && m.sectionToCat[old] == c {
		delete(m.sectionToCat, old)
	}
	m.catToSection[c] = sectionID
	m.sectionToCat[sectionID] = c
}

// Validate confirms the category's mapped section exists in the
// static catalog.
func (m *Mapping) Validate(c model.Category) error {
	id, ok := m.catToSection[c]
	if !ok {
		return fmt.Errorf("category %s has no section mapping", c)
	}
	for _, s := range m.sections {
		if s.ID == id {
			return nil
		}
	}
	return fmt.Errorf("category %s maps to unknown section %s", c, id)
}

// CountByCategory tallies books per category.
func CountByCategory(books []model.Book) map[model.Category]int {
	out := make(map[model.Category]int)
	for _, b := range books {
		out[b.Category]++
	}
	return out
}

// CountBySection tallies books per section bucket via the mapping.
func (m *Mapping) CountBySection(books []model.Book) map[string]int {
	out := make(map[string]int)
	for _, b := range books {
		out[m.SectionIDForCategory(b.Category)]++
	}
	return out
}
