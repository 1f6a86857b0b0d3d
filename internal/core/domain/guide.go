package domain

import "fmt"

// Guide holds the landscape guide: free text describing the categories and
// subcategories. Content is HTML.
type Guide struct {
	Categories []GuideCategory `json:"categories,omitempty"`
}

// GuideCategory describes one category.
type GuideCategory struct {
	Category      string             `json:"category"`
	Content       string             `json:"content,omitempty"`
	Keywords      []string           `json:"keywords,omitempty"`
	Subcategories []GuideSubcategory `json:"subcategories,omitempty"`
}

// GuideSubcategory describes one subcategory.
type GuideSubcategory struct {
	Subcategory string   `json:"subcategory"`
	Content     string   `json:"content,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Validate checks that every category and subcategory is named.
func (g *Guide) Validate() error {
	for i, c := range g.Categories {
		if c.Category == "" {
			return fmt.Errorf("%w: guide category %d has no name", ErrInvalidInput, i)
		}
		for j, sc := range c.Subcategories {
			if sc.Subcategory == "" {
				return fmt.Errorf("%w: guide subcategory %d in %q has no name", ErrInvalidInput, j, c.Category)
			}
		}
	}
	return nil
}
