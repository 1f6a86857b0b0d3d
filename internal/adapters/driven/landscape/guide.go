package landscape

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

// markdown renders guide content. GFM adds the tables guides use.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type guideFile struct {
	Categories []guideCategoryDoc `yaml:"categories"`
}

type guideCategoryDoc struct {
	Category      string                `yaml:"category"`
	Content       string                `yaml:"content"`
	Keywords      []string              `yaml:"keywords"`
	Subcategories []guideSubcategoryDoc `yaml:"subcategories"`
}

type guideSubcategoryDoc struct {
	Subcategory string   `yaml:"subcategory"`
	Content     string   `yaml:"content"`
	Keywords    []string `yaml:"keywords"`
}

// ParseGuide parses the content of a landscape guide file. Markdown content
// is rendered to HTML.
func ParseGuide(raw []byte) (*domain.Guide, error) {
	var doc guideFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing guide yaml: %v", domain.ErrInvalidInput, err)
	}

	guide := &domain.Guide{}
	for _, c := range doc.Categories {
		content, err := renderMarkdown(c.Content)
		if err != nil {
			return nil, fmt.Errorf("rendering guide category %q: %w", c.Category, err)
		}
		category := domain.GuideCategory{
			Category: strings.TrimSpace(c.Category),
			Content:  content,
			Keywords: c.Keywords,
		}
		for _, sc := range c.Subcategories {
			content, err := renderMarkdown(sc.Content)
			if err != nil {
				return nil, fmt.Errorf("rendering guide subcategory %q: %w", sc.Subcategory, err)
			}
			category.Subcategories = append(category.Subcategories, domain.GuideSubcategory{
				Subcategory: strings.TrimSpace(sc.Subcategory),
				Content:     content,
				Keywords:    sc.Keywords,
			})
		}
		guide.Categories = append(guide.Categories, category)
	}

	if err := guide.Validate(); err != nil {
		return nil, err
	}
	return guide, nil
}

func renderMarkdown(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
