package landscape

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

type settingsFile struct {
	Foundation      string                `yaml:"foundation"`
	URL             string                `yaml:"url"`
	MembersCategory string                `yaml:"members_category"`
	FeaturedItems   []featuredItemRuleDoc `yaml:"featured_items"`
	Images          imagesDoc             `yaml:"images"`
	Header          logoHolderDoc         `yaml:"header"`
	Footer          logoHolderDoc         `yaml:"footer"`
}

type featuredItemRuleDoc struct {
	Field   string                  `yaml:"field"`
	Options []featuredItemOptionDoc `yaml:"options"`
}

type featuredItemOptionDoc struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
	Order int    `yaml:"order"`
}

type imagesDoc struct {
	Favicon    string `yaml:"favicon"`
	HeaderLogo string `yaml:"header_logo"`
	FooterLogo string `yaml:"footer_logo"`
	OpenGraph  string `yaml:"open_graph"`
}

type logoHolderDoc struct {
	Logo string `yaml:"logo"`
}

// ParseSettings parses the content of a landscape settings file.
func ParseSettings(raw []byte) (*domain.Settings, error) {
	var doc settingsFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing settings yaml: %v", domain.ErrInvalidInput, err)
	}
	if doc.Foundation == "" {
		return nil, fmt.Errorf("%w: settings foundation is required", domain.ErrInvalidInput)
	}

	settings := &domain.Settings{
		Foundation:      doc.Foundation,
		URL:             doc.URL,
		MembersCategory: doc.MembersCategory,
		Images: domain.Images{
			Favicon:    doc.Images.Favicon,
			HeaderLogo: firstNonEmpty(doc.Images.HeaderLogo, doc.Header.Logo),
			FooterLogo: firstNonEmpty(doc.Images.FooterLogo, doc.Footer.Logo),
			OpenGraph:  doc.Images.OpenGraph,
		},
	}
	for _, rule := range doc.FeaturedItems {
		r := domain.FeaturedItemRule{Field: rule.Field}
		for _, opt := range rule.Options {
			r.Options = append(r.Options, domain.FeaturedItemRuleOption{
				Value: opt.Value,
				Label: opt.Label,
				Order: opt.Order,
			})
		}
		settings.FeaturedItems = append(settings.FeaturedItems, r)
	}
	return settings, nil
}
