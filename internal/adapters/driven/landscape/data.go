package landscape

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

// dateLayout is the layout of dates in landscape files.
const dateLayout = "2006-01-02"

// Extra keys promoted to typed item fields.
const (
	extraAccepted   = "accepted"
	extraIncubating = "incubating"
	extraGraduated  = "graduated"
)

type landscapeFile struct {
	Landscape []landscapeCategory `yaml:"landscape"`
}

// landscapeCategory accepts both `category: <name>` and the legacy form
// where `category:` is empty and the name is a sibling `name:` key.
type landscapeCategory struct {
	Category      string                 `yaml:"category"`
	Name          string                 `yaml:"name"`
	Subcategories []landscapeSubcategory `yaml:"subcategories"`
}

type landscapeSubcategory struct {
	Subcategory string          `yaml:"subcategory"`
	Name        string          `yaml:"name"`
	Items       []landscapeItem `yaml:"items"`
}

type landscapeItem struct {
	Item            string           `yaml:"item"`
	Name            string           `yaml:"name"`
	Description     string           `yaml:"description"`
	HomepageURL     string           `yaml:"homepage_url"`
	Logo            string           `yaml:"logo"`
	Twitter         string           `yaml:"twitter"`
	Crunchbase      string           `yaml:"crunchbase"`
	RepoURL         string           `yaml:"repo_url"`
	Branch          string           `yaml:"branch"`
	AdditionalRepos []additionalRepo `yaml:"additional_repos"`
	Project         string           `yaml:"project"`
	Joined          string           `yaml:"joined"`
	Extra           map[string]any   `yaml:"extra"`
}

type additionalRepo struct {
	RepoURL string `yaml:"repo_url"`
	Branch  string `yaml:"branch"`
}

// ParseLandscape parses the content of a landscape data file.
func ParseLandscape(raw []byte) (*domain.LandscapeData, error) {
	var file landscapeFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: parsing landscape yaml: %v", domain.ErrInvalidInput, err)
	}
	if len(file.Landscape) == 0 {
		return nil, fmt.Errorf("%w: landscape has no categories", domain.ErrInvalidInput)
	}

	var (
		categories []domain.Category
		items      []domain.Item
	)
	for ci, c := range file.Landscape {
		catName := firstNonEmpty(c.Name, c.Category)
		if catName == "" {
			return nil, fmt.Errorf("%w: category %d has no name", domain.ErrInvalidInput, ci+1)
		}
		category := domain.Category{Name: catName}

		for si, s := range c.Subcategories {
			subName := firstNonEmpty(s.Name, s.Subcategory)
			if subName == "" {
				return nil, fmt.Errorf("%w: subcategory %d of %q has no name", domain.ErrInvalidInput, si+1, catName)
			}
			category.Subcategories = append(category.Subcategories, subName)

			for ii, it := range s.Items {
				item, err := it.toDomain(catName, subName)
				if err != nil {
					return nil, fmt.Errorf("%w: item %d of %s/%s: %v", domain.ErrInvalidInput, ii+1, catName, subName, err)
				}
				items = append(items, item)
			}
		}
		categories = append(categories, category)
	}

	return domain.NewLandscapeData(categories, items)
}

func (it landscapeItem) toDomain(category, subcategory string) (domain.Item, error) {
	name := firstNonEmpty(it.Name, it.Item)
	if name == "" {
		return domain.Item{}, errors.New("name is required")
	}

	item := domain.Item{
		Name:          name,
		Category:      category,
		Subcategory:   subcategory,
		Logo:          strings.TrimSpace(it.Logo),
		Description:   strings.TrimSpace(it.Description),
		HomepageURL:   strings.TrimSpace(it.HomepageURL),
		TwitterURL:    strings.TrimSpace(it.Twitter),
		Maturity:      strings.TrimSpace(it.Project),
		CrunchbaseURL: strings.TrimSpace(it.Crunchbase),
	}
	item.ID = domain.ItemID(category, subcategory, name)

	if it.RepoURL != "" {
		item.Repositories = append(item.Repositories, domain.Repository{
			URL:     strings.TrimSpace(it.RepoURL),
			Branch:  it.Branch,
			Primary: true,
		})
	}
	for _, r := range it.AdditionalRepos {
		if strings.TrimSpace(r.RepoURL) == "" {
			continue
		}
		item.Repositories = append(item.Repositories, domain.Repository{
			URL:    strings.TrimSpace(r.RepoURL),
			Branch: r.Branch,
		})
	}

	var err error
	if item.JoinedAt, err = parseDate(it.Joined); err != nil {
		return domain.Item{}, fmt.Errorf("invalid joined date: %w", err)
	}

	extra := make(map[string]any, len(it.Extra))
	for k, v := range it.Extra {
		extra[k] = v
	}
	for key, target := range map[string]**time.Time{
		extraAccepted:   &item.AcceptedAt,
		extraIncubating: &item.IncubatingAt,
		extraGraduated:  &item.GraduatedAt,
	} {
		raw, ok := extra[key]
		if !ok {
			continue
		}
		delete(extra, key)
		if *target, err = dateValue(raw); err != nil {
			return domain.Item{}, fmt.Errorf("invalid %s date: %w", key, err)
		}
	}
	if len(extra) > 0 {
		item.Extra = extra
	}

	return item, nil
}

func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// dateValue converts a decoded extra value to a date. Unquoted dates are
// decoded by yaml as timestamps.
func dateValue(raw any) (*time.Time, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case string:
		return parseDate(v)
	default:
		return nil, fmt.Errorf("unexpected value %v", raw)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
