package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
)

// Dataset file names.
const (
	BaseDatasetFile = "base.json"
	FullDatasetFile = "full.json"
	GuideFile       = "guide.json"
)

const dateLayout = "2006-01-02"

// BaseDataset is the lightweight dataset loaded by the web application on
// startup.
type BaseDataset struct {
	Foundation    string        `json:"foundation"`
	URL           string        `json:"url,omitempty"`
	Images        ImagesDoc     `json:"images"`
	IncludesGuide bool          `json:"includes_guide"`
	Categories    []CategoryDoc `json:"categories"`
	Items         []BaseItem    `json:"items"`
}

// ImagesDoc references the settings images.
type ImagesDoc struct {
	Favicon    string `json:"favicon,omitempty"`
	HeaderLogo string `json:"header_logo,omitempty"`
	FooterLogo string `json:"footer_logo,omitempty"`
	OpenGraph  string `json:"open_graph,omitempty"`
}

// CategoryDoc is a category with its subcategories.
type CategoryDoc struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// BaseItem holds the item fields needed to render the landscape grid.
type BaseItem struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Category          string               `json:"category"`
	Subcategory       string               `json:"subcategory"`
	Logo              string               `json:"logo"`
	Maturity          string               `json:"maturity,omitempty"`
	MemberSubcategory string               `json:"member_subcategory,omitempty"`
	Featured          *domain.ItemFeatured `json:"featured,omitempty"`
}

// FullDataset holds every item field plus the collected enrichment records.
type FullDataset struct {
	Categories     []CategoryDoc                 `json:"categories"`
	Items          []FullItem                    `json:"items"`
	CrunchbaseData map[string]*CrunchbaseDoc     `json:"crunchbase_data,omitempty"`
	GitHubData     map[string]*domain.GitHubData `json:"github_data,omitempty"`
}

// FullItem is an item with dates formatted as YYYY-MM-DD.
type FullItem struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Category          string               `json:"category"`
	Subcategory       string               `json:"subcategory"`
	Logo              string               `json:"logo"`
	Description       string               `json:"description,omitempty"`
	HomepageURL       string               `json:"homepage_url,omitempty"`
	TwitterURL        string               `json:"twitter_url,omitempty"`
	Maturity          string               `json:"maturity,omitempty"`
	MemberSubcategory string               `json:"member_subcategory,omitempty"`
	Featured          *domain.ItemFeatured `json:"featured,omitempty"`
	AcceptedAt        string               `json:"accepted_at,omitempty"`
	IncubatingAt      string               `json:"incubating_at,omitempty"`
	GraduatedAt       string               `json:"graduated_at,omitempty"`
	JoinedAt          string               `json:"joined_at,omitempty"`
	CrunchbaseURL     string               `json:"crunchbase_url,omitempty"`
	Repositories      []RepositoryDoc      `json:"repositories,omitempty"`
	Extra             map[string]any       `json:"extra,omitempty"`
}

// RepositoryDoc references a repository; its record lives in github_data.
type RepositoryDoc struct {
	URL     string `json:"url"`
	Branch  string `json:"branch,omitempty"`
	Primary bool   `json:"primary,omitempty"`
}

// CrunchbaseDoc is a Crunchbase record with funding dates formatted as
// YYYY-MM-DD.
type CrunchbaseDoc struct {
	*domain.CrunchbaseData
	FundingRounds []FundingRoundDoc `json:"funding_rounds,omitempty"`
}

// FundingRoundDoc is a funding round with a plain date.
type FundingRoundDoc struct {
	Amount      *int64 `json:"amount,omitempty"`
	AnnouncedOn string `json:"announced_on,omitempty"`
	Kind        string `json:"kind,omitempty"`
}

// NewBaseDataset builds the base dataset.
func NewBaseDataset(data *domain.LandscapeData, settings *domain.Settings) *BaseDataset {
	ds := &BaseDataset{
		Categories: categoryDocs(data.Categories),
		Items:      make([]BaseItem, 0, len(data.Items)),
	}
	if settings != nil {
		ds.Foundation = settings.Foundation
		ds.URL = settings.URL
		ds.Images = ImagesDoc{
			Favicon:    settings.Images.Favicon,
			HeaderLogo: settings.Images.HeaderLogo,
			FooterLogo: settings.Images.FooterLogo,
			OpenGraph:  settings.Images.OpenGraph,
		}
	}
	for i := range data.Items {
		item := &data.Items[i]
		ds.Items = append(ds.Items, BaseItem{
			ID:                item.ID.String(),
			Name:              item.Name,
			Category:          item.Category,
			Subcategory:       item.Subcategory,
			Logo:              item.Logo,
			Maturity:          item.Maturity,
			MemberSubcategory: item.MemberSubcategory,
			Featured:          item.Featured,
		})
	}
	return ds
}

// NewFullDataset builds the full dataset. Records shared by several items
// are stored once, keyed by reference.
func NewFullDataset(data *domain.LandscapeData) *FullDataset {
	ds := &FullDataset{
		Categories:     categoryDocs(data.Categories),
		Items:          make([]FullItem, 0, len(data.Items)),
		CrunchbaseData: make(map[string]*CrunchbaseDoc),
		GitHubData:     make(map[string]*domain.GitHubData),
	}
	for i := range data.Items {
		item := &data.Items[i]
		full := FullItem{
			ID:                item.ID.String(),
			Name:              item.Name,
			Category:          item.Category,
			Subcategory:       item.Subcategory,
			Logo:              item.Logo,
			Description:       item.Description,
			HomepageURL:       item.HomepageURL,
			TwitterURL:        item.TwitterURL,
			Maturity:          item.Maturity,
			MemberSubcategory: item.MemberSubcategory,
			Featured:          item.Featured,
			AcceptedAt:        formatDate(item.AcceptedAt),
			IncubatingAt:      formatDate(item.IncubatingAt),
			GraduatedAt:       formatDate(item.GraduatedAt),
			JoinedAt:          formatDate(item.JoinedAt),
			CrunchbaseURL:     item.CrunchbaseURL,
			Extra:             item.Extra,
		}
		for _, repo := range item.Repositories {
			full.Repositories = append(full.Repositories, RepositoryDoc{
				URL:     repo.URL,
				Branch:  repo.Branch,
				Primary: repo.Primary,
			})
			if repo.GitHubData != nil {
				ds.GitHubData[domain.NormaliseReference(repo.URL)] = repo.GitHubData
			}
		}
		if item.CrunchbaseData != nil {
			ds.CrunchbaseData[domain.NormaliseReference(item.CrunchbaseURL)] = newCrunchbaseDoc(item.CrunchbaseData)
		}
		ds.Items = append(ds.Items, full)
	}
	return ds
}

// LandscapeData rebuilds the landscape data held by the dataset, with the
// enrichment records attached to their items.
func (ds *FullDataset) LandscapeData() (*domain.LandscapeData, error) {
	categories := make([]domain.Category, 0, len(ds.Categories))
	for _, c := range ds.Categories {
		categories = append(categories, domain.Category{Name: c.Name, Subcategories: c.Subcategories})
	}

	items := make([]domain.Item, 0, len(ds.Items))
	for _, full := range ds.Items {
		item := domain.Item{
			Name:              full.Name,
			Category:          full.Category,
			Subcategory:       full.Subcategory,
			Logo:              full.Logo,
			Description:       full.Description,
			HomepageURL:       full.HomepageURL,
			TwitterURL:        full.TwitterURL,
			Maturity:          full.Maturity,
			MemberSubcategory: full.MemberSubcategory,
			Featured:          full.Featured,
			CrunchbaseURL:     full.CrunchbaseURL,
			Extra:             full.Extra,
		}
		if full.ID != "" {
			id, err := uuid.Parse(full.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: item %q has invalid id: %v", domain.ErrInvalidInput, full.Name, err)
			}
			item.ID = id
		}

		var err error
		for _, d := range []struct {
			value  string
			target **time.Time
		}{
			{full.AcceptedAt, &item.AcceptedAt},
			{full.IncubatingAt, &item.IncubatingAt},
			{full.GraduatedAt, &item.GraduatedAt},
			{full.JoinedAt, &item.JoinedAt},
		} {
			if *d.target, err = parseDate(d.value); err != nil {
				return nil, fmt.Errorf("%w: item %q has invalid date: %v", domain.ErrInvalidInput, full.Name, err)
			}
		}

		for _, repo := range full.Repositories {
			item.Repositories = append(item.Repositories, domain.Repository{
				URL:        repo.URL,
				Branch:     repo.Branch,
				Primary:    repo.Primary,
				GitHubData: ds.GitHubData[domain.NormaliseReference(repo.URL)],
			})
		}
		if doc, ok := ds.CrunchbaseData[domain.NormaliseReference(full.CrunchbaseURL)]; ok && doc != nil {
			record, err := doc.record()
			if err != nil {
				return nil, err
			}
			item.CrunchbaseData = record
		}
		items = append(items, item)
	}

	data, err := domain.NewLandscapeData(categories, items)
	if err != nil {
		return nil, err
	}
	data.Freeze()
	return data, nil
}

func newCrunchbaseDoc(record *domain.CrunchbaseData) *CrunchbaseDoc {
	doc := &CrunchbaseDoc{CrunchbaseData: record}
	for _, round := range record.FundingRounds {
		doc.FundingRounds = append(doc.FundingRounds, FundingRoundDoc{
			Amount:      round.Amount,
			AnnouncedOn: formatDate(round.AnnouncedOn),
			Kind:        round.Kind,
		})
	}
	return doc
}

func (doc *CrunchbaseDoc) record() (*domain.CrunchbaseData, error) {
	record := &domain.CrunchbaseData{}
	if doc.CrunchbaseData != nil {
		copied := *doc.CrunchbaseData
		record = &copied
	}
	record.FundingRounds = nil
	for _, round := range doc.FundingRounds {
		announced, err := parseDate(round.AnnouncedOn)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid funding round date: %v", domain.ErrInvalidInput, err)
		}
		record.FundingRounds = append(record.FundingRounds, domain.FundingRound{
			Amount:      round.Amount,
			AnnouncedOn: announced,
			Kind:        round.Kind,
		})
	}
	return record, nil
}

func categoryDocs(categories []domain.Category) []CategoryDoc {
	docs := make([]CategoryDoc, 0, len(categories))
	for _, c := range categories {
		subs := c.Subcategories
		if subs == nil {
			subs = []string{}
		}
		docs = append(docs, CategoryDoc{Name: c.Name, Subcategories: subs})
	}
	return docs
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// writeDatasets writes base.json and full.json to <output>/data, plus
// guide.json when the landscape has a guide.
func writeDatasets(layout *Layout, data *domain.LandscapeData, settings *domain.Settings, guide *domain.Guide) error {
	base := NewBaseDataset(data, settings)
	base.IncludesGuide = guide != nil

	docs := map[string]any{
		BaseDatasetFile: base,
		FullDatasetFile: NewFullDataset(data),
	}
	if guide != nil {
		docs[GuideFile] = guide
	} else if err := os.Remove(layout.Path(DataDir, GuideFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing stale %s: %w", GuideFile, err)
	}

	for name, ds := range docs {
		raw, err := json.Marshal(ds)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", name, err)
		}
		if err := writeFileAtomic(layout.Path(DataDir, name), raw); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

// Ensure DatasetFile implements the interface.
var _ driven.DatasetReader = (*DatasetFile)(nil)

// DatasetFile reads a full.json dataset from disk.
type DatasetFile struct {
	path string
}

// NewDatasetFile creates a reader of the full dataset at path.
func NewDatasetFile(path string) *DatasetFile {
	return &DatasetFile{path: path}
}

// Read loads and decodes the dataset.
func (f *DatasetFile) Read(_ context.Context) (*domain.LandscapeData, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var ds FullDataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("%w: parsing dataset %s: %v", domain.ErrInvalidInput, f.path, err)
	}
	return ds.LandscapeData()
}
