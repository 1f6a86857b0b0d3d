package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// itemNamespace scopes name-based item identities.
var itemNamespace = uuid.MustParse("6f1b0a5e-3f0c-4a52-9d8e-2b7c1e4d5a90")

// Item represents one catalog entry (organization or project).
//
// The ID is assigned once at load time and never reassigned. Enrichment
// phases only touch Logo, Repositories[].GitHubData and CrunchbaseData.
type Item struct {
	// ID is the stable identity of the item.
	ID uuid.UUID `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Category is the name of the category the item belongs to.
	Category string `json:"category"`

	// Subcategory is the name of the subcategory the item belongs to.
	Subcategory string `json:"subcategory"`

	// Logo is the logo reference. At load time it is a file name, a local
	// path or a remote URL; after the logo phase it is the output path of the
	// prepared logo or the empty marker.
	Logo string `json:"logo"`

	Description string `json:"description,omitempty"`
	HomepageURL string `json:"homepage_url,omitempty"`
	TwitterURL  string `json:"twitter_url,omitempty"`

	// Maturity is the project maturity level (sandbox, incubating, ...).
	Maturity string `json:"maturity,omitempty"`

	AcceptedAt   *time.Time `json:"accepted_at,omitempty"`
	IncubatingAt *time.Time `json:"incubating_at,omitempty"`
	GraduatedAt  *time.Time `json:"graduated_at,omitempty"`
	JoinedAt     *time.Time `json:"joined_at,omitempty"`

	// Repositories lists the code repositories of the item.
	Repositories []Repository `json:"repositories,omitempty"`

	// CrunchbaseURL references the organization behind the item.
	CrunchbaseURL string `json:"crunchbase_url,omitempty"`

	// CrunchbaseData is set by the Crunchbase merge step.
	CrunchbaseData *CrunchbaseData `json:"crunchbase_data,omitempty"`

	// Featured is derived from the settings featured-item rules.
	Featured *ItemFeatured `json:"featured,omitempty"`

	// MemberSubcategory is set for items in the members category.
	MemberSubcategory string `json:"member_subcategory,omitempty"`

	// Extra holds free-form display fields.
	Extra map[string]any `json:"extra,omitempty"`
}

// Repository is a code repository referenced by an item.
type Repository struct {
	URL     string `json:"url"`
	Branch  string `json:"branch,omitempty"`
	Primary bool   `json:"primary,omitempty"`

	// GitHubData is set by the GitHub merge step.
	GitHubData *GitHubData `json:"github_data,omitempty"`
}

// ItemFeatured holds the featured-item information of an item.
type ItemFeatured struct {
	Label string `json:"label,omitempty"`
	Order int    `json:"order,omitempty"`
}

// ItemID derives the stable identity of an item from its placement and name.
// The same category, subcategory and name always yield the same ID.
func ItemID(category, subcategory, name string) uuid.UUID {
	key := strings.Join([]string{
		strings.TrimSpace(category),
		strings.TrimSpace(subcategory),
		strings.TrimSpace(name),
	}, "/")
	return uuid.NewSHA1(itemNamespace, []byte(key))
}

// PrimaryRepository returns the primary repository of the item, falling back
// to the first one. Returns nil when the item has no repositories.
func (i *Item) PrimaryRepository() *Repository {
	if len(i.Repositories) == 0 {
		return nil
	}
	for idx := range i.Repositories {
		if i.Repositories[idx].Primary {
			return &i.Repositories[idx]
		}
	}
	return &i.Repositories[0]
}

// NormaliseReference canonicalises an external reference URL so that
// trivially different spellings of the same reference collapse.
func NormaliseReference(ref string) string {
	ref = strings.TrimSpace(ref)
	return strings.TrimRight(ref, "/")
}
