package domain

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Category is a top level grouping of the landscape.
type Category struct {
	Name          string
	Subcategories []string
}

// LandscapeData is the in-memory catalog of items.
//
// It is loaded once, mutated in place by the enrichment merge steps and
// frozen before being handed to dataset generation. It is not safe for
// concurrent mutation: merge steps must run on a single goroutine after
// their corresponding fan-out has drained.
type LandscapeData struct {
	Categories []Category
	Items      []Item

	frozen bool
}

// NewLandscapeData builds landscape data from categories and items, checking
// that every item has a unique identity.
func NewLandscapeData(categories []Category, items []Item) (*LandscapeData, error) {
	seen := make(map[uuid.UUID]string, len(items))
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = ItemID(items[i].Category, items[i].Subcategory, items[i].Name)
		}
		if prev, ok := seen[items[i].ID]; ok {
			return nil, fmt.Errorf("%w: %q (%s/%s) clashes with %q",
				ErrDuplicateItem, items[i].Name, items[i].Category, items[i].Subcategory, prev)
		}
		seen[items[i].ID] = items[i].Name
	}
	return &LandscapeData{Categories: categories, Items: items}, nil
}

// Index returns a view of the items addressable by identity.
// Values are positions in Items.
func (l *LandscapeData) Index() map[uuid.UUID]int {
	idx := make(map[uuid.UUID]int, len(l.Items))
	for i := range l.Items {
		idx[l.Items[i].ID] = i
	}
	return idx
}

// IDs returns the identities of all items in order.
func (l *LandscapeData) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(l.Items))
	for i := range l.Items {
		ids[i] = l.Items[i].ID
	}
	return ids
}

// Freeze marks the data as immutable. Further merge calls fail with ErrFrozen.
func (l *LandscapeData) Freeze() {
	l.frozen = true
}

// Frozen returns true once Freeze has been called.
func (l *LandscapeData) Frozen() bool {
	return l.frozen
}

// AddFeaturedItemsData flags items matching the featured-item rules.
func (l *LandscapeData) AddFeaturedItemsData(settings *Settings) error {
	if l.frozen {
		return ErrFrozen
	}
	if settings == nil {
		return nil
	}

	for _, rule := range settings.FeaturedItems {
		switch rule.Field {
		case FeaturedFieldMaturity, FeaturedFieldSubcategory:
		default:
			return fmt.Errorf("%w: unsupported featured items field %q", ErrInvalidInput, rule.Field)
		}

		for i := range l.Items {
			value := l.Items[i].Maturity
			if rule.Field == FeaturedFieldSubcategory {
				value = l.Items[i].Subcategory
			}
			for _, opt := range rule.Options {
				if opt.Value == value {
					l.Items[i].Featured = &ItemFeatured{Label: opt.Label, Order: opt.Order}
					break
				}
			}
		}
	}
	return nil
}

// AddMemberSubcategory copies the subcategory of items in the members
// category to their MemberSubcategory field.
func (l *LandscapeData) AddMemberSubcategory(membersCategory string) error {
	if l.frozen {
		return ErrFrozen
	}
	if membersCategory == "" {
		return nil
	}
	for i := range l.Items {
		if l.Items[i].Category == membersCategory {
			l.Items[i].MemberSubcategory = l.Items[i].Subcategory
		}
	}
	return nil
}

// SetLogos assigns each item its resolved logo. Items missing from the map
// (or mapped to the empty marker) end with an empty logo.
func (l *LandscapeData) SetLogos(logos map[uuid.UUID]string) error {
	if l.frozen {
		return ErrFrozen
	}
	for i := range l.Items {
		l.Items[i].Logo = logos[l.Items[i].ID]
	}
	return nil
}

// GitHubReferences returns the distinct repository URLs of all items, sorted.
func (l *LandscapeData) GitHubReferences() []string {
	set := make(map[string]struct{})
	for i := range l.Items {
		for _, repo := range l.Items[i].Repositories {
			if ref := NormaliseReference(repo.URL); ref != "" {
				set[ref] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// CrunchbaseReferences returns the distinct Crunchbase URLs of all items, sorted.
func (l *LandscapeData) CrunchbaseReferences() []string {
	set := make(map[string]struct{})
	for i := range l.Items {
		if ref := NormaliseReference(l.Items[i].CrunchbaseURL); ref != "" {
			set[ref] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// AddGitHubData attaches collected GitHub records to the repositories that
// reference them. Repositories without a record are left untouched.
func (l *LandscapeData) AddGitHubData(data map[string]*GitHubData) error {
	if l.frozen {
		return ErrFrozen
	}
	for i := range l.Items {
		for j := range l.Items[i].Repositories {
			repo := &l.Items[i].Repositories[j]
			if record, ok := data[NormaliseReference(repo.URL)]; ok && record != nil {
				repo.GitHubData = record
			}
		}
	}
	return nil
}

// AddCrunchbaseData attaches collected Crunchbase records to the items that
// reference them. Items without a record are left untouched.
func (l *LandscapeData) AddCrunchbaseData(data map[string]*CrunchbaseData) error {
	if l.frozen {
		return ErrFrozen
	}
	for i := range l.Items {
		if record, ok := data[NormaliseReference(l.Items[i].CrunchbaseURL)]; ok && record != nil {
			l.Items[i].CrunchbaseData = record
		}
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
