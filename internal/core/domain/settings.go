package domain

// Settings holds landscape-level settings loaded from settings.yml.
type Settings struct {
	// Foundation is the name of the foundation publishing the landscape.
	Foundation string

	// URL is the public URL of the landscape.
	URL string

	// MembersCategory is the name of the category listing members.
	// Items in it get their subcategory copied to MemberSubcategory.
	MembersCategory string

	// FeaturedItems holds the rules used to flag featured items.
	FeaturedItems []FeaturedItemRule

	// Images references the images used by the web application.
	Images Images
}

// FeaturedItemRule flags items whose Field matches one of the options.
type FeaturedItemRule struct {
	// Field is the item field the rule applies to. Only "maturity" and
	// "subcategory" are supported.
	Field string

	Options []FeaturedItemRuleOption
}

// FeaturedItemRuleOption maps an item field value to a featured label.
type FeaturedItemRuleOption struct {
	Value string
	Label string
	Order int
}

// Images references the images used by the web application. Remote
// references are replaced by the local copy during the build.
type Images struct {
	Favicon    string
	HeaderLogo string
	FooterLogo string
	OpenGraph  string
}

// Supported featured-item rule fields.
const (
	FeaturedFieldMaturity    = "maturity"
	FeaturedFieldSubcategory = "subcategory"
)
