package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// GitHubData is the enrichment record collected for one repository URL.
type GitHubData struct {
	Description       string         `json:"description,omitempty"`
	Homepage          string         `json:"homepage,omitempty"`
	Stars             int            `json:"stars"`
	Forks             int            `json:"forks"`
	OpenIssues        int            `json:"open_issues"`
	Topics            []string       `json:"topics,omitempty"`
	License           string         `json:"license,omitempty"`
	Languages         map[string]int `json:"languages,omitempty"`
	ContributorsCount int            `json:"contributors_count"`
	DefaultBranch     string         `json:"default_branch,omitempty"`
	Archived          bool           `json:"archived,omitempty"`
	CreatedAt         *time.Time     `json:"created_at,omitempty"`
	FirstCommit       *Commit        `json:"first_commit,omitempty"`
	LatestCommit      *Commit        `json:"latest_commit,omitempty"`
	LatestRelease     *Release       `json:"latest_release,omitempty"`
	URL               string         `json:"url"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

// Commit describes a single commit.
type Commit struct {
	URL string    `json:"url"`
	TS  time.Time `json:"ts"`
}

// Release describes a single release.
type Release struct {
	URL string    `json:"url"`
	TS  time.Time `json:"ts"`
}

// CrunchbaseData is the enrichment record collected for one organization URL.
type CrunchbaseData struct {
	Name            string         `json:"name,omitempty"`
	Description     string         `json:"description,omitempty"`
	City            string         `json:"city,omitempty"`
	Region          string         `json:"region,omitempty"`
	Country         string         `json:"country,omitempty"`
	HomepageURL     string         `json:"homepage_url,omitempty"`
	CompanyType     string         `json:"company_type,omitempty"`
	Funding         int64          `json:"funding,omitempty"`
	FundingRounds   []FundingRound `json:"funding_rounds,omitempty"`
	Acquisitions    int            `json:"acquisitions,omitempty"`
	NumEmployeesMin int            `json:"num_employees_min,omitempty"`
	NumEmployeesMax int            `json:"num_employees_max,omitempty"`
	StockExchange   string         `json:"stock_exchange,omitempty"`
	Ticker          string         `json:"ticker,omitempty"`
	LinkedInURL     string         `json:"linkedin_url,omitempty"`
	TwitterURL      string         `json:"twitter_url,omitempty"`
	Categories      []string       `json:"categories,omitempty"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// FundingRound captures a single funding event.
type FundingRound struct {
	Amount      *int64     `json:"amount,omitempty"`
	AnnouncedOn *time.Time `json:"announced_on,omitempty"`
	Kind        string     `json:"kind,omitempty"`
}

// LogoAsset is a normalised logo identified by the digest of its bytes.
type LogoAsset struct {
	// Digest is the hex-encoded SHA-256 of Data.
	Digest string

	// Data holds the normalised bytes.
	Data []byte
}

// NewLogoAsset builds the asset of already normalised logo bytes.
func NewLogoAsset(normalised []byte) LogoAsset {
	sum := sha256.Sum256(normalised)
	return LogoAsset{Digest: hex.EncodeToString(sum[:]), Data: normalised}
}
