package github

import (
	"context"
	"errors"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.GitHubSource = (*Client)(nil)

// Repository collects the metadata of the repository at repoURL.
func (c *Client) Repository(ctx context.Context, repoURL string) (*domain.GitHubData, error) {
	owner, name, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}
	if len(c.sessions) == 0 {
		return nil, errNoSessions
	}
	s := c.session()

	repo, err := s.repository(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	languages, err := s.languages(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	contributors, err := s.contributorsCount(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	latest, first, err := s.commits(ctx, owner, name, repo.GetDefaultBranch())
	if err != nil {
		return nil, err
	}
	release, err := s.latestRelease(ctx, owner, name)
	if err != nil {
		return nil, err
	}

	data := &domain.GitHubData{
		Description:       repo.GetDescription(),
		Homepage:          repo.GetHomepage(),
		Stars:             repo.GetStargazersCount(),
		Forks:             repo.GetForksCount(),
		OpenIssues:        repo.GetOpenIssuesCount(),
		Topics:            repo.Topics,
		License:           licenseName(repo.GetLicense()),
		Languages:         languages,
		ContributorsCount: contributors,
		DefaultBranch:     repo.GetDefaultBranch(),
		Archived:          repo.GetArchived(),
		FirstCommit:       first,
		LatestCommit:      latest,
		LatestRelease:     release,
		URL:               repoURL,
		GeneratedAt:       time.Now().UTC(),
	}
	if created := repo.GetCreatedAt(); !created.IsZero() {
		t := created.UTC()
		data.CreatedAt = &t
	}
	return data, nil
}

func (s *session) repository(ctx context.Context, owner, name string) (*gh.Repository, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	repo, resp, err := s.gh.Repositories.Get(ctx, owner, name)
	s.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, s.wrapError(err, "get repo")
	}
	return repo, nil
}

func (s *session) languages(ctx context.Context, owner, name string) (map[string]int, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	languages, resp, err := s.gh.Repositories.ListLanguages(ctx, owner, name)
	s.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, s.wrapError(err, "list languages")
	}
	return languages, nil
}

// contributorsCount requests a single contributor per page so the last page
// number equals the total.
func (s *session) contributorsCount(ctx context.Context, owner, name string) (int, error) {
	if err := s.wait(ctx); err != nil {
		return 0, err
	}
	opts := &gh.ListContributorsOptions{
		Anon:        "true",
		ListOptions: gh.ListOptions{PerPage: 1},
	}
	contributors, resp, err := s.gh.Repositories.ListContributors(ctx, owner, name, opts)
	s.updateRateLimitFromResponse(resp)
	if err != nil {
		return 0, s.wrapError(err, "list contributors")
	}
	if resp != nil && resp.LastPage > 0 {
		return resp.LastPage, nil
	}
	return len(contributors), nil
}

// commits returns the latest and first commits of branch, both nil for
// empty repositories. Commits are listed one per page, newest first, so the
// last page holds the first commit.
func (s *session) commits(ctx context.Context, owner, name, branch string) (latest, first *domain.Commit, err error) {
	latest, lastPage, err := s.commitPage(ctx, owner, name, branch, 1)
	if err != nil || latest == nil {
		return nil, nil, err
	}
	if lastPage <= 1 {
		return latest, latest, nil
	}
	first, _, err = s.commitPage(ctx, owner, name, branch, lastPage)
	if err != nil {
		return nil, nil, err
	}
	return latest, first, nil
}

// commitPage returns the single commit on page along with the number of the
// last page.
func (s *session) commitPage(ctx context.Context, owner, name, branch string, page int) (*domain.Commit, int, error) {
	if err := s.wait(ctx); err != nil {
		return nil, 0, err
	}
	opts := &gh.CommitsListOptions{
		SHA:         branch,
		ListOptions: gh.ListOptions{Page: page, PerPage: 1},
	}
	commits, resp, err := s.gh.Repositories.ListCommits(ctx, owner, name, opts)
	s.updateRateLimitFromResponse(resp)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusConflict {
			return nil, 0, nil
		}
		return nil, 0, s.wrapError(err, "list commits")
	}
	if len(commits) == 0 {
		return nil, 0, nil
	}

	lastPage := 0
	if resp != nil {
		lastPage = resp.LastPage
	}
	c := commits[0]
	return &domain.Commit{
		URL: c.GetHTMLURL(),
		TS:  c.GetCommit().GetCommitter().GetDate().UTC(),
	}, lastPage, nil
}

// latestRelease returns nil when the repository has no releases.
func (s *session) latestRelease(ctx context.Context, owner, name string) (*domain.Release, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	release, resp, err := s.gh.Repositories.GetLatestRelease(ctx, owner, name)
	s.updateRateLimitFromResponse(resp)
	if err != nil {
		wrapped := s.wrapError(err, "get latest release")
		if IsNotFound(wrapped) {
			return nil, nil
		}
		return nil, wrapped
	}

	ts := release.GetPublishedAt()
	if ts.IsZero() {
		ts = release.GetCreatedAt()
	}
	return &domain.Release{URL: release.GetHTMLURL(), TS: ts.UTC()}, nil
}

func licenseName(license *gh.License) string {
	if license == nil {
		return ""
	}
	if id := license.GetSPDXID(); id != "" && id != "NOASSERTION" {
		return id
	}
	return license.GetName()
}

// errNoSessions guards against a zero-value Client.
var errNoSessions = errors.New("github: client has no sessions")
