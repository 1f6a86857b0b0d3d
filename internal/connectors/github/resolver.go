package github

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseRepoURL extracts the owner and name of a github.com repository URL.
// A trailing ".git" suffix and any path beyond owner/name are ignored.
func ParseRepoURL(repoURL string) (owner, name string, err error) {
	u, err := url.Parse(strings.TrimSpace(repoURL))
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRepoURL, repoURL)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "github.com" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRepoURL, repoURL)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRepoURL, repoURL)
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}
