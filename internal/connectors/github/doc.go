// Package github collects repository metadata from the GitHub REST API.
//
// A [Client] holds one go-github session per configured token and spreads
// requests across them round-robin, so large landscapes can use several
// tokens to stay within the hourly quota.
//
// # Rate Limiting
//
// Each session throttles itself in two ways:
//
//  1. Proactive throttling: a token bucket caps the request rate at
//     roughly 1.2 requests per second per token.
//
//  2. Reactive handling: X-RateLimit-Remaining and X-RateLimit-Reset are
//     tracked per session. When the remaining quota falls below a small
//     buffer, requests wait until the reset time.
//
// # Collected Fields
//
// For every repository the client gathers the repository record, the
// language breakdown, the contributors count, the latest commit on the
// default branch and the latest release when one exists.
//
// # Example Usage
//
//	client, err := github.NewClient(tokens)
//	if err != nil {
//	    return err
//	}
//	data, err := client.Repository(ctx, "https://github.com/owner/repo")
package github
