// Package connectors holds the clients of the remote services landscape
// items are enriched from. Each sub-package implements one of the source
// ports in core/ports/driven (GitHub repositories, Crunchbase
// organizations) and owns its own rate limiting.
package connectors
