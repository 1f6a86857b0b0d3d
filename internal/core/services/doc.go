// Package services implements the driving port interfaces.
// Services contain the core build logic and orchestrate calls to driven
// ports (adapters): the bounded task runner, the cache-backed fetcher, the
// logo processor, the external data collectors and the build orchestrator.
package services
