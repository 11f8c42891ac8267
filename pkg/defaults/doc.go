// Package defaults provides centralized configuration constants for
// cluster-reader.
//
// This package defines timeout values, concurrency limits and rate limits
// used across the codebase.
//
// # Timeout Categories
//
//   - Source timeouts: bound each call to the cluster (kubectl or API server)
//   - Server timeouts: HTTP server configuration
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/cluster-reader/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.SourceTimeout)
//	defer cancel()
//
// # Guidelines
//
//   - Source calls: 30s
//   - Fetch parallelism: 1 for the CLI, 4 for the server
//   - Server shutdown: 30s for graceful shutdown
package defaults
