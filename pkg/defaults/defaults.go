/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package defaults

import "time"

// Source timeouts.
const (
	// SourceTimeout bounds a single kubectl invocation or API request.
	SourceTimeout = 30 * time.Second
)

// Fetch parallelism per pipeline.
const (
	// CLIParallelism keeps the CLI serial unless asked otherwise.
	CLIParallelism = 1

	// ServerParallelism is used by the HTTP service.
	ServerParallelism = 4
)

// Server settings.
const (
	ServerPort            = 8080
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 120 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second

	// ServerRateLimit is in requests per second.
	ServerRateLimit      = 20
	ServerRateLimitBurst = 40
)
