/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cluster-reader/pkg/logging"
)

const name = "clusterreader"

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/cluster-reader/pkg/cli.version=1.0.0"
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Read node and deployment inventories from a Kubernetes cluster",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `Reads "kubectl describe node" output and deployment manifests and turns
them into structured node and deployment records.

Examples:
  clusterreader nodes --format table
  clusterreader deployments --parallelism 8 --output deployments.yaml
  clusterreader namespaces --source api --context staging
  clusterreader serve --port 8080`,
		Flags: globalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := logging.ParseLevel(os.Getenv(logging.EnvLogLevel))
			if cmd.Bool("debug") {
				level = logging.ParseLevel("debug")
			}
			logging.SetDefaultCLILogger(level, cmd.Bool("log-json"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			nodesCmd(),
			deploymentsCmd(),
			namespacesCmd(),
			serveCmd(),
		},
		ShellComplete: commandLister,
	}
}

// commandLister prints the visible subcommands for shell completion.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintln(w, c.Name)
	}
}
