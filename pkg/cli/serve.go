/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cluster-reader/pkg/api"
	"github.com/NVIDIA/cluster-reader/pkg/server"
)

// serve is swapped in tests.
var serve = api.Serve

func serveCmd() *cli.Command {
	defaults := server.DefaultConfig()

	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Serve the inventories over HTTP",
		Description: fmt.Sprintf(`Starts an HTTP server with the routes:
  GET %s
  GET %s
  GET %s
  GET /health, /ready, /metrics

Responses are JSON unless ?format=yaml or an Accept header asking for YAML
is sent. The server signals readiness to systemd when run as a notify unit.`,
			api.PathClusterInfo, api.PathNamespaces, api.PathDeploymentDetails),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Value: defaults.Address,
				Usage: "Address to listen on (default: all interfaces)",
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   defaults.Port,
				Usage:   "Port to listen on",
				Sources: cli.EnvVars(server.EnvPort),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			srcCfg, err := parseSourceConfig(cmd)
			if err != nil {
				return err
			}

			cfg := api.DefaultConfig()
			cfg.Source = srcCfg
			cfg.Factory = sourceFactory
			cfg.Lenient = cmd.Bool("lenient")
			if cmd.IsSet("parallelism") {
				cfg.Parallelism = cmd.Int("parallelism")
			}
			if cmd.Bool("debug") {
				cfg.Server.LogLevel = "debug"
			}
			cfg.Server.Address = cmd.String("address")
			cfg.Server.Port = cmd.Int("port")

			return serve(ctx, cfg)
		},
	}
}
