/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
)

func nodesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "nodes",
		Aliases:               []string{"cluster-info"},
		EnableShellCompletion: true,
		Usage:                 "Describe every node and extract its inventory record",
		Description: `Lists the cluster nodes, runs "kubectl describe node" on each one and
extracts name, roles, labels, annotations, creation timestamp, capacity and
allocatable resources.

Nodes whose description does not match the expected layout are left out.
Use --lenient to accept descriptions with reordered or missing sections.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			inv, err := newInventory(cmd)
			if err != nil {
				return err
			}

			out, err := inv.Cluster(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect node inventory: %w", err)
			}
			slog.Debug("node inventory collected", slog.Int("nodes", len(out.Nodes)))

			return writeOutput(ctx, cmd, outFormat, out)
		},
	}
}

func deploymentsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "deployments",
		Aliases:               []string{"deployment-details"},
		EnableShellCompletion: true,
		Usage:                 "Extract replicas, image and resources of every deployment",
		Description: `Walks every namespace, fetches each deployment manifest and extracts
apiVersion, kind, replicas, the first container image and its resource
limits and requests.

Every namespace is reported, including those without deployments. Fields
missing from a manifest keep their default and are listed in defaultedFields.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			inv, err := newInventory(cmd)
			if err != nil {
				return err
			}

			out, err := inv.Deployments(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect deployment inventory: %w", err)
			}

			return writeOutput(ctx, cmd, outFormat, out)
		},
	}
}

func namespacesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "namespaces",
		Aliases:               []string{"ns"},
		EnableShellCompletion: true,
		Usage:                 "List namespace names",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			inv, err := newInventory(cmd)
			if err != nil {
				return err
			}

			out, err := inv.Namespaces(ctx)
			if err != nil {
				return fmt.Errorf("failed to list namespaces: %w", err)
			}

			return writeOutput(ctx, cmd, outFormat, out)
		},
	}
}
