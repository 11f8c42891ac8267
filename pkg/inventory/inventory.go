/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/cluster-reader/pkg/errors"
	"github.com/NVIDIA/cluster-reader/pkg/source"
)

// Parser turns raw source text into records.
type Parser interface {
	// Node returns false when raw is not a node description.
	Node(raw string) (*NodeRecord, bool)
	// Deployment always returns a record, with defaults where raw is lacking.
	Deployment(raw, name string) DeploymentRecord
}

// Inventory assembles cluster inventories from a Source.
type Inventory struct {
	// Source supplies the raw cluster text.
	Source source.Source

	// Parser turns the text into records.
	Parser Parser

	// Parallelism is the number of concurrent fetches per pipeline.
	// Values below 1 mean serial.
	Parallelism int
}

// Cluster lists the nodes, describes each one and parses the descriptions.
// Descriptions that do not parse are left out.
func (inv *Inventory) Cluster(ctx context.Context) (*ClusterInventory, error) {
	const pipeline = "cluster"
	done := inv.track(pipeline)

	if err := inv.check(); err != nil {
		return nil, done(err, 0)
	}

	lines, err := inv.Source.ListNodeNames(ctx)
	if err != nil {
		return nil, done(fmt.Errorf("failed to list nodes: %w", err), 0)
	}
	names := ParseIdentifiers(lines)
	slog.Debug("collecting nodes", slog.Int("count", len(names)))

	nodes, err := Collect(ctx, names, inv.Source.DescribeNode, func(name, raw string) (NodeRecord, bool) {
		rec, ok := inv.Parser.Node(raw)
		if !ok {
			nodesDropped.Inc()
			slog.Debug("node description did not match, dropping node", slog.String("node", name))
			return NodeRecord{}, false
		}
		observeDefaults("node", rec.DefaultedFields)
		return *rec, true
	}, inv.Parallelism)
	if err != nil {
		return nil, done(fmt.Errorf("failed to describe nodes: %w", err), 0)
	}

	return &ClusterInventory{Nodes: nodes}, done(nil, len(nodes))
}

// Deployments fetches the manifest of every deployment in every namespace.
// Every namespace gets an entry, including those without deployments.
func (inv *Inventory) Deployments(ctx context.Context) (*DeploymentInventory, error) {
	const pipeline = "deployments"
	done := inv.track(pipeline)

	if err := inv.check(); err != nil {
		return nil, done(err, 0)
	}

	namespaces, err := inv.namespaces(ctx)
	if err != nil {
		return nil, done(err, 0)
	}

	out := &DeploymentInventory{Namespaces: make([]NamespaceAggregate, 0, len(namespaces))}
	total := 0
	for _, ns := range namespaces {
		agg, err := inv.namespaceDeployments(ctx, ns)
		if err != nil {
			return nil, done(err, 0)
		}
		total += len(agg.Deployments)
		out.Namespaces = append(out.Namespaces, agg)
	}

	return out, done(nil, total)
}

// Namespaces lists the namespace names in sorted order.
func (inv *Inventory) Namespaces(ctx context.Context) (*NamespaceList, error) {
	const pipeline = "namespaces"
	done := inv.track(pipeline)

	if inv.Source == nil {
		return nil, done(errors.New(errors.ErrCodeInternal, "inventory source not configured"), 0)
	}

	names, err := inv.namespaces(ctx)
	if err != nil {
		return nil, done(err, 0)
	}
	return &NamespaceList{Namespaces: names}, done(nil, len(names))
}

func (inv *Inventory) namespaces(ctx context.Context) ([]string, error) {
	lines, err := inv.Source.ListNamespaceNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}
	return ParseIdentifiers(lines), nil
}

func (inv *Inventory) namespaceDeployments(ctx context.Context, ns string) (NamespaceAggregate, error) {
	lines, err := inv.Source.ListDeploymentNames(ctx, ns)
	if err != nil {
		return NamespaceAggregate{}, fmt.Errorf("failed to list deployments in namespace %q: %w", ns, err)
	}
	names := ParseIdentifiers(lines)
	slog.Debug("collecting deployments", slog.String("namespace", ns), slog.Int("count", len(names)))

	fetch := func(ctx context.Context, name string) (string, error) {
		return inv.Source.FetchDeploymentManifest(ctx, name, ns)
	}
	records, err := Collect(ctx, names, fetch, func(name, raw string) (DeploymentRecord, bool) {
		rec := inv.Parser.Deployment(raw, name)
		observeDefaults("deployment", rec.DefaultedFields)
		return rec, true
	}, inv.Parallelism)
	if err != nil {
		return NamespaceAggregate{}, fmt.Errorf("failed to fetch deployments in namespace %q: %w", ns, err)
	}

	return NamespaceAggregate{Namespace: ns, Deployments: records}, nil
}

func (inv *Inventory) check() error {
	if inv.Source == nil {
		return errors.New(errors.ErrCodeInternal, "inventory source not configured")
	}
	if inv.Parser == nil {
		return errors.New(errors.ErrCodeInternal, "inventory parser not configured")
	}
	return nil
}

// track starts timing a pipeline run. The returned function records the
// outcome and passes err through.
func (inv *Inventory) track(pipeline string) func(err error, records int) error {
	start := time.Now()
	return func(err error, records int) error {
		pipelineDuration.WithLabelValues(pipeline).Observe(time.Since(start).Seconds())
		if err != nil {
			pipelineTotal.WithLabelValues(pipeline, "error").Inc()
			slog.Error("inventory pipeline failed", slog.String("pipeline", pipeline), slog.String("error", err.Error()))
			return err
		}
		pipelineTotal.WithLabelValues(pipeline, "success").Inc()
		pipelineRecords.WithLabelValues(pipeline).Set(float64(records))
		slog.Debug("inventory pipeline complete",
			slog.String("pipeline", pipeline),
			slog.Int("records", records),
			slog.Duration("duration", time.Since(start)))
		return nil
	}
}
