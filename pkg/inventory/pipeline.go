/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// FetchFunc returns the raw text for one identifier.
type FetchFunc func(ctx context.Context, id string) (string, error)

// BuildFunc turns the raw text of one identifier into a record. Returning
// false leaves the identifier out of the result.
type BuildFunc[R any] func(id, raw string) (R, bool)

// Collect fetches and builds one record per identifier in ids, running at
// most parallelism fetches at a time. The result keeps the order of ids.
// The first fetch error cancels the remaining work and is returned alone.
func Collect[R any](ctx context.Context, ids []string, fetch FetchFunc, build BuildFunc[R], parallelism int) ([]R, error) {
	if parallelism < 1 {
		parallelism = 1
	}

	results := make([]R, len(ids))
	kept := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raw, err := fetch(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to fetch %q: %w", id, err)
			}
			results[i], kept[i] = build(id, raw)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]R, 0, len(ids))
	for i := range results {
		if kept[i] {
			out = append(out, results[i])
		}
	}
	return out, nil
}

// ParseIdentifiers turns "kind/name" tokens as printed by
// "kubectl get --output=name" into sorted names. Everything up to and
// including the first '/' is stripped. Blank lines are skipped, and so are
// tokens without a name part.
func ParseIdentifiers(lines []string) []string {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		_, name, ok := strings.Cut(l, "/")
		if !ok || name == "" {
			slog.Warn("skipping identifier without name", slog.String("token", l))
			continue
		}
		ids = append(ids, name)
	}
	sort.Strings(ids)
	return ids
}
