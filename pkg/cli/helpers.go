/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cluster-reader/pkg/inventory"
	"github.com/NVIDIA/cluster-reader/pkg/parser"
	"github.com/NVIDIA/cluster-reader/pkg/serializer"
	"github.com/NVIDIA/cluster-reader/pkg/source"
)

// maxSuggestDistance is the largest edit distance offered as a suggestion.
const maxSuggestDistance = 2

// sourceFactory creates the cluster source for every command.
var sourceFactory source.Factory = source.NewDefaultFactory()

// parseOutputFormat extracts and validates the output format from CLI flags.
// Without an explicit --format the output path extension decides.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	if !cmd.IsSet("format") {
		if out := strings.TrimSpace(cmd.String("output")); out != "" && !strings.HasPrefix(out, serializer.ConfigMapURIScheme) {
			return serializer.FormatFromPath(out), nil
		}
	}

	raw := strings.ToLower(strings.TrimSpace(cmd.String("format")))
	outFormat := serializer.Format(raw)
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q%s, valid formats are: %s",
			raw, didYouMean(raw, serializer.SupportedFormats()), strings.Join(serializer.SupportedFormats(), ", "))
	}
	return outFormat, nil
}

// parseSourceConfig builds the source configuration from CLI flags.
func parseSourceConfig(cmd *cli.Command) (source.Config, error) {
	raw := cmd.String("source")
	kind, err := source.ParseKind(raw)
	if err != nil {
		return source.Config{}, fmt.Errorf("invalid --source %q%s, valid sources are: %s",
			raw, didYouMean(strings.ToLower(raw), source.Kinds()), strings.Join(source.Kinds(), ", "))
	}

	cfg := source.DefaultConfig()
	cfg.Kind = kind
	cfg.Kubeconfig = cmd.String("kubeconfig")
	cfg.Context = cmd.String("context")
	cfg.Timeout = cmd.Duration("timeout")

	if err := cfg.Validate(); err != nil {
		return source.Config{}, err
	}
	return cfg, nil
}

// parserMode maps --lenient to a parser mode.
func parserMode(cmd *cli.Command) parser.Mode {
	if cmd.Bool("lenient") {
		return parser.Lenient
	}
	return parser.Strict
}

// newInventory wires a source and parser from CLI flags.
func newInventory(cmd *cli.Command) (*inventory.Inventory, error) {
	cfg, err := parseSourceConfig(cmd)
	if err != nil {
		return nil, err
	}

	parallelism := cmd.Int("parallelism")
	if parallelism < 1 {
		return nil, fmt.Errorf("invalid --parallelism %d: must be at least 1", parallelism)
	}

	src, err := sourceFactory.Create(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s source: %w", cfg.Kind, err)
	}

	slog.Debug("inventory configured",
		slog.String("source", string(cfg.Kind)),
		slog.String("context", cfg.Context),
		slog.Int("parallelism", parallelism),
		slog.String("mode", parserMode(cmd).String()),
	)

	return &inventory.Inventory{
		Source:      src,
		Parser:      parser.New(parser.WithMode(parserMode(cmd))),
		Parallelism: parallelism,
	}, nil
}

// writeOutput serializes data to the --output destination.
func writeOutput(ctx context.Context, cmd *cli.Command, outFormat serializer.Format, data any) error {
	w, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	if err != nil {
		return err
	}
	if closer, ok := w.(serializer.Closer); ok {
		defer func() {
			if cerr := closer.Close(); cerr != nil {
				slog.Warn("failed to close output", "error", cerr)
			}
		}()
	}

	return w.Serialize(ctx, data)
}

// didYouMean returns a suggestion suffix for the closest candidate to
// value, or an empty string when none is close enough.
func didYouMean(value string, candidates []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(value, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" || value == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
