/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/NVIDIA/cluster-reader/pkg/defaults"
	"github.com/NVIDIA/cluster-reader/pkg/inventory"
	"github.com/NVIDIA/cluster-reader/pkg/logging"
	"github.com/NVIDIA/cluster-reader/pkg/parser"
	"github.com/NVIDIA/cluster-reader/pkg/server"
	"github.com/NVIDIA/cluster-reader/pkg/source"
)

const (
	name           = "cluster-reader-api"
	versionDefault = "dev"

	// DefaultParallelism is the per-pipeline fetch concurrency of the server.
	DefaultParallelism = defaults.ServerParallelism
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/cluster-reader/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Config controls what the API server reads and how it listens.
type Config struct {
	// Source selects and configures the cluster source.
	Source source.Config

	// Factory creates the source. Defaults to source.NewDefaultFactory().
	Factory source.Factory

	// Parallelism is the fetch concurrency per pipeline.
	Parallelism int

	// Lenient switches the parser to lenient grammar matching.
	Lenient bool

	// Server overrides the listener configuration.
	Server *server.Config
}

// DefaultConfig returns the server defaults. The source kind and kubeconfig
// can be set with CLUSTER_READER_SOURCE and KUBECONFIG.
func DefaultConfig() Config {
	cfg := Config{
		Source:      source.DefaultConfig(),
		Parallelism: DefaultParallelism,
		Server:      server.DefaultConfig(),
	}

	if v := os.Getenv(source.EnvKind); v != "" {
		kind, err := source.ParseKind(v)
		if err != nil {
			slog.Warn("ignoring invalid source kind", "env", source.EnvKind, "value", v)
		} else {
			cfg.Source.Kind = kind
		}
	}
	cfg.Source.Kubeconfig = os.Getenv("KUBECONFIG")

	return cfg
}

// Serve starts the API server and blocks until shutdown.
// It configures logging, sets up routes, and handles graceful shutdown.
// Returns an error if the server fails to start or encounters a fatal error.
func Serve(ctx context.Context, cfg Config) error {
	if cfg.Server == nil {
		cfg.Server = server.DefaultConfig()
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.Server.LogLevel)
	slog.Info("starting",
		"commit", commit,
		"date", date,
		"source", cfg.Source.Kind,
		"parallelism", cfg.Parallelism,
	)

	inv, err := newInventory(cfg)
	if err != nil {
		slog.Error("failed to initialize inventory", "error", err)
		return err
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithConfig(cfg.Server),
		server.WithHandler(NewHandler(inv).Routes()),
		server.WithOnReady(notifyReady),
	)

	err = s.Run(ctx)
	notify(daemon.SdNotifyStopping)
	if err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

func newInventory(cfg Config) (*inventory.Inventory, error) {
	factory := cfg.Factory
	if factory == nil {
		factory = source.NewDefaultFactory()
	}

	src, err := factory.Create(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s source: %w", cfg.Source.Kind, err)
	}

	mode := parser.Strict
	if cfg.Lenient {
		mode = parser.Lenient
	}

	return &inventory.Inventory{
		Source:      src,
		Parser:      parser.New(parser.WithMode(mode)),
		Parallelism: cfg.Parallelism,
	}, nil
}

func notifyReady() {
	notify(daemon.SdNotifyReady)
}

// notify is a no-op outside systemd.
func notify(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		slog.Warn("sd_notify failed", "state", state, "error", err)
		return
	}
	if sent {
		slog.Debug("sd_notify sent", "state", state)
	}
}
