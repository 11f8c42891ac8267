/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cluster-reader/pkg/defaults"
	"github.com/NVIDIA/cluster-reader/pkg/serializer"
	"github.com/NVIDIA/cluster-reader/pkg/source"
)

// globalFlags returns fresh instances of the flags shared by every command.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		newKubeconfigFlag(),
		newContextFlag(),
		newSourceFlag(),
		newTimeoutFlag(),
		newParallelismFlag(),
		newLenientFlag(),
		newOutputFlag(),
		newFormatFlag(),
		newDebugFlag(),
		newLogJSONFlag(),
	}
}

func newKubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig file (default: in-cluster, then ~/.kube/config)",
		Sources: cli.EnvVars("KUBECONFIG"),
	}
}

func newContextFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "context",
		Usage: "Kubeconfig context to use",
	}
}

func newSourceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "source",
		Aliases: []string{"s"},
		Value:   string(source.KindKubectl),
		Usage:   fmt.Sprintf("Where cluster text is read from (%s)", strings.Join(source.Kinds(), ", ")),
		Sources: cli.EnvVars(source.EnvKind),
	}
}

func newTimeoutFlag() cli.Flag {
	return &cli.DurationFlag{
		Name:  "timeout",
		Value: source.DefaultTimeout,
		Usage: "Timeout for each call to the cluster",
	}
}

func newParallelismFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "parallelism",
		Aliases: []string{"p"},
		Value:   defaults.CLIParallelism,
		Usage:   "Number of concurrent describe or manifest fetches",
	}
}

func newLenientFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "lenient",
		Usage: "Match record sections anywhere in the text instead of in strict order",
	}
}

func newOutputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output destination: file path, ConfigMap URI (cm://namespace/name), or stdout (default)",
	}
}

func newFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage:   fmt.Sprintf("Output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func newDebugFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
}

func newLogJSONFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "log-json",
		Usage: "Output logs in JSON format",
	}
}
