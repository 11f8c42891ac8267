/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package source

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/NVIDIA/cluster-reader/pkg/defaults"
	"github.com/NVIDIA/cluster-reader/pkg/errors"
)

// Kind selects the Source implementation.
type Kind string

const (
	// KindKubectl shells out to the kubectl binary.
	KindKubectl Kind = "kubectl"
	// KindAPI talks to the API server through client-go.
	KindAPI Kind = "api"
)

const (
	// EnvKind overrides the default source kind.
	EnvKind = "CLUSTER_READER_SOURCE"

	DefaultBinary  = "kubectl"
	DefaultTimeout = defaults.SourceTimeout
)

// Kinds returns the supported source kinds.
func Kinds() []string {
	return []string{string(KindKubectl), string(KindAPI)}
}

// ParseKind converts s into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindKubectl, KindAPI:
		return k, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown source %q, must be one of %s", s, strings.Join(Kinds(), ", ")))
	}
}

// Config holds the settings shared by every Source implementation.
type Config struct {
	Kind Kind

	// Kubeconfig is the kubeconfig path. Empty uses the client defaults.
	Kubeconfig string

	// Context is the kubeconfig context. Empty uses the current context.
	Context string

	// Timeout bounds each individual call to the cluster.
	Timeout time.Duration

	// Binary is the kubectl executable, used by KindKubectl only.
	Binary string
}

// DefaultConfig returns a kubectl based configuration.
func DefaultConfig() Config {
	return Config{
		Kind:    KindKubectl,
		Timeout: DefaultTimeout,
		Binary:  DefaultBinary,
	}
}

// Validate checks the configuration before any cluster call is made.
func (c Config) Validate() error {
	if _, err := ParseKind(string(c.Kind)); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "timeout must not be negative")
	}
	return ValidateKubeconfig(c.Kubeconfig)
}

// ValidateKubeconfig checks that path, when set, names an existing file.
func ValidateKubeconfig(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "kubeconfig not accessible", err,
			map[string]any{"path": path})
	}
	if info.IsDir() {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "kubeconfig is a directory", nil,
			map[string]any{"path": path})
	}
	return nil
}
