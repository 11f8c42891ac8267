/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package kubectl implements source.Source by running the kubectl binary.
package kubectl

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/NVIDIA/cluster-reader/pkg/errors"
)

// Runner executes one command and returns what it wrote to stdout and
// stderr.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, name string, args ...string) ([]byte, []byte, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return f(ctx, name, args...)
}

// ExecRunner runs commands with os/exec, inheriting the process environment.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Option is a functional option for configuring Source instances.
type Option func(*Source)

// WithBinary sets the kubectl executable name or path.
func WithBinary(binary string) Option {
	return func(s *Source) {
		if binary != "" {
			s.binary = binary
		}
	}
}

// WithKubeconfig passes --kubeconfig to every command.
func WithKubeconfig(path string) Option {
	return func(s *Source) {
		s.kubeconfig = path
	}
}

// WithContext passes --context to every command.
func WithContext(name string) Option {
	return func(s *Source) {
		s.kubeContext = name
	}
}

// WithTimeout bounds every command. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithRunner replaces the command runner, typically in tests.
func WithRunner(r Runner) Option {
	return func(s *Source) {
		if r != nil {
			s.runner = r
		}
	}
}

// Source reads cluster state through kubectl.
type Source struct {
	binary      string
	kubeconfig  string
	kubeContext string
	timeout     time.Duration
	runner      Runner
}

// New creates a Source running "kubectl" through ExecRunner.
func New(opts ...Option) *Source {
	s := &Source{
		binary: "kubectl",
		runner: ExecRunner{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListNodeNames runs "kubectl get nodes --output=name".
func (s *Source) ListNodeNames(ctx context.Context) ([]string, error) {
	out, err := s.run(ctx, "get", "nodes", "--output=name")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// DescribeNode runs "kubectl describe node <name>".
func (s *Source) DescribeNode(ctx context.Context, name string) (string, error) {
	return s.run(ctx, "describe", "node", name)
}

// ListNamespaceNames runs "kubectl get namespaces --output=name".
func (s *Source) ListNamespaceNames(ctx context.Context) ([]string, error) {
	out, err := s.run(ctx, "get", "namespaces", "--output=name")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// ListDeploymentNames runs "kubectl get deployments -n <namespace> --output=name".
func (s *Source) ListDeploymentNames(ctx context.Context, namespace string) ([]string, error) {
	out, err := s.run(ctx, "get", "deployments", "-n", namespace, "--output=name")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// FetchDeploymentManifest runs "kubectl get deployment <name> -n <namespace> -o yaml".
func (s *Source) FetchDeploymentManifest(ctx context.Context, name, namespace string) (string, error) {
	return s.run(ctx, "get", "deployment", name, "-n", namespace, "-o", "yaml")
}

func (s *Source) args(args []string) []string {
	full := make([]string, 0, len(args)+2)
	if s.kubeconfig != "" {
		full = append(full, "--kubeconfig="+s.kubeconfig)
	}
	if s.kubeContext != "" {
		full = append(full, "--context="+s.kubeContext)
	}
	return append(full, args...)
}

func (s *Source) run(ctx context.Context, args ...string) (string, error) {
	full := s.args(args)
	command := s.binary + " " + strings.Join(full, " ")

	if err := ctx.Err(); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeUnavailable, "kubectl command not started", err,
			map[string]any{"command": command})
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	stdout, stderr, err := s.runner.Run(ctx, s.binary, full...)
	slog.Debug("kubectl command finished",
		slog.String("command", command),
		slog.Duration("duration", time.Since(start)),
		slog.Bool("ok", err == nil))

	if err != nil {
		details := map[string]any{"command": command}
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			details["stderr"] = msg
		}
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errors.WrapWithContext(errors.ErrCodeTimeout, "kubectl command timed out", err, details)
		}
		return "", errors.WrapWithContext(errors.ErrCodeUnavailable, "kubectl command failed", err, details)
	}

	return string(stdout), nil
}

func lines(out string) []string {
	out = strings.TrimRight(strings.ReplaceAll(out, "\r\n", "\n"), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
