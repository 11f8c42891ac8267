/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package kubeapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"sigs.k8s.io/yaml"

	"github.com/NVIDIA/cluster-reader/pkg/errors"
	"github.com/NVIDIA/cluster-reader/pkg/k8s/client"
)

// Source reads cluster state from the API server.
type Source struct {
	// ClientSet is the client to use. If nil, one is built from Kubeconfig
	// and Context on first use.
	ClientSet kubernetes.Interface

	Kubeconfig string
	Context    string

	// Timeout bounds every API call. Zero disables the bound.
	Timeout time.Duration

	mu sync.Mutex
}

// ListNodeNames lists nodes as "node/<name>" tokens.
func (s *Source) ListNodeNames(ctx context.Context) ([]string, error) {
	ctx, cancel, err := s.prepare(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	list, err := s.ClientSet.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, apiError(ctx, "failed to list nodes", err, nil)
	}

	names := make([]string, 0, len(list.Items))
	for _, n := range list.Items {
		names = append(names, "node/"+n.Name)
	}
	slog.Debug("listed nodes", slog.Int("count", len(names)))
	return names, nil
}

// DescribeNode renders the node in "kubectl describe node" layout.
func (s *Source) DescribeNode(ctx context.Context, name string) (string, error) {
	ctx, cancel, err := s.prepare(ctx)
	if err != nil {
		return "", err
	}
	defer cancel()

	node, err := s.ClientSet.CoreV1().Nodes().Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return "", apiError(ctx, "failed to get node", err, map[string]any{"node": name})
	}
	return describeNode(node), nil
}

// ListNamespaceNames lists namespaces as "namespace/<name>" tokens.
func (s *Source) ListNamespaceNames(ctx context.Context) ([]string, error) {
	ctx, cancel, err := s.prepare(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	list, err := s.ClientSet.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, apiError(ctx, "failed to list namespaces", err, nil)
	}

	names := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		names = append(names, "namespace/"+ns.Name)
	}
	return names, nil
}

// ListDeploymentNames lists the deployments of namespace as
// "deployment.apps/<name>" tokens.
func (s *Source) ListDeploymentNames(ctx context.Context, namespace string) ([]string, error) {
	ctx, cancel, err := s.prepare(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	list, err := s.ClientSet.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, apiError(ctx, "failed to list deployments", err, map[string]any{"namespace": namespace})
	}

	names := make([]string, 0, len(list.Items))
	for _, d := range list.Items {
		names = append(names, "deployment.apps/"+d.Name)
	}
	return names, nil
}

// FetchDeploymentManifest renders the deployment as "kubectl get -o yaml"
// would, without managed fields.
func (s *Source) FetchDeploymentManifest(ctx context.Context, name, namespace string) (string, error) {
	ctx, cancel, err := s.prepare(ctx)
	if err != nil {
		return "", err
	}
	defer cancel()

	d, err := s.ClientSet.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return "", apiError(ctx, "failed to get deployment", err,
			map[string]any{"namespace": namespace, "deployment": name})
	}

	// Typed clients drop TypeMeta on decode.
	d.APIVersion = "apps/v1"
	d.Kind = "Deployment"
	d.ManagedFields = nil

	out, err := yaml.Marshal(d)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to render deployment", err)
	}
	return string(out), nil
}

func (s *Source) prepare(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeUnavailable, "request canceled", err)
	}

	if err := s.getClient(); err != nil {
		return nil, nil, err
	}

	if s.Timeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, s.Timeout)
		return ctx, cancel, nil
	}
	return ctx, func() {}, nil
}

func (s *Source) getClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ClientSet != nil {
		return nil
	}
	cs, _, err := client.BuildKubeClient(s.Kubeconfig, s.Context)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, "failed to get kubernetes client", err)
	}
	s.ClientSet = cs
	return nil
}

func apiError(ctx context.Context, msg string, err error, details map[string]any) error {
	code := errors.ErrCodeUnavailable
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		code = errors.ErrCodeTimeout
		msg = fmt.Sprintf("%s: deadline exceeded", msg)
	}
	return errors.WrapWithContext(code, msg, err, details)
}
