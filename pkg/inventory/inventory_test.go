/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package inventory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/cluster-reader/pkg/errors"
	"github.com/NVIDIA/cluster-reader/pkg/inventory"
	"github.com/NVIDIA/cluster-reader/pkg/parser"
)

// fakeSource serves canned kubectl output.
type fakeSource struct {
	nodes       []string
	describe    map[string]string
	namespaces  []string
	deployments map[string][]string
	manifests   map[string]string // keyed by namespace/name

	failOn string
}

func (f *fakeSource) fail(op string) error {
	if f.failOn == op {
		return errors.New(errors.ErrCodeUnavailable, op+" failed")
	}
	return nil
}

func (f *fakeSource) ListNodeNames(context.Context) ([]string, error) {
	return f.nodes, f.fail("nodes")
}

func (f *fakeSource) DescribeNode(_ context.Context, name string) (string, error) {
	return f.describe[name], f.fail("describe/" + name)
}

func (f *fakeSource) ListNamespaceNames(context.Context) ([]string, error) {
	return f.namespaces, f.fail("namespaces")
}

func (f *fakeSource) ListDeploymentNames(_ context.Context, ns string) ([]string, error) {
	return f.deployments[ns], f.fail("deployments/" + ns)
}

func (f *fakeSource) FetchDeploymentManifest(_ context.Context, name, ns string) (string, error) {
	return f.manifests[ns+"/"+name], f.fail("manifest/" + ns + "/" + name)
}

func describeNode(name string, cpu int) string {
	return fmt.Sprintf("Name:  %s\nRoles:  <none>\nLabels:  role=worker\nAnnotations:  <none>\n"+
		"CreationTimestamp:  2024-01-01T00:00:00Z\nCapacity:\n  cpu: %d\nAllocatable:\n  memory: 8000000Ki\nSystem Info:\n",
		name, cpu)
}

func manifest(replicas int, image string) string {
	return fmt.Sprintf("apiVersion: apps/v1\nkind: Deployment\nmetadata:\n  name: x\nspec:\n  replicas: %d\n"+
		"  template:\n    spec:\n      containers:\n      - image: %s\n        resources:\n"+
		"          limits:\n            cpu: 500m\n          requests:\n            memory: 128Mi\nstatus: {}\n",
		replicas, image)
}

func newInventory(src *fakeSource, parallelism int) *inventory.Inventory {
	return &inventory.Inventory{
		Source:      src,
		Parser:      parser.New(),
		Parallelism: parallelism,
	}
}

func TestInventory_Cluster(t *testing.T) {
	src := &fakeSource{
		nodes: []string{"node/worker-2", "node/broken", "node/worker-1", "", "node/control-plane"},
		describe: map[string]string{
			"worker-1":      describeNode("worker-1", 4),
			"worker-2":      describeNode("worker-2", 8),
			"control-plane": describeNode("control-plane", 2),
			"broken":        "error: unable to describe\n",
		},
	}

	for _, parallelism := range []int{1, 4} {
		t.Run(fmt.Sprintf("parallelism %d", parallelism), func(t *testing.T) {
			inv, err := newInventory(src, parallelism).Cluster(context.Background())
			require.NoError(t, err)

			require.Len(t, inv.Nodes, 3)
			assert.Equal(t, "control-plane", inv.Nodes[0].Name)
			assert.Equal(t, "worker-1", inv.Nodes[1].Name)
			assert.Equal(t, "worker-2", inv.Nodes[2].Name)

			assert.Equal(t, []string{"role=worker"}, inv.Nodes[1].Labels)
			assert.Equal(t, 4, inv.Nodes[1].Capacity.CPU)
			assert.Equal(t, 8000000, inv.Nodes[1].Allocatable.MemoryKi)
		})
	}
}

func TestInventory_ClusterLenient(t *testing.T) {
	src := &fakeSource{
		nodes:    []string{"node/a"},
		describe: map[string]string{"a": "Name:  a\nCapacity:\n  cpu: 2\n"},
	}

	strict, err := newInventory(src, 1).Cluster(context.Background())
	require.NoError(t, err)
	assert.Empty(t, strict.Nodes)

	inv := newInventory(src, 1)
	inv.Parser = parser.New(parser.WithMode(parser.Lenient))
	lenient, err := inv.Cluster(context.Background())
	require.NoError(t, err)
	require.Len(t, lenient.Nodes, 1)
	assert.Equal(t, 2, lenient.Nodes[0].Capacity.CPU)
	assert.Contains(t, lenient.Nodes[0].DefaultedFields, "labels")
}

func TestInventory_ClusterErrors(t *testing.T) {
	base := fakeSource{
		nodes:    []string{"node/a", "node/b"},
		describe: map[string]string{"a": describeNode("a", 1), "b": describeNode("b", 1)},
	}

	for _, op := range []string{"nodes", "describe/b"} {
		t.Run(op, func(t *testing.T) {
			src := base
			src.failOn = op

			inv, err := newInventory(&src, 2).Cluster(context.Background())
			require.Error(t, err)
			assert.Nil(t, inv)
			assert.Equal(t, errors.ErrCodeUnavailable, errors.CodeOf(err))
		})
	}
}

func TestInventory_Deployments(t *testing.T) {
	src := &fakeSource{
		namespaces: []string{"namespace/prod", "namespace/default", "namespace/empty"},
		deployments: map[string][]string{
			"prod":    {"deployment.apps/web", "deployment.apps/api"},
			"default": {"deployment.apps/svc"},
		},
		manifests: map[string]string{
			"prod/web":    manifest(3, "nginx:1.25"),
			"prod/api":    manifest(2, "ghcr.io/org/api:v2"),
			"default/svc": "apiVersion: v1\nkind: Service\nspec:\n  type: ClusterIP\n",
		},
	}

	inv, err := newInventory(src, 4).Deployments(context.Background())
	require.NoError(t, err)

	require.Len(t, inv.Namespaces, 3)
	assert.Equal(t, "default", inv.Namespaces[0].Namespace)
	assert.Equal(t, "empty", inv.Namespaces[1].Namespace)
	assert.Equal(t, "prod", inv.Namespaces[2].Namespace)

	// A namespace without deployments is still listed.
	assert.NotNil(t, inv.Namespaces[1].Deployments)
	assert.Empty(t, inv.Namespaces[1].Deployments)

	// A manifest of another kind keeps its slot with default values.
	svc := inv.Namespaces[0].Deployments
	require.Len(t, svc, 1)
	assert.Equal(t, "svc", svc[0].DeploymentName)
	assert.Empty(t, svc[0].APIVersion)
	assert.Empty(t, svc[0].Kind)
	assert.Equal(t, parser.Undefined, svc[0].Replicas)
	assert.Equal(t, parser.Undefined, svc[0].Image)

	prod := inv.Namespaces[2].Deployments
	require.Len(t, prod, 2)
	assert.Equal(t, "api", prod[0].DeploymentName)
	assert.Equal(t, "2", prod[0].Replicas)
	assert.Equal(t, "web", prod[1].DeploymentName)
	assert.Equal(t, "3", prod[1].Replicas)
	assert.Equal(t, "nginx:1.25", prod[1].Image)
	assert.Equal(t, inventory.ResourcePair{CPU: "500m"}, prod[1].Resources.Limits)
	assert.Equal(t, inventory.ResourcePair{Memory: "128Mi"}, prod[1].Resources.Requests)
}

func TestInventory_DeploymentsErrors(t *testing.T) {
	base := fakeSource{
		namespaces:  []string{"namespace/a", "namespace/b"},
		deployments: map[string][]string{"a": {"deployment.apps/x"}, "b": {"deployment.apps/y"}},
		manifests:   map[string]string{"a/x": manifest(1, "x"), "b/y": manifest(1, "y")},
	}

	for _, op := range []string{"namespaces", "deployments/b", "manifest/a/x"} {
		t.Run(op, func(t *testing.T) {
			src := base
			src.failOn = op

			inv, err := newInventory(&src, 1).Deployments(context.Background())
			require.Error(t, err)
			assert.Nil(t, inv)
		})
	}
}

func TestInventory_Namespaces(t *testing.T) {
	src := &fakeSource{namespaces: []string{"namespace/kube-system", "namespace/default", "bogus"}}

	list, err := newInventory(src, 1).Namespaces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "kube-system"}, list.Namespaces)

	src.failOn = "namespaces"
	_, err = newInventory(src, 1).Namespaces(context.Background())
	assert.Error(t, err)
}

func TestInventory_NotConfigured(t *testing.T) {
	ctx := context.Background()

	_, err := (&inventory.Inventory{}).Cluster(ctx)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))

	_, err = (&inventory.Inventory{Source: &fakeSource{}}).Deployments(ctx)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))

	_, err = (&inventory.Inventory{}).Namespaces(ctx)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))
}
