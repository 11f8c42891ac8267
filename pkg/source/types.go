/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package source

import (
	"context"
)

// Source supplies the raw cluster text the inventory pipelines parse.
// List methods return "kind/name" tokens, one per element, as printed by
// "kubectl get --output=name". All methods must honor ctx cancellation.
type Source interface {
	ListNodeNames(ctx context.Context) ([]string, error)
	DescribeNode(ctx context.Context, name string) (string, error)
	ListNamespaceNames(ctx context.Context) ([]string, error)
	ListDeploymentNames(ctx context.Context, namespace string) ([]string, error)
	FetchDeploymentManifest(ctx context.Context, name, namespace string) (string, error)
}
