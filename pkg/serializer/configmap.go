/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/cluster-reader/pkg/k8s/client"
)

const (
	managedByLabel = "app.kubernetes.io/managed-by"
	managedByValue = "cluster-reader"
)

// ConfigMapWriter stores serialized data in a Kubernetes ConfigMap, under
// the key "inventory.<format>".
type ConfigMapWriter struct {
	format    Format
	namespace string
	name      string
	clientset kubernetes.Interface
}

// NewConfigMapWriter creates a writer for namespace/name. A nil clientset
// is replaced by the shared default client on first use.
func NewConfigMapWriter(format Format, namespace, name string, clientset kubernetes.Interface) *ConfigMapWriter {
	if format.IsUnknown() {
		format = FormatJSON
	}
	return &ConfigMapWriter{
		format:    format,
		namespace: namespace,
		name:      name,
		clientset: clientset,
	}
}

// Key returns the ConfigMap data key the writer stores into.
func (c *ConfigMapWriter) Key() string {
	return "inventory." + string(c.format)
}

// Serialize renders data and creates or updates the ConfigMap.
func (c *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	var buf bytes.Buffer
	if err := NewWriter(c.format, &buf).Serialize(ctx, data); err != nil {
		return err
	}

	if c.clientset == nil {
		cs, _, err := client.GetKubeClient()
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		c.clientset = cs
	}

	cms := c.clientset.CoreV1().ConfigMaps(c.namespace)

	existing, err := cms.Get(ctx, c.name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		cm := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      c.name,
				Namespace: c.namespace,
				Labels:    map[string]string{managedByLabel: managedByValue},
			},
			Data: map[string]string{c.Key(): buf.String()},
		}
		if _, err := cms.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create configmap %s/%s: %w", c.namespace, c.name, err)
		}
		slog.Debug("created configmap", slog.String("namespace", c.namespace), slog.String("name", c.name))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get configmap %s/%s: %w", c.namespace, c.name, err)
	}

	if existing.Data == nil {
		existing.Data = map[string]string{}
	}
	existing.Data[c.Key()] = buf.String()
	if _, err := cms.Update(ctx, existing, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update configmap %s/%s: %w", c.namespace, c.name, err)
	}
	slog.Debug("updated configmap", slog.String("namespace", c.namespace), slog.String("name", c.name))
	return nil
}

// parseConfigMapURI splits "cm://namespace/name".
func parseConfigMapURI(uri string) (string, string, error) {
	rest := strings.TrimPrefix(uri, ConfigMapURIScheme)
	namespace, name, ok := strings.Cut(rest, "/")
	if !ok || namespace == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q, expected %snamespace/name", uri, ConfigMapURIScheme)
	}
	return namespace, name, nil
}
