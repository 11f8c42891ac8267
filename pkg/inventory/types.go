/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package inventory

// NodeRecord is one cluster node recovered from its describe output.
type NodeRecord struct {
	Name        string                `json:"name" yaml:"name"`
	Roles       string                `json:"roles" yaml:"roles"`
	Labels      []string              `json:"labels" yaml:"labels"`
	Annotations []string              `json:"annotations" yaml:"annotations"`
	CreatedDate string                `json:"createdDate" yaml:"createdDate"`
	Capacity    CapacityQuantities    `json:"capacity" yaml:"capacity"`
	Allocatable AllocatableQuantities `json:"allocatable" yaml:"allocatable"`

	// DefaultedFields lists the dotted field paths that fell back to their
	// default because the source text lacked or garbled them.
	DefaultedFields []string `json:"defaultedFields,omitempty" yaml:"defaultedFields,omitempty"`
}

// CapacityQuantities holds the capacity counts of a node. Memory and
// storage are in Ki as printed by kubectl.
type CapacityQuantities struct {
	CPU                int `json:"cpu" yaml:"cpu"`
	EphemeralStorageKi int `json:"ephemeralStorageKi" yaml:"ephemeralStorageKi"`
	Hugepages2Mi       int `json:"hugepages2Mi" yaml:"hugepages2Mi"`
	MemoryKi           int `json:"memoryKi" yaml:"memoryKi"`
	Pods               int `json:"pods" yaml:"pods"`
}

// AllocatableQuantities holds the allocatable counts of a node. kubectl
// prints allocatable ephemeral storage in bytes.
type AllocatableQuantities struct {
	CPU                   int   `json:"cpu" yaml:"cpu"`
	EphemeralStorageBytes int64 `json:"ephemeralStorageBytes" yaml:"ephemeralStorageBytes"`
	Hugepages2Mi          int   `json:"hugepages2Mi" yaml:"hugepages2Mi"`
	MemoryKi              int   `json:"memoryKi" yaml:"memoryKi"`
	Pods                  int   `json:"pods" yaml:"pods"`
}

// DeploymentRecord is one deployment recovered from its YAML manifest dump.
type DeploymentRecord struct {
	DeploymentName string          `json:"deploymentName" yaml:"deploymentName"`
	APIVersion     string          `json:"apiVersion" yaml:"apiVersion"`
	Kind           string          `json:"kind" yaml:"kind"`
	Replicas       string          `json:"replicas" yaml:"replicas"`
	Image          string          `json:"image" yaml:"image"`
	ImageReference *ImageReference `json:"imageReference,omitempty" yaml:"imageReference,omitempty"`
	Resources      ResourceSpec    `json:"resources" yaml:"resources"`

	DefaultedFields []string `json:"defaultedFields,omitempty" yaml:"defaultedFields,omitempty"`
}

// ImageReference is the normalized form of DeploymentRecord.Image.
type ImageReference struct {
	Repository string `json:"repository" yaml:"repository"`
	Tag        string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Digest     string `json:"digest,omitempty" yaml:"digest,omitempty"`
}

// ResourceSpec holds container limits and requests as raw quantity strings.
type ResourceSpec struct {
	Limits   ResourcePair `json:"limits" yaml:"limits"`
	Requests ResourcePair `json:"requests" yaml:"requests"`
}

// ResourcePair is a cpu/memory quantity pair. Empty means not declared.
type ResourcePair struct {
	CPU    string `json:"cpu" yaml:"cpu"`
	Memory string `json:"memory" yaml:"memory"`
}

// NamespaceAggregate groups the deployments of one namespace.
type NamespaceAggregate struct {
	Namespace   string             `json:"namespace" yaml:"namespace"`
	Deployments []DeploymentRecord `json:"deployments" yaml:"deployments"`
}

// ClusterInventory is the node inventory of a cluster.
type ClusterInventory struct {
	Nodes []NodeRecord `json:"nodes" yaml:"nodes"`
}

// DeploymentInventory is the deployment inventory across all namespaces.
type DeploymentInventory struct {
	Namespaces []NamespaceAggregate `json:"namespaces" yaml:"namespaces"`
}

// NamespaceList is the sorted list of namespace names.
type NamespaceList struct {
	Namespaces []string `json:"namespaces" yaml:"namespaces"`
}
