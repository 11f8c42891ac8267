/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package kubeapi

import (
	"fmt"
	"sort"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
)

const (
	describeWidth = 20
	quantityWidth = 20

	rolePrefix = "node-role.kubernetes.io/"
	roleLabel  = "kubernetes.io/role"
	none       = "<none>"
)

// describeNode renders the subset of "kubectl describe node" that the node
// grammar reads, in the same layout.
func describeNode(node *corev1.Node) string {
	var b strings.Builder

	header(&b, "Name", node.Name)
	header(&b, "Roles", roles(node.Labels))
	list(&b, "Labels", pairs(node.Labels, "="))
	list(&b, "Annotations", pairs(node.Annotations, ": "))
	header(&b, "CreationTimestamp", node.CreationTimestamp.UTC().Format(time.RFC1123Z))
	list(&b, "Taints", taints(node.Spec.Taints))
	header(&b, "Unschedulable", fmt.Sprintf("%t", node.Spec.Unschedulable))

	b.WriteString("Addresses:\n")
	for _, a := range node.Status.Addresses {
		fmt.Fprintf(&b, "  %s:  %s\n", a.Type, a.Address)
	}

	resources(&b, "Capacity", node.Status.Capacity)
	resources(&b, "Allocatable", node.Status.Allocatable)

	info := node.Status.NodeInfo
	b.WriteString("System Info:\n")
	for _, kv := range [][2]string{
		{"Machine ID", info.MachineID},
		{"System UUID", info.SystemUUID},
		{"Boot ID", info.BootID},
		{"Kernel Version", info.KernelVersion},
		{"OS Image", info.OSImage},
		{"Operating System", info.OperatingSystem},
		{"Architecture", info.Architecture},
		{"Container Runtime Version", info.ContainerRuntimeVersion},
		{"Kubelet Version", info.KubeletVersion},
	} {
		fmt.Fprintf(&b, "  %-28s%s\n", kv[0]+":", kv[1])
	}

	return b.String()
}

func header(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "%-*s%s\n", describeWidth, name+":", value)
}

// list prints the first value on the header line and aligns the rest
// under it.
func list(b *strings.Builder, name string, values []string) {
	if len(values) == 0 {
		header(b, name, none)
		return
	}
	header(b, name, values[0])
	for _, v := range values[1:] {
		fmt.Fprintf(b, "%s%s\n", strings.Repeat(" ", describeWidth), v)
	}
}

func resources(b *strings.Builder, name string, rl corev1.ResourceList) {
	fmt.Fprintf(b, "%s:\n", name)

	keys := make([]string, 0, len(rl))
	for k := range rl {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	for _, k := range keys {
		q := rl[corev1.ResourceName(k)]
		fmt.Fprintf(b, "  %-*s%s\n", quantityWidth, k+":", q.String())
	}
}

func pairs(m map[string]string, sep string) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+sep+v)
	}
	sort.Strings(out)
	return out
}

func roles(labels map[string]string) string {
	var out []string
	for k, v := range labels {
		switch {
		case strings.HasPrefix(k, rolePrefix) && len(k) > len(rolePrefix):
			out = append(out, strings.TrimPrefix(k, rolePrefix))
		case k == roleLabel && v != "":
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return none
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}

func taints(ts []corev1.Taint) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ToString())
	}
	return out
}
