/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package parser

import (
	"github.com/NVIDIA/cluster-reader/pkg/inventory"
)

// Node description headers as printed by "kubectl describe node".
const (
	nodeName        = "Name"
	nodeRoles       = "Roles"
	nodeLabels      = "Labels"
	nodeAnnotations = "Annotations"
	nodeCreated     = "CreationTimestamp"
	nodeCapacity    = "Capacity"
	nodeAllocatable = "Allocatable"
	nodeSystemInfo  = "System Info"
)

// Resource keys read from the Capacity and Allocatable blocks.
const (
	keyCPU              = "cpu"
	keyEphemeralStorage = "ephemeral-storage"
	keyHugepages2Mi     = "hugepages-2Mi"
	keyMemory           = "memory"
	keyPods             = "pods"
)

// NodeGrammar describes the sections of a node description. Everything
// between CreationTimestamp and Capacity (taints, conditions, addresses) is
// ignored.
var NodeGrammar = Grammar{
	Name: "node",
	Headers: []Header{
		{Name: nodeName, Key: true},
		{Name: nodeRoles, Adjacent: true},
		{Name: nodeLabels, Adjacent: true},
		{Name: nodeAnnotations},
		{Name: nodeCreated},
		{Name: nodeCapacity},
		{Name: nodeAllocatable},
		{Name: nodeSystemInfo},
	},
}

// Node builds a NodeRecord from the output of "kubectl describe node".
// The boolean result is false when the text does not match NodeGrammar, in
// which case the node is to be left out of the inventory.
func (p *Parser) Node(raw string) (*inventory.NodeRecord, bool) {
	sections, ok := Split(raw, NodeGrammar, p.mode)
	if !ok {
		return nil, false
	}

	d := newDefaults()
	rec := &inventory.NodeRecord{
		Name:        d.inline(sections, nodeName, "name"),
		Roles:       d.inline(sections, nodeRoles, "roles"),
		Labels:      d.entries(sections, nodeLabels, "labels"),
		Annotations: d.entries(sections, nodeAnnotations, "annotations"),
		CreatedDate: d.inline(sections, nodeCreated, "createdDate"),
	}

	if s, found := sections[nodeCapacity]; found {
		rec.Capacity = capacity(s.Text(), d.prefixed("capacity"))
	} else {
		d.add("capacity")
	}
	if s, found := sections[nodeAllocatable]; found {
		rec.Allocatable = allocatable(s.Text(), d.prefixed("allocatable"))
	} else {
		d.add("allocatable")
	}

	rec.DefaultedFields = d.list()
	return rec, true
}

func capacity(block string, d *defaults) inventory.CapacityQuantities {
	return inventory.CapacityQuantities{
		CPU:                d.num(Int(block, keyCPU), "cpu"),
		EphemeralStorageKi: d.num(Int(block, keyEphemeralStorage), "ephemeralStorageKi"),
		Hugepages2Mi:       d.num(Int(block, keyHugepages2Mi), "hugepages2Mi"),
		MemoryKi:           d.num(Int(block, keyMemory), "memoryKi"),
		Pods:               d.num(Int(block, keyPods), "pods"),
	}
}

func allocatable(block string, d *defaults) inventory.AllocatableQuantities {
	storage := Int64(block, keyEphemeralStorage)
	if storage.Defaulted {
		d.add("ephemeralStorageBytes")
	}
	return inventory.AllocatableQuantities{
		CPU:                   d.num(Int(block, keyCPU), "cpu"),
		EphemeralStorageBytes: storage.Value,
		Hugepages2Mi:          d.num(Int(block, keyHugepages2Mi), "hugepages2Mi"),
		MemoryKi:              d.num(Int(block, keyMemory), "memoryKi"),
		Pods:                  d.num(Int(block, keyPods), "pods"),
	}
}
