/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package parser

import (
	"github.com/distribution/reference"

	"github.com/NVIDIA/cluster-reader/pkg/inventory"
)

// Top-level keys of "kubectl get deployment -o yaml".
const (
	manifestAPIVersion = "apiVersion"
	manifestKind       = "kind"
	manifestMetadata   = "metadata"
	manifestSpec       = "spec"
	manifestStatus     = "status"

	deploymentKind = "Deployment"
)

// Keys looked up inside the spec section.
const (
	keyReplicas        = "replicas"
	keyImage           = "image"
	keyResources       = "resources"
	keyLimits          = "limits"
	keyRequests        = "requests"
	keySecurityContext = "securityContext"
)

// DeploymentGrammar describes the top-level layout of a deployment manifest.
// The kind header must read "Deployment". Lenient mode only requires kind,
// so a manifest without metadata or status still parses there.
var DeploymentGrammar = Grammar{
	Name: "deployment",
	Headers: []Header{
		{Name: manifestAPIVersion},
		{Name: manifestKind, Literal: deploymentKind, Adjacent: true, Key: true},
		{Name: manifestMetadata},
		{Name: manifestSpec},
		{Name: manifestStatus},
	},
}

// Deployment builds a DeploymentRecord from the YAML dump of a deployment.
// It always returns a record: when the manifest does not match
// DeploymentGrammar every derived field keeps its default, and replicas and
// image read Undefined.
func (p *Parser) Deployment(raw, name string) inventory.DeploymentRecord {
	d := newDefaults()
	rec := inventory.DeploymentRecord{DeploymentName: name}

	var spec string
	if sections, ok := Split(raw, DeploymentGrammar, p.mode); ok {
		rec.APIVersion = d.inline(sections, manifestAPIVersion, "apiVersion")
		rec.Kind = d.inline(sections, manifestKind, "kind")
		if s, found := sections[manifestSpec]; found {
			spec = s.Text()
		}
	} else {
		d.add("apiVersion")
		d.add("kind")
	}

	rec.Replicas = d.str(Token(spec, keyReplicas, `[0-9]+`), "replicas")
	rec.Image = d.str(String(spec, keyImage), "image")
	if rec.Image != Undefined {
		rec.ImageReference = imageReference(rec.Image)
	}
	rec.Resources = resources(spec, d.prefixed("resources"))

	rec.DefaultedFields = d.list()
	return rec
}

// resources extracts the first container's limits and requests. The limits
// and requests blocks are located independently of each other.
func resources(spec string, d *defaults) inventory.ResourceSpec {
	var rs inventory.ResourceSpec

	block, ok := Block(spec, keyResources, keySecurityContext)
	if !ok {
		d.add("limits")
		d.add("requests")
		return rs
	}

	limits, _ := Block(block, keyLimits, keyRequests)
	ld := d.prefixed("limits")
	rs.Limits = inventory.ResourcePair{
		CPU:    ld.str(StringOr(limits, keyCPU, ""), "cpu"),
		Memory: ld.str(StringOr(limits, keyMemory, ""), "memory"),
	}

	requests, _ := Block(block, keyRequests)
	rd := d.prefixed("requests")
	rs.Requests = inventory.ResourcePair{
		CPU:    rd.str(StringOr(requests, keyCPU, ""), "cpu"),
		Memory: rd.str(StringOr(requests, keyMemory, ""), "memory"),
	}

	return rs
}

// imageReference normalizes image into repository, tag and digest. It
// returns nil when image is not a valid reference.
func imageReference(image string) *inventory.ImageReference {
	named, err := reference.ParseNormalizedNamed(image)
	if err != nil {
		return nil
	}
	named = reference.TagNameOnly(named)

	ref := &inventory.ImageReference{Repository: named.Name()}
	if tagged, ok := named.(reference.Tagged); ok {
		ref.Tag = tagged.Tag()
	}
	if digested, ok := named.(reference.Digested); ok {
		ref.Digest = digested.Digest().String()
	}
	return ref
}
