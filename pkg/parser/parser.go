/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package parser

import (
	"github.com/NVIDIA/cluster-reader/pkg/inventory"
)

var defaultParser = New()

// Option is a functional option for configuring Parser instances.
type Option func(*Parser)

// WithMode returns an Option that sets the grammar matching mode.
func WithMode(m Mode) Option {
	return func(p *Parser) {
		p.mode = m
	}
}

// Parser turns raw kubectl output into inventory records. It holds no
// mutable state and is safe for concurrent use.
type Parser struct {
	mode Mode
}

// New creates a Parser. Without options it matches in Strict mode.
func New(opts ...Option) *Parser {
	p := &Parser{mode: Strict}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mode returns the grammar matching mode of p.
func (p *Parser) Mode() Mode {
	return p.mode
}

// ParseNode is Node on a shared Strict parser.
func ParseNode(raw string) (*inventory.NodeRecord, bool) {
	return defaultParser.Node(raw)
}

// ParseDeployment is Deployment on a shared Strict parser.
func ParseDeployment(raw, name string) inventory.DeploymentRecord {
	return defaultParser.Deployment(raw, name)
}

// defaults collects the dotted paths of fields that fell back to their
// default value. Prefixed views share the same list.
type defaults struct {
	prefix string
	fields *[]string
}

func newDefaults() *defaults {
	return &defaults{fields: new([]string)}
}

func (d *defaults) path(name string) string {
	if d.prefix == "" {
		return name
	}
	return d.prefix + "." + name
}

func (d *defaults) prefixed(name string) *defaults {
	return &defaults{prefix: d.path(name), fields: d.fields}
}

func (d *defaults) add(name string) {
	*d.fields = append(*d.fields, d.path(name))
}

func (d *defaults) list() []string {
	if len(*d.fields) == 0 {
		return nil
	}
	return *d.fields
}

func (d *defaults) num(f Field[int], name string) int {
	if f.Defaulted {
		d.add(name)
	}
	return f.Value
}

func (d *defaults) str(f Field[string], name string) string {
	if f.Defaulted {
		d.add(name)
	}
	return f.Value
}

func (d *defaults) inline(s Sections, header, name string) string {
	sec, ok := s[header]
	if !ok {
		d.add(name)
		return ""
	}
	return sec.Inline
}

func (d *defaults) entries(s Sections, header, name string) []string {
	sec, ok := s[header]
	if !ok {
		d.add(name)
		return []string{}
	}
	return sec.Entries()
}
