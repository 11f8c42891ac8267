/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const capacityBlock = `
  cpu:                4
  ephemeral-storage:  61202244Ki
  hugepages-1Gi:      0
  hugepages-2Mi:      0
  memory:             4042860Ki
  pods:               abc
  huge:               99999999999`

func TestString(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want Field[string]
	}{
		{"trimmed value", "roles:    control-plane   ", "roles", Field[string]{Value: "control-plane"}},
		{"indented key", "  image: nginx:1.25", "image", Field[string]{Value: "nginx:1.25"}},
		{"list marker", "      - image: nginx:1.25\n        name: web", "image", Field[string]{Value: "nginx:1.25"}},
		{"first match wins", "cpu: 1\ncpu: 2", "cpu", Field[string]{Value: "1"}},
		{"missing key", "memory: 1Gi", "cpu", Field[string]{Value: Undefined, Defaulted: true}},
		{"longer key does not match", "imagePullPolicy: Always", "image", Field[string]{Value: Undefined, Defaulted: true}},
		{"no whitespace after colon", "cpu:4", "cpu", Field[string]{Value: Undefined, Defaulted: true}},
		{"empty text", "", "cpu", Field[string]{Value: Undefined, Defaulted: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.text, tt.key))
		})
	}
}

func TestStringOr(t *testing.T) {
	assert.Equal(t, Field[string]{Value: "", Defaulted: true}, StringOr("memory: 1Gi", "cpu", ""))
	assert.Equal(t, Field[string]{Value: "250m"}, StringOr("  cpu: 250m", "cpu", ""))
}

func TestToken(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Field[string]
	}{
		{"integer", "  replicas: 3", Field[string]{Value: "3"}},
		{"integer with trailing text", "  replicas: 12 # pinned", Field[string]{Value: "12"}},
		{"non numeric", "  replicas: many", Field[string]{Value: Undefined, Defaulted: true}},
		{"absent", "  paused: true", Field[string]{Value: Undefined, Defaulted: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Token(tt.text, "replicas", `[0-9]+`))
		})
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		key  string
		want Field[int]
	}{
		{"cpu", Field[int]{Value: 4}},
		{"memory", Field[int]{Value: 4042860}},
		{"ephemeral-storage", Field[int]{Value: 61202244}},
		{"hugepages-2Mi", Field[int]{Value: 0}},
		{"pods", Field[int]{Value: 0, Defaulted: true}},
		{"huge", Field[int]{Value: 0, Defaulted: true}},
		{"missing", Field[int]{Value: 0, Defaulted: true}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Int(capacityBlock, tt.key))
		})
	}
}

func TestInt64(t *testing.T) {
	block := "  ephemeral-storage:  56403987978\n  memory: 8000000Ki"

	assert.Equal(t, Field[int64]{Value: 56403987978}, Int64(block, "ephemeral-storage"))
	// No unit stripping in the 64-bit variant.
	assert.Equal(t, Field[int64]{Value: 0, Defaulted: true}, Int64(block, "memory"))
	assert.Equal(t, Field[int64]{Value: 0, Defaulted: true}, Int64(block, "pods"))
}
