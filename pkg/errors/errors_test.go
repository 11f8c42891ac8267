/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{"without cause", New(ErrCodeNotFound, "missing"), "[NOT_FOUND] missing"},
		{"with cause", Wrap(ErrCodeUnavailable, "kubectl failed", stderrors.New("exit status 1")), "[UNAVAILABLE] kubectl failed: exit status 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestStructuredError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := fmt.Errorf("outer: %w", WrapWithContext(ErrCodeTimeout, "slow", cause, map[string]any{"node": "n1"}))

	assert.ErrorIs(t, err, cause)

	var se *StructuredError
	if assert.ErrorAs(t, err, &se) {
		assert.Equal(t, ErrCodeTimeout, se.Code)
		assert.Equal(t, "n1", se.Context["node"])
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeUnavailable, CodeOf(fmt.Errorf("x: %w", New(ErrCodeUnavailable, "down"))))
	assert.Equal(t, ErrCodeInternal, CodeOf(stderrors.New("plain")))
	assert.Equal(t, ErrCodeInternal, CodeOf(nil))
}
