/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"empty accept defaults", "", DefaultAPIVersion},
		{"non-vendor accept defaults", "application/json", DefaultAPIVersion},
		{"vendor v1", "application/vnd.nvidia.cluster-reader.v1+json", "v1"},
		{"vendor v1 yaml with params", "text/html, application/vnd.nvidia.cluster-reader.v1+yaml;q=0.9", "v1"},
		{"vendor v2 unsupported defaults", "application/vnd.nvidia.cluster-reader.v2+json", DefaultAPIVersion},
		{"vendor malformed defaults", "application/vnd.nvidia.cluster-reader.vBAD+json", DefaultAPIVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if got := negotiateAPIVersion(req); got != tt.want {
				t.Fatalf("negotiateAPIVersion(Accept=%q) = %q, want %q", tt.accept, got, tt.want)
			}
		})
	}
}

func TestIsValidAPIVersion(t *testing.T) {
	for v, want := range map[string]bool{"v1": true, "v2": false, "": false, "nope": false} {
		if got := isValidAPIVersion(v); got != want {
			t.Fatalf("isValidAPIVersion(%q) = %v, want %v", v, got, want)
		}
	}
}
