/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"net/http"

	"github.com/NVIDIA/cluster-reader/pkg/inventory"
	"github.com/NVIDIA/cluster-reader/pkg/serializer"
	"github.com/NVIDIA/cluster-reader/pkg/server"
)

// API routes.
const (
	PathClusterInfo       = "/api/v1/cluster-info"
	PathNamespaces        = "/api/v1/namespaces"
	PathDeploymentDetails = "/api/v1/namespaces/deployment-details"
)

// Handler serves inventory pipelines over HTTP.
type Handler struct {
	inv *inventory.Inventory
}

// NewHandler creates a Handler backed by inv.
func NewHandler(inv *inventory.Inventory) *Handler {
	return &Handler{inv: inv}
}

// Routes returns the handlers keyed by path, ready for server.WithHandler.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		PathClusterInfo:       h.HandleClusterInfo,
		PathNamespaces:        h.HandleNamespaces,
		PathDeploymentDetails: h.HandleDeploymentDetails,
	}
}

// HandleClusterInfo handles GET /api/v1/cluster-info.
func (h *Handler) HandleClusterInfo(w http.ResponseWriter, r *http.Request) {
	out, err := h.inv.Cluster(r.Context())
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to collect cluster info", nil)
		return
	}
	serializer.Respond(w, r, http.StatusOK, out)
}

// HandleNamespaces handles GET /api/v1/namespaces.
func (h *Handler) HandleNamespaces(w http.ResponseWriter, r *http.Request) {
	out, err := h.inv.Namespaces(r.Context())
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to list namespaces", nil)
		return
	}
	serializer.Respond(w, r, http.StatusOK, out)
}

// HandleDeploymentDetails handles GET /api/v1/namespaces/deployment-details.
func (h *Handler) HandleDeploymentDetails(w http.ResponseWriter, r *http.Request) {
	out, err := h.inv.Deployments(r.Context())
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to collect deployment details", nil)
		return
	}
	serializer.Respond(w, r, http.StatusOK, out)
}
