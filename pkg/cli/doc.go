// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the command-line interface for the clusterreader tool.
//
// # Overview
//
// clusterreader reads the text a cluster administrator would normally read by
// hand, "kubectl describe node" output and deployment YAML, and turns it into
// structured records.
//
// # Commands
//
// nodes - Node inventory:
//
//	clusterreader nodes [--output FILE] [--format yaml|json|table]
//	clusterreader nodes --lenient --parallelism 8
//
// Describes every node and extracts name, roles, labels, annotations,
// creation timestamp, capacity and allocatable resources. Nodes whose
// description does not match are left out.
//
// deployments - Deployment inventory, grouped by namespace:
//
//	clusterreader deployments --output deployments.yaml
//	clusterreader deployments -o cm://ops/deployment-inventory
//
// namespaces - Namespace names:
//
//	clusterreader namespaces --format table
//
// serve - HTTP service exposing the same inventories:
//
//	clusterreader serve --port 8080
//
// # Global Flags
//
//	--kubeconfig, -k   Path to kubeconfig file (env: KUBECONFIG)
//	--context          Kubeconfig context
//	--source, -s       kubectl or api (env: CLUSTER_READER_SOURCE)
//	--timeout          Timeout for each cluster call (default: 30s)
//	--parallelism, -p  Concurrent fetches per pipeline (default: 1)
//	--lenient          Lenient section matching
//	--output, -o       Output file path or ConfigMap URI (default: stdout)
//	--format, -t       Output format: json, yaml, table (default: json)
//	--debug            Enable debug logging
//	--log-json         Output logs in JSON format
//
// When --format is not given and --output names a file, the format follows
// the file extension.
//
// # Sources
//
// The kubectl source shells out to the kubectl binary on PATH. The api source
// talks to the API server with client-go and renders node descriptions in the
// kubectl layout, so both produce the same records.
//
// # Environment Variables
//
//	LOG_LEVEL              Set logging verbosity (debug, info, warn, error)
//	KUBECONFIG             Path to kubeconfig file
//	CLUSTER_READER_SOURCE  Default source kind
//	PORT                   Listen port for serve
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/cluster-reader/pkg/cli.version=1.0.0'"
package cli
