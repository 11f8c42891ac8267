/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package kubeapi

// Test-only aliases for unexported helpers used by the external test package.
var (
	DescribeNodeForTest = describeNode
	RolesForTest        = roles
)
