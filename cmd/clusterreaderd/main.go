/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"os"

	"github.com/NVIDIA/cluster-reader/pkg/api"
)

func main() {
	if err := api.Serve(context.Background(), api.DefaultConfig()); err != nil {
		os.Exit(1)
	}
}
