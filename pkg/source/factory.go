/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package source

import (
	"github.com/NVIDIA/cluster-reader/pkg/source/kubeapi"
	"github.com/NVIDIA/cluster-reader/pkg/source/kubectl"
)

// Factory creates sources from a Config.
// This interface enables dependency injection for testing.
type Factory interface {
	Create(cfg Config) (Source, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(cfg Config) (Source, error)

// Create calls f.
func (f FactoryFunc) Create(cfg Config) (Source, error) {
	return f(cfg)
}

// DefaultFactory creates sources with production dependencies.
type DefaultFactory struct{}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{}
}

// Create validates cfg and returns the matching Source implementation.
func (f *DefaultFactory) Create(cfg Config) (Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Kind == KindAPI {
		return &kubeapi.Source{
			Kubeconfig: cfg.Kubeconfig,
			Context:    cfg.Context,
			Timeout:    cfg.Timeout,
		}, nil
	}

	return kubectl.New(
		kubectl.WithBinary(cfg.Binary),
		kubectl.WithKubeconfig(cfg.Kubeconfig),
		kubectl.WithContext(cfg.Context),
		kubectl.WithTimeout(cfg.Timeout),
	), nil
}
