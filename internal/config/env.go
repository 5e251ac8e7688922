// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills the environment layer of the configuration. Every error
// wraps [ErrInvalidEnvConfigs] so callers can tell a bad variable apart from
// a bad JSON file.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEnvConfigs, err)
	}
	return nil
}
