// Copyright (C) 2024 Arbufio, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package bufconfig loads buffer tuning knobs (bufpool's pooling
// threshold, plus values carried for callers' own policy) from a YAML
// file.
package bufconfig

import (
	"errors"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/arbufio/divbuf/internal/clamp"
)

// maxColdStoreIdleSeconds bounds ColdStoreIdleAfterSeconds so a
// misconfigured file can't push idle eviction out to, say, the Unix
// epoch's heat death.
const maxColdStoreIdleSeconds = 7 * 24 * 3600

// ErrNegativeTuning is returned by Load when any tuning value in the
// file is negative.
var ErrNegativeTuning = errors.New("bufconfig: tuning values must be >= 0")

// Config holds the tuning knobs. bufpool.New reads PoolingThreshold;
// the other fields are carried for callers and are not read by any
// package in this module.
type Config struct {
	// PoolingThreshold is the minimum requested capacity, in bytes,
	// below which bufpool allocates directly instead of round-tripping
	// through a sync.Pool.
	PoolingThreshold int `json:"poolingThreshold"`
	// DefaultCapacity is a default buffer capacity for callers to use.
	// bufpool does not read it: Pool.Get always takes an explicit
	// capacity.
	DefaultCapacity int `json:"defaultCapacity"`
	// ColdStoreIdleAfterSeconds is how long a Shared may sit unused in
	// a pool before it becomes eligible for coldstore.Freeze. It is
	// advisory: this package only carries the value, since deciding
	// what counts as "idle" is the caller's policy, not the buffer
	// library's.
	ColdStoreIdleAfterSeconds int `json:"coldStoreIdleAfterSeconds"`
}

// Default returns the tuning values used when no config file is
// supplied.
func Default() *Config {
	return &Config{
		PoolingThreshold:          1 << 10, // 1KiB
		DefaultCapacity:           4096,
		ColdStoreIdleAfterSeconds: 300,
	}
}

// Load reads a YAML config file at path over Default's values: fields
// the file omits keep their default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.PoolingThreshold < 0 || cfg.DefaultCapacity < 0 || cfg.ColdStoreIdleAfterSeconds < 0 {
		return nil, ErrNegativeTuning
	}
	cfg.ColdStoreIdleAfterSeconds = clamp.Int(cfg.ColdStoreIdleAfterSeconds, 0, maxColdStoreIdleSeconds)
	return cfg, nil
}
