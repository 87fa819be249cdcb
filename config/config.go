// Copyright 2022-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the immutable runtime configuration: the tracked asset
// catalog with sector groupings, correlation window lengths, classification
// thresholds and data fetch settings. It is constructed once at startup and
// passed explicitly to the components that need it; nothing mutates it at
// runtime.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

var (
	ErrNoAssets          = errors.New("no assets configured")
	ErrDuplicateAsset    = errors.New("duplicate asset name or ticker")
	ErrInvalidWindow     = errors.New("window lengths must be positive and short < medium")
	ErrInvalidThresholds = errors.New("thresholds must satisfy mirror <= moderateInverse < independentLow < independentHigh < moderatePositive <= twin")
)

// Asset maps a display name to its market ticker and sector
type Asset struct {
	Name   string `mapstructure:"name" toml:"name" json:"name"`
	Ticker string `mapstructure:"ticker" toml:"ticker" json:"ticker"`
	Sector string `mapstructure:"sector" toml:"sector" json:"sector"`
}

// Windows holds the trailing lookback lengths, in trading days, for the two
// correlation horizons
type Windows struct {
	ShortDays  int `mapstructure:"short_days" toml:"short_days" json:"shortDays"`
	MediumDays int `mapstructure:"medium_days" toml:"medium_days" json:"mediumDays"`
}

// Thresholds define the classification bands. Band boundaries follow the
// documented strategy guidance exactly: twin and mirror are inclusive,
// the independent band is open on both sides, moderate-positive includes its
// lower bound and moderate-inverse includes its upper bound.
type Thresholds struct {
	Twin             float64 `mapstructure:"twin" toml:"twin" json:"twin"`
	ModeratePositive float64 `mapstructure:"moderate_positive" toml:"moderate_positive" json:"moderatePositive"`
	IndependentHigh  float64 `mapstructure:"independent_high" toml:"independent_high" json:"independentHigh"`
	IndependentLow   float64 `mapstructure:"independent_low" toml:"independent_low" json:"independentLow"`
	ModerateInverse  float64 `mapstructure:"moderate_inverse" toml:"moderate_inverse" json:"moderateInverse"`
	Mirror           float64 `mapstructure:"mirror" toml:"mirror" json:"mirror"`
}

// Fetch controls the market data download
type Fetch struct {
	Range     string `mapstructure:"range" toml:"range" json:"range"`
	Interval  string `mapstructure:"interval" toml:"interval" json:"interval"`
	ChunkSize int    `mapstructure:"chunk_size" toml:"chunk_size" json:"chunkSize"`
}

type Config struct {
	Assets     []Asset    `mapstructure:"assets" toml:"assets" json:"assets"`
	Windows    Windows    `mapstructure:"windows" toml:"windows" json:"windows"`
	Thresholds Thresholds `mapstructure:"thresholds" toml:"thresholds" json:"thresholds"`
	Fetch      Fetch      `mapstructure:"fetch" toml:"fetch" json:"fetch"`
}

// Load builds the configuration from defaults overlaid with whatever viper
// read from the config file and environment
func Load() (*Config, error) {
	cfg := Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if len(cfg.Assets) == 0 {
		return ErrNoAssets
	}

	names := make(map[string]bool, len(cfg.Assets))
	tickers := make(map[string]bool, len(cfg.Assets))
	for _, asset := range cfg.Assets {
		if names[asset.Name] || tickers[asset.Ticker] {
			return fmt.Errorf("%w: %s (%s)", ErrDuplicateAsset, asset.Name, asset.Ticker)
		}
		names[asset.Name] = true
		tickers[asset.Ticker] = true
	}

	if cfg.Windows.ShortDays <= 0 || cfg.Windows.MediumDays <= 0 || cfg.Windows.ShortDays >= cfg.Windows.MediumDays {
		return ErrInvalidWindow
	}

	t := cfg.Thresholds
	if !(t.Mirror <= t.ModerateInverse && t.ModerateInverse < t.IndependentLow &&
		t.IndependentLow < t.IndependentHigh && t.IndependentHigh < t.ModeratePositive &&
		t.ModeratePositive <= t.Twin) {
		return ErrInvalidThresholds
	}

	return nil
}

// Names returns asset display names in catalog order
func (cfg *Config) Names() []string {
	names := make([]string, 0, len(cfg.Assets))
	for _, asset := range cfg.Assets {
		names = append(names, asset.Name)
	}
	return names
}

// AssetByName looks up an asset by its display name
func (cfg *Config) AssetByName(name string) (Asset, bool) {
	for _, asset := range cfg.Assets {
		if asset.Name == name {
			return asset, true
		}
	}
	return Asset{}, false
}

// AssetByTicker looks up an asset by its market ticker
func (cfg *Config) AssetByTicker(ticker string) (Asset, bool) {
	for _, asset := range cfg.Assets {
		if asset.Ticker == ticker {
			return asset, true
		}
	}
	return Asset{}, false
}

// SectorOf returns the sector of the named asset or "" when unknown
func (cfg *Config) SectorOf(name string) string {
	if asset, ok := cfg.AssetByName(name); ok {
		return asset.Sector
	}
	return ""
}
