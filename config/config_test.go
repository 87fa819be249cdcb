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

package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-correlate/config"
)

var _ = Describe("Default", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.Default()
	})

	It("carries the full asset catalog", func() {
		Expect(len(cfg.Assets)).To(Equal(30))
		Expect(cfg.Validate()).To(Succeed())
	})

	It("sets the documented windows and thresholds", func() {
		Expect(cfg.Windows.ShortDays).To(Equal(15))
		Expect(cfg.Windows.MediumDays).To(Equal(60))
		Expect(cfg.Thresholds.Twin).To(Equal(0.80))
		Expect(cfg.Thresholds.ModeratePositive).To(Equal(0.50))
		Expect(cfg.Thresholds.IndependentHigh).To(Equal(0.20))
		Expect(cfg.Thresholds.IndependentLow).To(Equal(-0.20))
		Expect(cfg.Thresholds.ModerateInverse).To(Equal(-0.50))
		Expect(cfg.Thresholds.Mirror).To(Equal(-0.80))
	})

	It("looks assets up by name and ticker", func() {
		asset, ok := cfg.AssetByName("ES (S&P 500)")
		Expect(ok).To(BeTrue())
		Expect(asset.Ticker).To(Equal("ES=F"))

		asset, ok = cfg.AssetByTicker("BTC-USD")
		Expect(ok).To(BeTrue())
		Expect(asset.Name).To(Equal("BTC"))

		_, ok = cfg.AssetByName("unknown")
		Expect(ok).To(BeFalse())
	})

	It("reports sectors", func() {
		Expect(cfg.SectorOf("GC (Gold)")).To(Equal(config.SectorMetals))
		Expect(cfg.SectorOf("unknown")).To(Equal(""))
	})

	It("preserves catalog order in Names", func() {
		names := cfg.Names()
		Expect(names).To(HaveLen(30))
		Expect(names[0]).To(Equal("6B (Pound)"))
	})
})

var _ = Describe("Validate", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.Default()
	})

	It("rejects an empty catalog", func() {
		cfg.Assets = nil
		Expect(cfg.Validate()).To(MatchError(config.ErrNoAssets))
	})

	It("rejects duplicate asset names", func() {
		cfg.Assets = append(cfg.Assets, config.Asset{Name: "BTC", Ticker: "BTC2-USD"})
		Expect(cfg.Validate()).To(MatchError(config.ErrDuplicateAsset))
	})

	It("rejects duplicate tickers", func() {
		cfg.Assets = append(cfg.Assets, config.Asset{Name: "Bitcoin2", Ticker: "BTC-USD"})
		Expect(cfg.Validate()).To(MatchError(config.ErrDuplicateAsset))
	})

	It("rejects inverted windows", func() {
		cfg.Windows.ShortDays = 60
		cfg.Windows.MediumDays = 15
		Expect(cfg.Validate()).To(MatchError(config.ErrInvalidWindow))
	})

	It("rejects non-positive windows", func() {
		cfg.Windows.ShortDays = 0
		Expect(cfg.Validate()).To(MatchError(config.ErrInvalidWindow))
	})

	It("rejects disordered thresholds", func() {
		cfg.Thresholds.ModeratePositive = 0.9
		Expect(cfg.Validate()).To(MatchError(config.ErrInvalidThresholds))
	})
})
