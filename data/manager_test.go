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

package data_test

import (
	"context"
	"math"
	"time"

	"github.com/jarcoal/httpmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-correlate/config"
	"github.com/penny-vault/pv-correlate/data"
)

var _ = Describe("Manager", func() {
	var start time.Time

	// each test uses distinct tickers; provider responses are cached by URL
	catalog := func(tickerA, tickerB string) *config.Config {
		return &config.Config{
			Assets: []config.Asset{
				{Name: "Alpha", Ticker: tickerA, Sector: "Indices"},
				{Name: "Beta", Ticker: tickerB, Sector: "Indices"},
			},
			Windows:    config.Windows{ShortDays: 15, MediumDays: 60},
			Thresholds: config.Default().Thresholds,
			Fetch:      config.Fetch{Range: "6mo", Interval: "1d", ChunkSize: 10},
		}
	}

	BeforeEach(func() {
		httpmock.Activate()
		start = time.Date(2022, 11, 1, 21, 0, 0, 0, time.UTC)
	})

	AfterEach(func() {
		httpmock.DeactivateAndReset()
	})

	It("merges per-asset frames on the date index in catalog order", func() {
		httpmock.RegisterResponder("GET", `=~/v8/finance/chart/MGA1`,
			httpmock.NewStringResponder(200, chartBody([]float64{100, 101, 102}, start)))
		httpmock.RegisterResponder("GET", `=~/v8/finance/chart/MGB1`,
			httpmock.NewStringResponder(200, chartBody([]float64{50, 51, 52}, start)))

		manager := data.NewManager(catalog("MGA1", "MGB1"), data.NewYahoo())
		prices, fetchErrors, err := manager.FetchPrices(context.Background())
		Expect(err).To(BeNil())
		Expect(fetchErrors).To(BeEmpty())
		Expect(prices.ColNames).To(Equal([]string{"Alpha", "Beta"}))
		Expect(prices.Len()).To(Equal(3))
		Expect(prices.Vals[1]).To(Equal([]float64{50, 51, 52}))
	})

	It("fills dates an asset did not trade with NaN", func() {
		httpmock.RegisterResponder("GET", `=~/v8/finance/chart/MGA2`,
			httpmock.NewStringResponder(200, chartBody([]float64{100, 101, 102}, start)))
		// Beta is missing the first two sessions
		httpmock.RegisterResponder("GET", `=~/v8/finance/chart/MGB2`,
			httpmock.NewStringResponder(200, chartBody([]float64{52}, start.AddDate(0, 0, 2))))

		manager := data.NewManager(catalog("MGA2", "MGB2"), data.NewYahoo())
		prices, _, err := manager.FetchPrices(context.Background())
		Expect(err).To(BeNil())
		Expect(prices.Len()).To(Equal(3))
		Expect(math.IsNaN(prices.Vals[1][0])).To(BeTrue())
		Expect(math.IsNaN(prices.Vals[1][1])).To(BeTrue())
		Expect(prices.Vals[1][2]).To(Equal(52.0))
	})

	It("degrades per asset instead of failing the run", func() {
		httpmock.RegisterResponder("GET", `=~/v8/finance/chart/MGA3`,
			httpmock.NewStringResponder(200, chartBody([]float64{100, 101, 102}, start)))
		httpmock.RegisterResponder("GET", `=~/v8/finance/chart/MGB3`,
			httpmock.NewStringResponder(500, "server error"))

		manager := data.NewManager(catalog("MGA3", "MGB3"), data.NewYahoo())
		prices, fetchErrors, err := manager.FetchPrices(context.Background())
		Expect(err).To(BeNil())
		Expect(fetchErrors).To(HaveKey("Beta"))
		Expect(prices.ColNames).To(Equal([]string{"Alpha"}))
	})

	It("fails only when no asset could be fetched", func() {
		httpmock.RegisterResponder("GET", `=~/v8/finance/chart/MGA4`,
			httpmock.NewStringResponder(500, "server error"))
		httpmock.RegisterResponder("GET", `=~/v8/finance/chart/MGB4`,
			httpmock.NewStringResponder(500, "server error"))

		manager := data.NewManager(catalog("MGA4", "MGB4"), data.NewYahoo())
		_, fetchErrors, err := manager.FetchPrices(context.Background())
		Expect(err).To(MatchError(data.ErrNoData))
		Expect(fetchErrors).To(HaveLen(2))
	})

	It("rejects an empty catalog", func() {
		cfg := catalog("MGA5", "MGB5")
		cfg.Assets = nil
		manager := data.NewManager(cfg, data.NewYahoo())
		_, _, err := manager.FetchPrices(context.Background())
		Expect(err).To(MatchError(data.ErrEmptyCatalog))
	})
})
