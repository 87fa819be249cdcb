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

package snapshot_test

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-correlate/config"
	"github.com/penny-vault/pv-correlate/data"
	"github.com/penny-vault/pv-correlate/dataframe"
	"github.com/penny-vault/pv-correlate/snapshot"
)

// stubProvider serves deterministic price series keyed by ticker; tickers in
// the fail set return an error
type stubProvider struct {
	fail map[string]bool
	rows int
}

func (p *stubProvider) Name() string {
	return "stub"
}

func (p *stubProvider) GetCloses(_ context.Context, ticker string, _ string, _ string) (*dataframe.DataFrame, error) {
	if p.fail[ticker] {
		return nil, fmt.Errorf("%w: %s", data.ErrNoData, ticker)
	}

	tz, _ := time.LoadLocation("America/New_York")
	rng := rand.New(rand.NewSource(int64(len(ticker))))
	dates := make([]time.Time, p.rows)
	vals := make([]float64, p.rows)
	price := 100.0
	day := time.Date(2022, 6, 1, 16, 0, 0, 0, tz)
	for i := 0; i < p.rows; i++ {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		dates[i] = day
		day = day.AddDate(0, 0, 1)

		price *= 1 + (rng.Float64()-0.5)*0.02
		vals[i] = price
	}

	df := dataframe.New(dates)
	df.Insert(ticker, vals)
	return df, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Assets: []config.Asset{
			{Name: "Alpha", Ticker: "AAA", Sector: "Indices"},
			{Name: "Beta", Ticker: "BBB", Sector: "Indices"},
			{Name: "Gamma", Ticker: "CCCC", Sector: "Metals"},
		},
		Windows:    config.Windows{ShortDays: 15, MediumDays: 60},
		Thresholds: config.Default().Thresholds,
		Fetch:      config.Fetch{Range: "6mo", Interval: "1d", ChunkSize: 10},
	}
}

var _ = Describe("Store", func() {
	var (
		cfg      *config.Config
		provider *stubProvider
		store    *snapshot.Store
	)

	BeforeEach(func() {
		cfg = testConfig()
		provider = &stubProvider{rows: 90, fail: map[string]bool{}}
		store = snapshot.NewStore(cfg, data.NewManager(cfg, provider))
	})

	It("has no snapshot before the first refresh", func() {
		_, err := store.Current()
		Expect(err).To(MatchError(snapshot.ErrNoSnapshot))
		Expect(store.Refreshing()).To(BeFalse())
	})

	It("produces a complete snapshot", func() {
		snap, err := store.Refresh(context.Background())
		Expect(err).To(BeNil())
		Expect(snap.ID).ToNot(BeZero())
		Expect(snap.Assets).To(Equal([]string{"Alpha", "Beta", "Gamma"}))
		Expect(snap.Short.Dim()).To(Equal(3))
		Expect(snap.Medium.Dim()).To(Equal(3))
		Expect(snap.Difference.Dim()).To(Equal(3))
		Expect(snap.FetchErrors).To(BeEmpty())

		current, err := store.Current()
		Expect(err).To(BeNil())
		Expect(current.ID).To(Equal(snap.ID))
	})

	It("exposes matrices and pairs by window name", func() {
		snap, err := store.Refresh(context.Background())
		Expect(err).To(BeNil())

		m, ok := snap.Matrix("short")
		Expect(ok).To(BeTrue())
		Expect(m).To(Equal(snap.Short))

		m, ok = snap.Matrix("difference")
		Expect(ok).To(BeTrue())
		Expect(m).To(Equal(snap.Difference))

		_, ok = snap.Matrix("yearly")
		Expect(ok).To(BeFalse())

		_, ok = snap.Pairs("medium")
		Expect(ok).To(BeTrue())
		_, ok = snap.Pairs("difference")
		Expect(ok).To(BeFalse())
	})

	It("records per-asset fetch failures and carries on", func() {
		provider.fail["BBB"] = true

		snap, err := store.Refresh(context.Background())
		Expect(err).To(BeNil())
		Expect(snap.FetchErrors).To(HaveKey("Beta"))
		Expect(snap.Assets).To(Equal([]string{"Alpha", "Gamma"}))
	})

	It("replaces the snapshot on a subsequent refresh", func() {
		first, err := store.Refresh(context.Background())
		Expect(err).To(BeNil())

		second, err := store.Refresh(context.Background())
		Expect(err).To(BeNil())
		Expect(second.ID).ToNot(Equal(first.ID))

		current, err := store.Current()
		Expect(err).To(BeNil())
		Expect(current.ID).To(Equal(second.ID))
	})

	It("keeps the previous snapshot when every asset fails", func() {
		first, err := store.Refresh(context.Background())
		Expect(err).To(BeNil())

		provider.fail["AAA"] = true
		provider.fail["BBB"] = true
		provider.fail["CCCC"] = true

		_, err = store.Refresh(context.Background())
		Expect(err).To(MatchError(data.ErrNoData))

		current, err := store.Current()
		Expect(err).To(BeNil())
		Expect(current.ID).To(Equal(first.ID))
	})

	It("computes the difference as medium minus short", func() {
		snap, err := store.Refresh(context.Background())
		Expect(err).To(BeNil())

		short, _ := snap.Short.Value("Alpha", "Beta")
		medium, _ := snap.Medium.Value("Alpha", "Beta")
		diff, err := snap.Difference.Value("Alpha", "Beta")
		Expect(err).To(BeNil())
		if !math.IsNaN(diff) {
			Expect(diff).To(BeNumerically("~", medium-short, 1e-12))
		}
	})
})
