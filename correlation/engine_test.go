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

package correlation_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-correlate/correlation"
	"github.com/penny-vault/pv-correlate/dataframe"
)

func tradingDates(n int) []time.Time {
	tz, _ := time.LoadLocation("America/New_York")
	dates := make([]time.Time, n)
	day := time.Date(2022, 9, 1, 16, 0, 0, 0, tz)
	for i := range dates {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		dates[i] = day
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

// pricesFromReturns builds a price series that realizes the given simple
// returns starting from 100
func pricesFromReturns(returns []float64) []float64 {
	prices := make([]float64, len(returns)+1)
	prices[0] = 100
	for i, r := range returns {
		prices[i+1] = prices[i] * (1 + r)
	}
	return prices
}

var _ = Describe("Compute", func() {
	var prices *dataframe.DataFrame

	BeforeEach(func() {
		returns := []float64{0.01, -0.02, 0.03, -0.01, 0.02, 0.01, -0.03, 0.02, 0.01, -0.01}
		inverse := make([]float64, len(returns))
		noisy := make([]float64, len(returns))
		for i, r := range returns {
			inverse[i] = -r
			noisy[i] = r + 0.005*float64(i%3)
		}

		prices = dataframe.New(tradingDates(len(returns) + 1))
		prices.Insert("A", pricesFromReturns(returns))
		prices.Insert("B", pricesFromReturns(returns)) // identical to A
		prices.Insert("C", pricesFromReturns(inverse))
		prices.Insert("D", pricesFromReturns(noisy))
	})

	It("produces a symmetric matrix with a unit diagonal", func() {
		m := correlation.Compute(prices, 10)
		for i := 0; i < m.Dim(); i++ {
			Expect(m.At(i, i)).To(Equal(1.0))
			for j := 0; j < m.Dim(); j++ {
				Expect(m.At(i, j)).To(Equal(m.At(j, i)))
			}
		}
	})

	It("keeps every coefficient in [-1, 1]", func() {
		m := correlation.Compute(prices, 10)
		for i := 0; i < m.Dim(); i++ {
			for j := 0; j < m.Dim(); j++ {
				val := m.At(i, j)
				if !math.IsNaN(val) {
					Expect(val).To(BeNumerically(">=", -1.0))
					Expect(val).To(BeNumerically("<=", 1.0))
				}
			}
		}
	})

	It("scores identical series at exactly 1", func() {
		m := correlation.Compute(prices, 10)
		val, err := m.Value("A", "B")
		Expect(err).To(BeNil())
		Expect(val).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("scores perfectly inverse series at exactly -1", func() {
		m := correlation.Compute(prices, 10)
		val, err := m.Value("A", "C")
		Expect(err).To(BeNil())
		Expect(val).To(BeNumerically("~", -1.0, 1e-12))
	})

	It("uses all rows when the window exceeds the history", func() {
		short := correlation.Compute(prices, 10)
		wide := correlation.Compute(prices, 5000)
		Expect(wide.At(0, 3)).To(Equal(short.At(0, 3)))
	})

	Context("with a constant price series", func() {
		BeforeEach(func() {
			flat := make([]float64, prices.Len())
			for i := range flat {
				flat[i] = 100
			}
			prices.Insert("FLAT", flat)
		})

		It("yields NaN for the degenerate asset without failing the matrix", func() {
			m := correlation.Compute(prices, 10)
			idx := -1
			for i, name := range m.Assets {
				if name == "FLAT" {
					idx = i
				}
			}
			Expect(idx).ToNot(Equal(-1))
			Expect(math.IsNaN(m.At(idx, idx))).To(BeTrue())
			for j := 0; j < m.Dim(); j++ {
				if j != idx {
					Expect(math.IsNaN(m.At(idx, j))).To(BeTrue())
				}
			}
			// the rest of the matrix is unaffected
			val, err := m.Value("A", "B")
			Expect(err).To(BeNil())
			Expect(val).To(BeNumerically("~", 1.0, 1e-12))
		})
	})

	Context("with too few overlapping observations", func() {
		It("yields NaN for the starved pair", func() {
			sparse := dataframe.New(prices.Dates)
			sparse.Insert("A", prices.Col("A"))
			holes := make([]float64, prices.Len())
			for i := range holes {
				holes[i] = math.NaN()
			}
			holes[len(holes)-1] = 105
			sparse.Insert("HOLES", holes)

			m := correlation.Compute(sparse, 10)
			val, err := m.Value("A", "HOLES")
			Expect(err).To(BeNil())
			Expect(math.IsNaN(val)).To(BeTrue())
		})
	})
})
