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

package commissions_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-correlate/commissions"
)

var _ = Describe("Lookup", func() {
	It("returns approved contracts with their per-side fee", func() {
		c, ok := commissions.Lookup("ES")
		Expect(ok).To(BeTrue())
		Expect(c.Available).To(BeTrue())
		Expect(c.PerSide).To(Equal(1.75))
	})

	It("marks unavailable contracts", func() {
		c, ok := commissions.Lookup("ZN")
		Expect(ok).To(BeTrue())
		Expect(c.Available).To(BeFalse())
	})

	It("misses unknown contracts", func() {
		_, ok := commissions.Lookup("XX")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("ForAsset", func() {
	It("resolves display names to contract codes", func() {
		c, ok := commissions.ForAsset("ES (S&P 500)")
		Expect(ok).To(BeTrue())
		Expect(c.Contract).To(Equal("ES"))
	})

	It("handles names without a description suffix", func() {
		c, ok := commissions.ForAsset("BTC")
		Expect(ok).To(BeTrue())
		Expect(c.Contract).To(Equal("BTC"))
		Expect(c.Available).To(BeFalse())
	})
})

var _ = Describe("PairTradable", func() {
	It("requires both legs to be available", func() {
		Expect(commissions.PairTradable("ES (S&P 500)", "GC (Gold)")).To(BeTrue())
		Expect(commissions.PairTradable("ES (S&P 500)", "BTC")).To(BeFalse())
		Expect(commissions.PairTradable("ES (S&P 500)", "ZZ (Unknown)")).To(BeFalse())
	})
})

var _ = Describe("All", func() {
	It("returns the catalog sorted by contract code", func() {
		all := commissions.All()
		Expect(len(all)).To(BeNumerically(">=", 35))
		for i := 1; i < len(all); i++ {
			Expect(all[i-1].Contract < all[i].Contract).To(BeTrue())
		}
	})
})
