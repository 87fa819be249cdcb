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

package dataframe_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-correlate/dataframe"
)

var _ = Describe("Dataframe", func() {
	var (
		df *dataframe.DataFrame
		tz *time.Location
	)

	BeforeEach(func() {
		tz, _ = time.LoadLocation("America/New_York")
		dates := []time.Time{
			time.Date(2022, 11, 1, 16, 0, 0, 0, tz),
			time.Date(2022, 11, 2, 16, 0, 0, 0, tz),
			time.Date(2022, 11, 3, 16, 0, 0, 0, tz),
			time.Date(2022, 11, 4, 16, 0, 0, 0, tz),
			time.Date(2022, 11, 7, 16, 0, 0, 0, tz),
		}
		df = dataframe.New(dates)
		df.Insert("ES", []float64{100, 102, 101, 105, 110})
		df.Insert("GC", []float64{1800, 1790, math.NaN(), 1810, 1820})
	})

	Describe("basic accessors", func() {
		It("knows its dimensions", func() {
			Expect(df.Len()).To(Equal(5))
			Expect(df.ColCount()).To(Equal(2))
		})

		It("finds columns by name", func() {
			Expect(df.ColIndex("GC")).To(Equal(1))
			Expect(df.ColIndex("SI")).To(Equal(-1))
			Expect(df.Col("ES")).To(HaveLen(5))
			Expect(df.Col("SI")).To(BeNil())
		})

		It("reports start and end dates", func() {
			Expect(df.Start()).To(Equal(time.Date(2022, 11, 1, 16, 0, 0, 0, tz)))
			Expect(df.End()).To(Equal(time.Date(2022, 11, 7, 16, 0, 0, 0, tz)))
		})

		It("returns zero time for an empty frame", func() {
			empty := dataframe.New([]time.Time{})
			Expect(empty.Start().IsZero()).To(BeTrue())
			Expect(empty.End().IsZero()).To(BeTrue())
		})
	})

	Describe("Copy", func() {
		It("is independent of the original", func() {
			df2 := df.Copy()
			df2.Vals[0][0] = -1
			Expect(df.Vals[0][0]).To(Equal(100.0))
		})
	})

	Describe("Tail", func() {
		It("keeps the trailing n rows", func() {
			df2 := df.Tail(2)
			Expect(df2.Len()).To(Equal(2))
			Expect(df2.Vals[0]).To(Equal([]float64{105, 110}))
		})

		It("returns the whole frame when n exceeds the row count", func() {
			df2 := df.Tail(100)
			Expect(df2.Len()).To(Equal(5))
		})
	})

	Describe("Drop", func() {
		It("removes rows containing NaN", func() {
			df2 := df.Copy().Drop(math.NaN())
			Expect(df2.Len()).To(Equal(4))
			Expect(df2.Vals[0]).To(Equal([]float64{100, 102, 105, 110}))
		})
	})

	Describe("Trim", func() {
		It("restricts to the inclusive date range", func() {
			df2 := df.Trim(
				time.Date(2022, 11, 2, 16, 0, 0, 0, tz),
				time.Date(2022, 11, 4, 16, 0, 0, 0, tz),
			)
			Expect(df2.Len()).To(Equal(3))
			Expect(df2.Vals[0]).To(Equal([]float64{102, 101, 105}))
		})

		It("returns an empty frame when the range is inverted", func() {
			df2 := df.Trim(
				time.Date(2022, 11, 4, 16, 0, 0, 0, tz),
				time.Date(2022, 11, 2, 16, 0, 0, 0, tz),
			)
			Expect(df2.Len()).To(Equal(0))
		})

		It("returns an empty frame when the range does not overlap", func() {
			df2 := df.Trim(
				time.Date(2023, 1, 1, 16, 0, 0, 0, tz),
				time.Date(2023, 2, 1, 16, 0, 0, 0, tz),
			)
			Expect(df2.Len()).To(Equal(0))
		})
	})

	Describe("PctChange", func() {
		It("computes simple returns with a NaN first row", func() {
			returns := df.PctChange()
			Expect(math.IsNaN(returns.Vals[0][0])).To(BeTrue())
			Expect(returns.Vals[0][1]).To(BeNumerically("~", 0.02, 1e-9))
			Expect(returns.Vals[0][2]).To(BeNumerically("~", -0.0098039215, 1e-9))
		})

		It("propagates NaN through periods that reference it", func() {
			returns := df.PctChange()
			// GC has NaN on Nov 3 so both Nov 3 and Nov 4 returns are NaN
			Expect(math.IsNaN(returns.Vals[1][2])).To(BeTrue())
			Expect(math.IsNaN(returns.Vals[1][3])).To(BeTrue())
		})

		It("yields NaN when the previous price is zero", func() {
			zero := dataframe.New(df.Dates[:3])
			zero.Insert("X", []float64{1, 0, 2})
			returns := zero.PctChange()
			Expect(math.IsNaN(returns.Vals[0][2])).To(BeTrue())
		})
	})

	Describe("Table", func() {
		It("renders NaN as --", func() {
			Expect(df.Table()).To(ContainSubstring("--"))
		})

		It("handles an empty frame", func() {
			empty := dataframe.New([]time.Time{})
			Expect(empty.Table()).To(Equal("<NO DATA>"))
		})
	})
})
