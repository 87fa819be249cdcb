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

package heatmap_test

import (
	"bytes"
	"image/png"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-correlate/correlation"
	"github.com/penny-vault/pv-correlate/heatmap"
)

var _ = Describe("Render", func() {
	var m *correlation.Matrix

	BeforeEach(func() {
		m = &correlation.Matrix{
			Assets: []string{"ES (S&P 500)", "GC (Gold)", "BTC"},
			Coeff: [][]float64{
				{1, 0.85, math.NaN()},
				{0.85, 1, -0.6},
				{math.NaN(), -0.6, math.NaN()},
			},
		}
	})

	It("produces a decodable PNG sized to the matrix", func() {
		data, err := heatmap.Encode(m, heatmap.ScaleCorrelation)
		Expect(err).To(BeNil())

		img, err := png.Decode(bytes.NewReader(data))
		Expect(err).To(BeNil())
		bounds := img.Bounds()
		Expect(bounds.Dx()).To(BeNumerically(">", 0))
		Expect(bounds.Dy()).To(BeNumerically(">", 0))
	})

	It("renders NaN cells gray", func() {
		data, err := heatmap.Encode(m, heatmap.ScaleCorrelation)
		Expect(err).To(BeNil())

		img, err := png.Decode(bytes.NewReader(data))
		Expect(err).To(BeNil())

		// scan for the flat gray used only for NaN cells
		found := false
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y && !found; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				if r>>8 == 200 && g>>8 == 200 && b>>8 == 200 {
					found = true
					break
				}
			}
		}
		Expect(found).To(BeTrue())
	})

	It("renders a larger scale for difference maps without error", func() {
		diff := m.Copy()
		diff.Coeff[0][1] = 1.7 // differences range [-2, 2]
		diff.Coeff[1][0] = 1.7

		data, err := heatmap.Encode(diff, heatmap.ScaleDifference)
		Expect(err).To(BeNil())
		_, err = png.Decode(bytes.NewReader(data))
		Expect(err).To(BeNil())
	})

	It("rejects an empty matrix", func() {
		empty := &correlation.Matrix{}
		_, err := heatmap.Encode(empty, heatmap.ScaleCorrelation)
		Expect(err).To(MatchError(heatmap.ErrEmptyMatrix))
	})
})
