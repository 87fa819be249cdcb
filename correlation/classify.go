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

package correlation

import (
	"math"
	"sort"

	"github.com/penny-vault/pv-correlate/config"
)

type Category string

const (
	CategoryTwin             Category = "Twin"
	CategoryModeratePositive Category = "Moderate-Positive"
	CategoryIndependent      Category = "Independent"
	CategoryModerateInverse  Category = "Moderate-Inverse"
	CategoryMirror           Category = "Mirror"
)

// Label returns the interpretation shown to traders
func (c Category) Label() string {
	switch c {
	case CategoryTwin:
		return "Twins (High Risk)"
	case CategoryModeratePositive:
		return "Moderate Positive"
	case CategoryIndependent:
		return "Independent (Diversify)"
	case CategoryModerateInverse:
		return "Moderate Inverse"
	case CategoryMirror:
		return "Mirror (Hedging)"
	}
	return string(c)
}

// ClassifiedPair is an unordered asset pair whose coefficient landed in one
// of the named threshold bands
type ClassifiedPair struct {
	AssetA      string   `json:"assetA"`
	AssetB      string   `json:"assetB"`
	Coefficient float64  `json:"coefficient"`
	RSquared    float64  `json:"rSquaredPct"`
	Category    Category `json:"category"`
}

// Classify scans the upper triangle of the matrix and returns each unordered
// pair whose coefficient falls in a named band. NaN coefficients and values
// strictly between bands are excluded. Ordering of the result is not
// significant; use SortByStrength for display.
func Classify(m *Matrix, thresholds config.Thresholds) []ClassifiedPair {
	pairs := make([]ClassifiedPair, 0, m.Dim()*(m.Dim()-1)/2)

	for i := 0; i < m.Dim(); i++ {
		for j := i + 1; j < m.Dim(); j++ {
			val := m.Coeff[i][j]
			category, ok := ClassifyValue(val, thresholds)
			if !ok {
				continue
			}
			pairs = append(pairs, ClassifiedPair{
				AssetA:      m.Assets[i],
				AssetB:      m.Assets[j],
				Coefficient: val,
				RSquared:    val * val * 100,
				Category:    category,
			})
		}
	}

	return pairs
}

// ClassifyValue applies the band boundaries exactly as documented: twin and
// mirror are inclusive, the independent band is open on both sides,
// moderate-positive includes 0.50 and moderate-inverse includes -0.50. The
// second return is false for NaN and for values between named bands.
func ClassifyValue(val float64, t config.Thresholds) (Category, bool) {
	switch {
	case math.IsNaN(val):
		return "", false
	case val >= t.Twin:
		return CategoryTwin, true
	case val >= t.ModeratePositive:
		return CategoryModeratePositive, true
	case val > t.IndependentLow && val < t.IndependentHigh:
		return CategoryIndependent, true
	case val <= t.Mirror:
		return CategoryMirror, true
	case val <= t.ModerateInverse:
		return CategoryModerateInverse, true
	}
	return "", false
}

// SortByStrength orders pairs by absolute coefficient, strongest first
func SortByStrength(pairs []ClassifiedPair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].Coefficient) > math.Abs(pairs[j].Coefficient)
	})
}
