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

	"github.com/penny-vault/pv-correlate/dataframe"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

// Compute derives simple percentage returns from the price table, restricts
// them to the trailing windowDays rows and computes the pairwise Pearson
// correlation matrix. When windowDays exceeds the available history all rows
// are used. A column with fewer than 2 valid return observations in the
// window yields NaN against every other asset rather than failing the whole
// matrix.
func Compute(prices *dataframe.DataFrame, windowDays int) *Matrix {
	if windowDays > prices.Len() {
		log.Debug().Int("WindowDays", windowDays).Int("NumRows", prices.Len()).Msg("window exceeds available history; using all rows")
	}

	window := prices.PctChange().Tail(windowDays)

	n := window.ColCount()
	matrix := &Matrix{
		Assets: make([]string, n),
		Coeff:  make([][]float64, n),
	}
	copy(matrix.Assets, window.ColNames)
	for idx := range matrix.Coeff {
		matrix.Coeff[idx] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		matrix.Coeff[i][i] = unitDiagonal(window.Vals[i])
		for j := i + 1; j < n; j++ {
			r := pearson(window.Vals[i], window.Vals[j])
			matrix.Coeff[i][j] = r
			matrix.Coeff[j][i] = r
		}
	}

	return matrix
}

// pearson computes the correlation over pairwise-complete observations;
// fewer than 2 valid pairs or a zero-variance series produce NaN
func pearson(xs, ys []float64) float64 {
	px := make([]float64, 0, len(xs))
	py := make([]float64, 0, len(ys))
	for k := range xs {
		if math.IsNaN(xs[k]) || math.IsNaN(ys[k]) {
			continue
		}
		px = append(px, xs[k])
		py = append(py, ys[k])
	}

	if len(px) < 2 {
		return math.NaN()
	}

	r := stat.Correlation(px, py, nil)
	// guard against float drift outside the valid coefficient range
	if r > 1 {
		r = 1
	}
	if r < -1 {
		r = -1
	}
	return r
}

// unitDiagonal returns 1 for a series that correlates with itself and NaN
// for a degenerate series (fewer than 2 observations or zero variance)
func unitDiagonal(xs []float64) float64 {
	vals := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) < 2 || stat.Variance(vals, nil) == 0 {
		return math.NaN()
	}
	return 1.0
}
