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

// Package correlation computes pairwise Pearson correlation matrices over
// windows of return series and classifies asset pairs against configured
// threshold bands.
package correlation

import "errors"

var (
	ErrShapeMismatch = errors.New("matrices cover different asset sets")
	ErrUnknownAsset  = errors.New("asset not present in matrix")
)

// Matrix is a square table of pairwise correlation coefficients. It is
// symmetric with a unit (or NaN, when a series is degenerate) diagonal and
// every coefficient lies in [-1, 1] or is NaN.
type Matrix struct {
	Assets []string    `json:"assets"`
	Coeff  [][]float64 `json:"coefficients"`
}

// Dim returns the number of assets covered by the matrix
func (m *Matrix) Dim() int {
	return len(m.Assets)
}

// At returns the coefficient at row i, column j
func (m *Matrix) At(i, j int) float64 {
	return m.Coeff[i][j]
}

// Value returns the coefficient for the named asset pair
func (m *Matrix) Value(assetA, assetB string) (float64, error) {
	i := m.index(assetA)
	j := m.index(assetB)
	if i == -1 || j == -1 {
		return 0, ErrUnknownAsset
	}
	return m.Coeff[i][j], nil
}

// Copy creates a deep copy of the matrix
func (m *Matrix) Copy() *Matrix {
	m2 := &Matrix{
		Assets: make([]string, len(m.Assets)),
		Coeff:  make([][]float64, len(m.Coeff)),
	}
	copy(m2.Assets, m.Assets)
	for idx, row := range m.Coeff {
		m2.Coeff[idx] = make([]float64, len(row))
		copy(m2.Coeff[idx], row)
	}
	return m2
}

func (m *Matrix) index(asset string) int {
	for idx, name := range m.Assets {
		if name == asset {
			return idx
		}
	}
	return -1
}
