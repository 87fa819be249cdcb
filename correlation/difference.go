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

// Difference computes the elementwise subtraction a - b. Both matrices must
// cover the same asset set (order may differ); otherwise ErrShapeMismatch is
// returned and the caller should reconcile with Intersect first. NaN
// propagates.
func Difference(a, b *Matrix) (*Matrix, error) {
	if len(a.Assets) != len(b.Assets) {
		return nil, ErrShapeMismatch
	}

	bIdx := make([]int, len(a.Assets))
	for i, asset := range a.Assets {
		idx := b.index(asset)
		if idx == -1 {
			return nil, ErrShapeMismatch
		}
		bIdx[i] = idx
	}

	diff := &Matrix{
		Assets: make([]string, len(a.Assets)),
		Coeff:  make([][]float64, len(a.Assets)),
	}
	copy(diff.Assets, a.Assets)

	for i := range a.Assets {
		diff.Coeff[i] = make([]float64, len(a.Assets))
		for j := range a.Assets {
			diff.Coeff[i][j] = a.Coeff[i][j] - b.Coeff[bIdx[i]][bIdx[j]]
		}
	}

	return diff, nil
}

// Intersect restricts both matrices to the assets they share, preserving a's
// ordering, so the pair can be passed to Difference
func Intersect(a, b *Matrix) (*Matrix, *Matrix) {
	common := make([]string, 0, len(a.Assets))
	for _, asset := range a.Assets {
		if b.index(asset) != -1 {
			common = append(common, asset)
		}
	}

	return a.subset(common), b.subset(common)
}

func (m *Matrix) subset(assets []string) *Matrix {
	sub := &Matrix{
		Assets: make([]string, len(assets)),
		Coeff:  make([][]float64, len(assets)),
	}
	copy(sub.Assets, assets)

	for i, assetA := range assets {
		srcI := m.index(assetA)
		sub.Coeff[i] = make([]float64, len(assets))
		for j, assetB := range assets {
			sub.Coeff[i][j] = m.Coeff[srcI][m.index(assetB)]
		}
	}
	return sub
}
