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

package dataframe

import "math"

// PctChange computes the simple percentage change of each column per period,
// (p[t]-p[t-1])/p[t-1], and returns a new dataframe. The first row is NaN
// since there is no prior observation; a NaN or zero input propagates NaN to
// the periods that reference it.
func (df *DataFrame) PctChange() *DataFrame {
	df2 := &DataFrame{
		Dates:    df.Dates,
		ColNames: df.ColNames,
		Vals:     make([][]float64, len(df.Vals)),
	}

	for colIdx, col := range df.Vals {
		vals := make([]float64, len(col))
		for rowIdx := range col {
			if rowIdx == 0 || col[rowIdx-1] == 0 {
				vals[rowIdx] = math.NaN()
				continue
			}
			vals[rowIdx] = (col[rowIdx] - col[rowIdx-1]) / col[rowIdx-1]
		}
		df2.Vals[colIdx] = vals
	}

	return df2
}
