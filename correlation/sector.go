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

import "github.com/penny-vault/pv-correlate/config"

// InterMarketGroup collects classified pairs whose legs belong to different
// sectors
const InterMarketGroup = "Inter-Market (Mixed)"

// GroupBySector buckets classified pairs by sector. A pair whose legs share
// a sector lands in that sector's bucket; cross-sector pairs land in the
// Inter-Market bucket unless they classified as Independent, which is only
// interesting within a sector (an uncorrelated pair of unrelated markets
// carries no signal).
func GroupBySector(pairs []ClassifiedPair, cfg *config.Config) map[string][]ClassifiedPair {
	grouped := make(map[string][]ClassifiedPair)

	for _, pair := range pairs {
		sectorA := cfg.SectorOf(pair.AssetA)
		sectorB := cfg.SectorOf(pair.AssetB)

		switch {
		case sectorA == sectorB && sectorA != "":
			grouped[sectorA] = append(grouped[sectorA], pair)
		case pair.Category != CategoryIndependent:
			grouped[InterMarketGroup] = append(grouped[InterMarketGroup], pair)
		}
	}

	for _, pairs := range grouped {
		SortByStrength(pairs)
	}

	return grouped
}
