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

package handler

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/pv-correlate/commissions"
	"github.com/penny-vault/pv-correlate/correlation"
)

type PairJSON struct {
	correlation.ClassifiedPair
	Label    string `json:"label"`
	Tradable bool   `json:"tradable"`
}

type SectorGroup struct {
	Sector string     `json:"sector"`
	Pairs  []PairJSON `json:"pairs"`
}

type PairsResponse struct {
	SnapshotID string        `json:"snapshotId"`
	Window     string        `json:"window"`
	Sectors    []SectorGroup `json:"sectors"`
}

// Pairs lists classified pairs for a window grouped by sector. Cross-sector
// pairs land in the Inter-Market group; each pair is annotated with whether
// both legs are tradable per the commission reference.
func (srv *Server) Pairs(c *fiber.Ctx) error {
	snap, err := srv.Store.Current()
	if err != nil {
		return fiber.ErrNotFound
	}

	window := c.Query("window", "short")
	pairs, ok := snap.Pairs(window)
	if !ok {
		return fiber.ErrNotFound
	}

	grouped := correlation.GroupBySector(pairs, srv.Config)
	sectors := make([]SectorGroup, 0, len(grouped))
	for sector, sectorPairs := range grouped {
		group := SectorGroup{
			Sector: sector,
			Pairs:  make([]PairJSON, 0, len(sectorPairs)),
		}
		for _, pair := range sectorPairs {
			group.Pairs = append(group.Pairs, PairJSON{
				ClassifiedPair: pair,
				Label:          pair.Category.Label(),
				Tradable:       commissions.PairTradable(pair.AssetA, pair.AssetB),
			})
		}
		sectors = append(sectors, group)
	}
	sort.Slice(sectors, func(i, j int) bool { return sectors[i].Sector < sectors[j].Sector })

	return c.JSON(PairsResponse{
		SnapshotID: snap.ID.String(),
		Window:     window,
		Sectors:    sectors,
	})
}

// Commissions returns the static per-contract commission reference
func (srv *Server) Commissions(c *fiber.Ctx) error {
	return c.JSON(commissions.All())
}
