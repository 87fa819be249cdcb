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
	"errors"
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/pv-correlate/correlation"
	"github.com/penny-vault/pv-correlate/heatmap"
	"github.com/rs/zerolog/log"
)

type MatrixResponse struct {
	SnapshotID   string       `json:"snapshotId"`
	Time         time.Time    `json:"time"`
	Window       string       `json:"window"`
	Assets       []string     `json:"assets"`
	Coefficients [][]*float64 `json:"coefficients"`
}

type CellResponse struct {
	AssetA      string   `json:"assetA"`
	AssetB      string   `json:"assetB"`
	Window      string   `json:"window"`
	Coefficient *float64 `json:"coefficient"`
	RSquared    *float64 `json:"rSquaredPct"`
	Category    string   `json:"category,omitempty"`
	Label       string   `json:"label,omitempty"`
}

// Matrix returns the named window matrix as JSON; NaN cells marshal as null
func (srv *Server) Matrix(c *fiber.Ctx) error {
	snap, err := srv.Store.Current()
	if err != nil {
		return fiber.ErrNotFound
	}

	window := c.Params("window")
	m, ok := snap.Matrix(window)
	if !ok {
		return fiber.ErrNotFound
	}

	return c.JSON(MatrixResponse{
		SnapshotID:   snap.ID.String(),
		Time:         snap.Time,
		Window:       window,
		Assets:       m.Assets,
		Coefficients: nullableCoefficients(m),
	})
}

// Heatmap renders the named window matrix as a PNG image; the difference
// view uses the wider color scale
func (srv *Server) Heatmap(c *fiber.Ctx) error {
	snap, err := srv.Store.Current()
	if err != nil {
		return fiber.ErrNotFound
	}

	window := strings.TrimSuffix(c.Params("window"), ".png")
	m, ok := snap.Matrix(window)
	if !ok {
		return fiber.ErrNotFound
	}

	scale := heatmap.ScaleCorrelation
	if window == "difference" {
		scale = heatmap.ScaleDifference
	}

	png, err := heatmap.Encode(m, scale)
	if err != nil {
		log.Error().Err(err).Str("Window", window).Msg("heatmap render failed")
		return fiber.ErrInternalServerError
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// Cell returns the coefficient and classification for a single asset pair.
// Unknown assets are an expected condition and return 404 without an error
// log entry.
func (srv *Server) Cell(c *fiber.Ctx) error {
	snap, err := srv.Store.Current()
	if err != nil {
		return fiber.ErrNotFound
	}

	window := c.Query("window", "short")
	m, ok := snap.Matrix(window)
	if !ok {
		return fiber.ErrNotFound
	}

	assetA := c.Query("a")
	assetB := c.Query("b")
	val, err := m.Value(assetA, assetB)
	if err != nil {
		if errors.Is(err, correlation.ErrUnknownAsset) {
			return fiber.ErrNotFound
		}
		log.Error().Err(err).Msg("cell lookup failed")
		return fiber.ErrInternalServerError
	}

	resp := CellResponse{
		AssetA:      assetA,
		AssetB:      assetB,
		Window:      window,
		Coefficient: nullableFloat(val),
	}
	if !math.IsNaN(val) {
		rsq := val * val * 100
		resp.RSquared = &rsq
	}
	if window != "difference" {
		if category, classified := correlation.ClassifyValue(val, srv.Config.Thresholds); classified {
			resp.Category = string(category)
			resp.Label = category.Label()
		}
	}

	return c.JSON(resp)
}

func nullableCoefficients(m *correlation.Matrix) [][]*float64 {
	coeff := make([][]*float64, m.Dim())
	for i := range coeff {
		row := make([]*float64, m.Dim())
		for j := range row {
			row[j] = nullableFloat(m.At(i, j))
		}
		coeff[i] = row
	}
	return coeff
}

func nullableFloat(val float64) *float64 {
	if math.IsNaN(val) {
		return nil
	}
	return &val
}
