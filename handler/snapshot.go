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
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/pv-correlate/snapshot"
	"github.com/rs/zerolog/log"
)

type SnapshotResponse struct {
	ID          string            `json:"id"`
	Time        time.Time         `json:"time"`
	Assets      []string          `json:"assets"`
	NumPrices   int               `json:"numPriceRows"`
	FetchErrors map[string]string `json:"fetchErrors"`
	Refreshing  bool              `json:"refreshing"`
}

// Snapshot returns a summary of the latest analysis run
func (srv *Server) Snapshot(c *fiber.Ctx) error {
	snap, err := srv.Store.Current()
	if err != nil {
		if srv.Store.Refreshing() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "refreshing", "message": "first refresh still running",
			})
		}
		return fiber.ErrNotFound
	}

	return c.JSON(SnapshotResponse{
		ID:          snap.ID.String(),
		Time:        snap.Time,
		Assets:      snap.Assets,
		NumPrices:   snap.Prices.Len(),
		FetchErrors: snap.FetchErrors,
		Refreshing:  srv.Store.Refreshing(),
	})
}

// Refresh starts a background refresh run. A second trigger while one is in
// flight is rejected with 409.
func (srv *Server) Refresh(c *fiber.Ctx) error {
	if srv.Store.Refreshing() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status": "error", "message": snapshot.ErrRefreshInFlight.Error(),
		})
	}

	go func() {
		ctx := context.Background()
		if _, err := srv.Store.Refresh(ctx); err != nil &&
			!errors.Is(err, snapshot.ErrRefreshInFlight) {
			log.Error().Err(err).Msg("background refresh failed")
		}
	}()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "accepted"})
}
