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

package data

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/penny-vault/pv-correlate/config"
	"github.com/penny-vault/pv-correlate/dataframe"
	"github.com/rs/zerolog/log"
)

// Manager downloads price series for the whole catalog and merges them into
// a single date-indexed table with one column per asset display name
type Manager struct {
	provider Provider
	cfg      *config.Config
}

func NewManager(cfg *config.Config, provider Provider) *Manager {
	return &Manager{
		provider: provider,
		cfg:      cfg,
	}
}

// FetchPrices retrieves closing prices for every configured asset. Fetch
// workers fan out per chunk; a per-asset failure is logged and recorded in
// the returned error map and that asset is excluded from the table. The
// whole run fails only when no asset could be fetched.
func (manager *Manager) FetchPrices(ctx context.Context) (*dataframe.DataFrame, map[string]error, error) {
	if len(manager.cfg.Assets) == 0 {
		return nil, nil, ErrEmptyCatalog
	}

	subLog := log.With().Str("Provider", manager.provider.Name()).Int("NumAssets", len(manager.cfg.Assets)).Logger()
	subLog.Info().Msg("downloading market data")

	names := manager.cfg.Names()
	frames := make(map[string]*dataframe.DataFrame, len(names))
	fetchErrors := make(map[string]error)
	ch := make(chan quoteResult)

	for _, chunk := range partitionAssets(names, manager.cfg.Fetch.ChunkSize) {
		for _, name := range chunk {
			asset, _ := manager.cfg.AssetByName(name)
			go manager.downloadWorker(ctx, ch, asset)
		}

		for range chunk {
			res := <-ch
			if res.Err != nil {
				subLog.Warn().Err(res.Err).Str("Asset", res.Asset).Msg("cannot download asset data; excluding from run")
				fetchErrors[res.Asset] = res.Err
				continue
			}
			frames[res.Asset] = res.Data
		}
	}

	if len(frames) == 0 {
		subLog.Error().Msg("no asset could be fetched")
		return nil, fetchErrors, ErrNoData
	}

	return mergeFrames(names, frames), fetchErrors, nil
}

func (manager *Manager) downloadWorker(ctx context.Context, result chan<- quoteResult, asset config.Asset) {
	df, err := manager.provider.GetCloses(ctx, asset.Ticker, manager.cfg.Fetch.Range, manager.cfg.Fetch.Interval)
	if err == nil {
		// rename the ticker column to the asset display name
		df.ColNames[0] = asset.Name
	}
	result <- quoteResult{
		Asset: asset.Name,
		Data:  df,
		Err:   err,
	}
}

// mergeFrames joins single-asset frames on the union of their date indexes,
// preserving catalog order for columns; dates an asset did not trade are NaN
func mergeFrames(order []string, frames map[string]*dataframe.DataFrame) *dataframe.DataFrame {
	dateSet := make(map[time.Time]bool)
	for _, df := range frames {
		for _, date := range df.Dates {
			dateSet[date] = true
		}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	merged := dataframe.New(dates)
	for _, name := range order {
		df, ok := frames[name]
		if !ok {
			continue
		}

		byDate := make(map[time.Time]float64, df.Len())
		for idx, date := range df.Dates {
			byDate[date] = df.Vals[0][idx]
		}

		col := make([]float64, len(dates))
		for idx, date := range dates {
			if val, ok := byDate[date]; ok {
				col[idx] = val
			} else {
				col[idx] = math.NaN()
			}
		}
		merged.Insert(name, col)
	}

	return merged
}
