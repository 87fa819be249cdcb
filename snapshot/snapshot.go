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

// Package snapshot owns the current analysis result and the refresh
// pipeline that produces it. Readers always observe a complete snapshot;
// refresh runs are single-flight and replace the snapshot atomically.
package snapshot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/penny-vault/pv-correlate/config"
	"github.com/penny-vault/pv-correlate/correlation"
	"github.com/penny-vault/pv-correlate/data"
	"github.com/penny-vault/pv-correlate/dataframe"
	"github.com/rs/zerolog/log"
)

var (
	// ErrRefreshInFlight indicates a refresh is already running
	ErrRefreshInFlight = errors.New("refresh already running")
	// ErrNoSnapshot indicates no refresh has completed yet
	ErrNoSnapshot = errors.New("no snapshot available")
)

// Snapshot is the immutable result of one refresh run
type Snapshot struct {
	ID          uuid.UUID                    `json:"id"`
	Time        time.Time                    `json:"time"`
	Assets      []string                     `json:"assets"`
	Prices      *dataframe.DataFrame         `json:"-"`
	Short       *correlation.Matrix          `json:"-"`
	Medium      *correlation.Matrix          `json:"-"`
	Difference  *correlation.Matrix          `json:"-"`
	ShortPairs  []correlation.ClassifiedPair `json:"-"`
	MediumPairs []correlation.ClassifiedPair `json:"-"`
	FetchErrors map[string]string            `json:"fetchErrors"`
}

// Store holds the current snapshot and coordinates refreshes
type Store struct {
	cfg     *config.Config
	manager *data.Manager

	mutex      sync.RWMutex
	current    *Snapshot
	refreshing int32
}

// NewStore creates a snapshot store backed by the given price manager
func NewStore(cfg *config.Config, manager *data.Manager) *Store {
	return &Store{
		cfg:     cfg,
		manager: manager,
	}
}

// Current returns the latest complete snapshot, or ErrNoSnapshot before the
// first refresh finishes
func (store *Store) Current() (*Snapshot, error) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	if store.current == nil {
		return nil, ErrNoSnapshot
	}
	return store.current, nil
}

// Refreshing reports whether a refresh run is currently in flight
func (store *Store) Refreshing() bool {
	return atomic.LoadInt32(&store.refreshing) == 1
}

// Refresh fetches prices, recomputes both window matrices, their difference
// and the classified pairs, then atomically installs the new snapshot. Only
// one refresh may run at a time; concurrent calls get ErrRefreshInFlight.
func (store *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	if !atomic.CompareAndSwapInt32(&store.refreshing, 0, 1) {
		return nil, ErrRefreshInFlight
	}
	defer atomic.StoreInt32(&store.refreshing, 0)

	started := time.Now()
	prices, fetchErrors, err := store.manager.FetchPrices(ctx)
	if err != nil {
		log.Error().Err(err).Msg("price fetch failed; keeping previous snapshot")
		return nil, err
	}

	short := correlation.Compute(prices, store.cfg.Windows.ShortDays)
	medium := correlation.Compute(prices, store.cfg.Windows.MediumDays)

	// the medium-minus-short drift map; asset sets can diverge when all
	// observations for an instrument fall outside one window
	mediumAligned, shortAligned := correlation.Intersect(medium, short)
	diff, err := correlation.Difference(mediumAligned, shortAligned)
	if err != nil {
		log.Error().Err(err).Msg("difference matrix failed")
		return nil, err
	}

	shortPairs := correlation.Classify(short, store.cfg.Thresholds)
	mediumPairs := correlation.Classify(medium, store.cfg.Thresholds)
	correlation.SortByStrength(shortPairs)
	correlation.SortByStrength(mediumPairs)

	errStrings := make(map[string]string, len(fetchErrors))
	for asset, fetchErr := range fetchErrors {
		errStrings[asset] = fetchErr.Error()
	}

	snap := &Snapshot{
		ID:          uuid.New(),
		Time:        time.Now(),
		Assets:      short.Assets,
		Prices:      prices,
		Short:       short,
		Medium:      medium,
		Difference:  diff,
		ShortPairs:  shortPairs,
		MediumPairs: mediumPairs,
		FetchErrors: errStrings,
	}

	store.mutex.Lock()
	store.current = snap
	store.mutex.Unlock()

	log.Info().
		Str("SnapshotID", snap.ID.String()).
		Int("NumAssets", len(snap.Assets)).
		Int("NumFetchErrors", len(errStrings)).
		Dur("Elapsed", time.Since(started)).
		Msg("refresh complete")
	return snap, nil
}

// Matrix returns the named window matrix from a snapshot. Valid names are
// short, medium and difference.
func (snap *Snapshot) Matrix(window string) (*correlation.Matrix, bool) {
	switch window {
	case "short":
		return snap.Short, true
	case "medium":
		return snap.Medium, true
	case "difference":
		return snap.Difference, true
	default:
		return nil, false
	}
}

// Pairs returns classified pairs for the short or medium window; the
// difference view has no classification
func (snap *Snapshot) Pairs(window string) ([]correlation.ClassifiedPair, bool) {
	switch window {
	case "short":
		return snap.ShortPairs, true
	case "medium":
		return snap.MediumPairs, true
	default:
		return nil, false
	}
}
