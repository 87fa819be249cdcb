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

// Package data retrieves daily closing prices for the configured asset
// catalog from an external market-data provider and assembles them into a
// date-indexed price table. A failed fetch for one asset never aborts the
// run; the asset is recorded as missing and excluded from the table.
package data

import (
	"context"

	"github.com/penny-vault/pv-correlate/dataframe"
)

// Provider is a source of daily closing prices for a single ticker
type Provider interface {
	// GetCloses returns a single-column dataframe of daily closes for the
	// requested ticker over the given range ("6mo") and interval ("1d")
	GetCloses(ctx context.Context, ticker string, dataRange string, interval string) (*dataframe.DataFrame, error)

	// Name identifies the provider in logs
	Name() string
}

type quoteResult struct {
	Asset string
	Data  *dataframe.DataFrame
	Err   error
}

func partitionAssets(xs []string, chunkSize int) [][]string {
	if len(xs) == 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = len(xs)
	}
	divided := make([][]string, 0, (len(xs)+chunkSize-1)/chunkSize)
	for prev := 0; prev < len(xs); prev += chunkSize {
		next := prev + chunkSize
		if next > len(xs) {
			next = len(xs)
		}
		divided = append(divided, xs[prev:next])
	}
	return divided
}
