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

// Package commissions carries the Lucid Trading per-side commission
// reference for CME-approved futures contracts. Figures are per side in USD
// (multiply by 2 for round-trip); spreads are raw market-driven on CME,
// CBOT, NYMEX and COMEX with no firm markup. Sourced from the Lucid Trading
// help center, February 2025:
// https://support.lucidtrading.com/en/articles/11508978-approved-products-and-commissions
package commissions

import (
	"sort"
	"strings"
)

// Commission records the per-side fee for one futures contract; Available is
// false for contracts the firm does not offer
type Commission struct {
	Contract    string  `json:"contract"`
	Description string  `json:"description"`
	PerSide     float64 `json:"perSideUSD"`
	Available   bool    `json:"available"`
}

var contracts = map[string]Commission{
	// Equity index futures (E-mini), CME/CBOT
	"ES":  {Contract: "ES", Description: "E-mini S&P 500", PerSide: 1.75, Available: true},
	"NQ":  {Contract: "NQ", Description: "E-mini Nasdaq-100", PerSide: 1.75, Available: true},
	"YM":  {Contract: "YM", Description: "E-mini Dow Jones", PerSide: 1.75, Available: true},
	"RTY": {Contract: "RTY", Description: "E-mini Russell 2000", PerSide: 1.75, Available: true},

	// Equity index futures (Micro), CME
	"MES": {Contract: "MES", Description: "Micro E-mini S&P 500", PerSide: 0.50, Available: true},
	"MNQ": {Contract: "MNQ", Description: "Micro E-mini Nasdaq-100", PerSide: 0.50, Available: true},
	"MYM": {Contract: "MYM", Description: "Micro E-mini Dow Jones", PerSide: 0.50, Available: true},
	"M2K": {Contract: "M2K", Description: "Micro E-mini Russell 2000", PerSide: 0.50, Available: true},

	// Currency futures, CME
	"6A": {Contract: "6A", Description: "Australian Dollar", PerSide: 2.40, Available: true},
	"6B": {Contract: "6B", Description: "British Pound", PerSide: 2.40, Available: true},
	"6C": {Contract: "6C", Description: "Canadian Dollar", PerSide: 2.40, Available: true},
	"6E": {Contract: "6E", Description: "Euro FX", PerSide: 2.40, Available: true},
	"6J": {Contract: "6J", Description: "Japanese Yen", PerSide: 2.40, Available: true},
	"6N": {Contract: "6N", Description: "New Zealand Dollar", PerSide: 2.40, Available: true},
	"6S": {Contract: "6S", Description: "Swiss Franc", PerSide: 2.40, Available: true},

	// Energy futures, NYMEX
	"CL":  {Contract: "CL", Description: "Crude Oil (WTI)", PerSide: 2.00, Available: true},
	"MCL": {Contract: "MCL", Description: "Micro Crude Oil", PerSide: 0.50, Available: true},
	"NG":  {Contract: "NG", Description: "Natural Gas", PerSide: 2.00, Available: true},
	"QG":  {Contract: "QG", Description: "E-mini Natural Gas", PerSide: 1.30, Available: true},
	"QM":  {Contract: "QM", Description: "E-mini Crude Oil", PerSide: 2.00, Available: true},
	"RB":  {Contract: "RB", Description: "RBOB Gasoline", Available: false},
	"HO":  {Contract: "HO", Description: "Heating Oil", Available: false},

	// Metals futures, COMEX; GC and SI reported in the $3.00-$5.60 range
	"GC":  {Contract: "GC", Description: "Gold (full-size)", PerSide: 3.00, Available: true},
	"MGC": {Contract: "MGC", Description: "Micro Gold", PerSide: 0.80, Available: true},
	"SI":  {Contract: "SI", Description: "Silver (full-size)", PerSide: 3.00, Available: true},
	"HG":  {Contract: "HG", Description: "Copper", Available: false},
	"PL":  {Contract: "PL", Description: "Platinum", Available: false},

	// Agriculture (grains), CBOT
	"ZS": {Contract: "ZS", Description: "Soybeans", PerSide: 2.80, Available: true},
	"ZC": {Contract: "ZC", Description: "Corn", PerSide: 2.80, Available: true},
	"ZW": {Contract: "ZW", Description: "Wheat", PerSide: 2.80, Available: true},
	"ZL": {Contract: "ZL", Description: "Soybean Oil", PerSide: 2.80, Available: true},
	"ZM": {Contract: "ZM", Description: "Soybean Meal", PerSide: 2.80, Available: true},

	// Livestock, CME
	"LE": {Contract: "LE", Description: "Live Cattle", PerSide: 2.80, Available: true},
	"HE": {Contract: "HE", Description: "Lean Hogs", PerSide: 2.80, Available: true},

	// Treasuries, not approved
	"ZN": {Contract: "ZN", Description: "10-Year Treasury Note", Available: false},
	"ZT": {Contract: "ZT", Description: "2-Year Treasury Note", Available: false},
	"ZB": {Contract: "ZB", Description: "30-Year Treasury Bond", Available: false},
	"ZF": {Contract: "ZF", Description: "5-Year Treasury Note", Available: false},

	// Crypto, not approved
	"BTC": {Contract: "BTC", Description: "Bitcoin", Available: false},
	"ETH": {Contract: "ETH", Description: "Ethereum", Available: false},

	// International, CME
	"NKD": {Contract: "NKD", Description: "Nikkei 225 (USD)", PerSide: 1.75, Available: true},
}

// Lookup returns the commission entry for a contract code
func Lookup(contract string) (Commission, bool) {
	c, ok := contracts[contract]
	return c, ok
}

// ForAsset resolves an asset display name like "ES (S&P 500)" to its
// contract code and returns the commission entry
func ForAsset(displayName string) (Commission, bool) {
	contract := displayName
	if idx := strings.Index(displayName, " "); idx != -1 {
		contract = displayName[:idx]
	}
	return Lookup(contract)
}

// PairTradable reports whether both legs of an asset pair are available at
// the referenced broker
func PairTradable(assetA, assetB string) bool {
	a, okA := ForAsset(assetA)
	b, okB := ForAsset(assetB)
	return okA && okB && a.Available && b.Available
}

// All returns every known contract sorted by code
func All() []Commission {
	all := make([]Commission, 0, len(contracts))
	for _, c := range contracts {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Contract < all[j].Contract })
	return all
}
