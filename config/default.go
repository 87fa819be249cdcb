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

package config

// Sector names used in the default catalog
const (
	SectorIndices     = "Stock Indices"
	SectorEnergies    = "Energies"
	SectorMetals      = "Metals"
	SectorCrypto      = "Crypto"
	SectorCurrencies  = "Currencies"
	SectorFixedIncome = "Bonds/Fixed Income"
	SectorGrains      = "Agriculture (Grains)"
	SectorLivestock   = "Livestock (Meats)"
)

// Default returns the built-in configuration: the ~30 CME/crypto instruments
// the desk tracks, 15/60 trading-day windows and the documented
// classification bands
func Default() *Config {
	return &Config{
		Assets: []Asset{
			// Currencies & Fixed Income
			{Name: "6B (Pound)", Ticker: "6B=F", Sector: SectorCurrencies},
			{Name: "ZN (10Y Bond)", Ticker: "ZN=F", Sector: SectorFixedIncome},
			{Name: "6J (Yen)", Ticker: "6J=F", Sector: SectorCurrencies},
			{Name: "6E (Euro)", Ticker: "6E=F", Sector: SectorCurrencies},
			{Name: "6S (Swiss Franc)", Ticker: "6S=F", Sector: SectorCurrencies},
			{Name: "6N (NZD)", Ticker: "6N=F", Sector: SectorCurrencies},
			{Name: "6A (AUD)", Ticker: "6A=F", Sector: SectorCurrencies},
			{Name: "6C (CAD)", Ticker: "6C=F", Sector: SectorCurrencies},
			{Name: "ZT (2Y Bond)", Ticker: "ZT=F", Sector: SectorFixedIncome},
			// Grains & Meats
			{Name: "ZW (Wheat)", Ticker: "ZW=F", Sector: SectorGrains},
			{Name: "ZS (Soybean)", Ticker: "ZS=F", Sector: SectorGrains},
			{Name: "ZC (Corn)", Ticker: "ZC=F", Sector: SectorGrains},
			{Name: "ZM (Soy Meal)", Ticker: "ZM=F", Sector: SectorGrains},
			{Name: "ZL (Soy Oil)", Ticker: "ZL=F", Sector: SectorGrains},
			{Name: "LE (Live Cattle)", Ticker: "LE=F", Sector: SectorLivestock},
			{Name: "HE (Lean Hogs)", Ticker: "HE=F", Sector: SectorLivestock},
			// Crypto & Metals
			{Name: "BTC", Ticker: "BTC-USD", Sector: SectorCrypto},
			{Name: "ETH", Ticker: "ETH-USD", Sector: SectorCrypto},
			{Name: "GC (Gold)", Ticker: "GC=F", Sector: SectorMetals},
			{Name: "SI (Silver)", Ticker: "SI=F", Sector: SectorMetals},
			{Name: "HG (Copper)", Ticker: "HG=F", Sector: SectorMetals},
			{Name: "PL (Platinum)", Ticker: "PL=F", Sector: SectorMetals},
			// Energies
			{Name: "CL (WTI Crude)", Ticker: "CL=F", Sector: SectorEnergies},
			{Name: "RB (Gasoline)", Ticker: "RB=F", Sector: SectorEnergies},
			{Name: "NG (Nat Gas)", Ticker: "NG=F", Sector: SectorEnergies},
			{Name: "HO (Heating Oil)", Ticker: "HO=F", Sector: SectorEnergies},
			// Stock Indices
			{Name: "ES (S&P 500)", Ticker: "ES=F", Sector: SectorIndices},
			{Name: "NQ (Nasdaq)", Ticker: "NQ=F", Sector: SectorIndices},
			{Name: "YM (Dow Jones)", Ticker: "YM=F", Sector: SectorIndices},
			{Name: "RTY (Russell)", Ticker: "RTY=F", Sector: SectorIndices},
		},
		Windows: Windows{
			ShortDays:  15,
			MediumDays: 60,
		},
		Thresholds: Thresholds{
			Twin:             0.80,
			ModeratePositive: 0.50,
			IndependentHigh:  0.20,
			IndependentLow:   -0.20,
			ModerateInverse:  -0.50,
			Mirror:           -0.80,
		},
		Fetch: Fetch{
			// download 6 months of daily bars so the 60-day window has history
			Range:     "6mo",
			Interval:  "1d",
			ChunkSize: 10,
		},
	}
}
