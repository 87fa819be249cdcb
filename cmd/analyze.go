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

package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/pv-correlate/commissions"
	"github.com/penny-vault/pv-correlate/common"
	"github.com/penny-vault/pv-correlate/config"
	"github.com/penny-vault/pv-correlate/correlation"
	"github.com/penny-vault/pv-correlate/data"
	"github.com/penny-vault/pv-correlate/heatmap"
	"github.com/penny-vault/pv-correlate/snapshot"
)

var (
	analyzeWindow string
	analyzePNG    string
	analyzeCSV    string
	analyzeConfig bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeWindow, "window", "short", "Window to export: short, medium or difference")
	analyzeCmd.Flags().StringVar(&analyzePNG, "png", "", "Write a heatmap PNG of the selected window to the given path")
	analyzeCmd.Flags().StringVar(&analyzeCSV, "csv", "", "Write the selected window matrix as CSV to the given path")
	analyzeCmd.Flags().BoolVar(&analyzeConfig, "show-config", false, "Print the effective configuration as TOML and exit")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot correlation analysis",
	Long:  `Fetch prices, compute correlation matrices for both windows and print classified pairs; optionally export a heatmap PNG or matrix CSV`,
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		common.SetupCache()

		cfg, err := config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("invalid configuration")
		}

		if analyzeConfig {
			out, err := toml.Marshal(cfg)
			if err != nil {
				log.Fatal().Err(err).Msg("could not marshal configuration")
			}
			fmt.Println(string(out))
			return
		}

		manager := data.NewManager(cfg, data.NewYahoo())
		store := snapshot.NewStore(cfg, manager)

		snap, err := store.Refresh(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("analysis failed")
		}

		for asset, fetchErr := range snap.FetchErrors {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", asset, fetchErr)
		}

		fmt.Printf("Short window (%d days)\n", cfg.Windows.ShortDays)
		printPairs(snap.ShortPairs, cfg)
		fmt.Printf("\nMedium window (%d days)\n", cfg.Windows.MediumDays)
		printPairs(snap.MediumPairs, cfg)

		m, ok := snap.Matrix(analyzeWindow)
		if !ok {
			log.Fatal().Str("Window", analyzeWindow).Msg("unknown window")
		}

		if analyzePNG != "" {
			if err := exportPNG(m, analyzeWindow, analyzePNG); err != nil {
				log.Fatal().Err(err).Str("FileName", analyzePNG).Msg("png export failed")
			}
			fmt.Printf("\nwrote %s\n", analyzePNG)
		}

		if analyzeCSV != "" {
			if err := exportCSV(m, analyzeCSV); err != nil {
				log.Fatal().Err(err).Str("FileName", analyzeCSV).Msg("csv export failed")
			}
			fmt.Printf("\nwrote %s\n", analyzeCSV)
		}
	},
}

func printPairs(pairs []correlation.ClassifiedPair, cfg *config.Config) {
	grouped := correlation.GroupBySector(pairs, cfg)
	sectors := make([]string, 0, len(grouped))
	for sector := range grouped {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Sector", "Pair", "r", "r^2 %", "Category", "Tradable"})
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	for _, sector := range sectors {
		for _, pair := range grouped[sector] {
			tradable := "no"
			if commissions.PairTradable(pair.AssetA, pair.AssetB) {
				tradable = "yes"
			}
			table.Append([]string{
				sector,
				fmt.Sprintf("%s / %s", pair.AssetA, pair.AssetB),
				strconv.FormatFloat(pair.Coefficient, 'f', 3, 64),
				strconv.FormatFloat(pair.RSquared, 'f', 1, 64),
				pair.Category.Label(),
				tradable,
			})
		}
	}
	table.Render()
}

func exportPNG(m *correlation.Matrix, window, fn string) error {
	scale := heatmap.ScaleCorrelation
	if window == "difference" {
		scale = heatmap.ScaleDifference
	}
	fh, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer fh.Close()
	return heatmap.Render(fh, m, scale)
}

func exportCSV(m *correlation.Matrix, fn string) error {
	fh, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer fh.Close()

	w := csv.NewWriter(fh)
	header := append([]string{""}, m.Assets...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, asset := range m.Assets {
		row := make([]string, 0, m.Dim()+1)
		row = append(row, asset)
		for j := 0; j < m.Dim(); j++ {
			val := m.At(i, j)
			if math.IsNaN(val) {
				row = append(row, "")
			} else {
				row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
