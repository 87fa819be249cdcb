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
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"runtime/trace"

	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/pv-correlate/common"
	"github.com/penny-vault/pv-correlate/config"
	"github.com/penny-vault/pv-correlate/data"
	"github.com/penny-vault/pv-correlate/handler"
	"github.com/penny-vault/pv-correlate/middleware"
	"github.com/penny-vault/pv-correlate/observability/opentelemetry"
	"github.com/penny-vault/pv-correlate/router"
	"github.com/penny-vault/pv-correlate/snapshot"
)

func init() {
	viper.BindEnv("server.port", "PORT")
	serveCmd.Flags().IntP("port", "p", 3000, "Port to run application server on")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	viper.BindEnv("refresh.every_hours", "PV_REFRESH_EVERY_HOURS")
	serveCmd.Flags().Int("refresh-every-hours", 1, "Hours between scheduled data refreshes")
	viper.BindPFlag("refresh.every_hours", serveCmd.Flags().Lookup("refresh-every-hours"))

	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pv-correlate server",
	Long:  `Run HTTP server that refreshes price data on a schedule and serves correlation matrices, heatmaps and classified pairs`,
	Run: func(cmd *cobra.Command, args []string) {
		if Profile {
			f, err := os.Create("profile.out")
			if err != nil {
				log.Fatal().Err(err).Msg("could not create profile.out")
			}
			pprof.StartCPUProfile(f)
			defer pprof.StopCPUProfile()
		}

		if Trace {
			f, err := os.Create("trace.out")
			if err != nil {
				log.Fatal().Err(err).Msg("failed to create trace output file")
			}
			defer func() {
				if err := f.Close(); err != nil {
					log.Fatal().Err(err).Msg("failed to close trace file")
				}
			}()

			if err := trace.Start(f); err != nil {
				log.Fatal().Err(err).Msg("failed to start trace")
			}
			defer trace.Stop()
		}

		common.SetupLogging()
		common.SetupCache()
		log.Info().Msg("initialized logging")

		if viper.GetString("otlp.endpoint") != "" {
			shutdownTracer, err := opentelemetry.Setup()
			if err != nil {
				log.Warn().Err(err).Msg("tracing disabled")
			} else {
				defer shutdownTracer(context.Background())
			}
		}

		cfg, err := config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("invalid configuration")
		}

		manager := data.NewManager(cfg, data.NewYahoo())
		store := snapshot.NewStore(cfg, manager)

		app := fiber.New()

		// shutdown cleanly on interrupt
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		go func() {
			sig := <-c // block until signal is read
			fmt.Printf("Received signal: '%s'; shutting down...\n", sig.String())
			if err := app.Shutdown(); err != nil {
				log.Fatal().Err(err).Msg("app shutdown failed")
			}
		}()

		corsConfig := cors.Config{
			AllowOrigins: "*",
			AllowHeaders: "*",
			AllowMethods: "GET,POST,HEAD",
		}
		app.Use(cors.New(corsConfig))
		app.Use(recover.New())
		app.Use(middleware.NewLogger())

		router.SetupRoutes(app, handler.New(cfg, store))

		// first snapshot in the background so the server comes up fast
		go func() {
			if _, err := store.Refresh(context.Background()); err != nil {
				log.Error().Err(err).Msg("initial refresh failed")
			}
		}()

		tz := common.GetTimezone()
		scheduler := gocron.NewScheduler(tz)
		scheduler.Every(viper.GetInt("refresh.every_hours")).Hours().Do(func() {
			if _, err := store.Refresh(context.Background()); err != nil {
				log.Warn().Err(err).Msg("scheduled refresh skipped")
			}
		})
		scheduler.StartAsync()

		if err := app.Listen(":" + viper.GetString("server.port")); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	},
}
