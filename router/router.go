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

package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/pv-correlate/handler"
)

// SetupRoutes registers the API on the fiber app
func SetupRoutes(app *fiber.App, srv *handler.Server) {
	app.Get("/", srv.Home)

	api := app.Group("/v1")
	api.Get("/ping", srv.Ping)
	api.Post("/refresh", srv.Refresh)
	api.Get("/snapshot", srv.Snapshot)
	api.Get("/matrix/:window", srv.Matrix)
	api.Get("/heatmap/:window", srv.Heatmap)
	api.Get("/pairs", srv.Pairs)
	api.Get("/cell", srv.Cell)
	api.Get("/commissions", srv.Commissions)
}
