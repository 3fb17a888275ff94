/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package server exposes the render pipeline and the detection boundary
// over HTTP. It is the thin calling layer: upload handling, session
// bookkeeping and content negotiation live here, geometry does not.
package server

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Lilscotchty/archpro/internal/config"
	applog "github.com/Lilscotchty/archpro/internal/log"
	"github.com/Lilscotchty/archpro/internal/version"
)

// Server bundles the fiber app with its collaborators.
type Server struct {
	app      *fiber.App
	cfg      config.AppConfig
	store    *Store
	handlers *Handlers
}

// New assembles the app and its routes.
func New(cfg config.AppConfig) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		AppName:      "archpro " + version.String(),
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
	}))

	store := NewStore()
	h := NewHandlers(cfg, store)
	s := &Server{app: app, cfg: cfg, store: store, handlers: h}

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive", "version": version.String()})
	})
	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	api := app.Group("/api/v1")
	api.Post("/render", h.RenderPNG)
	api.Post("/render/pdf", h.RenderPDF)
	api.Post("/segments", h.Segments)
	api.Post("/detect", h.Detect)

	api.Post("/sessions", h.CreateSession)
	api.Delete("/sessions/:id", h.DropSession)
	api.Get("/sessions/:id", h.GetSession)
	api.Post("/sessions/:id/grid-lines", h.AddGridLine)
	api.Delete("/sessions/:id/grid-lines/:lineID", h.RemoveGridLine)
	api.Put("/sessions/:id/grid-lines", h.SetGridLines)
	api.Post("/sessions/:id/columns/toggle", h.ToggleColumn)
	api.Put("/sessions/:id/settings", h.UpdateSettings)
	api.Post("/sessions/:id/undo", h.Undo)
	api.Post("/sessions/:id/redo", h.Redo)
	api.Get("/sessions/:id/render", h.RenderSession)

	return s
}

// Listen blocks serving HTTP on the configured address.
func (s *Server) Listen() error {
	applog.WithComponent("server").Info("listening", slog.String("addr", s.cfg.Server.Addr))
	return s.app.Listen(s.cfg.Server.Addr)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }
