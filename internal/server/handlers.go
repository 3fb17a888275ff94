/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	_ "image/jpeg" // register decoders for upload dimension probing
	_ "image/png"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Lilscotchty/archpro/internal/compose"
	"github.com/Lilscotchty/archpro/internal/config"
	"github.com/Lilscotchty/archpro/internal/detect"
	"github.com/Lilscotchty/archpro/internal/export"
	"github.com/Lilscotchty/archpro/internal/geom"
	applog "github.com/Lilscotchty/archpro/internal/log"
	"github.com/Lilscotchty/archpro/internal/plan"
	"github.com/Lilscotchty/archpro/internal/telemetry"
)

// Handlers carries the collaborators the HTTP endpoints need.
type Handlers struct {
	cfg   config.AppConfig
	store *Store
	log   *slog.Logger
}

func NewHandlers(cfg config.AppConfig, store *Store) *Handlers {
	return &Handlers{cfg: cfg, store: store, log: applog.WithComponent("http")}
}

func (h *Handlers) renderOptions() compose.Options {
	return compose.Options{FontPath: h.cfg.Drawing.FontFile}
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func (h *Handlers) decodeDocument(c fiber.Ctx) (plan.Document, error) {
	var doc plan.Document
	if err := json.Unmarshal(c.Body(), &doc); err != nil {
		return doc, err
	}
	if doc.Settings == (plan.Settings{}) {
		doc.Settings = plan.DefaultSettings()
	}
	return doc, nil
}

// renderDocument runs the pipeline and maps the error taxonomy onto HTTP:
// a missing axis is 422 (drawing not ready), invalid settings 400.
func (h *Handlers) renderDocument(c fiber.Ctx, doc plan.Document, asPDF bool) error {
	img, err := compose.RenderPlan(doc, h.renderOptions())
	switch {
	case errors.Is(err, geom.ErrInsufficientGrid):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "need at least one vertical and one horizontal grid line",
		})
	case errors.Is(err, plan.ErrInvalidSettings):
		return badRequest(c, err.Error())
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var buf bytes.Buffer
	if asPDF {
		if err := export.EncodePDF(&buf, img, export.PDFMeta{Title: doc.Name, Author: "archpro"}); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", `attachment; filename="foundation-layout.pdf"`)
	} else {
		if err := export.EncodePNG(&buf, img); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		c.Set("Content-Type", "image/png")
		c.Set("Content-Disposition", `attachment; filename="foundation-layout.png"`)
	}
	telemetry.Event("render", map[string]any{"pdf": asPDF, "grid_lines": len(doc.GridLines)})
	return c.Send(buf.Bytes())
}

// RenderPNG renders a posted document straight to PNG.
func (h *Handlers) RenderPNG(c fiber.Ctx) error {
	doc, err := h.decodeDocument(c)
	if err != nil {
		return badRequest(c, "invalid plan document: "+err.Error())
	}
	return h.renderDocument(c, doc, false)
}

// RenderPDF renders a posted document to a PDF sheet.
func (h *Handlers) RenderPDF(c fiber.Ctx) error {
	doc, err := h.decodeDocument(c)
	if err != nil {
		return badRequest(c, "invalid plan document: "+err.Error())
	}
	return h.renderDocument(c, doc, true)
}

// Segments returns the derived segment list without rendering.
func (h *Handlers) Segments(c fiber.Ctx) error {
	doc, err := h.decodeDocument(c)
	if err != nil {
		return badRequest(c, "invalid plan document: "+err.Error())
	}
	segs, err := compose.Segments(doc)
	if errors.Is(err, geom.ErrInsufficientGrid) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"segments": segs})
}

// Detect forwards an uploaded plan image to the external detection service
// and returns pixel-space grid lines. Any service or schema failure leaves
// the caller's state untouched; the error is recoverable.
func (h *Handlers) Detect(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file required in multipart/form-data")
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open upload"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read upload"})
	}
	cfgImg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return badRequest(c, "upload is not a decodable image")
	}

	cl, err := detect.NewClient(h.cfg.Detect.BaseURL, config.DetectAPIKey(),
		time.Duration(h.cfg.Detect.TimeoutMs)*time.Millisecond)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	lines, err := cl.Detect(c.RequestCtx(), data, fh.Header.Get("Content-Type"))
	if err != nil {
		h.log.Warn("grid detection failed", slog.Any("err", err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "grid detection failed: " + err.Error()})
	}
	telemetry.Event("detect", map[string]any{"lines": len(lines)})
	return c.JSON(fiber.Map{
		"gridLines": detect.Denormalize(lines, cfgImg.Width, cfgImg.Height),
	})
}

// --- session endpoints ---

type createSessionRequest struct {
	Name     string         `json:"name"`
	Settings *plan.Settings `json:"settings"`
}

func (h *Handlers) CreateSession(c fiber.Ctx) error {
	var req createSessionRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return badRequest(c, "invalid body: "+err.Error())
		}
	}
	doc := plan.Document{Name: req.Name, Settings: plan.DefaultSettings()}
	if req.Settings != nil {
		if err := req.Settings.Validate(); err != nil {
			return badRequest(c, err.Error())
		}
		doc.Settings = *req.Settings
	}
	s := h.store.Create(doc)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": s.ID, "document": s.Document()})
}

func (h *Handlers) session(c fiber.Ctx) (*Session, error) {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no such session"})
	}
	return s, nil
}

func (h *Handlers) GetSession(c fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	return c.JSON(fiber.Map{"id": s.ID, "document": s.Document()})
}

func (h *Handlers) DropSession(c fiber.Ctx) error {
	h.store.Drop(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

type addGridLineRequest struct {
	Orientation plan.Orientation `json:"orientation"`
	Position    float64          `json:"position"`
}

func (h *Handlers) AddGridLine(c fiber.Ctx) error {
	s, errResp := h.session(c)
	if s == nil {
		return errResp
	}
	var req addGridLineRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, "invalid body: "+err.Error())
	}
	if req.Orientation != plan.Vertical && req.Orientation != plan.Horizontal {
		return badRequest(c, "orientation must be vertical or horizontal")
	}
	l := s.AddGridLine(req.Orientation, req.Position)
	return c.Status(fiber.StatusCreated).JSON(l)
}

func (h *Handlers) RemoveGridLine(c fiber.Ctx) error {
	s, errResp := h.session(c)
	if s == nil {
		return errResp
	}
	if !s.RemoveGridLine(c.Params("lineID")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no such grid line"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) SetGridLines(c fiber.Ctx) error {
	s, errResp := h.session(c)
	if s == nil {
		return errResp
	}
	var lines []plan.GridLine
	if err := json.Unmarshal(c.Body(), &lines); err != nil {
		return badRequest(c, "invalid body: "+err.Error())
	}
	for i := range lines {
		if lines[i].ID == "" {
			lines[i] = plan.NewGridLine(lines[i].Label, lines[i].Position, lines[i].Orientation)
		}
	}
	s.SetGridLines(lines)
	return c.JSON(fiber.Map{"gridLines": s.Document().GridLines})
}

func (h *Handlers) ToggleColumn(c fiber.Ctx) error {
	s, errResp := h.session(c)
	if s == nil {
		return errResp
	}
	var col plan.Column
	if err := json.Unmarshal(c.Body(), &col); err != nil {
		return badRequest(c, "invalid body: "+err.Error())
	}
	if _, _, ok := plan.SplitIntersection(col.IntersectionID); !ok {
		return badRequest(c, "intersection must be of the form <vLabel>-<hLabel>")
	}
	selected := s.ToggleColumn(col)
	return c.JSON(fiber.Map{"selected": selected})
}

// UpdateSettings rejects the update wholesale on any invalid field; the
// session keeps its previous settings.
func (h *Handlers) UpdateSettings(c fiber.Ctx) error {
	s, errResp := h.session(c)
	if s == nil {
		return errResp
	}
	var next plan.Settings
	if err := json.Unmarshal(c.Body(), &next); err != nil {
		return badRequest(c, "invalid body: "+err.Error())
	}
	if err := s.UpdateSettings(next); err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(next)
}

func (h *Handlers) Undo(c fiber.Ctx) error {
	s, errResp := h.session(c)
	if s == nil {
		return errResp
	}
	if !s.Undo() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "nothing to undo"})
	}
	return c.JSON(fiber.Map{"document": s.Document()})
}

func (h *Handlers) Redo(c fiber.Ctx) error {
	s, errResp := h.session(c)
	if s == nil {
		return errResp
	}
	if !s.Redo() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "nothing to redo"})
	}
	return c.JSON(fiber.Map{"document": s.Document()})
}

func (h *Handlers) RenderSession(c fiber.Ctx) error {
	s, errResp := h.session(c)
	if s == nil {
		return errResp
	}
	asPDF := c.Query("format") == "pdf"
	return h.renderDocument(c, s.Document(), asPDF)
}
