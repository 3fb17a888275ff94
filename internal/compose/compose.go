/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package compose sequences the render pipeline: mapper, connection
// resolver, layer renderer. RenderPlan is the single entry point the CLI
// and the HTTP handlers call.
package compose

import (
	"image"
	"log/slog"
	"time"

	"github.com/Lilscotchty/archpro/internal/draw"
	"github.com/Lilscotchty/archpro/internal/geom"
	applog "github.com/Lilscotchty/archpro/internal/log"
	"github.com/Lilscotchty/archpro/internal/plan"
)

// Options for one render pass.
type Options struct {
	// FontPath is an optional TTF/OTF for annotation text; empty uses the
	// built-in bitmap face.
	FontPath string
	// Date stamps the title block; zero means now.
	Date time.Time
	// Style overrides the default drawing conventions.
	Style *draw.Style
}

// RenderPlan builds the coordinate transform, derives the wall/footing
// segments and paints the full drawing. It is a pure function of the
// document snapshot: identical inputs yield identical geometry.
//
// Fewer than one grid line on either axis returns ErrInsufficientGrid and
// no image. A document that yields zero segments still renders (grid,
// bubbles, dimensions and title block only).
func RenderPlan(doc plan.Document, opt Options) (*image.RGBA, error) {
	l := applog.WithComponent("compose")
	start := time.Now()

	if err := doc.Settings.Validate(); err != nil {
		return nil, err
	}
	m, err := geom.NewMapper(doc)
	if err != nil {
		return nil, err
	}
	segs := geom.Connections(doc, m)
	cols := geom.ColumnPoints(doc, m)

	dopt := draw.Options{Style: opt.Style, Date: opt.Date}
	if opt.FontPath != "" {
		fp, err := draw.NewOTProvider(opt.FontPath, geom.RenderDPI)
		if err != nil {
			l.Warn("font load failed, using builtin face", slog.Any("err", err))
		} else {
			dopt.Fonts = fp
		}
	}
	img := draw.Render(doc, m, segs, cols, dopt)

	l.Info("plan rendered",
		slog.Int("grid_lines", len(doc.GridLines)),
		slog.Int("columns", len(doc.Columns)),
		slog.Int("segments", len(segs)),
		slog.Duration("took", time.Since(start)))
	return img, nil
}

// Segments exposes the derived segment list without rendering; used by
// callers that need the geometry alone (and by tests).
func Segments(doc plan.Document) ([]geom.Segment, error) {
	m, err := geom.NewMapper(doc)
	if err != nil {
		return nil, err
	}
	return geom.Connections(doc, m), nil
}
