/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package geom

import (
	"errors"
	"math"

	"github.com/Lilscotchty/archpro/internal/plan"
)

// Output sheet constants: ISO A3 landscape at a fixed print resolution.
const (
	PaperWidthMM  = 420.0
	PaperHeightMM = 297.0
	RenderDPI     = 150.0

	// pixels per millimeter of paper
	pxPerPaperMM = RenderDPI / 25.4
)

// CanvasWidth and CanvasHeight are the fixed output raster dimensions.
var (
	CanvasWidth  = int(math.Floor(PaperWidthMM * pxPerPaperMM))
	CanvasHeight = int(math.Floor(PaperHeightMM * pxPerPaperMM))
)

const (
	// fallbackExtentMM is assumed when an axis carries a single grid line,
	// so downstream arithmetic never divides by zero.
	fallbackExtentMM = 1000.0
	// fallbackPxPerMM is the nominal plan-pixel density used when an axis
	// has fewer than two lines and no ratio can be inferred.
	fallbackPxPerMM = 0.1
)

// ErrInsufficientGrid is returned when fewer than one vertical or one
// horizontal grid line exists. The render attempt aborts with no output;
// project state is untouched.
var ErrInsufficientGrid = errors.New("geom: need at least one vertical and one horizontal grid line")

// Mapper converts plan-pixel coordinates into positions on the output
// canvas, centered and scaled to the configured paper scale.
//
// The real-world spacing between every pair of adjacent grid lines is
// treated as identical to Settings.GridSpacing; only the first and last
// line on each axis calibrate the pixel ratio. This uniform-spacing
// approximation is deliberate, not a per-segment calibration.
type Mapper struct {
	scale float64 // paper-scale denominator (1:scale)

	originX, originY float64 // pixel position of the first line per axis
	ppmmX, ppmmY     float64 // plan pixels per real mm per axis
	extentX, extentY float64 // real-mm span of the grid per axis
	offsetX, offsetY float64 // canvas centering offset
}

// NewMapper derives the transform from the document's grid and settings.
// Grid lines may be passed in any order.
func NewMapper(doc plan.Document) (*Mapper, error) {
	verts := doc.Verticals()
	horiz := doc.Horizontals()
	if len(verts) < 1 || len(horiz) < 1 {
		return nil, ErrInsufficientGrid
	}
	spacing := float64(doc.Settings.GridSpacing)
	m := &Mapper{scale: float64(doc.Settings.Scale)}

	m.originX, m.ppmmX, m.extentX = axisCalibration(verts, spacing)
	m.originY, m.ppmmY, m.extentY = axisCalibration(horiz, spacing)

	m.offsetX = (float64(CanvasWidth) - m.MM(m.extentX)) / 2
	m.offsetY = (float64(CanvasHeight) - m.MM(m.extentY)) / 2
	return m, nil
}

// axisCalibration returns the first line's pixel position, the inferred
// pixels-per-real-mm ratio and the real-mm extent for one axis.
func axisCalibration(sorted []plan.GridLine, spacing float64) (origin, ppmm, extent float64) {
	origin = sorted[0].Position
	if len(sorted) >= 2 && spacing > 0 {
		span := sorted[len(sorted)-1].Position - sorted[0].Position
		realSpan := spacing * float64(len(sorted)-1)
		if span > 0 && realSpan > 0 {
			return origin, span / realSpan, realSpan
		}
	}
	return origin, fallbackPxPerMM, fallbackExtentMM
}

// MM converts real-world millimeters to canvas pixels at the paper scale.
func (m *Mapper) MM(mm float64) float64 { return mm / m.scale * pxPerPaperMM }

// PaperMM converts sheet millimeters (annotation sizes, title block) to
// canvas pixels, independent of the drawing scale.
func (m *Mapper) PaperMM(mm float64) float64 { return mm * pxPerPaperMM }

// MapX maps a plan-pixel X coordinate onto the canvas.
func (m *Mapper) MapX(px float64) float64 {
	return m.MM((px-m.originX)/m.ppmmX) + m.offsetX
}

// MapY maps a plan-pixel Y coordinate onto the canvas.
func (m *Mapper) MapY(py float64) float64 {
	return m.MM((py-m.originY)/m.ppmmY) + m.offsetY
}

// GridExtent reports the real-mm span of the grid per axis.
func (m *Mapper) GridExtent() (xMM, yMM float64) { return m.extentX, m.extentY }

// Scale returns the paper-scale denominator.
func (m *Mapper) Scale() int { return int(m.scale) }

// PixelsPerMM reports the inferred plan-pixel density per axis; exposed for
// diagnostics and tests.
func (m *Mapper) PixelsPerMM() (x, y float64) { return m.ppmmX, m.ppmmY }
