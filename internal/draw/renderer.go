/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package draw

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/font"

	"github.com/Lilscotchty/archpro/internal/geom"
	"github.com/Lilscotchty/archpro/internal/plan"
)

// Real-mm constants of the drawing conventions.
const (
	gridExtensionMM  = 2000 // grid lines run this far past the grid extent
	columnPadFloorMM = 1200 // minimum column padding rectangle
	columnPadPlusMM  = 200  // padding beyond footing + working space
	columnMinMM      = 300  // minimum column section
	explicitDimMinMM = 50   // explicit column dims below this are ignored
)

// Sheet-mm constants for annotation, independent of the drawing scale.
const (
	borderMarginPMM  = 5
	bubbleRadiusPMM  = 5
	dimTickPMM       = 1.5
	dimSpanTierPMM   = 8
	dimTotalTierPMM  = 16
	titleBlockWPMM   = 120
	titleBlockHPMM   = 45
	notesBlockHPMM   = 30
	titleTextPadPMM  = 3
	titleLineStepPMM = 6
)

// Options configures a render pass. Zero values fall back to DefaultStyle,
// the basicfont provider and the current date.
type Options struct {
	Style *Style
	Fonts FontProvider
	Date  time.Time
}

// Renderer paints the layer stack for one document. Later layers occlude
// earlier ones at shared boundaries, so the order of the draw* calls in
// Render is load-bearing.
type Renderer struct {
	cv   *Canvas
	m    *geom.Mapper
	st   Style
	doc  plan.Document
	segs []geom.Segment
	cols []geom.ColumnPoint
	fp   FontProvider
	date time.Time

	// canvas-space bounding box of the grid
	gx0, gx1, gy0, gy1 float64
	ext                float64 // grid extension in canvas px
}

// Render paints all layers and returns the finished raster.
func Render(doc plan.Document, m *geom.Mapper, segs []geom.Segment, cols []geom.ColumnPoint, opt Options) *image.RGBA {
	st := DefaultStyle()
	if opt.Style != nil {
		st = *opt.Style
	}
	fp := opt.Fonts
	if fp == nil {
		fp = BasicProvider{}
	}
	date := opt.Date
	if date.IsZero() {
		date = time.Now()
	}
	r := &Renderer{
		cv:   NewCanvas(geom.CanvasWidth, geom.CanvasHeight, st.Paper),
		m:    m,
		st:   st,
		doc:  doc,
		segs: segs,
		cols: cols,
		fp:   fp,
		date: date,
	}
	r.gridBounds()

	r.drawBorder()
	r.drawExcavation()
	r.drawBlinding()
	r.drawFootings()
	r.drawWalls()
	r.drawColumns()
	r.drawGridLines()
	r.drawBubbles()
	r.drawDimensions()
	r.drawNotes()
	r.drawTitleBlock()
	return r.cv.Img
}

func (r *Renderer) gridBounds() {
	verts := r.doc.Verticals()
	horiz := r.doc.Horizontals()
	r.gx0 = r.m.MapX(verts[0].Position)
	r.gx1 = r.m.MapX(verts[len(verts)-1].Position)
	r.gy0 = r.m.MapY(horiz[0].Position)
	r.gy1 = r.m.MapY(horiz[len(horiz)-1].Position)
	r.ext = r.m.MM(gridExtensionMM)
}

func (r *Renderer) drawBorder() {
	mg := r.m.PaperMM(borderMarginPMM)
	w := float64(geom.CanvasWidth)
	h := float64(geom.CanvasHeight)
	r.cv.StrokeRect(mg, mg, w-mg, h-mg, 2, r.st.Border)
}

// drawBandLines strokes the two parallel edges offset ±half from every
// segment's centerline. Degenerate segments are skipped by Offset.
func (r *Renderer) drawBandLines(half, width float64, col color.RGBA, dash []float64) {
	for _, s := range r.segs {
		for _, d := range [2]float64{half, -half} {
			a, b, ok := s.Offset(d)
			if !ok {
				continue
			}
			r.cv.Line(a, b, width, col, dash)
		}
	}
}

func (r *Renderer) drawExcavation() {
	half := r.m.MM(float64(r.doc.Settings.FootingWidth+r.doc.Settings.WorkingSpace)) / 2
	r.drawBandLines(half, r.st.ExcavationWidth, r.st.ExcavationColor, r.st.ExcavationDash)
}

func (r *Renderer) drawBlinding() {
	half := r.m.MM(float64(r.doc.Settings.FootingWidth+2*r.doc.Settings.BlindingOffset)) / 2
	r.drawBandLines(half, r.st.BlindingWidth, r.st.BlindingColor, r.st.BlindingDash)
}

// drawFootings fills the footing band white so it occludes the excavation
// dashes underneath, then outlines it solid.
func (r *Renderer) drawFootings() {
	half := r.m.MM(float64(r.doc.Settings.FootingWidth)) / 2
	for _, s := range r.segs {
		a1, b1, ok1 := s.Offset(half)
		a2, b2, ok2 := s.Offset(-half)
		if !ok1 || !ok2 {
			continue
		}
		r.cv.FillQuad(a1, b1, b2, a2, r.st.FootingFill)
		r.cv.Line(a1, b1, r.st.FootingWidth, r.st.FootingOutline, nil)
		r.cv.Line(a2, b2, r.st.FootingWidth, r.st.FootingOutline, nil)
	}
}

// drawWalls fills the wall band; the fill defines the shape, no outline.
func (r *Renderer) drawWalls() {
	half := r.m.MM(float64(r.doc.Settings.WallWidth)) / 2
	for _, s := range r.segs {
		a1, b1, ok1 := s.Offset(half)
		a2, b2, ok2 := s.Offset(-half)
		if !ok1 || !ok2 {
			continue
		}
		r.cv.FillQuad(a1, b1, b2, a2, r.st.WallFill)
	}
}

func (r *Renderer) drawColumns() {
	s := r.doc.Settings
	padMM := math.Max(columnPadFloorMM, float64(s.FootingWidth+s.WorkingSpace+columnPadPlusMM))
	padHalf := r.m.MM(padMM) / 2
	for _, cp := range r.cols {
		x, y := cp.At.X, cp.At.Y
		r.cv.FillRect(x-padHalf, y-padHalf, x+padHalf, y+padHalf, r.st.ColumnPad)
		r.cv.StrokeRect(x-padHalf, y-padHalf, x+padHalf, y+padHalf, 1, r.st.FootingOutline)

		w, h := columnSection(cp.Column, s)
		hw, hh := r.m.MM(w)/2, r.m.MM(h)/2
		r.cv.FillRect(x-hw, y-hh, x+hw, y+hh, r.st.ColumnFill)
	}
}

// columnSection resolves the drawn column size in mm: explicit dimensions
// when given and above the threshold, else the default minimum.
func columnSection(c plan.Column, s plan.Settings) (w, h float64) {
	d := math.Max(columnMinMM, float64(s.WallWidth))
	w, h = d, d
	if c.Width > explicitDimMinMM {
		w = c.Width
	}
	if c.Type == plan.Square {
		return w, w
	}
	if c.Height > explicitDimMinMM {
		h = c.Height
	}
	return w, h
}

func (r *Renderer) drawGridLines() {
	for _, l := range r.doc.Verticals() {
		x := r.m.MapX(l.Position)
		r.cv.Line(geom.Pt{X: x, Y: r.gy0 - r.ext}, geom.Pt{X: x, Y: r.gy1 + r.ext},
			r.st.GridWidth, r.st.GridColor, r.st.GridDash)
	}
	for _, l := range r.doc.Horizontals() {
		y := r.m.MapY(l.Position)
		r.cv.Line(geom.Pt{X: r.gx0 - r.ext, Y: y}, geom.Pt{X: r.gx1 + r.ext, Y: y},
			r.st.GridWidth, r.st.GridColor, r.st.GridDash)
	}
}

func (r *Renderer) drawBubbles() {
	rad := r.m.PaperMM(bubbleRadiusPMM)
	face := r.fp.Face(10)
	for _, l := range r.doc.Verticals() {
		c := geom.Pt{X: r.m.MapX(l.Position), Y: r.gy0 - r.ext}
		r.cv.Circle(c, rad, r.st.BubbleFill, r.st.BubbleStroke, 1.5)
		r.textMiddle(c.X, c.Y, l.Label, face)
	}
	for _, l := range r.doc.Horizontals() {
		c := geom.Pt{X: r.gx0 - r.ext, Y: r.m.MapY(l.Position)}
		r.cv.Circle(c, rad, r.st.BubbleFill, r.st.BubbleStroke, 1.5)
		r.textMiddle(c.X, c.Y, l.Label, face)
	}
}

// textMiddle centers s both horizontally and vertically on (x, y).
func (r *Renderer) textMiddle(x, y float64, s string, face font.Face) {
	met := face.Metrics()
	baseline := y + float64((met.Ascent-met.Descent).Round())/2
	r.cv.TextCentered(x, baseline, s, face, r.st.TextColor)
}

// drawDimensions paints two tiers per axis: per-span spacing next to the
// drawing and the overall first-to-last span outside it. Under the uniform
// spacing approximation every span is labeled with Settings.GridSpacing.
func (r *Renderer) drawDimensions() {
	verts := r.doc.Verticals()
	horiz := r.doc.Horizontals()
	face := r.fp.Face(8)
	spacing := strconv.Itoa(r.doc.Settings.GridSpacing)
	extX, extY := r.m.GridExtent()

	if len(verts) >= 2 {
		ySpan := r.gy1 + r.ext + r.m.PaperMM(dimSpanTierPMM)
		for i := 0; i+1 < len(verts); i++ {
			x0 := r.m.MapX(verts[i].Position)
			x1 := r.m.MapX(verts[i+1].Position)
			r.hDim(x0, x1, ySpan, spacing, face)
		}
		yAll := r.gy1 + r.ext + r.m.PaperMM(dimTotalTierPMM)
		r.hDim(r.gx0, r.gx1, yAll, strconv.Itoa(int(math.Round(extX))), face)
	}
	if len(horiz) >= 2 {
		xSpan := r.gx0 - r.ext - r.m.PaperMM(dimSpanTierPMM)
		for i := 0; i+1 < len(horiz); i++ {
			y0 := r.m.MapY(horiz[i].Position)
			y1 := r.m.MapY(horiz[i+1].Position)
			r.vDim(y0, y1, xSpan, spacing, face)
		}
		xAll := r.gx0 - r.ext - r.m.PaperMM(dimTotalTierPMM)
		r.vDim(r.gy0, r.gy1, xAll, strconv.Itoa(int(math.Round(extY))), face)
	}
}

// hDim draws one horizontal dimension line with perpendicular end ticks and
// centered text above the line.
func (r *Renderer) hDim(x0, x1, y float64, label string, face font.Face) {
	tick := r.m.PaperMM(dimTickPMM)
	r.cv.Line(geom.Pt{X: x0, Y: y}, geom.Pt{X: x1, Y: y}, r.st.DimWidth, r.st.DimColor, nil)
	for _, x := range [2]float64{x0, x1} {
		r.cv.Line(geom.Pt{X: x, Y: y - tick}, geom.Pt{X: x, Y: y + tick}, r.st.DimWidth, r.st.DimColor, nil)
	}
	r.cv.TextCentered((x0+x1)/2, y-3, label, face, r.st.TextColor)
}

// vDim is the vertical counterpart; text sits left of the line.
func (r *Renderer) vDim(y0, y1, x float64, label string, face font.Face) {
	tick := r.m.PaperMM(dimTickPMM)
	r.cv.Line(geom.Pt{X: x, Y: y0}, geom.Pt{X: x, Y: y1}, r.st.DimWidth, r.st.DimColor, nil)
	for _, y := range [2]float64{y0, y1} {
		r.cv.Line(geom.Pt{X: x - tick, Y: y}, geom.Pt{X: x + tick, Y: y}, r.st.DimWidth, r.st.DimColor, nil)
	}
	w := TextWidth(face, label)
	r.cv.Text(x-w-4, (y0+y1)/2, label, face, r.st.TextColor)
}

func (r *Renderer) drawNotes() {
	s := r.doc.Settings
	lines := []string{
		"NOTES:",
		"1. ALL DIMENSIONS IN MILLIMETRES.",
		fmt.Sprintf("2. STRIP FOOTING %d WIDE IN %d TRENCH, WALL %d THICK.", s.FootingWidth, s.TrenchWidth, s.WallWidth),
		fmt.Sprintf("3. EXCAVATE %d BEYOND FOOTING EACH SIDE; %d BLINDING OFFSET.", s.WorkingSpace/2, s.BlindingOffset),
	}
	mg := r.m.PaperMM(borderMarginPMM)
	w := r.m.PaperMM(titleBlockWPMM)
	h := r.m.PaperMM(notesBlockHPMM)
	x1 := float64(geom.CanvasWidth) - mg
	y1 := float64(geom.CanvasHeight) - mg - r.m.PaperMM(titleBlockHPMM)
	x0, y0 := x1-w, y1-h
	r.cv.FillRect(x0, y0, x1, y1, r.st.Paper)
	r.cv.StrokeRect(x0, y0, x1, y1, 1.5, r.st.Border)

	face := r.fp.Face(7)
	pad := r.m.PaperMM(titleTextPadPMM)
	step := r.m.PaperMM(titleLineStepPMM)
	y := y0 + pad + 10
	for _, ln := range lines {
		r.cv.Text(x0+pad, y, ln, face, r.st.TextColor)
		y += step
	}
}

func (r *Renderer) drawTitleBlock() {
	mg := r.m.PaperMM(borderMarginPMM)
	w := r.m.PaperMM(titleBlockWPMM)
	h := r.m.PaperMM(titleBlockHPMM)
	x1 := float64(geom.CanvasWidth) - mg
	y1 := float64(geom.CanvasHeight) - mg
	x0, y0 := x1-w, y1-h
	r.cv.FillRect(x0, y0, x1, y1, r.st.Paper)
	r.cv.StrokeRect(x0, y0, x1, y1, 2, r.st.Border)

	headFace := r.fp.Face(12)
	face := r.fp.Face(8)
	pad := r.m.PaperMM(titleTextPadPMM)
	step := r.m.PaperMM(titleLineStepPMM)

	project := strings.TrimSpace(r.doc.Name)
	if project == "" {
		project = "UNTITLED PROJECT"
	}
	y := y0 + pad + 14
	r.cv.Text(x0+pad, y, "FOUNDATION LAYOUT", headFace, r.st.TextColor)
	y += step + 4
	r.cv.Line(geom.Pt{X: x0, Y: y - step + 4}, geom.Pt{X: x1, Y: y - step + 4}, 1, r.st.Border, nil)
	for _, ln := range []string{
		"PROJECT: " + strings.ToUpper(project),
		fmt.Sprintf("SCALE 1:%d (A3)", r.m.Scale()),
		"DATE: " + r.date.Format("02 Jan 2006"),
	} {
		r.cv.Text(x0+pad, y, ln, face, r.st.TextColor)
		y += step
	}
}
