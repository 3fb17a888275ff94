/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package draw paints the layered foundation drawing onto a raster surface.
// Primitives operate directly on an RGBA image; no GPU or vector backend.
package draw

import (
	"image"
	"image/color"
	stdraw "image/draw"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/Lilscotchty/archpro/internal/geom"
)

// Canvas wraps an RGBA image with the stroke/fill primitives the renderer
// needs. All coordinates are float canvas pixels; rasterization rounds.
type Canvas struct {
	Img *image.RGBA
}

// NewCanvas allocates a canvas of the given pixel size filled with col.
func NewCanvas(w, h int, col color.RGBA) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	stdraw.Draw(img, img.Bounds(), &image.Uniform{C: col}, image.Point{}, stdraw.Src)
	return &Canvas{Img: img}
}

func (c *Canvas) set(x, y int, col color.RGBA) {
	if (image.Point{X: x, Y: y}).In(c.Img.Bounds()) {
		c.Img.SetRGBA(x, y, col)
	}
}

// stamp fills a square of side width centered at (x,y); this is the pen tip
// used by line strokes.
func (c *Canvas) stamp(x, y, width float64, col color.RGBA) {
	r := width / 2
	x0, x1 := int(math.Floor(x-r)), int(math.Ceil(x+r))
	y0, y1 := int(math.Floor(y-r)), int(math.Ceil(y+r))
	for yy := y0; yy <= y1; yy++ {
		for xx := x0; xx <= x1; xx++ {
			c.set(xx, yy, col)
		}
	}
}

// Line strokes a straight line of the given width. A nil or empty dash
// pattern draws solid; otherwise the pattern alternates on/off lengths in
// canvas pixels, starting on.
func (c *Canvas) Line(p1, p2 geom.Pt, width float64, col color.RGBA, dash []float64) {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		c.stamp(p1.X, p1.Y, width, col)
		return
	}
	ux, uy := dx/length, dy/length

	const step = 0.5
	if len(dash) == 0 {
		for t := 0.0; t <= length; t += step {
			c.stamp(p1.X+ux*t, p1.Y+uy*t, width, col)
		}
		return
	}
	period := 0.0
	for _, d := range dash {
		period += d
	}
	if period <= 0 {
		return
	}
	for t := 0.0; t <= length; t += step {
		phase := math.Mod(t, period)
		on := false
		acc := 0.0
		for i, d := range dash {
			acc += d
			if phase < acc {
				on = i%2 == 0
				break
			}
		}
		if on {
			c.stamp(p1.X+ux*t, p1.Y+uy*t, width, col)
		}
	}
}

// FillRect fills the axis-aligned rectangle spanned by the two corners.
func (c *Canvas) FillRect(x0, y0, x1, y1 float64, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := int(math.Floor(y0)); y <= int(math.Ceil(y1)); y++ {
		for x := int(math.Floor(x0)); x <= int(math.Ceil(x1)); x++ {
			c.set(x, y, col)
		}
	}
}

// StrokeRect outlines the axis-aligned rectangle with the given pen width.
func (c *Canvas) StrokeRect(x0, y0, x1, y1, width float64, col color.RGBA) {
	c.Line(geom.Pt{X: x0, Y: y0}, geom.Pt{X: x1, Y: y0}, width, col, nil)
	c.Line(geom.Pt{X: x1, Y: y0}, geom.Pt{X: x1, Y: y1}, width, col, nil)
	c.Line(geom.Pt{X: x1, Y: y1}, geom.Pt{X: x0, Y: y1}, width, col, nil)
	c.Line(geom.Pt{X: x0, Y: y1}, geom.Pt{X: x0, Y: y0}, width, col, nil)
}

// FillQuad scanline-fills the quadrilateral p0..p3 (given in ring order).
// Band rectangles derived from segment normals land here; they are not
// axis-aligned in the general case.
func (c *Canvas) FillQuad(p0, p1, p2, p3 geom.Pt, col color.RGBA) {
	pts := [4]geom.Pt{p0, p1, p2, p3}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		fy := float64(y) + 0.5
		var xs []float64
		for i := 0; i < 4; i++ {
			a, b := pts[i], pts[(i+1)%4]
			if (a.Y <= fy && b.Y > fy) || (b.Y <= fy && a.Y > fy) {
				t := (fy - a.Y) / (b.Y - a.Y)
				xs = append(xs, a.X+t*(b.X-a.X))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Floor(xs[i])); x <= int(math.Ceil(xs[i+1])); x++ {
				c.set(x, y, col)
			}
		}
	}
}

// Circle draws a disc with optional fill and stroke. A zero-alpha fill
// skips the interior.
func (c *Canvas) Circle(center geom.Pt, r float64, fill, stroke color.RGBA, strokeWidth float64) {
	if fill.A > 0 {
		x0, x1 := int(math.Floor(center.X-r)), int(math.Ceil(center.X+r))
		y0, y1 := int(math.Floor(center.Y-r)), int(math.Ceil(center.Y+r))
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if math.Hypot(float64(x)-center.X, float64(y)-center.Y) <= r {
					c.set(x, y, fill)
				}
			}
		}
	}
	if stroke.A > 0 {
		// walk the circumference with the same pen used for lines
		steps := int(math.Max(24, 2*math.Pi*r))
		for i := 0; i <= steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			c.stamp(center.X+r*math.Cos(a), center.Y+r*math.Sin(a), strokeWidth, stroke)
		}
	}
}

// Text draws s with its baseline starting at (x, y).
func (c *Canvas) Text(x, y float64, s string, face font.Face, col color.RGBA) {
	d := &font.Drawer{
		Dst:  c.Img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(y))),
	}
	d.DrawString(s)
}

// TextCentered draws s centered horizontally on x with baseline y.
func (c *Canvas) TextCentered(x, y float64, s string, face font.Face, col color.RGBA) {
	w := font.MeasureString(face, s)
	c.Text(x-float64(w.Round())/2, y, s, face, col)
}

// TextWidth measures s in canvas pixels.
func TextWidth(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s).Round())
}
