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
	"sort"

	"github.com/Lilscotchty/archpro/internal/plan"
)

// Connections derives the combined segment list: one pass along vertical
// lines (segments varying in Y) and one along horizontal lines (varying in
// X). A segment exists only between two columns selected on the same grid
// line that are adjacent in sorted order along the orthogonal axis; gaps
// are never spanned implicitly.
//
// Columns whose intersection id references a label with no matching grid
// line are skipped silently (the line may have been deleted after
// selection). Zero-length segments are dropped.
func Connections(doc plan.Document, m *Mapper) []Segment {
	var segs []Segment
	segs = appendAxis(segs, doc, m, plan.Vertical)
	segs = appendAxis(segs, doc, m, plan.Horizontal)
	return segs
}

// columnStop is one selected column resolved onto a grid line, keyed by its
// position along the orthogonal axis.
type columnStop struct {
	ortho float64 // orthogonal plan-pixel coordinate
}

func appendAxis(segs []Segment, doc plan.Document, m *Mapper, along plan.Orientation) []Segment {
	orthoOrient := plan.Horizontal
	if along == plan.Horizontal {
		orthoOrient = plan.Vertical
	}
	for _, line := range doc.GridLines {
		if line.Orientation != along {
			continue
		}
		stops := collectStops(doc, line, orthoOrient, along)
		if len(stops) < 2 {
			continue
		}
		sort.Slice(stops, func(i, j int) bool { return stops[i].ortho < stops[j].ortho })
		for i := 0; i+1 < len(stops); i++ {
			var s Segment
			if along == plan.Vertical {
				x := m.MapX(line.Position)
				s = Segment{X1: x, Y1: m.MapY(stops[i].ortho), X2: x, Y2: m.MapY(stops[i+1].ortho)}
			} else {
				y := m.MapY(line.Position)
				s = Segment{X1: m.MapX(stops[i].ortho), Y1: y, X2: m.MapX(stops[i+1].ortho), Y2: y}
			}
			if s.Length() == 0 {
				continue
			}
			segs = append(segs, s)
		}
	}
	return segs
}

// collectStops gathers the selected columns sitting on the given grid line
// and resolves each one's coordinate on the orthogonal axis.
func collectStops(doc plan.Document, line plan.GridLine, orthoOrient, along plan.Orientation) []columnStop {
	var stops []columnStop
	for _, c := range doc.Columns {
		v, h, ok := plan.SplitIntersection(c.IntersectionID)
		if !ok {
			continue
		}
		own, other := v, h
		if along == plan.Horizontal {
			own, other = h, v
		}
		if own != line.Label {
			continue
		}
		ortho, found := plan.LineByLabel(doc.GridLines, orthoOrient, other)
		if !found {
			continue // dangling reference, excluded from geometry
		}
		stops = append(stops, columnStop{ortho: ortho.Position})
	}
	return stops
}

// ColumnPoints resolves every selected column to its canvas-space
// intersection point, pairing it with the original column for sizing.
// Dangling references are skipped, mirroring Connections.
func ColumnPoints(doc plan.Document, m *Mapper) []ColumnPoint {
	var pts []ColumnPoint
	for _, c := range doc.Columns {
		v, h, ok := plan.SplitIntersection(c.IntersectionID)
		if !ok {
			continue
		}
		vl, okV := plan.LineByLabel(doc.GridLines, plan.Vertical, v)
		hl, okH := plan.LineByLabel(doc.GridLines, plan.Horizontal, h)
		if !okV || !okH {
			continue
		}
		pts = append(pts, ColumnPoint{
			Column: c,
			At:     Pt{X: m.MapX(vl.Position), Y: m.MapY(hl.Position)},
		})
	}
	return pts
}

// ColumnPoint is a selected column located on the canvas.
type ColumnPoint struct {
	Column plan.Column
	At     Pt
}
