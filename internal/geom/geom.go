/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package geom is the coordinate-mapping core: it turns pixel-space grid
// lines into a real-millimeter scale on the output sheet and derives the
// wall/footing runs connecting selected column intersections.
package geom

import "math"

// Pt is a 2D point in canvas pixels.
type Pt struct{ X, Y float64 }

// Segment is one straight run between two adjacent selected columns on a
// common grid line, in canvas-pixel space. Segments are derived per render
// and never persisted.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Length returns the segment length in canvas pixels.
func (s Segment) Length() float64 {
	return math.Hypot(s.X2-s.X1, s.Y2-s.Y1)
}

// Normal returns the unit normal (-dy, dx)/len. ok is false for a
// zero-length segment; callers must skip those instead of dividing by zero.
func (s Segment) Normal() (Pt, bool) {
	dx, dy := s.X2-s.X1, s.Y2-s.Y1
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Pt{}, false
	}
	return Pt{X: -dy / l, Y: dx / l}, true
}

// Offset returns the two endpoints of the segment shifted by d along its
// normal. Used for every parallel band edge (excavation, blinding, footing).
func (s Segment) Offset(d float64) (Pt, Pt, bool) {
	n, ok := s.Normal()
	if !ok {
		return Pt{}, Pt{}, false
	}
	return Pt{s.X1 + n.X*d, s.Y1 + n.Y*d}, Pt{s.X2 + n.X*d, s.Y2 + n.Y*d}, true
}
