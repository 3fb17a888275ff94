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
	"testing"

	"github.com/Lilscotchty/archpro/internal/plan"
)

func col(id string) plan.Column {
	return plan.Column{IntersectionID: id, Width: 300, Height: 300, Type: plan.Square}
}

func mapperFor(t *testing.T, doc plan.Document) *Mapper {
	t.Helper()
	m, err := NewMapper(doc)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	return m
}

func TestConnectionsClosedRectangle(t *testing.T) {
	doc := testDoc([]plan.GridLine{
		vline("A", 100), vline("B", 500),
		hline("1", 100), hline("2", 500),
	}, []plan.Column{col("A-1"), col("A-2"), col("B-1"), col("B-2")})
	m := mapperFor(t, doc)

	segs := Connections(doc, m)
	if len(segs) != 4 {
		t.Fatalf("rectangle: got %d segments, want 4", len(segs))
	}
	var vertical, horizontal int
	for _, s := range segs {
		switch {
		case s.X1 == s.X2:
			vertical++
		case s.Y1 == s.Y2:
			horizontal++
		default:
			t.Fatalf("segment %+v is neither axis-aligned", s)
		}
	}
	if vertical != 2 || horizontal != 2 {
		t.Fatalf("got %d vertical / %d horizontal, want 2 / 2", vertical, horizontal)
	}
}

func TestConnectionsAdjacentOnly(t *testing.T) {
	// four columns down one vertical line produce exactly three segments
	doc := testDoc([]plan.GridLine{
		vline("A", 100), vline("B", 900),
		hline("1", 100), hline("2", 300), hline("3", 500), hline("4", 700),
	}, []plan.Column{col("A-1"), col("A-2"), col("A-3"), col("A-4")})
	m := mapperFor(t, doc)

	segs := Connections(doc, m)
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	// sorted along Y: each segment spans adjacent stops, never further
	for _, s := range segs {
		if s.X1 != s.X2 {
			t.Fatalf("expected vertical segment, got %+v", s)
		}
	}
}

func TestConnectionsSingleColumnNoSegment(t *testing.T) {
	doc := testDoc([]plan.GridLine{
		vline("A", 100), vline("B", 500),
		hline("1", 100), hline("2", 500),
	}, []plan.Column{col("A-1")})
	m := mapperFor(t, doc)
	if segs := Connections(doc, m); len(segs) != 0 {
		t.Fatalf("single column produced %d segments, want 0", len(segs))
	}
}

func TestConnectionsGapNotSpanned(t *testing.T) {
	// columns on lines 1 and 3 only: the pass still joins the two stops it
	// has, so the middle line's absence from the selection does not matter —
	// but a column on a different vertical never joins.
	doc := testDoc([]plan.GridLine{
		vline("A", 100), vline("B", 500),
		hline("1", 100), hline("2", 300), hline("3", 500),
	}, []plan.Column{col("A-1"), col("B-3")})
	m := mapperFor(t, doc)
	if segs := Connections(doc, m); len(segs) != 0 {
		t.Fatalf("columns on different lines joined: %d segments", len(segs))
	}
}

func TestConnectionsDanglingReferenceSkipped(t *testing.T) {
	doc := testDoc([]plan.GridLine{
		vline("A", 100), vline("B", 500),
		hline("1", 100), hline("2", 500),
	}, []plan.Column{col("A-1"), col("A-9"), col("A-2")})
	m := mapperFor(t, doc)

	segs := Connections(doc, m)
	if len(segs) != 1 {
		t.Fatalf("dangling reference: got %d segments, want 1", len(segs))
	}
}

func TestConnectionsZeroLengthDropped(t *testing.T) {
	// two horizontal lines at the same position: the stops coincide
	doc := testDoc([]plan.GridLine{
		vline("A", 100), vline("B", 500),
		hline("1", 300), hline("2", 300),
	}, []plan.Column{col("A-1"), col("A-2")})
	m := mapperFor(t, doc)
	if segs := Connections(doc, m); len(segs) != 0 {
		t.Fatalf("zero-length segment kept: %d segments", len(segs))
	}
}

func TestColumnPoints(t *testing.T) {
	doc := testDoc([]plan.GridLine{
		vline("A", 100), vline("B", 500),
		hline("1", 100), hline("2", 500),
	}, []plan.Column{col("B-2"), col("A-9")})
	m := mapperFor(t, doc)

	pts := ColumnPoints(doc, m)
	if len(pts) != 1 {
		t.Fatalf("got %d points, want 1 (dangling skipped)", len(pts))
	}
	want := Pt{X: m.MapX(500), Y: m.MapY(500)}
	if pts[0].At != want {
		t.Fatalf("point %+v, want %+v", pts[0].At, want)
	}
	if pts[0].Column.IntersectionID != "B-2" {
		t.Fatalf("wrong column paired: %q", pts[0].Column.IntersectionID)
	}
}
