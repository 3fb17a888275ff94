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
	"testing"
	"time"

	"github.com/Lilscotchty/archpro/internal/geom"
	"github.com/Lilscotchty/archpro/internal/plan"
)

func renderFixture(t *testing.T) (*plan.Document, *geom.Mapper) {
	t.Helper()
	doc := &plan.Document{
		Name:     "test block",
		Settings: plan.DefaultSettings(),
		GridLines: []plan.GridLine{
			plan.NewGridLine("A", 100, plan.Vertical),
			plan.NewGridLine("B", 500, plan.Vertical),
			plan.NewGridLine("1", 100, plan.Horizontal),
			plan.NewGridLine("2", 500, plan.Horizontal),
		},
		Columns: []plan.Column{
			{IntersectionID: "A-1", Width: 300, Height: 300, Type: plan.Square},
			{IntersectionID: "A-2", Width: 300, Height: 300, Type: plan.Square},
		},
	}
	m, err := geom.NewMapper(*doc)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	return doc, m
}

func TestRenderWallOverFooting(t *testing.T) {
	doc, m := renderFixture(t)
	segs := geom.Connections(*doc, m)
	if len(segs) != 1 {
		t.Fatalf("fixture expected 1 segment, got %d", len(segs))
	}
	cols := geom.ColumnPoints(*doc, m)
	st := DefaultStyle()
	img := Render(*doc, m, segs, cols, Options{Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)})

	// sample just off the segment midpoint (the centerline itself carries
	// the grid line stroke): the wall fill must sit on top
	s := segs[0]
	mx, my := int((s.X1+s.X2)/2), int((s.Y1+s.Y2)/2)
	if got := img.RGBAAt(mx+3, my); got != st.WallFill {
		t.Fatalf("wall band %v, want wall fill %v", got, st.WallFill)
	}

	// just outside the wall but inside the footing band the fill is white
	wallHalf := m.MM(float64(doc.Settings.WallWidth)) / 2
	footHalf := m.MM(float64(doc.Settings.FootingWidth)) / 2
	sampleX := float64(mx) + (wallHalf+footHalf)/2
	if got := img.RGBAAt(int(sampleX), my); got != st.FootingFill {
		t.Fatalf("footing band %v, want %v", got, st.FootingFill)
	}
}

func TestRenderWithoutColumnsStillAnnotates(t *testing.T) {
	doc, m := renderFixture(t)
	doc.Columns = nil
	st := DefaultStyle()
	img := Render(*doc, m, nil, nil, Options{})

	// grid lines must still be stroked somewhere along the vertical at A
	x := int(m.MapX(100))
	var gridInk bool
	for y := 0; y < geom.CanvasHeight; y++ {
		if img.RGBAAt(x, y) == st.GridColor {
			gridInk = true
			break
		}
	}
	if !gridInk {
		t.Fatal("grid line not drawn without columns")
	}
}

func TestColumnSection(t *testing.T) {
	s := plan.DefaultSettings() // wall 225, so minimum governs
	cases := []struct {
		name string
		col  plan.Column
		w, h float64
	}{
		{"defaults", plan.Column{Type: plan.Square}, 300, 300},
		{"explicit square", plan.Column{Type: plan.Square, Width: 450}, 450, 450},
		{"explicit rect", plan.Column{Type: plan.Rectangular, Width: 400, Height: 600}, 400, 600},
		{"below threshold ignored", plan.Column{Type: plan.Square, Width: 40}, 300, 300},
		{"rect missing height", plan.Column{Type: plan.Rectangular, Width: 400}, 400, 300},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h := columnSection(tc.col, s)
			if w != tc.w || h != tc.h {
				t.Fatalf("got %v x %v, want %v x %v", w, h, tc.w, tc.h)
			}
		})
	}
}

func TestColumnSectionWideWall(t *testing.T) {
	s := plan.DefaultSettings()
	s.WallWidth = 400 // wall thicker than the floor governs the default
	w, h := columnSection(plan.Column{Type: plan.Square}, s)
	if w != 400 || h != 400 {
		t.Fatalf("got %v x %v, want 400 x 400", w, h)
	}
}
