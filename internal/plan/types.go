/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package plan defines the structural-grid data model: grid lines, column
// selections, foundation settings and the plan document that a render
// operates on. All dimensions are millimeters; grid-line positions are
// pixel coordinates on the source plan image.
package plan

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Orientation of a grid line on the source plan.
type Orientation string

const (
	// Vertical lines vary in X and carry letter labels (A, B, C ...).
	Vertical Orientation = "vertical"
	// Horizontal lines vary in Y and carry numeric labels (1, 2, 3 ...).
	Horizontal Orientation = "horizontal"
)

// GridLine is one labeled reference line of the structural grid.
// Position is the pixel coordinate along the varying axis (X for vertical
// lines, Y for horizontal ones). Labels should be unique by convention
// (sequential allocation) but uniqueness is not enforced.
type GridLine struct {
	ID          string      `yaml:"id" json:"id"`
	Label       string      `yaml:"label" json:"label"`
	Position    float64     `yaml:"position" json:"position"`
	Orientation Orientation `yaml:"orientation" json:"orientation"`
}

// NewGridLine mints a grid line with a fresh unique id.
func NewGridLine(label string, pos float64, o Orientation) GridLine {
	return GridLine{ID: uuid.NewString(), Label: label, Position: pos, Orientation: o}
}

// ColumnType distinguishes square from rectangular column sections.
type ColumnType string

const (
	Square      ColumnType = "square"
	Rectangular ColumnType = "rectangular"
)

// Column marks a selected grid intersection, optionally with explicit
// section dimensions in mm. IntersectionID is "<verticalLabel>-<horizontalLabel>".
type Column struct {
	IntersectionID string     `yaml:"intersection" json:"intersection"`
	Width          float64    `yaml:"width,omitempty" json:"width,omitempty"`
	Height         float64    `yaml:"height,omitempty" json:"height,omitempty"`
	Type           ColumnType `yaml:"type,omitempty" json:"type,omitempty"`
}

// SplitIntersection returns the vertical and horizontal labels of the id.
// The vertical label never contains '-', so the first separator wins.
func SplitIntersection(id string) (vLabel, hLabel string, ok bool) {
	i := strings.Index(id, "-")
	if i <= 0 || i == len(id)-1 {
		return "", "", false
	}
	return id[:i], id[i+1:], true
}

// IntersectionID builds the canonical id for a vertical/horizontal label pair.
func IntersectionID(vLabel, hLabel string) string { return vLabel + "-" + hLabel }

// Settings holds the foundation dimensions and output scale. All widths and
// offsets are millimeters; Scale is the paper-scale denominator (1:Scale).
type Settings struct {
	Scale          int `yaml:"scale" json:"scale"`
	GridSpacing    int `yaml:"grid_spacing" json:"gridSpacing"`
	WallWidth      int `yaml:"wall_width" json:"wallWidth"`
	TrenchWidth    int `yaml:"trench_width" json:"trenchWidth"`
	FootingWidth   int `yaml:"footing_width" json:"footingWidth"`
	WorkingSpace   int `yaml:"working_space" json:"workingSpace"`
	BlindingOffset int `yaml:"blinding_offset" json:"blindingOffset"`
}

// DefaultSettings are typical strip-foundation values for a 1:100 sheet.
func DefaultSettings() Settings {
	return Settings{
		Scale:          100,
		GridSpacing:    4000,
		WallWidth:      225,
		TrenchWidth:    1100,
		FootingWidth:   1000,
		WorkingSpace:   300,
		BlindingOffset: 50,
	}
}

// ErrInvalidSettings is returned when a settings update carries a
// non-positive dimension. Updates failing validation must be dropped
// wholesale; callers never apply a partially valid Settings.
var ErrInvalidSettings = errors.New("plan: invalid settings")

// Validate checks that every field is a positive integer.
func (s Settings) Validate() error {
	fields := []struct {
		name string
		v    int
	}{
		{"scale", s.Scale},
		{"grid_spacing", s.GridSpacing},
		{"wall_width", s.WallWidth},
		{"trench_width", s.TrenchWidth},
		{"footing_width", s.FootingWidth},
		{"working_space", s.WorkingSpace},
		{"blinding_offset", s.BlindingOffset},
	}
	for _, f := range fields {
		if f.v <= 0 {
			return fmt.Errorf("%w: %s=%d", ErrInvalidSettings, f.name, f.v)
		}
	}
	return nil
}

// Document is the immutable snapshot a render pipeline consumes: the full
// grid, the selected columns and the settings captured at invocation time.
type Document struct {
	Name      string     `yaml:"name" json:"name"`
	GridLines []GridLine `yaml:"grid_lines" json:"gridLines"`
	Columns   []Column   `yaml:"columns" json:"columns"`
	Settings  Settings   `yaml:"settings" json:"settings"`
}

// Verticals returns the vertical grid lines sorted by pixel position.
func (d Document) Verticals() []GridLine { return sortedByOrientation(d.GridLines, Vertical) }

// Horizontals returns the horizontal grid lines sorted by pixel position.
func (d Document) Horizontals() []GridLine { return sortedByOrientation(d.GridLines, Horizontal) }

func sortedByOrientation(lines []GridLine, o Orientation) []GridLine {
	out := make([]GridLine, 0, len(lines))
	for _, l := range lines {
		if l.Orientation == o {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// LineByLabel finds a grid line with the given orientation and label.
func LineByLabel(lines []GridLine, o Orientation, label string) (GridLine, bool) {
	for _, l := range lines {
		if l.Orientation == o && l.Label == label {
			return l, true
		}
	}
	return GridLine{}, false
}

// Clone returns a deep copy of the document; slices never alias.
func (d Document) Clone() Document {
	out := d
	out.GridLines = append([]GridLine(nil), d.GridLines...)
	out.Columns = append([]Column(nil), d.Columns...)
	return out
}
