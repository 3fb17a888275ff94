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

import "image/color"

// Style bundles the line weights, dash patterns and colors of the drawing
// conventions. Dash pattern values are canvas pixels (on, off, on, off...).
type Style struct {
	Paper  color.RGBA
	Border color.RGBA

	ExcavationColor color.RGBA
	ExcavationDash  []float64
	ExcavationWidth float64

	BlindingColor color.RGBA
	BlindingDash  []float64
	BlindingWidth float64

	FootingOutline color.RGBA
	FootingFill    color.RGBA
	FootingWidth   float64

	WallFill color.RGBA

	ColumnFill color.RGBA
	ColumnPad  color.RGBA

	GridColor color.RGBA
	GridDash  []float64
	GridWidth float64

	BubbleFill   color.RGBA
	BubbleStroke color.RGBA

	DimColor color.RGBA
	DimWidth float64

	TextColor color.RGBA
}

// DefaultStyle follows common ISO construction-drawing conventions: thin
// grey dashed excavation, dash-dot red grid lines, heavy solid structure.
func DefaultStyle() Style {
	return Style{
		Paper:  color.RGBA{255, 255, 255, 255},
		Border: color.RGBA{0, 0, 0, 255},

		ExcavationColor: color.RGBA{130, 130, 130, 255},
		ExcavationDash:  []float64{12, 6},
		ExcavationWidth: 1.5,

		BlindingColor: color.RGBA{175, 175, 175, 255},
		BlindingDash:  []float64{6, 4},
		BlindingWidth: 1,

		FootingOutline: color.RGBA{0, 0, 0, 255},
		FootingFill:    color.RGBA{255, 255, 255, 255},
		FootingWidth:   2.5,

		WallFill: color.RGBA{45, 45, 45, 255},

		ColumnFill: color.RGBA{0, 0, 0, 255},
		ColumnPad:  color.RGBA{255, 255, 255, 255},

		GridColor: color.RGBA{200, 60, 60, 255},
		GridDash:  []float64{24, 6, 4, 6}, // long dash, dot
		GridWidth: 1,

		BubbleFill:   color.RGBA{255, 255, 255, 255},
		BubbleStroke: color.RGBA{0, 0, 0, 255},

		DimColor: color.RGBA{0, 0, 0, 255},
		DimWidth: 1,

		TextColor: color.RGBA{0, 0, 0, 255},
	}
}
