/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package plan

import (
	"log/slog"
	"strconv"

	applog "github.com/Lilscotchty/archpro/internal/log"
)

// Label allocation follows drawing-office convention: vertical lines take
// letters, horizontal lines take numbers, each assigned sequentially when a
// line is added.

// NextVerticalLabel returns the letter following the last vertical line's
// label. Labels past 'Z'/'z' wrap to "A"; a multi-character scheme ("AA")
// is not defined, so the collision is logged rather than hidden.
func NextVerticalLabel(lines []GridLine) string {
	verts := sortedByOrientation(lines, Vertical)
	if len(verts) == 0 {
		return "A"
	}
	last := verts[len(verts)-1].Label
	if last == "" {
		return "A"
	}
	c := last[0]
	if (c >= 'A' && c < 'Z') || (c >= 'a' && c < 'z') {
		return string(c + 1)
	}
	applog.WithComponent("plan").Warn("vertical label range exhausted, wrapping to A",
		slog.String("last", last), slog.Int("count", len(verts)))
	return "A"
}

// NextHorizontalLabel returns one past the highest numeric horizontal label,
// or "<count+1>" when none of the labels parse as numbers.
func NextHorizontalLabel(lines []GridLine) string {
	horiz := sortedByOrientation(lines, Horizontal)
	if len(horiz) == 0 {
		return "1"
	}
	maxN := 0
	parsed := false
	for _, l := range horiz {
		if n, err := strconv.Atoi(l.Label); err == nil {
			parsed = true
			if n > maxN {
				maxN = n
			}
		}
	}
	if !parsed {
		return strconv.Itoa(len(horiz) + 1)
	}
	return strconv.Itoa(maxN + 1)
}

// NextLabel dispatches on orientation.
func NextLabel(lines []GridLine, o Orientation) string {
	if o == Vertical {
		return NextVerticalLabel(lines)
	}
	return NextHorizontalLabel(lines)
}
