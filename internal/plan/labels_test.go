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

import "testing"

func vline(label string, x float64) GridLine  { return NewGridLine(label, x, Vertical) }
func hline(label string, y float64) GridLine  { return NewGridLine(label, y, Horizontal) }

func TestNextVerticalLabel(t *testing.T) {
	cases := []struct {
		name  string
		lines []GridLine
		want  string
	}{
		{"empty", nil, "A"},
		{"after A B", []GridLine{vline("A", 100), vline("B", 500)}, "C"},
		{"unsorted input", []GridLine{vline("B", 500), vline("A", 100)}, "C"},
		{"lowercase", []GridLine{vline("a", 100)}, "b"},
		{"ignores horizontals", []GridLine{hline("1", 50), vline("D", 10)}, "E"},
		{"wraps past Z", []GridLine{vline("Z", 900)}, "A"},
		{"wraps past z", []GridLine{vline("z", 900)}, "A"},
	}
	for _, tc := range cases {
		if got := NextVerticalLabel(tc.lines); got != tc.want {
			t.Errorf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestNextHorizontalLabel(t *testing.T) {
	cases := []struct {
		name  string
		lines []GridLine
		want  string
	}{
		{"empty", nil, "1"},
		{"after 1 2", []GridLine{hline("1", 100), hline("2", 500)}, "3"},
		{"gap uses max", []GridLine{hline("1", 100), hline("3", 500)}, "4"},
		{"unparsable falls back to count+1", []GridLine{hline("x", 100), hline("y", 200)}, "3"},
		{"ignores verticals", []GridLine{vline("A", 50), hline("7", 10)}, "8"},
	}
	for _, tc := range cases {
		if got := NextHorizontalLabel(tc.lines); got != tc.want {
			t.Errorf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestNextLabelDispatch(t *testing.T) {
	if got := NextLabel(nil, Vertical); got != "A" {
		t.Fatalf("vertical dispatch: got %q", got)
	}
	if got := NextLabel(nil, Horizontal); got != "1" {
		t.Fatalf("horizontal dispatch: got %q", got)
	}
}
