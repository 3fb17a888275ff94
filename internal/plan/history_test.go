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
	"fmt"
	"testing"
)

func TestUndoRedoRestoresSnapshots(t *testing.T) {
	h := NewHistory(0)
	var lines []GridLine
	var cols []Column

	// three mutations, each preceded by a push
	for i := 0; i < 3; i++ {
		h.Push(Take(lines, cols))
		lines = append(lines, vline(NextVerticalLabel(lines), float64(100*(i+1))))
	}
	if len(lines) != 3 {
		t.Fatalf("setup: expected 3 lines, got %d", len(lines))
	}

	snap, ok := h.Undo(Take(lines, cols))
	if !ok {
		t.Fatalf("undo failed")
	}
	if len(snap.GridLines) != 2 || snap.GridLines[1].Label != "B" {
		t.Fatalf("undo restored wrong snapshot: %+v", snap.GridLines)
	}

	redo, ok := h.Redo(Take(snap.GridLines, snap.Columns))
	if !ok {
		t.Fatalf("redo failed")
	}
	if len(redo.GridLines) != 3 || redo.GridLines[2].Label != "C" {
		t.Fatalf("redo restored wrong snapshot: %+v", redo.GridLines)
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory(0)
	h.Push(Snapshot{})
	if _, ok := h.Undo(Take([]GridLine{vline("A", 1)}, nil)); !ok {
		t.Fatalf("undo failed")
	}
	if _, future := h.Depths(); future != 1 {
		t.Fatalf("expected redo stack of 1, got %d", future)
	}
	h.Push(Snapshot{})
	if _, future := h.Depths(); future != 0 {
		t.Fatalf("new mutation must clear redo, got %d", future)
	}
}

func TestHistoryDepthCap(t *testing.T) {
	h := NewHistory(20)
	for i := 0; i < 50; i++ {
		h.Push(Take([]GridLine{vline("A", float64(i))}, nil))
	}
	past, _ := h.Depths()
	if past != 20 {
		t.Fatalf("expected 20 retained past states, got %d", past)
	}
	// the retained states are the most recent ones
	snap, _ := h.Undo(Snapshot{})
	if snap.GridLines[0].Position != 49 {
		t.Fatalf("expected newest snapshot on top, got position %v", snap.GridLines[0].Position)
	}
}

func TestSnapshotsDoNotAlias(t *testing.T) {
	h := NewHistory(0)
	lines := []GridLine{vline("A", 1)}
	h.Push(Take(lines, nil))
	lines[0].Position = 999
	snap, _ := h.Undo(Snapshot{})
	if snap.GridLines[0].Position != 1 {
		t.Fatalf("snapshot aliased caller slice: %v", snap.GridLines[0].Position)
	}
}

func TestUndoEmpty(t *testing.T) {
	h := NewHistory(0)
	if _, ok := h.Undo(Snapshot{}); ok {
		t.Fatalf("undo on empty history must report false")
	}
	if _, ok := h.Redo(Snapshot{}); ok {
		t.Fatalf("redo on empty history must report false")
	}
}

func ExampleHistory() {
	h := NewHistory(20)
	cur := Take([]GridLine{vline("A", 100)}, nil)
	h.Push(cur)
	prev, _ := h.Undo(Take([]GridLine{vline("A", 100), vline("B", 500)}, nil))
	fmt.Println(len(prev.GridLines))
	// Output: 1
}
