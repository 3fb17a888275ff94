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

import "sync"

// Snapshot is one reversible state of the editable plan: grid lines plus
// column selections. Settings are not part of history. Snapshots are pure
// values; Take and the History methods deep-copy so callers can keep
// mutating their slices.
type Snapshot struct {
	GridLines []GridLine
	Columns   []Column
}

// Take captures a snapshot of the given state.
func Take(lines []GridLine, cols []Column) Snapshot {
	return Snapshot{
		GridLines: append([]GridLine(nil), lines...),
		Columns:   append([]Column(nil), cols...),
	}
}

func (s Snapshot) clone() Snapshot { return Take(s.GridLines, s.Columns) }

// DefaultHistoryDepth bounds how many past states are retained.
const DefaultHistoryDepth = 20

// History is a linear undo/redo manager: two bounded stacks of value
// snapshots. Push records the state before a mutation and clears the redo
// stack; Undo/Redo exchange the current state with the stack tops.
// Safe for concurrent use.
type History struct {
	mu     sync.Mutex
	past   []Snapshot
	future []Snapshot
	depth  int
}

// NewHistory creates a history with the given depth cap; depth <= 0 uses
// DefaultHistoryDepth.
func NewHistory(depth int) *History {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &History{depth: depth}
}

// Push records the pre-mutation state. Any new mutation invalidates redo.
// The oldest snapshot is dropped once the depth cap is exceeded.
func (h *History) Push(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.past = append(h.past, s.clone())
	if len(h.past) > h.depth {
		h.past = append([]Snapshot{}, h.past[len(h.past)-h.depth:]...)
	}
	h.future = nil
}

// Undo returns the most recent past snapshot, moving the supplied current
// state onto the redo stack. ok is false when there is nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.past) == 0 {
		return Snapshot{}, false
	}
	s := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current.clone())
	return s.clone(), true
}

// Redo reverses the latest Undo. ok is false when the redo stack is empty.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.future) == 0 {
		return Snapshot{}, false
	}
	s := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current.clone())
	if len(h.past) > h.depth {
		h.past = append([]Snapshot{}, h.past[len(h.past)-h.depth:]...)
	}
	return s.clone(), true
}

// Depths reports current stack sizes for diagnostics.
func (h *History) Depths() (past, future int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past), len(h.future)
}
