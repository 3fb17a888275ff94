/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package server

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Lilscotchty/archpro/internal/plan"
)

// Session is one in-memory editing session: a mutable plan document plus
// its undo/redo history. Sessions are transient — nothing is persisted.
type Session struct {
	ID string

	mu   sync.Mutex
	doc  plan.Document
	hist *plan.History
}

// ErrNoSession is returned for unknown session ids.
var ErrNoSession = errors.New("server: no such session")

// Store holds live sessions keyed by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store { return &Store{sessions: make(map[string]*Session)} }

// Create opens a session seeded with the given document.
func (st *Store) Create(doc plan.Document) *Session {
	s := &Session{
		ID:   uuid.NewString(),
		doc:  doc.Clone(),
		hist: plan.NewHistory(plan.DefaultHistoryDepth),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get looks up a session by id.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

// Drop removes a session.
func (st *Store) Drop(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Document returns an immutable snapshot of the session state, suitable to
// hand to the render pipeline.
func (s *Session) Document() plan.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *Session) pushHistoryLocked() {
	s.hist.Push(plan.Take(s.doc.GridLines, s.doc.Columns))
}

// AddGridLine places a new line, allocating the next sequential label, and
// returns it.
func (s *Session) AddGridLine(o plan.Orientation, position float64) plan.GridLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushHistoryLocked()
	l := plan.NewGridLine(plan.NextLabel(s.doc.GridLines, o), position, o)
	s.doc.GridLines = append(s.doc.GridLines, l)
	return l
}

// RemoveGridLine deletes a line by id; columns referencing it stay selected
// and are simply excluded from geometry until the line reappears.
func (s *Session) RemoveGridLine(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.doc.GridLines {
		if l.ID == id {
			s.pushHistoryLocked()
			s.doc.GridLines = append(s.doc.GridLines[:i], s.doc.GridLines[i+1:]...)
			return true
		}
	}
	return false
}

// SetGridLines replaces the whole grid, e.g. with a detection result.
func (s *Session) SetGridLines(lines []plan.GridLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushHistoryLocked()
	s.doc.GridLines = append([]plan.GridLine(nil), lines...)
}

// ToggleColumn selects the intersection if unselected, or removes the
// existing selection. Reports whether the column is now selected.
func (s *Session) ToggleColumn(c plan.Column) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushHistoryLocked()
	for i, have := range s.doc.Columns {
		if have.IntersectionID == c.IntersectionID {
			s.doc.Columns = append(s.doc.Columns[:i], s.doc.Columns[i+1:]...)
			return false
		}
	}
	s.doc.Columns = append(s.doc.Columns, c)
	return true
}

// UpdateSettings applies a full settings value, or rejects it wholesale
// when any field fails validation — the previous settings stay in force.
func (s *Session) UpdateSettings(next plan.Settings) error {
	if err := next.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Settings = next
	return nil
}

// Undo restores the previous grid/column snapshot. Settings are unaffected.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.hist.Undo(plan.Take(s.doc.GridLines, s.doc.Columns))
	if !ok {
		return false
	}
	s.doc.GridLines = snap.GridLines
	s.doc.Columns = snap.Columns
	return true
}

// Redo re-applies the latest undone snapshot.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.hist.Redo(plan.Take(s.doc.GridLines, s.doc.Columns))
	if !ok {
		return false
	}
	s.doc.GridLines = snap.GridLines
	s.doc.Columns = snap.Columns
	return true
}
