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
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Plan documents are plain YAML files handed to the CLI. This is an input
// format, not a project store: nothing in the pipeline reads one back after
// a render.

// LoadFile reads and validates a plan document from a YAML file. Grid lines
// with a missing id get one minted so detection output can be pasted in
// verbatim. Zero-valued settings fields fall back to defaults before
// validation.
func LoadFile(path string) (Document, error) {
	var doc Document
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read plan: %w", err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse plan %s: %w", filepath.Base(path), err)
	}
	def := DefaultSettings()
	if doc.Settings == (Settings{}) {
		doc.Settings = def
	}
	fillZero(&doc.Settings.Scale, def.Scale)
	fillZero(&doc.Settings.GridSpacing, def.GridSpacing)
	fillZero(&doc.Settings.WallWidth, def.WallWidth)
	fillZero(&doc.Settings.TrenchWidth, def.TrenchWidth)
	fillZero(&doc.Settings.FootingWidth, def.FootingWidth)
	fillZero(&doc.Settings.WorkingSpace, def.WorkingSpace)
	fillZero(&doc.Settings.BlindingOffset, def.BlindingOffset)
	if err := doc.Settings.Validate(); err != nil {
		return doc, err
	}
	for i := range doc.GridLines {
		if doc.GridLines[i].ID == "" {
			doc.GridLines[i] = NewGridLine(doc.GridLines[i].Label, doc.GridLines[i].Position, doc.GridLines[i].Orientation)
		}
		switch doc.GridLines[i].Orientation {
		case Vertical, Horizontal:
		default:
			return doc, fmt.Errorf("plan: grid line %q has unknown orientation %q", doc.GridLines[i].Label, doc.GridLines[i].Orientation)
		}
	}
	return doc, nil
}

// SaveFile writes the document as YAML.
func SaveFile(path string, doc Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure plan dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

func fillZero(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
