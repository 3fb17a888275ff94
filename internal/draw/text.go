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
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// FontProvider resolves a point size to a concrete face for annotation
// text. The drawing never needs more than one family.
type FontProvider interface {
	Face(sizePt float64) font.Face
}

// BasicProvider uses the fixed x/image basicfont face regardless of size;
// deterministic and dependency-free, used for tests and as fallback when no
// TTF is configured.
type BasicProvider struct{}

func (BasicProvider) Face(_ float64) font.Face { return basicfont.Face7x13 }

// OTProvider renders annotation text from a loaded OpenType font at the
// drawing DPI. Faces are cached per size.
type OTProvider struct {
	fnt   *opentype.Font
	dpi   float64
	cache map[float64]font.Face
}

// NewOTProvider parses the TTF/OTF file at path.
func NewOTProvider(path string, dpi float64) (*OTProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	if dpi <= 0 {
		dpi = 72
	}
	return &OTProvider{fnt: f, dpi: dpi, cache: map[float64]font.Face{}}, nil
}

func (p *OTProvider) Face(sizePt float64) font.Face {
	if sizePt <= 0 {
		sizePt = 8
	}
	if f, ok := p.cache[sizePt]; ok {
		return f
	}
	face, err := opentype.NewFace(p.fnt, &opentype.FaceOptions{Size: sizePt, DPI: p.dpi, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	p.cache[sizePt] = face
	return face
}
