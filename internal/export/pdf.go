/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/Lilscotchty/archpro/internal/geom"
)

// PDFMeta carries the document metadata stamped into the PDF.
type PDFMeta struct {
	Title  string
	Author string
}

// EncodePDF wraps the rendered raster in a single A3 landscape sheet. The
// image is placed full-bleed; the drawing's own border provides the frame.
func EncodePDF(w io.Writer, img image.Image, meta PDFMeta) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: geom.PaperWidthMM, Ht: geom.PaperHeightMM},
	})
	if meta.Title != "" {
		pdf.SetTitle(meta.Title, false)
	}
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, false)
	}
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: geom.PaperWidthMM, Ht: geom.PaperHeightMM})

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return err
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("plan", opts, &buf)
	pdf.ImageOptions("plan", 0, 0, geom.PaperWidthMM, geom.PaperHeightMM, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WritePDF writes the sheet to a file, creating parent directories.
func WritePDF(path string, img image.Image, meta PDFMeta) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := EncodePDF(f, img, meta); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close pdf: %w", err)
	}
	return nil
}
