/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Lilscotchty/archpro/internal/compose"
	"github.com/Lilscotchty/archpro/internal/config"
	"github.com/Lilscotchty/archpro/internal/crash"
	"github.com/Lilscotchty/archpro/internal/detect"
	"github.com/Lilscotchty/archpro/internal/export"
	applog "github.com/Lilscotchty/archpro/internal/log"
	"github.com/Lilscotchty/archpro/internal/plan"
	"github.com/Lilscotchty/archpro/internal/server"
	"github.com/Lilscotchty/archpro/internal/version"
)

func usage() {
	fmt.Println("archpro — foundation layout drawing generator")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  archpro version|-v|--version              Show version")
	fmt.Println("  archpro render <plan.yaml> [out]          Render a plan; out defaults to <plan>.png, .pdf wraps the sheet")
	fmt.Println("  archpro detect <image> [plan.yaml]        Detect grid lines via the configured AI service;")
	fmt.Println("                                            writes/updates the plan file or prints YAML")
	fmt.Println("  archpro set-key <api-key>                 Store the detection API key in the OS keyring")
	fmt.Println("  archpro serve                             Start the HTTP API")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", cfgErr))
	}

	var planPath string
	defer func() { crash.Recover(planPath) }()

	args := os.Args
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("archpro — foundation layout drawing generator")
		fmt.Println(version.String())

	case "render":
		if len(args) < 3 {
			fmt.Println("render requires <plan.yaml>")
			usage()
			os.Exit(2)
		}
		planPath = args[2]
		out := ""
		if len(args) > 3 {
			out = args[3]
		}
		if err := runRender(cfg, planPath, out); err != nil {
			l.Error("render failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}

	case "detect":
		if len(args) < 3 {
			fmt.Println("detect requires <image>")
			usage()
			os.Exit(2)
		}
		target := ""
		if len(args) > 3 {
			target = args[3]
			planPath = target
		}
		if err := runDetect(cfg, args[2], target); err != nil {
			l.Error("detect failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}

	case "set-key":
		if len(args) < 3 {
			fmt.Println("set-key requires <api-key>")
			os.Exit(2)
		}
		if err := config.StoreDetectAPIKey(args[2]); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println("Detection API key stored.")

	case "serve":
		if err := server.New(cfg).Listen(); err != nil {
			l.Error("server stopped", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}

	default:
		usage()
		os.Exit(2)
	}
}

func runRender(cfg config.AppConfig, planPath, out string) error {
	doc, err := plan.LoadFile(planPath)
	if err != nil {
		return err
	}
	img, err := compose.RenderPlan(doc, compose.Options{FontPath: cfg.Drawing.FontFile})
	if err != nil {
		return err
	}
	if out == "" {
		out = strings.TrimSuffix(planPath, filepath.Ext(planPath)) + ".png"
	}
	if !filepath.IsAbs(out) && cfg.Drawing.OutDir != "" && filepath.Dir(out) == "." {
		out = filepath.Join(cfg.Drawing.OutDir, out)
	}
	if strings.EqualFold(filepath.Ext(out), ".pdf") {
		err = export.WritePDF(out, img, export.PDFMeta{Title: doc.Name, Author: "archpro"})
	} else {
		err = export.WritePNG(out, img)
	}
	if err != nil {
		return err
	}
	fmt.Println("Drawing written to", out)
	return nil
}

// runDetect posts the image to the detection service, denormalizes the
// validated result and either merges it into the given plan file or prints
// the grid lines as YAML.
func runDetect(cfg config.AppConfig, imagePath, target string) error {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	dims, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image dimensions: %w", err)
	}
	cl, err := detect.NewClient(cfg.Detect.BaseURL, config.DetectAPIKey(),
		time.Duration(cfg.Detect.TimeoutMs)*time.Millisecond)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Detect.TimeoutMs)*time.Millisecond)
	defer cancel()
	normalized, err := cl.Detect(ctx, data, mimeFromExt(imagePath))
	if err != nil {
		return err
	}
	lines := detect.Denormalize(normalized, dims.Width, dims.Height)
	fmt.Printf("Detected %d grid lines.\n", len(lines))

	if target == "" {
		out, err := yaml.Marshal(map[string]any{"grid_lines": lines})
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}
	doc, err := plan.LoadFile(target)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		doc = plan.Document{Settings: plan.DefaultSettings()}
	}
	doc.GridLines = lines
	if err := plan.SaveFile(target, doc); err != nil {
		return err
	}
	fmt.Println("Grid lines written to", target)
	return nil
}

func mimeFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
