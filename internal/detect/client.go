/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package detect is the collaborator boundary to the external AI grid
// detection service. The service is a black box; this package only posts
// the plan image, strictly validates the response shape and denormalizes
// positions into pixel coordinates. On any failure the caller's grid is
// left untouched — no partial line list ever escapes.
package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Lilscotchty/archpro/internal/plan"
)

// ErrBadPayload marks a response that failed schema validation.
var ErrBadPayload = errors.New("detect: response failed schema validation")

// NormalizedLine is one detected grid line with position in [0,1].
type NormalizedLine struct {
	Label       string  `json:"label"`
	Orientation string  `json:"orientation"`
	Position    float64 `json:"position"`
}

type response struct {
	GridLines []NormalizedLine `json:"grid_lines"`
}

// Client posts plan images to the detection service.
type Client struct {
	BaseURL string
	APIKey  string // bearer key, typically loaded from the OS keyring
	client  *http.Client
	schema  *gojsonschema.Schema
}

// NewClient normalizes the base URL and compiles the response schema.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	sch, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
	if err != nil {
		return nil, fmt.Errorf("compile detect schema: %w", err)
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		schema:  sch,
	}, nil
}

// Detect uploads the raw image and returns the validated normalized lines.
func (c *Client) Detect(ctx context.Context, image []byte, contentType string) ([]NormalizedLine, error) {
	if c.BaseURL == "" {
		return nil, errors.New("detect: no service URL configured")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/grid-lines", bytes.NewReader(image))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detect request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("detect service: %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("detect read body: %w", err)
	}
	return c.parse(body)
}

// parse validates the raw body against the schema before decoding it.
func (c *Client) parse(body []byte) ([]NormalizedLine, error) {
	res, err := c.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrBadPayload, strings.Join(msgs, "; "))
	}
	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return r.GridLines, nil
}

// Denormalize maps normalized detections onto an image of the given pixel
// dimensions, minting fresh grid-line ids. The input is assumed validated.
func Denormalize(lines []NormalizedLine, width, height int) []plan.GridLine {
	out := make([]plan.GridLine, 0, len(lines))
	for _, l := range lines {
		o := plan.Orientation(l.Orientation)
		pos := l.Position * float64(width)
		if o == plan.Horizontal {
			pos = l.Position * float64(height)
		}
		out = append(out, plan.NewGridLine(l.Label, pos, o))
	}
	return out
}
