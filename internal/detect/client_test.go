/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package detect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lilscotchty/archpro/internal/plan"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cl, err := NewClient(srv.URL, "test-key", 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return cl, srv
}

func TestDetectValidResponse(t *testing.T) {
	var gotAuth, gotPath string
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"grid_lines":[
			{"label":"A","orientation":"vertical","position":0.25},
			{"label":"1","orientation":"horizontal","position":0.5}
		]}`))
	})

	lines, err := cl.Detect(context.Background(), []byte("fake-png"), "image/png")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header %q", gotAuth)
	}
	if gotPath != "/v1/grid-lines" {
		t.Fatalf("path %q", gotPath)
	}
	if len(lines) != 2 || lines[0].Label != "A" || lines[1].Orientation != "horizontal" {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func TestDetectMalformedJSON(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"grid_lines": [`))
	})
	if _, err := cl.Detect(context.Background(), nil, ""); !errors.Is(err, ErrBadPayload) {
		t.Fatalf("got %v, want ErrBadPayload", err)
	}
}

func TestDetectSchemaViolations(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing grid_lines", `{}`},
		{"empty label", `{"grid_lines":[{"label":"","orientation":"vertical","position":0.5}]}`},
		{"bad orientation", `{"grid_lines":[{"label":"A","orientation":"diagonal","position":0.5}]}`},
		{"position above one", `{"grid_lines":[{"label":"A","orientation":"vertical","position":1.5}]}`},
		{"position negative", `{"grid_lines":[{"label":"A","orientation":"vertical","position":-0.1}]}`},
		{"missing position", `{"grid_lines":[{"label":"A","orientation":"vertical"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})
			if _, err := cl.Detect(context.Background(), nil, ""); !errors.Is(err, ErrBadPayload) {
				t.Fatalf("got %v, want ErrBadPayload", err)
			}
		})
	}
}

func TestDetectServiceError(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	if _, err := cl.Detect(context.Background(), nil, ""); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestDetectNoURL(t *testing.T) {
	cl, err := NewClient("", "", 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := cl.Detect(context.Background(), nil, ""); err == nil {
		t.Fatal("expected error without a configured URL")
	}
}

func TestDenormalize(t *testing.T) {
	lines := []NormalizedLine{
		{Label: "A", Orientation: "vertical", Position: 0.25},
		{Label: "1", Orientation: "horizontal", Position: 0.5},
	}
	out := Denormalize(lines, 800, 600)
	if len(out) != 2 {
		t.Fatalf("got %d lines", len(out))
	}
	if out[0].Position != 200 || out[0].Orientation != plan.Vertical {
		t.Fatalf("vertical: %+v", out[0])
	}
	if out[1].Position != 300 || out[1].Orientation != plan.Horizontal {
		t.Fatalf("horizontal: %+v", out[1])
	}
	if out[0].ID == "" || out[0].ID == out[1].ID {
		t.Fatal("fresh unique ids expected")
	}
}
