package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/scene"
)

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		defaultValue int
		expected     int
		expectError  bool
	}{
		{"missing uses default", "", 7, 7, false},
		{"valid value", "n=12", 7, 12, false},
		{"lower bound", "n=1", 7, 1, false},
		{"upper bound", "n=100", 7, 100, false},
		{"below range", "n=0", 7, 0, true},
		{"above range", "n=101", 7, 0, true},
		{"not a number", "n=abc", 7, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			got, err := parseIntParam(values, "n", tt.defaultValue, 1, 100)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected an error for %q", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	s := NewServer(0, "")
	rec := get(t, s, "/api/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header on responses")
	}
}

func TestHandleScenes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "my-room.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewServer(0, dir)
	rec := get(t, s, "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var scenes []scene.SceneInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &scenes); err != nil {
		t.Fatal(err)
	}
	if len(scenes) != len(scene.Presets())+1 {
		t.Fatalf("Expected presets plus one file scene, got %d", len(scenes))
	}
	last := scenes[len(scenes)-1]
	if last.ID != "file:my-room" || last.Type != "file" {
		t.Errorf("Unexpected file scene entry %+v", last)
	}
}

func TestHandleRender(t *testing.T) {
	s := NewServer(0, "")
	rec := get(t, s, "/api/render?scene=default&width=16&height=12&workers=2")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	if rec.Header().Get("X-Render-Workers") != "2" {
		t.Errorf("Expected 2 workers reported, got %q", rec.Header().Get("X-Render-Workers"))
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Errorf("Expected 16x12 image, got %v", b)
	}
}

func TestHandleRender_Overlay(t *testing.T) {
	s := NewServer(0, "")
	rec := get(t, s, "/api/render?scene=default&width=32&height=32&workers=4&overlay=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}
	// The left tile border crosses the black background
	if r, g, _, _ := img.At(0, 5).RGBA(); r == 0 || g == 0 {
		t.Errorf("Expected a yellow tile border at (0, 5), got %v", img.At(0, 5))
	}
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"width too large", "/api/render?width=5000", http.StatusBadRequest},
		{"bad height", "/api/render?height=tall", http.StatusBadRequest},
		{"negative depth", "/api/render?depth=-1", http.StatusBadRequest},
		{"bad overlay", "/api/render?width=4&height=4&overlay=maybe", http.StatusBadRequest},
		{"unknown scene", "/api/render?scene=nope&width=4&height=4", http.StatusNotFound},
		{"raw path refused", "/api/render?scene=/etc/scene.json&width=4&height=4", http.StatusNotFound},
	}

	s := NewServer(0, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	s := NewServer(0, "")

	rec := get(t, s, "/api/inspect?scene=default&width=9&height=9&x=4&y=4")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Hit {
		t.Fatal("Expected the centre pixel to hit the sphere")
	}
	if resp.GeometryType != "sphere" || resp.MaterialName != "red" {
		t.Errorf("Expected red sphere, got %s %s", resp.MaterialName, resp.GeometryType)
	}
	// Camera at z=5 looking at a unit sphere at the origin
	if resp.Distance < 3.99 || resp.Distance > 4.01 {
		t.Errorf("Expected distance 4, got %g", resp.Distance)
	}

	rec = get(t, s, "/api/inspect?scene=default&width=9&height=9&x=0&y=0")
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Hit {
		t.Error("Expected the corner pixel to miss")
	}
}

func TestHandleInspect_Errors(t *testing.T) {
	s := NewServer(0, "")
	for _, target := range []string{
		"/api/inspect?width=9&height=9&y=4",
		"/api/inspect?width=9&height=9&x=4&y=q",
		"/api/inspect?width=9&height=9&x=9&y=4",
		"/api/inspect?width=9&height=9&x=-1&y=4",
	} {
		if rec := get(t, s, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}
