package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/polyfill/internal/fill"
)

func newTestServer(t *testing.T, opts Options) (*Server, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.New(&buf)
	opts.Logger = logger
	engine := fill.NewEngine(fill.Options{Width: 10, Height: 10, Logger: logger})
	return NewServer(engine, opts), &buf
}

func post(t *testing.T, s http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/fill", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestFillScanline(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	rec := post(t, s, `{
		"polygon": [[1,1],[5,1],[5,5],[1,5]],
		"mode": "scanline",
		"fill_color": "#ff8c42",
		"boundary_color": "#3a86ff"
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type %q", ct)
	}

	var resp FillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Width != 10 || resp.Height != 10 || len(resp.Buffer) != 10 || len(resp.Buffer[0]) != 10 {
		t.Fatalf("unexpected size %dx%d", resp.Width, resp.Height)
	}
	if resp.Buffer[3][3] != 1 || resp.Buffer[1][1] != 2 || resp.Buffer[0][0] != 0 || resp.Buffer[6][3] != 0 {
		t.Errorf("unexpected buffer %v", resp.Buffer)
	}
	if resp.Palette[0] != "transparent" || resp.Palette[1] != "#ff8c42" || resp.Palette[2] != "#3a86ff" {
		t.Errorf("unexpected palette %v", resp.Palette)
	}
	if !strings.Contains(rec.Body.String(), `"palette":{"0":"transparent","1":"#ff8c42","2":"#3a86ff"}`) {
		t.Errorf("palette not keyed by index string: %s", rec.Body)
	}
}

func TestFillFloodLegacyFields(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	rec := post(t, s, `{
		"shape": [[1,1],[8,1],[8,6],[1,6]],
		"algorithm": "flood_fill",
		"seed_point": {"x": 4.7, "y": 3.2}
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var resp FillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	filled := 0
	for _, row := range resp.Buffer {
		for _, v := range row {
			if v == 1 {
				filled++
			}
		}
	}
	if filled != 24 {
		t.Errorf("filled %d pixels, want 24", filled)
	}
	if resp.Palette[1] != fill.DefaultFillColor || resp.Palette[2] != fill.DefaultBoundaryColor {
		t.Errorf("default colours not applied: %v", resp.Palette)
	}
}

func TestSeedPointArray(t *testing.T) {
	var fr FillRequest
	if err := json.Unmarshal([]byte(`{"seed_point": [12.9, 7]}`), &fr); err != nil {
		t.Fatal(err)
	}
	if fr.SeedPoint == nil || fr.SeedPoint.X != 12.9 || fr.SeedPoint.Y != 7 {
		t.Errorf("got %+v", fr.SeedPoint)
	}
}

func TestFillDefaultShape(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	rec := post(t, s, `{"mode": "scanline", "canvas_width": 600, "canvas_height": 400}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var resp FillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Width != 600 || resp.Height != 400 {
		t.Fatalf("got %dx%d", resp.Width, resp.Height)
	}
	if resp.Buffer[210][300] != 1 {
		t.Error("butterfly interior not filled")
	}
}

func TestFillUnknownModeLenient(t *testing.T) {
	s, logs := newTestServer(t, Options{})
	rec := post(t, s, `{"polygon": [[1,1],[5,1],[5,5]], "mode": "spray"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var resp FillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	for y, row := range resp.Buffer {
		for x, v := range row {
			if v == 1 {
				t.Fatalf("unknown mode filled pixel (%d, %d)", x, y)
			}
		}
	}
	if !strings.Contains(logs.String(), "unknown fill mode") {
		t.Error("unknown mode not logged")
	}
}

func TestFillRejected(t *testing.T) {
	tests := []struct {
		name   string
		strict bool
		body   string
		status int
	}{
		{"malformed json", false, `{"polygon": [[1,1]`, http.StatusBadRequest},
		{"negative size", false, `{"canvas_width": -1}`, http.StatusBadRequest},
		{"too large", false, `{"canvas_width": 5000, "canvas_height": 5000}`, http.StatusRequestEntityTooLarge},
		{"huge width", false, `{"canvas_width": 9000000000000000000, "canvas_height": 2}`, http.StatusRequestEntityTooLarge},
		{"far vertex", false, `{"polygon": [[1,1],[1e9,1],[5,5]]}`, http.StatusBadRequest},
		{"far seed", false, `{"mode": "flood_fill", "seed_point": [1e12, 0]}`, http.StatusBadRequest},
		{"strict short polygon", true, `{"polygon": [[1,1],[5,5]], "mode": "scanline"}`, http.StatusBadRequest},
		{"strict unknown mode", true, `{"mode": "spray"}`, http.StatusBadRequest},
		{"strict missing seed", true, `{"mode": "flood_fill"}`, http.StatusBadRequest},
		{"strict seed off canvas", true, `{"mode": "flood_fill", "seed_point": {"x": 20, "y": 2}}`, http.StatusBadRequest},
		{"strict bad colour", true, `{"mode": "scanline", "fill_color": "orange"}`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestServer(t, Options{Strict: tc.strict, MaxPixels: 1_000_000})
			rec := post(t, s, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status %d, want %d: %s", rec.Code, tc.status, rec.Body)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("missing error body: %s", rec.Body)
			}
		})
	}
}

func TestStrictAcceptsValidRequest(t *testing.T) {
	s, _ := newTestServer(t, Options{Strict: true})
	rec := post(t, s, `{
		"polygon": [[1,1],[8,1],[8,6],[1,6]],
		"mode": "flood_fill",
		"seed_point": {"x": 3, "y": 3},
		"fill_color": "#0f0",
		"boundary_color": "#000000"
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
}

func TestShape(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/shape", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp ShapeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Shape) != 6 || resp.Shape[0] != [2]float64{350, 200} {
		t.Errorf("unexpected shape %v", resp.Shape)
	}
	if resp.Width != 10 || resp.Height != 10 {
		t.Errorf("got %dx%d", resp.Width, resp.Height)
	}
}

func TestRouting(t *testing.T) {
	s, logs := newTestServer(t, Options{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fill", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/fill: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz: %d %q", rec.Code, rec.Body)
	}

	if !strings.Contains(logs.String(), "status=405") {
		t.Errorf("request log missing status: %s", logs)
	}
}
