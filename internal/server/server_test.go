package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexiusacademia/shoring/internal/settings"
)

func newTestServer(mod func(*settings.Settings)) http.Handler {
	s := settings.Defaults()
	s.RateLimit = 1000
	s.RateBurst = 1000
	if mod != nil {
		mod(&s)
	}
	return New(s, slog.New(slog.NewTextHandler(io.Discard, nil))).Handler()
}

func get(t *testing.T, h http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	h := newTestServer(nil)

	tcs := []struct {
		name   string
		target string
		status int
		want   string
	}{
		{name: "defaults", target: "/", status: http.StatusOK, want: `<img src="/render/model.png?`},
		{name: "parse error", target: "/?x=610,abc", status: http.StatusBadRequest, want: "Invalid input"},
		{name: "missing input", target: "/?z=", status: http.StatusOK, want: "Enter spacings for all three axes"},
		{name: "bad radius", target: "/?radius=wide", status: http.StatusBadRequest, want: "not a number"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, h, tc.target, nil)
			if rec.Code != tc.status {
				t.Fatalf("GET %s = %d; want %d", tc.target, rec.Code, tc.status)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Fatalf("GET %s body missing %q", tc.target, tc.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	h := newTestServer(nil)

	rec := get(t, h, "/render/model.png?size=200", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatal("render did not return a PNG")
	}

	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("render set no ETag")
	}
	again := get(t, h, "/render/model.png?size=200", http.Header{"If-None-Match": {etag}})
	if again.Code != http.StatusNotModified {
		t.Fatalf("conditional render = %d; want 304", again.Code)
	}

	other := get(t, h, "/render/model.png?size=200&camera=Top", http.Header{"If-None-Match": {etag}})
	if other.Code != http.StatusOK || other.Header().Get("ETag") == etag {
		t.Fatalf("changed camera = %d with ETag %s; want a fresh image", other.Code, other.Header().Get("ETag"))
	}
}

// hugeGrid asks for 300 bays on every axis, far above the strut limit
var hugeGrid = func() string {
	bays := strings.TrimSuffix(strings.Repeat("1,", 300), ",")
	return "x=" + bays + "&y=" + bays + "&z=" + bays
}()

func TestRender_Errors(t *testing.T) {
	h := newTestServer(nil)

	tcs := []struct {
		target string
		status int
	}{
		{target: "/render/model.png?y=abc", status: http.StatusBadRequest},
		{target: "/render/model.svg?x=", status: http.StatusUnprocessableEntity},
		{target: "/render/model.png?opacity_v=0.01", status: http.StatusBadRequest},
		{target: "/render/wireframe.png?camera=Bottom", status: http.StatusBadRequest},
		{target: "/render/model.gif", status: http.StatusNotFound},
		{target: "/render/model.png?radius=NaN", status: http.StatusBadRequest},
		{target: "/render/model.png?" + hugeGrid, status: http.StatusBadRequest},
		{target: "/api/model?" + hugeGrid, status: http.StatusBadRequest},
	}
	for _, tc := range tcs {
		t.Run(tc.target, func(t *testing.T) {
			if rec := get(t, h, tc.target, nil); rec.Code != tc.status {
				t.Fatalf("GET %s = %d; want %d", tc.target, rec.Code, tc.status)
			}
		})
	}
}

func TestWireframe(t *testing.T) {
	rec := get(t, newTestServer(nil), "/render/wireframe.png?size=150&projection=Orthographic", nil)
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("wireframe = %d", rec.Code)
	}
}

func TestModelAPI(t *testing.T) {
	h := newTestServer(nil)

	rec := get(t, h, "/api/model?x=610&y=914&z=432", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}

	var out modelJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Counts.Vertical != 4 || out.Counts.HorizontalX != 2 || out.Counts.HorizontalY != 2 || len(out.Struts) != 8 {
		t.Fatalf("counts = %+v, struts = %d; want 4/2/2 and 8", out.Counts, len(out.Struts))
	}
	if !strings.Contains(rec.Body.String(), `"group":"vertical"`) {
		t.Fatal("struts are not tagged by group name")
	}
	if out.Struts[0].Color != "#4169E1" || out.View.Camera != "Isometric" {
		t.Fatalf("first strut = %+v, view = %+v", out.Struts[0], out.View)
	}
}

func TestModelAPI_Post(t *testing.T) {
	h := newTestServer(nil)

	body := `{"x": "610, 1219, 1524", "y": "610", "z": "432", "camera": "front", "projection": "orthographic"}`
	req := httptest.NewRequest(http.MethodPost, "/api/model", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}
	var out modelJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.View.Parallel || len(out.Coordinates[0]) != 4 {
		t.Fatalf("view = %+v, x = %v", out.View, out.Coordinates[0])
	}

	req = httptest.NewRequest(http.MethodPost, "/api/model", strings.NewReader(`{"x": "1, two"}`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed spacing = %d; want 400", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(func(s *settings.Settings) {
		s.RateLimit = 0.001
		s.RateBurst = 1
	})

	if rec := get(t, h, "/api/model", nil); rec.Code != http.StatusOK {
		t.Fatalf("first request = %d; want 200", rec.Code)
	}
	if rec := get(t, h, "/api/model", nil); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d; want 429", rec.Code)
	}
	if rec := get(t, h, "/", nil); rec.Code != http.StatusOK {
		t.Fatalf("index is not limited, got %d", rec.Code)
	}
}

func TestRateLimiter_Prune(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	start := time.Now()

	l.getLimiter("10.0.0.1", start)
	l.getLimiter("10.0.0.2", start.Add(5*time.Minute))

	if n := l.Prune(start.Add(time.Minute)); n != 1 {
		t.Fatalf("Prune removed %d clients; want 1", n)
	}
	if l.Len() != 1 {
		t.Fatalf("Len = %d; want 1", l.Len())
	}
	if n := l.Prune(start.Add(time.Hour)); n != 1 || l.Len() != 0 {
		t.Fatalf("Prune removed %d, Len = %d; want 1 and 0", n, l.Len())
	}
}
