package handlers_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngUpload(t *testing.T, w, h int) (*bytes.Buffer, string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 50 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("photo", "shot.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if err := png.Encode(part, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	_ = mw.Close()
	return body, mw.FormDataContentType()
}

func TestMediaUpload(t *testing.T) {
	env := newTestEnv(t)
	sid := env.login(t, "fashion@example.com")

	body, ctype := pngUpload(t, 2000, 500)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/media", body)
	req.Header.Set("Content-Type", ctype)
	req.AddCookie(sid)

	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}

	var out struct {
		Path   string `json:"path"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(out.Path, "items/") || !strings.HasSuffix(out.Path, ".jpg") {
		t.Fatalf("unexpected media path %q", out.Path)
	}
	if out.Width != 1024 || out.Height != 256 {
		t.Fatalf("want 1024x256 after downscale, got %dx%d", out.Width, out.Height)
	}

	// file landed in the media dir
	if _, err := os.Stat(filepath.Join(env.mediaDir, filepath.FromSlash(out.Path))); err != nil {
		t.Fatalf("stored photo missing: %v", err)
	}
}

func TestMediaUploadRejectsNonImage(t *testing.T) {
	env := newTestEnv(t)
	sid := env.login(t, "fashion@example.com")

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, _ := mw.CreateFormFile("photo", "notes.txt")
	_, _ = part.Write([]byte("definitely not an image"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(sid)

	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
}

func TestMediaUploadRequiresLogin(t *testing.T) {
	env := newTestEnv(t)
	body, ctype := pngUpload(t, 10, 10)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/media", body)
	req.Header.Set("Content-Type", ctype)

	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
}
