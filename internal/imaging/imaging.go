// Package imaging normalizes uploaded listing photos: it sniffs the real
// content type, decodes, downscales oversized images and re-encodes
// everything as JPEG so the media dir holds one predictable format.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// MaxDimension caps the longer edge of a stored photo.
const MaxDimension = 1024

// Quality is the JPEG encoding quality for stored photos.
const Quality = 85

// MaxUploadBytes bounds a single photo upload.
const MaxUploadBytes = 8 << 20

var allowed = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo is a normalized listing photo ready to be written to disk.
type Photo struct {
	Data   []byte
	Width  int
	Height int
}

// Normalize validates and converts an uploaded photo. The content type is
// sniffed from the bytes, not taken from the client.
func Normalize(r io.Reader) (*Photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("photo exceeds %d bytes", MaxUploadBytes)
	}

	kind := http.DetectContentType(data)
	if !allowed[kind] {
		return nil, fmt.Errorf("unsupported photo format %s (JPEG or PNG only)", kind)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	img = fit(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	b := img.Bounds()
	return &Photo{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// fit scales img down so neither edge exceeds maxDim, preserving aspect
// ratio. Images already within bounds pass through untouched.
func fit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = h * maxDim / w
	} else {
		newW = w * maxDim / h
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
