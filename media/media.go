// Package media owns the opaque image handles referenced by a route record.
// It ingests uploaded images, enforces the size limit, sniffs the format and
// records aspect-ratio metadata. Beyond logo downscaling it never touches
// pixel data; the renderer consumes the stored bytes as-is.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // registered for format sniffing
	_ "image/jpeg" // registered for format sniffing
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"topoguia"
)

// MaxImageBytes is the per-image upload limit, matching the form's
// "5 MB per image" rule.
const MaxImageBytes = 5 << 20

// Handle is one registered image: the opaque reference a record carries.
type Handle struct {
	Name        string  // registry name, referenced from record media slots
	Format      string  // "JPG", "PNG" or "GIF", as the renderer expects
	AspectRatio float64 // width / height
	Data        []byte
}

// Set is the image registry for one generation request.
type Set struct {
	handles map[string]*Handle
}

// NewSet creates an empty registry.
func NewSet() *Set {
	return &Set{handles: make(map[string]*Handle)}
}

// Add reads an image from r and registers it under name. Images over
// MaxImageBytes or in an unknown format fail with a ValidationError naming
// the slot. WebP input is transcoded to PNG, everything else is stored
// verbatim.
func (s *Set) Add(name string, r io.Reader) (*Handle, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("media: reading %q: %w", name, err)
	}
	if len(data) > MaxImageBytes {
		return nil, topoguia.Invalid(name, len(data), "exceeds the 5 MB image limit")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, topoguia.Invalid(name, format, "must be a JPG, PNG, GIF or WebP image")
	}

	h := &Handle{Name: name, Data: data}
	if cfg.Height > 0 {
		h.AspectRatio = float64(cfg.Width) / float64(cfg.Height)
	}

	switch format {
	case "jpeg":
		h.Format = "JPG"
	case "png":
		h.Format = "PNG"
	case "gif":
		h.Format = "GIF"
	case "webp":
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, topoguia.Invalid(name, format, "webp image could not be decoded")
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("media: transcoding %q: %w", name, err)
		}
		h.Format = "PNG"
		h.Data = buf.Bytes()
	default:
		return nil, topoguia.Invalid(name, format, "must be a JPG, PNG, GIF or WebP image")
	}

	s.handles[name] = h
	return h, nil
}

// AddFile registers an image read from a file path.
func (s *Set) AddFile(name, path string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("media: opening %q: %w", path, err)
	}
	defer f.Close()
	return s.Add(name, f)
}

// Get returns the handle registered under name.
func (s *Set) Get(name string) (*Handle, bool) {
	h, ok := s.handles[name]
	return h, ok
}

// Len returns the number of registered handles.
func (s *Set) Len() int { return len(s.handles) }

// ScaleLogo downscales a registered logo to fit within maxW×maxH pixels,
// preserving aspect ratio, and replaces its data with a PNG. Logos already
// within the box are left untouched.
func (s *Set) ScaleLogo(name string, maxW, maxH int) error {
	h, ok := s.handles[name]
	if !ok {
		return topoguia.Invalid(name, nil, "unknown logo handle")
	}

	img, _, err := decode(h)
	if err != nil {
		return fmt.Errorf("media: decoding logo %q: %w", name, err)
	}

	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return nil
	}

	scale := float64(maxW) / float64(b.Dx())
	if s := float64(maxH) / float64(b.Dy()); s < scale {
		scale = s
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(b.Dx())*scale), int(float64(b.Dy())*scale)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return fmt.Errorf("media: encoding logo %q: %w", name, err)
	}
	h.Format = "PNG"
	h.Data = buf.Bytes()
	if dst.Bounds().Dy() > 0 {
		h.AspectRatio = float64(dst.Bounds().Dx()) / float64(dst.Bounds().Dy())
	}
	return nil
}

func decode(h *Handle) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(h.Data))
}
