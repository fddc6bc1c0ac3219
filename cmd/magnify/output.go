package main

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// encoderFor picks the image encoder from the output extension.
func encoderFor(path string) (imgio.Encoder, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(92), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", ext)
	}
}

// thumbnailPath inserts "_thumb" before the extension.
func thumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}

// save writes img to path and, when thumbWidth > 0, a proportionally
// scaled copy next to it.
func save(img image.Image, path string, thumbWidth int) error {
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if thumbWidth <= 0 {
		return nil
	}

	b := img.Bounds()
	th := max(1, b.Dy()*thumbWidth/max(b.Dx(), 1))
	thumb := transform.Resize(img, thumbWidth, th, transform.Linear)
	tp := thumbnailPath(path)
	if err := imgio.Save(tp, thumb, enc); err != nil {
		return fmt.Errorf("save %s: %w", tp, err)
	}
	return nil
}
