// Package media imports product pictures into the local image directory.
package media

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// MaxWidth is the widest picture kept; wider ones are scaled down preserving
// aspect ratio.
const MaxWidth = 800

var ErrUnsupportedFormat = errors.New("unsupported image format, only PNG, JPG and JPEG are allowed")

// Import decodes the picture at src, shrinks it to MaxWidth and writes it as a
// JPEG with a fresh unique name into dir. It returns that file name, which is
// the reference stored on the product.
func Import(src, dir string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(src)) {
	case ".png":
		img, err = png.Decode(in)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(in)
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", src, err)
	}

	if img.Bounds().Dx() > MaxWidth {
		img = resize.Resize(MaxWidth, 0, img, resize.Lanczos3)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.New().String() + ".jpg"
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 80}); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return name, nil
}
