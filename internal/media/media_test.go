package media

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func decodedSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestImportShrinksWidePictures(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "wide.png")
	writePNG(t, src, 1600, 400)

	dir := filepath.Join(tmp, "images")
	name, err := Import(src, dir)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(name))

	w, h := decodedSize(t, filepath.Join(dir, name))
	assert.Equal(t, MaxWidth, w)
	assert.Equal(t, 200, h)
}

func TestImportKeepsSmallPictures(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "small.PNG")
	writePNG(t, src, 120, 90)

	first, err := Import(src, tmp)
	require.NoError(t, err)
	second, err := Import(src, tmp)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	w, h := decodedSize(t, filepath.Join(tmp, first))
	assert.Equal(t, 120, w)
	assert.Equal(t, 90, h)
}

func TestImportRejectsOtherFormats(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "logo.gif")
	require.NoError(t, os.WriteFile(src, []byte("GIF89a"), 0o644))

	_, err := Import(src, tmp)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	bad := filepath.Join(tmp, "broken.jpg")
	require.NoError(t, os.WriteFile(bad, []byte("not a jpeg"), 0o644))
	_, err = Import(bad, tmp)
	assert.Error(t, err)
}
