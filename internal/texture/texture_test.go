package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	return img
}

func TestNormalizeDownscales(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(1024, 256)))

	url, err := Normalize(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	img, err := Decode(url)
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

func TestNormalizeKeepsSmallImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(64, 32), nil))
	url, err := Normalize(buf.Bytes())
	require.NoError(t, err)
	img, err := Decode(url)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 32), img.Bounds())
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := Normalize([]byte("not an image"))
	assert.Error(t, err)
}

func TestDecodeRejectsPlainRefs(t *testing.T) {
	_, err := Decode("textures/brick.png")
	assert.ErrorIs(t, err, ErrNotDataURL)
	_, err = Decode("data:image/png,raw")
	assert.ErrorIs(t, err, ErrNotDataURL)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tall.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(100, 2000)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	url, err := Load(path)
	require.NoError(t, err)
	img, err := Decode(url)
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dy())
	assert.Equal(t, 25, img.Bounds().Dx())
}
