// Package texture turns generated or imported images into the texture references stored on
// scene objects: PNG data URLs no larger than MaxSize on either side.
package texture

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/webp"
)

// MaxSize is the longest side of a stored texture in pixels.
const MaxSize = 512

const pngPrefix = "data:image/png;base64,"

var ErrNotDataURL = errors.New("texture: not a base64 data URL")

// Normalize decodes a png, jpeg, gif or webp image, scales it down to fit MaxSize and
// returns it as a PNG data URL.
func Normalize(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("texture: %w", err)
	}
	img = fit(img, MaxSize)
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return "", fmt.Errorf("texture: %w", err)
	}
	return pngPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Load reads an image file and normalizes it.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("texture: %w", err)
	}
	return Normalize(data)
}

func fit(img image.Image, max int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return img
	}
	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	return transform.Resize(img, max1(w), max1(h), transform.Linear)
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Decode parses a base64 image data URL of any supported format.
func Decode(dataURL string) (image.Image, error) {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, ErrNotDataURL
	}
	_, payload, ok := strings.Cut(dataURL, ";base64,")
	if !ok {
		return nil, ErrNotDataURL
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	return img, nil
}
