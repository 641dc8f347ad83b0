package storage

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeBase64Image_Valid(t *testing.T) {
	img, err := DecodeBase64Image(pngDataURL(t, 8, 4), MaxImageWidth)
	require.NoError(t, err)

	assert.Equal(t, "png", img.Ext)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, 8, img.Width)
	assert.Equal(t, 4, img.Height)
	assert.NotEmpty(t, img.Data)
}

func TestDecodeBase64Image_Downscales(t *testing.T) {
	img, err := DecodeBase64Image(pngDataURL(t, 40, 20), 10)
	require.NoError(t, err)

	assert.Equal(t, 10, img.Width)
	assert.Equal(t, 5, img.Height)
}

func TestDecodeBase64Image_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"plain url", "https://example.com/a.png"},
		{"missing marker", "data:image/png,AAAA"},
		{"unsupported ext", "data:image/svg+xml;base64,PHN2Zz4="},
		{"bad base64", "data:image/png;base64,@@@"},
		{"not an image", "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("hello"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBase64Image(tt.in, MaxImageWidth)
			assert.ErrorIs(t, err, ErrInvalidImage)
		})
	}
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://media.s3.eu-central-1.amazonaws.com/recipes/a.png",
		PublicURL("", "media", "eu-central-1", "recipes/a.png"))
	assert.Equal(t,
		"http://localhost:9000/media/recipes/a.png",
		PublicURL("http://localhost:9000", "media", "eu-central-1", "recipes/a.png"))
}
