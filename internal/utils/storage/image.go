package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	dataURLPrefix = "data:image/"
	base64Marker  = ";base64,"

	// MaxImageWidth bounds stored recipe images; larger uploads are downscaled.
	MaxImageWidth = 1280
)

var (
	AllowImage = []string{"jpg", "jpeg", "png", "gif"}

	ErrInvalidImage = errors.New("invalid image")
)

type Base64Image struct {
	Ext         string
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

// DecodeBase64Image parses a "data:image/<ext>;base64,<data>" payload, checks
// that it really is an image and re-encodes it, downscaled to maxWidth when
// wider (maxWidth <= 0 disables resizing).
func DecodeBase64Image(dataURL string, maxWidth int) (*Base64Image, error) {
	if !strings.HasPrefix(dataURL, dataURLPrefix) {
		return nil, fmt.Errorf("%w: expected %s<ext>;base64,<data>", ErrInvalidImage, dataURLPrefix)
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(dataURL, dataURLPrefix), base64Marker)
	if !ok {
		return nil, fmt.Errorf("%w: missing base64 marker", ErrInvalidImage)
	}

	ext := strings.ToLower(header)
	if !slices.Contains(AllowImage, ext) {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidImage, ext)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	if ext == "jpg" {
		ext = "jpeg"
	}

	return &Base64Image{
		Ext:         ext,
		ContentType: "image/" + ext,
		Data:        buf.Bytes(),
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}, nil
}
