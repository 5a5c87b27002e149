package model

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ImageAttachment is the image the next question will be asked about,
// normalized to JPEG so every provider receives the same bytes.
type ImageAttachment struct {
	Path     string // Source path (empty for camera captures fed as bytes)
	Name     string // Display name for the title bar
	Data     []byte // JPEG-encoded image bytes
	MIMEType string
	Width    int
	Height   int
}

// Base64 returns the attachment encoded for providers that take
// base64 payloads.
func (a *ImageAttachment) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Data)
}

// DataURI returns the attachment as a data URI for providers that take
// image URLs.
func (a *ImageAttachment) DataURI() string {
	return "data:" + a.MIMEType + ";base64," + a.Base64()
}

var attachmentExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsSupportedImage reports whether the file extension looks like an
// image LoadAttachment can decode.
func IsSupportedImage(path string) bool {
	return attachmentExtensions[strings.ToLower(filepath.Ext(path))]
}

// LoadAttachment reads an image file and normalizes it for sending.
func LoadAttachment(path string) (*ImageAttachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	att, err := AttachmentFromBytes(data, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	att.Path = path
	return att, nil
}

// AttachmentFromBytes normalizes raw image bytes, e.g. a camera capture
// posted by the browser bridge.
func AttachmentFromBytes(data []byte, name string) (*ImageAttachment, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	att, err := attachmentFromImage(img)
	if err != nil {
		return nil, err
	}
	att.Name = name
	return att, nil
}

// attachmentFromImage flattens any alpha channel onto white and
// re-encodes as JPEG. JPEG has no alpha, so transparent regions would
// otherwise come out black.
func attachmentFromImage(img image.Image) (*ImageAttachment, error) {
	bounds := img.Bounds()

	flat := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ImageAttachment{
		Data:     buf.Bytes(),
		MIMEType: "image/jpeg",
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}, nil
}

// SaveCapture writes camera capture bytes to path. The UI loads the
// attachment back from this file.
func SaveCapture(data []byte, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create capture directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write capture: %w", err)
	}
	return nil
}
