package scan

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoder

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp" // register decoder

	"github.com/jy-crnz/SchedulerDesigner/internal/llm"
)

// DefaultMaxDimension bounds the longest side of an image sent to the model.
const DefaultMaxDimension = 2048

var (
	ErrEmptyImage       = errors.New("no image uploaded")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

var acceptedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/tiff": true,
}

// passthroughTypes are sent unchanged when small enough.
var passthroughTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// PrepareImage sniffs data, and downsizes or re-encodes it as JPEG when it is
// larger than maxDim or in a format vision endpoints may reject.
func PrepareImage(data []byte, maxDim int) (llm.Image, error) {
	if len(data) == 0 {
		return llm.Image{}, ErrEmptyImage
	}
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}

	mime := mimetype.Detect(data).String()
	if !acceptedTypes[mime] {
		return llm.Image{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, mime)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return llm.Image{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if passthroughTypes[mime] && cfg.Width <= maxDim && cfg.Height <= maxDim {
		return llm.Image{MIMEType: mime, Data: data}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return llm.Image{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width > maxDim || cfg.Height > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return llm.Image{}, fmt.Errorf("encoding image: %w", err)
	}
	return llm.Image{MIMEType: "image/jpeg", Data: buf.Bytes()}, nil
}
