package adapter

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	// Register decoders for the formats the pipeline accepts
	_ "image/gif"
	_ "golang.org/x/image/webp"
)

// ImageCodec defines an interface for image decode/encode/scale operations
// to enable mocking
//
//go:generate mockgen -source=image.go -destination=../mocks/image.go -package=mocks -mock_names=ImageCodec=MockImageCodec
type ImageCodec interface {
	// Decode decodes an image from raw bytes and returns it with its format name
	Decode(data []byte) (image.Image, string, error)

	// DecodeConfig reads image dimensions without decoding the full image
	DecodeConfig(data []byte) (width, height int, err error)

	// EncodeJPEG encodes an image to JPEG format with the specified quality
	EncodeJPEG(w io.Writer, img image.Image, quality int) error

	// EncodePNG encodes an image to PNG format
	EncodePNG(w io.Writer, img image.Image) error

	// Scale resizes an image to the given dimensions
	Scale(img image.Image, width, height int) image.Image
}

// RealImageCodec implements ImageCodec using the standard library and x/image
type RealImageCodec struct{}

// NewImageCodec creates a new real image codec
func NewImageCodec() ImageCodec {
	return &RealImageCodec{}
}

// Decode decodes an image from raw bytes and returns it with its format name
func (c *RealImageCodec) Decode(data []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(data))
}

// DecodeConfig reads image dimensions without decoding the full image
func (c *RealImageCodec) DecodeConfig(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// EncodeJPEG encodes an image to JPEG format with the specified quality
func (c *RealImageCodec) EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// EncodePNG encodes an image to PNG format
func (c *RealImageCodec) EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// Scale resizes an image to the given dimensions using Catmull-Rom resampling
func (c *RealImageCodec) Scale(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}
