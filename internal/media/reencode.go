package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/gif"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/artfolio/artwork-indexer/internal/adapter"
	"github.com/artfolio/artwork-indexer/internal/config"
	"github.com/artfolio/artwork-indexer/internal/logger"
)

var (
	// ErrCannotMeetSizeBudget is returned when the image cannot be compressed
	// or downscaled under the size budget within the attempt bound. The best
	// attempt is still returned alongside it.
	ErrCannotMeetSizeBudget = errors.New("cannot meet size budget even after re-encoding")
)

// aspectRatioTolerance is the maximum relative drift allowed between the
// original and downscaled aspect ratio
const aspectRatioTolerance = 0.01

// ReencodeResult holds the outcome of re-encoding one still image
type ReencodeResult struct {
	Data         []byte
	Mime         string
	Width        int
	Height       int
	Quality      int
	Resized      bool
	Compressed   bool
	OriginalSize int64
}

// Reencoder converts oversized still images into web-efficient JPEG within
// the configured size budget. Quality is lowered first; downscaling is the
// escape hatch when the quality floor alone is not enough.
//
//go:generate mockgen -source=reencode.go -destination=../mocks/media_reencoder.go -package=mocks -mock_names=Reencoder=MockReencoder
type Reencoder interface {
	// Reencode re-encodes image bytes to fit the size budget. Images already
	// under budget, vector images, and animated images pass through untouched.
	Reencode(ctx context.Context, data []byte, mime string) (*ReencodeResult, error)
}

type reencoder struct {
	codec  adapter.ImageCodec
	config config.MediaConfig
}

// NewReencoder creates a still-image re-encoder
func NewReencoder(codec adapter.ImageCodec, cfg config.MediaConfig) Reencoder {
	if cfg.SizeBudgetBytes <= 0 {
		cfg.SizeBudgetBytes = 10 * 1024 * 1024
	}
	if cfg.InitialQuality <= 0 {
		cfg.InitialQuality = 85
	}
	if cfg.MinQuality <= 0 {
		cfg.MinQuality = 40
	}
	if cfg.QualityStep <= 0 {
		cfg.QualityStep = 10
	}
	if cfg.ShrinkPercentage <= 0 || cfg.ShrinkPercentage >= 100 {
		cfg.ShrinkPercentage = 25
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 12
	}
	// The quality loop must run at least once, so the floor can never sit
	// above the starting quality
	if cfg.MinQuality > cfg.InitialQuality {
		cfg.MinQuality = cfg.InitialQuality
	}
	return &reencoder{
		codec:  codec,
		config: cfg,
	}
}

// Reencode re-encodes image bytes to fit the size budget
func (r *reencoder) Reencode(ctx context.Context, data []byte, mime string) (*ReencodeResult, error) {
	originalSize := int64(len(data))

	// Vector and animated formats break under frame-unaware resampling, so
	// they pass through even when over budget
	if isReencodeExempt(data, mime) {
		logger.DebugCtx(ctx, "Image exempt from re-encoding",
			zap.String("mime", mime),
			zap.Int64("size", originalSize),
		)
		return r.passthroughResult(data, mime, originalSize), nil
	}

	if originalSize <= r.config.SizeBudgetBytes {
		return r.passthroughResult(data, mime, originalSize), nil
	}

	img, format, err := r.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", width, height)
	}
	originalRatio := float64(width) / float64(height)

	logger.DebugCtx(ctx, "Re-encoding oversized image",
		zap.String("format", format),
		zap.Int64("originalSize", originalSize),
		zap.Int64("sizeBudget", r.config.SizeBudgetBytes),
		zap.Int("width", width),
		zap.Int("height", height),
	)

	attempts := 0
	resized := false
	var best *ReencodeResult

	encode := func(quality int) (*ReencodeResult, error) {
		var buf bytes.Buffer
		if err := r.codec.EncodeJPEG(&buf, img, quality); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}
		attempts++
		return &ReencodeResult{
			Data:         buf.Bytes(),
			Mime:         "image/jpeg",
			Width:        width,
			Height:       height,
			Quality:      quality,
			Resized:      resized,
			Compressed:   quality < r.config.InitialQuality,
			OriginalSize: originalSize,
		}, nil
	}

	// QUALITY FIRST: lower quality stepwise down to the floor
	for quality := r.config.InitialQuality; quality >= r.config.MinQuality && attempts < r.config.MaxAttempts; quality -= r.config.QualityStep {
		result, err := encode(quality)
		if err != nil {
			return nil, err
		}

		logger.DebugCtx(ctx, "Compressed image",
			zap.Int("quality", quality),
			zap.Int("size", len(result.Data)),
		)

		if int64(len(result.Data)) <= r.config.SizeBudgetBytes {
			return result, nil
		}
		if best == nil || len(result.Data) < len(best.Data) {
			best = result
		}
	}

	// DOWNSCALE AS ESCAPE HATCH: shrink by a fixed percentage at the quality
	// floor, preserving the aspect ratio
	for attempts < r.config.MaxAttempts && width > 1 && height > 1 {
		newWidth := width * (100 - r.config.ShrinkPercentage) / 100
		if newWidth < 1 {
			newWidth = 1
		}
		newHeight := int(math.Round(float64(newWidth) / originalRatio))
		if newHeight < 1 {
			newHeight = 1
		}

		img = r.codec.Scale(img, newWidth, newHeight)

		newRatio := float64(newWidth) / float64(newHeight)
		logger.DebugCtx(ctx, "Downscaled image",
			zap.Int("oldWidth", width),
			zap.Int("oldHeight", height),
			zap.Int("newWidth", newWidth),
			zap.Int("newHeight", newHeight),
			zap.Float64("oldAspectRatio", originalRatio),
			zap.Float64("newAspectRatio", newRatio),
		)
		if math.Abs(newRatio-originalRatio)/originalRatio > aspectRatioTolerance {
			logger.WarnCtx(ctx, "Aspect ratio drifted beyond tolerance after downscale",
				zap.Float64("oldAspectRatio", originalRatio),
				zap.Float64("newAspectRatio", newRatio),
			)
		}

		width = newWidth
		height = newHeight
		resized = true

		result, err := encode(r.config.MinQuality)
		if err != nil {
			return nil, err
		}

		if int64(len(result.Data)) <= r.config.SizeBudgetBytes {
			return result, nil
		}
		if best == nil || len(result.Data) < len(best.Data) {
			best = result
		}
	}

	logger.WarnCtx(ctx, "Size budget not met, surfacing best attempt",
		zap.Int64("sizeBudget", r.config.SizeBudgetBytes),
		zap.Int("bestSize", len(best.Data)),
		zap.Int("attempts", attempts),
	)

	return best, ErrCannotMeetSizeBudget
}

// passthroughResult wraps bytes that are used as-is, with best-effort
// dimensions
func (r *reencoder) passthroughResult(data []byte, mime string, originalSize int64) *ReencodeResult {
	result := &ReencodeResult{
		Data:         data,
		Mime:         mime,
		OriginalSize: originalSize,
	}
	if width, height, err := r.codec.DecodeConfig(data); err == nil {
		result.Width = width
		result.Height = height
	}
	return result
}

// isReencodeExempt reports whether the image must not be re-encoded
func isReencodeExempt(data []byte, mime string) bool {
	switch {
	case strings.HasPrefix(mime, "image/svg"):
		return true
	case mime == "image/gif":
		return isAnimatedGIF(data)
	case mime == "image/webp":
		return isAnimatedWebP(data)
	}
	return false
}

// isAnimatedGIF reports whether the GIF carries more than one frame
func isAnimatedGIF(data []byte) bool {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	return err == nil && len(g.Image) > 1
}

// isAnimatedWebP reports whether the WebP carries an ANIM chunk. The chunk
// sits in the RIFF header region, so scanning the first bytes is enough.
func isAnimatedWebP(data []byte) bool {
	limit := len(data)
	if limit > 256 {
		limit = 256
	}
	return bytes.Contains(data[:limit], []byte("ANIM"))
}
