package media_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/artfolio/artwork-indexer/internal/adapter"
	"github.com/artfolio/artwork-indexer/internal/config"
	"github.com/artfolio/artwork-indexer/internal/logger"
	"github.com/artfolio/artwork-indexer/internal/media"
	"github.com/artfolio/artwork-indexer/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func testMediaConfig() config.MediaConfig {
	return config.MediaConfig{
		SizeBudgetBytes:  1500,
		InitialQuality:   85,
		MinQuality:       40,
		QualityStep:      10,
		ShrinkPercentage: 25,
		MaxAttempts:      12,
		UploadRetries:    1,
		WorkerCount:      2,
	}
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)))
	assert.NoError(t, err)
	return buf.Bytes()
}

func animatedGIFBytes(t *testing.T) []byte {
	t.Helper()

	palette := color.Palette{color.Black, color.White}
	g := &gif.GIF{}
	for i := 0; i < 2; i++ {
		g.Image = append(g.Image, image.NewPaletted(image.Rect(0, 0, 4, 4), palette))
		g.Delay = append(g.Delay, 10)
	}

	var buf bytes.Buffer
	err := gif.EncodeAll(&buf, g)
	assert.NoError(t, err)
	return buf.Bytes()
}

func TestReencode_UnderBudgetPassesThrough(t *testing.T) {
	codec := adapter.NewImageCodec()
	reencoder := media.NewReencoder(codec, testMediaConfig())

	data := pngBytes(t, 8, 8)
	result, err := reencoder.Reencode(context.Background(), data, "image/png")

	assert.NoError(t, err)
	assert.Equal(t, data, result.Data)
	assert.Equal(t, "image/png", result.Mime)
	assert.Equal(t, 8, result.Width)
	assert.Equal(t, 8, result.Height)
	assert.False(t, result.Resized)
	assert.False(t, result.Compressed)
}

func TestReencode_SVGExempt(t *testing.T) {
	cfg := testMediaConfig()
	cfg.SizeBudgetBytes = 1

	reencoder := media.NewReencoder(adapter.NewImageCodec(), cfg)

	data := []byte("<svg xmlns=\"http://www.w3.org/2000/svg\"></svg>")
	result, err := reencoder.Reencode(context.Background(), data, "image/svg+xml")

	assert.NoError(t, err)
	assert.Equal(t, data, result.Data)
	assert.Equal(t, "image/svg+xml", result.Mime)
}

func TestReencode_AnimatedGIFExempt(t *testing.T) {
	cfg := testMediaConfig()
	cfg.SizeBudgetBytes = 1

	reencoder := media.NewReencoder(adapter.NewImageCodec(), cfg)

	data := animatedGIFBytes(t)
	result, err := reencoder.Reencode(context.Background(), data, "image/gif")

	assert.NoError(t, err)
	assert.Equal(t, data, result.Data)
	assert.Equal(t, "image/gif", result.Mime)
}

func TestReencode_QualityLoweringMeetsBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCodec := mocks.NewMockImageCodec(ctrl)
	mockCodec.EXPECT().
		Decode(gomock.Any()).
		Return(image.NewRGBA(image.Rect(0, 0, 1000, 500)), "png", nil)
	mockCodec.EXPECT().
		EncodeJPEG(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(w io.Writer, _ image.Image, quality int) error {
			// Over budget at initial quality, under budget one step down
			size := 2000
			if quality < 85 {
				size = 1200
			}
			_, err := w.Write(make([]byte, size))
			return err
		}).
		Times(2)

	reencoder := media.NewReencoder(mockCodec, testMediaConfig())

	result, err := reencoder.Reencode(context.Background(), make([]byte, 2000), "image/png")

	assert.NoError(t, err)
	assert.Equal(t, "image/jpeg", result.Mime)
	assert.Equal(t, 75, result.Quality)
	assert.True(t, result.Compressed)
	assert.False(t, result.Resized)
	assert.Equal(t, 1000, result.Width)
	assert.Equal(t, 500, result.Height)
}

func TestReencode_DownscaleEscapeHatchPreservesAspectRatio(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCodec := mocks.NewMockImageCodec(ctrl)
	mockCodec.EXPECT().
		Decode(gomock.Any()).
		Return(image.NewRGBA(image.Rect(0, 0, 1000, 500)), "png", nil)
	// One 25% shrink, ratio held at 2:1
	mockCodec.EXPECT().
		Scale(gomock.Any(), 750, 375).
		Return(image.NewRGBA(image.Rect(0, 0, 750, 375)))
	mockCodec.EXPECT().
		EncodeJPEG(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(w io.Writer, img image.Image, _ int) error {
			// Quality alone never fits; the downscaled frame does
			size := 2000
			if img.Bounds().Dx() < 1000 {
				size = 1000
			}
			_, err := w.Write(make([]byte, size))
			return err
		}).
		AnyTimes()

	reencoder := media.NewReencoder(mockCodec, testMediaConfig())

	result, err := reencoder.Reencode(context.Background(), make([]byte, 2000), "image/png")

	assert.NoError(t, err)
	assert.True(t, result.Resized)
	assert.Equal(t, 750, result.Width)
	assert.Equal(t, 375, result.Height)
	assert.Equal(t, 40, result.Quality)
}

func TestReencode_BestAttemptSurfacedWhenBudgetUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sizes := []int{2000, 1900, 1800}
	call := 0

	mockCodec := mocks.NewMockImageCodec(ctrl)
	mockCodec.EXPECT().
		Decode(gomock.Any()).
		Return(image.NewRGBA(image.Rect(0, 0, 1000, 500)), "png", nil)
	mockCodec.EXPECT().
		EncodeJPEG(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(w io.Writer, _ image.Image, _ int) error {
			size := sizes[call]
			call++
			_, err := w.Write(make([]byte, size))
			return err
		}).
		Times(3)

	cfg := testMediaConfig()
	cfg.MaxAttempts = 3

	reencoder := media.NewReencoder(mockCodec, cfg)

	result, err := reencoder.Reencode(context.Background(), make([]byte, 5000), "image/png")

	assert.ErrorIs(t, err, media.ErrCannotMeetSizeBudget)
	assert.NotNil(t, result)
	assert.Len(t, result.Data, 1800)
}

func TestReencode_QualityFloorAboveStartClamped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCodec := mocks.NewMockImageCodec(ctrl)
	mockCodec.EXPECT().
		Decode(gomock.Any()).
		// One pixel wide, so the downscale escape hatch never runs
		Return(image.NewRGBA(image.Rect(0, 0, 1, 2)), "png", nil)
	mockCodec.EXPECT().
		EncodeJPEG(gomock.Any(), gomock.Any(), 30).
		DoAndReturn(func(w io.Writer, _ image.Image, _ int) error {
			_, err := w.Write(make([]byte, 2000))
			return err
		})

	cfg := testMediaConfig()
	cfg.InitialQuality = 30
	cfg.MinQuality = 60

	reencoder := media.NewReencoder(mockCodec, cfg)

	result, err := reencoder.Reencode(context.Background(), make([]byte, 2000), "image/png")

	assert.ErrorIs(t, err, media.ErrCannotMeetSizeBudget)
	assert.NotNil(t, result)
	assert.Equal(t, 30, result.Quality)
}

func TestReencode_UndecodableImage(t *testing.T) {
	cfg := testMediaConfig()
	cfg.SizeBudgetBytes = 4

	reencoder := media.NewReencoder(adapter.NewImageCodec(), cfg)

	result, err := reencoder.Reencode(context.Background(), []byte("not an image"), "image/png")

	assert.Nil(t, result)
	assert.Error(t, err)
}
